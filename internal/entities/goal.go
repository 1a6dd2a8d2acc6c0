package entities

import "time"

// ReadingGoal is a user-defined target such as "read 20 books this year".
// Inactive goals are reported as completed.
type ReadingGoal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Title     string    `gorm:"size:256" json:"title"`
	Target    int       `json:"target"`
	Progress  int       `gorm:"default:0" json:"progress"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ReadingGoal) TableName() string {
	return "reading_goals"
}

// GoalInput is the payload for creating a goal. Active defaults to true.
type GoalInput struct {
	Title    string `json:"title" binding:"required,max=256"`
	Target   int    `json:"target" binding:"gte=1"`
	Progress int    `json:"progress" binding:"gte=0"`
	Active   *bool  `json:"active"`
}

// GoalUpdate is a partial update; nil fields are left unchanged.
type GoalUpdate struct {
	Title    *string `json:"title" binding:"omitempty,max=256"`
	Target   *int    `json:"target" binding:"omitempty,gte=1"`
	Progress *int    `json:"progress" binding:"omitempty,gte=0"`
	Active   *bool   `json:"active"`
}
