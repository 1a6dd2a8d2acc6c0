// Package goals provides database operations for reading goals.
package goals

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/radreads/internal/apperrors"
	"github.com/mrlokans/radreads/internal/database"
	"github.com/mrlokans/radreads/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateGoal creates a goal owned by userID.
func (r *Repository) CreateGoal(userID uint, in entities.GoalInput) (*entities.ReadingGoal, error) {
	active := true
	if in.Active != nil {
		active = *in.Active
	}

	goal := &entities.ReadingGoal{
		UserID:   userID,
		Title:    in.Title,
		Target:   in.Target,
		Progress: in.Progress,
		Active:   active,
	}
	if err := r.db.Create(goal).Error; err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return goal, nil
}

// GetGoals returns all of the user's goals, oldest first.
func (r *Repository) GetGoals(userID uint) ([]entities.ReadingGoal, error) {
	return r.find(r.db.Where("user_id = ?", userID))
}

// GetActiveGoals returns the user's goals still in progress.
func (r *Repository) GetActiveGoals(userID uint) ([]entities.ReadingGoal, error) {
	return r.find(r.db.Where("user_id = ? AND active = ?", userID, true))
}

// GetCompletedGoals returns the user's inactive goals.
func (r *Repository) GetCompletedGoals(userID uint) ([]entities.ReadingGoal, error) {
	return r.find(r.db.Where("user_id = ? AND active = ?", userID, false))
}

func (r *Repository) find(q *gorm.DB) ([]entities.ReadingGoal, error) {
	goals := []entities.ReadingGoal{}
	if err := q.Order("id ASC").Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

// getOwned loads a goal and checks it belongs to userID.
func (r *Repository) getOwned(userID, goalID uint) (*entities.ReadingGoal, error) {
	var goal entities.ReadingGoal
	err := r.db.First(&goal, goalID).Error
	if database.IsNotFound(err) {
		return nil, apperrors.NotFound("reading goal not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	if goal.UserID != userID {
		return nil, apperrors.Forbidden("not authorized to access this goal")
	}
	return &goal, nil
}

// UpdateGoal applies the non-nil fields of upd to one of the user's goals.
func (r *Repository) UpdateGoal(userID, goalID uint, upd entities.GoalUpdate) (*entities.ReadingGoal, error) {
	goal, err := r.getOwned(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if upd.Title != nil {
		updates["title"] = *upd.Title
	}
	if upd.Target != nil {
		updates["target"] = *upd.Target
	}
	if upd.Progress != nil {
		updates["progress"] = *upd.Progress
	}
	if upd.Active != nil {
		updates["active"] = *upd.Active
	}
	if len(updates) == 0 {
		return goal, nil
	}

	if err := r.db.Model(goal).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return r.getOwned(userID, goalID)
}

// DeleteGoal removes one of the user's goals.
func (r *Repository) DeleteGoal(userID, goalID uint) error {
	goal, err := r.getOwned(userID, goalID)
	if err != nil {
		return err
	}
	if err := r.db.Delete(goal).Error; err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}
