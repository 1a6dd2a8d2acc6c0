package entities

import (
	"fmt"
	"strings"
	"time"
)

// ShelfKind tags which shelf mechanism a request targets.
type ShelfKind string

const (
	ShelfKindToRead  ShelfKind = "to-read"
	ShelfKindDropped ShelfKind = "dropped"
	ShelfKindCurrent ShelfKind = "current"
	ShelfKindRead    ShelfKind = "read"
	ShelfKindCustom  ShelfKind = "custom"
)

// DefaultShelfKinds lists the singleton shelves every user owns, in display order.
var DefaultShelfKinds = []ShelfKind{
	ShelfKindToRead,
	ShelfKindDropped,
	ShelfKindCurrent,
	ShelfKindRead,
}

// ParseShelfKind normalizes a user-supplied shelf kind. "tbr" and "to_read"
// are accepted as aliases of "to-read".
func ParseShelfKind(s string) (ShelfKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "to-read", "to_read", "toread", "tbr":
		return ShelfKindToRead, nil
	case "dropped":
		return ShelfKindDropped, nil
	case "current", "currently-reading":
		return ShelfKindCurrent, nil
	case "read":
		return ShelfKindRead, nil
	case "custom":
		return ShelfKindCustom, nil
	}
	return "", fmt.Errorf("unknown shelf kind %q", s)
}

// IsDefault reports whether k is one of the four per-user singleton shelves.
func (k ShelfKind) IsDefault() bool {
	switch k {
	case ShelfKindToRead, ShelfKindDropped, ShelfKindCurrent, ShelfKindRead:
		return true
	}
	return false
}

// DisplayName is the name a default shelf is provisioned with.
func (k ShelfKind) DisplayName() string {
	switch k {
	case ShelfKindToRead:
		return "Want to Read"
	case ShelfKindDropped:
		return "Dropped"
	case ShelfKindCurrent:
		return "Currently Reading"
	case ShelfKindRead:
		return "Read"
	case ShelfKindCustom:
		return "Custom"
	}
	return string(k)
}

// DefaultShelf is a user's singleton shelf of one of the default kinds.
type DefaultShelf struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_default_shelf_user_kind" json:"user_id"`
	Kind      ShelfKind `gorm:"not null;size:20;uniqueIndex:idx_default_shelf_user_kind" json:"kind"`
	Name      string    `gorm:"size:100" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (DefaultShelf) TableName() string {
	return "default_shelves"
}

// CustomShelf is a user-named shelf. It holds links to the user's read-shelf
// entries rather than to books directly.
type CustomShelf struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_custom_shelf_user_name" json:"user_id"`
	Name      string    `gorm:"not null;size:100;uniqueIndex:idx_custom_shelf_user_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CustomShelf) TableName() string {
	return "custom_shelves"
}

// Membership tables, one per default shelf kind. Row ids record insertion order.

type ToReadShelfBook struct {
	ID        uint      `gorm:"primaryKey"`
	ShelfID   uint      `gorm:"not null;uniqueIndex:idx_to_read_shelf_book"`
	BookID    uint      `gorm:"not null;uniqueIndex:idx_to_read_shelf_book;index"`
	CreatedAt time.Time
}

func (ToReadShelfBook) TableName() string {
	return "to_read_shelf_books"
}

type DroppedShelfBook struct {
	ID        uint      `gorm:"primaryKey"`
	ShelfID   uint      `gorm:"not null;uniqueIndex:idx_dropped_shelf_book"`
	BookID    uint      `gorm:"not null;uniqueIndex:idx_dropped_shelf_book;index"`
	CreatedAt time.Time
}

func (DroppedShelfBook) TableName() string {
	return "dropped_shelf_books"
}

type CurrentShelfBook struct {
	ID        uint      `gorm:"primaryKey"`
	ShelfID   uint      `gorm:"not null;uniqueIndex:idx_current_shelf_book"`
	BookID    uint      `gorm:"not null;uniqueIndex:idx_current_shelf_book;index"`
	CreatedAt time.Time
}

func (CurrentShelfBook) TableName() string {
	return "current_shelf_books"
}

type ReadShelfBook struct {
	ID            uint       `gorm:"primaryKey"`
	ShelfID       uint       `gorm:"not null;uniqueIndex:idx_read_shelf_book"`
	BookID        uint       `gorm:"not null;uniqueIndex:idx_read_shelf_book;index"`
	ReadingGoalID *uint      `gorm:"index"`
	DateRead      *time.Time
	Rating        *float64
	CreatedAt     time.Time
}

func (ReadShelfBook) TableName() string {
	return "read_shelf_books"
}

// CustomShelfLink mirrors a read-shelf entry into a custom shelf.
type CustomShelfLink struct {
	ID              uint      `gorm:"primaryKey"`
	CustomShelfID   uint      `gorm:"not null;uniqueIndex:idx_custom_shelf_link"`
	ReadShelfBookID uint      `gorm:"not null;uniqueIndex:idx_custom_shelf_link;index"`
	CreatedAt       time.Time
}

func (CustomShelfLink) TableName() string {
	return "custom_shelf_links"
}

// MembershipRecord is the kind-independent view of a row in one of the
// membership tables.
type MembershipRecord struct {
	ID        uint      `json:"id"`
	Kind      ShelfKind `json:"kind"`
	ShelfID   uint      `json:"shelf_id"`
	BookID    uint      `json:"book_id"`
	CreatedAt time.Time `json:"created_at"`
}
