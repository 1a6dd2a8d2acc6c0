package entities

import (
	"time"

	"gorm.io/datatypes"
)

// Book is a catalog entry shared by every user. It is keyed by the identifier
// of the upstream book-data source and never changes once created.
type Book struct {
	ID            uint                        `gorm:"primaryKey" json:"id"`
	ExternalID    string                      `gorm:"uniqueIndex;not null;size:256" json:"external_id"`
	Title         string                      `gorm:"index;size:512" json:"title"`
	Authors       datatypes.JSONSlice[string] `json:"authors"`
	Description   string                      `gorm:"type:text" json:"description"`
	PageCount     int                         `json:"page_count"`
	Categories    datatypes.JSONSlice[string] `json:"categories"`
	PublishedDate string                      `gorm:"size:32" json:"published_date,omitempty"` // As reported upstream, e.g. "1965" or "1965-08-01"
	CreatedAt     time.Time                   `json:"created_at"`
}

func (Book) TableName() string {
	return "books"
}

// BookAttributes is the client-supplied description of a book. It is only
// used when the external identifier is seen for the first time.
type BookAttributes struct {
	ExternalID    string   `json:"external_id" binding:"required,max=256"`
	Title         string   `json:"title" binding:"required,max=512"`
	Authors       []string `json:"authors"`
	Description   string   `json:"description"`
	PageCount     int      `json:"page_count" binding:"gte=0"`
	Categories    []string `json:"categories"`
	PublishedDate string   `json:"published_date" binding:"max=32"`
}

// ToBook converts the attributes into a new, unsaved catalog entry.
func (a BookAttributes) ToBook() *Book {
	authors := a.Authors
	if authors == nil {
		authors = []string{}
	}
	categories := a.Categories
	if categories == nil {
		categories = []string{}
	}
	return &Book{
		ExternalID:    a.ExternalID,
		Title:         a.Title,
		Authors:       datatypes.JSONSlice[string](authors),
		Description:   a.Description,
		PageCount:     a.PageCount,
		Categories:    datatypes.JSONSlice[string](categories),
		PublishedDate: a.PublishedDate,
	}
}
