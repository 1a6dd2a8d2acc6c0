// Package catalog provides the deduplicated book catalog shared by all users.
//
// Books are keyed by the upstream source's external identifier. EnsureBook is
// a lookup-or-create, not an upsert: attributes supplied for an identifier
// that is already cataloged are discarded.
//
// # Usage
//
//	repo := catalog.NewRepository(db)
//	book, err := repo.WithTx(tx).EnsureBook(attrs)
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/radreads/internal/apperrors"
	"github.com/mrlokans/radreads/internal/database"
	"github.com/mrlokans/radreads/internal/entities"
)

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// EnsureBook returns the catalog entry for attrs.ExternalID, creating it from
// attrs if it does not exist yet. An existing entry is returned unchanged.
func (r *Repository) EnsureBook(attrs entities.BookAttributes) (*entities.Book, error) {
	externalID := strings.TrimSpace(attrs.ExternalID)
	if externalID == "" {
		return nil, apperrors.InvalidArgument("book external_id is required")
	}
	attrs.ExternalID = externalID

	book, err := r.GetBookByExternalID(externalID)
	if err == nil {
		return book, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	// A concurrent first reference may insert the same identifier between the
	// lookup and this insert; DO NOTHING leaves its row in place and the
	// re-read below returns it.
	candidate := attrs.ToBook()
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoNothing: true,
	}).Create(candidate).Error; err != nil {
		return nil, fmt.Errorf("failed to create book %s: %w", externalID, err)
	}

	return r.GetBookByExternalID(externalID)
}

// GetBookByExternalID retrieves a book by its upstream identifier.
func (r *Repository) GetBookByExternalID(externalID string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("external_id = ?", externalID).First(&book).Error
	if database.IsNotFound(err) {
		return nil, apperrors.NotFound("book %q not found", externalID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find book %s: %w", externalID, err)
	}
	return &book, nil
}

// GetBookByID retrieves a book by ID.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if database.IsNotFound(err) {
		return nil, apperrors.NotFound("book not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return &book, nil
}

// GetBooksByIDs resolves ids to books, preserving the order of ids.
// Duplicate ids yield duplicate entries; ids with no row are skipped.
func (r *Repository) GetBooksByIDs(ids []uint) ([]entities.Book, error) {
	if len(ids) == 0 {
		return []entities.Book{}, nil
	}

	var found []entities.Book
	if err := r.db.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to load books: %w", err)
	}

	byID := make(map[uint]entities.Book, len(found))
	for _, b := range found {
		byID[b.ID] = b
	}

	books := make([]entities.Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			books = append(books, b)
		}
	}
	return books, nil
}

// SearchBooks searches the catalog by title or author (case-insensitive partial match).
func (r *Repository) SearchBooks(query string, limit int) ([]entities.Book, error) {
	var books []entities.Book
	searchPattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	q := r.db.
		Where("LOWER(title) LIKE ? OR LOWER(authors) LIKE ?", searchPattern, searchPattern).
		Order("title ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&books).Error
	return books, err
}

// CountBooks returns the number of cataloged books.
func (r *Repository) CountBooks() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}
