// Package membership records which books sit on which shelf instance.
//
// Each default shelf kind has its own table, unique on (shelf, book). Custom
// shelves do not reference books: they link to rows of the read-shelf table,
// so a book must be on the owner's read shelf before it can be mirrored into
// a custom shelf.
//
// # Usage
//
//	ledger := membership.NewRepository(db).WithTx(tx)
//	rec, err := ledger.Add(entities.ShelfKindRead, shelf.ID, book.ID)
package membership

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/radreads/internal/apperrors"
	"github.com/mrlokans/radreads/internal/database"
	"github.com/mrlokans/radreads/internal/entities"
)

// Repository handles all shelf membership database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new membership repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// tableFor returns the membership table backing a default shelf kind.
func tableFor(kind entities.ShelfKind) (string, error) {
	switch kind {
	case entities.ShelfKindToRead:
		return entities.ToReadShelfBook{}.TableName(), nil
	case entities.ShelfKindDropped:
		return entities.DroppedShelfBook{}.TableName(), nil
	case entities.ShelfKindCurrent:
		return entities.CurrentShelfBook{}.TableName(), nil
	case entities.ShelfKindRead:
		return entities.ReadShelfBook{}.TableName(), nil
	}
	return "", apperrors.InvalidArgument("%q shelves have no membership table", kind)
}

// Add puts bookID on the shelf instance shelfID of the given default kind.
// Fails with a conflict if the book is already on that shelf.
func (r *Repository) Add(kind entities.ShelfKind, shelfID, bookID uint) (*entities.MembershipRecord, error) {
	var (
		id        uint
		createdAt time.Time
		err       error
	)

	switch kind {
	case entities.ShelfKindToRead:
		m := &entities.ToReadShelfBook{ShelfID: shelfID, BookID: bookID}
		err = r.db.Create(m).Error
		id, createdAt = m.ID, m.CreatedAt
	case entities.ShelfKindDropped:
		m := &entities.DroppedShelfBook{ShelfID: shelfID, BookID: bookID}
		err = r.db.Create(m).Error
		id, createdAt = m.ID, m.CreatedAt
	case entities.ShelfKindCurrent:
		m := &entities.CurrentShelfBook{ShelfID: shelfID, BookID: bookID}
		err = r.db.Create(m).Error
		id, createdAt = m.ID, m.CreatedAt
	case entities.ShelfKindRead:
		m := &entities.ReadShelfBook{ShelfID: shelfID, BookID: bookID}
		err = r.db.Create(m).Error
		id, createdAt = m.ID, m.CreatedAt
	default:
		return nil, apperrors.InvalidArgument("%q shelves have no membership table", kind)
	}

	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("book is already on the %s shelf", kind.DisplayName())
		}
		return nil, fmt.Errorf("failed to add book to %s shelf: %w", kind, err)
	}

	return &entities.MembershipRecord{
		ID:        id,
		Kind:      kind,
		ShelfID:   shelfID,
		BookID:    bookID,
		CreatedAt: createdAt,
	}, nil
}

// ListBookIDs returns the ids of the books on a default shelf instance,
// earliest added first.
func (r *Repository) ListBookIDs(kind entities.ShelfKind, shelfID uint) ([]uint, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	ids := []uint{}
	err = r.db.Table(table).
		Where("shelf_id = ?", shelfID).
		Order("id ASC").
		Pluck("book_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s shelf: %w", kind, err)
	}
	return ids, nil
}

// FindRead returns the read-shelf entry for bookID, or nil if the book is not
// on that read shelf.
func (r *Repository) FindRead(shelfID, bookID uint) (*entities.ReadShelfBook, error) {
	var entries []entities.ReadShelfBook
	err := r.db.
		Where("shelf_id = ? AND book_id = ?", shelfID, bookID).
		Limit(1).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up read shelf entry: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// Link mirrors a read-shelf entry into a custom shelf. Fails with a conflict
// if the entry is already linked there.
func (r *Repository) Link(customShelfID, readShelfBookID uint) (*entities.CustomShelfLink, error) {
	link := &entities.CustomShelfLink{
		CustomShelfID:   customShelfID,
		ReadShelfBookID: readShelfBookID,
	}
	if err := r.db.Create(link).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("book is already on this shelf")
		}
		return nil, fmt.Errorf("failed to link book to custom shelf: %w", err)
	}
	return link, nil
}

// ListLinkedBookIDs returns the ids of the books mirrored into a custom
// shelf, in link order.
func (r *Repository) ListLinkedBookIDs(customShelfID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.Table(entities.CustomShelfLink{}.TableName()+" AS l").
		Joins("JOIN "+entities.ReadShelfBook{}.TableName()+" AS rs ON rs.id = l.read_shelf_book_id").
		Where("l.custom_shelf_id = ?", customShelfID).
		Order("l.id ASC").
		Pluck("rs.book_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list custom shelf: %w", err)
	}
	return ids, nil
}

// CountMemberships returns how many books sit on a default shelf instance.
func (r *Repository) CountMemberships(kind entities.ShelfKind, shelfID uint) (int64, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.Table(table).Where("shelf_id = ?", shelfID).Count(&count).Error
	return count, err
}
