package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/mrlokans/radreads/internal/apperrors"
	"github.com/mrlokans/radreads/internal/database/catalog"
	"github.com/mrlokans/radreads/internal/database/membership"
	"github.com/mrlokans/radreads/internal/database/shelves"
	"github.com/mrlokans/radreads/internal/entities"
)

// ShelfService attaches books to shelves and lists shelf contents. Every
// method runs in a single transaction; on error nothing it wrote survives.
type ShelfService struct {
	db      *gorm.DB
	catalog *catalog.Repository
	shelves *shelves.Repository
	ledger  *membership.Repository
}

// NewShelfService creates a new ShelfService.
func NewShelfService(db *gorm.DB) *ShelfService {
	return &ShelfService{
		db:      db,
		catalog: catalog.NewRepository(db),
		shelves: shelves.NewRepository(db),
		ledger:  membership.NewRepository(db),
	}
}

// txRepos is the set of repositories bound to one transaction.
type txRepos struct {
	catalog *catalog.Repository
	shelves *shelves.Repository
	ledger  *membership.Repository
}

func (s *ShelfService) inTx(ctx context.Context, fn func(r txRepos) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos{
			catalog: s.catalog.WithTx(tx),
			shelves: s.shelves.WithTx(tx),
			ledger:  s.ledger.WithTx(tx),
		})
	})
}

// AddToDefaultShelf catalogs the book if needed and puts it on the user's
// shelf of the given default kind.
func (s *ShelfService) AddToDefaultShelf(ctx context.Context, userID uint, kind entities.ShelfKind, attrs entities.BookAttributes) (*entities.Book, error) {
	if !kind.IsDefault() {
		return nil, apperrors.InvalidArgument("%q is not a default shelf", kind)
	}
	return s.AddToShelf(ctx, userID, DefaultTarget(kind), attrs)
}

// AddToCustomShelf catalogs the book if needed, promotes it to the user's
// read shelf if it is not there yet, and links the read entry into the named
// custom shelf.
func (s *ShelfService) AddToCustomShelf(ctx context.Context, userID uint, name string, attrs entities.BookAttributes) (*entities.Book, error) {
	return s.AddToShelf(ctx, userID, CustomTarget(name), attrs)
}

// AddToShelf dispatches an add request on the target's kind.
func (s *ShelfService) AddToShelf(ctx context.Context, userID uint, target ShelfTarget, attrs entities.BookAttributes) (*entities.Book, error) {
	var book *entities.Book
	err := s.inTx(ctx, func(r txRepos) error {
		var err error
		book, err = r.catalog.EnsureBook(attrs)
		if err != nil {
			return err
		}

		switch target.Kind {
		case entities.ShelfKindToRead, entities.ShelfKindCurrent, entities.ShelfKindRead:
			return addDefault(r, userID, target.Kind, book)
		case entities.ShelfKindDropped:
			// A dropped book is also recorded as current.
			if err := addDefault(r, userID, entities.ShelfKindDropped, book); err != nil {
				return err
			}
			return addDefault(r, userID, entities.ShelfKindCurrent, book)
		case entities.ShelfKindCustom:
			return addCustom(r, userID, target.Name, book)
		default:
			return apperrors.InvalidArgument("unknown shelf kind %q", target.Kind)
		}
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

func addDefault(r txRepos, userID uint, kind entities.ShelfKind, book *entities.Book) error {
	shelf, err := r.shelves.GetDefaultShelf(userID, kind)
	if err != nil {
		return err
	}
	if _, err := r.ledger.Add(kind, shelf.ID, book.ID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.Conflict("%q is already on your %s shelf", book.Title, kind.DisplayName()).WithCause(err)
		}
		return err
	}
	return nil
}

func addCustom(r txRepos, userID uint, name string, book *entities.Book) error {
	custom, err := r.shelves.GetCustomShelf(userID, name)
	if err != nil {
		return err
	}
	readShelf, err := r.shelves.GetDefaultShelf(userID, entities.ShelfKindRead)
	if err != nil {
		return err
	}

	entry, err := r.ledger.FindRead(readShelf.ID, book.ID)
	if err != nil {
		return err
	}

	readEntryID := uint(0)
	if entry != nil {
		readEntryID = entry.ID
	} else {
		rec, err := r.ledger.Add(entities.ShelfKindRead, readShelf.ID, book.ID)
		if err != nil {
			return err
		}
		readEntryID = rec.ID
	}

	if _, err := r.ledger.Link(custom.ID, readEntryID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.Conflict("%q is already on shelf %q", book.Title, custom.Name).WithCause(err)
		}
		return err
	}
	return nil
}

// ListDefaultShelf returns the books on the user's shelf of the given
// default kind, earliest added first.
func (s *ShelfService) ListDefaultShelf(ctx context.Context, userID uint, kind entities.ShelfKind) ([]entities.Book, error) {
	if !kind.IsDefault() {
		return nil, apperrors.InvalidArgument("%q is not a default shelf", kind)
	}

	var books []entities.Book
	err := s.inTx(ctx, func(r txRepos) error {
		shelf, err := r.shelves.GetDefaultShelf(userID, kind)
		if err != nil {
			return err
		}
		ids, err := r.ledger.ListBookIDs(kind, shelf.ID)
		if err != nil {
			return err
		}
		books, err = r.catalog.GetBooksByIDs(ids)
		return err
	})
	return books, err
}

// ListCustomShelf returns the books linked into the user's named custom
// shelf, in link order.
func (s *ShelfService) ListCustomShelf(ctx context.Context, userID uint, name string) ([]entities.Book, error) {
	var books []entities.Book
	err := s.inTx(ctx, func(r txRepos) error {
		shelf, err := r.shelves.GetCustomShelf(userID, name)
		if err != nil {
			return err
		}
		ids, err := r.ledger.ListLinkedBookIDs(shelf.ID)
		if err != nil {
			return err
		}
		books, err = r.catalog.GetBooksByIDs(ids)
		return err
	})
	return books, err
}

// ListShelf dispatches a list request on the target's kind.
func (s *ShelfService) ListShelf(ctx context.Context, userID uint, target ShelfTarget) ([]entities.Book, error) {
	switch target.Kind {
	case entities.ShelfKindToRead, entities.ShelfKindDropped, entities.ShelfKindCurrent, entities.ShelfKindRead:
		return s.ListDefaultShelf(ctx, userID, target.Kind)
	case entities.ShelfKindCustom:
		return s.ListCustomShelf(ctx, userID, target.Name)
	default:
		return nil, apperrors.InvalidArgument("unknown shelf kind %q", target.Kind)
	}
}

// CreateCustomShelf creates a custom shelf for the user.
func (s *ShelfService) CreateCustomShelf(ctx context.Context, userID uint, name string) (*entities.CustomShelf, error) {
	var shelf *entities.CustomShelf
	err := s.inTx(ctx, func(r txRepos) error {
		var err error
		shelf, err = r.shelves.CreateCustomShelf(userID, name)
		return err
	})
	return shelf, err
}

// RenameCustomShelf renames one of the user's custom shelves and returns the
// new name.
func (s *ShelfService) RenameCustomShelf(ctx context.Context, userID uint, oldName, newName string) (string, error) {
	var shelf *entities.CustomShelf
	err := s.inTx(ctx, func(r txRepos) error {
		var err error
		shelf, err = r.shelves.RenameCustomShelf(userID, oldName, newName)
		return err
	})
	if err != nil {
		return "", err
	}
	return shelf.Name, nil
}

// ListCustomShelves returns the user's custom shelves in creation order.
func (s *ShelfService) ListCustomShelves(ctx context.Context, userID uint) ([]entities.CustomShelf, error) {
	return s.shelves.WithTx(s.db.WithContext(ctx)).GetCustomShelves(userID)
}

// ListDefaultShelves returns the user's default shelves in display order.
func (s *ShelfService) ListDefaultShelves(ctx context.Context, userID uint) ([]entities.DefaultShelf, error) {
	return s.shelves.WithTx(s.db.WithContext(ctx)).GetDefaultShelves(userID)
}

// ProvisionDefaultShelves creates whichever default shelves the user is
// missing and returns how many were created.
func (s *ShelfService) ProvisionDefaultShelves(ctx context.Context, userID uint) (int64, error) {
	var created int64
	err := s.inTx(ctx, func(r txRepos) error {
		var err error
		created, err = r.shelves.ProvisionDefaultShelves(userID)
		return err
	})
	return created, err
}

// ProvisionMissing provisions default shelves for every user that lacks any.
// A failure for one user is logged and does not stop the sweep.
func (s *ShelfService) ProvisionMissing(ctx context.Context) (ProvisionResult, error) {
	var result ProvisionResult

	ids, err := s.shelves.WithTx(s.db.WithContext(ctx)).ListUsersMissingDefaultShelves()
	if err != nil {
		return result, err
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.UsersChecked++
		created, err := s.ProvisionDefaultShelves(ctx, id)
		if err != nil {
			log.Printf("Failed to provision default shelves for user %d: %v", id, err)
			continue
		}
		result.ShelvesCreated += created
	}
	return result, nil
}
