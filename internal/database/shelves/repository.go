// Package shelves provides the per-user shelf registry: the four singleton
// default shelves and any number of user-named custom shelves.
//
// # Usage
//
//	repo := shelves.NewRepository(db)
//	shelf, err := repo.GetDefaultShelf(userID, entities.ShelfKindRead)
package shelves

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/radreads/internal/apperrors"
	"github.com/mrlokans/radreads/internal/database"
	"github.com/mrlokans/radreads/internal/entities"
)

// Repository handles all shelf database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new shelves repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ProvisionDefaultShelves creates whichever of the user's default shelves are
// missing. Safe to call repeatedly. Returns the number of shelves created.
func (r *Repository) ProvisionDefaultShelves(userID uint) (int64, error) {
	rows := make([]entities.DefaultShelf, 0, len(entities.DefaultShelfKinds))
	for _, kind := range entities.DefaultShelfKinds {
		rows = append(rows, entities.DefaultShelf{
			UserID: userID,
			Kind:   kind,
			Name:   kind.DisplayName(),
		})
	}

	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "kind"}},
		DoNothing: true,
	}).Create(&rows)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to provision default shelves for user %d: %w", userID, result.Error)
	}
	return result.RowsAffected, nil
}

// GetDefaultShelf returns the user's singleton shelf of the given kind.
func (r *Repository) GetDefaultShelf(userID uint, kind entities.ShelfKind) (*entities.DefaultShelf, error) {
	if !kind.IsDefault() {
		return nil, apperrors.InvalidArgument("%q is not a default shelf kind", kind)
	}

	var shelf entities.DefaultShelf
	err := r.db.Where("user_id = ? AND kind = ?", userID, kind).First(&shelf).Error
	if database.IsNotFound(err) {
		return nil, apperrors.NotFound("%s shelf not found", kind.DisplayName())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s shelf: %w", kind, err)
	}
	return &shelf, nil
}

// GetDefaultShelves returns the user's default shelves in display order.
func (r *Repository) GetDefaultShelves(userID uint) ([]entities.DefaultShelf, error) {
	var found []entities.DefaultShelf
	if err := r.db.Where("user_id = ?", userID).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to get default shelves: %w", err)
	}

	byKind := make(map[entities.ShelfKind]entities.DefaultShelf, len(found))
	for _, s := range found {
		byKind[s.Kind] = s
	}

	shelves := make([]entities.DefaultShelf, 0, len(found))
	for _, kind := range entities.DefaultShelfKinds {
		if s, ok := byKind[kind]; ok {
			shelves = append(shelves, s)
		}
	}
	return shelves, nil
}

// GetCustomShelves returns the user's custom shelves in creation order.
func (r *Repository) GetCustomShelves(userID uint) ([]entities.CustomShelf, error) {
	shelves := []entities.CustomShelf{}
	err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&shelves).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get custom shelves: %w", err)
	}
	return shelves, nil
}

// GetCustomShelf returns the user's custom shelf with the given name. Shelves
// of the same name owned by other users never match.
func (r *Repository) GetCustomShelf(userID uint, name string) (*entities.CustomShelf, error) {
	var shelf entities.CustomShelf
	err := r.db.
		Where("user_id = ?", userID).
		Where("name = ?", strings.TrimSpace(name)).
		First(&shelf).Error
	if database.IsNotFound(err) {
		return nil, apperrors.NotFound("shelf %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shelf %q: %w", name, err)
	}
	return &shelf, nil
}

// CreateCustomShelf creates a custom shelf. Fails with a conflict if the user
// already has a shelf with that name.
func (r *Repository) CreateCustomShelf(userID uint, name string) (*entities.CustomShelf, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.InvalidArgument("shelf name is required")
	}

	shelf := &entities.CustomShelf{UserID: userID, Name: name}
	if err := r.db.Create(shelf).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("shelf %q already exists", name)
		}
		return nil, fmt.Errorf("failed to create shelf %q: %w", name, err)
	}
	return shelf, nil
}

// RenameCustomShelf renames one of the user's custom shelves and returns the
// updated shelf. Renaming a shelf to its current name succeeds without writing.
func (r *Repository) RenameCustomShelf(userID uint, oldName, newName string) (*entities.CustomShelf, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, apperrors.InvalidArgument("new shelf name is required")
	}

	shelf, err := r.GetCustomShelf(userID, oldName)
	if err != nil {
		return nil, err
	}
	if shelf.Name == newName {
		return shelf, nil
	}

	err = r.db.Model(shelf).Update("name", newName).Error
	if database.IsUniqueViolation(err) {
		return nil, apperrors.Conflict("shelf %q already exists", newName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to rename shelf %q: %w", oldName, err)
	}
	shelf.Name = newName
	return shelf, nil
}

// ListUsersMissingDefaultShelves returns the ids of users that own fewer than
// the full set of default shelves.
func (r *Repository) ListUsersMissingDefaultShelves() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entities.User{}).
		Where("(SELECT COUNT(*) FROM default_shelves ds WHERE ds.user_id = users.id) < ?", len(entities.DefaultShelfKinds)).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users missing default shelves: %w", err)
	}
	return ids, nil
}
