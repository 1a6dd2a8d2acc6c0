package services

import (
	"context"

	"github.com/mrlokans/radreads/internal/entities"
)

// ShelfTarget identifies the shelf an add or list request targets. Name is
// only meaningful for custom shelves.
type ShelfTarget struct {
	Kind entities.ShelfKind
	Name string
}

// DefaultTarget targets one of the user's singleton shelves.
func DefaultTarget(kind entities.ShelfKind) ShelfTarget {
	return ShelfTarget{Kind: kind}
}

// CustomTarget targets the user's custom shelf with the given name.
func CustomTarget(name string) ShelfTarget {
	return ShelfTarget{Kind: entities.ShelfKindCustom, Name: name}
}

// ShelfProvisioner creates missing default shelves. Implemented by
// ShelfService and consumed by the registration flow and the backfill task.
type ShelfProvisioner interface {
	ProvisionDefaultShelves(ctx context.Context, userID uint) (int64, error)
}

// ProvisionResult summarizes a provisioning sweep.
type ProvisionResult struct {
	UsersChecked   int
	ShelvesCreated int64
}
