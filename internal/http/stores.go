package http

import (
	"context"
	"time"

	"github.com/mrlokans/radreads/internal/auth"
	"github.com/mrlokans/radreads/internal/entities"
)

// This file consolidates the store interfaces used by HTTP controllers.
// Each controller depends only on the operations it calls.

// ShelfStore is the shelf dispatcher as seen by ShelfController.
type ShelfStore interface {
	AddToDefaultShelf(ctx context.Context, userID uint, kind entities.ShelfKind, attrs entities.BookAttributes) (*entities.Book, error)
	AddToCustomShelf(ctx context.Context, userID uint, name string, attrs entities.BookAttributes) (*entities.Book, error)
	ListDefaultShelf(ctx context.Context, userID uint, kind entities.ShelfKind) ([]entities.Book, error)
	ListCustomShelf(ctx context.Context, userID uint, name string) ([]entities.Book, error)
	CreateCustomShelf(ctx context.Context, userID uint, name string) (*entities.CustomShelf, error)
	RenameCustomShelf(ctx context.Context, userID uint, oldName, newName string) (string, error)
	ListCustomShelves(ctx context.Context, userID uint) ([]entities.CustomShelf, error)
	ListDefaultShelves(ctx context.Context, userID uint) ([]entities.DefaultShelf, error)
}

// BookReader provides read access to the shared catalog.
type BookReader interface {
	GetBookByID(id uint) (*entities.Book, error)
	SearchBooks(query string, limit int) ([]entities.Book, error)
}

// GoalStore provides reading-goal CRUD scoped to a user.
type GoalStore interface {
	CreateGoal(userID uint, in entities.GoalInput) (*entities.ReadingGoal, error)
	GetGoals(userID uint) ([]entities.ReadingGoal, error)
	GetActiveGoals(userID uint) ([]entities.ReadingGoal, error)
	GetCompletedGoals(userID uint) ([]entities.ReadingGoal, error)
	UpdateGoal(userID, goalID uint, upd entities.GoalUpdate) (*entities.ReadingGoal, error)
	DeleteGoal(userID, goalID uint) error
}

// AccountService is the identity collaborator used by AuthController.
type AccountService interface {
	Register(ctx context.Context, in auth.RegisterInput) (*entities.User, error)
	Authenticate(ctx context.Context, email, password string) (*entities.User, error)
	IssueToken(user *entities.User) (string, time.Time, error)
	GetUserByID(ctx context.Context, id uint) (*entities.User, error)
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
