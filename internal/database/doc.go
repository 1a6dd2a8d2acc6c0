// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── errors.go        # Store error classification (unique violations)
//	├── catalog/         # Deduplicated book catalog
//	├── shelves/         # Default and custom shelf registry
//	├── membership/      # Per-kind shelf membership ledgers and custom-shelf links
//	├── goals/           # Reading goals
//	└── users/           # User accounts
//
// # Transactions
//
// Repositories never open transactions themselves. Services open one with
// db.Transaction and bind each repository to it with WithTx, so a multi-step
// operation either commits as a whole or leaves nothing behind:
//
//	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
//	    book, err := catalogRepo.WithTx(tx).EnsureBook(attrs)
//	    ...
//	    _, err = ledger.WithTx(tx).Add(entities.ShelfKindRead, shelf.ID, book.ID)
//	    return err
//	})
//
// # Errors
//
// Uniqueness violations are translated to apperrors.ErrConflict and missing
// rows to apperrors.ErrNotFound at the repository boundary. Every other store
// error is returned wrapped and treated as fatal by callers.
package database
