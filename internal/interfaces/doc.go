// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - ShelfStore: Shelf dispatcher as seen by HTTP (internal/http/stores.go)
//   - BookReader: Read-only catalog access (internal/http/stores.go)
//   - GoalStore: Reading goal CRUD (internal/http/stores.go)
//   - Pinger: Database liveness (internal/http/stores.go)
//
// ## Identity Interfaces
//
//   - AccountService: Register, login and token issuance (internal/http/stores.go)
//
// ## Provisioning Interfaces
//
//   - ShelfProvisioner: Creates missing default shelves (internal/services/interfaces.go)
//   - SweepRunner: Backfills every user lacking default shelves (internal/scheduler/provisioning.go)
//   - TaskEnqueuer / TaskQueue: Background task submission (internal/scheduler, internal/http/tasks.go)
//
// # Adding a New Default Shelf Kind
//
//  1. Add the constant and its display name in internal/entities/shelf.go and
//     list it in DefaultShelfKinds.
//
//  2. Add the ledger entity and list it in database.Entities
//     (internal/database/database.go).
//
//  3. Extend both switches in internal/database/membership so the new kind
//     maps to its ledger table. Unhandled kinds are reported as errors.
//
//  4. Run `provision-shelves` so existing accounts receive the new shelf.
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//     func (r *Repository) WithTx(tx *gorm.DB) *Repository
//
//  3. Implement interface methods
//
//  4. Add compile-time check:
//
//     var _ http.SomeStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
