package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/radreads/internal/auth"
	"github.com/mrlokans/radreads/internal/cli"
	"github.com/mrlokans/radreads/internal/database"
	"github.com/mrlokans/radreads/internal/database/catalog"
	"github.com/mrlokans/radreads/internal/database/goals"
	"github.com/mrlokans/radreads/internal/database/users"
	"github.com/mrlokans/radreads/internal/http"
	"github.com/mrlokans/radreads/internal/scheduler"
	"github.com/mrlokans/radreads/internal/services"
	"github.com/mrlokans/radreads/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// ShelfStore implementations
var _ http.ShelfStore = (*services.ShelfService)(nil)

// BookReader implementations
var _ http.BookReader = (*catalog.Repository)(nil)

// GoalStore implementations
var _ http.GoalStore = (*goals.Repository)(nil)

// Pinger implementations
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Identity
// =============================================================================

// AccountService implementations
var _ http.AccountService = (*auth.Service)(nil)

// =============================================================================
// Default Shelf Provisioning
// =============================================================================

// ShelfProvisioner implementations
var _ services.ShelfProvisioner = (*services.ShelfService)(nil)
var _ tasks.ShelfProvisioner = (*services.ShelfService)(nil)
var _ cli.ShelfProvisioner = (*services.ShelfService)(nil)
var _ cli.UserLookup = (*users.Repository)(nil)

// SweepRunner / TaskEnqueuer implementations
var _ scheduler.SweepRunner = (*services.ShelfService)(nil)
var _ scheduler.TaskEnqueuer = (*tasks.Client)(nil)

// TaskQueue implementations
var _ http.TaskQueue = (*tasks.Client)(nil)
