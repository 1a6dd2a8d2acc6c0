package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/radreads/internal/config"
	"github.com/mrlokans/radreads/internal/database"
	"github.com/mrlokans/radreads/internal/database/users"
	"github.com/mrlokans/radreads/internal/entities"
	"github.com/mrlokans/radreads/internal/services"
)

// ShelfProvisioner is the part of the shelf service the command drives.
type ShelfProvisioner interface {
	ProvisionDefaultShelves(ctx context.Context, userID uint) (int64, error)
	ProvisionMissing(ctx context.Context) (services.ProvisionResult, error)
}

// UserLookup resolves the -email flag to an account.
type UserLookup interface {
	GetUserByEmail(email string) (*entities.User, error)
}

// ProvisionShelvesCommand creates missing default shelves, either for one
// account or for every account that lacks any.
type ProvisionShelvesCommand struct {
	DatabasePath string
	UserID       uint
	Email        string
	LogLevel     string
}

func NewProvisionShelvesCommand() *ProvisionShelvesCommand {
	return &ProvisionShelvesCommand{}
}

func (cmd *ProvisionShelvesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("provision-shelves", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.UintVar(&cmd.UserID, "user", 0, "Provision only this user ID")
	fs.StringVar(&cmd.Email, "email", "", "Provision only the user with this email")
	fs.StringVar(&cmd.LogLevel, "log-level", "warn", "Database log level (silent, error, warn, info)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s provision-shelves [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create the default shelves (Want to Read, Currently Reading, Read, Dropped)\n")
		fmt.Fprintf(os.Stderr, "for accounts that are missing them. Safe to run repeatedly.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Backfill every account:\n")
		fmt.Fprintf(os.Stderr, "  %s provision-shelves\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Backfill a single account:\n")
		fmt.Fprintf(os.Stderr, "  %s provision-shelves -email reader@example.com\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.UserID != 0 && cmd.Email != "" {
		return fmt.Errorf("-user and -email are mutually exclusive")
	}

	return nil
}

func (cmd *ProvisionShelvesCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := database.NewDatabase(absDBPath, database.ParseLogLevel(cmd.LogLevel))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return cmd.Execute(context.Background(), services.NewShelfService(db.DB), users.NewRepository(db.DB))
}

// Execute runs the provisioning against already constructed dependencies.
func (cmd *ProvisionShelvesCommand) Execute(ctx context.Context, provisioner ShelfProvisioner, lookup UserLookup) error {
	userID := cmd.UserID
	if cmd.Email != "" {
		user, err := lookup.GetUserByEmail(cmd.Email)
		if err != nil {
			return fmt.Errorf("failed to find user %s: %w", cmd.Email, err)
		}
		userID = user.ID
	}

	if userID != 0 {
		created, err := provisioner.ProvisionDefaultShelves(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to provision shelves for user %d: %w", userID, err)
		}
		fmt.Printf("User %d: created %d default shelves\n", userID, created)
		return nil
	}

	result, err := provisioner.ProvisionMissing(ctx)
	if err != nil {
		return fmt.Errorf("failed to provision shelves: %w", err)
	}
	fmt.Printf("Checked %d users, created %d default shelves\n", result.UsersChecked, result.ShelvesCreated)
	return nil
}
