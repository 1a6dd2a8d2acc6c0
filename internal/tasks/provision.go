package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/radreads/internal/services"
)

const (
	ProvisionUserShelvesQueue = "provision_default_shelves"
	ProvisionAllShelvesQueue  = "provision_all_default_shelves"
)

// ShelfProvisioner creates missing default shelves for one user or for
// everyone.
type ShelfProvisioner interface {
	services.ShelfProvisioner
	ProvisionMissing(ctx context.Context) (services.ProvisionResult, error)
}

// ProvisionUserShelvesTask creates whichever default shelves one user lacks.
type ProvisionUserShelvesTask struct {
	UserID uint `json:"user_id"`
}

// Config returns the queue configuration for single-user provisioning.
func (t ProvisionUserShelvesTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        ProvisionUserShelvesQueue,
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ProvisionUserShelvesProcessor creates a processor for ProvisionUserShelvesTask.
func ProvisionUserShelvesProcessor(provisioner ShelfProvisioner) backlite.QueueProcessor[ProvisionUserShelvesTask] {
	return func(ctx context.Context, task ProvisionUserShelvesTask) error {
		if provisioner == nil {
			return fmt.Errorf("shelf provisioner not configured")
		}

		created, err := provisioner.ProvisionDefaultShelves(ctx, task.UserID)
		if err != nil {
			return fmt.Errorf("provision shelves for user %d: %w", task.UserID, err)
		}

		if created > 0 {
			log.Printf("[TASK] Created %d default shelves for user %d", created, task.UserID)
		}
		return nil
	}
}

// NewProvisionUserShelvesQueue creates a backlite queue for single-user provisioning.
func NewProvisionUserShelvesQueue(provisioner ShelfProvisioner) backlite.Queue {
	return backlite.NewQueue(ProvisionUserShelvesProcessor(provisioner))
}

// ProvisionAllShelvesTask sweeps every user missing a default shelf. Enqueued
// by the scheduler and on demand.
type ProvisionAllShelvesTask struct{}

// Config returns the queue configuration for the provisioning sweep.
func (t ProvisionAllShelvesTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        ProvisionAllShelvesQueue,
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     30 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ProvisionAllShelvesProcessor creates a processor for ProvisionAllShelvesTask.
func ProvisionAllShelvesProcessor(provisioner ShelfProvisioner) backlite.QueueProcessor[ProvisionAllShelvesTask] {
	return func(ctx context.Context, _ ProvisionAllShelvesTask) error {
		if provisioner == nil {
			return fmt.Errorf("shelf provisioner not configured")
		}

		result, err := provisioner.ProvisionMissing(ctx)
		if err != nil {
			return fmt.Errorf("provision missing shelves: %w", err)
		}

		log.Printf("[TASK] Shelf sweep complete: %d users checked, %d shelves created",
			result.UsersChecked, result.ShelvesCreated)
		return nil
	}
}

// NewProvisionAllShelvesQueue creates a backlite queue for the provisioning sweep.
func NewProvisionAllShelvesQueue(provisioner ShelfProvisioner) backlite.Queue {
	return backlite.NewQueue(ProvisionAllShelvesProcessor(provisioner))
}
