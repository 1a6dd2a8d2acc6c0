package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/radreads/internal/config"
	"github.com/mrlokans/radreads/internal/services"
	"github.com/mrlokans/radreads/internal/tasks"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a standard five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// TaskEnqueuer hands a sweep to the task queue.
type TaskEnqueuer interface {
	Enqueue(task backlite.Task) (string, error)
}

// SweepRunner provisions missing default shelves for every user.
type SweepRunner interface {
	ProvisionMissing(ctx context.Context) (services.ProvisionResult, error)
}

// ProvisioningScheduler periodically backfills default shelves for users who
// lack some. Sweeps go through the task queue when one is configured and run
// inline otherwise.
type ProvisioningScheduler struct {
	cfg      config.Provisioning
	enqueuer TaskEnqueuer
	runner   SweepRunner

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc

	// sweepMu is separate from mu so Stop can wait on an in-flight sweep.
	sweepMu    sync.Mutex
	isSweeping bool
}

// NewProvisioningScheduler creates a scheduler. enqueuer may be nil.
func NewProvisioningScheduler(cfg config.Provisioning, enqueuer TaskEnqueuer, runner SweepRunner) *ProvisioningScheduler {
	return &ProvisioningScheduler{
		cfg:      cfg,
		enqueuer: enqueuer,
		runner:   runner,
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// Start begins the scheduler if the sweep is enabled.
func (s *ProvisioningScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.SweepEnabled {
		log.Printf("Shelf provisioning scheduler: disabled")
		return nil
	}

	if err := ValidateCronSchedule(s.cfg.SweepSchedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.cfg.SweepSchedule, err)
	}

	entryID, err := s.cron.AddFunc(s.cfg.SweepSchedule, s.runSweep)
	if err != nil {
		return fmt.Errorf("failed to schedule provisioning sweep: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Shelf provisioning scheduler: started with schedule '%s'. Next run: %v",
		s.cfg.SweepSchedule, s.cron.Entry(entryID).Next)

	// Monitor for context cancellation
	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running sweep to finish and stops the scheduler.
func (s *ProvisioningScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Shelf provisioning scheduler: stopped")
}

// RunNow triggers an immediate sweep in the background.
func (s *ProvisioningScheduler) RunNow() {
	go s.runSweep()
}

// IsRunning returns whether the scheduler is active.
func (s *ProvisioningScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next sweep will occur.
func (s *ProvisioningScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	next := s.cron.Entry(s.entryID).Next
	return &next
}

func (s *ProvisioningScheduler) runSweep() {
	if s.enqueuer != nil {
		id, err := s.enqueuer.Enqueue(tasks.ProvisionAllShelvesTask{})
		if err != nil {
			log.Printf("Shelf provisioning sweep: failed to enqueue: %v", err)
			return
		}
		log.Printf("Shelf provisioning sweep: enqueued task %s", id)
		return
	}

	s.sweepMu.Lock()
	if s.isSweeping {
		s.sweepMu.Unlock()
		log.Printf("Shelf provisioning sweep: skipped (already running)")
		return
	}
	s.isSweeping = true
	s.sweepMu.Unlock()

	defer func() {
		s.sweepMu.Lock()
		s.isSweeping = false
		s.sweepMu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := s.runner.ProvisionMissing(ctx)
	if err != nil {
		log.Printf("Shelf provisioning sweep: %v", err)
		return
	}
	log.Printf("Shelf provisioning sweep: %d users checked, %d shelves created",
		result.UsersChecked, result.ShelvesCreated)
}
