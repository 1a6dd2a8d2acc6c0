package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/radreads/internal/config"
	"github.com/mrlokans/radreads/internal/services"
	"github.com/mrlokans/radreads/internal/tasks"
)

type fakeEnqueuer struct {
	mu     sync.Mutex
	queued []string
	err    error
	done   chan struct{}
}

func (f *fakeEnqueuer) Enqueue(task backlite.Task) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err == nil {
		f.queued = append(f.queued, task.Config().Name)
	}
	f.done <- struct{}{}
	return "task-1", f.err
}

type fakeRunner struct {
	calls chan struct{}
}

func (f *fakeRunner) ProvisionMissing(ctx context.Context) (services.ProvisionResult, error) {
	f.calls <- struct{}{}
	return services.ProvisionResult{UsersChecked: 1, ShelvesCreated: 4}, nil
}

func enabled(schedule string) config.Provisioning {
	return config.Provisioning{SweepEnabled: true, SweepSchedule: schedule}
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("*/30 * * * *"))
	assert.NoError(t, ValidateCronSchedule("0 3 * * *"))
	assert.Error(t, ValidateCronSchedule("every half hour"))
	assert.Error(t, ValidateCronSchedule("0 0 * * * *"))
}

func TestProvisioningScheduler_Disabled(t *testing.T) {
	s := NewProvisioningScheduler(config.Provisioning{SweepEnabled: false, SweepSchedule: "*/30 * * * *"}, nil, &fakeRunner{})

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestProvisioningScheduler_InvalidSchedule(t *testing.T) {
	s := NewProvisioningScheduler(enabled("not a schedule"), nil, &fakeRunner{})

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron schedule")
	assert.False(t, s.IsRunning())
}

func TestProvisioningScheduler_StartStop(t *testing.T) {
	s := NewProvisioningScheduler(enabled("*/30 * * * *"), nil, &fakeRunner{})

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestProvisioningScheduler_StopsWithContext(t *testing.T) {
	s := NewProvisioningScheduler(enabled("*/30 * * * *"), nil, &fakeRunner{})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestProvisioningScheduler_RunNowEnqueuesSweep(t *testing.T) {
	q := &fakeEnqueuer{done: make(chan struct{}, 1)}
	runner := &fakeRunner{calls: make(chan struct{}, 1)}
	s := NewProvisioningScheduler(enabled("*/30 * * * *"), q, runner)

	s.RunNow()

	select {
	case <-q.done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweep was not enqueued")
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	assert.Equal(t, []string{tasks.ProvisionAllShelvesQueue}, q.queued)
	assert.Empty(t, runner.calls, "runner must not run inline when a queue is configured")
}

func TestProvisioningScheduler_RunNowInlineWithoutQueue(t *testing.T) {
	runner := &fakeRunner{calls: make(chan struct{}, 1)}
	s := NewProvisioningScheduler(enabled("*/30 * * * *"), nil, runner)

	s.RunNow()

	select {
	case <-runner.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("sweep did not run")
	}
}

func TestProvisioningScheduler_EnqueueFailureIsLogged(t *testing.T) {
	q := &fakeEnqueuer{err: errors.New("queue closed"), done: make(chan struct{}, 1)}
	s := NewProvisioningScheduler(enabled("*/30 * * * *"), q, &fakeRunner{})

	s.runSweep()

	<-q.done
	assert.Empty(t, q.queued)
}
