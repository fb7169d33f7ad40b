package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitSuccess(t *testing.T) {
	r := NewRunner(time.Second)

	task := r.Submit("payment_config.replace", "admin-1", func(ctx context.Context) error {
		return nil
	})

	require.NoError(t, task.Wait(context.Background()))
	assert.Equal(t, StatusSucceeded, task.Status())

	got, ok := r.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, "admin-1", got.Owner)
	assert.NotNil(t, got.Snapshot().FinishedAt)
}

func TestSubmitFailureIsReported(t *testing.T) {
	r := NewRunner(time.Second)
	boom := errors.New("permission denied")

	task := r.Submit("profile.update", "u1", func(ctx context.Context) error {
		return boom
	})

	err := task.Wait(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StatusFailed, task.Status())
	assert.Equal(t, "permission denied", task.Snapshot().Error)
}

func TestSubmitRecoversPanics(t *testing.T) {
	r := NewRunner(time.Second)

	task := r.Submit("explode", "u1", func(ctx context.Context) error {
		panic("nil map")
	})

	assert.ErrorContains(t, task.Wait(context.Background()), "nil map")
}

func TestTaskOutlivesCallerContext(t *testing.T) {
	r := NewRunner(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})

	task := r.Submit("slow", "u1", func(taskCtx context.Context) error {
		<-release
		return taskCtx.Err()
	})

	cancel()
	assert.ErrorIs(t, task.Wait(ctx), context.Canceled)

	close(release)
	require.NoError(t, task.Wait(context.Background()))
}

func TestTaskTimeout(t *testing.T) {
	r := NewRunner(20 * time.Millisecond)

	task := r.Submit("stuck", "u1", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	assert.ErrorIs(t, task.Wait(context.Background()), context.DeadlineExceeded)
}

func TestPrune(t *testing.T) {
	r := NewRunner(time.Second)
	task := r.Submit("quick", "u1", func(ctx context.Context) error { return nil })
	require.NoError(t, task.Wait(context.Background()))

	assert.Equal(t, 0, r.Prune(time.Now()))
	assert.Equal(t, 1, r.Prune(time.Now().Add(time.Hour)))

	_, ok := r.Get(task.ID)
	assert.False(t, ok)
}

func TestShutdownWaitsForTasks(t *testing.T) {
	r := NewRunner(time.Second)
	finished := make(chan struct{})
	r.Submit("flush", "u1", func(ctx context.Context) error {
		time.Sleep(10 * time.Millisecond)
		close(finished)
		return nil
	})

	require.NoError(t, r.Shutdown(context.Background()))
	select {
	case <-finished:
	default:
		t.Fatal("shutdown returned before task finished")
	}
}

func TestSubmitAfterShutdownIsRejected(t *testing.T) {
	r := NewRunner(time.Second)
	require.NoError(t, r.Shutdown(context.Background()))

	called := false
	task := r.Submit("late", "u1", func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, task.Wait(context.Background()), ErrRunnerClosed)
	assert.Equal(t, StatusFailed, task.Status())
	assert.False(t, called)
	_, ok := r.Get(task.ID)
	assert.False(t, ok)
}

func TestSubmitDuringShutdown(t *testing.T) {
	r := NewRunner(time.Second)

	tasks := make(chan *Task, 50)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			tasks <- r.Submit("burst", "u1", func(ctx context.Context) error {
				time.Sleep(time.Millisecond)
				return nil
			})
		}()
	}

	close(start)
	require.NoError(t, r.Shutdown(context.Background()))
	wg.Wait()
	close(tasks)

	// Accepted tasks were waited for and refused ones finish on Submit.
	for task := range tasks {
		select {
		case <-task.Done():
		default:
			t.Fatalf("task %s still running after shutdown", task.ID)
		}
		if err := task.Err(); err != nil {
			assert.ErrorIs(t, err, ErrRunnerClosed)
		}
	}
}
