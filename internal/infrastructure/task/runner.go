package task

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"gamerverse/pkg/logger"
)

// ErrRunnerClosed is the error of a task submitted after Shutdown began.
var ErrRunnerClosed = errors.New("task runner is shutting down")

type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Task is a write that runs detached from the request that started it. Its
// outcome is kept so callers can wait on it or poll it later.
type Task struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Owner     string    `json:"-"`
	StartedAt time.Time `json:"started_at"`

	mu         sync.RWMutex
	status     Status
	err        error
	finishedAt time.Time
	done       chan struct{}
}

type Snapshot struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Status     Status     `json:"status"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes or ctx ends, returning the task error.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Task) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.err
}

func (t *Task) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

func (t *Task) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := Snapshot{ID: t.ID, Name: t.Name, Status: t.status, StartedAt: t.StartedAt}
	if t.err != nil {
		s.Error = t.err.Error()
	}
	if !t.finishedAt.IsZero() {
		finished := t.finishedAt
		s.FinishedAt = &finished
	}
	return s
}

func (t *Task) finish(err error) {
	t.mu.Lock()
	t.err = err
	t.finishedAt = time.Now()
	if err != nil {
		t.status = StatusFailed
	} else {
		t.status = StatusSucceeded
	}
	t.mu.Unlock()
	close(t.done)
}

type Runner struct {
	timeout   time.Duration
	retention time.Duration

	mu      sync.RWMutex
	tasks   map[string]*Task
	closing bool
	wg      sync.WaitGroup
}

func NewRunner(timeout time.Duration) *Runner {
	return &Runner{
		timeout:   timeout,
		retention: 30 * time.Minute,
		tasks:     make(map[string]*Task),
	}
}

// Submit starts fn in the background. fn gets its own context bounded by the
// runner timeout, never the caller's request context.
func (r *Runner) Submit(name, owner string, fn func(ctx context.Context) error) *Task {
	t := &Task{
		ID:        uuid.NewString(),
		Name:      name,
		Owner:     owner,
		StartedAt: time.Now(),
		status:    StatusRunning,
		done:      make(chan struct{}),
	}

	r.mu.Lock()
	if r.closing {
		r.mu.Unlock()
		logger.Warn("Task %s rejected, runner is shutting down", name)
		t.finish(ErrRunnerClosed)
		return t
	}
	r.tasks[t.ID] = t
	// Add under mu so Shutdown never starts waiting while a task is being added.
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		err := run(ctx, fn)
		if err != nil {
			logger.Error("Task %s (%s) failed: %v", t.Name, t.ID, err)
		} else {
			logger.Debug("Task %s (%s) finished", t.Name, t.ID)
		}
		t.finish(err)
	}()

	return t
}

func run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("task panicked: %v", rec)
		}
	}()
	return fn(ctx)
}

func (r *Runner) Get(id string) (*Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	return t, ok
}

// Prune drops finished tasks older than the retention window.
func (r *Runner) Prune(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, t := range r.tasks {
		t.mu.RLock()
		expired := !t.finishedAt.IsZero() && now.Sub(t.finishedAt) > r.retention
		t.mu.RUnlock()
		if expired {
			delete(r.tasks, id)
			removed++
		}
	}
	return removed
}

func (r *Runner) StartJanitor(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := r.Prune(now); n > 0 {
					logger.Debug("Pruned %d finished tasks", n)
				}
			}
		}
	}()
}

// Shutdown stops accepting tasks and waits for in-flight ones until ctx ends.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closing = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
