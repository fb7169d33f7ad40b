package usecase

import (
	"context"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/infrastructure/task"
	"gamerverse/pkg/logger"
)

// IdentityProvider mirrors profile changes into the auth provider.
type IdentityProvider interface {
	UpdateDisplayName(ctx context.Context, uid, displayName string) error
}

type Notifier interface {
	OrderPlaced(ctx context.Context, order *entity.Order) error
	OrderCompleted(ctx context.Context, order *entity.Order) error
	ContactReceived(ctx context.Context, msg *entity.ContactMessage) error
}

// RoleCache remembers resolved admin flags per sign-in session.
type RoleCache interface {
	Get(ctx context.Context, id *entity.Identity) (isAdmin bool, found bool, err error)
	Set(ctx context.Context, id *entity.Identity, isAdmin bool) error
	InvalidateUser(ctx context.Context, uid string) error
}

type nopNotifier struct{}

func (nopNotifier) OrderPlaced(context.Context, *entity.Order) error { return nil }

func (nopNotifier) OrderCompleted(context.Context, *entity.Order) error { return nil }

func (nopNotifier) ContactReceived(context.Context, *entity.ContactMessage) error { return nil }

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

// dispatch runs a best-effort side effect on the task runner. Failures are
// logged by the runner and kept on the task for inspection.
func dispatch(runner *task.Runner, name, owner string, fn func(ctx context.Context) error) *task.Task {
	if runner == nil {
		logger.Warn("No task runner configured, skipping %s", name)
		return nil
	}
	return runner.Submit(name, owner, fn)
}
