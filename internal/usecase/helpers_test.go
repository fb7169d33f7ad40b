package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/infrastructure/cache"
	"gamerverse/internal/infrastructure/task"
)

func testIdentity(uid string) *entity.Identity {
	now := time.Now()
	return &entity.Identity{
		UID:       uid,
		Email:     uid + "@example.com",
		IssuedAt:  now.Add(-time.Minute),
		ExpiresAt: now.Add(time.Hour),
	}
}

func seedProfile(s *memStore, uid string, isAdmin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[uid] = &entity.UserProfile{UID: uid, Email: uid + "@example.com", IsAdmin: isAdmin}
}

func newTestRunner(t *testing.T) *task.Runner {
	t.Helper()
	r := task.NewRunner(5 * time.Second)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = r.Shutdown(ctx)
	})
	return r
}

func newTestRoles(s *memStore) *RoleUseCase {
	return NewRoleUseCase(fakeProfileRepo{s}, cache.NewMemoryRoleCache())
}

func waitTask(t *testing.T, tk *task.Task) error {
	t.Helper()
	require.NotNil(t, tk)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return tk.Wait(ctx)
}
