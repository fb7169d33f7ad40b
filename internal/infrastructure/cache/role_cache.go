package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"gamerverse/internal/domain/entity"
)

const rolePrefix = "gamerverse:role:"

func roleKey(id *entity.Identity) string {
	return rolePrefix + id.SessionKey()
}

func userPattern(uid string) string {
	return rolePrefix + uid + ":"
}

// ttlFor keeps entries until the ID token expires, capped at an hour.
func ttlFor(id *entity.Identity, now time.Time) time.Duration {
	ttl := time.Hour
	if !id.ExpiresAt.IsZero() {
		if left := id.ExpiresAt.Sub(now); left < ttl {
			ttl = left
		}
	}
	return ttl
}

type memoryEntry struct {
	isAdmin   bool
	expiresAt time.Time
}

type MemoryRoleCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryRoleCache() *MemoryRoleCache {
	return &MemoryRoleCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryRoleCache) Get(_ context.Context, id *entity.Identity) (bool, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[roleKey(id)]
	c.mu.RUnlock()

	if !ok || !c.now().Before(entry.expiresAt) {
		return false, false, nil
	}
	return entry.isAdmin, true, nil
}

func (c *MemoryRoleCache) Set(_ context.Context, id *entity.Identity, isAdmin bool) error {
	now := c.now()
	ttl := ttlFor(id, now)
	if ttl <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[roleKey(id)] = memoryEntry{isAdmin: isAdmin, expiresAt: now.Add(ttl)}
	c.evictExpiredLocked(now)
	return nil
}

func (c *MemoryRoleCache) InvalidateUser(_ context.Context, uid string) error {
	prefix := userPattern(uid)

	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *MemoryRoleCache) evictExpiredLocked(now time.Time) {
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
