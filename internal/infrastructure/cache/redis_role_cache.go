package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"gamerverse/internal/domain/entity"
	"gamerverse/pkg/config"
)

type RedisRoleCache struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func NewRedisRoleCache(client *redis.Client) *RedisRoleCache {
	return &RedisRoleCache{
		client: client,
		now:    time.Now,
	}
}

func (c *RedisRoleCache) Get(ctx context.Context, id *entity.Identity) (bool, bool, error) {
	val, err := c.client.Get(ctx, roleKey(id)).Result()
	if err == redis.Nil {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("read role cache: %w", err)
	}
	return val == "1", true, nil
}

func (c *RedisRoleCache) Set(ctx context.Context, id *entity.Identity, isAdmin bool) error {
	ttl := ttlFor(id, c.now())
	if ttl <= 0 {
		return nil
	}

	val := "0"
	if isAdmin {
		val = "1"
	}
	if err := c.client.Set(ctx, roleKey(id), val, ttl).Err(); err != nil {
		return fmt.Errorf("write role cache: %w", err)
	}
	return nil
}

func (c *RedisRoleCache) InvalidateUser(ctx context.Context, uid string) error {
	iter := c.client.Scan(ctx, 0, userPattern(uid)+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan role cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate role cache: %w", err)
	}
	return nil
}
