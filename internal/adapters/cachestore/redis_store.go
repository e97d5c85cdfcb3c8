package cachestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis-backed CacheStore. Expiry rides on Redis'
// native per-key TTL, so stale entries disappear on their own.
type RedisStore struct {
	c *redis.Client
}

func NewRedisStore(addr, password string, db int) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{c: rdb}
}

// NewRedisStoreFromClient wraps an existing client; used by tests running
// against an in-process Redis.
func NewRedisStoreFromClient(c *redis.Client) *RedisStore {
	return &RedisStore{c: c}
}

func (r *RedisStore) Get(ctx context.Context, signature string) ([]byte, bool, error) {
	b, err := r.c.Get(ctx, signature).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis cache get %q: %w", signature, err)
	}
	return b, true, nil
}

func (r *RedisStore) Put(ctx context.Context, signature string, payload []byte, ttl time.Duration) error {
	if err := r.c.Set(ctx, signature, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis cache put %q: %w", signature, err)
	}
	return nil
}

func (r *RedisStore) Close() error { return r.c.Close() }
