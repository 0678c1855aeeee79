package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Guard = (*RedisGuard)(nil)

// RedisGuard shares entries between instances. Each entry is a hash with
// "hash" and "response" fields under idem:<route>:<key>.
type RedisGuard struct {
	cmd redis.Cmdable
	ttl time.Duration
}

func NewRedisGuard(cmd redis.Cmdable, ttl time.Duration) *RedisGuard {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisGuard{cmd: cmd, ttl: ttl}
}

func (g *RedisGuard) TryGet(ctx context.Context, route, key string) ([]byte, bool, error) {
	response, err := g.cmd.HGet(ctx, entryKey(route, key), "response").Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read idempotency entry: %w", err)
	}
	return response, true, nil
}

func (g *RedisGuard) IsConsistent(ctx context.Context, route, key, hash string) (bool, error) {
	stored, err := g.cmd.HGet(ctx, entryKey(route, key), "hash").Result()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read idempotency hash: %w", err)
	}
	return stored == hash, nil
}

func (g *RedisGuard) Save(ctx context.Context, route, key, hash string, response []byte) error {
	k := entryKey(route, key)
	_, err := g.cmd.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, k, "hash", hash, "response", response)
		pipe.Expire(ctx, k, g.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save idempotency entry: %w", err)
	}
	return nil
}
