package ratelimit

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"referral-server/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	//go:embed lua/sliding_window.lua
	slidingWindowLua string

	slidingWindowScript = redis.NewScript(slidingWindowLua)

	_ Limiter = (*RedisLimiter)(nil)
	_ Limiter = (*MemoryLimiter)(nil)
)

// RedisLimiter shares rate limit windows across instances through a Redis
// sorted set per key. When Redis fails it degrades to a process-local window.
type RedisLimiter struct {
	cmd       redis.Cmdable
	cfg       Config
	keyPrefix string
	fallback  Limiter
	logger    *observability.Logger
	now       func() time.Time
}

func NewRedisLimiter(cmd redis.Cmdable, cfg Config, logger *observability.Logger) *RedisLimiter {
	cfg = cfg.withDefaults()
	return &RedisLimiter{
		cmd:       cmd,
		cfg:       cfg,
		keyPrefix: "ratelimit:",
		fallback:  NewMemoryLimiter(cfg),
		logger:    logger,
		now:       time.Now,
	}
}

func (r *RedisLimiter) TryConsume(ctx context.Context, key string, permits int) (Result, error) {
	if permits <= 0 {
		return Result{Allowed: true, Limit: r.cfg.MaxPermits, Remaining: r.cfg.MaxPermits}, nil
	}

	result, err := r.tryConsumeRedis(ctx, key, permits)
	if err != nil {
		ctx = observability.WithFields(ctx, observability.Field{Key: "rate_limit_key", Value: key})
		r.logger.WarnWithError(ctx, "redis rate limit check failed, falling back to in-memory window", err)
		return r.fallback.TryConsume(ctx, key, permits)
	}
	return result, nil
}

func (r *RedisLimiter) tryConsumeRedis(ctx context.Context, key string, permits int) (Result, error) {
	reply, err := slidingWindowScript.Run(ctx, r.cmd,
		[]string{r.keyPrefix + key},
		r.cfg.Window.Milliseconds(),
		r.cfg.MaxPermits,
		r.now().UnixMilli(),
		permits,
		uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("failed to run sliding window script: %w", err)
	}
	if len(reply) != 3 {
		return Result{}, fmt.Errorf("unexpected sliding window reply: %v", reply)
	}

	allowed, count, retryMs := reply[0] == 1, int(reply[1]), reply[2]
	return Result{
		Allowed:    allowed,
		Limit:      r.cfg.MaxPermits,
		Remaining:  max(0, r.cfg.MaxPermits-count),
		RetryAfter: time.Duration(retryMs) * time.Millisecond,
	}, nil
}
