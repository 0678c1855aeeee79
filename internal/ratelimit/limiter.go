package ratelimit

import (
	"context"
	"time"
)

const (
	DefaultMaxPermits = 5
	DefaultWindow     = 60 * time.Second
)

// Result represents the result of a rate limit check
type Result struct {
	Allowed    bool          `json:"allowed"`
	Limit      int           `json:"limit"`
	Remaining  int           `json:"remaining"`
	RetryAfter time.Duration `json:"retry_after,omitempty"`
}

// Limiter admits operations per key under a rolling window budget.
type Limiter interface {
	// TryConsume takes permits from key's budget if they all fit.
	// Non-positive permits are always admitted without consuming anything.
	TryConsume(ctx context.Context, key string, permits int) (Result, error)
}

// Config sizes a limiter. Zero values fall back to the defaults.
type Config struct {
	MaxPermits int
	Window     time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxPermits <= 0 {
		c.MaxPermits = DefaultMaxPermits
	}
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}
	return c
}
