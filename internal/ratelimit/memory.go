package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/ecodeclub/ekit/syncx"
)

// window is the admitted-event log of one key, oldest first.
type window struct {
	mu     sync.Mutex
	events []time.Time
}

// MemoryLimiter is a sliding window log limiter. Calls for the same key are
// serialized by that key's mutex; distinct keys never contend.
type MemoryLimiter struct {
	cfg     Config
	windows syncx.Map[string, *window]
	now     func() time.Time
}

func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	return &MemoryLimiter{cfg: cfg.withDefaults(), now: time.Now}
}

// WithClock replaces the time source. Intended for tests.
func (m *MemoryLimiter) WithClock(now func() time.Time) *MemoryLimiter {
	m.now = now
	return m
}

func (m *MemoryLimiter) TryConsume(_ context.Context, key string, permits int) (Result, error) {
	if permits <= 0 {
		return Result{Allowed: true, Limit: m.cfg.MaxPermits, Remaining: m.cfg.MaxPermits}, nil
	}

	w, _ := m.windows.LoadOrStore(key, &window{})
	w.mu.Lock()
	defer w.mu.Unlock()

	now := m.now()
	prune := 0
	for prune < len(w.events) && now.Sub(w.events[prune]) > m.cfg.Window {
		prune++
	}
	w.events = w.events[prune:]

	count := len(w.events)
	if count+permits > m.cfg.MaxPermits {
		retryAfter := m.cfg.Window
		if count > 0 {
			retryAfter = w.events[0].Add(m.cfg.Window).Sub(now)
		}
		return Result{
			Allowed:    false,
			Limit:      m.cfg.MaxPermits,
			Remaining:  max(0, m.cfg.MaxPermits-count),
			RetryAfter: retryAfter,
		}, nil
	}

	for i := 0; i < permits; i++ {
		w.events = append(w.events, now)
	}
	return Result{
		Allowed:   true,
		Limit:     m.cfg.MaxPermits,
		Remaining: m.cfg.MaxPermits - len(w.events),
	}, nil
}
