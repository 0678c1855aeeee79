package idempotency

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

var _ Guard = (*MemoryGuard)(nil)

// MemoryGuard keeps entries in a process-local cache. Expired entries are
// dropped lazily on read; no janitor goroutine is started.
type MemoryGuard struct {
	c *cache.Cache
}

func NewMemoryGuard(ttl time.Duration) *MemoryGuard {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryGuard{c: cache.New(ttl, 0)}
}

func (g *MemoryGuard) load(route, key string) (entry, bool) {
	v, ok := g.c.Get(entryKey(route, key))
	if !ok {
		return entry{}, false
	}
	e, ok := v.(entry)
	return e, ok
}

func (g *MemoryGuard) TryGet(_ context.Context, route, key string) ([]byte, bool, error) {
	e, ok := g.load(route, key)
	if !ok {
		return nil, false, nil
	}
	return e.Response, true, nil
}

func (g *MemoryGuard) IsConsistent(_ context.Context, route, key, hash string) (bool, error) {
	e, ok := g.load(route, key)
	return !ok || e.Hash == hash, nil
}

func (g *MemoryGuard) Save(_ context.Context, route, key, hash string, response []byte) error {
	stored := make([]byte, len(response))
	copy(stored, response)
	g.c.SetDefault(entryKey(route, key), entry{Hash: hash, Response: stored})
	return nil
}
