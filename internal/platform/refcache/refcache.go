package refcache

import (
	"context"
	"sync"
	"time"
)

// Cache is a read-through cache for reference lookups keyed by ID. It is
// owned and injected by the wiring that creates it, never process-global.
type Cache[V any] struct {
	ttl    time.Duration
	loader func(ctx context.Context, key string) (V, error)

	mu      sync.Mutex
	entries map[string]entry[V]
	now     func() time.Time
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

func New[V any](ttl time.Duration, loader func(ctx context.Context, key string) (V, error)) *Cache[V] {
	return &Cache[V]{
		ttl:     ttl,
		loader:  loader,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Get returns the cached value for key, loading it on a miss or after
// expiry. Load errors are never cached.
func (c *Cache[V]) Get(ctx context.Context, key string) (V, error) {
	c.mu.Lock()
	cached, ok := c.entries[key]
	if ok && c.now().Before(cached.expiresAt) {
		c.mu.Unlock()
		return cached.value, nil
	}
	c.mu.Unlock()

	value, err := c.loader(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return value, nil
}

// Invalidate drops a single key.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
