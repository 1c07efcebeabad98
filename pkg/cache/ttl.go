package cache

import (
	"context"
	"time"
)

// cappedCache limits the expiry of every write to max.
type cappedCache struct {
	Cache
	max time.Duration
}

// WithMaxTTL wraps c so no entry outlives max. A max of 0 returns c.
func WithMaxTTL(c Cache, max time.Duration) Cache {
	if max <= 0 {
		return c
	}
	return &cappedCache{Cache: c, max: max}
}

func (c *cappedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl == 0 || ttl > c.max {
		ttl = c.max
	}
	return c.Cache.Set(ctx, key, data, ttl)
}

// Clear forwards to the wrapped cache when it supports clearing.
func (c *cappedCache) Clear(ctx context.Context) error {
	if cl, ok := c.Cache.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}
