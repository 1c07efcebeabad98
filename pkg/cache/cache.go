// Package cache stores rendered timelines so repeated requests skip layout
// and encoding.
//
// Three backends implement [Cache]: [NullCache] disables caching,
// [FileCache] keeps entries on disk for the CLI and [RedisCache] shares
// them between server replicas. Keys come from a [Keyer], which hashes the
// inputs that determine an artifact.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data; a ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

const (
	// TTLLayout is how long computed layouts stay cached.
	TTLLayout = 24 * time.Hour
	// TTLArtifact is how long encoded SVG, PNG and PDF output stays cached.
	TTLArtifact = 7 * 24 * time.Hour
)
