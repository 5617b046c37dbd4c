// Package cache provides content-addressed storage for pipeline results.
//
// The pipeline caches two things: layouts (keyed by a hash of the word list
// plus every layout option) and rendered artifacts (keyed by a hash of the
// layout plus render options). A hit on either skips the corresponding stage.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for several server instances
//   - [MongoCache]: persistent cache with TTL index
//   - [NullCache]: disables caching
//
// # Keys
//
// A [Keyer] turns inputs into keys. [DefaultKeyer] hashes options with
// SHA-256; [ScopedKeyer] prefixes every key for namespace isolation.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry type.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A zero TTL in Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}
