// Package cache stores computed layouts so repeated requests for the same
// diagram and configuration skip the layout engine.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared storage for multiple server instances
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys come from a [Keyer]. The [DefaultKeyer] derives them from the diagram
// kind and content hashes of the diagram and config, so any change to either
// produces a new key:
//
//	key := cache.NewDefaultKeyer().LayoutKey("flow", cache.Hash(diagramJSON), cache.Hash(configJSON))
//	if data, hit, err := c.Get(ctx, key); err == nil && hit {
//	    // decode data
//	}
//
// A [ScopedKeyer] prefixes keys, which separates tenants or schema versions
// sharing one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
//
// Get reports a miss as (nil, false, nil); only backend failures return an
// error. A zero ttl in Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLLayout is how long computed layouts stay cached. Layouts are pure
// functions of their inputs, so the limit only bounds storage.
const TTLLayout = 7 * 24 * time.Hour
