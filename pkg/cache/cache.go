// Package cache stores generated label sheet artifacts.
//
// Generating a sheet of a thousand labels takes seconds; asking for the same
// sheet again should not. Artifacts are cached under a key derived from
// everything that affects their bytes (header, numbering, geometry, canvas
// and format), so a hit is always safe to serve.
//
// Three backends are provided:
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: JSON entries on local disk, for the CLI
//   - [RedisCache]: shared cache for the HTTP service
//
// Keys are built by a [Keyer]. [ScopedKeyer] prefixes keys to isolate
// deployments sharing one Redis instance.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long generated artifacts are kept.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
