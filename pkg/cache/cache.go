// Package cache stores serialized generation results keyed by their inputs,
// so repeated runs over the same dictionary and roots skip the generation
// pass entirely.
//
// Three backends are provided: [FileCache] for CLI usage, [RedisCache] for
// shared deployments, and [NullCache] to disable caching. All backends store
// opaque byte slices; callers own serialization.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
