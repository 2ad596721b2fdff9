// Package cache stores rendered artifacts between runs.
//
// Three backends implement [Cache]:
//
//   - [NullCache] never stores anything; used when caching is disabled.
//   - [FileCache] keeps entries as JSON files under a directory, by default
//     the user cache directory.
//   - [RedisCache] shares entries between server instances through Redis.
//
// Keys are built by a [Keyer] so that every component hashing the same inputs
// agrees on the key. [ScopedKeyer] prefixes keys to separate namespaces.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the entry for key. A miss returns ok false and no error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero or less never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
