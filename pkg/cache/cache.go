// Package cache provides build artifact caching for Doctower.
//
// The [Cache] interface abstracts the storage backend:
//   - [FileCache]: directory-backed cache for local CLI builds
//   - [RedisCache]: Redis-backed cache for shared build farms
//   - [NullCache]: disabled caching for tests and --no-cache runs
//
// Keys are namespaced per concern through the Scoped* helpers so that
// tree snapshots, rendered pages, and binary artifacts never collide.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the interface for cache backends.
// Get returns the data and true on a hit, or nil and false on a miss;
// the error is reserved for backend failures, not misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Hash returns the hex-encoded SHA-256 digest of data. It is used both
// for cache key derivation and for change detection on source inputs.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
