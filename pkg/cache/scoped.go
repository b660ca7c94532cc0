package cache

import (
	"context"
	"fmt"
	"time"
)

// Scoped wraps a backend so every key carries a namespace prefix.
// Builds for different projects can then share one backend without
// key collisions.
type Scoped struct {
	backend Cache
	prefix  string
}

// NewScoped creates a namespaced view of backend. The prefix is usually
// the project name from the build configuration.
func NewScoped(backend Cache, prefix string) *Scoped {
	return &Scoped{backend: backend, prefix: prefix}
}

// Get retrieves a value under the scoped key.
func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.backend.Get(ctx, s.key(key))
}

// Set stores a value under the scoped key.
func (s *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.backend.Set(ctx, s.key(key), data, ttl)
}

// Delete removes a value under the scoped key.
func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, s.key(key))
}

// Close closes the underlying backend.
func (s *Scoped) Close() error {
	return s.backend.Close()
}

func (s *Scoped) key(key string) string {
	return s.prefix + ":" + key
}

var _ Cache = (*Scoped)(nil)

// === Key builders ===

// TreeKey is the cache key for a serialized document tree snapshot,
// keyed by the digest of the configuration that produced it.
func TreeKey(configDigest string) string {
	return fmt.Sprintf("tree:%s", configDigest)
}

// PageKey is the cache key for a rendered page, keyed by its path and
// the digest of the document subtree it was rendered from.
func PageKey(page, digest string) string {
	return fmt.Sprintf("page:%s:%s", page, digest)
}

// ArtifactKey is the cache key for a rendered binary artifact such as
// an SVG or PNG graph, keyed by format and source digest.
func ArtifactKey(format, digest string) string {
	return fmt.Sprintf("artifact:%s:%s", format, digest)
}
