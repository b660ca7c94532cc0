package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "page:index", []byte("rendered"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := c.Get(ctx, "page:index")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(data) != "rendered" {
		t.Errorf("data = %q, want %q", data, "rendered")
	}

	if err := c.Delete(ctx, "page:index"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "page:index"); ok {
		t.Errorf("entry survived Delete")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Errorf("expired entry returned as hit")
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Errorf("null cache returned a hit")
	}
}

func TestScopedKeys(t *testing.T) {
	ctx := context.Background()
	backend, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer backend.Close()

	a := NewScoped(backend, "proj-a")
	b := NewScoped(backend, "proj-b")

	if err := a.Set(ctx, "page:index", []byte("a"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := b.Get(ctx, "page:index"); ok {
		t.Errorf("scopes share keys")
	}
	if data, ok, _ := a.Get(ctx, "page:index"); !ok || string(data) != "a" {
		t.Errorf("scoped entry not readable through same scope")
	}
}

func TestHashStable(t *testing.T) {
	a := Hash([]byte("content"))
	b := Hash([]byte("content"))
	if a != b {
		t.Errorf("hash not deterministic")
	}
	if a == Hash([]byte("other")) {
		t.Errorf("distinct inputs collide")
	}
	if len(a) != 64 {
		t.Errorf("digest length = %d, want 64", len(a))
	}
}

func TestKeyBuilders(t *testing.T) {
	if got := TreeKey("abc"); got != "tree:abc" {
		t.Errorf("TreeKey = %q", got)
	}
	if got := PageKey("api/tree", "abc"); got != "page:api/tree:abc" {
		t.Errorf("PageKey = %q", got)
	}
	if got := ArtifactKey("svg", "abc"); got != "artifact:svg:abc" {
		t.Errorf("ArtifactKey = %q", got)
	}
}
