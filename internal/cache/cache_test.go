package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/clausewise/internal/model"
)

func TestKey_Deterministic(t *testing.T) {
	a := Key("pdf", "abc")
	b := Key("pdf", "abc")
	if a != b {
		t.Errorf("expected identical keys, got %s and %s", a, b)
	}
	if Key("pdf", "abc") == Key("text", "abc") {
		t.Error("expected different keys for different formats")
	}
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("expected part boundaries to matter")
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Fatal("expected miss for unknown key")
	}

	value := []byte("clause text")
	if err := c.Set("k", value, 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Mutating the caller's slice must not leak into the cache
	value[0] = 'X'

	got, found := c.Get("k")
	if !found {
		t.Fatal("expected hit")
	}
	if string(got) != "clause text" {
		t.Errorf("expected 'clause text', got %q", got)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected miss after delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("k", []byte("v"), 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("expected entry to expire")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := NewDiskCache(dir, time.Hour)

	if err := c.Set("k", []byte("page text"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found := c.Get("k")
	if !found {
		t.Fatal("expected hit")
	}
	if string(got) != "page text" {
		t.Errorf("expected 'page text', got %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly one cache file, got %d", len(entries))
	}
}

func TestDiskCache_ExpiredEntryRemoved(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := c.Set("k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Fatal("expected expired entry to miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Errorf("expected expired file to be removed, stat err: %v", err)
	}
}

func TestDiskCache_CorruptEntry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := os.WriteFile(c.path("k"), []byte("not json"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, found := c.Get("k"); found {
		t.Error("expected corrupt entry to miss")
	}
}

func TestDiskCache_DeleteMissing(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	if err := c.Delete("never-set"); err != nil {
		t.Errorf("expected nil error deleting missing key, got %v", err)
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	first := NewLayeredCache(time.Minute, dir, time.Hour)
	if err := first.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A fresh layered cache over the same directory simulates a new run
	second := NewLayeredCache(time.Minute, dir, time.Hour)
	got, found := second.Get("k")
	if !found || string(got) != "v" {
		t.Fatalf("expected disk hit, got %q found=%v", got, found)
	}

	if _, found := second.memory.Get("k"); !found {
		t.Error("expected disk hit to be promoted to memory")
	}

	if err := second.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := second.Get("k"); found {
		t.Error("expected miss after clear")
	}
}

func TestNew_FromConfig(t *testing.T) {
	if _, ok := New(model.CacheConfig{Enabled: false}).(NopCache); !ok {
		t.Error("expected NopCache when disabled")
	}
	if _, ok := New(model.CacheConfig{Enabled: true}).(*MemoryCache); !ok {
		t.Error("expected MemoryCache without a directory")
	}
	if _, ok := New(model.CacheConfig{Enabled: true, Dir: t.TempDir()}).(*LayeredCache); !ok {
		t.Error("expected LayeredCache with a directory")
	}

	if _, ok := New(model.DefaultConfig().Cache).(*MemoryCache); !ok {
		t.Error("expected the default config to cache in memory only")
	}

	nop := NopCache{}
	_ = nop.Set("k", []byte("v"), 0)
	if _, found := nop.Get("k"); found {
		t.Error("expected NopCache to never hit")
	}
}
