package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/treemap/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", "treemap")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join(xdg, "treemap") {
		t.Errorf("cacheDir() = %q, want under %q", dir, xdg)
	}
}

func TestNewCacheNoCache(t *testing.T) {
	c, err := newCache(true)
	if err != nil {
		t.Fatalf("newCache(true) error: %v", err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("newCache(true) = %T, want NullCache", c)
	}
}

func TestCachePathCommand(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != filepath.Join(xdg, "treemap") {
		t.Errorf("cache path printed %q", got)
	}
}

func TestCacheClearCommand(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir := filepath.Join(xdg, "treemap")
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"document:a", "artifact:b"} {
		if err := fc.Set(ctx, key, []byte("{}"), cache.TTLDocument); err != nil {
			t.Fatalf("Set(%s): %v", key, err)
		}
	}

	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	for _, key := range []string{"document:a", "artifact:b"} {
		if _, hit, _ := fc.Get(ctx, key); hit {
			t.Errorf("%s still cached after clear", key)
		}
	}
}
