package runlock_test

import (
	"errors"
	"path/filepath"
	"testing"

	"vadset/internal/dataset"
	"vadset/internal/runlock"
)

func TestAcquireIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", ".vadset.lock")

	first, err := runlock.Acquire(path)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if first.Path() != path {
		t.Fatalf("unexpected path %q", first.Path())
	}

	if _, err := runlock.Acquire(path); !errors.Is(err, dataset.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	second, err := runlock.Acquire(path)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	if err := second.Release(); err != nil {
		t.Fatalf("release second: %v", err)
	}
}

func TestReleaseNil(t *testing.T) {
	var l *runlock.Lock
	if err := l.Release(); err != nil {
		t.Fatalf("nil release: %v", err)
	}
	if l.Path() != "" {
		t.Fatal("expected empty path for nil lock")
	}
}

func TestAcquireEmptyPath(t *testing.T) {
	if _, err := runlock.Acquire(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
