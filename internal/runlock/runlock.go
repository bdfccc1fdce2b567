// Package runlock guards an output root against concurrent dataset runs.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"vadset/internal/dataset"
)

// Lock is a held advisory lock on a lock file.
type Lock struct {
	path string
	lock *flock.Flock
}

// Acquire takes the lock at path without blocking. If another process holds
// it, the returned error wraps dataset.ErrLocked.
func Acquire(path string) (*Lock, error) {
	if path == "" {
		return nil, errors.New("runlock: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: another vadset run is using %s", dataset.ErrLocked, filepath.Dir(path))
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release drops the lock. The lock file is left in place.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
