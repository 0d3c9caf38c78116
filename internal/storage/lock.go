// ABOUTME: Cross-process file lock serialising snapshot writes.
// ABOUTME: The CLI and a running MCP server share one data directory.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	lockFileName   = "ironlog.lock"
	lockRetryDelay = 50 * time.Millisecond
)

// ErrLocked is returned when the lock could not be taken before the deadline.
var ErrLocked = errors.New("data directory is locked by another process")

// Lock guards a data directory.
type Lock struct {
	dir string
	fl  *flock.Flock
}

// NewLock returns a lock on dataDir/ironlog.lock.
func NewLock(dataDir string) *Lock {
	return &Lock{dir: dataDir, fl: flock.New(filepath.Join(dataDir, lockFileName))}
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.fl.Path()
}

// Acquire blocks until the lock is held or ctx is done. The returned func
// releases it.
func (l *Lock) Acquire(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(l.dir, 0750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := l.fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return func() { _ = l.fl.Unlock() }, nil
}
