package anchor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 50 * time.Millisecond

// Locker serializes anchor updates for one newspaper identifier.
type Locker interface {
	// Lock blocks until the lock for key is held or ctx is done.
	Lock(ctx context.Context, key string) (unlock func() error, err error)
}

// FileLocker is an advisory, cross-process lock backed by lock files in Dir.
type FileLocker struct {
	Dir string
}

// DefaultLockDir is the lock directory used for anchors in folder: a hidden
// sibling of folder, so lock files never end up next to published documents.
func DefaultLockDir(folder string) string {
	return filepath.Join(filepath.Dir(filepath.Clean(folder)), ".locks")
}

// NewFileLocker returns a FileLocker that keeps its lock files in dir.
func NewFileLocker(dir string) *FileLocker {
	return &FileLocker{Dir: dir}
}

// Lock implements Locker.
func (l *FileLocker) Lock(ctx context.Context, key string) (func() error, error) {
	if err := os.MkdirAll(l.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	fl := flock.New(filepath.Join(l.Dir, "."+key+".lock"))
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock for %s: %w", key, err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to acquire lock for %s", key)
	}
	return fl.Unlock, nil
}

// NopLocker does not lock.
type NopLocker struct{}

// Lock implements Locker.
func (NopLocker) Lock(context.Context, string) (func() error, error) {
	return func() error { return nil }, nil
}
