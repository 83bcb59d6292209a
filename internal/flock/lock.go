package flock

import (
	"fmt"
	"os"
	"path/filepath"

	ciErrors "github.com/mrz1836/moodle-plugin-ci/internal/errors"
)

// Lock is a held exclusive lock on a file.
type Lock struct {
	file *os.File
}

// Acquire creates path (and its parent directory) if needed and takes an
// exclusive lock on it without blocking. A lock held elsewhere yields an
// error wrapping ErrLockHeld.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, ciErrors.Wrap(err, "failed to create lock directory")
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) //#nosec G304 -- path is derived from the configured data directory
	if err != nil {
		return nil, ciErrors.Wrap(err, "failed to open lock file")
	}

	if err := Exclusive(f.Fd()); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s", ciErrors.ErrLockHeld, path)
	}

	return &Lock{file: f}, nil
}

// Path returns the locked file's path.
func (l *Lock) Path() string {
	return l.file.Name()
}

// Release unlocks and closes the file. The lock file itself is left in place.
// Calling Release on a nil or already released lock is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockErr := Unlock(l.file.Fd())
	closeErr := l.file.Close()
	l.file = nil
	if unlockErr != nil {
		return ciErrors.Wrap(unlockErr, "failed to unlock")
	}
	return closeErr
}
