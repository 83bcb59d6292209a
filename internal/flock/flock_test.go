//go:build unix

package flock_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ciErrors "github.com/mrz1836/moodle-plugin-ci/internal/errors"
	"github.com/mrz1836/moodle-plugin-ci/internal/flock"
)

func TestExclusive(t *testing.T) {
	t.Parallel()

	lockFile := filepath.Join(t.TempDir(), "test.lock")

	f1, err := os.OpenFile(lockFile, os.O_RDWR|os.O_CREATE, 0o600) // #nosec G304 -- test code using safe temp dir
	require.NoError(t, err)
	defer func() { _ = f1.Close() }()

	f2, err := os.OpenFile(lockFile, os.O_RDWR, 0o600) // #nosec G304 -- test code using safe temp dir
	require.NoError(t, err)
	defer func() { _ = f2.Close() }()

	require.NoError(t, flock.Exclusive(f1.Fd()))
	require.Error(t, flock.Exclusive(f2.Fd()), "second descriptor must not get the lock")

	require.NoError(t, flock.Unlock(f1.Fd()))
	require.NoError(t, flock.Exclusive(f2.Fd()), "lock must be free after unlock")
	require.NoError(t, flock.Unlock(f2.Fd()))
}

func TestAcquire(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "moodledata", ".moodle-plugin-ci.lock")

		lock, err := flock.Acquire(path)
		require.NoError(t, err)
		defer func() { _ = lock.Release() }()

		assert.Equal(t, path, lock.Path())
		assert.FileExists(t, path)
	})

	t.Run("held lock is a lock error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "held.lock")

		first, err := flock.Acquire(path)
		require.NoError(t, err)
		defer func() { _ = first.Release() }()

		second, err := flock.Acquire(path)
		require.ErrorIs(t, err, ciErrors.ErrLockHeld)
		assert.Nil(t, second)
	})

	t.Run("release frees the lock", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "free.lock")

		first, err := flock.Acquire(path)
		require.NoError(t, err)
		require.NoError(t, first.Release())
		require.NoError(t, first.Release(), "double release is a no-op")

		second, err := flock.Acquire(path)
		require.NoError(t, err)
		require.NoError(t, second.Release())
	})

	t.Run("nil lock release", func(t *testing.T) {
		t.Parallel()
		var lock *flock.Lock
		require.NoError(t, lock.Release())
	})
}
