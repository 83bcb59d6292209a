// Package flock provides exclusive, non-blocking file locks for Unix and Windows.
//
// The install command holds a lock inside the environment's data directory
// for the whole pipeline, so two CI jobs sharing a runner cannot provision
// into the same directory at once:
//
//	lock, err := flock.Acquire(filepath.Join(dataDir, constants.DataDirLockFile))
//	if err != nil {
//	    return err // wraps errors.ErrLockHeld when another process owns it
//	}
//	defer lock.Release()
package flock
