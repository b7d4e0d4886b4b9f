// Package filelock guards an archive root against concurrent mutating runs and
// writes report files atomically.
package filelock

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

// LockFileName is the lock file created in the root of a mutating run.
const LockFileName = ".archivetidy.lock"

// ErrLocked is returned when another run already holds the root lock.
var ErrLocked = errors.New("another archivetidy run holds the lock")

// FileLock wraps a flock file lock for coordinating access to a directory.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a new file lock for the given path.
// The lock file will be created at the specified path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Path returns the lock file path.
func (fl *FileLock) Path() string {
	return fl.path
}

// TryLock attempts to acquire an exclusive lock on the file without blocking.
// Returns true if the lock was acquired, false if the lock is held by another process.
// Returns an error if the lock operation fails.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
// Returns an error if the unlock operation fails.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// LockRoot takes the non-blocking run lock for root. It returns ErrLocked
// when another run holds it.
func LockRoot(root string) (*FileLock, error) {
	lock := NewFileLock(filepath.Join(root, LockFileName))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("%w: %s", ErrLocked, lock.path)
	}
	return lock, nil
}

// Release unlocks and removes the lock file so no artifact is left in the root.
func (fl *FileLock) Release() error {
	if err := fl.Unlock(); err != nil {
		return err
	}
	if err := os.Remove(fl.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file %s: %w", fl.path, err)
	}
	return nil
}

// AtomicWrite writes data to path on fs through a temp file and a rename, so
// readers never see a partial file.
func AtomicWrite(fs afero.Fs, path string, data []byte) error {
	return AtomicWriteFunc(fs, path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// AtomicWriteFunc streams content produced by write into a temp file in the
// target's directory and renames it over path once write succeeds. On any
// failure the temp file is removed and an existing target is left unchanged.
func AtomicWriteFunc(fs afero.Fs, path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tempFile, err := afero.TempFile(fs, dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			tempFile.Close()
			fs.Remove(tempPath)
		}
	}()

	if err := write(tempFile); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := fs.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := fs.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	tempFile = nil
	return nil
}
