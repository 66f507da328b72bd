// Package lockfile implements the persistence discipline shared by the
// ledger and the exclusion store: an advisory file lock around every
// mutation, and write-temp-then-rename so a crash mid-write never leaves
// a truncated state file.
//
// Acquisition is non-blocking: a lock held by another process fails fast
// with a LEDGER_LOCKED error instead of waiting. For a short-lived CLI a
// silent wait is indistinguishable from a hang.
package lockfile

import (
	"fmt"
	"os"
	"path/filepath"

	"arcv/internal/errors"
)

// Lock represents a held file-based lock.
type Lock struct {
	file *os.File
}

// Acquire takes the lock at path, creating the lock file if needed.
// Returns a LEDGER_LOCKED error if another process holds it.
func Acquire(path string) (*Lock, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, errors.New(errors.LedgerLocked,
			fmt.Sprintf("lock %s is held by another process", path), err)
	}

	return &Lock{file: f}, nil
}

// Release releases the lock. Safe to call more than once.
func (l *Lock) Release() error {
	if l.file != nil {
		_ = unlockFile(l.file)
		_ = l.file.Close()
		l.file = nil
	}
	return nil
}

// WriteAtomic writes data to path by writing a sibling temp file and
// renaming it over the destination.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename %s: %w", tmpPath, err)
	}
	return nil
}
