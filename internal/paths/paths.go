// Package paths computes the default locations of arcv's persisted state.
// The stores themselves take explicit paths so tests can point them at
// temporary directories; only the CLI adapter uses these defaults.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const stateDirName = ".arcv"

// StateDir returns the directory holding all arcv state (~/.arcv).
func StateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, stateDirName), nil
}

// EnsureStateDir creates the state directory if needed and returns it.
func EnsureStateDir() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create state directory: %w", err)
	}
	return dir, nil
}

// ConfigPath returns the path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LedgerPath returns the path to the archive ledger file.
func LedgerPath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ledger.json"), nil
}

// ExclusionsPath returns the path to the exclusion list file.
func ExclusionsPath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "exclusions.json"), nil
}

// HistoryDBPath returns the path to the run-history database.
func HistoryDBPath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}
