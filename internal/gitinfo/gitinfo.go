// Package gitinfo interrogates git repositories by shelling out to the
// git binary. All operations are read-only.
package gitinfo

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrNoCommits is returned for a repository with no commits on any local branch.
var ErrNoCommits = errors.New("no commits found on any local branch")

// IsRepository reports whether dir is the root of a git repository.
func IsRepository(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// LastActivity returns the most recent commit time across all local
// branches, not just the checked-out one. A repository whose only recent
// work sits on a feature branch must still count as active.
func LastActivity(dir string) (time.Time, error) {
	out, err := gitForEachRef(dir, "--format=%(committerdate:unix)", "refs/heads")
	if err != nil {
		return time.Time{}, err
	}

	var latest int64
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ts, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			continue
		}
		if ts > latest {
			latest = ts
		}
	}

	if latest == 0 {
		return time.Time{}, ErrNoCommits
	}
	return time.Unix(latest, 0).UTC(), nil
}

// gitForEachRef executes git for-each-ref and returns the output
func gitForEachRef(dir string, args ...string) (string, error) {
	fullArgs := append([]string{"for-each-ref"}, args...)
	cmd := exec.Command("git", fullArgs...)
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	return string(output), nil
}
