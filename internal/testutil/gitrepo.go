// Package testutil provides git fixture helpers for tests that need real
// repositories with controlled commit dates.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

// RequireGit skips the test when no git binary is available.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

// InitGitRepo creates dir (if needed) and initializes an empty git
// repository in it.
func InitGitRepo(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}
	runGit(t, dir, "init", "--initial-branch=main")
	runGit(t, dir, "config", "user.name", "tester")
	runGit(t, dir, "config", "user.email", "tester@example.com")
}

// CommitFile writes a file and commits it with the given commit date.
func CommitFile(t *testing.T, dir, name, content string, when time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create file dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	runGit(t, dir, "add", ".")
	date := when.UTC().Format(time.RFC3339)
	runGitEnv(t, dir,
		[]string{"GIT_AUTHOR_DATE=" + date, "GIT_COMMITTER_DATE=" + date},
		"commit", "-m", "add "+name)
}

// CreateBranch creates and checks out a new branch.
func CreateBranch(t *testing.T, dir, branch string) {
	t.Helper()
	runGit(t, dir, "checkout", "-b", branch)
}

// Checkout switches to an existing branch.
func Checkout(t *testing.T, dir, branch string) {
	t.Helper()
	runGit(t, dir, "checkout", branch)
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	runGitEnv(t, dir, nil, args...)
}

func runGitEnv(t *testing.T, dir string, extraEnv []string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), extraEnv...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}
