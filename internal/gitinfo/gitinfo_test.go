package gitinfo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"arcv/internal/testutil"
)

func TestIsRepository(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()

	repo := filepath.Join(dir, "repo")
	testutil.InitGitRepo(t, repo)

	plain := filepath.Join(dir, "plain")
	if err := os.MkdirAll(plain, 0755); err != nil {
		t.Fatal(err)
	}

	if !IsRepository(repo) {
		t.Error("initialized repo not recognized")
	}
	if IsRepository(plain) {
		t.Error("plain directory misrecognized as repo")
	}
	if IsRepository(filepath.Join(dir, "missing")) {
		t.Error("missing directory misrecognized as repo")
	}
}

func TestLastActivitySingleBranch(t *testing.T) {
	testutil.RequireGit(t)
	repo := filepath.Join(t.TempDir(), "repo")
	testutil.InitGitRepo(t, repo)

	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	testutil.CommitFile(t, repo, "main.go", "package main", when)

	got, err := LastActivity(repo)
	if err != nil {
		t.Fatalf("LastActivity failed: %v", err)
	}
	if !got.Equal(when) {
		t.Errorf("LastActivity = %v, want %v", got, when)
	}
}

func TestLastActivityUsesAllBranches(t *testing.T) {
	testutil.RequireGit(t)
	repo := filepath.Join(t.TempDir(), "repo")
	testutil.InitGitRepo(t, repo)

	old := time.Now().UTC().Add(-100 * 24 * time.Hour).Truncate(time.Second)
	recent := time.Now().UTC().Add(-24 * time.Hour).Truncate(time.Second)

	testutil.CommitFile(t, repo, "main.go", "package main", old)
	testutil.CreateBranch(t, repo, "feature")
	testutil.CommitFile(t, repo, "feature.go", "package main // wip", recent)
	// Leave an old branch checked out; activity must still be found.
	testutil.Checkout(t, repo, "main")

	got, err := LastActivity(repo)
	if err != nil {
		t.Fatalf("LastActivity failed: %v", err)
	}
	if !got.Equal(recent) {
		t.Errorf("LastActivity = %v, want the feature branch time %v", got, recent)
	}
}

func TestLastActivityEmptyRepo(t *testing.T) {
	testutil.RequireGit(t)
	repo := filepath.Join(t.TempDir(), "repo")
	testutil.InitGitRepo(t, repo)

	_, err := LastActivity(repo)
	if !errors.Is(err, ErrNoCommits) {
		t.Errorf("error = %v, want ErrNoCommits", err)
	}
}

func TestLastActivityIsReadOnly(t *testing.T) {
	testutil.RequireGit(t)
	repo := filepath.Join(t.TempDir(), "repo")
	testutil.InitGitRepo(t, repo)
	testutil.CommitFile(t, repo, "a.txt", "a", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	first, err := LastActivity(repo)
	if err != nil {
		t.Fatal(err)
	}
	second, err := LastActivity(repo)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Equal(second) {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
}
