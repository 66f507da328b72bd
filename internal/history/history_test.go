package history

import (
	"path/filepath"
	"testing"
	"time"

	"arcv/internal/archive"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"), nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRecordAndRecentRuns(t *testing.T) {
	db := openTestDB(t)

	reports := []*archive.Report{
		{DryRun: true, Scanned: 5, Active: 4, Inactive: 1, Archived: 1},
		{Scanned: 5, Active: 4, Inactive: 1, Archived: 1},
		{Scanned: 4, Active: 4},
	}
	for _, rep := range reports {
		if err := db.RecordRun(rep, 120*time.Millisecond); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	runs, err := db.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}

	// Newest first.
	if runs[0].Scanned != 4 || runs[0].DryRun {
		t.Errorf("newest run = %+v, want the live 4-project run", runs[0])
	}
	if !runs[2].DryRun || runs[2].Archived != 1 {
		t.Errorf("oldest run = %+v, want the dry run", runs[2])
	}
	if runs[0].DurationMs != 120 {
		t.Errorf("duration = %dms, want 120", runs[0].DurationMs)
	}
	if runs[0].RanAt.IsZero() {
		t.Error("run timestamp not recorded")
	}
}

func TestRecentRunsHonorsLimit(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 5; i++ {
		if err := db.RecordRun(&archive.Report{Scanned: i}, 0); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := db.RecentRuns(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].Scanned != 4 || runs[1].Scanned != 3 {
		t.Errorf("limit returned wrong rows: %+v", runs)
	}
}

func TestRecentRunsEmptyDatabase(t *testing.T) {
	db := openTestDB(t)

	runs, err := db.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("fresh database returned %d runs", len(runs))
	}
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.RecordRun(&archive.Report{Scanned: 7}, time.Second); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	runs, err := reopened.RecentRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Scanned != 7 {
		t.Errorf("history lost across reopen: %+v", runs)
	}
}
