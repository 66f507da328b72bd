package archive

import (
	"os"
	"path/filepath"
	"testing"

	"arcv/internal/errors"
	"arcv/internal/ledger"
	"arcv/internal/lockfile"
	"arcv/internal/scan"
)

type operatorFixture struct {
	op         *Operator
	ledgerPath string
	projects   string
	archive    string
}

func newOperatorFixture(t *testing.T) *operatorFixture {
	t.Helper()
	base := t.TempDir()
	f := &operatorFixture{
		ledgerPath: filepath.Join(base, "ledger.json"),
		projects:   filepath.Join(base, "projects"),
		archive:    filepath.Join(base, "archive"),
	}
	if err := os.MkdirAll(f.projects, 0755); err != nil {
		t.Fatal(err)
	}

	led, err := ledger.Open(f.ledgerPath)
	if err != nil {
		t.Fatal(err)
	}
	f.op = &Operator{ArchiveRoot: f.archive, Ledger: led}
	return f
}

func (f *operatorFixture) project(t *testing.T, name string) scan.Project {
	t.Helper()
	dir := filepath.Join(f.projects, name)
	writeTree(t, dir, map[string]string{"main.go": "package main"})
	return scan.Project{Name: name, Path: dir, Kind: scan.KindPlain}
}

func TestArchiveMovesAndRecords(t *testing.T) {
	f := newOperatorFixture(t)
	p := f.project(t, "webapp")

	entry, err := f.op.Archive(p, false)
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	if _, err := os.Stat(p.Path); !os.IsNotExist(err) {
		t.Error("project still at original path")
	}
	if _, err := os.Stat(filepath.Join(entry.ArchivedPath, "main.go")); err != nil {
		t.Errorf("archived copy incomplete: %v", err)
	}
	if got, ok := f.op.Ledger.FindByOriginalPath(p.Path); !ok || got.ID != entry.ID {
		t.Error("ledger does not record the archived project")
	}
}

func TestArchiveCollisionSuffix(t *testing.T) {
	f := newOperatorFixture(t)

	first, err := f.op.Archive(f.project(t, "webapp"), false)
	if err != nil {
		t.Fatal(err)
	}

	// A second distinct project with the same basename.
	other := filepath.Join(f.projects, "nested", "webapp")
	writeTree(t, other, map[string]string{"go.mod": "module webapp"})
	second, err := f.op.Archive(scan.Project{Name: "webapp", Path: other, Kind: scan.KindPlain}, false)
	if err != nil {
		t.Fatalf("Archive of colliding name failed: %v", err)
	}

	if first.ArchivedPath != filepath.Join(f.archive, "webapp") {
		t.Errorf("first archived path = %s", first.ArchivedPath)
	}
	if second.ArchivedPath != filepath.Join(f.archive, "webapp-2") {
		t.Errorf("second archived path = %s, want webapp-2 suffix", second.ArchivedPath)
	}
}

func TestArchiveSanitizesName(t *testing.T) {
	f := newOperatorFixture(t)
	dir := filepath.Join(f.projects, "my app (old)")
	writeTree(t, dir, map[string]string{"f.txt": "x"})

	entry, err := f.op.Archive(scan.Project{Name: "my app (old)", Path: dir, Kind: scan.KindPlain}, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := filepath.Base(entry.ArchivedPath); got != "my-app--old-" {
		t.Errorf("sanitized name = %q", got)
	}
}

func TestArchiveDryRunTouchesNothing(t *testing.T) {
	f := newOperatorFixture(t)
	p := f.project(t, "webapp")

	entry, err := f.op.Archive(p, true)
	if err != nil {
		t.Fatalf("dry-run Archive failed: %v", err)
	}
	if entry.ArchivedPath != filepath.Join(f.archive, "webapp") {
		t.Errorf("dry-run picked unexpected destination %s", entry.ArchivedPath)
	}

	if _, err := os.Stat(p.Path); err != nil {
		t.Error("dry run moved the project")
	}
	if _, err := os.Stat(f.archive); !os.IsNotExist(err) {
		t.Error("dry run created the archive directory")
	}
	if len(f.op.Ledger.Entries()) != 0 {
		t.Error("dry run recorded a ledger entry")
	}
	if _, err := os.Stat(f.ledgerPath); !os.IsNotExist(err) {
		t.Error("dry run wrote the ledger file")
	}
}

func TestArchiveAlreadyArchived(t *testing.T) {
	f := newOperatorFixture(t)
	p := f.project(t, "webapp")
	if err := f.op.Ledger.Record(ledger.NewEntry(p.Path, filepath.Join(f.archive, "webapp"))); err != nil {
		t.Fatal(err)
	}

	_, err := f.op.Archive(p, false)
	if !errors.HasCode(err, errors.AlreadyArchived) {
		t.Errorf("code = %v, want ALREADY_ARCHIVED", errors.CodeOf(err))
	}
}

func TestArchiveRollsBackWhenRecordFails(t *testing.T) {
	f := newOperatorFixture(t)
	p := f.project(t, "webapp")

	held, err := lockfile.Acquire(f.ledgerPath + ".lock")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = held.Release() }()

	_, err = f.op.Archive(p, false)
	if !errors.HasCode(err, errors.LedgerLocked) {
		t.Fatalf("code = %v, want LEDGER_LOCKED", errors.CodeOf(err))
	}

	// The physical move must have been undone.
	if _, err := os.Stat(filepath.Join(p.Path, "main.go")); err != nil {
		t.Errorf("project not restored to original path: %v", err)
	}
	if _, err := os.Stat(filepath.Join(f.archive, "webapp")); !os.IsNotExist(err) {
		t.Error("archived copy left behind after rollback")
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	f := newOperatorFixture(t)
	p := f.project(t, "webapp")
	entry, err := f.op.Archive(p, false)
	if err != nil {
		t.Fatal(err)
	}

	if err := f.op.Restore(entry, false, false); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(p.Path, "main.go")); err != nil {
		t.Errorf("restored tree incomplete: %v", err)
	}
	if _, err := os.Stat(entry.ArchivedPath); !os.IsNotExist(err) {
		t.Error("archived copy still present after restore")
	}
	if len(f.op.Ledger.Entries()) != 0 {
		t.Error("ledger entry survived the restore")
	}
}

func TestRestoreRecreatesParents(t *testing.T) {
	f := newOperatorFixture(t)
	dir := filepath.Join(f.projects, "team", "webapp")
	writeTree(t, dir, map[string]string{"f.txt": "x"})
	entry, err := f.op.Archive(scan.Project{Name: "webapp", Path: dir, Kind: scan.KindPlain}, false)
	if err != nil {
		t.Fatal(err)
	}

	// The whole parent chain is gone.
	if err := os.RemoveAll(filepath.Join(f.projects, "team")); err != nil {
		t.Fatal(err)
	}

	if err := f.op.Restore(entry, false, false); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "f.txt")); err != nil {
		t.Errorf("restore did not recreate parent directories: %v", err)
	}
}

func TestRestoreOccupiedDestination(t *testing.T) {
	f := newOperatorFixture(t)
	p := f.project(t, "webapp")
	entry, err := f.op.Archive(p, false)
	if err != nil {
		t.Fatal(err)
	}

	// Something new appeared at the original location.
	writeTree(t, p.Path, map[string]string{"new.txt": "fresh work"})

	err = f.op.Restore(entry, false, false)
	if !errors.HasCode(err, errors.DestinationOccupied) {
		t.Fatalf("code = %v, want DESTINATION_OCCUPIED", errors.CodeOf(err))
	}
	if _, err := os.Stat(filepath.Join(p.Path, "new.txt")); err != nil {
		t.Error("occupant was disturbed by the refused restore")
	}

	if err := f.op.Restore(entry, false, true); err != nil {
		t.Fatalf("forced Restore failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(p.Path, "main.go")); err != nil {
		t.Errorf("forced restore incomplete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(p.Path+preRestoreSuffix, "new.txt")); err != nil {
		t.Errorf("occupant not preserved aside: %v", err)
	}
}

func TestRestoreDryRunReportsOccupied(t *testing.T) {
	f := newOperatorFixture(t)
	p := f.project(t, "webapp")
	entry, err := f.op.Archive(p, false)
	if err != nil {
		t.Fatal(err)
	}
	writeTree(t, p.Path, map[string]string{"new.txt": "x"})

	// Dry run performs the same checks as a live restore.
	if err := f.op.Restore(entry, true, false); !errors.HasCode(err, errors.DestinationOccupied) {
		t.Errorf("dry-run code = %v, want DESTINATION_OCCUPIED", errors.CodeOf(err))
	}
	if err := f.op.Restore(entry, true, true); err != nil {
		t.Errorf("forced dry run failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(p.Path, "new.txt")); err != nil {
		t.Error("dry run moved the occupant")
	}
	if len(f.op.Ledger.Entries()) != 1 {
		t.Error("dry run mutated the ledger")
	}
}

func TestRestoreMissingArchivedCopy(t *testing.T) {
	f := newOperatorFixture(t)
	p := f.project(t, "webapp")
	entry, err := f.op.Archive(p, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(entry.ArchivedPath); err != nil {
		t.Fatal(err)
	}

	err = f.op.Restore(entry, false, false)
	if !errors.HasCode(err, errors.ArchiveFailed) {
		t.Errorf("code = %v, want ARCHIVE_FAILED", errors.CodeOf(err))
	}
}

func TestDeleteRemovesTreeAndEntry(t *testing.T) {
	f := newOperatorFixture(t)
	p := f.project(t, "webapp")
	entry, err := f.op.Archive(p, false)
	if err != nil {
		t.Fatal(err)
	}

	if err := f.op.Delete(entry, true); err != nil {
		t.Fatalf("dry-run Delete failed: %v", err)
	}
	if _, err := os.Stat(entry.ArchivedPath); err != nil {
		t.Error("dry-run Delete removed the archived copy")
	}

	if err := f.op.Delete(entry, false); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(entry.ArchivedPath); !os.IsNotExist(err) {
		t.Error("archived copy still present after delete")
	}
	if len(f.op.Ledger.Entries()) != 0 {
		t.Error("ledger entry survived the delete")
	}
}

func TestDeleteDryRunValidatesEntry(t *testing.T) {
	f := newOperatorFixture(t)
	p := f.project(t, "webapp")
	entry, err := f.op.Archive(p, false)
	if err != nil {
		t.Fatal(err)
	}

	// An entry the ledger has never seen must be rejected, dry run or not.
	ghost := ledger.NewEntry("/nowhere/ghost", filepath.Join(f.archive, "ghost"))
	if err := f.op.Delete(ghost, true); !errors.HasCode(err, errors.NotArchived) {
		t.Errorf("dry-run delete of unknown entry: code = %v, want NOT_ARCHIVED", errors.CodeOf(err))
	}
	if err := f.op.Delete(ghost, false); !errors.HasCode(err, errors.NotArchived) {
		t.Errorf("delete of unknown entry: code = %v, want NOT_ARCHIVED", errors.CodeOf(err))
	}

	// A recorded entry whose archived copy vanished from disk.
	if err := os.RemoveAll(entry.ArchivedPath); err != nil {
		t.Fatal(err)
	}
	if err := f.op.Delete(entry, true); !errors.HasCode(err, errors.ArchiveFailed) {
		t.Errorf("dry-run delete of vanished copy: code = %v, want ARCHIVE_FAILED", errors.CodeOf(err))
	}
	if len(f.op.Ledger.Entries()) != 1 {
		t.Error("dry run mutated the ledger")
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"webapp", "webapp"},
		{"my app", "my-app"},
		{"a/b\\c", "a-b-c"},
		{"..hidden..", "hidden"},
		{"...", "project"},
		{"v1.2_final-copy", "v1.2_final-copy"},
	}
	for _, tt := range tests {
		if got := sanitizeName(tt.in); got != tt.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
