// Package ledger maintains the durable record mapping each archived
// project's original location to its archived location. It is the source
// of truth for list, restore, and delete.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"arcv/internal/errors"
	"arcv/internal/lockfile"
)

// Entry represents one archived project.
type Entry struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"` // Final path component of OriginalPath
	OriginalPath string    `json:"original_path"`
	ArchivedPath string    `json:"archived_path"`
	ArchivedAt   time.Time `json:"archived_at"`
}

// document is the on-disk shape of the ledger file.
type document struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

const currentLedgerVersion = 1

// Ledger is a handle on the ledger file. Every mutation takes the file
// lock and rewrites the file atomically, so a crash mid-write never
// leaves a truncated or half-written ledger.
type Ledger struct {
	path string
	doc  document
}

// NewEntry builds an entry for a project about to be archived.
func NewEntry(originalPath, archivedPath string) Entry {
	return Entry{
		ID:           uuid.New().String(),
		Name:         filepath.Base(originalPath),
		OriginalPath: originalPath,
		ArchivedPath: archivedPath,
		ArchivedAt:   time.Now().UTC(),
	}
}

// Open loads the ledger at path. A missing file yields an empty ledger;
// an unparseable one is a LEDGER_CORRUPT error, fatal for the caller.
func Open(path string) (*Ledger, error) {
	l := &Ledger{
		path: path,
		doc:  document{Version: currentLedgerVersion},
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return l, nil
	}
	if err != nil {
		return nil, errors.New(errors.LedgerCorrupt, "failed to read ledger file", err)
	}

	if err := json.Unmarshal(data, &l.doc); err != nil {
		return nil, errors.New(errors.LedgerCorrupt,
			"ledger file is not valid JSON: "+path, err)
	}
	if l.doc.Version > currentLedgerVersion {
		return nil, errors.Newf(errors.LedgerCorrupt,
			"ledger version %d not supported (max: %d)", l.doc.Version, currentLedgerVersion)
	}

	return l, nil
}

// Path returns the location of the ledger file.
func (l *Ledger) Path() string {
	return l.path
}

// lockPath returns the lock file guarding ledger mutations.
func (l *Ledger) lockPath() string {
	return l.path + ".lock"
}

// Entries returns a copy of all entries in file order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.doc.Entries))
	copy(out, l.doc.Entries)
	return out
}

// List returns all entries, most recently archived first.
func (l *Ledger) List() []Entry {
	out := l.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ArchivedAt.After(out[j].ArchivedAt)
	})
	return out
}

// ContainsArchivedPath reports whether any entry uses the given archived path.
func (l *Ledger) ContainsArchivedPath(path string) bool {
	for _, e := range l.doc.Entries {
		if e.ArchivedPath == path {
			return true
		}
	}
	return false
}

// Contains reports whether an entry with the given id exists.
func (l *Ledger) Contains(id string) bool {
	for _, e := range l.doc.Entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// FindByOriginalPath returns the entry whose original path matches, if any.
func (l *Ledger) FindByOriginalPath(path string) (Entry, bool) {
	for _, e := range l.doc.Entries {
		if e.OriginalPath == path {
			return e, true
		}
	}
	return Entry{}, false
}

// Record appends an entry and persists the ledger.
func (l *Ledger) Record(e Entry) error {
	if l.ContainsArchivedPath(e.ArchivedPath) {
		return errors.Newf(errors.DuplicateArchivePath,
			"archived path already recorded: %s", e.ArchivedPath)
	}
	if _, ok := l.FindByOriginalPath(e.OriginalPath); ok {
		return errors.Newf(errors.AlreadyArchived,
			"project already archived: %s", e.OriginalPath)
	}

	l.doc.Entries = append(l.doc.Entries, e)
	if err := l.save(); err != nil {
		l.doc.Entries = l.doc.Entries[:len(l.doc.Entries)-1]
		return err
	}
	return nil
}

// Remove retires the entry with the given id and persists the ledger.
func (l *Ledger) Remove(id string) error {
	idx := -1
	for i, e := range l.doc.Entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return errors.Newf(errors.NotArchived, "no ledger entry with id %s", id)
	}

	removed := l.doc.Entries[idx]
	l.doc.Entries = append(l.doc.Entries[:idx], l.doc.Entries[idx+1:]...)
	if err := l.save(); err != nil {
		l.doc.Entries = append(l.doc.Entries, removed)
		return err
	}
	return nil
}

// FindByName resolves a human-given name against entry names (the final
// path component of the original path). When several entries match, the
// most recently archived one wins; matches that tie on the archive
// timestamp are an AMBIGUOUS_REFERENCE the caller must resolve.
func (l *Ledger) FindByName(name string) (Entry, error) {
	var matches []Entry
	for _, e := range l.doc.Entries {
		if e.Name == name {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return Entry{}, errors.Newf(errors.NotArchived,
			"project '%s' not found in the archive", name)
	case 1:
		return matches[0], nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].ArchivedAt.After(matches[j].ArchivedAt)
	})
	if matches[0].ArchivedAt.Equal(matches[1].ArchivedAt) {
		return Entry{}, errors.New(errors.AmbiguousReference,
			fmt.Sprintf("%d archived projects named '%s' cannot be told apart", len(matches), name),
			nil).WithDetails(matches)
	}
	return matches[0], nil
}

// save persists the ledger under the file lock, atomically.
func (l *Ledger) save() error {
	lock, err := lockfile.Acquire(l.lockPath())
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	l.doc.Version = currentLedgerVersion
	data, err := json.MarshalIndent(l.doc, "", "  ")
	if err != nil {
		return errors.New(errors.InternalError, "failed to marshal ledger", err)
	}
	if err := lockfile.WriteAtomic(l.path, data, 0644); err != nil {
		return errors.New(errors.InternalError, "failed to write ledger", err)
	}
	return nil
}
