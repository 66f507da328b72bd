// Package archive executes archive, restore, and delete operations as
// transactional filesystem moves paired with ledger updates, and drives
// the scan-classify-archive pipeline.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"arcv/internal/errors"
	"arcv/internal/ledger"
	"arcv/internal/logging"
	"arcv/internal/scan"
)

// Operator performs the physical moves and keeps the ledger consistent
// with the filesystem: after every operation a project is either at its
// original path with no ledger entry, or at its archived path with
// exactly one.
type Operator struct {
	ArchiveRoot string
	Ledger      *ledger.Ledger
	Logger      *logging.Logger
}

// preRestoreSuffix is appended to a directory occupying a restore target
// when the caller forces the restore.
const preRestoreSuffix = ".pre-restore"

// Archive moves a project into the archive root and records it. In
// dry-run mode it performs every check and returns the entry that would
// be recorded, without touching the filesystem or the ledger.
func (o *Operator) Archive(p scan.Project, dryRun bool) (ledger.Entry, error) {
	if _, ok := o.Ledger.FindByOriginalPath(p.Path); ok {
		return ledger.Entry{}, errors.Newf(errors.AlreadyArchived,
			"project already archived: %s", p.Path)
	}

	dest := o.destinationFor(sanitizeName(p.Name))
	entry := ledger.NewEntry(p.Path, dest)

	if dryRun {
		return entry, nil
	}

	if err := os.MkdirAll(o.ArchiveRoot, 0755); err != nil {
		return ledger.Entry{}, errors.New(errors.ArchiveFailed,
			"failed to create archive directory", err)
	}
	if err := relocate(p.Path, dest); err != nil {
		return ledger.Entry{}, errors.New(errors.ArchiveFailed,
			"failed to move "+p.Path, err)
	}

	if err := o.Ledger.Record(entry); err != nil {
		// The move succeeded but the record did not; put the project
		// back so filesystem and ledger stay consistent.
		if rbErr := relocate(dest, p.Path); rbErr != nil {
			o.logError("Rollback after failed ledger record also failed", map[string]interface{}{
				"project":  p.Name,
				"stranded": dest,
				"error":    rbErr.Error(),
			})
			return ledger.Entry{}, errors.New(errors.ArchiveFailed,
				fmt.Sprintf("ledger record failed and rollback left project at %s", dest), err)
		}
		return ledger.Entry{}, err
	}

	o.logInfo("Project archived", map[string]interface{}{
		"project": p.Name,
		"from":    p.Path,
		"to":      dest,
	})
	return entry, nil
}

// Restore moves an archived project back to its original path and
// retires the ledger entry. An occupied original path is surfaced as
// DESTINATION_OCCUPIED unless force is set, in which case the occupant
// is renamed aside first.
func (o *Operator) Restore(e ledger.Entry, dryRun, force bool) error {
	if _, err := os.Lstat(e.ArchivedPath); os.IsNotExist(err) {
		return errors.Newf(errors.ArchiveFailed,
			"archived copy is missing from disk: %s", e.ArchivedPath)
	}

	occupied := pathExists(e.OriginalPath)
	aside := e.OriginalPath + preRestoreSuffix
	if occupied {
		if !force {
			return errors.Newf(errors.DestinationOccupied,
				"something already exists at %s", e.OriginalPath)
		}
		if pathExists(aside) {
			return errors.Newf(errors.ArchiveFailed,
				"cannot move occupant aside, %s already exists", aside)
		}
	}

	if dryRun {
		return nil
	}

	if occupied {
		if err := os.Rename(e.OriginalPath, aside); err != nil {
			return errors.New(errors.ArchiveFailed, "failed to move occupant aside", err)
		}
		o.logInfo("Occupant moved aside", map[string]interface{}{
			"from": e.OriginalPath,
			"to":   aside,
		})
	}

	if err := os.MkdirAll(filepath.Dir(e.OriginalPath), 0755); err != nil {
		return errors.New(errors.ArchiveFailed, "failed to create parent directory", err)
	}
	if err := relocate(e.ArchivedPath, e.OriginalPath); err != nil {
		return errors.New(errors.ArchiveFailed,
			"failed to move "+e.ArchivedPath, err)
	}

	if err := o.Ledger.Remove(e.ID); err != nil {
		if rbErr := relocate(e.OriginalPath, e.ArchivedPath); rbErr == nil && occupied {
			_ = os.Rename(aside, e.OriginalPath)
		} else if rbErr != nil {
			o.logError("Rollback after failed ledger remove also failed", map[string]interface{}{
				"project": e.Name,
				"error":   rbErr.Error(),
			})
		}
		return err
	}

	o.logInfo("Project restored", map[string]interface{}{
		"project": e.Name,
		"to":      e.OriginalPath,
	})
	return nil
}

// Delete permanently removes an archived project from disk and retires
// its ledger entry. There is no trash tier; callers gate this behind
// explicit confirmation. Dry-run performs the same entry and existence
// checks and stops before the removal.
func (o *Operator) Delete(e ledger.Entry, dryRun bool) error {
	if !o.Ledger.Contains(e.ID) {
		return errors.Newf(errors.NotArchived, "no ledger entry with id %s", e.ID)
	}
	if !pathExists(e.ArchivedPath) {
		return errors.Newf(errors.ArchiveFailed,
			"archived copy is missing from disk: %s", e.ArchivedPath)
	}

	if dryRun {
		return nil
	}

	if err := os.RemoveAll(e.ArchivedPath); err != nil {
		return errors.New(errors.ArchiveFailed,
			"failed to delete "+e.ArchivedPath, err)
	}
	if err := o.Ledger.Remove(e.ID); err != nil {
		return err
	}

	o.logInfo("Project deleted from archive", map[string]interface{}{
		"project": e.Name,
		"path":    e.ArchivedPath,
	})
	return nil
}

// destinationFor picks an archive path for name, suffixing -2, -3, ...
// until it collides with neither the disk nor the ledger.
func (o *Operator) destinationFor(name string) string {
	base := filepath.Join(o.ArchiveRoot, name)
	candidate := base
	for i := 2; pathExists(candidate) || o.Ledger.ContainsArchivedPath(candidate); i++ {
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return candidate
}

// sanitizeName reduces a project name to characters safe in an archive
// path component.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "project"
	}
	return out
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func (o *Operator) logInfo(msg string, fields map[string]interface{}) {
	if o.Logger != nil {
		o.Logger.Info(msg, fields)
	}
}

func (o *Operator) logError(msg string, fields map[string]interface{}) {
	if o.Logger != nil {
		o.Logger.Error(msg, fields)
	}
}
