package scan

import (
	"os"
	"path/filepath"

	"arcv/internal/errors"
	"arcv/internal/gitinfo"
	"arcv/internal/logging"
)

// Discoverer enumerates candidate projects: the direct children of the
// scan root. It holds no cross-run state; every Discover call is a fresh
// filesystem walk.
type Discoverer struct {
	// Root is the projects directory whose children are candidates.
	Root string

	// ArchiveDir is skipped if it happens to live under Root.
	ArchiveDir string

	// Excluded reports whether a project name is on the exclusion list.
	// Excluded projects are never yielded, so they never reach the
	// classifier. May be nil.
	Excluded func(name string) bool

	Logger *logging.Logger
}

// Discover returns the candidate projects in directory order.
func (d *Discoverer) Discover() ([]Project, error) {
	entries, err := os.ReadDir(d.Root)
	if err != nil {
		return nil, errors.New(errors.ConfigInvalid,
			"projects directory is not readable: "+d.Root, err)
	}

	archiveDir := filepath.Clean(d.ArchiveDir)

	var projects []Project
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name[0] == '.' {
			continue
		}

		path := filepath.Join(d.Root, name)
		if filepath.Clean(path) == archiveDir {
			d.logDebug("Skipping archive directory", map[string]interface{}{"path": path})
			continue
		}
		if d.Excluded != nil && d.Excluded(name) {
			d.logDebug("Skipping excluded project", map[string]interface{}{"name": name})
			continue
		}

		kind := KindPlain
		if gitinfo.IsRepository(path) {
			kind = KindVersionControlled
		}
		projects = append(projects, Project{Name: name, Path: path, Kind: kind})
	}

	return projects, nil
}

func (d *Discoverer) logDebug(msg string, fields map[string]interface{}) {
	if d.Logger != nil {
		d.Logger.Debug(msg, fields)
	}
}
