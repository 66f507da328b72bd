package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"arcv/internal/errors"
	"arcv/internal/gitinfo"
	"arcv/internal/logging"
)

// Classifier determines the last-activity timestamp of a project and
// compares it to the policy thresholds. Classification is read-only and
// deterministic for a given filesystem and repository state.
type Classifier struct {
	Policy Policy
	Logger *logging.Logger

	// Now is the clock used for threshold comparison; defaults to time.Now.
	Now func() time.Time
}

// Classify returns the project's classification, or a CLASSIFICATION_FAILED
// error when the project cannot be inspected. Callers skip failed projects
// with a warning rather than aborting the run.
func (c *Classifier) Classify(p Project) (Classification, error) {
	last, err := c.lastActivity(p)
	if err != nil {
		return Classification{}, err
	}

	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}

	return Classification{
		LastActivity: last,
		Inactive:     now.Sub(last) >= c.Policy.ThresholdFor(p.Kind),
	}, nil
}

func (c *Classifier) lastActivity(p Project) (time.Time, error) {
	if p.Kind == KindVersionControlled {
		last, err := gitinfo.LastActivity(p.Path)
		if err == nil {
			return last, nil
		}
		// An empty or broken repository is not a reason to give up;
		// fall back to file modification times, like a plain directory.
		if c.Logger != nil {
			c.Logger.Debug("Git activity check failed, falling back to mtime", map[string]interface{}{
				"path":  p.Path,
				"error": err.Error(),
			})
		}
	}
	return c.latestMtime(p.Path)
}

// latestMtime returns the newest file modification time under dir.
// Symlinks are not followed, so cycles cannot loop the walk; subtrees on
// the ignore list are pruned, as is .git, whose metadata churns on
// fetch and status without any real work happening. An empty tree falls
// back to the mtime of the directory itself.
func (c *Classifier) latestMtime(dir string) (time.Time, error) {
	ignore := make(map[string]bool, len(c.Policy.Ignore))
	for _, name := range c.Policy.Ignore {
		ignore[name] = true
	}

	var latest time.Time
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Vanished mid-scan is fine; anything else fails the project.
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != dir && (d.Name() == ".git" || ignore[d.Name()]) {
			return filepath.SkipDir
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if mod := info.ModTime(); mod.After(latest) {
			latest = mod
		}
		return nil
	})
	if err != nil {
		return time.Time{}, errors.New(errors.ClassificationFailed,
			"could not determine activity for "+dir, err)
	}

	if latest.IsZero() {
		info, err := os.Stat(dir)
		if err != nil {
			return time.Time{}, errors.New(errors.ClassificationFailed,
				"could not determine activity for "+dir, err)
		}
		latest = info.ModTime()
	}
	return latest, nil
}
