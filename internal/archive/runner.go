package archive

import (
	"time"

	"arcv/internal/config"
	"arcv/internal/exclusions"
	"arcv/internal/ledger"
	"arcv/internal/logging"
	"arcv/internal/scan"
)

// ProjectStatus describes what happened to one project during a run.
type ProjectStatus string

const (
	// StatusActive means the project stays where it is.
	StatusActive ProjectStatus = "active"
	// StatusArchived means the project was (or, in dry-run, would be) archived.
	StatusArchived ProjectStatus = "archived"
	// StatusSkipped means the project could not be processed; see Error.
	StatusSkipped ProjectStatus = "skipped"
)

// ProjectResult is one line of the run report.
type ProjectResult struct {
	Name         string        `json:"name"`
	Path         string        `json:"path"`
	Kind         scan.Kind     `json:"kind"`
	Status       ProjectStatus `json:"status"`
	LastActivity *time.Time    `json:"lastActivity,omitempty"`
	ArchivedPath string        `json:"archivedPath,omitempty"`
	Error        string        `json:"error,omitempty"`
}

// Report summarizes one run. A dry-run report lists the same projects a
// live run would archive, given unchanged filesystem state.
type Report struct {
	DryRun   bool            `json:"dryRun"`
	Scanned  int             `json:"scanned"`
	Active   int             `json:"active"`
	Inactive int             `json:"inactive"`
	Archived int             `json:"archived"`
	Skipped  int             `json:"skipped"`
	Projects []ProjectResult `json:"projects"`
}

// HasFailures reports whether any project was skipped due to an error.
func (r *Report) HasFailures() bool {
	return r.Skipped > 0
}

// Runner wires the discoverer, classifier, and operator into the `run`
// pipeline. Per-project failures are collected into the report; only
// discovery and ledger-level failures abort the run.
type Runner struct {
	Settings   *config.Settings
	Ledger     *ledger.Ledger
	Exclusions *exclusions.Store
	Logger     *logging.Logger

	// Now is the clock used for inactivity comparison; defaults to time.Now.
	Now func() time.Time
}

// Run scans the projects directory, classifies every candidate, and
// archives the inactive ones in discovery order. With dryRun set the
// full plan is computed but nothing is moved or recorded.
func (r *Runner) Run(dryRun bool) (*Report, error) {
	discoverer := &scan.Discoverer{
		Root:       r.Settings.ProjectsDir,
		ArchiveDir: r.Settings.ArchiveDir,
		Excluded:   r.Exclusions.Contains,
		Logger:     r.Logger,
	}
	classifier := &scan.Classifier{
		Policy: scan.PolicyFromSettings(r.Settings),
		Logger: r.Logger,
		Now:    r.Now,
	}
	operator := &Operator{
		ArchiveRoot: r.Settings.ArchiveDir,
		Ledger:      r.Ledger,
		Logger:      r.Logger,
	}

	projects, err := discoverer.Discover()
	if err != nil {
		return nil, err
	}

	report := &Report{DryRun: dryRun, Scanned: len(projects)}
	for _, p := range projects {
		result := ProjectResult{Name: p.Name, Path: p.Path, Kind: p.Kind}

		cls, err := classifier.Classify(p)
		if err != nil {
			r.logWarn("Could not determine activity for project, skipping", map[string]interface{}{
				"path":  p.Path,
				"error": err.Error(),
			})
			result.Status = StatusSkipped
			result.Error = err.Error()
			report.Skipped++
			report.Projects = append(report.Projects, result)
			continue
		}

		last := cls.LastActivity
		result.LastActivity = &last

		if !cls.Inactive {
			result.Status = StatusActive
			report.Active++
			report.Projects = append(report.Projects, result)
			continue
		}
		report.Inactive++

		entry, err := operator.Archive(p, dryRun)
		if err != nil {
			r.logWarn("Failed to archive project, continuing with the rest", map[string]interface{}{
				"project": p.Name,
				"error":   err.Error(),
			})
			result.Status = StatusSkipped
			result.Error = err.Error()
			report.Skipped++
			report.Projects = append(report.Projects, result)
			continue
		}

		result.Status = StatusArchived
		result.ArchivedPath = entry.ArchivedPath
		report.Archived++
		report.Projects = append(report.Projects, result)
	}

	return report, nil
}

func (r *Runner) logWarn(msg string, fields map[string]interface{}) {
	if r.Logger != nil {
		r.Logger.Warn(msg, fields)
	}
}
