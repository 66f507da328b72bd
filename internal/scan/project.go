// Package scan discovers candidate projects under the scan root and
// classifies them as active or inactive.
package scan

import (
	"time"

	"arcv/internal/config"
)

// Kind determines which activity signal applies to a project.
type Kind string

const (
	// KindVersionControlled marks a project with a .git directory;
	// activity comes from commit history.
	KindVersionControlled Kind = "git"
	// KindPlain marks a plain directory; activity comes from file
	// modification times.
	KindPlain Kind = "plain"
)

// Project is a candidate directory under the scan root.
type Project struct {
	Name string `json:"name"`
	Path string `json:"path"` // Always absolute, cleaned
	Kind Kind   `json:"kind"`
}

// Policy holds the inactivity thresholds and the walk ignore list.
type Policy struct {
	PlainAfter time.Duration
	RepoAfter  time.Duration
	Ignore     []string
}

// PolicyFromSettings derives the classification policy from settings.
func PolicyFromSettings(s *config.Settings) Policy {
	return Policy{
		PlainAfter: s.InactiveAfter(),
		RepoAfter:  s.RepoInactiveAfter(),
		Ignore:     s.Ignore,
	}
}

// ThresholdFor returns the idle threshold for a project kind.
func (p Policy) ThresholdFor(kind Kind) time.Duration {
	if kind == KindVersionControlled {
		return p.RepoAfter
	}
	return p.PlainAfter
}

// Classification is the result of classifying one project.
type Classification struct {
	LastActivity time.Time `json:"lastActivity"`
	Inactive     bool      `json:"inactive"`
}
