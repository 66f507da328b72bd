// Package config loads and persists arcv settings.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"arcv/internal/errors"
	"arcv/internal/lockfile"
)

// Settings represents the complete arcv configuration.
type Settings struct {
	// ProjectsDir is the scan root whose direct children are candidate projects.
	ProjectsDir string `toml:"projects_dir" mapstructure:"projects_dir"`

	// ArchiveDir is the directory inactive projects are moved into.
	ArchiveDir string `toml:"archive_dir" mapstructure:"archive_dir"`

	// InactiveAfterDays is the idle threshold for plain directories.
	InactiveAfterDays int `toml:"inactive_after_days" mapstructure:"inactive_after_days"`

	// RepoInactiveAfterDays is the idle threshold for version-controlled
	// projects. Repositories tolerate longer idle periods than plain
	// directories before they are considered abandoned.
	RepoInactiveAfterDays int `toml:"repo_inactive_after_days" mapstructure:"repo_inactive_after_days"`

	// Ignore lists directory names pruned from the modification-time walk.
	Ignore []string `toml:"ignore" mapstructure:"ignore"`
}

const envPrefix = "ARCV"

// DefaultSettings returns the default configuration.
func DefaultSettings() *Settings {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Settings{
		ProjectsDir:           filepath.Join(home, "projects"),
		ArchiveDir:            filepath.Join(home, ".archive"),
		InactiveAfterDays:     30,
		RepoInactiveAfterDays: 60,
		Ignore: []string{
			"node_modules", "target", "build", "dist", ".venv", "vendor",
		},
	}
}

// Load reads settings from the TOML file at path, applying defaults for
// missing values and ARCV_* environment overrides. A missing file yields
// the defaults; a malformed or invalid one is a CONFIG_INVALID error.
func Load(path string) (*Settings, error) {
	defaults := DefaultSettings()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("projects_dir", defaults.ProjectsDir)
	v.SetDefault("archive_dir", defaults.ArchiveDir)
	v.SetDefault("inactive_after_days", defaults.InactiveAfterDays)
	v.SetDefault("repo_inactive_after_days", defaults.RepoInactiveAfterDays)
	v.SetDefault("ignore", defaults.Ignore)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errors.New(errors.ConfigInvalid, "failed to read config file", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.New(errors.ConfigInvalid, "failed to parse config file", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the settings to path as TOML, atomically.
func (s *Settings) Save(path string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return errors.New(errors.InternalError, "failed to serialize settings", err)
	}
	if err := lockfile.WriteAtomic(path, data, 0644); err != nil {
		return errors.New(errors.InternalError, "failed to write config file", err)
	}
	return nil
}

// Validate checks the settings for values no run could proceed with.
func (s *Settings) Validate() error {
	if s.ProjectsDir == "" {
		return errors.Newf(errors.ConfigInvalid, "projects_dir must not be empty")
	}
	if s.ArchiveDir == "" {
		return errors.Newf(errors.ConfigInvalid, "archive_dir must not be empty")
	}
	if filepath.Clean(s.ProjectsDir) == filepath.Clean(s.ArchiveDir) {
		return errors.Newf(errors.ConfigInvalid, "archive_dir must differ from projects_dir")
	}
	if s.InactiveAfterDays < 1 {
		return errors.Newf(errors.ConfigInvalid, "inactive_after_days must be at least 1, got %d", s.InactiveAfterDays)
	}
	if s.RepoInactiveAfterDays < 1 {
		return errors.Newf(errors.ConfigInvalid, "repo_inactive_after_days must be at least 1, got %d", s.RepoInactiveAfterDays)
	}
	return nil
}

// InactiveAfter returns the plain-directory idle threshold as a duration.
func (s *Settings) InactiveAfter() time.Duration {
	return time.Duration(s.InactiveAfterDays) * 24 * time.Hour
}

// RepoInactiveAfter returns the repository idle threshold as a duration.
func (s *Settings) RepoInactiveAfter() time.Duration {
	return time.Duration(s.RepoInactiveAfterDays) * 24 * time.Hour
}
