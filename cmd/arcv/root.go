package main

import (
	"arcv/internal/config"
	"arcv/internal/exclusions"
	"arcv/internal/ledger"
	"arcv/internal/logging"
	"arcv/internal/paths"
	"arcv/internal/version"

	"github.com/spf13/cobra"
)

var (
	// verboseFlag enables debug logging
	verboseFlag bool
	// jsonLogsFlag switches log output to JSON
	jsonLogsFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "arcv",
	Short: "arcv - workspace archiver",
	Long: `arcv keeps a workspace tidy: it scans your projects directory, finds
projects with no recent activity (commit history for git repositories,
file modification times otherwise), and moves them into an archive
directory. Archived projects can be listed, restored, or deleted.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("arcv version {{.Version}}\n")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogsFlag, "json-logs", false, "Write logs as JSON")
}

// newLogger builds the logger for a command invocation from the global flags.
func newLogger() *logging.Logger {
	level := logging.InfoLevel
	if verboseFlag {
		level = logging.DebugLevel
	}
	format := logging.HumanFormat
	if jsonLogsFlag {
		format = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{Format: format, Level: level})
}

// loadSettings loads the configuration from its default location.
func loadSettings() (*config.Settings, error) {
	path, err := paths.ConfigPath()
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// openLedger opens the archive ledger at its default location.
func openLedger() (*ledger.Ledger, error) {
	path, err := paths.LedgerPath()
	if err != nil {
		return nil, err
	}
	return ledger.Open(path)
}

// openExclusions opens the exclusion store at its default location.
func openExclusions() (*exclusions.Store, error) {
	path, err := paths.ExclusionsPath()
	if err != nil {
		return nil, err
	}
	return exclusions.Open(path)
}
