package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"arcv/internal/archive"
	"arcv/internal/errors"
	"arcv/internal/history"
	"arcv/internal/paths"
)

var (
	runDryRun bool
	runJSON   bool
)

var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"a"},
	Short:   "Scan for inactive projects and archive them",
	Long: `Scans the projects directory, classifies every project as active or
inactive, and moves the inactive ones into the archive directory.

Examples:
  arcv run             # Archive all inactive projects
  arcv run --dry-run   # Show what would be archived without moving anything`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Compute the plan without moving any files")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Output the report as JSON")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	start := time.Now()

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	led, err := openLedger()
	if err != nil {
		return err
	}
	excl, err := openExclusions()
	if err != nil {
		return err
	}

	runner := &archive.Runner{
		Settings:   settings,
		Ledger:     led,
		Exclusions: excl,
		Logger:     logger,
	}
	report, err := runner.Run(runDryRun)
	if err != nil {
		return err
	}

	recordHistory(report, time.Since(start))

	if runJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return errors.New(errors.InternalError, "failed to marshal report", err)
		}
		fmt.Println(string(data))
	} else {
		printReport(report)
	}

	if report.HasFailures() {
		return errors.Newf(errors.ClassificationFailed,
			"%d of %d projects were skipped", report.Skipped, report.Scanned)
	}
	return nil
}

func printReport(report *archive.Report) {
	if report.DryRun {
		fmt.Println("-- DRY RUN -- no files were changed")
	}

	for _, p := range report.Projects {
		switch p.Status {
		case archive.StatusArchived:
			if report.DryRun {
				fmt.Printf("  would archive  %-30s -> %s\n", p.Name, p.ArchivedPath)
			} else {
				fmt.Printf("  archived       %-30s -> %s\n", p.Name, p.ArchivedPath)
			}
		case archive.StatusSkipped:
			fmt.Printf("  skipped        %-30s (%s)\n", p.Name, p.Error)
		}
	}

	fmt.Printf("Scanned %d project(s): %d active, %d inactive, %d archived, %d skipped.\n",
		report.Scanned, report.Active, report.Inactive, report.Archived, report.Skipped)
	if report.DryRun && report.Inactive > 0 {
		fmt.Println("Run without --dry-run to perform these actions.")
	}
}

// recordHistory persists the run summary. History is advisory only, so
// failures are logged and swallowed.
func recordHistory(report *archive.Report, duration time.Duration) {
	logger := newLogger()
	dbPath, err := paths.HistoryDBPath()
	if err != nil {
		logger.Warn("Could not resolve history database path", map[string]interface{}{"error": err.Error()})
		return
	}
	db, err := history.Open(dbPath, logger)
	if err != nil {
		logger.Warn("Could not open history database", map[string]interface{}{"error": err.Error()})
		return
	}
	defer func() { _ = db.Close() }()

	if err := db.RecordRun(report, duration); err != nil {
		logger.Warn("Could not record run history", map[string]interface{}{"error": err.Error()})
	}
}
