package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arcv/internal/history"
	"arcv/internal/paths"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show summaries of recent runs",
	Long: `Shows what recent runs did: how many projects were scanned, how many
were archived, and how long the run took.

Examples:
  arcv history         # Show the last 10 runs
  arcv history -n 50   # Show the last 50 runs`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath, err := paths.HistoryDBPath()
	if err != nil {
		return err
	}
	db, err := history.Open(dbPath, newLogger())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	records, err := db.RecentRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Println("Recent runs:")
	for _, rec := range records {
		mode := "run"
		if rec.DryRun {
			mode = "dry-run"
		}
		fmt.Printf("- %s  %-7s scanned=%d active=%d inactive=%d archived=%d skipped=%d (%dms)\n",
			rec.RanAt.Format("2006-01-02 15:04"), mode,
			rec.Scanned, rec.Active, rec.Inactive, rec.Archived, rec.Skipped,
			rec.DurationMs)
	}
	return nil
}
