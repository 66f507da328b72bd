package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"arcv/internal/errors"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List all currently archived projects",
	RunE:    runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	led, err := openLedger()
	if err != nil {
		return err
	}

	entries := led.List()

	if listJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return errors.New(errors.InternalError, "failed to marshal entries", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Println("No projects are currently archived.")
		return nil
	}

	fmt.Println("Archived projects:")
	for _, e := range entries {
		fmt.Printf("- %-30s archived %s  (from %s)\n",
			e.Name, e.ArchivedAt.Format("2006-01-02"), e.OriginalPath)
	}
	return nil
}
