package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arcv/internal/paths"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show the configuration and state file paths being used",
	RunE:  runPaths,
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}

func runPaths(cmd *cobra.Command, args []string) error {
	configPath, err := paths.ConfigPath()
	if err != nil {
		return err
	}
	ledgerPath, err := paths.LedgerPath()
	if err != nil {
		return err
	}
	exclusionsPath, err := paths.ExclusionsPath()
	if err != nil {
		return err
	}
	historyPath, err := paths.HistoryDBPath()
	if err != nil {
		return err
	}

	fmt.Println("Configuration paths:")
	fmt.Printf("- Config file:     %s\n", configPath)
	fmt.Printf("- Archive ledger:  %s\n", ledgerPath)
	fmt.Printf("- Exclusion list:  %s\n", exclusionsPath)
	fmt.Printf("- Run history:     %s\n", historyPath)

	if settings, err := loadSettings(); err == nil {
		fmt.Printf("- Projects directory: %s\n", settings.ProjectsDir)
		fmt.Printf("- Archive directory:  %s\n", settings.ArchiveDir)
	}
	return nil
}
