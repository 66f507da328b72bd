package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"arcv/internal/config"
	"arcv/internal/paths"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration interactively",
	Long: `Asks for the projects directory, the archive directory, and the
inactivity thresholds, then writes the configuration file. Rerunning
asks before overwriting an existing configuration.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := paths.EnsureStateDir(); err != nil {
		return err
	}
	configPath, err := paths.ConfigPath()
	if err != nil {
		return err
	}

	defaults := config.DefaultSettings()
	if _, statErr := os.Stat(configPath); statErr == nil {
		ok, err := confirm("A configuration file already exists. Overwrite it?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Initialization cancelled.")
			return nil
		}
		// Use the existing values as prompt defaults.
		if existing, err := config.Load(configPath); err == nil {
			defaults = existing
		}
	}

	fmt.Println("Welcome to arcv setup!")
	reader := bufio.NewReader(os.Stdin)

	projectsDir, err := promptString(reader, "Projects directory", defaults.ProjectsDir)
	if err != nil {
		return err
	}
	archiveDir, err := promptString(reader, "Archive directory", defaults.ArchiveDir)
	if err != nil {
		return err
	}
	inactiveDays, err := promptInt(reader, "Archive plain directories after how many idle days?", defaults.InactiveAfterDays)
	if err != nil {
		return err
	}
	repoDays, err := promptInt(reader, "Archive git repositories after how many idle days?", defaults.RepoInactiveAfterDays)
	if err != nil {
		return err
	}

	settings := &config.Settings{
		ProjectsDir:           projectsDir,
		ArchiveDir:            archiveDir,
		InactiveAfterDays:     inactiveDays,
		RepoInactiveAfterDays: repoDays,
		Ignore:                defaults.Ignore,
	}
	if err := settings.Save(configPath); err != nil {
		return err
	}

	fmt.Println("\nConfiguration saved successfully!")
	fmt.Printf("Configuration written to: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Run 'arcv run --dry-run' to preview what would be archived")
	fmt.Println("  2. Run 'arcv run' to archive inactive projects")
	return nil
}
