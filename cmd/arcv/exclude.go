package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arcv/internal/errors"
)

var (
	excludeRemove bool
	excludeList   bool
)

var excludeCmd = &cobra.Command{
	Use:     "exclude [NAME]",
	Aliases: []string{"e"},
	Short:   "Add or remove a project from the exclusion list",
	Long: `Excluded projects are never considered for archiving, regardless of
how long they have been inactive.

Examples:
  arcv exclude myproject           # Never archive myproject
  arcv exclude myproject --remove  # Consider myproject again
  arcv exclude --list              # Show the exclusion list`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExclude,
}

func init() {
	excludeCmd.Flags().BoolVarP(&excludeRemove, "remove", "r", false, "Remove the project from the exclusion list")
	excludeCmd.Flags().BoolVar(&excludeList, "list", false, "Show the exclusion list")
	rootCmd.AddCommand(excludeCmd)
}

func runExclude(cmd *cobra.Command, args []string) error {
	store, err := openExclusions()
	if err != nil {
		return err
	}

	if excludeList {
		names := store.List()
		if len(names) == 0 {
			fmt.Println("No projects are excluded.")
			return nil
		}
		fmt.Println("Excluded projects:")
		for _, name := range names {
			fmt.Printf("- %s\n", name)
		}
		return nil
	}

	if len(args) != 1 {
		return errors.Newf(errors.InternalError, "specify a project name or --list")
	}
	name := args[0]

	if excludeRemove {
		if !store.Contains(name) {
			fmt.Printf("Project '%s' was not on the exclusion list. No changes made.\n", name)
			return nil
		}
		if err := store.Remove(name); err != nil {
			return err
		}
		fmt.Printf("Project '%s' removed from the exclusion list.\n", name)
		return nil
	}

	if store.Contains(name) {
		fmt.Printf("Project '%s' is already on the exclusion list.\n", name)
		return nil
	}
	if err := store.Add(name); err != nil {
		return err
	}
	fmt.Printf("Project '%s' added to the exclusion list.\n", name)
	return nil
}
