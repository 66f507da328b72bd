package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arcv/internal/archive"
	"arcv/internal/errors"
)

var (
	restoreAll   bool
	restoreForce bool
	restoreYes   bool
)

var restoreCmd = &cobra.Command{
	Use:     "restore [NAME]",
	Aliases: []string{"r"},
	Short:   "Restore one or all archived projects",
	Long: `Moves an archived project back to its original location and removes
its ledger entry.

If something else now occupies the original location the restore fails;
pass --force to move the occupant aside to '<name>.pre-restore' first.

Examples:
  arcv restore myproject
  arcv restore myproject --force
  arcv restore --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().BoolVarP(&restoreAll, "all", "a", false, "Restore all projects from the archive")
	restoreCmd.Flags().BoolVar(&restoreForce, "force", false, "Move an occupying directory aside before restoring")
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	if restoreAll == (len(args) == 1) {
		return errors.Newf(errors.InternalError,
			"specify a project name or --all, but not both")
	}

	led, err := openLedger()
	if err != nil {
		return err
	}
	operator := &archive.Operator{Ledger: led, Logger: newLogger()}

	if !restoreAll {
		entry, err := led.FindByName(args[0])
		if err != nil {
			return err
		}
		if err := operator.Restore(entry, false, restoreForce); err != nil {
			return err
		}
		fmt.Printf("Project '%s' restored to %s.\n", entry.Name, entry.OriginalPath)
		return nil
	}

	entries := led.List()
	if len(entries) == 0 {
		fmt.Println("No projects are currently archived.")
		return nil
	}
	if !restoreYes {
		ok, err := confirm(fmt.Sprintf("Restore all %d project(s) from the archive?", len(entries)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Operation cancelled.")
			return nil
		}
	}

	restored := 0
	var firstErr error
	for _, entry := range entries {
		if err := operator.Restore(entry, false, restoreForce); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			fmt.Printf("  failed   %-30s (%v)\n", entry.Name, err)
			continue
		}
		restored++
		fmt.Printf("  restored %s\n", entry.Name)
	}
	fmt.Printf("Restored %d of %d project(s).\n", restored, len(entries))

	if firstErr != nil {
		return errors.New(errors.ArchiveFailed,
			fmt.Sprintf("%d project(s) could not be restored", len(entries)-restored), firstErr)
	}
	return nil
}
