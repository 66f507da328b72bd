package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"arcv/internal/archive"
	"arcv/internal/errors"
)

var (
	deleteAll bool
	deleteYes bool
)

var deleteCmd = &cobra.Command{
	Use:     "delete [NAME]",
	Aliases: []string{"d"},
	Short:   "Delete one or all projects permanently from the archive",
	Long: `Permanently removes an archived project from disk and retires its
ledger entry. There is no trash tier; this cannot be undone.

Examples:
  arcv delete myproject
  arcv delete --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteAll, "all", "a", false, "Delete ALL projects from the archive. This is irreversible")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompts")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if deleteAll == (len(args) == 1) {
		return errors.Newf(errors.InternalError,
			"specify a project name or --all, but not both")
	}

	fmt.Println("Warning: this operation is permanent and cannot be undone.")

	led, err := openLedger()
	if err != nil {
		return err
	}
	operator := &archive.Operator{Ledger: led, Logger: newLogger()}

	if !deleteAll {
		entry, err := led.FindByName(args[0])
		if err != nil {
			return err
		}
		if !deleteYes {
			ok, err := confirm(fmt.Sprintf("Permanently delete '%s'?", entry.Name))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Operation cancelled.")
				return nil
			}
		}
		if err := operator.Delete(entry, false); err != nil {
			return err
		}
		fmt.Printf("Project '%s' deleted.\n", entry.Name)
		return nil
	}

	entries := led.List()
	if len(entries) == 0 {
		fmt.Println("Archive is already empty.")
		return nil
	}
	if !deleteYes {
		if err := confirmDeleteAll(len(entries)); err != nil {
			return err
		}
	}

	deleted := 0
	var firstErr error
	for _, entry := range entries {
		if err := operator.Delete(entry, false); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			fmt.Printf("  failed  %-30s (%v)\n", entry.Name, err)
			continue
		}
		deleted++
	}
	fmt.Printf("Deleted %d of %d project(s).\n", deleted, len(entries))

	if firstErr != nil {
		return errors.New(errors.ArchiveFailed,
			fmt.Sprintf("%d project(s) could not be deleted", len(entries)-deleted), firstErr)
	}
	return nil
}

// confirmDeleteAll makes the caller type the number of projects about to
// be destroyed. A plain y/N is too easy to give by reflex.
func confirmDeleteAll(count int) error {
	ok, err := confirm(fmt.Sprintf("Permanently delete ALL %d project(s)?", count))
	if err != nil {
		return err
	}
	if !ok {
		return errors.Newf(errors.InternalError, "operation cancelled")
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("To confirm, type the number of projects to delete (%d): ", count)
	input, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n != count {
		return errors.Newf(errors.InternalError, "incorrect number entered, deletion cancelled")
	}
	return nil
}
