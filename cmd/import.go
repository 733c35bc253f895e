package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/storage"
)

var importFlagBackup bool

// importCmd represents the import command.
var importCmd = &cobra.Command{
	Use:     "import FILE",
	Aliases: []string{"imp", "restore"},
	Short:   "Import data written by 'tasksync export'",
	Long: `Import a JSON export, replacing the stored tasks, settings, accounts,
session and language it contains. Pass --backup to load a binary backup
written by 'tasksync export --backup'.

Examples:
  tasksync import tasksync.json
  tasksync import --backup tasksync.bak`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&importFlagBackup, "backup", "b", false, "FILE is a binary database backup")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewUserErrorWithField("file", path, "file not found", "Check the path and try again.")
		}
		return errors.NewSystemErrorWithOp("import", path, err)
	}
	defer f.Close()

	if importFlagBackup {
		db, err := ctx.RequireDB()
		if err != nil {
			return err
		}
		if err := db.Restore(f); err != nil {
			return err
		}
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintMessage("restored", path)
		}
		ctx.CLIFormatter().Success("Restored backup from " + path)
		return nil
	}

	n, err := storage.ImportBlobs(ctx.Store, f)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintMessage("imported", fmt.Sprintf("%d entries", n))
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Imported %d entries from %s", n, path))
	return nil
}
