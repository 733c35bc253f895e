package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/model"
	"github.com/manav03panchal/tasksync/internal/schedule"
	"github.com/manav03panchal/tasksync/internal/storage"
	"github.com/manav03panchal/tasksync/internal/validate"
)

// Export command flags.
var (
	exportFlagCSV    bool
	exportFlagBackup bool
	exportFlagOutput string
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"ex", "dump"},
	Short:   "Export tasks, settings and accounts",
	Long: `Export data as JSON (every stored value keyed by name, readable by
'tasksync import'), as a CSV task list, or as a binary database backup.

The auth token is never exported. When --output names a directory, the
file inside it is named after the current user and date.

Examples:
  tasksync export -o tasksync.json
  tasksync export --csv -o tasks.csv
  tasksync export --backup -o tasksync.bak`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportFlagCSV, "csv", false, "Export the task list as CSV")
	exportCmd.Flags().BoolVarP(&exportFlagBackup, "backup", "b", false, "Full binary database backup")
	exportCmd.Flags().StringVarP(&exportFlagOutput, "output", "o", "", "Output file (stdout if omitted)")
	exportCmd.MarkFlagsMutuallyExclusive("csv", "backup")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	if info, err := os.Stat(exportFlagOutput); err == nil && info.IsDir() {
		exportFlagOutput = filepath.Join(exportFlagOutput, exportFileName())
	}

	var db *storage.DB
	if exportFlagBackup {
		var err error
		if db, err = ctx.RequireDB(); err != nil {
			return err
		}
	}

	var writer io.Writer = stdout
	if exportFlagOutput != "" {
		f, err := os.Create(exportFlagOutput)
		if err != nil {
			return errors.NewSystemErrorWithOp("export", exportFlagOutput, err)
		}
		defer f.Close()
		writer = f
	}

	switch {
	case exportFlagBackup:
		if err := db.Backup(writer); err != nil {
			return err
		}
		ctx.Debugf("database backup written", "output", exportFlagOutput)
	case exportFlagCSV:
		tasks, err := ctx.TaskRepo.GetAll()
		if err != nil {
			return err
		}
		if err := exportCSV(writer, schedule.Sort(tasks, schedule.SortByDate)); err != nil {
			return errors.Wrap(err, "export csv")
		}
	default:
		n, err := storage.ExportBlobs(ctx.Store, writer)
		if err != nil {
			return errors.Wrap(err, "export")
		}
		ctx.Debugf("blobs exported", "count", n)
	}

	if exportFlagOutput != "" && !ctx.IsJSON() {
		ctx.CLIFormatter().Success("Exported to " + exportFlagOutput)
	}
	return nil
}

// exportFileName is e.g. tasksync-ann_at_example.com-2026-10-17.json.
func exportFileName() string {
	ext := ".json"
	switch {
	case exportFlagCSV:
		ext = ".csv"
	case exportFlagBackup:
		ext = ".bak"
	}
	owner := "local"
	if user, err := ctx.CurrentUser(); err == nil && user != nil {
		owner = user.Email
	}
	return validate.SafeFilename(fmt.Sprintf("tasksync-%s-%s", owner, ctx.Now().Format(time.DateOnly))) + ext
}

func exportCSV(w io.Writer, tasks []*model.Task) error {
	writer := csv.NewWriter(w)

	// Write header
	if err := writer.Write([]string{
		"id", "title", "description", "date", "time", "priority", "status", "created_at", "updated_at",
	}); err != nil {
		return err
	}

	// Write rows
	for _, t := range tasks {
		if err := writer.Write([]string{
			t.ID,
			t.Title,
			t.Description,
			t.Date,
			t.Time,
			string(t.Priority),
			string(t.Status),
			t.CreatedAt,
			t.UpdatedAt,
		}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
