package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/tasksync/internal/storage"
)

var doctorFlagRepair bool

// doctorCmd checks the stored data.
var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Aliases: []string{"check", "fsck"},
	Short:   "Check stored data for corruption",
	Long: `Decode every stored value and report the ones that cannot be read.
Unreadable values already behave as empty; --repair deletes them so the
next write starts clean.

Examples:
  tasksync doctor
  tasksync doctor --repair`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorFlagRepair, "repair", false, "Delete unreadable values")

	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	report, err := storage.CheckIntegrity(ctx.Store)
	if err != nil {
		return err
	}

	removed := 0
	if doctorFlagRepair && !report.Healthy {
		removed, err = storage.Repair(ctx.Store, report)
		if err != nil {
			return err
		}
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintHealth(report)
	}
	cli := ctx.CLIFormatter()
	cli.PrintHealth(report)
	if ctx.DB != nil && ctx.DB.Path() != "" {
		if warning := storage.CheckDiskSpaceWarning(ctx.DB.Path()); warning != "" {
			cli.Warning(warning)
		}
	}
	if removed > 0 {
		cli.Success(fmt.Sprintf("Removed %d unreadable value(s)", removed))
	} else if !report.Healthy {
		cli.Muted("Run 'tasksync doctor --repair' to remove them.")
	}
	return nil
}
