package cmd

import (
	"github.com/spf13/cobra"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"st"},
	Short:   "Show task statistics",
	Long: `Display how many tasks exist in total, today and this week, and how
many of them are completed.

Examples:
  tasksync stats
  tasksync stats --format json`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	stats, err := ctx.TaskRepo.GetStats()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintStats(stats)
	}
	ctx.CLIFormatter().PrintStats(ctx.T("home.statistics"), stats)
	return nil
}
