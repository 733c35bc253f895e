package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/tasksync/internal/parser"
	"github.com/manav03panchal/tasksync/internal/schedule"
)

var blocksFlagDate string

// blocksCmd represents the blocks command.
var blocksCmd = &cobra.Command{
	Use:     "blocks",
	Aliases: []string{"timeblocks", "b"},
	Short:   "Show a day laid out as one-hour time blocks",
	Long: `Lay out a day as one-hour blocks: one block per task starting at its
time, and a free block for every other hour.

Examples:
  tasksync blocks
  tasksync blocks --date tomorrow
  tasksync blocks --date 2026-10-20 --format json`,
	Args: cobra.NoArgs,
	RunE: runBlocks,
}

func init() {
	blocksCmd.Flags().StringVarP(&blocksFlagDate, "date", "d", "today", "Date to lay out")
	_ = blocksCmd.RegisterFlagCompletionFunc("date", completeDates)

	rootCmd.AddCommand(blocksCmd)
}

func runBlocks(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	date, err := parser.ParseDate(blocksFlagDate, ctx.Now())
	if err != nil {
		return err
	}

	tasks, err := ctx.TaskRepo.GetAll()
	if err != nil {
		return err
	}
	day := schedule.TimeBlocks(tasks, date, ctx.T("timeBlocking.freeTime"))
	ctx.Debugf("laid out day", "date", date, "task_blocks", day.TaskBlocks())

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDay(day)
	}
	ctx.CLIFormatter().PrintDay(day)
	return nil
}
