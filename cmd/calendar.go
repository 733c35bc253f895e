package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/tasksync/internal/model"
	"github.com/manav03panchal/tasksync/internal/output"
	"github.com/manav03panchal/tasksync/internal/parser"
	"github.com/manav03panchal/tasksync/internal/schedule"
)

// Calendar flags.
var (
	calendarFlagMonth string
	calendarFlagDate  string
)

// calendarCmd represents the calendar command.
var calendarCmd = &cobra.Command{
	Use:     "calendar",
	Aliases: []string{"cal"},
	Short:   "Show a month calendar with pending task counts",
	Long: `Display a Sunday-first month grid. Days with pending tasks show how
many are left. Pass --date to also list the tasks on one day.

Examples:
  tasksync calendar
  tasksync calendar --month "next month"
  tasksync calendar --month 2026-12
  tasksync calendar --date friday`,
	Args: cobra.NoArgs,
	RunE: runCalendar,
}

func init() {
	calendarCmd.Flags().StringVarP(&calendarFlagMonth, "month", "m", "", "Month to show (2026-10, next month)")
	calendarCmd.Flags().StringVarP(&calendarFlagDate, "date", "d", "", "Also list the tasks on this date")
	_ = calendarCmd.RegisterFlagCompletionFunc("date", completeDates)

	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	now := ctx.Now()

	selected := ""
	if calendarFlagDate != "" {
		date, err := parser.ParseDate(calendarFlagDate, now)
		if err != nil {
			return err
		}
		selected = date
	}

	year, month, err := calendarMonth(now, selected)
	if err != nil {
		return err
	}

	all, err := ctx.TaskRepo.GetAll()
	if err != nil {
		return err
	}
	grid := schedule.MonthGrid(year, month, now.Location())
	counts := schedule.PendingCounts(all)

	var dayTasks []*model.Task
	if selected != "" {
		dayTasks = schedule.ForDate(all, selected)
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintCalendar(grid, counts, selected, dayTasks)
	}

	cli := ctx.CLIFormatter()
	cli.PrintCalendar(grid, counts, ctx.Today())
	if selected != "" {
		cli.Println("")
		title := fmt.Sprintf("%s · %s", ctx.T("calendar.calendar"), output.FormatLongDate(selected))
		cli.PrintTaskList(title, dayTasks, ctx.T("calendar.noTasksOnDate"))
	}
	return nil
}

// calendarMonth picks the month to draw: --month wins, then the month of
// the selected date, then the current month.
func calendarMonth(now time.Time, selected string) (int, time.Month, error) {
	if calendarFlagMonth != "" {
		return parser.ParseMonth(calendarFlagMonth, now)
	}
	if selected != "" {
		d, err := time.ParseInLocation(model.DateLayout, selected, now.Location())
		if err != nil {
			return 0, 0, parser.NewDateError(selected)
		}
		return d.Year(), d.Month(), nil
	}
	return now.Year(), now.Month(), nil
}
