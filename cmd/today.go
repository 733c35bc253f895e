package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/tasksync/internal/output"
	"github.com/manav03panchal/tasksync/internal/schedule"
)

// todayCmd represents the today command.
var todayCmd = &cobra.Command{
	Use:     "today",
	Aliases: []string{"td"},
	Short:   "Show today's tasks",
	Long: `Display the tasks scheduled for today, ordered by time of day.

This is also what plain 'tasksync' shows.

Examples:
  tasksync today
  tasksync td`,
	Args: cobra.NoArgs,
	RunE: runToday,
}

// weekCmd represents the week command.
var weekCmd = &cobra.Command{
	Use:     "week",
	Aliases: []string{"wk"},
	Short:   "Show this week's tasks",
	Long: `Display the tasks scheduled in the current week (Sunday to Saturday).

Examples:
  tasksync week`,
	Args: cobra.NoArgs,
	RunE: runWeek,
}

var upcomingFlagLimit int

// upcomingCmd represents the upcoming command.
var upcomingCmd = &cobra.Command{
	Use:     "upcoming",
	Aliases: []string{"next"},
	Short:   "Show pending tasks from today on",
	Long: `Display pending tasks dated today or later, soonest first.

Examples:
  tasksync upcoming
  tasksync upcoming --limit 3`,
	Args: cobra.NoArgs,
	RunE: runUpcoming,
}

func init() {
	upcomingCmd.Flags().IntVarP(&upcomingFlagLimit, "limit", "n", schedule.DefaultUpcomingLimit,
		"Maximum number of tasks (0 for no limit)")

	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(upcomingCmd)
}

func runToday(cmd *cobra.Command, args []string) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	tasks, err := ctx.TaskRepo.GetToday()
	if err != nil {
		return err
	}
	tasks = schedule.ForDate(tasks, ctx.Today())

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTasks(tasks)
	}

	cli := ctx.CLIFormatter()
	if user != nil {
		cli.Muted(fmt.Sprintf("%s %s", ctx.T("home.hello"), user.DisplayName()))
	}
	title := fmt.Sprintf("%s · %s", ctx.T("home.todayTasks"), output.FormatLongDate(ctx.Today()))
	cli.PrintTaskList(title, tasks, ctx.T("tasks.noTasksToday"))
	return nil
}

func runWeek(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	tasks, err := ctx.TaskRepo.GetWeek()
	if err != nil {
		return err
	}
	tasks = schedule.Sort(tasks, schedule.SortByDate)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTasks(tasks)
	}
	ctx.CLIFormatter().PrintTaskList(ctx.T("home.weekTasks"), tasks, ctx.T("tasks.noTasks"))
	return nil
}

func runUpcoming(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	all, err := ctx.TaskRepo.GetAll()
	if err != nil {
		return err
	}
	tasks := schedule.Upcoming(all, ctx.Today(), upcomingFlagLimit)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTasks(tasks)
	}
	ctx.CLIFormatter().PrintTaskList(ctx.T("notifications.upcomingTasks"), tasks, ctx.T("notifications.noNotifications"))
	return nil
}
