package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/tui"
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "home", "tui"},
	Short:   "Open the interactive home dashboard",
	Long: `Open an interactive terminal dashboard with today's tasks, upcoming
tasks and your statistics.

Keyboard Controls:
  ↑/k ↓/j  Move between today's tasks
  x/SPACE  Complete the selected task, or return it to the list
  r        Refresh
  ?        Toggle help
  q        Quit

Examples:
  tasksync dashboard
  tasksync dash`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	if !isInteractive(stdin, stdout) {
		return errors.NewUserError("The dashboard needs an interactive terminal",
			"Use 'tasksync today' or 'tasksync stats' instead.")
	}

	return tui.RunDashboard(cmd.Context(), tui.DashboardConfig{
		Tasks: ctx.TaskRepo,
		User:  user,
		Lang:  ctx.Lang,
		Now:   ctx.Now,
	}, tui.RunOptions{Input: stdin, Output: stdout, AltScreen: true})
}
