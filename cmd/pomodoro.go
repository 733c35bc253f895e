package cmd

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/logging"
	"github.com/manav03panchal/tasksync/internal/model"
	"github.com/manav03panchal/tasksync/internal/output"
	"github.com/manav03panchal/tasksync/internal/timer"
	"github.com/manav03panchal/tasksync/internal/toast"
	"github.com/manav03panchal/tasksync/internal/tui"
	"github.com/manav03panchal/tasksync/internal/validate"
)

// Pomodoro command flags.
var (
	pomodoroFlagPlain bool

	pomodoroFlagWork  int
	pomodoroFlagBreak int
	pomodoroFlagCount int
)

// pomodoroCmd represents the pomodoro command.
var pomodoroCmd = &cobra.Command{
	Use:     "pomodoro",
	Aliases: []string{"pom", "pomo", "tomato"},
	Short:   "Run a pomodoro focus timer",
	Long: `Run a pomodoro timer that alternates focus time with short breaks and,
after every few focus periods, a long break.

The timer starts paused. Durations come from 'tasksync pomodoro settings'.

Keyboard Controls:
  SPACE  Start or pause the timer
  R      Reset the current period
  1 2 3  Switch to focus, short break or long break
  Q      Quit (Ctrl+C works too)

The full-screen timer needs a terminal. Use --plain for a single-line
display, which is also used when input is not a terminal.

Examples:
  tasksync pomodoro
  tasksync pomodoro --plain
  tasksync pomo settings --work 50 --break 10 --count 3`,
	Args: cobra.NoArgs,
	RunE: runPomodoro,
}

// pomodoroSettingsCmd shows or updates the timer settings.
var pomodoroSettingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config", "set"},
	Short:   "Show or change pomodoro durations",
	Long: `Show the pomodoro settings, or change them with flags. The long break
is always twice the short break.

Ranges:
  --work   1-60 minutes
  --break  1-30 minutes
  --count  1-10 focus periods before a long break

Examples:
  tasksync pomodoro settings
  tasksync pomodoro settings --work 45 --count 3`,
	Args: cobra.NoArgs,
	RunE: runPomodoroSettings,
}

func init() {
	pomodoroCmd.Flags().BoolVar(&pomodoroFlagPlain, "plain", false, "Use the single-line display instead of the full-screen timer")

	pomodoroSettingsCmd.Flags().IntVarP(&pomodoroFlagWork, "work", "w", model.DefaultWorkInterval, "Focus period in minutes")
	pomodoroSettingsCmd.Flags().IntVarP(&pomodoroFlagBreak, "break", "b", model.DefaultBreakInterval, "Short break in minutes")
	pomodoroSettingsCmd.Flags().IntVarP(&pomodoroFlagCount, "count", "c", model.DefaultIntervalCount, "Focus periods before a long break")

	pomodoroCmd.AddCommand(pomodoroSettingsCmd)
	rootCmd.AddCommand(pomodoroCmd)
}

func runPomodoro(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	settings, err := ctx.SettingsRepo.Get()
	if err != nil {
		return err
	}
	logging.DebugLog("pomodoro starting",
		"work", settings.WorkInterval,
		"break", settings.BreakInterval,
		"count", settings.IntervalCount,
		"plain", pomodoroFlagPlain)

	onComplete := func(c timer.Completion) {
		ctx.Debugf("pomodoro period complete", logging.KeyMode, c.From.String(), logging.KeyCount, c.Completed)
	}

	var snap timer.Snapshot
	if !pomodoroFlagPlain && !ctx.IsJSON() && isInteractive(stdin, stdout) {
		// The TUI draws its own toasts; the context's printer would write
		// through the screen.
		toasts := toast.New(ctx.Config.Toast.Duration)
		defer toasts.Close()

		snap, err = tui.RunPomodoro(cmd.Context(), tui.PomodoroConfig{
			Settings:   settings,
			Lang:       ctx.Lang,
			Interval:   ctx.Config.Pomodoro.TickInterval,
			Toasts:     toasts,
			OnComplete: onComplete,
		}, tui.RunOptions{Input: stdin, Output: stdout, AltScreen: true})
	} else {
		display := &timer.CountdownDisplay{
			Writer:   ctx.Formatter.Stderr(),
			UseColor: ctx.Formatter.IsColorEnabled(),
			Lang:     ctx.Lang,
		}
		if !ctx.IsJSON() {
			display.Writer = stdout
		}
		console := &timer.Console{
			Display:    display,
			In:         stdin,
			Interval:   ctx.Config.Pomodoro.TickInterval,
			OnComplete: onComplete,
		}
		snap, err = console.Run(cmd.Context(), settings)
	}
	if err != nil {
		return errors.Wrap(err, "run pomodoro")
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintPomodoro(snap)
	}
	if snap.Completed > 0 {
		ctx.CLIFormatter().Muted(ctx.T("pomodoro.completedPomodoros") + ": " + strconv.Itoa(snap.Completed))
	}
	return nil
}

func runPomodoroSettings(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	current, err := ctx.SettingsRepo.Get()
	if err != nil {
		return err
	}

	var patch model.SettingsPatch
	flags := cmd.Flags()
	if flags.Changed("work") {
		patch.WorkInterval = &pomodoroFlagWork
	}
	if flags.Changed("break") {
		patch.BreakInterval = &pomodoroFlagBreak
	}
	if flags.Changed("count") {
		patch.IntervalCount = &pomodoroFlagCount
	}

	if patch == (model.SettingsPatch{}) {
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintSettings(current)
		}
		ctx.CLIFormatter().PrintSettings(current)
		return nil
	}

	next := current
	patch.Apply(&next)
	if err := validate.PomodoroSettings(next); err != nil {
		return err
	}

	saved, err := ctx.SettingsRepo.Save(patch)
	if err != nil {
		return errors.Wrap(err, "save pomodoro settings")
	}

	ctx.Toasts.Success(ctx.T("settings.pomodoroSaved"))
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSettings(saved)
	}
	ctx.CLIFormatter().PrintSettings(saved)
	return nil
}

// isInteractive reports whether both streams are terminals.
func isInteractive(in io.Reader, out io.Writer) bool {
	return output.IsTTY(in) && output.IsTTY(out)
}
