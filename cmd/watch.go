package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/i18n"
	"github.com/manav03panchal/tasksync/internal/logging"
	"github.com/manav03panchal/tasksync/internal/model"
	"github.com/manav03panchal/tasksync/internal/notify"
	"github.com/manav03panchal/tasksync/internal/output"
	"github.com/manav03panchal/tasksync/internal/runtime"
	"github.com/manav03panchal/tasksync/internal/scheduler"
	"github.com/manav03panchal/tasksync/internal/watcher"
)

// Watch command flags.
var (
	watchFlagOnce       bool
	watchFlagLead       time.Duration
	watchFlagNoWebhooks bool
	watchFlagNoAgenda   bool
)

// watchPIDPath overrides the watcher PID file location. Tests set it.
var watchPIDPath string

// watchCmd represents the watch command.
var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"remind", "reminders"},
	Short:   "Send reminders before tasks start",
	Long: `Watch for pending tasks that are about to start and print a reminder,
sending it to configured webhooks as well. With reminders.daily_agenda
set, the day's agenda is sent once at that time.

Tasks are re-read on every check, so changes made with other commands
are picked up. Stop with Ctrl+C.

Configuration (config file or environment):
  reminders.lead          TASKSYNC_REMINDER_LEAD      default 10m
  reminders.schedule      TASKSYNC_REMINDER_SCHEDULE  default every minute
  reminders.daily_agenda  TASKSYNC_DAILY_AGENDA       e.g. 08:30

Examples:
  tasksync watch
  tasksync watch --lead 30m
  tasksync watch --once --no-webhooks`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchFlagOnce, "once", false, "Run a single check and exit")
	watchCmd.Flags().DurationVarP(&watchFlagLead, "lead", "l", scheduler.DefaultLead,
		"How long before a task starts to remind (overrides reminders.lead)")
	watchCmd.Flags().BoolVar(&watchFlagNoWebhooks, "no-webhooks", false, "Only print reminders in the terminal")
	watchCmd.Flags().BoolVar(&watchFlagNoAgenda, "no-agenda", false, "Do not send the daily agenda")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	cfg := ctx.Config.Reminders
	lead := cfg.Lead
	if cmd.Flags().Changed("lead") {
		lead = watchFlagLead
	}
	if lead <= 0 {
		return errors.NewUserErrorWithField("lead", lead.String(), "reminder lead must be positive",
			"Use a duration such as 10m or 1h.")
	}
	if err := scheduler.ValidateSpec(cfg.Schedule); err != nil {
		return errors.NewUserErrorWithField("reminders.schedule", cfg.Schedule, "invalid reminder schedule",
			"Use a cron spec with seconds, e.g. \"0 * * * * *\", or \"@every 1m\".")
	}

	lang := ctx.Lang
	reminders := scheduler.NewReminderChecker(lead, lang)

	var agenda *scheduler.AgendaGenerator
	if cfg.DailyAgenda != "" && !watchFlagNoAgenda {
		var err error
		if agenda, err = scheduler.NewAgendaGenerator(cfg.DailyAgenda, lang); err != nil {
			return err
		}
	}

	var dispatcher *notify.Dispatcher
	if !watchFlagNoWebhooks {
		dispatcher = notify.NewDispatcher(cfg.Webhooks, notify.NewHTTPClient(cfg.WebhookTimeout, cfg.WebhookRetries))
	}

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f := ctx.Formatter
	metrics := watcher.NewMetrics(ctx.Now())
	deliver := newReminderDeliverer(runCtx, f, dispatcher, metrics, ctx.Now)

	if watchFlagOnce {
		s := scheduler.NewScheduler(cfg.Schedule, countChecks(ctx.TaskRepo.GetAll, metrics, ctx.Now), deliver)
		s.SetClock(ctx.Now)
		s.SetReminderChecker(reminders)
		if agenda != nil {
			s.SetAgendaGenerator(agenda)
		}

		sent, err := s.RunChecks()
		if err != nil {
			return err
		}
		if !ctx.IsJSON() {
			ctx.CLIFormatter().Muted(fmt.Sprintf("%s: %d", i18n.T(lang, "notifications.sent"), sent))
		}
		return nil
	}

	pid := watcher.NewPIDFile(watchPIDPath)
	if err := pid.Acquire(); err != nil {
		if errors.Is(err, watcher.ErrAlreadyRunning) {
			return errors.NewUserError(err.Error(), "Stop the other 'tasksync watch' first.")
		}
		return err
	}
	defer func() {
		if err := pid.Release(); err != nil {
			logging.Warn("removing PID file failed", logging.KeyError, err)
		}
	}()

	now := ctx.Now
	jsonOut := ctx.IsJSON()
	source, err := watchTaskSource()
	if err != nil {
		return err
	}

	s := scheduler.NewScheduler(cfg.Schedule, countChecks(source, metrics, now), deliver)
	s.SetClock(now)
	s.SetReminderChecker(reminders)
	if agenda != nil {
		s.SetAgendaGenerator(agenda)
	}

	if !jsonOut {
		cli := output.NewCLIFormatter(f)
		cli.Title(i18n.T(lang, "notifications.watching"))
		cli.Muted(fmt.Sprintf("lead %s · %d webhook(s)", output.FormatDuration(lead), countEnabled(dispatcher)))
	}

	// Tasks already inside the lead window are reminded right away.
	if _, err := s.RunChecks(); err != nil {
		logging.Warn("reminder check failed", logging.KeyError, err)
	}
	if err := s.Start(); err != nil {
		return err
	}
	<-runCtx.Done()
	s.Stop()

	snap := metrics.Snapshot()
	if jsonOut {
		return output.NewJSONFormatter(f).JSON(snap)
	}
	output.NewCLIFormatter(f).Muted(fmt.Sprintf("%d checks · %d notifications · %d webhook deliveries (%d failed)",
		snap.Checks, snap.Notifications, snap.WebhooksSent, snap.WebhooksFailed))
	return nil
}

// countChecks wraps source so every check and load failure is counted.
func countChecks(source scheduler.TaskSource, m *watcher.Metrics, now func() time.Time) scheduler.TaskSource {
	return func() ([]*model.Task, error) {
		m.RecordCheck(now())
		tasks, err := source()
		if err != nil {
			m.RecordError(err, now())
		}
		return tasks, err
	}
}

// watchTaskSource returns a task loader for the long-running watcher.
// An on-disk database is closed here and reopened for each check so other
// tasksync commands can use it in between. Other stores stay with the
// current context.
func watchTaskSource() (scheduler.TaskSource, error) {
	if ctx.DB == nil {
		return ctx.TaskRepo.GetAll, nil
	}

	opts := runtimeOptions()
	opts.Formatter.Format = output.FormatPlain
	opts.Now = ctx.Now

	if err := closeRuntime(); err != nil {
		return nil, err
	}

	return func() ([]*model.Task, error) {
		rt, err := runtime.New(opts)
		if err != nil {
			return nil, err
		}
		defer rt.Close()
		return rt.TaskRepo.GetAll()
	}, nil
}

// newReminderDeliverer prints each notification and forwards it to the
// enabled webhooks.
func newReminderDeliverer(c context.Context, f *output.Formatter, dispatcher *notify.Dispatcher,
	m *watcher.Metrics, now func() time.Time) scheduler.Deliver {
	return func(n *model.Notification) {
		m.RecordNotification()
		if f.Format == output.FormatJSON {
			if err := output.NewJSONFormatter(f).PrintNotification(n); err != nil {
				logging.Warn("printing notification failed", logging.KeyError, err)
			}
		} else {
			output.NewCLIFormatter(f).PrintNotification(n)
		}

		if dispatcher == nil || !dispatcher.HasEnabledWebhooks() {
			return
		}
		for _, r := range dispatcher.SendNotification(c, n) {
			if r.Error == nil {
				m.RecordWebhookSent(r.Duration)
				continue
			}
			m.RecordWebhookFailed(r.Error, now())
			logging.Warn("webhook delivery failed",
				logging.KeyWebhook, r.WebhookName,
				logging.KeyStatus, r.StatusCode,
				logging.KeyError, r.Error)
		}
	}
}

func countEnabled(d *notify.Dispatcher) int {
	if d == nil {
		return 0
	}
	return len(d.Enabled())
}
