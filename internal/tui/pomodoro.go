package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/tasksync/internal/i18n"
	"github.com/manav03panchal/tasksync/internal/logging"
	"github.com/manav03panchal/tasksync/internal/model"
	"github.com/manav03panchal/tasksync/internal/timer"
	"github.com/manav03panchal/tasksync/internal/toast"
)

// tickMsg is sent when the countdown ticks. gen ties the tick to the run
// that scheduled it so that pausing and restarting never doubles the rate.
type tickMsg struct {
	gen int
}

// toastsChangedMsg signals that the toast list changed. The model reads
// the current list from the service, so late deliveries are harmless.
type toastsChangedMsg struct{}

// PomodoroConfig holds configuration for the pomodoro screen.
type PomodoroConfig struct {
	Settings model.PomodoroSettings
	Lang     i18n.Language
	Interval time.Duration
	Toasts   *toast.Service

	// OnComplete is called after each period ends.
	OnComplete func(timer.Completion)
}

// PomodoroModel is the bubbletea model for the pomodoro timer.
type PomodoroModel struct {
	pomo       *timer.Pomodoro
	lang       i18n.Language
	interval   time.Duration
	toastSvc   *toast.Service
	toasts     []toast.Toast
	onComplete func(timer.Completion)

	keys pomodoroKeyMap
	help help.Model
	bar  progress.Model

	gen   int
	width int
}

// NewPomodoroModel creates a paused timer in work mode.
func NewPomodoroModel(cfg PomodoroConfig) *PomodoroModel {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if !cfg.Lang.IsSupported() {
		cfg.Lang = i18n.Default
	}
	bar := progress.New(
		progress.WithSolidFill(string(ColorPrimary)),
		progress.WithoutPercentage(),
		progress.WithWidth(40),
	)
	return &PomodoroModel{
		pomo:       timer.NewPomodoro(cfg.Settings),
		lang:       cfg.Lang,
		interval:   cfg.Interval,
		toastSvc:   cfg.Toasts,
		onComplete: cfg.OnComplete,
		keys:       pomodoroKeys,
		help:       help.New(),
		bar:        bar,
	}
}

// Snapshot returns the timer state.
func (m *PomodoroModel) Snapshot() timer.Snapshot {
	return m.pomo.Snapshot()
}

// Init implements tea.Model. The timer starts paused.
func (m *PomodoroModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m *PomodoroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.bar.Width = min(max(msg.Width-8, 10), 60)
		return m, nil

	case tickMsg:
		if msg.gen != m.gen || !m.pomo.Running() {
			return m, nil
		}
		if c, done := m.pomo.Tick(); done {
			m.completed(c)
			return m, nil
		}
		return m, m.tickCmd()

	case toastsChangedMsg:
		if m.toastSvc != nil {
			m.toasts = m.toastSvc.Toasts()
		}
		return m, nil
	}
	return m, nil
}

func (m *PomodoroModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.pomo.ToggleRunning()
		if m.pomo.Running() {
			m.gen++
			return m, m.tickCmd()
		}
	case key.Matches(msg, m.keys.Reset):
		m.pomo.Reset()
	case key.Matches(msg, m.keys.Work):
		m.pomo.SelectMode(timer.ModeWork)
	case key.Matches(msg, m.keys.Short):
		m.pomo.SelectMode(timer.ModeShortBreak)
	case key.Matches(msg, m.keys.Long):
		m.pomo.SelectMode(timer.ModeLongBreak)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *PomodoroModel) completed(c timer.Completion) {
	logging.Info("pomodoro period complete",
		logging.KeyMode, c.From.String(),
		logging.KeyCount, c.Completed)
	if m.toastSvc != nil {
		m.toastSvc.Success(fmt.Sprintf("%s ✓  →  %s",
			i18n.T(m.lang, c.From.MessageKey()),
			i18n.T(m.lang, c.To.MessageKey())))
	}
	if m.onComplete != nil {
		m.onComplete(c)
	}
}

func (m *PomodoroModel) tickCmd() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// View renders the timer screen.
func (m *PomodoroModel) View() string {
	snap := m.pomo.Snapshot()

	var sections []string
	sections = append(sections, StyleTitle.Render(i18n.T(m.lang, "pomodoro.pomodoro")))
	sections = append(sections, m.renderTabs(snap.Mode))

	clock := StyleClock.Foreground(timer.ModeStyle(snap.Mode).GetForeground()).Render(timer.Clock(snap.Remaining))
	sections = append(sections, clock)
	sections = append(sections, m.bar.ViewAs(snap.Progress))

	state := StyleMuted.Render("▶")
	if !snap.Running {
		state = StyleMuted.Render("⏸")
	}
	sections = append(sections, "")
	sections = append(sections, fmt.Sprintf("%s  %s: %d",
		state, i18n.T(m.lang, "pomodoro.completedPomodoros"), snap.Completed))
	sections = append(sections, fmt.Sprintf("%s: %s",
		i18n.T(m.lang, "pomodoro.todaySessions"),
		SessionStrip(snap.Completed, snap.Running && snap.Mode == timer.ModeWork)))

	if len(m.toasts) > 0 {
		var lines []string
		for _, t := range m.toasts {
			lines = append(lines, toast.Render(t, true))
		}
		sections = append(sections, "", strings.Join(lines, "\n"))
	}

	sections = append(sections, "", m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *PomodoroModel) renderTabs(current timer.Mode) string {
	modes := []timer.Mode{timer.ModeWork, timer.ModeShortBreak, timer.ModeLongBreak}
	tabs := make([]string, len(modes))
	for i, mode := range modes {
		label := i18n.T(m.lang, mode.MessageKey())
		if mode == current {
			tabs[i] = StyleActiveTab.Render(label)
		} else {
			tabs[i] = StyleTab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// RunOptions control where the program reads and writes.
type RunOptions struct {
	Input     io.Reader
	Output    io.Writer
	AltScreen bool
}

// RunPomodoro runs the pomodoro screen until the user quits or ctx is
// cancelled and returns the final timer state.
func RunPomodoro(ctx context.Context, cfg PomodoroConfig, opts RunOptions) (timer.Snapshot, error) {
	m := NewPomodoroModel(cfg)
	p := tea.NewProgram(m, programOptions(ctx, opts)...)

	if cfg.Toasts != nil {
		unsubscribe := cfg.Toasts.Subscribe(func([]toast.Toast) {
			go p.Send(toastsChangedMsg{})
		})
		defer unsubscribe()
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return m.Snapshot(), err
	}
	return m.Snapshot(), nil
}

func programOptions(ctx context.Context, opts RunOptions) []tea.ProgramOption {
	options := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		options = append(options, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		options = append(options, tea.WithOutput(opts.Output))
	}
	if opts.AltScreen {
		options = append(options, tea.WithAltScreen())
	}
	return options
}
