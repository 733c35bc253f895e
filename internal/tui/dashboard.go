package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/tasksync/internal/i18n"
	"github.com/manav03panchal/tasksync/internal/model"
	"github.com/manav03panchal/tasksync/internal/schedule"
)

// refreshMsg is sent when data needs to be reloaded.
type refreshMsg struct{}

// clockMsg is sent by the dashboard's refresh ticker.
type clockMsg time.Time

// TaskStore is the part of the task repository the dashboard needs.
type TaskStore interface {
	GetAll() ([]*model.Task, error)
	ToggleStatus(id string) (*model.Task, bool, error)
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Tasks           TaskStore
	User            *model.SessionUser
	Lang            i18n.Language
	RefreshInterval time.Duration
	MaxUpcoming     int
	Now             func() time.Time
}

// DashboardModel is the bubbletea model for the home screen: statistics,
// today's tasks and what is coming up.
type DashboardModel struct {
	// Data
	stats    model.Stats
	today    []*model.Task
	upcoming []*model.Task

	tasks TaskStore
	user  *model.SessionUser
	lang  i18n.Language
	now   func() time.Time

	// UI state
	cursor     int
	width      int
	err        error
	message    string
	messageExp time.Time
	keys       dashboardKeyMap
	help       help.Model

	// Configuration
	refreshInterval time.Duration
	maxUpcoming     int
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = 30 * time.Second
	}
	if config.MaxUpcoming == 0 {
		config.MaxUpcoming = 5
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if !config.Lang.IsSupported() {
		config.Lang = i18n.Default
	}
	return &DashboardModel{
		tasks:           config.Tasks,
		user:            config.User,
		lang:            config.Lang,
		now:             config.Now,
		keys:            dashboardKeys,
		help:            help.New(),
		refreshInterval: config.RefreshInterval,
		maxUpcoming:     config.MaxUpcoming,
	}
}

// Init loads data and starts the refresh ticker.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		func() tea.Msg { return refreshMsg{} },
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case clockMsg:
		// Clear expired messages and pick up changes made by other commands.
		if !m.messageExp.IsZero() && m.now().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		m.loadData()
		return m, m.tickCmd()

	case refreshMsg:
		m.loadData()
		return m, nil
	}
	return m, nil
}

func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.today)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if len(m.today) == 0 {
			return m, nil
		}
		task, ok, err := m.tasks.ToggleStatus(m.today[m.cursor].ID)
		switch {
		case err != nil:
			m.err = err
		case !ok:
			m.setMessage(i18n.T(m.lang, "tasks.noTasksFound"), 2*time.Second)
		case task.IsCompleted():
			m.setMessage(i18n.T(m.lang, "tasks.taskCompleted"), 2*time.Second)
		default:
			m.setMessage(i18n.T(m.lang, "tasks.taskReturned"), 2*time.Second)
		}
		m.loadData()

	case key.Matches(msg, m.keys.Refresh):
		m.loadData()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	var sections []string
	sections = append(sections, m.renderHeader())

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("%s: %v", i18n.T(m.lang, "common.error"), m.err)))
	}
	if m.message != "" {
		sections = append(sections, StyleSelected.Render(m.message))
	}

	width := m.width
	if width == 0 {
		width = 60
	}

	sections = append(sections, NewStatsComponent(m.stats, m.lang, width).View())
	sections = append(sections, NewTaskListComponent(
		i18n.T(m.lang, "home.todayTasks"), m.today, m.cursor, i18n.T(m.lang, "tasks.noTasksToday"), width).View())
	sections = append(sections, NewTaskListComponent(
		i18n.T(m.lang, "notifications.upcomingTasks"), m.upcoming, -1, i18n.T(m.lang, "notifications.noNotifications"), width).View())

	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *DashboardModel) renderHeader() string {
	greeting := i18n.T(m.lang, "home.hello")
	if m.user != nil {
		greeting = fmt.Sprintf("%s %s", greeting, m.user.DisplayName())
	}
	title := StyleTitle.Render(greeting)
	date := StyleSubtitle.Render(m.now().Format("Mon Jan 2, 2006"))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", date)
}

// loadData reloads tasks and derives every panel from one read.
func (m *DashboardModel) loadData() {
	all, err := m.tasks.GetAll()
	if err != nil {
		m.err = err
		return
	}

	now := m.now()
	today := model.DateString(now)
	weekStart, weekEnd := model.WeekRange(now)

	var todays, week []*model.Task
	for _, t := range all {
		if t.Date == today {
			todays = append(todays, t)
		}
		if model.InDateRange(t.Date, weekStart, weekEnd) {
			week = append(week, t)
		}
	}

	m.stats = model.ComputeStats(all, todays, week)
	m.today = schedule.ForDate(all, today)
	m.upcoming = schedule.Upcoming(all, today, m.maxUpcoming)
	if m.cursor >= len(m.today) {
		m.cursor = max(len(m.today)-1, 0)
	}
	m.err = nil
}

func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = m.now().Add(duration)
}

func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

// RunDashboard starts the dashboard TUI.
func RunDashboard(ctx context.Context, config DashboardConfig, opts RunOptions) error {
	p := tea.NewProgram(NewDashboardModel(config), programOptions(ctx, opts)...)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
