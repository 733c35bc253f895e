package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/tasksync/internal/model"
	"github.com/manav03panchal/tasksync/internal/schedule"
	"github.com/manav03panchal/tasksync/internal/storage"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#5F33E1") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleDone = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(colorMuted)

	styleToday = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Underline(true)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(s lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return s.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// PriorityTag renders a priority in its tag colors.
func (c *CLIFormatter) PriorityTag(p model.Priority) string {
	if !c.IsColorEnabled() {
		return string(p)
	}
	colors := model.PriorityColors(p)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Foreground)).
		Background(lipgloss.Color(colors.Background)).
		Padding(0, 1).
		Render(string(p))
}

// TaskTitle renders a title, struck through when the task is completed.
func (c *CLIFormatter) TaskTitle(t *model.Task) string {
	if t.IsCompleted() {
		return c.render(styleDone, t.Title)
	}
	return c.render(styleBold, t.Title)
}

func statusMark(t *model.Task) string {
	if t.IsCompleted() {
		return "[x]"
	}
	return "[ ]"
}

// PrintTaskList prints tasks as a table. empty is printed when there are
// none.
func (c *CLIFormatter) PrintTaskList(title string, tasks []*model.Task, empty string) {
	if title != "" {
		c.Title(title)
	}
	if len(tasks) == 0 {
		c.Muted(empty)
		return
	}

	rows := make([]TableRow, len(tasks))
	for i, t := range tasks {
		rows[i] = TableRow{Columns: []string{
			statusMark(t),
			shortID(t.ID),
			t.Title,
			t.Date,
			model.FormatTime(t.Time),
			string(t.Priority),
		}}
	}
	c.PrintTable([]string{"", "ID", "TITLE", "DATE", "TIME", "PRIORITY"}, rows)
}

// shortID returns the tail of a task id. UUIDv7 ids share their leading
// timestamp bits, so the random tail is what tells tasks apart.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

// PrintTask prints one task in full.
func (c *CLIFormatter) PrintTask(t *model.Task) {
	c.Printf("%s %s  %s\n", statusMark(t), c.TaskTitle(t), c.PriorityTag(t.Priority))
	if t.Description != "" {
		c.Printf("  %s\n", t.Description)
	}
	c.Printf("  When:    %s at %s\n", FormatLongDate(t.Date), model.FormatTime(t.Time))
	c.Printf("  Status:  %s\n", t.Status)
	c.Printf("  ID:      %s\n", c.render(styleMuted, t.ID))
	c.Printf("  Created: %s\n", c.render(styleMuted, t.CreatedAt))
	if t.UpdatedAt != t.CreatedAt {
		c.Printf("  Updated: %s\n", c.render(styleMuted, t.UpdatedAt))
	}
}

// PrintStats prints the task counters with completion bars.
func (c *CLIFormatter) PrintStats(title string, s model.Stats) {
	c.Title(title)
	c.Printf("  Total:      %3d  %s %d done\n", s.Total, ProgressBar(percent(s.Completed, s.Total), 20), s.Completed)
	c.Printf("  Today:      %3d  %s %d done\n", s.Today, ProgressBar(percent(s.TodayCompleted, s.Today), 20), s.TodayCompleted)
	c.Printf("  This week:  %3d\n", s.Week)
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) * 100 / float64(whole)
}

// PrintCalendar prints a Sunday-first month grid. Days with pending tasks
// show their count; today is highlighted.
func (c *CLIFormatter) PrintCalendar(m schedule.Month, counts map[string]int, today string) {
	c.Title(m.Title())
	c.Println(c.render(styleMuted, " Sun   Mon   Tue   Wed   Thu   Fri   Sat"))
	for _, week := range m.Weeks() {
		var line strings.Builder
		for _, cell := range week {
			if cell.Blank {
				line.WriteString("      ")
				continue
			}
			day := fmt.Sprintf("%2d", cell.Day)
			if cell.Date == today {
				day = c.render(styleToday, day)
			}
			mark := "   "
			if n := counts[cell.Date]; n > 0 {
				mark = c.render(styleWarning, fmt.Sprintf("(%d)", min(n, 9)))
			}
			line.WriteString(" " + day + mark)
		}
		c.Println(strings.TrimRight(line.String(), " "))
	}
}

// PrintDay prints the time-blocking layout of a date.
func (c *CLIFormatter) PrintDay(d schedule.Day) {
	c.Title("Time blocks for " + FormatLongDate(d.Date))
	for _, b := range d.Blocks {
		span := fmt.Sprintf("%s-%s", b.Start, b.End)
		if b.Free {
			c.Printf("  %s  %s\n", c.render(styleMuted, span), c.render(styleMuted, b.Title))
			continue
		}
		swatch := "■"
		if c.IsColorEnabled() {
			swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color)).Render("■")
		}
		c.Printf("  %s  %s %s  %s\n", span, swatch, b.Title, c.PriorityTag(model.Priority(b.Priority)))
	}
	c.Muted(fmt.Sprintf("%d task blocks, %d free hours", d.TaskBlocks(), d.FreeBlocks()))
}

// PrintSettings prints pomodoro settings.
func (c *CLIFormatter) PrintSettings(s model.PomodoroSettings) {
	c.Title("Pomodoro settings")
	c.Printf("  Work:        %s\n", FormatMinutes(s.WorkInterval))
	c.Printf("  Short break: %s\n", FormatMinutes(s.BreakInterval))
	c.Printf("  Long break:  %s\n", FormatMinutes(s.LongBreakInterval()))
	c.Printf("  Long break every %d pomodoros\n", s.IntervalCount)
}

// PrintUser prints the signed-in user's profile.
func (c *CLIFormatter) PrintUser(u *model.SessionUser) {
	if u == nil {
		c.Muted("Not logged in.")
		c.Muted("Use 'tasksync login' to sign in.")
		return
	}
	c.Printf("%s %s\n", c.render(styleBold, u.DisplayName()), c.render(styleMuted, "<"+u.Email+">"))
	if u.FirstName != "" || u.LastName != "" {
		c.Printf("  Name:   %s\n", strings.TrimSpace(u.FirstName+" "+u.LastName))
	}
	if u.AvatarURL != "" {
		c.Printf("  Avatar: %s\n", u.AvatarURL)
	}
}

// PrintTokenExpiry prints when a remote session token expires.
func (c *CLIFormatter) PrintTokenExpiry(exp time.Time, now time.Time) {
	if !exp.After(now) {
		c.Warning("Session token expired " + FormatTime(exp))
		return
	}
	c.Muted("Session token expires " + FormatTime(exp) + " (in " + FormatDuration(exp.Sub(now).Truncate(time.Minute)) + ")")
}

// PrintHealth prints an integrity report.
func (c *CLIFormatter) PrintHealth(r *storage.HealthReport) {
	c.Title("Data health")
	for _, b := range r.Blobs {
		var state string
		switch b.State {
		case storage.BlobOK:
			state = c.render(styleSuccess, "ok")
		case storage.BlobCorrupt:
			state = c.render(styleError, "corrupt")
		default:
			state = c.render(styleMuted, "absent")
		}
		c.Printf("  %-28s %s\n", b.Key, state)
		if b.Error != "" {
			c.Printf("    %s\n", c.render(styleMuted, b.Error))
		}
	}
	if r.Healthy {
		c.Success("All data is readable.")
	} else {
		c.Warning("Unreadable data is treated as empty. Run 'tasksync doctor --repair' to remove it.")
	}
}

// PrintNotification prints a reminder or agenda with a local timestamp.
func (c *CLIFormatter) PrintNotification(n *model.Notification) {
	icon := "🔔"
	if n.Type == model.NotifyAgenda {
		icon = "📋"
	}
	c.Printf("%s %s  %s\n", icon, c.render(styleTitle, n.Title), c.render(styleMuted, n.Timestamp.Format("15:04")))
	for _, line := range strings.Split(n.Message, "\n") {
		c.Printf("  %s\n", line)
	}
	for _, f := range n.Fields {
		c.Printf("  %s %s\n", c.render(styleMuted, f.Name+":"), f.Value)
	}
}

// PrintWebhooks prints configured webhooks with their URLs masked.
func (c *CLIFormatter) PrintWebhooks(webhooks []model.Webhook) {
	c.Title("Webhooks")
	if len(webhooks) == 0 {
		c.Muted("No webhooks configured.")
		c.Muted("Add them under reminders.webhooks in 'tasksync config path'.")
		return
	}

	rows := make([]TableRow, len(webhooks))
	for i, w := range webhooks {
		state := c.render(styleSuccess, "enabled")
		if !w.IsEnabled() {
			state = c.render(styleMuted, "disabled")
		}
		rows[i] = TableRow{Columns: []string{w.Name, w.ResolvedType(), state, w.MaskedURL()}}
	}
	c.PrintTable([]string{"NAME", "TYPE", "STATE", "URL"}, rows)
}

// ProgressBar creates a simple progress bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return bar
}

// TableRow is one row of a CLI table.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && lipgloss.Width(col) > widths[i] {
				widths[i] = lipgloss.Width(col)
			}
		}
	}

	// Print headers
	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(pad(h, widths[i]) + "  ")
	}
	c.Println(c.render(styleBold, strings.TrimRight(headerLine.String(), " ")))

	// Print separator
	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	// Print rows
	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(pad(col, widths[i]) + "  ")
			}
		}
		c.Println(strings.TrimRight(rowLine.String(), " "))
	}
}

// pad right-pads s to width display cells.
func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
