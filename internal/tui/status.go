package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/tasksync/internal/i18n"
	"github.com/manav03panchal/tasksync/internal/model"
)

// StatsComponent displays the task counters.
type StatsComponent struct {
	Stats model.Stats
	Lang  i18n.Language
	Width int
}

// NewStatsComponent creates a new stats component.
func NewStatsComponent(stats model.Stats, lang i18n.Language, width int) *StatsComponent {
	return &StatsComponent{Stats: stats, Lang: lang, Width: width}
}

// View renders the stats component.
func (sc *StatsComponent) View() string {
	cell := func(label string, value int) string {
		return lipgloss.JoinVertical(lipgloss.Left,
			StyleSelected.Render(fmt.Sprintf("%d", value)),
			StyleSubtitle.Render(label))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		cell(i18n.T(sc.Lang, "home.total"), sc.Stats.Total), "    ",
		cell(i18n.T(sc.Lang, "home.completed"), sc.Stats.Completed), "    ",
		cell(i18n.T(sc.Lang, "home.todayTasks"), sc.Stats.Today), "    ",
		cell(i18n.T(sc.Lang, "home.weekTasks"), sc.Stats.Week),
	)

	content := StyleTitle.Render(i18n.T(sc.Lang, "home.statistics")) + "\n" + row
	return StyleAccentBox.Width(max(sc.Width-4, 20)).Render(content)
}

// TaskListComponent displays a titled list of tasks. Cursor marks the
// selected row; a negative cursor disables selection.
type TaskListComponent struct {
	Title  string
	Tasks  []*model.Task
	Cursor int
	Empty  string
	Width  int
}

// NewTaskListComponent creates a new task list component.
func NewTaskListComponent(title string, tasks []*model.Task, cursor int, empty string, width int) *TaskListComponent {
	return &TaskListComponent{
		Title:  title,
		Tasks:  tasks,
		Cursor: cursor,
		Empty:  empty,
		Width:  width,
	}
}

// View renders the task list component.
func (tc *TaskListComponent) View() string {
	var content strings.Builder

	content.WriteString(StyleTitle.Render(tc.Title))
	content.WriteString("\n")

	if len(tc.Tasks) == 0 {
		content.WriteString(StyleMuted.Render(tc.Empty))
	} else {
		for i, t := range tc.Tasks {
			if i > 0 {
				content.WriteString("\n")
			}
			content.WriteString(tc.renderTask(t, i == tc.Cursor))
		}
	}

	return StyleBox.Width(max(tc.Width-4, 20)).Render(content.String())
}

func (tc *TaskListComponent) renderTask(t *model.Task, selected bool) string {
	var sb strings.Builder

	if selected {
		sb.WriteString(StyleSelected.Render("› "))
	} else {
		sb.WriteString("  ")
	}

	if t.IsCompleted() {
		sb.WriteString(markDone)
	} else {
		sb.WriteString(markPending)
	}
	sb.WriteString(" ")

	title := StyleTask.Render(t.Title)
	if t.IsCompleted() {
		title = StyleDone.Render(t.Title)
	}
	sb.WriteString(title)
	sb.WriteString("  ")
	sb.WriteString(StyleSubtitle.Render(t.Date + " " + model.FormatTime(t.Time)))
	sb.WriteString("  ")
	sb.WriteString(PriorityTag(t.Priority))

	return sb.String()
}

var (
	markDone    = lipgloss.NewStyle().Foreground(ColorSuccess).Render("[x]")
	markPending = lipgloss.NewStyle().Foreground(ColorMuted).Render("[ ]")
)
