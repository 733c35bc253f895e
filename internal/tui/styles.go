// Package tui provides the terminal user interface screens for Tasksync.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/tasksync/internal/model"
)

// Color palette for the TUI screens.
var (
	ColorPrimary   = lipgloss.Color("#5F33E1") // Purple
	ColorSecondary = lipgloss.Color("#8B6FE8") // Light purple
	ColorText      = lipgloss.Color("#24252C")
	ColorMuted     = lipgloss.Color("#6E6A7C") // Gray
	ColorWarning   = lipgloss.Color("#FF7D53") // Orange
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorBorder    = lipgloss.Color("#4B5563") // Dark gray
	ColorEmpty     = lipgloss.Color("#E5E7EB")
)

// Base styles for the TUI.
var (
	// StyleTitle is used for section titles.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// StyleSubtitle is used for subtitles and secondary information.
	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleTask is used for task titles.
	StyleTask = lipgloss.NewStyle().
			Bold(true)

	// StyleDone is used for completed task titles.
	StyleDone = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(ColorMuted)

	// StyleClock is used for the countdown.
	StyleClock = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 4)

	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	StyleSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleTab is an unselected mode tab; StyleActiveTab the selected one.
	StyleTab = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorMuted)

	StyleActiveTab = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorPrimary)
)

// Box styles for the dashboard panels.
var (
	StyleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 2).
			MarginBottom(1)

	StyleAccentBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2).
			MarginBottom(1)
)

// PriorityTag renders a priority as a colored tag using the priority's
// tag colors.
func PriorityTag(p model.Priority) string {
	colors := model.PriorityColors(p)
	return lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(lipgloss.Color(colors.Foreground)).
		Background(lipgloss.Color(colors.Background)).
		Render(string(p))
}

// SessionSlots is the number of slots in the today's sessions strip.
const SessionSlots = 8

// SessionStrip renders completed pomodoros as filled slots. The slot after
// the last completed one is highlighted while a work period is running.
func SessionStrip(completed int, activeWork bool) string {
	filled := lipgloss.NewStyle().Foreground(ColorPrimary)
	current := lipgloss.NewStyle().Foreground(ColorSecondary)
	empty := lipgloss.NewStyle().Foreground(ColorEmpty)

	var b strings.Builder
	for i := range SessionSlots {
		if i > 0 {
			b.WriteString(" ")
		}
		switch {
		case i < completed:
			b.WriteString(filled.Render("■"))
		case i == completed && activeWork:
			b.WriteString(current.Render("■"))
		default:
			b.WriteString(empty.Render("□"))
		}
	}
	return b.String()
}
