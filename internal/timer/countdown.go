package timer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/tasksync/internal/i18n"
)

// CountdownDisplay renders the timer for a plain terminal.
type CountdownDisplay struct {
	Writer   io.Writer
	UseColor bool
	Lang     i18n.Language
}

// NewCountdownDisplay creates a new countdown display.
func NewCountdownDisplay() *CountdownDisplay {
	return &CountdownDisplay{
		Writer:   os.Stdout,
		UseColor: true,
		Lang:     i18n.Default,
	}
}

// Styles for countdown display.
var (
	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5F33E1"))

	workStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981")) // Green

	breakStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F59E0B")) // Yellow

	longBreakStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")) // Blue

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")) // Gray

	statusStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#6B7280"))
)

// ModeStyle returns the accent style for mode.
func ModeStyle(m Mode) lipgloss.Style {
	switch m {
	case ModeShortBreak:
		return breakStyle
	case ModeLongBreak:
		return longBreakStyle
	default:
		return workStyle
	}
}

func (cd *CountdownDisplay) style(s lipgloss.Style, text string) string {
	if !cd.UseColor {
		return text
	}
	return s.Render(text)
}

// RenderTimer renders the countdown, phase, progress bar and key hints.
func (cd *CountdownDisplay) RenderTimer(snap Snapshot) string {
	var b strings.Builder

	b.WriteString(cd.style(ModeStyle(snap.Mode), strings.ToUpper(i18n.T(cd.Lang, snap.Mode.MessageKey()))))
	b.WriteString(cd.style(mutedStyle, fmt.Sprintf("  %s: %d", i18n.T(cd.Lang, "pomodoro.completedPomodoros"), snap.Completed)))
	b.WriteString("\n\n")

	b.WriteString(cd.style(timerStyle, Clock(snap.Remaining)))
	b.WriteString("\n\n")

	b.WriteString(cd.style(mutedStyle, ProgressBar(snap.Progress, 30)))
	b.WriteString("\n\n")

	var status string
	if snap.Running {
		status = "SPACE pause · r reset · 1/2/3 mode · q quit"
	} else {
		status = "[PAUSED] SPACE start · r reset · 1/2/3 mode · q quit"
	}
	b.WriteString(cd.style(statusStyle, status))

	return b.String()
}

// ProgressBar renders progress in [0, 1] as a bar of width cells with a
// percentage.
func ProgressBar(progress float64, width int) string {
	switch {
	case progress < 0:
		progress = 0
	case progress > 1:
		progress = 1
	}
	filled := int(progress * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %d%%", bar, int(progress*100))
}

// RenderComplete renders a phase completion message.
func (cd *CountdownDisplay) RenderComplete(c Completion) string {
	msg := fmt.Sprintf("%s ✓  →  %s",
		i18n.T(cd.Lang, c.From.MessageKey()),
		i18n.T(cd.Lang, c.To.MessageKey()))
	return cd.style(ModeStyle(c.To), msg)
}

// ClearScreen clears the terminal screen.
func (cd *CountdownDisplay) ClearScreen() {
	fmt.Fprint(cd.Writer, "\033[H\033[2J")
}

// MoveCursorHome moves cursor to home position.
func (cd *CountdownDisplay) MoveCursorHome() {
	fmt.Fprint(cd.Writer, "\033[H")
}
