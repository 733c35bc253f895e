// Package timer implements the pomodoro countdown: a pure state machine, a
// cancellable one-second tick source and terminal rendering.
package timer

import (
	"fmt"

	"github.com/manav03panchal/tasksync/internal/model"
)

// Mode is the pomodoro phase.
type Mode int

const (
	ModeWork Mode = iota
	ModeShortBreak
	ModeLongBreak
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeWork, ModeShortBreak, ModeLongBreak}

// String returns the mode identifier.
func (m Mode) String() string {
	switch m {
	case ModeWork:
		return "work"
	case ModeShortBreak:
		return "shortBreak"
	case ModeLongBreak:
		return "longBreak"
	default:
		return "unknown"
	}
}

// MessageKey returns the i18n key naming the mode.
func (m Mode) MessageKey() string {
	switch m {
	case ModeShortBreak:
		return "pomodoro.shortBreak"
	case ModeLongBreak:
		return "pomodoro.longBreak"
	default:
		return "pomodoro.focusTime"
	}
}

// ParseMode accepts the mode identifier or a short alias.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "work", "focus", "w":
		return ModeWork, nil
	case "shortBreak", "short", "break", "s":
		return ModeShortBreak, nil
	case "longBreak", "long", "l":
		return ModeLongBreak, nil
	}
	return ModeWork, fmt.Errorf("unknown pomodoro mode %q", s)
}

// Completion describes a finished phase.
type Completion struct {
	From      Mode
	To        Mode
	Completed int // completed work phases after the transition
}

// Pomodoro is the countdown state machine. It is not safe for concurrent
// use; Session serializes access.
type Pomodoro struct {
	settings  model.PomodoroSettings
	mode      Mode
	remaining int // seconds
	running   bool
	completed int
}

// NewPomodoro returns a paused timer in work mode with a full work interval.
func NewPomodoro(settings model.PomodoroSettings) *Pomodoro {
	p := &Pomodoro{settings: settings, mode: ModeWork}
	p.remaining = p.Total()
	return p
}

// Settings returns the settings the timer was built with.
func (p *Pomodoro) Settings() model.PomodoroSettings { return p.settings }

// Mode returns the current phase.
func (p *Pomodoro) Mode() Mode { return p.mode }

// Remaining returns the seconds left in the current phase.
func (p *Pomodoro) Remaining() int { return p.remaining }

// Running reports whether the countdown is advancing.
func (p *Pomodoro) Running() bool { return p.running }

// Completed returns the number of finished work phases.
func (p *Pomodoro) Completed() int { return p.completed }

// DurationOf returns the full length of mode in seconds.
func (p *Pomodoro) DurationOf(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return p.settings.BreakInterval * 60
	case ModeLongBreak:
		return p.settings.LongBreakInterval() * 60
	default:
		return p.settings.WorkInterval * 60
	}
}

// Total returns the full length of the current phase in seconds.
func (p *Pomodoro) Total() int {
	return p.DurationOf(p.mode)
}

// Progress returns the elapsed fraction of the current phase in [0, 1].
func (p *Pomodoro) Progress() float64 {
	total := p.Total()
	if total <= 0 {
		return 0
	}
	f := float64(total-p.remaining) / float64(total)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// ToggleRunning starts or pauses the countdown.
func (p *Pomodoro) ToggleRunning() {
	p.running = !p.running
}

// Reset pauses and refills the current phase.
func (p *Pomodoro) Reset() {
	p.running = false
	p.remaining = p.Total()
}

// SelectMode pauses and switches to mode with a full interval. The
// completed counter is kept.
func (p *Pomodoro) SelectMode(mode Mode) {
	p.running = false
	p.mode = mode
	p.remaining = p.Total()
}

// Tick advances the countdown by one second. It does nothing while paused.
// When the phase runs out the transition happens in the same call, the
// timer pauses and the completion is returned.
func (p *Pomodoro) Tick() (Completion, bool) {
	if !p.running {
		return Completion{}, false
	}
	if p.remaining > 1 {
		p.remaining--
		return Completion{}, false
	}
	return p.complete(), true
}

func (p *Pomodoro) complete() Completion {
	from := p.mode
	p.running = false
	if p.mode == ModeWork {
		p.completed++
		if n := p.settings.IntervalCount; n > 0 && p.completed%n == 0 {
			p.mode = ModeLongBreak
		} else {
			p.mode = ModeShortBreak
		}
	} else {
		p.mode = ModeWork
	}
	p.remaining = p.Total()
	return Completion{From: from, To: p.mode, Completed: p.completed}
}

// Snapshot is an immutable view of the timer.
type Snapshot struct {
	Mode      Mode    `json:"mode"`
	Remaining int     `json:"remaining"`
	Total     int     `json:"total"`
	Running   bool    `json:"running"`
	Completed int     `json:"completed"`
	Progress  float64 `json:"progress"`
}

// Snapshot captures the current state.
func (p *Pomodoro) Snapshot() Snapshot {
	return Snapshot{
		Mode:      p.mode,
		Remaining: p.remaining,
		Total:     p.Total(),
		Running:   p.running,
		Completed: p.completed,
		Progress:  p.Progress(),
	}
}

// Clock formats seconds as MM:SS. Minutes are not wrapped into hours.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
