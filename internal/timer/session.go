package timer

import (
	"sync"
	"time"

	"github.com/manav03panchal/tasksync/internal/logging"
	"github.com/manav03panchal/tasksync/internal/model"
)

// Hooks receive session events. They run on the tick goroutine for ticks
// and on the caller's goroutine for commands, never under the session lock.
// A hook must not call back into the session.
type Hooks struct {
	OnChange   func(Snapshot)
	OnComplete func(Completion)
}

// Session drives a Pomodoro from a Runner. Its methods are safe for
// concurrent use.
type Session struct {
	// ctl serializes commands so a state change and the matching runner
	// start or stop happen together.
	ctl sync.Mutex

	mu     sync.Mutex
	pomo   *Pomodoro
	runner *Runner
	hooks  Hooks
}

// NewSession creates a paused session that ticks every interval once started.
func NewSession(settings model.PomodoroSettings, interval time.Duration, hooks Hooks) *Session {
	s := &Session{pomo: NewPomodoro(settings), hooks: hooks}
	s.runner = NewRunner(interval, s.tick)
	return s
}

// Snapshot returns the current timer state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pomo.Snapshot()
}

// Toggle starts or pauses the countdown.
func (s *Session) Toggle() {
	s.ctl.Lock()
	s.mu.Lock()
	s.pomo.ToggleRunning()
	snap := s.pomo.Snapshot()
	s.mu.Unlock()

	// A loop that just finished a phase may still hold the runner until it
	// exits, so resuming always restarts it.
	s.runner.Stop()
	if snap.Running {
		s.runner.Start()
	}
	s.ctl.Unlock()

	logging.DebugLog("pomodoro toggled", logging.KeyMode, snap.Mode.String(), "running", snap.Running)
	s.notify(snap)
}

// Reset pauses and refills the current phase.
func (s *Session) Reset() {
	s.apply(func(p *Pomodoro) { p.Reset() })
}

// SelectMode pauses and switches phase.
func (s *Session) SelectMode(mode Mode) {
	s.apply(func(p *Pomodoro) { p.SelectMode(mode) })
}

func (s *Session) apply(fn func(*Pomodoro)) {
	s.ctl.Lock()
	s.mu.Lock()
	fn(s.pomo)
	snap := s.pomo.Snapshot()
	s.mu.Unlock()
	s.runner.Stop()
	s.ctl.Unlock()

	s.notify(snap)
}

// tick is the runner callback. It keeps the runner alive while the
// machine is still running.
func (s *Session) tick() bool {
	s.mu.Lock()
	c, done := s.pomo.Tick()
	snap := s.pomo.Snapshot()
	s.mu.Unlock()

	s.notify(snap)
	if done {
		logging.Info("pomodoro phase complete",
			logging.KeyMode, c.From.String(),
			"next", c.To.String(),
			logging.KeyCount, c.Completed)
		if s.hooks.OnComplete != nil {
			s.hooks.OnComplete(c)
		}
	}
	return snap.Running
}

func (s *Session) notify(snap Snapshot) {
	if s.hooks.OnChange != nil {
		s.hooks.OnChange(snap)
	}
}

// Close stops ticking permanently.
func (s *Session) Close() {
	s.runner.Close()
}
