package timer

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/tasksync/internal/model"
)

func settings(work, brk, count int) model.PomodoroSettings {
	return model.PomodoroSettings{WorkInterval: work, BreakInterval: brk, IntervalCount: count}
}

// runFor ticks p n times.
func runFor(p *Pomodoro, n int) (Completion, bool) {
	var c Completion
	var done bool
	for i := 0; i < n; i++ {
		if c, done = p.Tick(); done {
			return c, true
		}
	}
	return c, done
}

// =============================================================================
// Pomodoro State Machine Tests
// =============================================================================

func TestNewPomodoro(t *testing.T) {
	p := NewPomodoro(model.DefaultPomodoroSettings())
	assert.Equal(t, ModeWork, p.Mode())
	assert.Equal(t, 25*60, p.Remaining())
	assert.False(t, p.Running())
	assert.Equal(t, 0, p.Completed())
	assert.Equal(t, 0.0, p.Progress())
}

func TestPomodoroDurations(t *testing.T) {
	p := NewPomodoro(settings(25, 5, 4))
	assert.Equal(t, 1500, p.DurationOf(ModeWork))
	assert.Equal(t, 300, p.DurationOf(ModeShortBreak))
	assert.Equal(t, 600, p.DurationOf(ModeLongBreak))
}

func TestPomodoroTickWhilePaused(t *testing.T) {
	p := NewPomodoro(settings(1, 1, 4))
	_, done := p.Tick()
	assert.False(t, done)
	assert.Equal(t, 60, p.Remaining())
}

func TestPomodoroTickCountsDown(t *testing.T) {
	p := NewPomodoro(settings(1, 1, 4))
	p.ToggleRunning()
	_, done := runFor(p, 10)
	assert.False(t, done)
	assert.Equal(t, 50, p.Remaining())
	assert.InDelta(t, 10.0/60.0, p.Progress(), 1e-9)
}

func TestPomodoroWorkCompletion(t *testing.T) {
	p := NewPomodoro(settings(1, 2, 4))
	p.ToggleRunning()

	c, done := runFor(p, 60)
	require.True(t, done)
	assert.Equal(t, Completion{From: ModeWork, To: ModeShortBreak, Completed: 1}, c)
	assert.Equal(t, ModeShortBreak, p.Mode())
	assert.Equal(t, 120, p.Remaining())
	assert.False(t, p.Running(), "completion pauses the timer")

	// Further ticks are ignored until restarted.
	_, done = p.Tick()
	assert.False(t, done)
	assert.Equal(t, 120, p.Remaining())
}

func TestPomodoroCompletionFiresOnLastSecond(t *testing.T) {
	p := NewPomodoro(settings(1, 1, 4))
	p.ToggleRunning()
	_, done := runFor(p, 58)
	require.False(t, done)
	assert.Equal(t, 2, p.Remaining())

	_, done = p.Tick()
	assert.False(t, done)
	assert.Equal(t, 1, p.Remaining())

	_, done = p.Tick()
	assert.True(t, done)
}

func TestPomodoroLongBreakCycle(t *testing.T) {
	p := NewPomodoro(settings(1, 1, 2))

	var modes []Mode
	for i := 0; i < 4; i++ {
		p.ToggleRunning()
		c, done := runFor(p, p.Remaining())
		require.True(t, done)
		modes = append(modes, c.To)
	}
	assert.Equal(t, []Mode{ModeShortBreak, ModeWork, ModeLongBreak, ModeWork}, modes)
	assert.Equal(t, 2, p.Completed())
}

func TestPomodoroBreakCompletionKeepsCount(t *testing.T) {
	p := NewPomodoro(settings(1, 1, 4))
	p.SelectMode(ModeLongBreak)
	assert.Equal(t, 120, p.Remaining())
	p.ToggleRunning()
	c, done := runFor(p, 120)
	require.True(t, done)
	assert.Equal(t, ModeWork, c.To)
	assert.Equal(t, 0, c.Completed)
}

func TestPomodoroZeroIntervalCount(t *testing.T) {
	p := NewPomodoro(settings(1, 1, 0))
	for i := 0; i < 3; i++ {
		p.SelectMode(ModeWork)
		p.ToggleRunning()
		c, done := runFor(p, 60)
		require.True(t, done)
		assert.Equal(t, ModeShortBreak, c.To)
	}
}

func TestPomodoroZeroLengthPhase(t *testing.T) {
	p := NewPomodoro(settings(0, 5, 4))
	assert.Equal(t, 0, p.Remaining())
	assert.Equal(t, 0.0, p.Progress())

	p.ToggleRunning()
	c, done := p.Tick()
	require.True(t, done)
	assert.Equal(t, ModeShortBreak, c.To)
}

func TestPomodoroReset(t *testing.T) {
	p := NewPomodoro(settings(1, 1, 4))
	p.ToggleRunning()
	runFor(p, 30)
	p.Reset()
	assert.False(t, p.Running())
	assert.Equal(t, 60, p.Remaining())
	assert.Equal(t, ModeWork, p.Mode())
}

func TestPomodoroSelectMode(t *testing.T) {
	p := NewPomodoro(settings(25, 5, 4))
	p.ToggleRunning()
	runFor(p, p.Remaining())
	require.Equal(t, 1, p.Completed())

	p.ToggleRunning()
	p.SelectMode(ModeWork)
	assert.False(t, p.Running())
	assert.Equal(t, ModeWork, p.Mode())
	assert.Equal(t, 1500, p.Remaining())
	assert.Equal(t, 1, p.Completed(), "selecting a mode keeps the counter")
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"work", ModeWork},
		{"short", ModeShortBreak},
		{"shortBreak", ModeShortBreak},
		{"long", ModeLongBreak},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
	_, err := ParseMode("nap")
	assert.Error(t, err)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "work", ModeWork.String())
	assert.Equal(t, "shortBreak", ModeShortBreak.String())
	assert.Equal(t, "longBreak", ModeLongBreak.String())
	assert.Equal(t, "unknown", Mode(9).String())
}

func TestClock(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "00:00"},
		{30, "00:30"},
		{90, "01:30"},
		{1500, "25:00"},
		{3600, "60:00"},
		{-5, "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Clock(tt.seconds))
	}
}

// =============================================================================
// Runner Tests
// =============================================================================

func TestRunnerStartStop(t *testing.T) {
	var n atomic.Int32
	r := NewRunner(5*time.Millisecond, func() bool {
		n.Add(1)
		return true
	})
	r.Start()
	r.Start() // no double ticking
	assert.Eventually(t, func() bool { return n.Load() >= 3 }, time.Second, time.Millisecond)

	r.Stop()
	assert.False(t, r.Running())
	stopped := n.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, n.Load(), "no ticks after Stop returns")
}

func TestRunnerSelfStop(t *testing.T) {
	var n atomic.Int32
	r := NewRunner(5*time.Millisecond, func() bool {
		return n.Add(1) < 2
	})
	r.Start()
	assert.Eventually(t, func() bool { return !r.Running() }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(2), n.Load())

	// It can be restarted after stopping itself.
	r.Start()
	assert.Eventually(t, func() bool { return n.Load() >= 3 }, time.Second, time.Millisecond)
	r.Close()
}

func TestRunnerClose(t *testing.T) {
	var n atomic.Int32
	r := NewRunner(5*time.Millisecond, func() bool {
		n.Add(1)
		return true
	})
	r.Close()
	r.Start()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), n.Load())
	assert.False(t, r.Running())
}

// =============================================================================
// Session Tests
// =============================================================================

func TestSessionCompletesAndStops(t *testing.T) {
	var mu sync.Mutex
	var completions []Completion
	s := NewSession(settings(0, 1, 4), time.Millisecond, Hooks{
		OnComplete: func(c Completion) {
			mu.Lock()
			defer mu.Unlock()
			completions = append(completions, c)
		},
	})
	defer s.Close()

	s.Toggle()
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(completions) == 1
	}, time.Second, time.Millisecond)

	snap := s.Snapshot()
	assert.False(t, snap.Running)
	assert.Equal(t, ModeShortBreak, snap.Mode)
	assert.Equal(t, 60, snap.Remaining)
	assert.Eventually(t, func() bool { return !s.runner.Running() }, time.Second, time.Millisecond)
}

func TestSessionToggleAndReset(t *testing.T) {
	var changes atomic.Int32
	s := NewSession(settings(1, 1, 4), time.Millisecond, Hooks{
		OnChange: func(Snapshot) { changes.Add(1) },
	})
	defer s.Close()

	s.Toggle()
	assert.Eventually(t, func() bool { return s.Snapshot().Remaining <= 55 }, time.Second, time.Millisecond)

	s.Toggle()
	paused := s.Snapshot()
	assert.False(t, paused.Running)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, paused.Remaining, s.Snapshot().Remaining)

	s.Reset()
	assert.Equal(t, 60, s.Snapshot().Remaining)
	assert.Greater(t, changes.Load(), int32(3))

	s.SelectMode(ModeLongBreak)
	assert.Equal(t, ModeLongBreak, s.Snapshot().Mode)
	assert.Equal(t, 120, s.Snapshot().Remaining)
}

func TestSessionConcurrentToggles(t *testing.T) {
	s := NewSession(settings(25, 5, 4), time.Millisecond, Hooks{})
	defer s.Close()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 51 {
				s.Toggle()
			}
		}()
	}
	wg.Wait()

	// An even number of toggles leaves the timer paused and the runner idle.
	assert.False(t, s.Snapshot().Running)
	assert.False(t, s.runner.Running())

	s.Toggle()
	assert.True(t, s.Snapshot().Running)
	assert.True(t, s.runner.Running())
	before := s.Snapshot().Remaining
	assert.Eventually(t, func() bool { return s.Snapshot().Remaining < before }, time.Second, time.Millisecond)
}

func TestSessionResumesRightAfterCompletion(t *testing.T) {
	s := NewSession(settings(0, 1, 4), time.Millisecond, Hooks{})
	defer s.Close()

	s.Toggle()
	assert.Eventually(t, func() bool { return s.Snapshot().Mode == ModeShortBreak }, time.Second, time.Millisecond)

	s.Toggle()
	assert.True(t, s.Snapshot().Running)
	assert.True(t, s.runner.Running())
	assert.Eventually(t, func() bool { return s.Snapshot().Remaining < 60 }, time.Second, time.Millisecond)
}

// =============================================================================
// CountdownDisplay Tests
// =============================================================================

func TestCountdownDisplayRenderTimer(t *testing.T) {
	cd := NewCountdownDisplay()
	cd.UseColor = false

	out := cd.RenderTimer(Snapshot{Mode: ModeWork, Remaining: 1499, Total: 1500, Completed: 2})
	assert.Contains(t, out, "FOCUS TIME")
	assert.Contains(t, out, "24:59")
	assert.Contains(t, out, "Completed Pomodoros: 2")
	assert.Contains(t, out, "[PAUSED]")

	out = cd.RenderTimer(Snapshot{Mode: ModeLongBreak, Remaining: 60, Total: 600, Running: true, Progress: 0.9})
	assert.Contains(t, out, "LONG BREAK")
	assert.Contains(t, out, "90%")
	assert.NotContains(t, out, "[PAUSED]")
}

func TestCountdownDisplayRussian(t *testing.T) {
	cd := NewCountdownDisplay()
	cd.UseColor = false
	cd.Lang = "ru"
	out := cd.RenderTimer(Snapshot{Mode: ModeShortBreak, Remaining: 300, Total: 300})
	assert.Contains(t, out, strings.ToUpper("Короткий перерыв"))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[░░░░░░░░░░] 0%", ProgressBar(0, 10))
	assert.Equal(t, "[█████░░░░░] 50%", ProgressBar(0.5, 10))
	assert.Equal(t, "[██████████] 100%", ProgressBar(1.5, 10))
	assert.Equal(t, "[░░░░░░░░░░] 0%", ProgressBar(-1, 10))
}

func TestCountdownDisplayRenderComplete(t *testing.T) {
	cd := NewCountdownDisplay()
	cd.UseColor = false
	out := cd.RenderComplete(Completion{From: ModeWork, To: ModeLongBreak, Completed: 4})
	assert.Contains(t, out, "Focus Time")
	assert.Contains(t, out, "Long Break")
}

func TestCountdownDisplayClearScreen(t *testing.T) {
	var buf bytes.Buffer
	cd := &CountdownDisplay{Writer: &buf}
	cd.ClearScreen()
	assert.Equal(t, "\033[H\033[2J", buf.String())
}

// =============================================================================
// Console Tests
// =============================================================================

func TestConsoleKeys(t *testing.T) {
	var buf bytes.Buffer
	display := NewCountdownDisplay()
	display.Writer = &buf
	display.UseColor = false

	c := &Console{Display: display, In: strings.NewReader("3r"), Interval: time.Hour}
	snap, err := c.Run(context.Background(), settings(25, 5, 4))
	require.NoError(t, err)

	assert.Equal(t, ModeLongBreak, snap.Mode)
	assert.Equal(t, 600, snap.Remaining)
	assert.Contains(t, buf.String(), "FOCUS TIME")
}

func TestConsoleQuitKey(t *testing.T) {
	display := NewCountdownDisplay()
	display.Writer = &bytes.Buffer{}
	c := &Console{Display: display, In: strings.NewReader(" q2"), Interval: time.Hour}
	snap, err := c.Run(context.Background(), settings(25, 5, 4))
	require.NoError(t, err)
	assert.Equal(t, ModeWork, snap.Mode, "keys after q are ignored")
	assert.True(t, snap.Running)
}
