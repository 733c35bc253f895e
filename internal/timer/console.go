package timer

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/manav03panchal/tasksync/internal/model"
)

// Console runs an interactive pomodoro on a plain terminal without the
// full-screen TUI.
//
// Keys: space toggles, r resets, 1/2/3 select work/short/long, q or
// Ctrl+C quits. End of input also quits.
type Console struct {
	Display    *CountdownDisplay
	In         io.Reader
	Interval   time.Duration
	OnComplete func(Completion)
}

// Run blocks until the user quits or ctx is done and returns the final state.
func (c *Console) Run(ctx context.Context, settings model.PomodoroSettings) (Snapshot, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	raw := false
	if f, ok := c.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		oldState, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return Snapshot{}, err
		}
		defer term.Restore(int(f.Fd()), oldState)
		raw = true
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	changes := make(chan Snapshot, 1)
	completions := make(chan Completion, 4)
	session := NewSession(settings, c.Interval, Hooks{
		OnChange: func(s Snapshot) {
			// Only the latest state matters for rendering.
			for {
				select {
				case changes <- s:
					return
				default:
				}
				select {
				case <-changes:
				default:
				}
			}
		},
		OnComplete: func(done Completion) {
			select {
			case completions <- done:
			default:
			}
		},
	})
	defer session.Close()

	keys := make(chan byte)
	go readKeys(ctx, c.In, keys)

	c.render(session.Snapshot(), raw, "")
	var banner string

	for {
		select {
		case <-ctx.Done():
			return session.Snapshot(), ctx.Err()
		case <-sigCh:
			return session.Snapshot(), nil
		case k, ok := <-keys:
			if !ok {
				return session.Snapshot(), nil
			}
			switch k {
			case ' ':
				banner = ""
				session.Toggle()
			case 'r', 'R':
				session.Reset()
			case '1':
				session.SelectMode(ModeWork)
			case '2':
				session.SelectMode(ModeShortBreak)
			case '3':
				session.SelectMode(ModeLongBreak)
			case 'q', 'Q', 3:
				return session.Snapshot(), nil
			}
		case snap := <-changes:
			c.render(snap, raw, banner)
		case done := <-completions:
			banner = c.Display.RenderComplete(done) + "\a"
			c.render(session.Snapshot(), raw, banner)
			if c.OnComplete != nil {
				c.OnComplete(done)
			}
		}
	}
}

func readKeys(ctx context.Context, in io.Reader, keys chan<- byte) {
	defer close(keys)
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if n == 1 {
			select {
			case keys <- buf[0]:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func (c *Console) render(snap Snapshot, raw bool, banner string) {
	out := c.Display.RenderTimer(snap)
	if banner != "" {
		out = banner + "\n\n" + out
	}
	out += "\n"
	if raw {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	c.Display.MoveCursorHome()
	c.Display.ClearScreen()
	io.WriteString(c.Display.Writer, out)
}
