package toast

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var kindColors = map[Kind]lipgloss.Color{
	KindSuccess: lipgloss.Color("#57F287"),
	KindError:   lipgloss.Color("#ED4245"),
	KindInfo:    lipgloss.Color("#5865F2"),
	KindWarning: lipgloss.Color("#FEE75C"),
}

// Icon returns the glyph shown before a toast message.
func (k Kind) Icon() string {
	switch k {
	case KindSuccess:
		return "✓"
	case KindError:
		return "✗"
	case KindWarning:
		return "!"
	}
	return "i"
}

// Style returns the lipgloss style for the kind.
func (k Kind) Style() lipgloss.Style {
	c, ok := kindColors[k]
	if !ok {
		c = kindColors[KindInfo]
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// Render formats t as a single line.
func Render(t Toast, color bool) string {
	if !color {
		return fmt.Sprintf("%s %s", t.Kind.Icon(), t.Message)
	}
	return t.Kind.Style().Render(t.Kind.Icon()) + " " + t.Message
}

// Printer is a Listener that writes each toast once, when it first appears.
type Printer struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
	seen  map[string]bool
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color, seen: make(map[string]bool)}
}

// Listen implements Listener.
func (p *Printer) Listen(toasts []Toast) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range toasts {
		if p.seen[t.ID] {
			continue
		}
		p.seen[t.ID] = true
		fmt.Fprintln(p.w, Render(t, p.color))
	}
}
