// Package output renders command results as styled terminal text, plain
// text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// Format selects how results are written.
type Format string

const (
	FormatCLI   Format = "cli"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// ParseFormat maps a --format value to a Format. ok is false for unknown
// values, which map to FormatCLI.
func ParseFormat(s string) (f Format, ok bool) {
	switch f = Format(s); f {
	case FormatCLI, FormatJSON, FormatPlain:
		return f, true
	}
	return FormatCLI, false
}

// ColorMode is the --color setting.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode maps a --color value to a ColorMode, treating anything
// unknown as auto.
func ParseColorMode(s string) ColorMode {
	if m := ColorMode(s); m == ColorAlways || m == ColorNever {
		return m
	}
	return ColorAuto
}

// Formatter carries the output streams and settings shared by the CLI and
// JSON formatters.
type Formatter struct {
	Writer    io.Writer
	ErrWriter io.Writer
	Format    Format
	ColorMode ColorMode
}

func NewFormatter() *Formatter {
	return &Formatter{
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Format:    FormatCLI,
		ColorMode: ColorAuto,
	}
}

// IsColorEnabled decides whether to emit ANSI styles. Plain output never
// does; auto mode needs a terminal and honors NO_COLOR.
func (f *Formatter) IsColorEnabled() bool {
	switch {
	case f.Format == FormatPlain || f.ColorMode == ColorNever:
		return false
	case f.ColorMode == ColorAlways:
		return true
	case os.Getenv("NO_COLOR") != "":
		return false
	default:
		return IsTTY(f.Writer)
	}
}

// Stderr returns the diagnostics writer, defaulting to os.Stderr.
func (f *Formatter) Stderr() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return os.Stderr
}

func (f *Formatter) Print(a ...any)                 { fmt.Fprint(f.Writer, a...) }
func (f *Formatter) Println(a ...any)               { fmt.Fprintln(f.Writer, a...) }
func (f *Formatter) Printf(format string, a ...any) { fmt.Fprintf(f.Writer, format, a...) }

// JSON writes v as indented JSON.
func (f *Formatter) JSON(v any) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// IsTTY reports whether v is an *os.File attached to a terminal.
func IsTTY(v any) bool {
	file, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// FormatTime renders t in local time, to the second.
func FormatTime(t time.Time) string {
	return t.Local().Format(time.DateTime)
}

// FormatDuration renders d with its two most significant units, e.g.
// "45s", "1m 30s" or "2h 15m".
func FormatDuration(d time.Duration) string {
	h, m, s := int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// FormatLongDate renders a YYYY-MM-DD date as "Sat, Oct 17 2026".
// Other input is returned unchanged.
func FormatLongDate(date string) string {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return d.Format("Mon, Jan 2 2006")
}

// FormatMinutes renders a whole number of minutes, e.g. "25m" or "1h 30m".
func FormatMinutes(m int) string {
	return FormatDuration(time.Duration(m) * time.Minute)
}
