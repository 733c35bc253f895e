// Package logging provides structured logging for Tasksync on top of slog.
// Output is quiet (warnings only) unless configured otherwise, and every
// helper masks credential-like arguments before they reach a handler.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	defaultLogger *slog.Logger
	loggerMu      sync.RWMutex

	// Debug reports whether debug logging is on.
	Debug bool
)

func init() {
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// Options configures the global logger.
type Options struct {
	Level     slog.Level
	JSON      bool
	Output    io.Writer // nil means stderr
	AddSource bool
}

// DefaultOptions is warnings and above as text on stderr.
func DefaultOptions() Options {
	return Options{Level: slog.LevelWarn}
}

// DebugOptions is everything as JSON with source locations.
func DebugOptions() Options {
	return Options{Level: slog.LevelDebug, JSON: true, AddSource: true}
}

// Configure replaces the global logger.
func Configure(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.Level, AddSource: opts.AddSource}

	var handler slog.Handler = slog.NewTextHandler(out, handlerOpts)
	if opts.JSON {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	defaultLogger = slog.New(handler)
	Debug = opts.Level <= slog.LevelDebug
}

// ConfigureDebug switches to DebugOptions.
func ConfigureDebug() {
	Configure(DebugOptions())
}

// ParseLevel accepts debug, info, warn or error in any case. Empty means warn.
func ParseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// OpenFile opens path for appending log lines, creating its directory.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return defaultLogger
}

// Info logs at INFO level.
func Info(msg string, args ...any) {
	Logger().Info(msg, MaskArgs(args)...)
}

// DebugLog logs at DEBUG level.
func DebugLog(msg string, args ...any) {
	Logger().Debug(msg, MaskArgs(args)...)
}

// Warn logs at WARN level.
func Warn(msg string, args ...any) {
	Logger().Warn(msg, MaskArgs(args)...)
}

// Error logs at ERROR level.
func Error(msg string, args ...any) {
	Logger().Error(msg, MaskArgs(args)...)
}

// Common structured logging fields.
const (
	KeyDeliveryID = "delivery_id"
	KeyOperation  = "op"
	KeyDuration   = "duration_ms"
	KeyError      = "error"
	KeyBlob       = "blob"
	KeyTaskID     = "task_id"
	KeyEmail      = "email"
	KeyMode       = "mode"
	KeyStatus     = "status"
	KeyCount      = "count"
	KeyURL        = "url"
	KeyWebhook    = "webhook"
)

// LogOperation logs a storage or account operation at debug level.
func LogOperation(op string, args ...any) {
	DebugLog("operation", append([]any{KeyOperation, op}, args...)...)
}
