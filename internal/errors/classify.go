package errors

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// Category decides how an error is shown and which exit code it gets.
type Category int

const (
	CategoryUnknown Category = iota
	// CategoryUser errors are fixed by changing the input.
	CategoryUser
	// CategorySystem errors come from the disk, the database or permissions.
	CategorySystem
	// CategoryRecoverable errors are worth retrying as is.
	CategoryRecoverable
	// CategoryInternal marks bugs.
	CategoryInternal
)

var categoryNames = map[Category]string{
	CategoryUser:        "user",
	CategorySystem:      "system",
	CategoryRecoverable: "recoverable",
	CategoryInternal:    "internal",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// systemErrnos are OS errors about the machine rather than the request.
var systemErrnos = []syscall.Errno{syscall.ENOSPC, syscall.EACCES, syscall.EPERM, syscall.ENOENT, syscall.EIO, syscall.EROFS}

// transientErrnos usually go away on retry.
var transientErrnos = []syscall.Errno{syscall.EAGAIN, syscall.EINTR, syscall.ETIMEDOUT, syscall.ECONNREFUSED, syscall.ECONNRESET}

// Classify determines the category of an error. Typed errors from this
// package win over sentinels and OS error numbers.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryUnknown
	case IsUserError(err):
		return CategoryUser
	case IsSystemError(err):
		return CategorySystem
	case IsRecoverableError(err):
		return CategoryRecoverable
	case isAny(err, ErrDiskFull, ErrDatabaseCorrupted, ErrPermissionDenied) || hasErrno(err, systemErrnos):
		return CategorySystem
	case isAny(err, ErrNetworkUnavailable, ErrTimeout, ErrDatabaseLocked, context.DeadlineExceeded) ||
		hasErrno(err, transientErrnos) || isNetTimeout(err):
		return CategoryRecoverable
	}
	return CategoryUnknown
}

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func hasErrno(err error, set []syscall.Errno) bool {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}
	for _, e := range set {
		if errno == e {
			return true
		}
	}
	return false
}

func isNetTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// categorized pins a category on an error.
type categorized struct {
	error
	category Category
}

func (e *categorized) Unwrap() error { return e.error }

// WithCategory overrides the category Classify would pick for err.
func WithCategory(err error, category Category) error {
	if err == nil {
		return nil
	}
	return &categorized{error: err, category: category}
}

// GetCategory returns the category set with WithCategory, or Classify's.
func GetCategory(err error) Category {
	var c *categorized
	if errors.As(err, &c) {
		return c.category
	}
	return Classify(err)
}

// FormatByCategory renders err for the terminal: user errors with a "Try:"
// hint, system errors prefixed, recoverable ones with a retry nudge.
func FormatByCategory(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	suggestion := GetSuggestion(err)
	switch GetCategory(err) {
	case CategoryUser:
		if suggestion != "" {
			return msg + "\n\nTry: " + suggestion
		}
	case CategorySystem:
		msg = "System error: " + msg
		if suggestion != "" {
			return msg + "\n\n" + suggestion
		}
	case CategoryRecoverable:
		return msg + " (try again)"
	}
	return msg
}

// ExitCode maps an error to the process exit status: 2 user, 3 system,
// 4 recoverable, 1 anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch GetCategory(err) {
	case CategoryUser:
		return 2
	case CategorySystem:
		return 3
	case CategoryRecoverable:
		return 4
	}
	return 1
}
