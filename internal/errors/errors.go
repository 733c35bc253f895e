// Package errors holds the tasksync error model. Every failure reported to
// the user is one of UserError, SystemError or RecoverableError, or wraps a
// sentinel below that Classify maps onto one of them.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTitleRequired       = errors.New("title is required")
	ErrInvalidTime         = errors.New("invalid time")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidPriority     = errors.New("invalid priority")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrPasswordTooShort    = errors.New("password too short")
	ErrUserExists          = errors.New("user with this email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrNotLoggedIn         = errors.New("not logged in")
	ErrIntervalOutOfRange  = errors.New("interval out of range")
	ErrInvalidLanguage     = errors.New("unsupported language")
	ErrDiskFull            = errors.New("disk full")
	ErrDatabaseCorrupted   = errors.New("database corrupted")
	ErrDatabaseLocked      = errors.New("database is in use by another process")
	ErrNetworkUnavailable  = errors.New("network unavailable")
	ErrTimeout             = errors.New("operation timed out")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrRemoteAuthDisabled  = errors.New("remote auth is not configured")
	ErrRemoteRequestFailed = errors.New("remote request failed")
)

// UserError is a problem the user fixes by changing their input.
type UserError struct {
	Message    string
	Suggestion string
	Field      string // flag or config key at fault
	Value      string // offending input, quoted in Error
	Cause      error  // sentinel the error stands for
}

func (e *UserError) Error() string {
	if e.Field == "" || e.Value == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: '%s'", e.Message, e.Value)
}

func (e *UserError) Unwrap() error { return e.Cause }

func NewUserError(message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion}
}

func NewUserErrorWithField(field, value, message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion, Field: field, Value: value}
}

// UserErrorFor builds a UserError from a sentinel, keeping errors.Is intact
// and taking the hint from Suggestions.
func UserErrorFor(sentinel error, field, value string) *UserError {
	return &UserError{
		Message:    sentinel.Error(),
		Suggestion: Suggestions[sentinel],
		Field:      field,
		Value:      value,
		Cause:      sentinel,
	}
}

// SystemError is a failure of the machine or the data store: a full disk,
// a corrupted database, a broken auth server response.
type SystemError struct {
	Op      string
	Message string
	Cause   error
}

func (e *SystemError) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return e.Message + " during " + e.Op
}

func (e *SystemError) Unwrap() error { return e.Cause }

func NewSystemError(message string, cause error) *SystemError {
	return &SystemError{Message: message, Cause: cause}
}

func NewSystemErrorWithOp(op, message string, cause error) *SystemError {
	return &SystemError{Op: op, Message: message, Cause: cause}
}

// RecoverableError is a failure that may go away on its own, such as an
// unreachable auth server or a database held by another tasksync process.
type RecoverableError struct {
	Message  string
	Cause    error
	Attempts int // tries made before giving up; 0 when never retried
}

func (e *RecoverableError) Error() string {
	if e.Attempts > 1 {
		return fmt.Sprintf("%s after %d attempts", e.Message, e.Attempts)
	}
	return e.Message
}

func (e *RecoverableError) Unwrap() error { return e.Cause }

func NewRecoverableError(message string, cause error, attempts int) *RecoverableError {
	return &RecoverableError{Message: message, Cause: cause, Attempts: attempts}
}

func IsUserError(err error) bool {
	_, ok := AsUserError(err)
	return ok
}

func IsSystemError(err error) bool {
	var se *SystemError
	return errors.As(err, &se)
}

func IsRecoverableError(err error) bool {
	var re *RecoverableError
	return errors.As(err, &re)
}

// AsUserError finds the first UserError in err's chain.
func AsUserError(err error) (*UserError, bool) {
	var ue *UserError
	ok := errors.As(err, &ue)
	return ue, ok
}

// Is, As and New mirror the standard errors package so callers need only
// one import.
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }

func New(text string) error { return errors.New(text) }
