package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/tasksync/internal/errors"
)

// Kind names the value a ParseError was about.
type Kind string

const (
	KindDate  Kind = "date"
	KindClock Kind = "time"
	KindMonth Kind = "month"
)

var examples = map[Kind][]string{
	KindDate:  {"2026-10-17", "today", "tomorrow", "next friday", "in 3 days"},
	KindClock: {"14:30", "9:05", "2:30 PM", "9am"},
	KindMonth: {"2026-10", "this month", "next month", "last month"},
}

var sentinels = map[Kind]error{
	KindDate:  errors.ErrInvalidDate,
	KindClock: errors.ErrInvalidTime,
	KindMonth: errors.ErrInvalidDate,
}

// ParseError is returned when a date, time of day or month cannot be
// read. errors.Is matches ErrInvalidDate or ErrInvalidTime.
type ParseError struct {
	Kind  Kind
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s '%s': could not parse %s", e.Kind, e.Input, e.Kind)
}

func (e *ParseError) Unwrap() error { return sentinels[e.Kind] }

// Examples lists inputs accepted for the error's kind.
func (e *ParseError) Examples() []string { return examples[e.Kind] }

// suggestion prefers the sentinel's hint; months share ErrInvalidDate, so
// they list their own examples instead.
func (e *ParseError) suggestion() string {
	if e.Kind == KindMonth {
		return "Try: " + strings.Join(e.Examples(), ", ")
	}
	return errors.Suggestions[sentinels[e.Kind]]
}

// ToUserError converts the error for reporting, keeping errors.Is intact.
func (e *ParseError) ToUserError() *errors.UserError {
	ue := errors.UserErrorFor(sentinels[e.Kind], string(e.Kind), e.Input)
	ue.Message = "could not parse " + string(e.Kind)
	ue.Suggestion = e.suggestion()
	return ue
}

func NewDateError(input string) *ParseError  { return &ParseError{Kind: KindDate, Input: input} }
func NewClockError(input string) *ParseError { return &ParseError{Kind: KindClock, Input: input} }
func NewMonthError(input string) *ParseError { return &ParseError{Kind: KindMonth, Input: input} }

// AsUserError converts a ParseError anywhere in err's chain to a UserError
// and returns any other error unchanged.
func AsUserError(err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.ToUserError()
	}
	return err
}
