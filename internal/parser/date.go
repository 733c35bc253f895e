// Package parser turns user input into the canonical date and time strings
// stored on tasks.
package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/manav03panchal/tasksync/internal/model"
)

var (
	isoDateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	isoMonthRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)
	relMonthRegex = regexp.MustCompile(`(?i)^(this|current|next|last|previous)\s+month$`)
)

// ParseDate resolves input to a "YYYY-MM-DD" calendar date relative to now.
// ISO dates are taken literally; anything else ("tomorrow", "next friday",
// "завтра") goes through natural-language parsing, preferring future dates.
func ParseDate(input string, now time.Time) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", NewDateError(input)
	}

	if isoDateRegex.MatchString(input) {
		if _, err := time.Parse(model.DateLayout, input); err != nil {
			return "", NewDateError(input)
		}
		return input, nil
	}

	switch strings.ToLower(input) {
	case "today", "now":
		return model.DateString(now), nil
	case "tomorrow":
		return model.DateString(now.AddDate(0, 0, 1)), nil
	case "yesterday":
		return model.DateString(now.AddDate(0, 0, -1)), nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime:         now,
		PreferredDateSource: dateparser.Future,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return "", NewDateError(input)
	}
	return model.DateString(result.Time), nil
}

// ParseMonth resolves input to a year and month. It accepts "YYYY-MM",
// "this/next/last month", an empty string for the current month, or any
// date ParseDate understands.
func ParseMonth(input string, now time.Time) (int, time.Month, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return now.Year(), now.Month(), nil
	}

	if isoMonthRegex.MatchString(input) {
		t, err := time.Parse("2006-01", input)
		if err != nil {
			return 0, 0, NewMonthError(input)
		}
		return t.Year(), t.Month(), nil
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if m := relMonthRegex.FindStringSubmatch(input); m != nil {
		switch strings.ToLower(m[1]) {
		case "next":
			first = first.AddDate(0, 1, 0)
		case "last", "previous":
			first = first.AddDate(0, -1, 0)
		}
		return first.Year(), first.Month(), nil
	}

	date, err := ParseDate(input, now)
	if err != nil {
		return 0, 0, NewMonthError(input)
	}
	t, _ := time.Parse(model.DateLayout, date)
	return t.Year(), t.Month(), nil
}
