package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/tasksync/internal/errors"
)

// Wednesday 11 June 2025.
var now = time.Date(2025, time.June, 11, 10, 0, 0, 0, time.Local)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2025-12-31", "2025-12-31"},
		{" 2025-01-02 ", "2025-01-02"},
		{"today", "2025-06-11"},
		{"Tomorrow", "2025-06-12"},
		{"yesterday", "2025-06-10"},
		{"in 3 days", "2025-06-14"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input, now)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDateErrors(t *testing.T) {
	for _, input := range []string{"", "2025-13-01", "2025-02-30", "qwertyuiop"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDate(input, now)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidDate))
		})
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input string
		year  int
		month time.Month
	}{
		{"", 2025, time.June},
		{"2026-10", 2026, time.October},
		{"this month", 2025, time.June},
		{"next month", 2025, time.July},
		{"last month", 2025, time.May},
		{"2025-12-25", 2025, time.December},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			y, m, err := ParseMonth(tt.input, now)
			require.NoError(t, err)
			assert.Equal(t, tt.year, y)
			assert.Equal(t, tt.month, m)
		})
	}

	_, _, err := ParseMonth("2025-13", now)
	assert.Error(t, err)
}

func TestParseMonthAcrossYear(t *testing.T) {
	dec := time.Date(2025, time.December, 31, 12, 0, 0, 0, time.Local)
	y, m, err := ParseMonth("next month", dec)
	require.NoError(t, err)
	assert.Equal(t, 2026, y)
	assert.Equal(t, time.January, m)
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"14:30", "14:30"},
		{"9:05", "09:05"},
		{"00:00", "00:00"},
		{"2:30 PM", "14:30"},
		{"2:30pm", "14:30"},
		{"12:15 AM", "00:15"},
		{"12:15 PM", "12:15"},
		{"9am", "09:00"},
		{"11 p.m.", "23:00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseClockErrors(t *testing.T) {
	for _, input := range []string{"", "24:00", "12:60", "13pm", "0am", "noon-ish"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseClock(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidTime))
		})
	}
}

func TestParseErrorToUserError(t *testing.T) {
	err := NewClockError("25:00")
	assert.Equal(t, "invalid time '25:00': could not parse time", err.Error())
	assert.Contains(t, err.Examples(), "2:30 PM")
	assert.True(t, errors.Is(err, errors.ErrInvalidTime))

	ue := err.ToUserError()
	assert.Equal(t, "time", ue.Field)
	assert.Equal(t, "25:00", ue.Value)
	assert.NotEmpty(t, ue.Suggestion)
	assert.True(t, errors.Is(ue, errors.ErrInvalidTime))

	converted := AsUserError(err)
	assert.True(t, errors.IsUserError(converted))

	plain := errors.New("other")
	assert.Equal(t, plain, AsUserError(plain))

	month := NewMonthError("Smarch").ToUserError()
	assert.Equal(t, "month", month.Field)
	assert.Equal(t, "Try: 2026-10, this month, next month, last month", month.Suggestion)
	assert.True(t, errors.Is(month, errors.ErrInvalidDate))
}
