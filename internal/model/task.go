package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists the valid priorities from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// IsValid returns true if p is one of the known priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities for sorting. Unknown values rank as 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// ParsePriority parses a priority case-insensitively.
func ParsePriority(s string) (Priority, bool) {
	for _, p := range Priorities {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, true
		}
	}
	return "", false
}

// Status is the completion state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Toggled returns the opposite status. Anything that is not completed
// becomes completed.
func (s Status) Toggled() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// Task is a user-created to-do item with schedule and priority metadata.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Time        string   `json:"time"` // "H:MM AM/PM" or bare "HH:MM"
	Date        string   `json:"date"` // "YYYY-MM-DD"
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// IsCompleted returns true if the task is completed.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// TaskInput holds the user-supplied fields of a new task.
type TaskInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Time        string   `json:"time"`
	Date        string   `json:"date"`
	Priority    Priority `json:"priority"`
}

// TaskPatch is a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Time        *string   `json:"time,omitempty"`
	Date        *string   `json:"date,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Status      *Status   `json:"status,omitempty"`
}

// IsEmpty returns true if the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Time == nil &&
		p.Date == nil && p.Priority == nil && p.Status == nil
}

// Apply merges the patch onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Time != nil {
		t.Time = *p.Time
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}

// NewTask creates a pending task from input. Timestamps are set to now.
func NewTask(id string, input TaskInput, now time.Time) *Task {
	ts := FormatTimestamp(now)
	return &Task{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Time:        input.Time,
		Date:        input.Date,
		Priority:    input.Priority,
		Status:      StatusPending,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

// FormatTimestamp renders t the way task timestamps are stored.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// FormatTime renders a task time for display. Values that already carry an
// AM/PM suffix are returned unchanged; "HH:MM" is converted to 12-hour form.
// Input that cannot be parsed is returned as is.
func FormatTime(raw string) string {
	if strings.Contains(raw, "AM") || strings.Contains(raw, "PM") {
		return raw
	}

	hours, minutes, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return raw
	}
	hour, err := strconv.Atoi(hours)
	if err != nil || hour < 0 || hour > 23 {
		return raw
	}
	minute, err := strconv.Atoi(minutes)
	if err != nil || minute < 0 || minute > 59 {
		return raw
	}

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	displayHour := hour % 12
	if displayHour == 0 {
		displayHour = 12
	}
	return fmt.Sprintf("%d:%02d %s", displayHour, minute, suffix)
}

// ClockMinutes converts a task time ("14:30", "2:30 PM") to minutes since
// midnight. ok is false when the value cannot be parsed.
func ClockMinutes(raw string) (minutes int, ok bool) {
	s := strings.TrimSpace(raw)
	pm := strings.HasSuffix(strings.ToUpper(s), "PM")
	am := strings.HasSuffix(strings.ToUpper(s), "AM")
	if am || pm {
		s = strings.TrimSpace(s[:len(s)-2])
	}

	hours, mins, found := strings.Cut(s, ":")
	if !found {
		return 0, false
	}
	h, err := strconv.Atoi(hours)
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(mins)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}

	switch {
	case am || pm:
		if h < 1 || h > 12 {
			return 0, false
		}
		h %= 12
		if pm {
			h += 12
		}
	case h < 0 || h > 23:
		return 0, false
	}
	return h*60 + m, true
}

// StartsAt returns the moment the task is scheduled for, in loc.
// ok is false when the date or time cannot be parsed.
func (t *Task) StartsAt(loc *time.Location) (start time.Time, ok bool) {
	day, err := time.ParseInLocation(DateLayout, t.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	minutes, ok := ClockMinutes(t.Time)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, loc), true
}

// TagColors is the background/foreground pair used to render a priority tag.
type TagColors struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

// PriorityColors returns the tag colors for a priority. Unrecognized values
// get the Medium colors.
func PriorityColors(p Priority) TagColors {
	switch p {
	case PriorityHigh:
		return TagColors{Background: "#FFE9E1", Foreground: "#FF7D53"}
	case PriorityMedium:
		return TagColors{Background: "#EDE8FF", Foreground: "#5F33E1"}
	case PriorityLow:
		return TagColors{Background: "#E3F2FF", Foreground: "#0087FF"}
	default:
		return TagColors{Background: "#EDE8FF", Foreground: "#5F33E1"}
	}
}
