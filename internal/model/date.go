package model

import "time"

// DateLayout is the calendar date format used by tasks.
const DateLayout = "2006-01-02"

// DateString formats t as a local calendar date.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekRange returns the first and last calendar dates of the Sunday-first
// week containing t.
func WeekRange(t time.Time) (start, end string) {
	day := StartOfDay(t)
	weekStart := day.AddDate(0, 0, -int(day.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 6)
	return DateString(weekStart), DateString(weekEnd)
}

// InDateRange reports whether date lies within [start, end]. All three are
// "YYYY-MM-DD" strings, which order lexically.
func InDateRange(date, start, end string) bool {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return false
	}
	return date >= start && date <= end
}
