// Package schedule derives read-only views from the task list: filtered and
// sorted lists, the calendar month grid and the time-blocking day layout.
package schedule

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/manav03panchal/tasksync/internal/model"
)

// SortBy selects the ordering applied by Sort.
type SortBy string

const (
	SortByDate     SortBy = "date"
	SortByPriority SortBy = "priority"
	SortByTitle    SortBy = "title"
)

// ParseSortBy returns the sort order named by s. Unknown names sort by title.
func ParseSortBy(s string) SortBy {
	switch SortBy(strings.ToLower(strings.TrimSpace(s))) {
	case SortByDate:
		return SortByDate
	case SortByPriority:
		return SortByPriority
	}
	return SortByTitle
}

// Query narrows a task list. Empty fields match everything.
type Query struct {
	Search   string
	Priority model.Priority
	Status   model.Status
}

// Matches reports whether t satisfies the query. Search is a
// case-insensitive substring match over title and description.
func (q Query) Matches(t *model.Task) bool {
	if t == nil {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}
	if q.Priority != "" && t.Priority != q.Priority {
		return false
	}
	if q.Status != "" && t.Status != q.Status {
		return false
	}
	return true
}

// Filter returns the tasks matching q, preserving order.
func Filter(tasks []*model.Task, q Query) []*model.Task {
	out := make([]*model.Task, 0, len(tasks))
	for _, t := range tasks {
		if q.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Sort returns a sorted copy of tasks.
//
// Date order compares date then time. Priority order puts High first and
// breaks ties by date. Title order uses locale-aware collation so that
// Cyrillic and accented titles land where a reader expects them.
func Sort(tasks []*model.Task, by SortBy) []*model.Task {
	out := slices.Clone(tasks)
	switch by {
	case SortByDate:
		slices.SortStableFunc(out, compareDateTime)
	case SortByPriority:
		slices.SortStableFunc(out, func(a, b *model.Task) int {
			if d := b.Priority.Rank() - a.Priority.Rank(); d != 0 {
				return d
			}
			return strings.Compare(a.Date, b.Date)
		})
	default:
		c := collate.New(language.Und, collate.IgnoreCase)
		slices.SortStableFunc(out, func(a, b *model.Task) int {
			return c.CompareString(a.Title, b.Title)
		})
	}
	return out
}

// ForDate returns the tasks scheduled on date, ordered by time of day.
func ForDate(tasks []*model.Task, date string) []*model.Task {
	out := make([]*model.Task, 0)
	for _, t := range tasks {
		if t != nil && t.Date == date {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b *model.Task) int {
		return compareClock(a.Time, b.Time)
	})
	return out
}

// DefaultUpcomingLimit caps the upcoming list.
const DefaultUpcomingLimit = 10

// Upcoming returns pending tasks dated today or later, soonest first,
// capped at limit entries. A limit of zero or less means no cap.
func Upcoming(tasks []*model.Task, today string, limit int) []*model.Task {
	out := make([]*model.Task, 0)
	for _, t := range tasks {
		if t == nil || t.IsCompleted() || t.Date < today {
			continue
		}
		out = append(out, t)
	}
	slices.SortStableFunc(out, compareDateTime)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func compareDateTime(a, b *model.Task) int {
	if c := strings.Compare(a.Date, b.Date); c != 0 {
		return c
	}
	return compareClock(a.Time, b.Time)
}

// compareClock orders parseable times by minutes since midnight. Values
// that cannot be parsed sort after parseable ones, then lexically.
func compareClock(a, b string) int {
	am, aok := model.ClockMinutes(a)
	bm, bok := model.ClockMinutes(b)
	switch {
	case aok && bok:
		return am - bm
	case aok:
		return -1
	case bok:
		return 1
	}
	return strings.Compare(a, b)
}
