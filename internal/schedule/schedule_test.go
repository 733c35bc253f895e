package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/tasksync/internal/model"
)

func task(id, title, date, clock string, p model.Priority, s model.Status) *model.Task {
	return &model.Task{ID: id, Title: title, Date: date, Time: clock, Priority: p, Status: s}
}

func ids(tasks []*model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func fixture() []*model.Task {
	return []*model.Task{
		task("a", "Write report", "2025-06-12", "14:00", model.PriorityMedium, model.StatusPending),
		task("b", "buy milk", "2025-06-11", "9:30 AM", model.PriorityLow, model.StatusCompleted),
		task("c", "Call dentist", "2025-06-11", "08:00", model.PriorityHigh, model.StatusPending),
		task("d", "Deploy", "2025-06-10", "17:00", model.PriorityHigh, model.StatusPending),
	}
}

func TestParseSortBy(t *testing.T) {
	assert.Equal(t, SortByDate, ParseSortBy("date"))
	assert.Equal(t, SortByPriority, ParseSortBy(" Priority "))
	assert.Equal(t, SortByTitle, ParseSortBy("title"))
	assert.Equal(t, SortByTitle, ParseSortBy("bogus"))
}

func TestFilter(t *testing.T) {
	tasks := fixture()
	tasks[0].Description = "Quarterly NUMBERS"

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"empty query matches all", Query{}, []string{"a", "b", "c", "d"}},
		{"search title case-insensitive", Query{Search: "MILK"}, []string{"b"}},
		{"search description", Query{Search: "numbers"}, []string{"a"}},
		{"priority", Query{Priority: model.PriorityHigh}, []string{"c", "d"}},
		{"status", Query{Status: model.StatusCompleted}, []string{"b"}},
		{"combined", Query{Search: "d", Priority: model.PriorityHigh, Status: model.StatusPending}, []string{"c", "d"}},
		{"no match", Query{Search: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(tasks, tt.query)))
		})
	}
}

func TestFilter_SkipsNil(t *testing.T) {
	assert.Empty(t, Filter([]*model.Task{nil}, Query{}))
}

func TestSort(t *testing.T) {
	tasks := fixture()

	assert.Equal(t, []string{"d", "c", "b", "a"}, ids(Sort(tasks, SortByDate)))
	assert.Equal(t, []string{"d", "c", "a", "b"}, ids(Sort(tasks, SortByPriority)))
	assert.Equal(t, []string{"b", "c", "d", "a"}, ids(Sort(tasks, SortByTitle)))

	// the input slice is not reordered
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(tasks))
}

func TestSort_TitleCollation(t *testing.T) {
	tasks := []*model.Task{
		task("1", "Яблоко", "", "", "", ""),
		task("2", "zebra", "", "", "", ""),
		task("3", "Éclair", "", "", "", ""),
		task("4", "apple", "", "", "", ""),
	}
	assert.Equal(t, []string{"4", "3", "2", "1"}, ids(Sort(tasks, SortByTitle)))
}

func TestForDate(t *testing.T) {
	got := ForDate(fixture(), "2025-06-11")
	assert.Equal(t, []string{"c", "b"}, ids(got))
	assert.Empty(t, ForDate(fixture(), "2030-01-01"))
}

func TestUpcoming(t *testing.T) {
	tasks := fixture()
	got := Upcoming(tasks, "2025-06-11", DefaultUpcomingLimit)
	assert.Equal(t, []string{"c", "a"}, ids(got))

	assert.Equal(t, []string{"c"}, ids(Upcoming(tasks, "2025-06-11", 1)))
	assert.Len(t, Upcoming(tasks, "2000-01-01", 0), 3)
}

func TestCompareClock(t *testing.T) {
	assert.Negative(t, compareClock("08:00", "9:30 AM"))
	assert.Positive(t, compareClock("1:00 PM", "12:30"))
	assert.Negative(t, compareClock("23:59", "garbage"))
	assert.Zero(t, compareClock("x", "x"))
}

func TestMonthGrid(t *testing.T) {
	// June 2025 starts on a Sunday, October 2026 on a Thursday.
	june := MonthGrid(2025, time.June, time.UTC)
	require.Len(t, june.Cells, 30)
	assert.Equal(t, Cell{Day: 1, Date: "2025-06-01"}, june.Cells[0])

	oct := MonthGrid(2026, time.October, time.UTC)
	require.Len(t, oct.Cells, 4+31)
	for i := range 4 {
		assert.True(t, oct.Cells[i].Blank)
	}
	assert.Equal(t, "2026-10-01", oct.Cells[4].Date)
	assert.Equal(t, "2026-10-31", oct.Cells[len(oct.Cells)-1].Date)
	assert.Equal(t, "October 2026", oct.Title())

	weeks := oct.Weeks()
	require.Len(t, weeks, 5)
	for _, w := range weeks {
		assert.Len(t, w, 7)
	}
	assert.Equal(t, "2026-10-31", weeks[4][6].Date)

	juneWeeks := june.Weeks()
	require.Len(t, juneWeeks, 5)
	assert.Equal(t, "2025-06-30", juneWeeks[4][1].Date)
	assert.True(t, juneWeeks[4][2].Blank)
}

func TestMonthGrid_PrevNext(t *testing.T) {
	jan := MonthGrid(2026, time.January, time.UTC)
	assert.Equal(t, 2025, jan.Prev().Year)
	assert.Equal(t, time.December, jan.Prev().Month)

	dec := MonthGrid(2025, time.December, time.UTC)
	assert.Equal(t, 2026, dec.Next().Year)
	assert.Equal(t, time.January, dec.Next().Month)

	feb := MonthGrid(2024, time.February, nil)
	assert.Len(t, feb.Cells, 4+29)
}

func TestPendingCounts(t *testing.T) {
	counts := PendingCounts(fixture())
	assert.Equal(t, map[string]int{
		"2025-06-10": 1,
		"2025-06-11": 1,
		"2025-06-12": 1,
	}, counts)
}

func TestTimeBlocks(t *testing.T) {
	tasks := []*model.Task{
		task("t1", "Standup", "2025-06-11", "09:15", model.PriorityHigh, model.StatusPending),
		task("t2", "Late call", "2025-06-11", "11:30 PM", model.PriorityMedium, model.StatusPending),
		task("t3", "Gym", "2025-06-11", "7:00 AM", model.PriorityLow, model.StatusCompleted),
		task("t4", "Broken", "2025-06-11", "soon", model.PriorityLow, model.StatusPending),
		task("t5", "Other day", "2025-06-12", "10:00", model.PriorityHigh, model.StatusPending),
	}

	day := TimeBlocks(tasks, "2025-06-11", "Free time")

	assert.Len(t, day.Tasks, 4)
	assert.Equal(t, 3, day.TaskBlocks())
	assert.Equal(t, 21, day.FreeBlocks())
	require.Len(t, day.Blocks, 24)

	for i := 1; i < len(day.Blocks); i++ {
		assert.LessOrEqual(t, day.Blocks[i-1].Start, day.Blocks[i].Start)
	}

	byID := map[string]Block{}
	for _, b := range day.Blocks {
		byID[b.ID] = b
	}

	standup := byID["t1"]
	assert.Equal(t, "09:15", standup.Start)
	assert.Equal(t, "10:15", standup.End)
	assert.Equal(t, ColorHigh, standup.Color)
	assert.False(t, standup.Free)

	late := byID["t2"]
	assert.Equal(t, "23:30", late.Start)
	assert.Equal(t, "00:30", late.End)
	assert.Equal(t, ColorMedium, late.Color)

	assert.Equal(t, ColorLow, byID["t3"].Color)

	free := byID["empty-0"]
	assert.True(t, free.Free)
	assert.Equal(t, "00:00", free.Start)
	assert.Equal(t, "01:00", free.End)
	assert.Equal(t, "Free time", free.Title)
	assert.Equal(t, ColorFree, free.Color)

	_, busy := byID["empty-9"]
	assert.False(t, busy)
	_, busy = byID["empty-7"]
	assert.False(t, busy)
}

func TestTimeBlocks_EmptyDay(t *testing.T) {
	day := TimeBlocks(nil, "2025-06-11", "")
	assert.Equal(t, 0, day.TaskBlocks())
	require.Len(t, day.Blocks, 24)
	assert.Equal(t, "empty-23", day.Blocks[23].ID)
	assert.Equal(t, "00:00", day.Blocks[23].End)
}
