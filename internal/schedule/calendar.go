package schedule

import (
	"time"

	"github.com/manav03panchal/tasksync/internal/model"
)

// Cell is one slot of the month grid. Blank cells pad the first week so
// that day 1 lands under its weekday.
type Cell struct {
	Day   int    `json:"day,omitempty"`
	Date  string `json:"date,omitempty"`
	Blank bool   `json:"blank,omitempty"`
}

// Month is a Sunday-first calendar month.
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Cells []Cell     `json:"cells"`

	loc *time.Location
}

// MonthGrid lays out year/month with leading blanks for the weekday of the
// 1st, followed by one cell per day.
func MonthGrid(year int, month time.Month, loc *time.Location) Month {
	if loc == nil {
		loc = time.Local
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	days := first.AddDate(0, 1, -1).Day()
	lead := int(first.Weekday())

	cells := make([]Cell, 0, lead+days)
	for range lead {
		cells = append(cells, Cell{Blank: true})
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, Cell{
			Day:  d,
			Date: model.DateString(time.Date(year, month, d, 0, 0, 0, 0, loc)),
		})
	}
	return Month{Year: first.Year(), Month: first.Month(), Cells: cells, loc: loc}
}

// Weeks splits the grid into rows of seven. The last row is padded with
// blanks.
func (m Month) Weeks() [][]Cell {
	var rows [][]Cell
	for i := 0; i < len(m.Cells); i += 7 {
		row := make([]Cell, 7)
		for j := range row {
			if i+j < len(m.Cells) {
				row[j] = m.Cells[i+j]
			} else {
				row[j] = Cell{Blank: true}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Title renders "October 2026".
func (m Month) Title() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// Prev returns the previous month's grid.
func (m Month) Prev() Month {
	p := time.Date(m.Year, m.Month-1, 1, 0, 0, 0, 0, m.location())
	return MonthGrid(p.Year(), p.Month(), m.location())
}

// Next returns the following month's grid.
func (m Month) Next() Month {
	n := time.Date(m.Year, m.Month+1, 1, 0, 0, 0, 0, m.location())
	return MonthGrid(n.Year(), n.Month(), m.location())
}

func (m Month) location() *time.Location {
	if m.loc == nil {
		return time.Local
	}
	return m.loc
}

// PendingCounts counts pending tasks per date.
func PendingCounts(tasks []*model.Task) map[string]int {
	counts := make(map[string]int)
	for _, t := range tasks {
		if t == nil || t.IsCompleted() {
			continue
		}
		counts[t.Date]++
	}
	return counts
}
