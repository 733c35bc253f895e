package schedule

import (
	"fmt"
	"slices"

	"github.com/manav03panchal/tasksync/internal/model"
)

// Block colors. Task blocks take the background color of their priority
// tag; Low and unrecognized priorities use the Low color.
const (
	ColorHigh   = "#FFE9E1"
	ColorMedium = "#EDE8FF"
	ColorLow    = "#E3F2FF"
	ColorFree   = "#F5F5F5"
)

// Block is one row of the time-blocking day layout. Free blocks have no
// task and span a whole hour.
type Block struct {
	ID       string `json:"id"`
	Start    string `json:"startTime"`
	End      string `json:"endTime"`
	TaskID   string `json:"taskId,omitempty"`
	Title    string `json:"title"`
	Priority string `json:"priority,omitempty"`
	Color    string `json:"color"`
	Free     bool   `json:"free"`

	startMin int
}

// Day is the time-blocking layout of one date.
type Day struct {
	Date   string        `json:"date"`
	Tasks  []*model.Task `json:"-"`
	Blocks []Block       `json:"blocks"`
}

// TaskBlocks returns the number of blocks backed by a task.
func (d Day) TaskBlocks() int {
	n := 0
	for _, b := range d.Blocks {
		if !b.Free {
			n++
		}
	}
	return n
}

// FreeBlocks returns the number of free hour blocks.
func (d Day) FreeBlocks() int {
	return len(d.Blocks) - d.TaskBlocks()
}

// TimeBlocks lays out date as one-hour blocks. Each task on the date gets a
// block from its time to the same minute an hour later, wrapping at
// midnight. Every hour that no task starts in gets a free block. Tasks whose
// time cannot be parsed are listed in Tasks but get no block.
func TimeBlocks(tasks []*model.Task, date, freeTitle string) Day {
	day := Day{Date: date, Tasks: ForDate(tasks, date)}

	var busy [24]bool
	for _, t := range day.Tasks {
		minutes, ok := model.ClockMinutes(t.Time)
		if !ok {
			continue
		}
		hour, minute := minutes/60, minutes%60
		busy[hour] = true
		day.Blocks = append(day.Blocks, Block{
			ID:       t.ID,
			Start:    clock(hour, minute),
			End:      clock((hour+1)%24, minute),
			TaskID:   t.ID,
			Title:    t.Title,
			Priority: string(t.Priority),
			Color:    blockColor(t.Priority),
			startMin: minutes,
		})
	}

	for hour := range 24 {
		if busy[hour] {
			continue
		}
		day.Blocks = append(day.Blocks, Block{
			ID:       fmt.Sprintf("empty-%d", hour),
			Start:    clock(hour, 0),
			End:      clock((hour+1)%24, 0),
			Title:    freeTitle,
			Color:    ColorFree,
			Free:     true,
			startMin: hour * 60,
		})
	}

	slices.SortStableFunc(day.Blocks, func(a, b Block) int {
		return a.startMin - b.startMin
	})
	return day
}

func blockColor(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return ColorHigh
	case model.PriorityMedium:
		return ColorMedium
	}
	return ColorLow
}

func clock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
