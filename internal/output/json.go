package output

import (
	"github.com/manav03panchal/tasksync/internal/model"
	"github.com/manav03panchal/tasksync/internal/schedule"
	"github.com/manav03panchal/tasksync/internal/storage"
	"github.com/manav03panchal/tasksync/internal/timer"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// TaskResponse wraps a single task.
type TaskResponse struct {
	Status string      `json:"status"`
	Task   *model.Task `json:"task,omitempty"`
}

// TasksResponse represents a task list in JSON.
type TasksResponse struct {
	Tasks []*model.Task `json:"tasks"`
	Count int           `json:"count"`
}

// NewTasksResponse creates a TasksResponse. A nil slice is encoded as [].
func NewTasksResponse(tasks []*model.Task) *TasksResponse {
	if tasks == nil {
		tasks = []*model.Task{}
	}
	return &TasksResponse{Tasks: tasks, Count: len(tasks)}
}

// CalendarDay is one day of the month grid in JSON.
type CalendarDay struct {
	Day     int    `json:"day"`
	Date    string `json:"date"`
	Pending int    `json:"pending"`
}

// CalendarResponse represents a calendar month in JSON.
type CalendarResponse struct {
	Year       int           `json:"year"`
	Month      int           `json:"month"`
	Title      string        `json:"title"`
	LeadBlanks int           `json:"leadBlanks"`
	Days       []CalendarDay `json:"days"`
	Selected   string        `json:"selected,omitempty"`
	Tasks      []*model.Task `json:"tasks,omitempty"`
}

// NewCalendarResponse flattens a month grid with pending counts.
func NewCalendarResponse(m schedule.Month, counts map[string]int) *CalendarResponse {
	resp := &CalendarResponse{
		Year:  m.Year,
		Month: int(m.Month),
		Title: m.Title(),
		Days:  make([]CalendarDay, 0, len(m.Cells)),
	}
	for _, cell := range m.Cells {
		if cell.Blank {
			resp.LeadBlanks++
			continue
		}
		resp.Days = append(resp.Days, CalendarDay{
			Day:     cell.Day,
			Date:    cell.Date,
			Pending: counts[cell.Date],
		})
	}
	return resp
}

// BlocksResponse represents a time-blocking day in JSON.
type BlocksResponse struct {
	Date       string           `json:"date"`
	Blocks     []schedule.Block `json:"blocks"`
	TaskBlocks int              `json:"taskBlocks"`
	FreeBlocks int              `json:"freeBlocks"`
}

// NewBlocksResponse creates a BlocksResponse from a day layout.
func NewBlocksResponse(d schedule.Day) *BlocksResponse {
	blocks := d.Blocks
	if blocks == nil {
		blocks = []schedule.Block{}
	}
	return &BlocksResponse{
		Date:       d.Date,
		Blocks:     blocks,
		TaskBlocks: d.TaskBlocks(),
		FreeBlocks: d.FreeBlocks(),
	}
}

// SettingsResponse represents pomodoro settings in JSON.
type SettingsResponse struct {
	model.PomodoroSettings
	LongBreakInterval int `json:"longBreakInterval"`
}

// UserResponse represents the session in JSON.
type UserResponse struct {
	LoggedIn bool               `json:"loggedIn"`
	User     *model.SessionUser `json:"user,omitempty"`
	Remote   bool               `json:"remote"`
}

// PomodoroResponse is the final state of a pomodoro session.
type PomodoroResponse struct {
	Mode string `json:"mode"`
	timer.Snapshot
}

// MessageResponse is a bare status acknowledgement.
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

// PrintTask outputs one task with a status verb ("created", "updated").
func (j *JSONFormatter) PrintTask(status string, t *model.Task) error {
	return j.JSON(TaskResponse{Status: status, Task: t})
}

// PrintTasks outputs a task list.
func (j *JSONFormatter) PrintTasks(tasks []*model.Task) error {
	return j.JSON(NewTasksResponse(tasks))
}

// PrintStats outputs task counters.
func (j *JSONFormatter) PrintStats(s model.Stats) error {
	return j.JSON(s)
}

// PrintCalendar outputs a month grid. When selected is set the tasks of
// that date are included.
func (j *JSONFormatter) PrintCalendar(m schedule.Month, counts map[string]int, selected string, tasks []*model.Task) error {
	resp := NewCalendarResponse(m, counts)
	resp.Selected = selected
	resp.Tasks = tasks
	return j.JSON(resp)
}

// PrintDay outputs a time-blocking layout.
func (j *JSONFormatter) PrintDay(d schedule.Day) error {
	return j.JSON(NewBlocksResponse(d))
}

// PrintSettings outputs pomodoro settings.
func (j *JSONFormatter) PrintSettings(s model.PomodoroSettings) error {
	return j.JSON(SettingsResponse{PomodoroSettings: s, LongBreakInterval: s.LongBreakInterval()})
}

// PrintUser outputs the session user.
func (j *JSONFormatter) PrintUser(u *model.SessionUser, remote bool) error {
	return j.JSON(UserResponse{LoggedIn: u != nil, User: u, Remote: remote})
}

// PrintPomodoro outputs a timer snapshot.
func (j *JSONFormatter) PrintPomodoro(s timer.Snapshot) error {
	return j.JSON(PomodoroResponse{Mode: s.Mode.String(), Snapshot: s})
}

// PrintHealth outputs an integrity report.
func (j *JSONFormatter) PrintHealth(r *storage.HealthReport) error {
	return j.JSON(r)
}

// PrintNotification outputs a reminder or agenda.
func (j *JSONFormatter) PrintNotification(n *model.Notification) error {
	return j.JSON(n)
}

// WebhookResponse is a configured webhook without its secret URL.
type WebhookResponse struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
}

// PrintWebhooks outputs configured webhooks with masked URLs.
func (j *JSONFormatter) PrintWebhooks(webhooks []model.Webhook) error {
	out := make([]WebhookResponse, len(webhooks))
	for i, w := range webhooks {
		out[i] = WebhookResponse{Name: w.Name, Type: w.ResolvedType(), Enabled: w.IsEnabled(), URL: w.MaskedURL()}
	}
	return j.JSON(out)
}

// PrintMessage outputs a status acknowledgement.
func (j *JSONFormatter) PrintMessage(status, message string) error {
	return j.JSON(MessageResponse{Status: status, Message: message})
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(errMsg, suggestion string) error {
	return j.JSON(ErrorResponse{
		Status:     "error",
		Error:      errMsg,
		Suggestion: suggestion,
	})
}
