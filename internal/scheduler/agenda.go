package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/i18n"
	"github.com/manav03panchal/tasksync/internal/model"
	"github.com/manav03panchal/tasksync/internal/schedule"
)

// agendaWindow is how long after the configured time the agenda may still
// be sent.
const agendaWindow = 5 * time.Minute

// AgendaGenerator sends the day's task list once a day at a set time.
type AgendaGenerator struct {
	at       int // minutes since midnight
	lang     i18n.Language
	lastSent time.Time
}

// NewAgendaGenerator parses at ("08:30" or "8:30 AM").
func NewAgendaGenerator(at string, lang i18n.Language) (*AgendaGenerator, error) {
	minutes, ok := model.ClockMinutes(at)
	if !ok {
		return nil, errors.NewUserErrorWithField("daily_agenda", at,
			"Invalid daily agenda time", "Use HH:MM, for example 08:30")
	}
	return &AgendaGenerator{at: minutes, lang: lang}, nil
}

// Check returns the agenda when now falls in the send window and it has
// not been sent today, otherwise nil.
func (g *AgendaGenerator) Check(tasks []*model.Task, now time.Time) *model.Notification {
	if !g.shouldSend(now) {
		return nil
	}
	g.lastSent = now
	return g.Build(tasks, now)
}

func (g *AgendaGenerator) shouldSend(now time.Time) bool {
	target := time.Date(now.Year(), now.Month(), now.Day(), g.at/60, g.at%60, 0, 0, now.Location())
	if now.Before(target) || now.After(target.Add(agendaWindow)) {
		return false
	}

	if !g.lastSent.IsZero() && model.DateString(g.lastSent) == model.DateString(now) {
		return false
	}
	return true
}

// Build renders the agenda for now's date.
func (g *AgendaGenerator) Build(tasks []*model.Task, now time.Time) *model.Notification {
	today := schedule.ForDate(tasks, model.DateString(now))

	var lines []string
	pending, completed := 0, 0
	for _, t := range today {
		if t.IsCompleted() {
			completed++
			continue
		}
		pending++
		lines = append(lines, fmt.Sprintf("%s  %s (%s)",
			model.FormatTime(t.Time), t.Title, priorityLabel(g.lang, t.Priority)))
	}

	message := strings.Join(lines, "\n")
	if pending == 0 {
		message = i18n.T(g.lang, "tasks.noTasksToday")
	}

	title := fmt.Sprintf("%s · %s", i18n.T(g.lang, "notifications.todayAgenda"), now.Format("Mon, Jan 2"))
	return model.NewNotification(model.NotifyAgenda, title, message, now).
		WithField(i18n.T(g.lang, "tasks.pending"), strconv.Itoa(pending)).
		WithField(i18n.T(g.lang, "tasks.completed"), strconv.Itoa(completed))
}
