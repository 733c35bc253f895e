package scheduler

import (
	"fmt"
	"time"

	"github.com/manav03panchal/tasksync/internal/i18n"
	"github.com/manav03panchal/tasksync/internal/model"
	"github.com/manav03panchal/tasksync/internal/schedule"
)

// DefaultLead is how long before a task starts its reminder is sent.
const DefaultLead = 10 * time.Minute

// ReminderChecker finds pending tasks that start within the lead window.
// Each task start is reminded once; moving the task re-arms it.
type ReminderChecker struct {
	lead     time.Duration
	lang     i18n.Language
	notified map[string]time.Time // reminder key -> task start
}

// NewReminderChecker creates a reminder checker.
func NewReminderChecker(lead time.Duration, lang i18n.Language) *ReminderChecker {
	if lead <= 0 {
		lead = DefaultLead
	}
	return &ReminderChecker{
		lead:     lead,
		lang:     lang,
		notified: make(map[string]time.Time),
	}
}

// Lead returns the reminder lead time.
func (c *ReminderChecker) Lead() time.Duration {
	return c.lead
}

// Check returns reminders for tasks starting in (now, now+lead], soonest
// first, and marks them as sent.
func (c *ReminderChecker) Check(tasks []*model.Task, now time.Time) []*model.Notification {
	c.cleanupNotified(now)

	var notifications []*model.Notification
	for _, task := range schedule.Sort(tasks, schedule.SortByDate) {
		if task.IsCompleted() {
			continue
		}
		start, ok := task.StartsAt(now.Location())
		if !ok {
			continue
		}

		until := start.Sub(now)
		if until <= 0 || until > c.lead {
			continue
		}

		key := reminderKey(task)
		if c.wasNotified(key) {
			continue
		}

		notifications = append(notifications, c.createNotification(task, until, now))
		c.notified[key] = start
	}
	return notifications
}

func reminderKey(t *model.Task) string {
	return t.ID + "@" + t.Date + " " + t.Time
}

func (c *ReminderChecker) wasNotified(key string) bool {
	_, ok := c.notified[key]
	return ok
}

// cleanupNotified forgets reminders for tasks that started over a day ago.
func (c *ReminderChecker) cleanupNotified(now time.Time) {
	cutoff := now.Add(-24 * time.Hour)
	for key, start := range c.notified {
		if start.Before(cutoff) {
			delete(c.notified, key)
		}
	}
}

func (c *ReminderChecker) createNotification(task *model.Task, until time.Duration, now time.Time) *model.Notification {
	message := fmt.Sprintf("%s %s", i18n.T(c.lang, "notifications.startsIn"), formatDuration(until))

	n := model.NewNotification(model.NotifyReminder, task.Title, message, now).
		WithField(i18n.T(c.lang, "tasks.time"), model.FormatTime(task.Time)).
		WithField(i18n.T(c.lang, "tasks.priority"), priorityLabel(c.lang, task.Priority)).
		WithColor(model.ColorForPriority(task.Priority))
	if task.Description != "" {
		n.WithField(i18n.T(c.lang, "tasks.description"), task.Description)
	}
	n.TaskID = task.ID
	return n
}

func priorityLabel(lang i18n.Language, p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return i18n.T(lang, "tasks.high")
	case model.PriorityLow:
		return i18n.T(lang, "tasks.low")
	default:
		return i18n.T(lang, "tasks.medium")
	}
}

// formatDuration renders d rounded up to the minute, e.g. "1h 5m".
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if rem := d % time.Minute; rem != 0 {
		d += time.Minute - rem
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", minutes)
}
