package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/tasksync/internal/i18n"
	"github.com/manav03panchal/tasksync/internal/model"
)

var base = time.Date(2026, 10, 17, 9, 52, 0, 0, time.Local)

func task(id, date, clock string, p model.Priority) *model.Task {
	return &model.Task{
		ID:       id,
		Title:    "Task " + id,
		Date:     date,
		Time:     clock,
		Priority: p,
		Status:   model.StatusPending,
	}
}

// =============================================================================
// Scheduler Tests
// =============================================================================

func TestValidateSpec(t *testing.T) {
	assert.NoError(t, ValidateSpec(DefaultSpec))
	assert.NoError(t, ValidateSpec("@every 30s"))
	assert.NoError(t, ValidateSpec("*/15 * * * * *"))
	assert.Error(t, ValidateSpec("not a spec"))
	assert.Error(t, ValidateSpec("* * * * *"))
}

func TestSchedulerStartStop(t *testing.T) {
	s := NewScheduler("", func() ([]*model.Task, error) { return nil, nil }, nil)
	assert.True(t, s.NextRun().IsZero())

	require.NoError(t, s.Start())
	assert.False(t, s.NextRun().IsZero())
	s.Stop()
}

func TestSchedulerStartInvalidSpec(t *testing.T) {
	s := NewScheduler("bogus", nil, nil)
	err := s.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestSchedulerRunChecksDelivers(t *testing.T) {
	tasks := []*model.Task{
		task("a", "2026-10-17", "10:00", model.PriorityHigh),
		task("b", "2026-10-17", "11:00", model.PriorityLow),
	}
	var delivered []*model.Notification
	s := NewScheduler(DefaultSpec,
		func() ([]*model.Task, error) { return tasks, nil },
		func(n *model.Notification) { delivered = append(delivered, n) })
	s.SetClock(func() time.Time { return base })
	s.SetReminderChecker(NewReminderChecker(10*time.Minute, i18n.English))

	n, err := s.RunChecks()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, delivered, 1)
	assert.Equal(t, "a", delivered[0].TaskID)

	n, err = s.RunChecks()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSchedulerRunChecksSourceError(t *testing.T) {
	s := NewScheduler(DefaultSpec, func() ([]*model.Task, error) { return nil, errors.New("locked") }, nil)
	s.SetReminderChecker(NewReminderChecker(0, i18n.English))

	_, err := s.RunChecks()
	assert.EqualError(t, err, "locked")
}

func TestSchedulerRunChecksWithoutCheckers(t *testing.T) {
	called := false
	s := NewScheduler(DefaultSpec, func() ([]*model.Task, error) {
		called = true
		return nil, nil
	}, nil)

	n, err := s.RunChecks()
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.False(t, called)
}

// =============================================================================
// ReminderChecker Tests
// =============================================================================

func TestReminderCheckerWindow(t *testing.T) {
	c := NewReminderChecker(10*time.Minute, i18n.English)
	tasks := []*model.Task{
		task("past", "2026-10-17", "09:30", model.PriorityMedium),
		task("now", "2026-10-17", "09:52", model.PriorityMedium),
		task("soon", "2026-10-17", "10:02", model.PriorityMedium),
		task("later", "2026-10-17", "10:03", model.PriorityMedium),
		task("tomorrow", "2026-10-18", "10:00", model.PriorityMedium),
		task("bad", "2026-10-17", "soon", model.PriorityMedium),
	}
	done := task("done", "2026-10-17", "10:00", model.PriorityMedium)
	done.Status = model.StatusCompleted
	tasks = append(tasks, done)

	got := c.Check(tasks, base)
	require.Len(t, got, 1)
	assert.Equal(t, "soon", got[0].TaskID)
}

func TestReminderCheckerOrdersAndFormats(t *testing.T) {
	c := NewReminderChecker(time.Hour, i18n.English)
	late := task("late", "2026-10-17", "10:40", model.PriorityLow)
	early := task("early", "2026-10-17", "10:00", model.PriorityHigh)
	early.Description = "Room 4"

	got := c.Check([]*model.Task{late, early}, base)
	require.Len(t, got, 2)
	assert.Equal(t, "early", got[0].TaskID)
	assert.Equal(t, "late", got[1].TaskID)

	n := got[0]
	assert.Equal(t, model.NotifyReminder, n.Type)
	assert.Equal(t, "Task early", n.Title)
	assert.Equal(t, "Starts in 8m", n.Message)
	assert.Equal(t, model.ColorError, n.Color)
	v, _ := n.Field("Time")
	assert.Equal(t, "10:00 AM", v)
	v, _ = n.Field("Priority")
	assert.Equal(t, "High", v)
	v, _ = n.Field("Description")
	assert.Equal(t, "Room 4", v)
	_, ok := got[1].Field("Description")
	assert.False(t, ok)
}

func TestReminderCheckerRearmsWhenMoved(t *testing.T) {
	c := NewReminderChecker(10*time.Minute, i18n.English)
	tk := task("a", "2026-10-17", "10:00", model.PriorityMedium)

	require.Len(t, c.Check([]*model.Task{tk}, base), 1)
	assert.Empty(t, c.Check([]*model.Task{tk}, base.Add(time.Minute)))

	tk.Time = "10:01"
	assert.Len(t, c.Check([]*model.Task{tk}, base.Add(time.Minute)), 1)
}

func TestReminderCheckerLocalized(t *testing.T) {
	c := NewReminderChecker(10*time.Minute, i18n.Russian)
	got := c.Check([]*model.Task{task("a", "2026-10-17", "10:00", model.PriorityLow)}, base)
	require.Len(t, got, 1)
	assert.Equal(t, "Начало через 8m", got[0].Message)
	v, ok := got[0].Field("Приоритет")
	assert.True(t, ok)
	assert.Equal(t, "Низкий", v)
}

func TestReminderCheckerCleanupNotified(t *testing.T) {
	c := NewReminderChecker(0, i18n.English)
	assert.Equal(t, DefaultLead, c.Lead())

	c.notified["old"] = base.Add(-25 * time.Hour)
	c.notified["recent"] = base.Add(-time.Hour)
	c.cleanupNotified(base)

	assert.NotContains(t, c.notified, "old")
	assert.Contains(t, c.notified, "recent")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{30 * time.Second, "1m"},
		{8 * time.Minute, "8m"},
		{8*time.Minute + time.Second, "9m"},
		{time.Hour, "1h"},
		{75 * time.Minute, "1h 15m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatDuration(tt.d), tt.d.String())
	}
}

// =============================================================================
// AgendaGenerator Tests
// =============================================================================

func TestNewAgendaGeneratorInvalid(t *testing.T) {
	_, err := NewAgendaGenerator("breakfast", i18n.English)
	assert.Error(t, err)

	g, err := NewAgendaGenerator("9:50 AM", i18n.English)
	require.NoError(t, err)
	assert.Equal(t, 9*60+50, g.at)
}

func TestAgendaGeneratorWindow(t *testing.T) {
	g, err := NewAgendaGenerator("09:50", i18n.English)
	require.NoError(t, err)

	assert.Nil(t, g.Check(nil, base.Add(-3*time.Minute)))
	assert.NotNil(t, g.Check(nil, base))
	assert.Nil(t, g.Check(nil, base.Add(time.Minute)), "sent once per day")
	assert.Nil(t, g.Check(nil, base.Add(10*time.Minute)))
	assert.NotNil(t, g.Check(nil, base.Add(24*time.Hour)))
}

func TestAgendaGeneratorBuild(t *testing.T) {
	g, err := NewAgendaGenerator("08:00", i18n.English)
	require.NoError(t, err)

	done := task("c", "2026-10-17", "08:00", model.PriorityLow)
	done.Status = model.StatusCompleted
	tasks := []*model.Task{
		task("b", "2026-10-17", "14:00", model.PriorityLow),
		task("a", "2026-10-17", "09:00", model.PriorityHigh),
		task("x", "2026-10-18", "09:00", model.PriorityHigh),
		done,
	}

	n := g.Build(tasks, base)
	assert.Equal(t, model.NotifyAgenda, n.Type)
	assert.Equal(t, "Today's agenda · Sat, Oct 17", n.Title)
	assert.Equal(t, "9:00 AM  Task a (High)\n2:00 PM  Task b (Low)", n.Message)
	v, _ := n.Field("Pending")
	assert.Equal(t, "2", v)
	v, _ = n.Field("Completed")
	assert.Equal(t, "1", v)
}

func TestAgendaGeneratorBuildEmpty(t *testing.T) {
	g, err := NewAgendaGenerator("08:00", i18n.English)
	require.NoError(t, err)

	n := g.Build(nil, base)
	assert.Equal(t, "No tasks for today", n.Message)
}
