// Package scheduler runs periodic task reminder and agenda checks.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/manav03panchal/tasksync/internal/logging"
	"github.com/manav03panchal/tasksync/internal/model"
)

// DefaultSpec runs checks at the top of every minute.
const DefaultSpec = "0 * * * * *"

// TaskSource loads the tasks to check.
type TaskSource func() ([]*model.Task, error)

// Deliver receives every notification a check produces.
type Deliver func(*model.Notification)

var specParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateSpec reports whether spec is a usable cron spec (with seconds).
func ValidateSpec(spec string) error {
	_, err := specParser.Parse(spec)
	return err
}

// Scheduler manages the check job using cron.
type Scheduler struct {
	cron    *cron.Cron
	spec    string
	source  TaskSource
	deliver Deliver
	now     func() time.Time

	mu              sync.Mutex
	lastCheck       time.Time
	reminderChecker *ReminderChecker
	agendaGenerator *AgendaGenerator
}

// NewScheduler creates a scheduler that runs checks on spec.
func NewScheduler(spec string, source TaskSource, deliver Deliver) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	return &Scheduler{
		cron:    cron.New(cron.WithParser(specParser)),
		spec:    spec,
		source:  source,
		deliver: deliver,
		now:     time.Now,
	}
}

// SetClock replaces the clock used by checks.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}

// SetReminderChecker sets the reminder checker.
func (s *Scheduler) SetReminderChecker(checker *ReminderChecker) {
	s.reminderChecker = checker
}

// SetAgendaGenerator sets the daily agenda generator.
func (s *Scheduler) SetAgendaGenerator(generator *AgendaGenerator) {
	s.agendaGenerator = generator
}

// Start schedules the checks and starts cron in its own goroutine.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runScheduled); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", s.spec, err)
	}
	s.cron.Start()
	logging.DebugLog("scheduler started", "schedule", s.spec, "next", s.NextRun())
	return nil
}

// Stop stops the scheduler and waits for a running check to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logging.DebugLog("scheduler stopped")
}

func (s *Scheduler) runScheduled() {
	if _, err := s.RunChecks(); err != nil {
		logging.Warn("reminder check failed", logging.KeyError, err)
	}
}

// RunChecks loads tasks, runs every configured check once, and delivers
// the resulting notifications. It returns how many were delivered.
func (s *Scheduler) RunChecks() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !s.lastCheck.IsZero() {
		logging.DebugLog("running checks", "elapsed", now.Sub(s.lastCheck).Round(time.Second))
	}
	s.lastCheck = now

	if s.reminderChecker == nil && s.agendaGenerator == nil {
		return 0, nil
	}

	tasks, err := s.source()
	if err != nil {
		return 0, err
	}

	var notifications []*model.Notification
	if s.reminderChecker != nil {
		notifications = append(notifications, s.reminderChecker.Check(tasks, now)...)
	}
	if s.agendaGenerator != nil {
		if n := s.agendaGenerator.Check(tasks, now); n != nil {
			notifications = append(notifications, n)
		}
	}

	for _, n := range notifications {
		if s.deliver != nil {
			s.deliver(n)
		}
	}
	logging.DebugLog("checks complete", logging.KeyCount, len(notifications))
	return len(notifications), nil
}

// NextRun returns the next scheduled check, or the zero time before Start.
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}

	next := entries[0].Next
	for _, e := range entries[1:] {
		if e.Next.Before(next) {
			next = e.Next
		}
	}
	return next
}
