// Package toast is a small publish/subscribe service for transient
// notifications. Each Service owns its own toast list and listeners.
package toast

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/manav03panchal/tasksync/internal/logging"
)

// DefaultDuration is how long a toast lives when no duration is given.
const DefaultDuration = 3 * time.Second

// Kind classifies a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Toast is one visible notification.
type Toast struct {
	ID       string        `json:"id"`
	Message  string        `json:"message"`
	Kind     Kind          `json:"type"`
	Duration time.Duration `json:"duration"`
}

// Listener receives the full toast list after every change.
type Listener func([]Toast)

type subscription struct {
	id int
	fn Listener
}

// Service holds the current toasts and notifies subscribers. Toasts are
// removed automatically when their duration elapses. Listeners are called
// without the service lock held, so they may call back into the service.
type Service struct {
	mu        sync.Mutex
	toasts    []Toast
	subs      []subscription
	nextSub   int
	timers    map[string]*time.Timer
	duration  time.Duration
	closed    bool
	afterFunc func(time.Duration, func()) *time.Timer
}

// New creates a service. A non-positive duration uses DefaultDuration.
func New(duration time.Duration) *Service {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Service{
		timers:    make(map[string]*time.Timer),
		duration:  duration,
		afterFunc: time.AfterFunc,
	}
}

// Subscribe registers fn and immediately calls it with the current list.
// The returned function removes the subscription.
func (s *Service) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	snapshot := slices.Clone(s.toasts)
	s.mu.Unlock()

	fn(snapshot)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

// Show adds a toast and schedules its removal. A non-positive duration
// uses the service default. It returns the toast id, or "" when the
// service is closed.
func (s *Service) Show(message string, kind Kind, duration time.Duration) string {
	if duration <= 0 {
		duration = s.duration
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ""
	}
	id := uuid.NewString()
	s.toasts = append(s.toasts, Toast{ID: id, Message: message, Kind: kind, Duration: duration})
	s.timers[id] = s.afterFunc(duration, func() { s.expire(id) })
	s.mu.Unlock()

	logging.DebugLog("toast shown", "toast_id", id, "kind", string(kind))
	s.notify()
	return id
}

// Success shows a success toast.
func (s *Service) Success(message string) string {
	return s.Show(message, KindSuccess, 0)
}

// Error shows an error toast.
func (s *Service) Error(message string) string {
	return s.Show(message, KindError, 0)
}

// Info shows an info toast.
func (s *Service) Info(message string) string {
	return s.Show(message, KindInfo, 0)
}

// Warning shows a warning toast.
func (s *Service) Warning(message string) string {
	return s.Show(message, KindWarning, 0)
}

// Remove drops the toast with the given id. Listeners are notified even
// when no toast matched.
func (s *Service) Remove(id string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.removeLocked(id)
	s.mu.Unlock()
	s.notify()
}

func (s *Service) expire(id string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if _, pending := s.timers[id]; !pending {
		s.mu.Unlock()
		return
	}
	s.removeLocked(id)
	s.mu.Unlock()
	s.notify()
}

func (s *Service) removeLocked(id string) {
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	s.toasts = slices.DeleteFunc(s.toasts, func(t Toast) bool { return t.ID == id })
}

// Clear removes every toast.
func (s *Service) Clear() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.toasts = nil
	s.mu.Unlock()
	s.notify()
}

// Toasts returns the current list.
func (s *Service) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.toasts)
}

// Close stops pending expiry timers and drops all listeners. Later calls
// are no-ops.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
	s.toasts = nil
	s.subs = nil
}

func (s *Service) notify() {
	s.mu.Lock()
	snapshot := slices.Clone(s.toasts)
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(snapshot)
	}
}
