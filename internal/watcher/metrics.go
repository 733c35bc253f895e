package watcher

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics counts what a watcher has done since it started.
type Metrics struct {
	checks         atomic.Int64
	notifications  atomic.Int64
	webhooksSent   atomic.Int64
	webhooksFailed atomic.Int64
	errorsTotal    atomic.Int64

	mu               sync.RWMutex
	startedAt        time.Time
	webhookLatencyMs int64
	lastCheck        time.Time
	lastError        string
	lastErrorAt      time.Time
}

// NewMetrics creates a metrics tracker started at now.
func NewMetrics(now time.Time) *Metrics {
	return &Metrics{startedAt: now}
}

// Snapshot is a point-in-time view of the metrics.
type Snapshot struct {
	StartedAt        time.Time  `json:"started_at"`
	Checks           int64      `json:"checks"`
	Notifications    int64      `json:"notifications"`
	WebhooksSent     int64      `json:"webhooks_sent"`
	WebhooksFailed   int64      `json:"webhooks_failed"`
	ErrorsTotal      int64      `json:"errors_total"`
	WebhookLatencyMs int64      `json:"webhook_latency_ms,omitempty"`
	LastCheck        *time.Time `json:"last_check,omitempty"`
	LastError        string     `json:"last_error,omitempty"`
	LastErrorAt      *time.Time `json:"last_error_at,omitempty"`
}

// Snapshot returns a copy of the current metrics.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		StartedAt:        m.startedAt,
		Checks:           m.checks.Load(),
		Notifications:    m.notifications.Load(),
		WebhooksSent:     m.webhooksSent.Load(),
		WebhooksFailed:   m.webhooksFailed.Load(),
		ErrorsTotal:      m.errorsTotal.Load(),
		WebhookLatencyMs: m.webhookLatencyMs,
		LastError:        m.lastError,
	}
	if !m.lastCheck.IsZero() {
		t := m.lastCheck
		snap.LastCheck = &t
	}
	if !m.lastErrorAt.IsZero() {
		t := m.lastErrorAt
		snap.LastErrorAt = &t
	}
	return snap
}

// RecordCheck records one check cycle at now.
func (m *Metrics) RecordCheck(now time.Time) {
	m.checks.Add(1)

	m.mu.Lock()
	m.lastCheck = now
	m.mu.Unlock()
}

// RecordNotification records a notification shown in the terminal.
func (m *Metrics) RecordNotification() {
	m.notifications.Add(1)
}

// RecordWebhookSent records a successful webhook delivery.
func (m *Metrics) RecordWebhookSent(latency time.Duration) {
	m.webhooksSent.Add(1)

	m.mu.Lock()
	m.webhookLatencyMs = latency.Milliseconds()
	m.mu.Unlock()
}

// RecordWebhookFailed records a failed webhook delivery.
func (m *Metrics) RecordWebhookFailed(err error, now time.Time) {
	m.webhooksFailed.Add(1)
	m.RecordError(err, now)
}

// RecordError records an error.
func (m *Metrics) RecordError(err error, now time.Time) {
	m.errorsTotal.Add(1)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastError = err.Error()
	m.lastErrorAt = now
}
