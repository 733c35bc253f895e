package model

import (
	"slices"
	"time"
)

// NotificationType tells reminders, agendas and webhook tests apart.
type NotificationType string

const (
	NotifyReminder NotificationType = "reminder"
	NotifyAgenda   NotificationType = "agenda"
	NotifyTest     NotificationType = "test"
)

// Embed colors, as 0xRRGGBB.
const (
	ColorSuccess = 0x57F287
	ColorWarning = 0xFEE75C
	ColorInfo    = 0x5865F2
	ColorError   = 0xED4245
	ColorPrimary = 0x3498DB
)

type notificationStyle struct {
	label string
	color int
}

var notificationStyles = map[NotificationType]notificationStyle{
	NotifyReminder: {"Task Reminder", ColorWarning},
	NotifyAgenda:   {"Daily Agenda", ColorInfo},
	NotifyTest:     {"Test Notification", ColorPrimary},
}

// Field is a labelled value shown next to the message.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Notification is what the watcher prints and sends to webhooks.
type Notification struct {
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Fields    []Field          `json:"fields,omitempty"`
	TaskID    string           `json:"task_id,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Color     int              `json:"color,omitempty"`
}

func NewNotification(t NotificationType, title, message string, at time.Time) *Notification {
	return &Notification{
		Type:      t,
		Title:     title,
		Message:   message,
		Timestamp: at,
		Color:     DefaultColorForType(t),
	}
}

// WithField appends a field; fields render in the order added.
func (n *Notification) WithField(name, value string) *Notification {
	n.Fields = append(n.Fields, Field{Name: name, Value: value})
	return n
}

func (n *Notification) WithColor(color int) *Notification {
	n.Color = color
	return n
}

// Field looks up a field value by name.
func (n *Notification) Field(name string) (string, bool) {
	i := slices.IndexFunc(n.Fields, func(f Field) bool { return f.Name == name })
	if i < 0 {
		return "", false
	}
	return n.Fields[i].Value, true
}

// TypeLabel is the English heading for the notification type.
func (n *Notification) TypeLabel() string {
	if s, ok := notificationStyles[n.Type]; ok {
		return s.label
	}
	return "Notification"
}

func DefaultColorForType(t NotificationType) int {
	if s, ok := notificationStyles[t]; ok {
		return s.color
	}
	return ColorInfo
}

// ColorForPriority colors reminders by urgency: red for High, green for
// Low and yellow otherwise.
func ColorForPriority(p Priority) int {
	switch p {
	case PriorityHigh:
		return ColorError
	case PriorityLow:
		return ColorSuccess
	}
	return ColorWarning
}
