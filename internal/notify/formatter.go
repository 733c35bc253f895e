// Package notify delivers task reminders and agendas to chat webhooks.
package notify

import (
	"github.com/manav03panchal/tasksync/internal/model"
)

// Brand names the sender in payloads and the User-Agent.
const Brand = "Tasksync"

// Formatter turns a notification into a request body for one kind of
// webhook.
type Formatter interface {
	Format(n *model.Notification) ([]byte, error)
	ContentType() string
}

var formatters = map[string]func() Formatter{
	model.WebhookTypeDiscord: func() Formatter { return &DiscordFormatter{} },
	model.WebhookTypeSlack:   func() Formatter { return &SlackFormatter{} },
	model.WebhookTypeTeams:   func() Formatter { return &TeamsFormatter{} },
}

// GetFormatter returns the formatter for webhookType; unknown types get
// the generic JSON formatter.
func GetFormatter(webhookType string) Formatter {
	if mk, ok := formatters[webhookType]; ok {
		return mk()
	}
	return &GenericFormatter{}
}

// FormatterFor picks the formatter for w, applying its template when w
// resolves to a generic webhook.
func FormatterFor(w model.Webhook) Formatter {
	t := w.ResolvedType()
	if _, typed := formatters[t]; !typed && w.Template != "" {
		return NewGenericFormatter(w.Template)
	}
	return GetFormatter(t)
}

func colorOf(n *model.Notification) int {
	if n.Color == 0 {
		return model.DefaultColorForType(n.Type)
	}
	return n.Color
}
