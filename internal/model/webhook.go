package model

import (
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/logging"
)

// Webhook types. Each selects a payload formatter.
const (
	WebhookTypeDiscord = "discord"
	WebhookTypeSlack   = "slack"
	WebhookTypeTeams   = "teams"
	WebhookTypeGeneric = "generic"
)

// MaxWebhookNameLength bounds webhook names.
const MaxWebhookNameLength = 50

// Webhook is a reminder delivery target stored under reminders.webhooks in
// the config file. Names are matched case-insensitively.
type Webhook struct {
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type,omitempty" json:"type"`
	URL      string `yaml:"url" json:"url"`
	Disabled bool   `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	// Template is a text/template body for generic webhooks.
	Template string `yaml:"template,omitempty" json:"template,omitempty"`
}

func (w Webhook) IsEnabled() bool {
	return !w.Disabled && w.URL != ""
}

// ResolvedType returns the configured type, falling back to detection from
// the URL.
func (w Webhook) ResolvedType() string {
	if w.Type == "" {
		return DetectWebhookType(w.URL)
	}
	return strings.ToLower(w.Type)
}

// MaskedURL is the URL safe to print: webhook paths carry their secret.
func (w Webhook) MaskedURL() string {
	return logging.MaskURL(w.URL)
}

// Validate checks the name, URL and type, returning a UserError naming the
// first bad field.
func (w Webhook) Validate() error {
	if !IsValidWebhookName(w.Name) {
		return errors.NewUserErrorWithField("name", w.Name, "invalid webhook name",
			"Use letters, digits, dashes and underscores (max 50 characters).")
	}
	u, err := url.Parse(w.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.NewUserErrorWithField("url", w.MaskedURL(), "invalid webhook URL",
			"Use a full http:// or https:// URL.")
	}
	if w.Type != "" && !IsValidWebhookType(w.Type) {
		return errors.NewUserErrorWithField("type", w.Type, "invalid webhook type",
			"Use one of: "+strings.Join(ValidWebhookTypes(), ", ")+".")
	}
	return nil
}

func ValidWebhookTypes() []string {
	return []string{WebhookTypeDiscord, WebhookTypeSlack, WebhookTypeTeams, WebhookTypeGeneric}
}

func IsValidWebhookType(t string) bool {
	return slices.Contains(ValidWebhookTypes(), strings.ToLower(t))
}

var webhookNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

func IsValidWebhookName(name string) bool {
	return len(name) <= MaxWebhookNameLength && webhookNamePattern.MatchString(name)
}

// DetectWebhookType infers the type from the webhook host, defaulting to
// generic.
func DetectWebhookType(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return WebhookTypeGeneric
	}
	host := strings.ToLower(u.Hostname())
	path := strings.ToLower(u.Path)

	switch {
	case (host == "discord.com" || host == "discordapp.com" || strings.HasSuffix(host, ".discord.com")) &&
		strings.HasPrefix(path, "/api/webhooks"):
		return WebhookTypeDiscord
	case host == "hooks.slack.com":
		return WebhookTypeSlack
	case strings.HasSuffix(host, "webhook.office.com") || host == "outlook.office.com":
		return WebhookTypeTeams
	default:
		return WebhookTypeGeneric
	}
}
