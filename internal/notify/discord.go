package notify

import (
	"encoding/json"
	"time"

	"github.com/manav03panchal/tasksync/internal/model"
	"github.com/manav03panchal/tasksync/internal/validate"
)

// Discord rejects embeds over these sizes.
const (
	discordTitleMax       = 256
	discordDescriptionMax = 4096
	discordFieldNameMax   = 256
	discordFieldValueMax  = 1024
	discordFieldsMax      = 25
	discordInlineMax      = 40
)

// DiscordFormatter renders a notification as a single Discord embed.
type DiscordFormatter struct{}

type discordMessage struct {
	Username string         `json:"username"`
	Embeds   []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Color       int            `json:"color"`
	Fields      []discordField `json:"fields,omitempty"`
	Footer      discordFooter  `json:"footer"`
	Timestamp   string         `json:"timestamp"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text string `json:"text"`
}

func (f *DiscordFormatter) Format(n *model.Notification) ([]byte, error) {
	embed := discordEmbed{
		Title:       validate.TruncateString(n.Title, discordTitleMax),
		Description: validate.TruncateString(n.Message, discordDescriptionMax),
		Color:       colorOf(n),
		Footer:      discordFooter{Text: n.TypeLabel()},
		Timestamp:   n.Timestamp.UTC().Format(time.RFC3339),
	}

	fields := n.Fields
	if len(fields) > discordFieldsMax {
		fields = fields[:discordFieldsMax]
	}
	for _, fl := range fields {
		value := validate.TruncateString(fl.Value, discordFieldValueMax)
		embed.Fields = append(embed.Fields, discordField{
			Name:   validate.TruncateString(fl.Name, discordFieldNameMax),
			Value:  value,
			Inline: len(value) <= discordInlineMax,
		})
	}

	return json.Marshal(discordMessage{Username: Brand, Embeds: []discordEmbed{embed}})
}

func (f *DiscordFormatter) ContentType() string {
	return "application/json"
}
