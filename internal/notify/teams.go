package notify

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/manav03panchal/tasksync/internal/model"
)

// TeamsFormatter renders legacy Office 365 connector MessageCards.
type TeamsFormatter struct{}

type teamsCard struct {
	Type       string         `json:"@type"`
	Context    string         `json:"@context"`
	ThemeColor string         `json:"themeColor,omitempty"`
	Summary    string         `json:"summary"`
	Title      string         `json:"title"`
	Sections   []teamsSection `json:"sections"`
}

type teamsSection struct {
	ActivityTitle    string      `json:"activityTitle"`
	ActivitySubtitle string      `json:"activitySubtitle,omitempty"`
	Text             string      `json:"text,omitempty"`
	Facts            []teamsFact `json:"facts,omitempty"`
	Markdown         bool        `json:"markdown"`
}

type teamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// teamsEscape keeps task text from being read as connector markdown.
var teamsEscape = strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "#", `\#`, "[", `\[`, "]", `\]`)

// Format builds a card whose title is the task (or agenda) title and whose
// single section carries the message and fields as facts.
func (f *TeamsFormatter) Format(n *model.Notification) ([]byte, error) {
	section := teamsSection{
		ActivityTitle:    n.TypeLabel(),
		ActivitySubtitle: fmt.Sprintf("%s · %s", Brand, n.Timestamp.Format("Mon Jan 2, 15:04")),
		Text:             strings.ReplaceAll(teamsEscape.Replace(n.Message), "\n", "<br>"),
		Markdown:         true,
	}
	for _, field := range n.Fields {
		section.Facts = append(section.Facts, teamsFact{Name: field.Name, Value: teamsEscape.Replace(field.Value)})
	}

	return json.Marshal(teamsCard{
		Type:       "MessageCard",
		Context:    "https://schema.org/extensions",
		ThemeColor: fmt.Sprintf("%06X", colorOf(n)),
		Summary:    n.Title,
		Title:      teamsEscape.Replace(n.Title),
		Sections:   []teamsSection{section},
	})
}

// ContentType returns the content type for Teams webhooks.
func (f *TeamsFormatter) ContentType() string {
	return "application/json"
}
