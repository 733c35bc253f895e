package notify

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/manav03panchal/tasksync/internal/model"
	"github.com/manav03panchal/tasksync/internal/validate"
)

// Block Kit limits.
const (
	slackHeaderMax  = 150
	slackSectionMax = 3000
	slackFieldMax   = 2000
	slackFieldsMax  = 10
)

// SlackFormatter renders a notification as Block Kit blocks inside a
// colored attachment, with Text as the push notification fallback.
type SlackFormatter struct{}

type slackMessage struct {
	Text        string            `json:"text"`
	Attachments []slackAttachment `json:"attachments"`
}

type slackAttachment struct {
	Color  string       `json:"color"`
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string      `json:"type"`
	Text     *slackText  `json:"text,omitempty"`
	Fields   []slackText `json:"fields,omitempty"`
	Elements []slackText `json:"elements,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func mrkdwn(s string) slackText { return slackText{Type: "mrkdwn", Text: s} }

func (f *SlackFormatter) Format(n *model.Notification) ([]byte, error) {
	blocks := []slackBlock{{
		Type: "header",
		Text: &slackText{Type: "plain_text", Text: validate.TruncateString(n.Title, slackHeaderMax)},
	}}
	if n.Message != "" {
		text := mrkdwn(validate.TruncateString(slackEscape(n.Message), slackSectionMax))
		blocks = append(blocks, slackBlock{Type: "section", Text: &text})
	}

	var fields []slackText
	for i, fl := range n.Fields {
		if i == slackFieldsMax {
			break
		}
		text := fmt.Sprintf("*%s*\n%s", slackEscape(fl.Name), slackEscape(fl.Value))
		fields = append(fields, mrkdwn(validate.TruncateString(text, slackFieldMax)))
	}
	if len(fields) > 0 {
		blocks = append(blocks, slackBlock{Type: "section", Fields: fields})
	}

	blocks = append(blocks, slackBlock{
		Type:     "context",
		Elements: []slackText{mrkdwn(fmt.Sprintf("%s · %s · <!date^%d^{date_short_pretty} {time}|%s>",
			Brand, n.TypeLabel(), n.Timestamp.Unix(), n.Timestamp.Format("Jan 2, 15:04")))},
	})

	return json.Marshal(slackMessage{
		Text:        n.Title,
		Attachments: []slackAttachment{{Color: colorToHex(colorOf(n)), Blocks: blocks}},
	})
}

func (f *SlackFormatter) ContentType() string {
	return "application/json"
}

func colorToHex(color int) string {
	return fmt.Sprintf("#%06X", color)
}

var slackEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// slackEscape escapes the three characters mrkdwn reserves for links and
// mentions.
func slackEscape(s string) string {
	return slackEscaper.Replace(s)
}
