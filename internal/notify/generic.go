package notify

import (
	"bytes"
	"encoding/json"
	"strings"
	"text/template"
	"time"

	"github.com/manav03panchal/tasksync/internal/model"
)

// GenericFormatter posts a flat JSON document, or the output of a
// user-supplied text/template when one is configured.
//
// Template data: .Type .Title .Message .TaskID .Fields (map by name)
// .Timestamp (time.Time) .Color.
type GenericFormatter struct {
	Template string
}

func NewGenericFormatter(template string) *GenericFormatter {
	return &GenericFormatter{Template: template}
}

type genericPayload struct {
	Source    string            `json:"source"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	TaskID    string            `json:"task_id,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp string            `json:"timestamp"`
	Color     string            `json:"color"`
}

func (f *GenericFormatter) Format(n *model.Notification) ([]byte, error) {
	var fields map[string]string
	if len(n.Fields) > 0 {
		fields = make(map[string]string, len(n.Fields))
		for _, fl := range n.Fields {
			fields[fl.Name] = fl.Value
		}
	}

	if f.Template == "" {
		return json.Marshal(genericPayload{
			Source:    strings.ToLower(Brand),
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			TaskID:    n.TaskID,
			Fields:    fields,
			Timestamp: n.Timestamp.UTC().Format(time.RFC3339),
			Color:     colorToHex(colorOf(n)),
		})
	}

	tmpl, err := template.New("webhook").Option("missingkey=zero").Parse(f.Template)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]any{
		"Type":      string(n.Type),
		"Title":     n.Title,
		"Message":   n.Message,
		"TaskID":    n.TaskID,
		"Fields":    fields,
		"Timestamp": n.Timestamp,
		"Color":     colorOf(n),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ContentType is JSON unless a template that does not produce an object or
// array is configured.
func (f *GenericFormatter) ContentType() string {
	tmpl := strings.TrimSpace(f.Template)
	if tmpl == "" || strings.HasPrefix(tmpl, "{") || strings.HasPrefix(tmpl, "[") {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}
