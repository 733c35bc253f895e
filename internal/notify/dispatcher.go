package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/manav03panchal/tasksync/internal/logging"
	"github.com/manav03panchal/tasksync/internal/model"
)

// Dispatcher sends notifications to every enabled webhook.
type Dispatcher struct {
	webhooks   []model.Webhook
	httpClient *HTTPClient
}

// NewDispatcher creates a dispatcher over the configured webhooks.
func NewDispatcher(webhooks []model.Webhook, client *HTTPClient) *Dispatcher {
	if client == nil {
		client = NewHTTPClient(0, 2)
	}
	return &Dispatcher{webhooks: webhooks, httpClient: client}
}

// DispatchResult contains the result of dispatching to a single webhook.
type DispatchResult struct {
	WebhookName string
	Success     bool
	StatusCode  int
	Attempts    int
	Duration    time.Duration
	Error       error
}

// Enabled returns the webhooks that receive notifications.
func (d *Dispatcher) Enabled() []model.Webhook {
	var out []model.Webhook
	for _, w := range d.webhooks {
		if w.IsEnabled() {
			out = append(out, w)
		}
	}
	return out
}

// HasEnabledWebhooks returns true if there are any enabled webhooks.
func (d *Dispatcher) HasEnabledWebhooks() bool {
	return len(d.Enabled()) > 0
}

// SendNotification sends n to all enabled webhooks concurrently. Results
// are in webhook order.
func (d *Dispatcher) SendNotification(ctx context.Context, n *model.Notification) []DispatchResult {
	webhooks := d.Enabled()
	if len(webhooks) == 0 {
		return nil
	}

	ctx = logging.EnsureDeliveryID(ctx)
	logging.Delivery(ctx, "dispatching notification",
		"type", string(n.Type), logging.KeyTaskID, n.TaskID, logging.KeyCount, len(webhooks))

	var wg sync.WaitGroup
	results := make([]DispatchResult, len(webhooks))
	for i, webhook := range webhooks {
		wg.Add(1)
		go func(idx int, wh model.Webhook) {
			defer wg.Done()
			results[idx] = d.send(ctx, n, wh)
		}(i, webhook)
	}
	wg.Wait()

	return results
}

func (d *Dispatcher) send(ctx context.Context, n *model.Notification, webhook model.Webhook) DispatchResult {
	result := DispatchResult{WebhookName: webhook.Name}

	formatter := FormatterFor(webhook)
	payload, err := formatter.Format(n)
	if err != nil {
		result.Error = fmt.Errorf("failed to format notification: %w", err)
		return result
	}

	sent := d.httpClient.Send(ctx, webhook.URL, formatter.ContentType(), payload)
	result.StatusCode = sent.StatusCode
	result.Attempts = sent.Attempts
	result.Duration = sent.Duration
	result.Error = sent.Error
	result.Success = sent.Error == nil

	logging.Delivery(ctx, "webhook delivery",
		logging.KeyWebhook, webhook.Name,
		"type", webhook.ResolvedType(),
		logging.KeyURL, webhook.URL,
		logging.KeyStatus, sent.StatusCode,
		"attempts", sent.Attempts,
		logging.KeyDuration, sent.Duration.Milliseconds())
	return result
}

// SendToSingle sends n to the named webhook, enabled or not.
func (d *Dispatcher) SendToSingle(ctx context.Context, n *model.Notification, name string) DispatchResult {
	for _, w := range d.webhooks {
		if strings.EqualFold(w.Name, name) {
			return d.send(logging.EnsureDeliveryID(ctx), n, w)
		}
	}
	return DispatchResult{
		WebhookName: name,
		Error:       fmt.Errorf("%w: %s", ErrWebhookNotFound, name),
	}
}

// TestWebhook sends a test notification to the named webhook.
func (d *Dispatcher) TestWebhook(ctx context.Context, name string, now time.Time) DispatchResult {
	n := model.NewNotification(
		model.NotifyTest,
		Brand+" Test",
		"This is a test notification from "+Brand+". Task reminders will arrive here.",
		now,
	).WithField("Webhook", name).WithField("Time", now.Format("15:04"))

	return d.SendToSingle(ctx, n, name)
}

// ErrWebhookNotFound is returned for an unknown webhook name.
var ErrWebhookNotFound = fmt.Errorf("webhook not found")
