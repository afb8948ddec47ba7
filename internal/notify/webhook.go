package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/osse101/PigFarmBot_Go/internal/logger"
)

// WebhookMessage is the JSON body posted to the webhook.
type WebhookMessage struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

// WebhookNotifier posts every message to an HTTP endpoint.
type WebhookNotifier struct {
	client *resty.Client
	url    string
}

// NewWebhookNotifier builds a notifier posting to url.
func NewWebhookNotifier(url string) *WebhookNotifier {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(WebhookTimeout).
		SetRetryCount(WebhookRetryCount)
	return &WebhookNotifier{client: client, url: url}
}

func (w *WebhookNotifier) Deliver(ctx context.Context, recipient, message string) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetBody(WebhookMessage{Recipient: recipient, Message: message}).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("failed to send webhook notification: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("webhook returned status: %d", resp.StatusCode())
	}

	logger.FromContext(ctx).Debug(LogMsgDelivered, "recipient", recipient, "channel", "webhook")
	return nil
}
