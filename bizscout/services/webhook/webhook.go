package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	httputils "bizscout/bizscout/utils/http"
	"bizscout/bizscout/utils/logging"
	"bizscout/bizscout/utils/types"
)

// Source identifies this service in webhook payloads.
const Source = "google_business_scraper"

// Client relays extracted records to a single webhook URL.
type Client struct {
	url    string
	client *http.Client
	now    func() time.Time
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
		now:    time.Now,
	}
}

// Deliver posts record once and reports the outcome. Delivery problems are
// folded into the returned status; the extraction itself stays valid.
func (c *Client) Deliver(ctx context.Context, record types.BusinessRecord) types.WebhookStatus {
	if c.url == "" {
		return types.WebhookStatus{Status: types.WebhookError, Message: "Webhook URL not configured"}
	}
	defer logging.LogDuration(ctx, "Webhook.Deliver")()

	payload := types.WebhookPayload{
		Source:       Source,
		Timestamp:    c.now().UTC().Format(time.RFC3339),
		BusinessData: record,
	}
	status, body, err := httputils.PostJSON(ctx, c.client, c.url, payload)
	if err != nil {
		logging.ErrorLogger.Error("webhook delivery failed",
			zap.String("business_name", record.BusinessName),
			zap.Error(err),
		)
		ws := types.WebhookStatus{Status: types.WebhookError, Message: "Failed to send to webhook: " + err.Error()}
		if status != 0 {
			ws.WebhookResponse = &body
		}
		return ws
	}

	if !httputils.IsSuccess(status) {
		logging.AppLogger.Warn("webhook rejected payload",
			zap.String("business_name", record.BusinessName),
			zap.Int("status", status),
		)
		return types.WebhookStatus{
			Status:          types.WebhookError,
			Message:         fmt.Sprintf("Webhook request failed with status %d", status),
			WebhookResponse: &body,
		}
	}

	logging.AppLogger.Info("webhook delivered",
		zap.String("business_name", record.BusinessName),
		zap.Int("status", status),
	)
	return types.WebhookStatus{
		Status:          types.WebhookSuccess,
		Message:         "Data sent to webhook successfully",
		WebhookResponse: &body,
	}
}
