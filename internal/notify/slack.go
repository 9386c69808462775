package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/raphaelgruber/eventsync/internal/models"
)

// SlackWebhook posts new-event notifications to a Slack incoming webhook.
type SlackWebhook struct {
	webhookURL string
	client     *http.Client
	log        *slog.Logger
}

// NewSlackWebhook creates a Slack notifier.
func NewSlackWebhook(webhookURL string, log *slog.Logger) *SlackWebhook {
	if log == nil {
		log = slog.Default()
	}
	return &SlackWebhook{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

// slackMessage is the incoming-webhook payload.
type slackMessage struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks,omitempty"`
}

type slackBlock struct {
	Type string     `json:"type"`
	Text *slackText `json:"text,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Publish sends one message per event. Failures are classified as
// ErrDeliveryFailed; the caller records them without retrying.
func (s *SlackWebhook) Publish(ctx context.Context, rec *models.EventRecord) error {
	msg := slackMessage{
		Text: fmt.Sprintf("New event pending review: %s", rec.Title),
		Blocks: []slackBlock{
			{
				Type: "section",
				Text: &slackText{
					Type: "mrkdwn",
					Text: fmt.Sprintf("*<%s|%s>*\nStarts: %s\nStatus: %s",
						rec.URL, rec.Title, rec.StartsAt.Format(time.RFC3339), rec.Status),
				},
			},
		},
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: marshal message: %v", ErrDeliveryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: status %d: %s", ErrDeliveryFailed, resp.StatusCode, string(respBody))
	}

	s.log.Debug("notification published", "title", rec.Title)
	return nil
}
