// Package notify publishes newly discovered events to a notification channel.
package notify

import (
	"context"
	"errors"

	"github.com/raphaelgruber/eventsync/internal/models"
)

// ErrDeliveryFailed indicates the channel did not accept the message.
// Delivery is at-most-once per run; the batch records the failure and the
// registration stands.
var ErrDeliveryFailed = errors.New("notification delivery failed")

// Notifier publishes a newly registered event.
type Notifier interface {
	Publish(ctx context.Context, rec *models.EventRecord) error
}

// Noop discards notifications. Used when no webhook is configured.
type Noop struct{}

func (Noop) Publish(context.Context, *models.EventRecord) error { return nil }
