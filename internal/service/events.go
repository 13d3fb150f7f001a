package service

import (
	"context"
	"errors"
	"time"

	"github.com/Skotchmaster/storefront/pkg/logging"
)

const (
	TopicProducts      = "product_events"
	TopicCarts         = "cart_events"
	TopicOrders        = "order_events"
	TopicUsers         = "user_events"
	TopicReviews       = "review_events"
	TopicNotifications = "notification_events"
)

const publishTimeout = 5 * time.Second

// EventPublisher is satisfied by the Kafka producer and the live order feed.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

// publish never fails the caller: the write has already been committed.
func publish(ctx context.Context, p EventPublisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed",
			"topic", topic,
			"type", event["type"],
			"error", err,
		)
	}
}

// Fanout publishes to every sink and joins their errors.
type Fanout []EventPublisher

func (f Fanout) PublishEvent(ctx context.Context, topic, key string, event any) error {
	var errs []error
	for _, p := range f {
		if err := p.PublishEvent(ctx, topic, key, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
