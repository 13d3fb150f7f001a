// Package notify delivers one-time verification codes.
package notify

import (
	"context"
	"time"

	"github.com/Skotchmaster/storefront/pkg/logging"
)

const TopicNotifications = "notification_events"

type publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

// KafkaSender hands the code to the mailer through the notification topic.
type KafkaSender struct {
	Publisher publisher
	Now       func() time.Time
}

func (s *KafkaSender) SendOTP(ctx context.Context, email, name, code string) error {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return s.Publisher.PublishEvent(ctx, TopicNotifications, email, map[string]any{
		"type":        "otp_requested",
		"email":       email,
		"name":        name,
		"otp":         code,
		"requestedAt": now().UTC(),
	})
}

// LogSender writes the code to the log. It stands in for a mail transport in
// development.
type LogSender struct{}

func (LogSender) SendOTP(ctx context.Context, email, _, code string) error {
	logging.FromContext(ctx).Info("otp_issued", "email", email, "otp", code)
	return nil
}
