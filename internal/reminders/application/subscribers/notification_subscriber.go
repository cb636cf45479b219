// Package subscribers contains event consumers for the reminder pipeline.
package subscribers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nexttoyou/nexttoyou/internal/reminders/domain"
	"github.com/nexttoyou/nexttoyou/internal/shared/infrastructure/eventbus"
)

// NotificationSubscriber listens for triggered reminders and hands them to
// the notification channel. The default channel writes structured log lines;
// push delivery plugs in behind the same interface.
type NotificationSubscriber struct {
	logger *slog.Logger
}

// NewNotificationSubscriber creates a new notification subscriber.
func NewNotificationSubscriber(logger *slog.Logger) *NotificationSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationSubscriber{logger: logger}
}

// EventTypes returns the event types this subscriber handles.
func (s *NotificationSubscriber) EventTypes() []string {
	return []string{domain.RoutingKeyReminderTriggered}
}

// ReminderTriggeredPayload is the payload of reminder.triggered events.
type ReminderTriggeredPayload struct {
	TaskID         uuid.UUID `json:"task_id"`
	UserID         uuid.UUID `json:"user_id"`
	Title          string    `json:"title"`
	Kind           string    `json:"kind"`
	LocationLabel  string    `json:"location_label,omitempty"`
	DistanceMeters int       `json:"distance_meters,omitempty"`
	TriggeredAt    time.Time `json:"triggered_at"`
}

// Handle delivers the reminder notification.
func (s *NotificationSubscriber) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	if event.RoutingKey != domain.RoutingKeyReminderTriggered {
		s.logger.Warn("unknown event type",
			"routing_key", event.RoutingKey,
		)
		return nil
	}

	var payload ReminderTriggeredPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		// Malformed payloads are dropped, requeueing cannot fix them.
		s.logger.Error("failed to unmarshal reminder triggered payload",
			"event_id", event.EventID,
			"error", err,
		)
		return nil
	}

	attrs := []any{
		"task_id", payload.TaskID,
		"user_id", payload.UserID,
		"title", payload.Title,
		"kind", payload.Kind,
		"triggered_at", payload.TriggeredAt,
	}
	if payload.LocationLabel != "" {
		attrs = append(attrs, "location", payload.LocationLabel, "distance_m", payload.DistanceMeters)
	}
	s.logger.InfoContext(ctx, "reminder notification", attrs...)

	return nil
}
