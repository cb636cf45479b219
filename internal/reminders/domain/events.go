package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/nexttoyou/nexttoyou/internal/shared/domain"
)

const aggregateType = "Task"

// RoutingKeyReminderTriggered is the routing key for fired reminders.
const RoutingKeyReminderTriggered = "reminders.reminder.triggered"

// ReminderTriggered is published when a reminder fires, so downstream
// notification channels can deliver it.
type ReminderTriggered struct {
	sharedDomain.BaseEvent
	TaskID         uuid.UUID `json:"task_id"`
	UserID         uuid.UUID `json:"user_id"`
	Title          string    `json:"title"`
	Kind           string    `json:"kind"`
	LocationLabel  string    `json:"location_label,omitempty"`
	DistanceMeters int       `json:"distance_meters,omitempty"`
	TriggeredAt    time.Time `json:"triggered_at"`
}

// MarshalJSON emits the broker envelope: event identity and routing
// metadata at the top level, the reminder details under payload. This is
// the shape the consumer side decodes.
func (e *ReminderTriggered) MarshalJSON() ([]byte, error) {
	type payload struct {
		TaskID         uuid.UUID `json:"task_id"`
		UserID         uuid.UUID `json:"user_id"`
		Title          string    `json:"title"`
		Kind           string    `json:"kind"`
		LocationLabel  string    `json:"location_label,omitempty"`
		DistanceMeters int       `json:"distance_meters,omitempty"`
		TriggeredAt    time.Time `json:"triggered_at"`
	}
	type envelope struct {
		EventID       uuid.UUID `json:"event_id"`
		AggregateID   uuid.UUID `json:"aggregate_id"`
		AggregateType string    `json:"aggregate_type"`
		RoutingKey    string    `json:"routing_key"`
		OccurredAt    time.Time `json:"occurred_at"`
		Payload       payload   `json:"payload"`
	}
	return json.Marshal(envelope{
		EventID:       e.EventID(),
		AggregateID:   e.AggregateID(),
		AggregateType: e.AggregateType(),
		RoutingKey:    e.RoutingKey(),
		OccurredAt:    e.OccurredAt(),
		Payload: payload{
			TaskID:         e.TaskID,
			UserID:         e.UserID,
			Title:          e.Title,
			Kind:           e.Kind,
			LocationLabel:  e.LocationLabel,
			DistanceMeters: e.DistanceMeters,
			TriggeredAt:    e.TriggeredAt,
		},
	})
}

// NewReminderTriggered creates a ReminderTriggered event from a fired
// reminder.
func NewReminderTriggered(e ReminderEvent) *ReminderTriggered {
	return &ReminderTriggered{
		BaseEvent:      sharedDomain.NewBaseEvent(e.TaskID, aggregateType, RoutingKeyReminderTriggered),
		TaskID:         e.TaskID,
		UserID:         e.UserID,
		Title:          e.Title,
		Kind:           string(e.Kind),
		LocationLabel:  e.LocationLabel,
		DistanceMeters: e.DistanceMeters,
		TriggeredAt:    e.OccurredAt,
	}
}
