package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReminderEvent is one fired reminder: the task it belongs to and, for
// geofence reminders, the place that was just left and how far away the
// user is now.
type ReminderEvent struct {
	TaskID         uuid.UUID
	UserID         uuid.UUID
	Title          string
	Kind           ReminderKind
	LocationLabel  string
	DistanceMeters int
	OccurredAt     time.Time
}
