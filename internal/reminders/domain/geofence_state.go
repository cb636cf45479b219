package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrStatePersist marks a geofence state write failure. The tracker still
// returns the reminder events it already computed; callers check for this
// condition with errors.Is and retry persistence without losing the events.
var ErrStatePersist = errors.New("geofence state persist failed")

// GeofenceEntry is the per-(user, task) tracker memory: whether the user was
// inside the geofence at the last observation, and the label of the place.
// It must survive restarts — the inside→outside transition it detects spans
// independent request cycles with no other memory.
type GeofenceEntry struct {
	Inside        bool   `json:"inside"`
	LocationLabel string `json:"location_label"`
}

// GeofenceStateRepository persists per-user geofence state maps keyed by
// task ID.
type GeofenceStateRepository interface {
	// Load returns the user's stored state map. A user with no state yields
	// an empty map.
	Load(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]GeofenceEntry, error)

	// Save replaces the user's stored state map.
	Save(ctx context.Context, userID uuid.UUID, states map[uuid.UUID]GeofenceEntry) error

	// DeleteTask removes the state entry for one task, invoked by the task
	// CRUD collaborator when a task is deleted.
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error

	// DeleteUser removes all state for a user.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}
