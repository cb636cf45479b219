// Package persistence provides the geofence-state and task stores backing
// the reminder engine.
package persistence

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/nexttoyou/nexttoyou/internal/reminders/domain"
)

// MemoryGeofenceStateRepository is an in-memory state store for development
// and tests.
type MemoryGeofenceStateRepository struct {
	mu     sync.RWMutex
	states map[uuid.UUID]map[uuid.UUID]domain.GeofenceEntry
}

// NewMemoryGeofenceStateRepository creates an empty in-memory state store.
func NewMemoryGeofenceStateRepository() *MemoryGeofenceStateRepository {
	return &MemoryGeofenceStateRepository{
		states: make(map[uuid.UUID]map[uuid.UUID]domain.GeofenceEntry),
	}
}

// Load returns a copy of the user's state map.
func (r *MemoryGeofenceStateRepository) Load(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]domain.GeofenceEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[uuid.UUID]domain.GeofenceEntry, len(r.states[userID]))
	for taskID, entry := range r.states[userID] {
		out[taskID] = entry
	}
	return out, nil
}

// Save replaces the user's state map.
func (r *MemoryGeofenceStateRepository) Save(ctx context.Context, userID uuid.UUID, states map[uuid.UUID]domain.GeofenceEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make(map[uuid.UUID]domain.GeofenceEntry, len(states))
	for taskID, entry := range states {
		stored[taskID] = entry
	}
	r.states[userID] = stored
	return nil
}

// DeleteTask removes one task's entry.
func (r *MemoryGeofenceStateRepository) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.states[userID], taskID)
	return nil
}

// DeleteUser removes all state for a user.
func (r *MemoryGeofenceStateRepository) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.states, userID)
	return nil
}
