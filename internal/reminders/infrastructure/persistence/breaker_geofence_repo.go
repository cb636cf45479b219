package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"github.com/nexttoyou/nexttoyou/internal/reminders/domain"
)

// BreakerGeofenceStateRepository wraps a state store with a circuit breaker
// on writes. When the backing store is down, saves fail fast instead of
// stalling every location update on a timeout.
type BreakerGeofenceStateRepository struct {
	inner   domain.GeofenceStateRepository
	breaker *gobreaker.CircuitBreaker[any]
}

// NewBreakerGeofenceStateRepository wraps inner with a circuit breaker.
func NewBreakerGeofenceStateRepository(inner domain.GeofenceStateRepository) *BreakerGeofenceStateRepository {
	settings := gobreaker.Settings{
		Name:    "geofence-state",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &BreakerGeofenceStateRepository{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
	}
}

// Load delegates to the wrapped store.
func (r *BreakerGeofenceStateRepository) Load(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]domain.GeofenceEntry, error) {
	return r.inner.Load(ctx, userID)
}

// Save runs the write through the circuit breaker.
func (r *BreakerGeofenceStateRepository) Save(ctx context.Context, userID uuid.UUID, states map[uuid.UUID]domain.GeofenceEntry) error {
	_, err := r.breaker.Execute(func() (any, error) {
		return nil, r.inner.Save(ctx, userID, states)
	})
	return err
}

// DeleteTask delegates to the wrapped store.
func (r *BreakerGeofenceStateRepository) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	return r.inner.DeleteTask(ctx, userID, taskID)
}

// DeleteUser delegates to the wrapped store.
func (r *BreakerGeofenceStateRepository) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return r.inner.DeleteUser(ctx, userID)
}
