package persistence

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/nexttoyou/nexttoyou/internal/identity/domain"
)

// MemoryProfileRepository is an in-memory profile store for development and
// tests.
type MemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]domain.Profile
}

// NewMemoryProfileRepository creates an empty in-memory profile repository.
func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{profiles: make(map[uuid.UUID]domain.Profile)}
}

// Put stores or replaces a profile.
func (r *MemoryProfileRepository) Put(profile domain.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = profile
}

// FindByUserID returns the profile for a user, or nil when unknown.
func (r *MemoryProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}
