package persistence

import (
	"context"
	"sync"

	"github.com/nexttoyou/nexttoyou/internal/catalog/domain"
)

// MemoryStoreRepository is an in-memory catalog for development and tests.
type MemoryStoreRepository struct {
	mu     sync.RWMutex
	stores []domain.Store
}

// NewMemoryStoreRepository creates an empty in-memory catalog.
func NewMemoryStoreRepository() *MemoryStoreRepository {
	return &MemoryStoreRepository{}
}

// NewSeededStoreRepository creates an in-memory catalog preloaded with the
// demo stores.
func NewSeededStoreRepository() *MemoryStoreRepository {
	return &MemoryStoreRepository{stores: DemoCatalog()}
}

// FindAll returns a copy of the current store set.
func (r *MemoryStoreRepository) FindAll(ctx context.Context) ([]domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Store, len(r.stores))
	copy(out, r.stores)
	return out, nil
}

// Add appends a store to the catalog.
func (r *MemoryStoreRepository) Add(store domain.Store) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stores = append(r.stores, store)
}
