package domain

import "context"

// Repository defines read-only access to the store catalog.
// No pagination contract is required at this scale.
type Repository interface {
	// FindAll returns the full current set of stores.
	FindAll(ctx context.Context) ([]Store, error)
}
