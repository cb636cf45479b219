package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines read access to user profiles.
type Repository interface {
	// FindByUserID returns the profile for a user, or nil when the user is
	// unknown. An unknown user is not an error: the engine treats it as
	// "no reminders".
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
}
