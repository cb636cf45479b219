// Package domain holds the user profile read model consumed by the
// proximity and reminder engines.
package domain

import (
	"github.com/google/uuid"

	"github.com/nexttoyou/nexttoyou/internal/geo"
)

// Profile carries the per-user settings the engine reads: notification
// radius, quiet-hours window, and the optional home/work anchor points used
// by geofence reminders. Nil Home/Work means the user never set them.
type Profile struct {
	UserID                   uuid.UUID
	NotificationRadiusMeters float64
	ActiveStartHour          int
	ActiveEndHour            int
	Home                     *geo.Coordinate
	Work                     *geo.Coordinate
}

// IsActiveAt reports whether the given time falls inside the user's active
// hours window. A zero-width window (start == end) means always active.
func (p Profile) IsActiveAt(hour int) bool {
	if p.ActiveStartHour == p.ActiveEndHour {
		return true
	}
	if p.ActiveStartHour < p.ActiveEndHour {
		return hour >= p.ActiveStartHour && hour < p.ActiveEndHour
	}
	// Window wraps midnight, e.g. 22-06.
	return hour >= p.ActiveStartHour || hour < p.ActiveEndHour
}
