package domain

import (
	"context"

	"github.com/google/uuid"
)

// Task is the slice of the task record the engine reads: identity, title,
// category, completion, and the optional reminder. Task CRUD is owned by an
// external collaborator.
type Task struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Category  string
	Completed bool
	Reminder  *ReminderConfig
}

// HasLocationReminder reports whether the task carries a geofence reminder.
func (t Task) HasLocationReminder() bool {
	return t.Reminder != nil && t.Reminder.Kind().IsLocation()
}

// HasTimeReminder reports whether the task carries a time-of-day reminder.
func (t Task) HasTimeReminder() bool {
	return t.Reminder != nil && t.Reminder.Kind() == ReminderSpecificTime
}

// TaskRepository defines read access to active tasks.
type TaskRepository interface {
	// FindActiveByUserID returns the user's non-completed tasks.
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]Task, error)

	// ActiveUserIDs returns the users that currently have active tasks.
	// The reminder worker polls this set.
	ActiveUserIDs(ctx context.Context) ([]uuid.UUID, error)
}
