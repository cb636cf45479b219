// Package services implements the reminder evaluation services: the
// stateful geofence tracker and the time-of-day evaluator.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nexttoyou/nexttoyou/internal/geo"
	identityDomain "github.com/nexttoyou/nexttoyou/internal/identity/domain"
	"github.com/nexttoyou/nexttoyou/internal/reminders/domain"
)

// GeofenceTracker detects inside→outside geofence transitions per
// (user, task). It is the one stateful component of the engine: the
// "was inside" flag from the previous observation is the only signal the
// exit detection has, so state is refreshed and persisted on every call.
//
// Evaluations for the same user are serialized to prevent the lost-update
// race between two concurrent read-modify-persist sequences; different
// users proceed in parallel.
type GeofenceTracker struct {
	taskRepo    domain.TaskRepository
	profileRepo identityDomain.Repository
	stateRepo   domain.GeofenceStateRepository
	logger      *slog.Logger

	mu        sync.Mutex
	userLocks map[uuid.UUID]*sync.Mutex
}

// NewGeofenceTracker creates a new GeofenceTracker.
func NewGeofenceTracker(
	taskRepo domain.TaskRepository,
	profileRepo identityDomain.Repository,
	stateRepo domain.GeofenceStateRepository,
	logger *slog.Logger,
) *GeofenceTracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &GeofenceTracker{
		taskRepo:    taskRepo,
		profileRepo: profileRepo,
		stateRepo:   stateRepo,
		logger:      logger,
		userLocks:   make(map[uuid.UUID]*sync.Mutex),
	}
}

// Evaluate processes a location update for a user. For every active task
// with a resolvable geofence it computes whether the user is inside, emits
// a ReminderEvent exactly on the inside→outside edge, and persists the new
// state unconditionally.
//
// Persistence is fail-soft: when the state write fails the already-computed
// events are still returned, together with an error matching
// domain.ErrStatePersist so the caller can retry the write.
func (t *GeofenceTracker) Evaluate(ctx context.Context, userID uuid.UUID, position geo.Coordinate) ([]domain.ReminderEvent, error) {
	lock := t.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tasks, err := t.taskRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load tasks for user %s: %w", userID, err)
	}

	var home, work *geo.Coordinate
	profile, err := t.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile for user %s: %w", userID, err)
	}
	if profile != nil {
		home, work = profile.Home, profile.Work
	}

	states, err := t.stateRepo.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load geofence state for user %s: %w", userID, err)
	}
	if states == nil {
		states = make(map[uuid.UUID]domain.GeofenceEntry)
	}

	now := time.Now().UTC()
	var events []domain.ReminderEvent
	evaluated := 0

	for _, task := range tasks {
		if !task.HasLocationReminder() {
			continue
		}

		target, label, ok := task.Reminder.ResolveTarget(home, work)
		if !ok {
			// Unset home/work anchors skip the task, they never error.
			continue
		}
		evaluated++

		dist := geo.Distance(position, target)
		isInside := dist <= task.Reminder.LeavingRadiusMeters()
		wasInside := states[task.ID].Inside

		if wasInside && !isInside {
			events = append(events, domain.ReminderEvent{
				TaskID:         task.ID,
				UserID:         userID,
				Title:          task.Title,
				Kind:           task.Reminder.Kind(),
				LocationLabel:  label,
				DistanceMeters: int(math.Round(dist)),
				OccurredAt:     now,
			})
		}

		// State reflects the latest observation even without a crossing.
		states[task.ID] = domain.GeofenceEntry{
			Inside:        isInside,
			LocationLabel: label,
		}
	}

	if err := t.stateRepo.Save(ctx, userID, states); err != nil {
		t.logger.Error("geofence state save failed",
			"user_id", userID,
			"error", err,
		)
		return events, fmt.Errorf("%w: %v", domain.ErrStatePersist, err)
	}

	t.logger.Debug("geofence evaluation completed",
		"user_id", userID,
		"tasks_evaluated", evaluated,
		"events", len(events),
	)

	return events, nil
}

// ForgetTask removes the stored state for one task. Invoked by the task
// CRUD collaborator on task deletion.
func (t *GeofenceTracker) ForgetTask(ctx context.Context, userID, taskID uuid.UUID) error {
	lock := t.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return t.stateRepo.DeleteTask(ctx, userID, taskID)
}

// ForgetUser removes all stored state for a user.
func (t *GeofenceTracker) ForgetUser(ctx context.Context, userID uuid.UUID) error {
	lock := t.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return t.stateRepo.DeleteUser(ctx, userID)
}

func (t *GeofenceTracker) userLock(userID uuid.UUID) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	lock, ok := t.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		t.userLocks[userID] = lock
	}
	return lock
}
