// Package queries implements the read-side reminder operations.
package queries

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	identityDomain "github.com/nexttoyou/nexttoyou/internal/identity/domain"
	"github.com/nexttoyou/nexttoyou/internal/reminders/application/services"
	"github.com/nexttoyou/nexttoyou/internal/reminders/domain"
)

// DueTimeRemindersQuery asks which of a user's time reminders are due now.
type DueTimeRemindersQuery struct {
	UserID uuid.UUID
	Now    time.Time
}

// DueTimeRemindersHandler handles the DueTimeRemindersQuery.
type DueTimeRemindersHandler struct {
	taskRepo    domain.TaskRepository
	profileRepo identityDomain.Repository
	evaluator   *services.TimeReminderEvaluator
	logger      *slog.Logger
}

// NewDueTimeRemindersHandler creates a new DueTimeRemindersHandler.
func NewDueTimeRemindersHandler(
	taskRepo domain.TaskRepository,
	profileRepo identityDomain.Repository,
	evaluator *services.TimeReminderEvaluator,
	logger *slog.Logger,
) *DueTimeRemindersHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if evaluator == nil {
		evaluator = services.NewTimeReminderEvaluator()
	}
	return &DueTimeRemindersHandler{
		taskRepo:    taskRepo,
		profileRepo: profileRepo,
		evaluator:   evaluator,
		logger:      logger,
	}
}

// Handle evaluates the user's active tasks against the given instant.
// Reminders are suppressed outside the user's active-hours window; a user
// without a profile gets no suppression. The evaluator itself performs no
// "already fired" de-duplication — repeated polls inside the tolerance
// window report the same tasks as due again.
func (h *DueTimeRemindersHandler) Handle(ctx context.Context, q DueTimeRemindersQuery) ([]domain.ReminderEvent, error) {
	profile, err := h.profileRepo.FindByUserID(ctx, q.UserID)
	if err != nil {
		return nil, fmt.Errorf("load profile for user %s: %w", q.UserID, err)
	}
	if profile != nil && !profile.IsActiveAt(q.Now.Hour()) {
		h.logger.Debug("time reminders suppressed outside active hours",
			"user_id", q.UserID,
			"hour", q.Now.Hour(),
		)
		return nil, nil
	}

	tasks, err := h.taskRepo.FindActiveByUserID(ctx, q.UserID)
	if err != nil {
		return nil, fmt.Errorf("load tasks for user %s: %w", q.UserID, err)
	}

	return h.evaluator.DueReminders(tasks, q.Now), nil
}
