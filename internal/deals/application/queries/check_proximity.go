package queries

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nexttoyou/nexttoyou/internal/deals/domain"
	"github.com/nexttoyou/nexttoyou/internal/geo"
	identityDomain "github.com/nexttoyou/nexttoyou/internal/identity/domain"
	remindersDomain "github.com/nexttoyou/nexttoyou/internal/reminders/domain"
)

// CheckProximityQuery asks which nearby stores cover the user's whole
// active shopping list, driven by a location update.
type CheckProximityQuery struct {
	UserID   uuid.UUID
	Position geo.Coordinate
}

// CheckProximityHandler handles the CheckProximityQuery: it turns the
// user's active task titles into a deal search around their position, with
// the radius taken from the user's notification settings.
type CheckProximityHandler struct {
	taskRepo      remindersDomain.TaskRepository
	profileRepo   identityDomain.Repository
	findDeals     *FindDealsHandler
	defaultRadius float64
	logger        *slog.Logger
}

// NewCheckProximityHandler creates a new CheckProximityHandler.
// defaultRadius is used when the user has no profile or no notification
// radius configured.
func NewCheckProximityHandler(
	taskRepo remindersDomain.TaskRepository,
	profileRepo identityDomain.Repository,
	findDeals *FindDealsHandler,
	defaultRadius float64,
	logger *slog.Logger,
) *CheckProximityHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckProximityHandler{
		taskRepo:      taskRepo,
		profileRepo:   profileRepo,
		findDeals:     findDeals,
		defaultRadius: defaultRadius,
		logger:        logger,
	}
}

// Handle collects the titles of the user's active tasks and searches the
// catalog around their position. A user with no active tasks yields an
// empty result, not an error.
func (h *CheckProximityHandler) Handle(ctx context.Context, q CheckProximityQuery) ([]domain.DealResult, error) {
	tasks, err := h.taskRepo.FindActiveByUserID(ctx, q.UserID)
	if err != nil {
		return nil, fmt.Errorf("load tasks for user %s: %w", q.UserID, err)
	}

	var items []string
	for _, task := range tasks {
		if task.Completed {
			continue
		}
		items = append(items, task.Title)
	}
	if len(items) == 0 {
		return nil, nil
	}

	radius := h.defaultRadius
	profile, err := h.profileRepo.FindByUserID(ctx, q.UserID)
	if err != nil {
		return nil, fmt.Errorf("load profile for user %s: %w", q.UserID, err)
	}
	if profile != nil && profile.NotificationRadiusMeters > 0 {
		radius = profile.NotificationRadiusMeters
	}

	return h.findDeals.Handle(ctx, FindDealsQuery{
		Origin:       q.Position,
		Items:        items,
		RadiusMeters: radius,
	})
}
