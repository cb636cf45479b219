package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexttoyou/nexttoyou/internal/geo"
	"github.com/nexttoyou/nexttoyou/internal/reminders/domain"
)

// PostgresTaskRepository reads task rows from PostgreSQL. The engine only
// reads tasks; writes belong to the task service that owns the table.
type PostgresTaskRepository struct {
	pool *pgxpool.Pool

	// defaultLeavingRadius is applied when a location reminder row carries
	// no radius of its own.
	defaultLeavingRadius float64
}

// NewPostgresTaskRepository creates a new PostgreSQL-backed task reader.
func NewPostgresTaskRepository(pool *pgxpool.Pool, defaultLeavingRadiusMeters float64) *PostgresTaskRepository {
	return &PostgresTaskRepository{
		pool:                 pool,
		defaultLeavingRadius: defaultLeavingRadiusMeters,
	}
}

// FindActiveByUserID returns the user's non-completed tasks with their
// reminder configuration.
func (r *PostgresTaskRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	query := `
		SELECT id, user_id, title, category, completed,
		       reminder_kind, target_lat, target_lon,
		       leaving_radius_meters, time_of_day, weekdays, everyday
		FROM tasks
		WHERE user_id = $1 AND completed = FALSE
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query active tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var (
			task         domain.Task
			kind         *string
			targetLat    *float64
			targetLon    *float64
			radiusMeters *float64
			timeOfDay    *string
			weekdays     []int32
			everyday     *bool
		)
		if err := rows.Scan(
			&task.ID, &task.UserID, &task.Title, &task.Category, &task.Completed,
			&kind, &targetLat, &targetLon,
			&radiusMeters, &timeOfDay, &weekdays, &everyday,
		); err != nil {
			return nil, fmt.Errorf("scan task row: %w", err)
		}
		task.Reminder = rehydrateReminder(r.defaultLeavingRadius, kind, targetLat, targetLon, radiusMeters, timeOfDay, weekdays, everyday)
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task rows: %w", err)
	}

	return tasks, nil
}

// ActiveUserIDs returns the distinct users that have non-completed tasks.
func (r *PostgresTaskRepository) ActiveUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT user_id FROM tasks WHERE completed = FALSE`)
	if err != nil {
		return nil, fmt.Errorf("query active users: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user ids: %w", err)
	}

	return ids, nil
}

func rehydrateReminder(
	defaultLeavingRadius float64,
	kind *string,
	targetLat, targetLon, radiusMeters *float64,
	timeOfDay *string,
	weekdayInts []int32,
	everyday *bool,
) *domain.ReminderConfig {
	if kind == nil || domain.ReminderKind(*kind) == domain.ReminderNone {
		return nil
	}

	var target *geo.Coordinate
	if targetLat != nil && targetLon != nil {
		target = &geo.Coordinate{Latitude: *targetLat, Longitude: *targetLon}
	}

	radius := defaultLeavingRadius
	if radiusMeters != nil && *radiusMeters > 0 {
		radius = *radiusMeters
	}

	tod := ""
	if timeOfDay != nil {
		tod = *timeOfDay
	}

	var weekdays []time.Weekday
	for _, d := range weekdayInts {
		weekdays = append(weekdays, time.Weekday(d))
	}

	return domain.RehydrateReminderConfig(
		domain.ReminderKind(*kind),
		target,
		radius,
		tod,
		weekdays,
		everyday != nil && *everyday,
	)
}
