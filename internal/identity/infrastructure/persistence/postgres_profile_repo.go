package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexttoyou/nexttoyou/internal/geo"
	"github.com/nexttoyou/nexttoyou/internal/identity/domain"
)

// PostgresProfileRepository implements domain.Repository using PostgreSQL.
type PostgresProfileRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProfileRepository creates a new PostgreSQL profile repository.
func NewPostgresProfileRepository(pool *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{pool: pool}
}

// FindByUserID retrieves a profile, or nil when the user is unknown.
func (r *PostgresProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT user_id, notification_radius_m, active_start_hour, active_end_hour,
		       home_latitude, home_longitude, work_latitude, work_longitude
		FROM user_profiles
		WHERE user_id = $1
	`

	var (
		profile          domain.Profile
		homeLat, homeLon *float64
		workLat, workLon *float64
	)
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.NotificationRadiusMeters,
		&profile.ActiveStartHour,
		&profile.ActiveEndHour,
		&homeLat,
		&homeLon,
		&workLat,
		&workLon,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query profile %s: %w", userID, err)
	}

	if homeLat != nil && homeLon != nil {
		home := geo.NewCoordinate(*homeLat, *homeLon)
		profile.Home = &home
	}
	if workLat != nil && workLon != nil {
		work := geo.NewCoordinate(*workLat, *workLon)
		profile.Work = &work
	}

	return &profile, nil
}
