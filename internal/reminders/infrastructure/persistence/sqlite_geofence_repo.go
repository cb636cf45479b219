package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nexttoyou/nexttoyou/internal/reminders/domain"
)

const geofenceSchema = `
CREATE TABLE IF NOT EXISTS geofence_states (
	user_id TEXT NOT NULL,
	task_id TEXT NOT NULL,
	entry   TEXT NOT NULL,
	PRIMARY KEY (user_id, task_id)
);
`

// SQLiteGeofenceStateRepository stores geofence state in a local SQLite
// database. Used when the app runs without Redis, e.g. on a laptop.
type SQLiteGeofenceStateRepository struct {
	db *sql.DB
}

// NewSQLiteGeofenceStateRepository opens (or creates) the database at path
// and ensures the schema exists.
func NewSQLiteGeofenceStateRepository(path string) (*SQLiteGeofenceStateRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.Exec(geofenceSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create geofence schema: %w", err)
	}
	return &SQLiteGeofenceStateRepository{db: db}, nil
}

// Close closes the underlying database.
func (r *SQLiteGeofenceStateRepository) Close() error {
	return r.db.Close()
}

// Load returns the user's stored state map.
func (r *SQLiteGeofenceStateRepository) Load(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]domain.GeofenceEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT task_id, entry FROM geofence_states WHERE user_id = ?`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("load geofence states: %w", err)
	}
	defer rows.Close()

	states := make(map[uuid.UUID]domain.GeofenceEntry)
	for rows.Next() {
		var taskIDRaw, entryRaw string
		if err := rows.Scan(&taskIDRaw, &entryRaw); err != nil {
			return nil, fmt.Errorf("scan geofence state: %w", err)
		}
		taskID, err := uuid.Parse(taskIDRaw)
		if err != nil {
			continue
		}
		var entry domain.GeofenceEntry
		if err := json.Unmarshal([]byte(entryRaw), &entry); err != nil {
			return nil, fmt.Errorf("decode geofence entry for task %s: %w", taskID, err)
		}
		states[taskID] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate geofence states: %w", err)
	}

	return states, nil
}

// Save replaces the user's stored state map in one transaction.
func (r *SQLiteGeofenceStateRepository) Save(ctx context.Context, userID uuid.UUID, states map[uuid.UUID]domain.GeofenceEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM geofence_states WHERE user_id = ?`, userID.String()); err != nil {
		return fmt.Errorf("clear geofence states: %w", err)
	}
	for taskID, entry := range states {
		raw, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("encode geofence entry for task %s: %w", taskID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO geofence_states (user_id, task_id, entry) VALUES (?, ?, ?)`,
			userID.String(), taskID.String(), string(raw)); err != nil {
			return fmt.Errorf("insert geofence state for task %s: %w", taskID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// DeleteTask removes one task's entry.
func (r *SQLiteGeofenceStateRepository) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM geofence_states WHERE user_id = ? AND task_id = ?`,
		userID.String(), taskID.String())
	if err != nil {
		return fmt.Errorf("delete geofence state: %w", err)
	}
	return nil
}

// DeleteUser removes all state for a user.
func (r *SQLiteGeofenceStateRepository) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM geofence_states WHERE user_id = ?`, userID.String())
	if err != nil {
		return fmt.Errorf("delete geofence states: %w", err)
	}
	return nil
}
