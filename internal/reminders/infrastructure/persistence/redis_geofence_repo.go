package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nexttoyou/nexttoyou/internal/reminders/domain"
)

// geofenceKeyPrefix namespaces geofence state keys in Redis.
// Full key shape: nexttoyou:geofence:{user_id}, a hash of task_id → entry.
const geofenceKeyPrefix = "nexttoyou:geofence:"

// RedisGeofenceStateRepository stores per-user geofence state in a Redis
// hash, one field per task. Entries are JSON-encoded GeofenceEntry values.
type RedisGeofenceStateRepository struct {
	client *redis.Client
}

// NewRedisGeofenceStateRepository creates a new Redis-backed state store.
func NewRedisGeofenceStateRepository(client *redis.Client) *RedisGeofenceStateRepository {
	return &RedisGeofenceStateRepository{client: client}
}

func geofenceKey(userID uuid.UUID) string {
	return geofenceKeyPrefix + userID.String()
}

// Load returns the user's stored state map. A missing key yields an empty
// map.
func (r *RedisGeofenceStateRepository) Load(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]domain.GeofenceEntry, error) {
	fields, err := r.client.HGetAll(ctx, geofenceKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load geofence hash: %w", err)
	}

	states := make(map[uuid.UUID]domain.GeofenceEntry, len(fields))
	for field, raw := range fields {
		taskID, err := uuid.Parse(field)
		if err != nil {
			// Unparseable fields are skipped, not fatal: they cannot
			// belong to a live task.
			continue
		}
		var entry domain.GeofenceEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("decode geofence entry for task %s: %w", taskID, err)
		}
		states[taskID] = entry
	}

	return states, nil
}

// Save replaces the user's stored state map atomically.
func (r *RedisGeofenceStateRepository) Save(ctx context.Context, userID uuid.UUID, states map[uuid.UUID]domain.GeofenceEntry) error {
	key := geofenceKey(userID)

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(states) > 0 {
		values := make(map[string]any, len(states))
		for taskID, entry := range states {
			raw, err := json.Marshal(entry)
			if err != nil {
				return fmt.Errorf("encode geofence entry for task %s: %w", taskID, err)
			}
			values[taskID.String()] = raw
		}
		pipe.HSet(ctx, key, values)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save geofence hash: %w", err)
	}
	return nil
}

// DeleteTask removes one task's entry.
func (r *RedisGeofenceStateRepository) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if err := r.client.HDel(ctx, geofenceKey(userID), taskID.String()).Err(); err != nil {
		return fmt.Errorf("delete geofence entry: %w", err)
	}
	return nil
}

// DeleteUser removes all state for a user.
func (r *RedisGeofenceStateRepository) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := r.client.Del(ctx, geofenceKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete geofence hash: %w", err)
	}
	return nil
}
