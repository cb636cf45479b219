package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexttoyou/nexttoyou/internal/catalog/domain"
	"github.com/nexttoyou/nexttoyou/internal/geo"
)

// PostgresStoreRepository implements domain.Repository using PostgreSQL.
// Inventory is stored as a JSONB array so entry order survives round trips.
type PostgresStoreRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresStoreRepository creates a new PostgreSQL store repository.
func NewPostgresStoreRepository(pool *pgxpool.Pool) *PostgresStoreRepository {
	return &PostgresStoreRepository{pool: pool}
}

// inventoryRow mirrors the JSONB shape of one inventory entry.
type inventoryRow struct {
	Name     string            `json:"name"`
	Price    float64           `json:"price"`
	Brand    string            `json:"brand,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// FindAll returns the full current set of stores.
func (r *PostgresStoreRepository) FindAll(ctx context.Context) ([]domain.Store, error) {
	query := `
		SELECT id, name, category, address, latitude, longitude, inventory
		FROM stores
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query stores: %w", err)
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		var (
			id            uuid.UUID
			name          string
			category      string
			address       string
			lat, lon      float64
			inventoryJSON []byte
		)
		if err := rows.Scan(&id, &name, &category, &address, &lat, &lon, &inventoryJSON); err != nil {
			return nil, fmt.Errorf("scan store row: %w", err)
		}

		var entries []inventoryRow
		if len(inventoryJSON) > 0 {
			if err := json.Unmarshal(inventoryJSON, &entries); err != nil {
				return nil, fmt.Errorf("decode inventory for store %s: %w", id, err)
			}
		}

		inventory := make([]domain.InventoryEntry, len(entries))
		for i, e := range entries {
			inventory[i] = domain.InventoryEntry{
				Name:     e.Name,
				Price:    e.Price,
				Brand:    e.Brand,
				Metadata: e.Metadata,
			}
		}

		stores = append(stores, domain.Store{
			ID:        id,
			Name:      name,
			Category:  category,
			Address:   address,
			Location:  geo.NewCoordinate(lat, lon),
			Inventory: inventory,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate store rows: %w", err)
	}

	return stores, nil
}
