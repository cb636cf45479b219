// Package domain holds the store catalog read model. The catalog is owned by
// an external collaborator; the engine only reads it.
package domain

import (
	"github.com/google/uuid"

	"github.com/nexttoyou/nexttoyou/internal/geo"
)

// InventoryEntry is a single item a store sells. Brand and Metadata are
// passed through unmodified when an entry is selected as a match.
type InventoryEntry struct {
	Name     string
	Price    float64
	Brand    string
	Metadata map[string]string
}

// Store is one store in the catalog, immutable for the duration of a query.
// Inventory order is significant: it is the tie-break order for matching.
type Store struct {
	ID        uuid.UUID
	Name      string
	Category  string
	Address   string
	Location  geo.Coordinate
	Inventory []InventoryEntry
}

// InventoryNames returns the display names of all inventory entries in
// catalog order.
func (s Store) InventoryNames() []string {
	names := make([]string, len(s.Inventory))
	for i, entry := range s.Inventory {
		names[i] = entry.Name
	}
	return names
}
