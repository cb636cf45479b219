package queries

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogDomain "github.com/nexttoyou/nexttoyou/internal/catalog/domain"
	catalogPersistence "github.com/nexttoyou/nexttoyou/internal/catalog/infrastructure/persistence"
	"github.com/nexttoyou/nexttoyou/internal/geo"
)

// origin sits in central Tel Aviv; the two stores below are placed at known
// distances from it.
var origin = geo.Coordinate{Latitude: 32.0853, Longitude: 34.7818}

func storeAt(name string, location geo.Coordinate, entries ...catalogDomain.InventoryEntry) catalogDomain.Store {
	return catalogDomain.Store{
		ID:        uuid.New(),
		Name:      name,
		Category:  "grocery",
		Location:  location,
		Inventory: entries,
	}
}

func TestFindDealsHandler_RanksByPriceThenDistance(t *testing.T) {
	repo := catalogPersistence.NewMemoryStoreRepository()
	// ~300m north of origin, milk at 5.90.
	repo.Add(storeAt("Corner Market", geo.Coordinate{Latitude: 32.0880, Longitude: 34.7818},
		catalogDomain.InventoryEntry{Name: "Milk 3% 1L", Price: 5.90}))
	// ~4.8km north, milk at 4.90.
	repo.Add(storeAt("Discount Depot", geo.Coordinate{Latitude: 32.1285, Longitude: 34.7818},
		catalogDomain.InventoryEntry{Name: "Milk 3% 1L", Price: 4.90}))

	handler := NewFindDealsHandler(repo, nil, nil)

	t.Run("wide radius prefers the cheaper store", func(t *testing.T) {
		results, err := handler.Handle(context.Background(), FindDealsQuery{
			Origin:       origin,
			Items:        []string{"milk"},
			RadiusMeters: 5000,
		})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "Discount Depot", results[0].StoreName)
		assert.Equal(t, "Corner Market", results[1].StoreName)
	})

	t.Run("tight radius drops the far store", func(t *testing.T) {
		results, err := handler.Handle(context.Background(), FindDealsQuery{
			Origin:       origin,
			Items:        []string{"milk"},
			RadiusMeters: 1000,
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Corner Market", results[0].StoreName)
		assert.InDelta(t, 300, results[0].DistanceMeters, 20)
	})
}

func TestFindDealsHandler_EqualPriceBreaksTiesByDistance(t *testing.T) {
	repo := catalogPersistence.NewMemoryStoreRepository()
	repo.Add(storeAt("Far Store", geo.Coordinate{Latitude: 32.0950, Longitude: 34.7818},
		catalogDomain.InventoryEntry{Name: "Sliced Bread", Price: 7.50}))
	repo.Add(storeAt("Near Store", geo.Coordinate{Latitude: 32.0860, Longitude: 34.7818},
		catalogDomain.InventoryEntry{Name: "Sliced Bread", Price: 7.50}))

	handler := NewFindDealsHandler(repo, nil, nil)
	results, err := handler.Handle(context.Background(), FindDealsQuery{
		Origin:       origin,
		Items:        []string{"bread"},
		RadiusMeters: 5000,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Near Store", results[0].StoreName)
	assert.Equal(t, "Far Store", results[1].StoreName)
}

func TestFindDealsHandler_SkipsStoresWithoutMatches(t *testing.T) {
	repo := catalogPersistence.NewMemoryStoreRepository()
	repo.Add(storeAt("Hardware House", geo.Coordinate{Latitude: 32.0860, Longitude: 34.7818},
		catalogDomain.InventoryEntry{Name: "Claw Hammer", Price: 49.00}))

	handler := NewFindDealsHandler(repo, nil, nil)
	results, err := handler.Handle(context.Background(), FindDealsQuery{
		Origin:       origin,
		Items:        []string{"milk"},
		RadiusMeters: 5000,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindDealsHandler_DegenerateInputs(t *testing.T) {
	repo := catalogPersistence.NewSeededStoreRepository()
	handler := NewFindDealsHandler(repo, nil, nil)

	t.Run("empty item list", func(t *testing.T) {
		results, err := handler.Handle(context.Background(), FindDealsQuery{
			Origin:       origin,
			Items:        nil,
			RadiusMeters: 5000,
		})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("empty catalog", func(t *testing.T) {
		empty := NewFindDealsHandler(catalogPersistence.NewMemoryStoreRepository(), nil, nil)
		results, err := empty.Handle(context.Background(), FindDealsQuery{
			Origin:       origin,
			Items:        []string{"milk"},
			RadiusMeters: 5000,
		})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("zero radius admits only zero distance", func(t *testing.T) {
		repo := catalogPersistence.NewMemoryStoreRepository()
		repo.Add(storeAt("At Origin", origin,
			catalogDomain.InventoryEntry{Name: "Milk 3% 1L", Price: 5.90}))
		repo.Add(storeAt("Nearby", geo.Coordinate{Latitude: 32.0860, Longitude: 34.7818},
			catalogDomain.InventoryEntry{Name: "Milk 3% 1L", Price: 4.90}))

		handler := NewFindDealsHandler(repo, nil, nil)
		results, err := handler.Handle(context.Background(), FindDealsQuery{
			Origin:       origin,
			Items:        []string{"milk"},
			RadiusMeters: 0,
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "At Origin", results[0].StoreName)
		assert.Equal(t, 0, results[0].DistanceMeters)
	})
}

func TestFindDealsHandler_MultipleItems(t *testing.T) {
	repo := catalogPersistence.NewMemoryStoreRepository()
	repo.Add(storeAt("Full Basket", geo.Coordinate{Latitude: 32.0860, Longitude: 34.7818},
		catalogDomain.InventoryEntry{Name: "Milk 3% 1L", Price: 5.90},
		catalogDomain.InventoryEntry{Name: "Sliced Bread", Price: 7.50}))

	handler := NewFindDealsHandler(repo, nil, nil)
	results, err := handler.Handle(context.Background(), FindDealsQuery{
		Origin:       origin,
		Items:        []string{"milk", "bread", "rocket fuel"},
		RadiusMeters: 5000,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Items, 2)
	assert.Equal(t, "milk", results[0].Items[0].Query)
	assert.Equal(t, "Milk 3% 1L", results[0].Items[0].Entry.Name)
	assert.Equal(t, "bread", results[0].Items[1].Query)
}
