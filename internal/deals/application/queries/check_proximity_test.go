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
	identityDomain "github.com/nexttoyou/nexttoyou/internal/identity/domain"
	identityPersistence "github.com/nexttoyou/nexttoyou/internal/identity/infrastructure/persistence"
	remindersDomain "github.com/nexttoyou/nexttoyou/internal/reminders/domain"
	remindersPersistence "github.com/nexttoyou/nexttoyou/internal/reminders/infrastructure/persistence"
)

func TestCheckProximityHandler_Handle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	storeRepo := catalogPersistence.NewMemoryStoreRepository()
	storeRepo.Add(catalogDomain.Store{
		ID:       uuid.New(),
		Name:     "Corner Market",
		Category: "grocery",
		Location: geo.Coordinate{Latitude: 32.0860, Longitude: 34.7818},
		Inventory: []catalogDomain.InventoryEntry{
			{Name: "Milk 3% 1L", Price: 5.90},
		},
	})

	taskRepo := remindersPersistence.NewMemoryTaskRepository()
	profileRepo := identityPersistence.NewMemoryProfileRepository()
	findDeals := NewFindDealsHandler(storeRepo, nil, nil)
	handler := NewCheckProximityHandler(taskRepo, profileRepo, findDeals, 200, nil)

	t.Run("no active tasks yields nothing", func(t *testing.T) {
		results, err := handler.Handle(ctx, CheckProximityQuery{UserID: userID, Position: origin})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	taskRepo.Put(remindersDomain.Task{ID: uuid.New(), UserID: userID, Title: "milk"})

	t.Run("default radius finds the store", func(t *testing.T) {
		// The store sits ~80m away, inside the 200m default radius.
		results, err := handler.Handle(ctx, CheckProximityQuery{UserID: userID, Position: origin})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Corner Market", results[0].StoreName)
	})

	t.Run("profile radius overrides the default", func(t *testing.T) {
		profileRepo.Put(identityDomain.Profile{UserID: userID, NotificationRadiusMeters: 10})
		results, err := handler.Handle(ctx, CheckProximityQuery{UserID: userID, Position: origin})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("completed tasks are ignored", func(t *testing.T) {
		done := remindersDomain.Task{ID: uuid.New(), UserID: uuid.New(), Title: "milk", Completed: true}
		taskRepo.Put(done)
		results, err := handler.Handle(ctx, CheckProximityQuery{UserID: done.UserID, Position: origin})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
