package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrekvist/burgersim/internal/adapters/persistence"
	"github.com/andrekvist/burgersim/internal/application/session"
	"github.com/andrekvist/burgersim/internal/domain/game"
	"github.com/andrekvist/burgersim/internal/domain/ledger"
	"github.com/andrekvist/burgersim/internal/domain/level"
	"github.com/andrekvist/burgersim/internal/domain/shared"
	"github.com/andrekvist/burgersim/internal/infrastructure/database"
)

func newTestRepo(t *testing.T) *persistence.GormGameRepository {
	t.Helper()
	db, err := database.NewTestConnection()
	require.NoError(t, err)
	return persistence.NewGormGameRepository(db)
}

func newTestSession(id, userID string) *session.Session {
	catalog := level.NewCatalog()
	cfg, _ := catalog.Get("corner-grill")
	return &session.Session{
		ID:      id,
		UserID:  userID,
		LevelID: cfg.ID,
		State:   game.InitializeState(cfg),
	}
}

func TestGameRepository_SaveAndFind(t *testing.T) {
	// Arrange
	repo := newTestRepo(t)
	sess := newTestSession("sess-1", "user-1")

	// Act
	require.NoError(t, repo.Save(context.Background(), sess))
	found, err := repo.FindByID(context.Background(), "sess-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, sess.ID, found.ID)
	assert.Equal(t, sess.UserID, found.UserID)
	assert.Equal(t, sess.LevelID, found.LevelID)
	assert.Equal(t, 1, found.State.Day)
	assert.InDelta(t, sess.State.Cash, found.State.Cash, 1e-9)
	assert.Equal(t, sess.State.Inventory, found.State.Inventory)
}

func TestGameRepository_StateRoundTripsFIFOLots(t *testing.T) {
	// Arrange: a mid-game state with purchase lots, batches and queues
	repo := newTestRepo(t)
	sess := newTestSession("sess-2", "user-1")
	stamp := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)
	sess.State.Day = 4
	sess.State.InventoryTransactions = []ledger.Lot{
		{Material: shared.MaterialPatty, Quantity: 40, UnitCost: 9.5, Day: 2, SupplierID: "city-meats", Timestamp: stamp},
		{Material: shared.MaterialBun, Quantity: 60, UnitCost: 2.7, Day: 3, SupplierID: "grain-and-root", Timestamp: stamp.Add(time.Hour)},
	}
	sess.State.FinishedGoodsBatches = []ledger.Batch{
		{Quantity: 15, UnitCost: 14.2, Day: 3, RawMaterialCost: 138, ProductionCost: 75, Timestamp: stamp},
	}
	sess.State.PendingOrders = []game.PendingShipment{
		{Material: shared.MaterialPatty, Quantity: 50, DaysRemaining: 1, TotalCost: 500, SupplierID: "city-meats", DeliveryOptionID: "standard"},
	}
	sess.State.CustomerDeliveries = map[string]int{"lunsjboks": 20}

	// Act
	require.NoError(t, repo.Save(context.Background(), sess))
	found, err := repo.FindByID(context.Background(), "sess-2")

	// Assert: lot granularity survives, or later valuations would drift
	require.NoError(t, err)
	require.Len(t, found.State.InventoryTransactions, 2)
	assert.Equal(t, sess.State.InventoryTransactions[0], found.State.InventoryTransactions[0])
	require.Len(t, found.State.FinishedGoodsBatches, 1)
	assert.Equal(t, sess.State.FinishedGoodsBatches[0], found.State.FinishedGoodsBatches[0])
	require.Len(t, found.State.PendingOrders, 1)
	assert.Equal(t, sess.State.PendingOrders[0], found.State.PendingOrders[0])
	assert.Equal(t, 20, found.State.CustomerDeliveries["lunsjboks"])
}

func TestGameRepository_SaveIsUpsert(t *testing.T) {
	repo := newTestRepo(t)
	sess := newTestSession("sess-3", "user-1")
	require.NoError(t, repo.Save(context.Background(), sess))

	sess.State.Day = 7
	sess.State.Cash = 8000
	require.NoError(t, repo.Save(context.Background(), sess))

	found, err := repo.FindByID(context.Background(), "sess-3")
	require.NoError(t, err)
	assert.Equal(t, 7, found.State.Day)
	assert.InDelta(t, 8000.0, found.State.Cash, 1e-9)
}

func TestGameRepository_FindByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindByID(context.Background(), "missing")

	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestGameRepository_ListByUser(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Save(context.Background(), newTestSession("a", "user-1")))
	require.NoError(t, repo.Save(context.Background(), newTestSession("b", "user-1")))
	require.NoError(t, repo.Save(context.Background(), newTestSession("c", "user-2")))

	sessions, err := repo.ListByUser(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestGameRepository_Delete(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Save(context.Background(), newTestSession("gone", "user-1")))

	require.NoError(t, repo.Delete(context.Background(), "gone"))

	_, err := repo.FindByID(context.Background(), "gone")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	err = repo.Delete(context.Background(), "gone")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}
