package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrekvist/burgersim/internal/domain/game"
	"github.com/andrekvist/burgersim/internal/domain/level"
	"github.com/andrekvist/burgersim/internal/domain/shared"
)

func TestValidateAffordability_AffordableAction(t *testing.T) {
	cfg := testConfig()
	s := game.InitializeState(cfg)

	result := game.ValidateAffordability(s, game.Action{
		SupplierOrders: []game.SupplierOrder{
			{SupplierID: "instant", Material: shared.MaterialPatty, Quantity: 10},
		},
		Production: 5,
	}, cfg)

	assert.True(t, result.Valid)
	// 10 patties at 10 kr plus 5 units of production at 5 kr
	assert.InDelta(t, 125.0, result.TotalCost, 1e-9)
	assert.InDelta(t, 10000.0, result.AvailableCash, 1e-9)
}

func TestValidateAffordability_RejectsOverspend(t *testing.T) {
	cfg := testConfig()
	s := game.InitializeState(cfg)
	s.Cash = 50

	result := game.ValidateAffordability(s, game.Action{
		SupplierOrders: []game.SupplierOrder{
			{SupplierID: "instant", Material: shared.MaterialPatty, Quantity: 10},
		},
	}, cfg)

	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Message)
	assert.InDelta(t, 100.0, result.TotalCost, 1e-9)
}

func TestValidateAffordability_ZeroSpendAlwaysAllowed(t *testing.T) {
	// A broke player must still be able to liquidate stock
	cfg := testConfig()
	s := game.InitializeState(cfg)
	s.Cash = 0
	s.Inventory.FinishedGoods = 5

	result := game.ValidateAffordability(s, game.Action{DirectSales: 5}, cfg)

	assert.True(t, result.Valid)
	assert.Zero(t, result.TotalCost)
}

func TestValidateAffordability_ProductionClampedToStock(t *testing.T) {
	// An oversized production request only counts what could actually run
	cfg := testConfig()
	s := game.InitializeState(cfg)
	s.Inventory = shared.Inventory{}
	s.Cash = 10

	result := game.ValidateAffordability(s, game.Action{Production: 1000}, cfg)

	assert.True(t, result.Valid)
	assert.Zero(t, result.TotalCost)
}

func TestValidateAffordability_PerDayCapacityBindsTotals(t *testing.T) {
	// The pre-flight quote clamps the same way the tick will: a split order
	// against a 100-unit daily cap prices only 100 units
	cfg := testConfig()
	cfg.Suppliers = append(cfg.Suppliers, level.Supplier{
		ID:             "daily",
		Name:           "Daily Farm",
		Materials:      []shared.Material{shared.MaterialPatty},
		CostMultiplier: 1.0,
		CapacityPerDay: level.FlatCapacity(100),
	})
	s := game.InitializeState(cfg)

	result := game.ValidateAffordability(s, game.Action{
		SupplierOrders: []game.SupplierOrder{
			{SupplierID: "daily", Material: shared.MaterialPatty, Quantity: 100},
			{SupplierID: "daily", Material: shared.MaterialPatty, Quantity: 100},
		},
	}, cfg)

	assert.True(t, result.Valid)
	assert.InDelta(t, 1000.0, result.TotalCost, 1e-9)
}

func TestValidateAffordability_ReportsHoldingEstimate(t *testing.T) {
	cfg := testConfig()
	p := game.NewProcessor(cfg)
	s := p.ProcessDay(game.InitializeState(cfg), game.Action{
		SupplierOrders: []game.SupplierOrder{
			{SupplierID: "instant", Material: shared.MaterialPatty, Quantity: 50},
		},
	})

	result := game.ValidateAffordability(s, game.Action{}, cfg)

	// 50 patties at 10 kr held at the daily rate
	assert.InDelta(t, 500*cfg.HoldingCostRate, result.HoldingCost, 1e-9)
	assert.True(t, result.Valid)
}
