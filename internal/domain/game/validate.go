package game

import (
	"fmt"

	"github.com/andrekvist/burgersim/internal/domain/ledger"
	"github.com/andrekvist/burgersim/internal/domain/level"
	"github.com/andrekvist/burgersim/internal/domain/shared"
	"github.com/andrekvist/burgersim/pkg/utils"
)

// ValidationResult is the pre-flight affordability verdict shown to the
// player before a tick is run.
type ValidationResult struct {
	Valid         bool    `json:"valid"`
	Message       string  `json:"message,omitempty"`
	TotalCost     float64 `json:"totalCost"`
	HoldingCost   float64 `json:"holdingCost"`
	AvailableCash float64 `json:"availableCash"`
}

// ValidateAffordability checks, without mutating state, whether the action's
// upfront spend (purchases and production) fits the available cash. The
// processor itself never blocks on funds; this is the layer that gives the
// player actionable feedback first.
//
// Carve-out: an action that spends nothing is always allowed, so a player at
// or below zero cash can still liquidate existing stock through sales.
func ValidateAffordability(s *State, action Action, cfg *level.Config) ValidationResult {
	option, ok := cfg.DeliveryOptionByID(action.DeliveryOptionID)
	totalCost := 0.0
	if ok {
		ordered := make(tickOrders)
		for _, line := range action.SupplierOrders {
			quote, supplier := quoteOrder(cfg, s, line, option, ordered)
			if quote.quantity > 0 {
				ordered.add(supplier.ID, line.Material, quote.quantity)
			}
			totalCost += quote.totalCost
		}
	}

	production := utils.Min(action.Production, productionEstimate(s, cfg))
	if production > 0 {
		totalCost += float64(production) * cfg.ProductionCostPerUnit
	}

	// Informational estimate of today's holding charge on the current
	// position; the definitive figure is computed end-of-day by the tick.
	value := 0.0
	for _, m := range shared.RawMaterials() {
		value += ledger.Value(s.InventoryTransactions, m, s.Inventory.Of(m))
	}
	value += ledger.ValueBatches(s.FinishedGoodsBatches, s.Inventory.FinishedGoods)
	holding := ledger.HoldingCost(value, cfg.HoldingCostRate)

	result := ValidationResult{
		Valid:         true,
		TotalCost:     totalCost,
		HoldingCost:   holding,
		AvailableCash: s.Cash,
	}
	if totalCost > 0 && totalCost > s.Cash {
		result.Valid = false
		result.Message = fmt.Sprintf("action costs %.2f kr but only %.2f kr is available", totalCost, s.Cash)
	}
	return result
}

// productionEstimate mirrors the processor's production clamp against the
// current stock and capacity.
func productionEstimate(s *State, cfg *level.Config) int {
	producible := -1
	for _, m := range shared.RawMaterials() {
		perMeal := cfg.MealRequirements[m]
		if perMeal <= 0 {
			continue
		}
		limit := s.Inventory.Of(m) / perMeal
		if producible < 0 || limit < producible {
			producible = limit
		}
	}
	if producible < 0 {
		producible = 0
	}
	if cfg.ProductionCapacityPerDay > 0 {
		producible = utils.Min(producible, cfg.ProductionCapacityPerDay)
	}
	return producible
}
