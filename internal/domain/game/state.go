package game

import (
	"github.com/andrekvist/burgersim/internal/domain/ledger"
	"github.com/andrekvist/burgersim/internal/domain/level"
	"github.com/andrekvist/burgersim/internal/domain/shared"
)

// SupplierOrder is one purchase line of the day's action.
type SupplierOrder struct {
	SupplierID string          `json:"supplierId"`
	Material   shared.Material `json:"materialType"`
	Quantity   int             `json:"quantity"`
}

// CustomerOrder is one contract shipment line of the day's action.
type CustomerOrder struct {
	CustomerID string `json:"customerId"`
	Quantity   int    `json:"quantity"`
}

// Action carries every decision the player makes for one simulated day.
// Invalid lines are clamped or skipped by the processor, never rejected with
// an error; pre-flight feedback is ValidateAffordability's job.
type Action struct {
	SupplierOrders   []SupplierOrder `json:"supplierOrders"`
	Production       int             `json:"production"`
	DirectSales      int             `json:"directSales"`
	DeliveryOptionID string          `json:"deliveryOptionId"`
	CustomerOrders   []CustomerOrder `json:"customerOrders"`
}

// PendingShipment is an incoming supplier order travelling toward the
// factory. Cash was deducted and the supplier lifetime counter incremented at
// order time; only the inventory arrival is deferred.
type PendingShipment struct {
	Material         shared.Material `json:"materialType"`
	Quantity         int             `json:"quantity"`
	DaysRemaining    int             `json:"daysRemaining"`
	TotalCost        float64         `json:"totalCost"`
	SupplierID       string          `json:"supplierId"`
	DeliveryOptionID string          `json:"deliveryOptionId"`
}

// PendingDelivery is an outgoing customer shipment. Inventory was consumed
// and costed at order time; only revenue recognition and the lifetime
// delivery counter are deferred to arrival.
type PendingDelivery struct {
	CustomerID    string  `json:"customerId"`
	Quantity      int     `json:"quantity"`
	DaysRemaining int     `json:"daysRemaining"`
	NetRevenue    float64 `json:"netRevenue"`
}

// LatenessPenalty records one missed delivery milestone.
type LatenessPenalty struct {
	Day        int     `json:"day"`
	CustomerID string  `json:"customerId"`
	Required   int     `json:"required"`
	Delivered  int     `json:"delivered"`
	Shortfall  int     `json:"shortfall"`
	Amount     float64 `json:"amount"`
}

// OverstockPenalty records one end-of-day overstock charge.
type OverstockPenalty struct {
	Day      int             `json:"day"`
	Category shared.Material `json:"category"`
	Quantity int             `json:"quantity"`
	Excess   int             `json:"excess"`
	Amount   float64         `json:"amount"`
}

// CostBreakdown splits one day's charges. Total rolls every component up.
type CostBreakdown struct {
	Purchases  float64 `json:"purchases"`
	Production float64 `json:"production"`
	Holding    float64 `json:"holding"`
	Overstock  float64 `json:"overstock"`
	Lateness   float64 `json:"lateness"`
	Total      float64 `json:"total"`
}

// DayResult is the immutable end-of-day snapshot appended to history.
type DayResult struct {
	Day                int                `json:"day"`
	Cash               float64            `json:"cash"`
	Inventory          shared.Inventory   `json:"inventory"`
	InventoryValue     float64            `json:"inventoryValue"`
	Purchased          int                `json:"purchased"`
	Produced           int                `json:"produced"`
	DirectSold         int                `json:"directSold"`
	Shipped            int                `json:"shipped"`
	Revenue            float64            `json:"revenue"`
	Costs              CostBreakdown      `json:"costs"`
	Profit             float64            `json:"profit"`
	CumulativeProfit   float64            `json:"cumulativeProfit"`
	Score              int                `json:"score"`
	LatenessPenalties  []LatenessPenalty  `json:"latenessPenalties,omitempty"`
	OverstockPenalties []OverstockPenalty `json:"overstockPenalties,omitempty"`
}

// State is the full game state of one player on one level. The processor
// never mutates a caller's state: each tick works on a private deep copy and
// returns it as the new snapshot. Persistence must round-trip every field,
// including the FIFO lot lists, or future valuations would be corrupted.
type State struct {
	Day  int     `json:"day"`
	Cash float64 `json:"cash"`

	Inventory             shared.Inventory `json:"inventory"`
	InventoryTransactions []ledger.Lot     `json:"inventoryTransactions"`
	FinishedGoodsBatches  []ledger.Batch   `json:"finishedGoodsBatches"`

	PendingOrders         []PendingShipment `json:"pendingOrders"`
	PendingCustomerOrders []PendingDelivery `json:"pendingCustomerOrders"`

	// Lifetime counters; monotonically non-decreasing, never reset mid-game.
	CustomerDeliveries map[string]int                     `json:"customerDeliveries"`
	SupplierDeliveries map[string]map[shared.Material]int `json:"supplierDeliveries"`

	CumulativeProfit float64     `json:"cumulativeProfit"`
	Score            int         `json:"score"`
	CurrentDemand    level.Quote `json:"currentDemand"`

	History            []DayResult        `json:"history"`
	LatenessPenalties  []LatenessPenalty  `json:"latenessPenalties"`
	OverstockPenalties []OverstockPenalty `json:"overstockPenalties"`

	GameOver bool `json:"gameOver"`
}

// InitializeState produces day 1 of a fresh game: configured starting cash
// and inventory, empty queues and history. Starting inventory carries zero
// acquisition cost, so no lots are recorded for it.
func InitializeState(cfg *level.Config) *State {
	return &State{
		Day:                1,
		Cash:               cfg.StartingCash,
		Inventory:          cfg.StartingInventory,
		CustomerDeliveries: make(map[string]int),
		SupplierDeliveries: make(map[string]map[shared.Material]int),
		CurrentDemand:      cfg.Demand(1),
	}
}

// Clone returns a deep copy of the state. Slices and maps are duplicated so
// the copy shares nothing with the original.
func (s *State) Clone() *State {
	out := *s
	out.InventoryTransactions = append([]ledger.Lot(nil), s.InventoryTransactions...)
	out.FinishedGoodsBatches = append([]ledger.Batch(nil), s.FinishedGoodsBatches...)
	out.PendingOrders = append([]PendingShipment(nil), s.PendingOrders...)
	out.PendingCustomerOrders = append([]PendingDelivery(nil), s.PendingCustomerOrders...)
	out.History = append([]DayResult(nil), s.History...)
	out.LatenessPenalties = append([]LatenessPenalty(nil), s.LatenessPenalties...)
	out.OverstockPenalties = append([]OverstockPenalty(nil), s.OverstockPenalties...)

	out.CustomerDeliveries = make(map[string]int, len(s.CustomerDeliveries))
	for k, v := range s.CustomerDeliveries {
		out.CustomerDeliveries[k] = v
	}
	out.SupplierDeliveries = make(map[string]map[shared.Material]int, len(s.SupplierDeliveries))
	for supplier, byMaterial := range s.SupplierDeliveries {
		inner := make(map[shared.Material]int, len(byMaterial))
		for m, v := range byMaterial {
			inner[m] = v
		}
		out.SupplierDeliveries[supplier] = inner
	}
	return &out
}

// recordSupplierDelivery bumps the lifetime units-received counter.
func (s *State) recordSupplierDelivery(supplierID string, m shared.Material, qty int) {
	if s.SupplierDeliveries == nil {
		s.SupplierDeliveries = make(map[string]map[shared.Material]int)
	}
	if s.SupplierDeliveries[supplierID] == nil {
		s.SupplierDeliveries[supplierID] = make(map[shared.Material]int)
	}
	s.SupplierDeliveries[supplierID][m] += qty
}

// recordCustomerDelivery bumps the lifetime units-delivered counter.
func (s *State) recordCustomerDelivery(customerID string, qty int) {
	if s.CustomerDeliveries == nil {
		s.CustomerDeliveries = make(map[string]int)
	}
	s.CustomerDeliveries[customerID] += qty
}

// supplierReceived returns the lifetime units received from one supplier for
// one material.
func (s *State) supplierReceived(supplierID string, m shared.Material) int {
	if byMaterial, ok := s.SupplierDeliveries[supplierID]; ok {
		return byMaterial[m]
	}
	return 0
}
