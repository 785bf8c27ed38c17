package level

import (
	"fmt"
	"sort"

	"github.com/andrekvist/burgersim/internal/domain/ledger"
	"github.com/andrekvist/burgersim/internal/domain/shared"
)

// Catalog holds the built-in levels, constructed once at startup. Configs are
// value objects: nothing mutates them after construction.
type Catalog struct {
	levels map[string]*Config
}

// NewCatalog builds the built-in level catalog. It panics on a malformed
// level definition, since that is a programmer error.
func NewCatalog() *Catalog {
	c := &Catalog{levels: make(map[string]*Config)}
	for _, cfg := range []*Config{levelCornerGrill(), levelFranchiseContracts()} {
		if err := cfg.Validate(); err != nil {
			panic(fmt.Sprintf("invalid built-in level: %v", err))
		}
		c.levels[cfg.ID] = cfg
	}
	return c
}

// Get returns the level with the given id.
func (c *Catalog) Get(id string) (*Config, bool) {
	cfg, ok := c.levels[id]
	return cfg, ok
}

// List returns every level, ordered by id.
func (c *Catalog) List() []*Config {
	out := make([]*Config, 0, len(c.levels))
	for _, cfg := range c.levels {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// levelCornerGrill is the introductory level: two fixed-lead-time suppliers,
// one contract customer with a small milestone schedule, spot demand that
// ramps over the first two weeks.
func levelCornerGrill() *Config {
	return &Config{
		ID:           "corner-grill",
		Name:         "Corner Grill",
		StartingCash: 10000,
		StartingInventory: shared.Inventory{
			Patty:  20,
			Cheese: 20,
			Bun:    20,
			Potato: 20,
		},
		DaysToComplete: 14,
		MaxScore:       100,
		BasePrices: map[shared.Material]float64{
			shared.MaterialPatty:  10,
			shared.MaterialCheese: 4,
			shared.MaterialBun:    3,
			shared.MaterialPotato: 2,
		},
		MealRequirements: map[shared.Material]int{
			shared.MaterialPatty:  1,
			shared.MaterialCheese: 1,
			shared.MaterialBun:    1,
			shared.MaterialPotato: 2,
		},
		ProductionCostPerUnit:    5,
		ProductionCapacityPerDay: 80,
		HoldingCostRate:          ledger.HoldingRatePerDay,
		Suppliers: []Supplier{
			{
				ID:             "city-meats",
				Name:           "City Meats AS",
				Materials:      []shared.Material{shared.MaterialPatty, shared.MaterialCheese},
				LeadTime:       2,
				CostMultiplier: 1.0,
				CapacityPerDay: FlatCapacity(100),
			},
			{
				ID:             "grain-and-root",
				Name:           "Grain & Root",
				Materials:      []shared.Material{shared.MaterialBun, shared.MaterialPotato},
				LeadTime:       1,
				CostMultiplier: 0.9,
				CapacityPerDay: FlatCapacity(150),
				CapacityPerGame: PerMaterialCapacity(map[shared.Material]int{
					shared.MaterialBun:    1000,
					shared.MaterialPotato: 1500,
				}),
			},
		},
		Customers: []Customer{
			{
				ID:                   "lunsjboks",
				Name:                 "Lunsjboks Catering",
				PricePerUnit:         48,
				LeadTime:             1,
				AllowedShipmentSizes: []int{10, 20, 40},
				MinShipmentQuantity:  10,
				TransportCosts: map[int]float64{
					10: 40,
					20: 60,
					40: 90,
				},
				Milestones: []Milestone{
					{Day: 5, Quantity: 20},
					{Day: 10, Quantity: 40},
					{Day: 14, Quantity: 40},
				},
			},
		},
		DeliveryOptions: []DeliveryOption{
			{ID: "standard", Name: "Standard", LeadTime: 1, CostMultiplier: 1.0},
			{ID: "express", Name: "Express", LeadTime: 0, CostMultiplier: 1.25},
		},
		Overstock: map[shared.Material]OverstockRule{
			shared.MaterialPatty:    {Threshold: 150, PenaltyPerUnit: 1.5},
			shared.MaterialFinished: {Threshold: 60, PenaltyPerUnit: 2.0},
		},
		Demand: func(day int) Quote {
			qty := 25 + 2*day
			if qty > 55 {
				qty = 55
			}
			return Quote{Quantity: qty, PricePerUnit: 42}
		},
	}
}

// levelFranchiseContracts is the advanced level: a randomized-lead-time
// wholesaler, a bulk supplier with a shipment-size price table, two contract
// customers and tighter overstock rules.
func levelFranchiseContracts() *Config {
	return &Config{
		ID:           "franchise-contracts",
		Name:         "Franchise Contracts",
		StartingCash: 25000,
		StartingInventory: shared.Inventory{
			Patty:         40,
			Cheese:        40,
			Bun:           40,
			Potato:        80,
			FinishedGoods: 10,
		},
		DaysToComplete: 30,
		MaxScore:       250,
		BasePrices: map[shared.Material]float64{
			shared.MaterialPatty:  9,
			shared.MaterialCheese: 3.5,
			shared.MaterialBun:    2.5,
			shared.MaterialPotato: 1.8,
		},
		MealRequirements: map[shared.Material]int{
			shared.MaterialPatty:  1,
			shared.MaterialCheese: 1,
			shared.MaterialBun:    1,
			shared.MaterialPotato: 2,
		},
		ProductionCostPerUnit:    4.5,
		ProductionCapacityPerDay: 150,
		HoldingCostRate:          ledger.HoldingRatePerDay,
		Suppliers: []Supplier{
			{
				ID:              "nordgros",
				Name:            "NordGros Wholesale",
				Materials:       []shared.Material{shared.MaterialPatty, shared.MaterialCheese, shared.MaterialBun},
				CostMultiplier:  0.95,
				RandomLeadTimes: []int{1, 2, 3},
				CapacityPerDay:  FlatCapacity(200),
			},
			{
				ID:             "bulkfarm",
				Name:           "Bulkfarm Direct",
				Materials:      []shared.Material{shared.MaterialPatty, shared.MaterialPotato},
				LeadTime:       3,
				CostMultiplier: 1.0,
				ShipmentPrices: map[int]float64{
					50:  8.5,
					100: 8.0,
					200: 7.2,
				},
				CapacityPerGame: FlatCapacity(2000),
			},
			{
				ID:             "dagligvare",
				Name:           "Dagligvare Express",
				Materials:      []shared.Material{shared.MaterialCheese, shared.MaterialBun, shared.MaterialPotato},
				LeadTime:       0,
				CostMultiplier: 1.35,
				CapacityPerDay: FlatCapacity(60),
			},
		},
		Customers: []Customer{
			{
				ID:                   "festival",
				Name:                 "Sommerfestival",
				PricePerUnit:         55,
				LeadTime:             2,
				AllowedShipmentSizes: []int{25, 50, 100},
				MinShipmentQuantity:  25,
				TransportCosts: map[int]float64{
					25:  80,
					50:  120,
					100: 180,
				},
				Milestones: []Milestone{
					{Day: 10, Quantity: 100},
					{Day: 20, Quantity: 150},
					{Day: 30, Quantity: 150},
				},
			},
			{
				ID:                   "kantine",
				Name:                 "Kantinegruppen",
				PricePerUnit:         46,
				RandomLeadTimes:      []int{0, 1, 2},
				AllowedShipmentSizes: []int{15, 30},
				MinShipmentQuantity:  15,
				TransportCosts: map[int]float64{
					15: 50,
					30: 75,
				},
				Milestones: []Milestone{
					{Day: 15, Quantity: 90},
					{Day: 30, Quantity: 120},
				},
			},
		},
		DeliveryOptions: []DeliveryOption{
			{ID: "standard", Name: "Standard", LeadTime: 1, CostMultiplier: 1.0},
			{ID: "express", Name: "Express", LeadTime: 0, CostMultiplier: 1.3},
			{ID: "economy", Name: "Economy", LeadTime: 2, CostMultiplier: 0.85},
		},
		Overstock: map[shared.Material]OverstockRule{
			shared.MaterialPatty:    {Threshold: 250, PenaltyPerUnit: 1.2},
			shared.MaterialCheese:   {Threshold: 250, PenaltyPerUnit: 0.8},
			shared.MaterialPotato:   {Threshold: 400, PenaltyPerUnit: 0.5},
			shared.MaterialFinished: {Threshold: 120, PenaltyPerUnit: 2.5},
		},
		Demand: func(day int) Quote {
			// Weekly cycle: weekend days sell more at a better price.
			qty := 40 + 3*(day%7)
			price := 44.0
			if day%7 == 5 || day%7 == 6 {
				qty += 25
				price = 50
			}
			return Quote{Quantity: qty, PricePerUnit: price}
		},
	}
}
