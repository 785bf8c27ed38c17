package level

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/andrekvist/burgersim/internal/domain/shared"
)

// Quote is the day's spot demand: how many units walk-in customers would buy
// and at what price per unit.
type Quote struct {
	Quantity     int     `json:"quantity"`
	PricePerUnit float64 `json:"pricePerUnit"`
}

// DemandModel derives the spot demand for a given day. Implementations must
// be pure: the engine re-evaluates them freely.
type DemandModel func(day int) Quote

// DeliveryOption is a shipping choice the player applies to the day's
// supplier orders. Its lead time adds to the supplier lead time and its cost
// multiplier scales the unit price.
type DeliveryOption struct {
	ID             string  `validate:"required"`
	Name           string
	LeadTime       int     `validate:"gte=0"`
	CostMultiplier float64 `validate:"gt=0"`
}

// Supplier is a raw-material source. A supplier either prices by base price
// and multipliers or publishes a discrete shipment-size price table.
// RandomLeadTimes, when set, replaces the fixed lead time (and ignores the
// delivery option) with a uniform draw from the listed values at order time.
type Supplier struct {
	ID              string            `validate:"required"`
	Name            string
	Materials       []shared.Material `validate:"min=1"`
	LeadTime        int               `validate:"gte=0"`
	CostMultiplier  float64
	RandomLeadTimes []int
	// ShipmentPrices maps shipment size to unit price; when the ordered
	// quantity matches an entry, the table wins over the multiplier path.
	ShipmentPrices  map[int]float64
	CapacityPerDay  Capacity
	CapacityPerGame Capacity
}

// Milestone is a scheduled cumulative-delivery requirement: by Day the
// customer must have received Quantity units in total (summed with all
// earlier milestones).
type Milestone struct {
	Day      int `validate:"gt=0"`
	Quantity int `validate:"gt=0"`
}

// Customer is a contract buyer of finished goods.
type Customer struct {
	ID                   string  `validate:"required"`
	Name                 string
	PricePerUnit         float64 `validate:"gt=0"`
	LeadTime             int     `validate:"gte=0"`
	RandomLeadTimes      []int
	AllowedShipmentSizes []int
	MinShipmentQuantity  int
	// TransportCosts maps shipment size to the flat transport fee deducted
	// from the order's revenue.
	TransportCosts map[int]float64
	Milestones     []Milestone `validate:"dive"`
}

// OverstockRule charges PenaltyPerUnit for every unit above Threshold held in
// a category at end of day.
type OverstockRule struct {
	Threshold      int     `validate:"gte=0"`
	PenaltyPerUnit float64 `validate:"gt=0"`
}

// Config is the immutable static configuration of one level: the full
// catalog of suppliers, customers, prices and penalty rules. The engine
// treats it as read-only input and never mutates it.
type Config struct {
	ID                string `validate:"required"`
	Name              string
	StartingCash      float64 `validate:"gte=0"`
	StartingInventory shared.Inventory
	DaysToComplete    int `validate:"gt=0"`
	MaxScore          int `validate:"gt=0"`

	BasePrices       map[shared.Material]float64 `validate:"required"`
	MealRequirements map[shared.Material]int     `validate:"required"`

	ProductionCostPerUnit    float64 `validate:"gte=0"`
	ProductionCapacityPerDay int     `validate:"gte=0"`
	HoldingCostRate          float64 `validate:"gt=0"`

	Suppliers       []Supplier                       `validate:"min=1,dive"`
	Customers       []Customer                       `validate:"dive"`
	DeliveryOptions []DeliveryOption                 `validate:"min=1,dive"`
	Overstock       map[shared.Material]OverstockRule `validate:"dive"`

	Demand DemandModel `validate:"-"`
}

// SupplierByID returns the supplier with the given id.
func (c *Config) SupplierByID(id string) (*Supplier, bool) {
	for i := range c.Suppliers {
		if c.Suppliers[i].ID == id {
			return &c.Suppliers[i], true
		}
	}
	return nil, false
}

// CustomerByID returns the customer with the given id.
func (c *Config) CustomerByID(id string) (*Customer, bool) {
	for i := range c.Customers {
		if c.Customers[i].ID == id {
			return &c.Customers[i], true
		}
	}
	return nil, false
}

// DeliveryOptionByID returns the delivery option with the given id, falling
// back to the first option when id is empty.
func (c *Config) DeliveryOptionByID(id string) (*DeliveryOption, bool) {
	if id == "" && len(c.DeliveryOptions) > 0 {
		return &c.DeliveryOptions[0], true
	}
	for i := range c.DeliveryOptions {
		if c.DeliveryOptions[i].ID == id {
			return &c.DeliveryOptions[i], true
		}
	}
	return nil, false
}

// Carries reports whether the supplier sells material m.
func (s *Supplier) Carries(m shared.Material) bool {
	for _, mat := range s.Materials {
		if mat == m {
			return true
		}
	}
	return false
}

// AllowsShipment reports whether qty is an accepted shipment size for the
// customer. An empty allowed list accepts any size.
func (cu *Customer) AllowsShipment(qty int) bool {
	if len(cu.AllowedShipmentSizes) == 0 {
		return true
	}
	for _, size := range cu.AllowedShipmentSizes {
		if size == qty {
			return true
		}
	}
	return false
}

// Validate checks the structural sanity of the config. A malformed level is a
// programmer error and fails fast rather than surfacing mid-game.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("level %q: %w", c.ID, err)
	}
	if c.Demand == nil {
		return fmt.Errorf("level %q: demand model is required", c.ID)
	}
	for _, m := range shared.RawMaterials() {
		if _, ok := c.BasePrices[m]; !ok {
			return fmt.Errorf("level %q: missing base price for %s", c.ID, m)
		}
		if req, ok := c.MealRequirements[m]; !ok || req <= 0 {
			return fmt.Errorf("level %q: missing meal requirement for %s", c.ID, m)
		}
	}
	for _, s := range c.Suppliers {
		for _, m := range s.Materials {
			if !m.IsRaw() {
				return fmt.Errorf("level %q: supplier %q sells non-raw material %s", c.ID, s.ID, m)
			}
		}
		if len(s.ShipmentPrices) == 0 && s.CostMultiplier <= 0 {
			return fmt.Errorf("level %q: supplier %q has neither a price table nor a cost multiplier", c.ID, s.ID)
		}
	}
	for _, cu := range c.Customers {
		for _, size := range cu.AllowedShipmentSizes {
			if _, ok := cu.TransportCosts[size]; !ok {
				return fmt.Errorf("level %q: customer %q is missing a transport cost for shipment size %d", c.ID, cu.ID, size)
			}
		}
	}
	return nil
}
