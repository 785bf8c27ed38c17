package ledger

import (
	"time"

	"github.com/andrekvist/burgersim/internal/domain/shared"
)

// Lot is one recorded acquisition of a raw material: a quantity bought at a
// unit cost on a given day. Lots are consumed oldest-first for costing;
// exhausted lots are pruned the same tick they reach zero.
type Lot struct {
	Material   shared.Material `json:"materialType"`
	Quantity   int             `json:"quantity"`
	UnitCost   float64         `json:"unitCost"`
	Day        int             `json:"day"`
	SupplierID string          `json:"supplierId"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Batch is one finished-goods production run. Batches follow the same FIFO
// discipline as raw-material lots; the unit cost folds the consumed
// raw-material FIFO cost together with the per-unit production cost.
type Batch struct {
	Quantity        int       `json:"quantity"`
	UnitCost        float64   `json:"unitCost"`
	Day             int       `json:"day"`
	RawMaterialCost float64   `json:"rawMaterialCosts"`
	ProductionCost  float64   `json:"productionCost"`
	Timestamp       time.Time `json:"timestamp"`
}
