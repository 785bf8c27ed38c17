package ledger

import (
	"sort"

	"github.com/andrekvist/burgersim/internal/domain/shared"
)

// HoldingRatePerDay is the daily warehousing cost rate applied to the
// end-of-day inventory valuation: 25% per year over a 365-day year.
const HoldingRatePerDay = 0.25 / 365

// Starting inventory carries zero acquisition cost: only stock added through
// a recorded lot has a non-zero unit cost. The two traversals below are
// deliberately asymmetric and must stay that way:
//
//   - Value walks lots newest-first, presuming the stock still on hand is the
//     most recently acquired (the free starting stock has notionally been
//     used up already).
//   - Consume spends the free starting stock first, then purchased lots
//     oldest-first.
//
// Downstream holding-cost and profit figures are calibrated against exactly
// this pairing.

// entry is the minimal lot view the shared valuation/consumption core
// operates on. Callers pass entries sorted oldest-first.
type entry struct {
	quantity int
	unitCost float64
}

// valueNewestFirst returns the acquisition value of onHand units, covering
// them with the most recently acquired entries. When onHand exceeds the
// recorded total, the whole recorded value is returned; the excess is
// zero-cost starting stock.
func valueNewestFirst(entries []entry, onHand int) float64 {
	if onHand <= 0 {
		return 0
	}
	recorded := 0
	for _, e := range entries {
		recorded += e.quantity
	}
	if onHand >= recorded {
		total := 0.0
		for _, e := range entries {
			total += float64(e.quantity) * e.unitCost
		}
		return total
	}
	value := 0.0
	remaining := onHand
	for i := len(entries) - 1; i >= 0 && remaining > 0; i-- {
		take := entries[i].quantity
		if take > remaining {
			take = remaining
		}
		value += float64(take) * entries[i].unitCost
		remaining -= take
	}
	return value
}

// consumeOldestFirst removes qty units from stock: free starting stock
// (onHand beyond the recorded total) goes first at zero cost, then entries
// oldest-first. It returns the FIFO cost of the consumed units and the
// per-entry quantities taken, so callers can rebuild a pruned lot list.
func consumeOldestFirst(entries []entry, onHand, qty int) (cost float64, taken []int) {
	taken = make([]int, len(entries))
	if qty <= 0 {
		return 0, taken
	}
	recorded := 0
	for _, e := range entries {
		recorded += e.quantity
	}
	starting := onHand - recorded
	if starting < 0 {
		starting = 0
	}
	remaining := qty
	if starting > 0 {
		free := starting
		if free > remaining {
			free = remaining
		}
		remaining -= free
	}
	for i := range entries {
		if remaining <= 0 {
			break
		}
		take := entries[i].quantity
		if take > remaining {
			take = remaining
		}
		taken[i] = take
		cost += float64(take) * entries[i].unitCost
		remaining -= take
	}
	return cost, taken
}

// sortedLots returns the lots for one material ordered oldest-first by
// (day, timestamp), together with their positions in the original slice.
func sortedLots(lots []Lot, m shared.Material) ([]Lot, []int) {
	var filtered []Lot
	var indices []int
	for i, lot := range lots {
		if lot.Material == m {
			filtered = append(filtered, lot)
			indices = append(indices, i)
		}
	}
	order := make([]int, len(filtered))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		la, lb := filtered[order[a]], filtered[order[b]]
		if la.Day != lb.Day {
			return la.Day < lb.Day
		}
		return la.Timestamp.Before(lb.Timestamp)
	})
	sorted := make([]Lot, len(filtered))
	sortedIdx := make([]int, len(filtered))
	for i, o := range order {
		sorted[i] = filtered[o]
		sortedIdx[i] = indices[o]
	}
	return sorted, sortedIdx
}

// Value computes the acquisition value of onHand units of material m held
// against the given purchase lots.
func Value(lots []Lot, m shared.Material, onHand int) float64 {
	sorted, _ := sortedLots(lots, m)
	entries := make([]entry, len(sorted))
	for i, lot := range sorted {
		entries[i] = entry{quantity: lot.Quantity, unitCost: lot.UnitCost}
	}
	return valueNewestFirst(entries, onHand)
}

// Purchased returns the total recorded lot quantity for material m.
func Purchased(lots []Lot, m shared.Material) int {
	total := 0
	for _, lot := range lots {
		if lot.Material == m {
			total += lot.Quantity
		}
	}
	return total
}

// Consume removes qty units of material m from the lot list, free starting
// stock first, then oldest lots first. It returns the FIFO cost of the
// consumed units and a fresh lot list with exhausted lots pruned; the input
// slice is not modified.
func Consume(lots []Lot, m shared.Material, onHand, qty int) (float64, []Lot) {
	sorted, sortedIdx := sortedLots(lots, m)
	entries := make([]entry, len(sorted))
	for i, lot := range sorted {
		entries[i] = entry{quantity: lot.Quantity, unitCost: lot.UnitCost}
	}
	cost, taken := consumeOldestFirst(entries, onHand, qty)

	takenByIndex := make(map[int]int, len(taken))
	for i, t := range taken {
		if t > 0 {
			takenByIndex[sortedIdx[i]] = t
		}
	}
	remaining := make([]Lot, 0, len(lots))
	for i, lot := range lots {
		lot.Quantity -= takenByIndex[i]
		if lot.Material == m && lot.Quantity <= 0 {
			continue
		}
		remaining = append(remaining, lot)
	}
	return cost, remaining
}

// ValueBatches computes the acquisition value of onHand finished-goods units
// held against the given production batches.
func ValueBatches(batches []Batch, onHand int) float64 {
	sorted := sortedBatches(batches)
	entries := make([]entry, len(sorted))
	for i, b := range sorted {
		entries[i] = entry{quantity: b.Quantity, unitCost: b.UnitCost}
	}
	return valueNewestFirst(entries, onHand)
}

// ConsumeBatches removes qty finished-goods units, free starting stock first,
// then oldest batches first. It returns the FIFO cost of goods sold and a
// fresh batch list with exhausted batches pruned.
func ConsumeBatches(batches []Batch, onHand, qty int) (float64, []Batch) {
	sorted := sortedBatches(batches)
	entries := make([]entry, len(sorted))
	for i, b := range sorted {
		entries[i] = entry{quantity: b.Quantity, unitCost: b.UnitCost}
	}
	cost, taken := consumeOldestFirst(entries, onHand, qty)

	remaining := make([]Batch, 0, len(sorted))
	for i, b := range sorted {
		b.Quantity -= taken[i]
		if b.Quantity <= 0 {
			continue
		}
		remaining = append(remaining, b)
	}
	return cost, remaining
}

func sortedBatches(batches []Batch) []Batch {
	sorted := make([]Batch, len(batches))
	copy(sorted, batches)
	sort.SliceStable(sorted, func(a, b int) bool {
		if sorted[a].Day != sorted[b].Day {
			return sorted[a].Day < sorted[b].Day
		}
		return sorted[a].Timestamp.Before(sorted[b].Timestamp)
	})
	return sorted
}

// HoldingCost returns the daily warehousing charge for inventory worth value.
func HoldingCost(value, dailyRate float64) float64 {
	if value <= 0 {
		return 0
	}
	return value * dailyRate
}
