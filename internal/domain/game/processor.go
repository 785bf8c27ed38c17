package game

import (
	"math/rand"
	"time"

	"github.com/andrekvist/burgersim/internal/domain/ledger"
	"github.com/andrekvist/burgersim/internal/domain/level"
	"github.com/andrekvist/burgersim/internal/domain/shared"
	"github.com/andrekvist/burgersim/pkg/utils"
)

// LatenessPenaltyRate is the charge per shortfall unit, as a fraction of the
// customer's unit price, when a delivery milestone is missed.
const LatenessPenaltyRate = 0.4

// Processor advances a game by one day at a time. It performs no I/O and
// raises no errors for player input: invalid lines are clamped or skipped,
// and the only terminal signal is the state's GameOver flag. One processor
// serves one level config; it is not safe for concurrent ticks against the
// same state (the caller serializes, one writer per game).
type Processor struct {
	cfg   *level.Config
	rng   *rand.Rand
	clock shared.Clock
}

// NewProcessor creates a day processor for the given level.
func NewProcessor(cfg *level.Config) *Processor {
	return &Processor{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		clock: shared.NewRealClock(),
	}
}

// WithRand replaces the random source used for randomized lead times.
func (p *Processor) WithRand(rng *rand.Rand) *Processor {
	p.rng = rng
	return p
}

// WithClock replaces the clock used to stamp FIFO lots.
func (p *Processor) WithClock(clock shared.Clock) *Processor {
	p.clock = clock
	return p
}

// tickTotals accumulates the day's figures for the history snapshot.
type tickTotals struct {
	purchased       int
	purchaseCost    float64
	produced        int
	productionCost  float64
	directSold      int
	shipped         int
	revenue         float64
	holding         float64
	overstock       float64
	lateness        float64
	latenessEvents  []LatenessPenalty
	overstockEvents []OverstockPenalty
}

// ProcessDay runs one simulated day against a private copy of prev and
// returns the new state. The step order is load-bearing: every step reads
// cash and inventory as left by the steps before it.
func (p *Processor) ProcessDay(prev *State, action Action) *State {
	s := prev.Clone()
	if s.GameOver {
		return s
	}
	cashBefore := s.Cash
	tick := &tickTotals{}

	// 1-2. Resolve pending transfers before anything ordered today exists.
	p.resolveShipments(s)
	tick.revenue += p.resolveDeliveries(s)

	// 3-6. Apply the player's decisions.
	p.applyPurchases(s, action, tick)
	p.applyProduction(s, action, tick)
	p.applyDirectSales(s, action, tick)
	p.applyCustomerOrders(s, action, tick)

	// 7-9. End-of-day assessments on the post-action position.
	p.assessLateness(s, tick)
	p.assessOverstock(s, tick)
	inventoryValue := p.applyHoldingCost(s, tick)

	// 10-12. Roll profit, score, and record the day.
	dailyProfit := s.Cash - cashBefore
	s.CumulativeProfit += dailyProfit
	s.Score = Score(s.CumulativeProfit, p.cfg.MaxScore)
	s.History = append(s.History, DayResult{
		Day:              s.Day,
		Cash:             s.Cash,
		Inventory:        s.Inventory,
		InventoryValue:   inventoryValue,
		Purchased:        tick.purchased,
		Produced:         tick.produced,
		DirectSold:       tick.directSold,
		Shipped:          tick.shipped,
		Revenue:          tick.revenue,
		Costs: CostBreakdown{
			Purchases:  tick.purchaseCost,
			Production: tick.productionCost,
			Holding:    tick.holding,
			Overstock:  tick.overstock,
			Lateness:   tick.lateness,
			Total:      tick.purchaseCost + tick.productionCost + tick.holding + tick.overstock + tick.lateness,
		},
		Profit:             dailyProfit,
		CumulativeProfit:   s.CumulativeProfit,
		Score:              s.Score,
		LatenessPenalties:  tick.latenessEvents,
		OverstockPenalties: tick.overstockEvents,
	})

	// 13. Bankruptcy: negative-or-zero cash with no finished goods left to
	// liquidate is terminal; the day counter freezes.
	if s.Cash <= 0 && s.Inventory.FinishedGoods == 0 {
		s.GameOver = true
		return s
	}

	// 14. Advance the clock and refresh the spot demand quote.
	s.Day++
	s.CurrentDemand = p.cfg.Demand(s.Day)
	return s
}

// orderQuote is the engine's pricing of one supplier order line after
// capacity clamping.
type orderQuote struct {
	quantity  int
	unitCost  float64
	totalCost float64
	leadFixed int // lead time before any random draw
	random    bool
}

// tickOrders tallies the units already ordered per supplier and material
// within the current tick, so per-day capacity binds the day's total rather
// than each line separately.
type tickOrders map[string]map[shared.Material]int

func (t tickOrders) of(supplierID string, m shared.Material) int {
	return t[supplierID][m]
}

func (t tickOrders) add(supplierID string, m shared.Material, qty int) {
	if t[supplierID] == nil {
		t[supplierID] = make(map[shared.Material]int)
	}
	t[supplierID][m] += qty
}

// quoteOrder prices one order line: capacity clamps, then either the
// supplier's shipment-size table or base price x supplier multiplier x
// delivery-option multiplier. A zero quantity quote means the line is a
// no-op.
func quoteOrder(cfg *level.Config, s *State, line SupplierOrder, option *level.DeliveryOption, ordered tickOrders) (orderQuote, *level.Supplier) {
	if line.Quantity <= 0 || !line.Material.IsRaw() {
		return orderQuote{}, nil
	}
	supplier, ok := cfg.SupplierByID(line.SupplierID)
	if !ok || !supplier.Carries(line.Material) {
		return orderQuote{}, nil
	}

	qty := line.Quantity
	if limit := supplier.CapacityPerDay.For(line.Material); limit >= 0 {
		remaining := limit - ordered.of(supplier.ID, line.Material)
		qty = utils.Min(qty, utils.Max(remaining, 0))
	}
	if limit := supplier.CapacityPerGame.For(line.Material); limit >= 0 {
		remaining := limit - s.supplierReceived(supplier.ID, line.Material)
		qty = utils.Min(qty, utils.Max(remaining, 0))
	}
	if qty <= 0 {
		return orderQuote{}, nil
	}

	var unitCost float64
	if price, ok := supplier.ShipmentPrices[qty]; ok {
		unitCost = price
	} else {
		unitCost = cfg.BasePrices[line.Material] * supplier.CostMultiplier * option.CostMultiplier
	}

	q := orderQuote{
		quantity:  qty,
		unitCost:  unitCost,
		totalCost: float64(qty) * unitCost,
	}
	if len(supplier.RandomLeadTimes) > 0 {
		// Randomized suppliers draw at order time and ignore the delivery
		// option's lead time.
		q.random = true
	} else {
		q.leadFixed = supplier.LeadTime + option.LeadTime
	}
	return q, supplier
}

// applyPurchases executes step 3: cash is paid and the supplier lifetime
// counter advances at order time regardless of lead time; the material
// arrives now (lead 0) or through the pending queue.
func (p *Processor) applyPurchases(s *State, action Action, tick *tickTotals) {
	option, ok := p.cfg.DeliveryOptionByID(action.DeliveryOptionID)
	if !ok {
		return
	}
	ordered := make(tickOrders)
	for _, line := range action.SupplierOrders {
		quote, supplier := quoteOrder(p.cfg, s, line, option, ordered)
		if quote.quantity <= 0 {
			continue
		}
		ordered.add(supplier.ID, line.Material, quote.quantity)

		s.Cash -= quote.totalCost
		s.recordSupplierDelivery(supplier.ID, line.Material, quote.quantity)
		tick.purchased += quote.quantity
		tick.purchaseCost += quote.totalCost

		lead := quote.leadFixed
		if quote.random {
			lead = supplier.RandomLeadTimes[p.rng.Intn(len(supplier.RandomLeadTimes))]
		}
		if lead <= 0 {
			s.Inventory.Add(line.Material, quote.quantity)
			s.InventoryTransactions = append(s.InventoryTransactions, ledger.Lot{
				Material:   line.Material,
				Quantity:   quote.quantity,
				UnitCost:   quote.unitCost,
				Day:        s.Day,
				SupplierID: supplier.ID,
				Timestamp:  p.clock.Now(),
			})
			continue
		}
		s.PendingOrders = append(s.PendingOrders, PendingShipment{
			Material:         line.Material,
			Quantity:         quote.quantity,
			DaysRemaining:    lead,
			TotalCost:        quote.totalCost,
			SupplierID:       supplier.ID,
			DeliveryOptionID: option.ID,
		})
	}
}

// maxProducible returns how many meals the current raw-material stock
// supports.
func (p *Processor) maxProducible(inv shared.Inventory) int {
	producible := -1
	for _, m := range shared.RawMaterials() {
		perMeal := p.cfg.MealRequirements[m]
		if perMeal <= 0 {
			continue
		}
		limit := inv.Of(m) / perMeal
		if producible < 0 || limit < producible {
			producible = limit
		}
	}
	if producible < 0 {
		return 0
	}
	return producible
}

// applyProduction executes step 4: clamp to materials, capacity and the
// requested amount, consume raw-material FIFO, book a finished-goods batch,
// pay the production cost.
func (p *Processor) applyProduction(s *State, action Action, tick *tickTotals) {
	amount := utils.Min(action.Production, p.maxProducible(s.Inventory))
	if p.cfg.ProductionCapacityPerDay > 0 {
		amount = utils.Min(amount, p.cfg.ProductionCapacityPerDay)
	}
	if amount <= 0 {
		return
	}

	rawCost := 0.0
	for _, m := range shared.RawMaterials() {
		needed := amount * p.cfg.MealRequirements[m]
		if needed <= 0 {
			continue
		}
		cost, remaining := ledger.Consume(s.InventoryTransactions, m, s.Inventory.Of(m), needed)
		s.InventoryTransactions = remaining
		s.Inventory.Add(m, -needed)
		rawCost += cost
	}

	productionCost := float64(amount) * p.cfg.ProductionCostPerUnit
	s.FinishedGoodsBatches = append(s.FinishedGoodsBatches, ledger.Batch{
		Quantity:        amount,
		UnitCost:        (rawCost + productionCost) / float64(amount),
		Day:             s.Day,
		RawMaterialCost: rawCost,
		ProductionCost:  productionCost,
		Timestamp:       p.clock.Now(),
	})
	s.Inventory.Add(shared.MaterialFinished, amount)
	s.Cash -= productionCost
	tick.produced += amount
	tick.productionCost += productionCost
}

// applyDirectSales executes step 5: sell over the counter at the day's spot
// price. The FIFO cost of goods sold is tracked through batch consumption but
// only revenue moves cash.
func (p *Processor) applyDirectSales(s *State, action Action, tick *tickTotals) {
	qty := utils.Min(action.DirectSales, s.Inventory.FinishedGoods)
	if qty <= 0 {
		return
	}
	_, remaining := ledger.ConsumeBatches(s.FinishedGoodsBatches, s.Inventory.FinishedGoods, qty)
	s.FinishedGoodsBatches = remaining
	s.Inventory.Add(shared.MaterialFinished, -qty)

	revenue := float64(qty) * s.CurrentDemand.PricePerUnit
	s.Cash += revenue
	tick.directSold += qty
	tick.revenue += revenue
}

// applyCustomerOrders executes step 6: each line either ships whole or is
// skipped; there are no partial fills and a skip carries no penalty.
func (p *Processor) applyCustomerOrders(s *State, action Action, tick *tickTotals) {
	for _, line := range action.CustomerOrders {
		customer, ok := p.cfg.CustomerByID(line.CustomerID)
		if !ok {
			continue
		}
		qty := line.Quantity
		if qty <= 0 || qty > s.Inventory.FinishedGoods {
			continue
		}
		if !customer.AllowsShipment(qty) || qty < customer.MinShipmentQuantity {
			continue
		}

		_, remaining := ledger.ConsumeBatches(s.FinishedGoodsBatches, s.Inventory.FinishedGoods, qty)
		s.FinishedGoodsBatches = remaining
		s.Inventory.Add(shared.MaterialFinished, -qty)

		netRevenue := float64(qty)*customer.PricePerUnit - customer.TransportCosts[qty]
		lead := customer.LeadTime
		if len(customer.RandomLeadTimes) > 0 {
			lead = customer.RandomLeadTimes[p.rng.Intn(len(customer.RandomLeadTimes))]
		}
		tick.shipped += qty
		if lead <= 0 {
			s.Cash += netRevenue
			s.recordCustomerDelivery(customer.ID, qty)
			tick.revenue += netRevenue
			continue
		}
		s.PendingCustomerOrders = append(s.PendingCustomerOrders, PendingDelivery{
			CustomerID:    customer.ID,
			Quantity:      qty,
			DaysRemaining: lead,
			NetRevenue:    netRevenue,
		})
	}
}

// assessLateness executes step 7. The check fires only on a milestone's own
// day, so a missed milestone is charged exactly once.
func (p *Processor) assessLateness(s *State, tick *tickTotals) {
	for _, customer := range p.cfg.Customers {
		due := false
		required := 0
		for _, m := range customer.Milestones {
			if m.Day == s.Day {
				due = true
			}
			if m.Day <= s.Day {
				required += m.Quantity
			}
		}
		if !due {
			continue
		}
		delivered := s.CustomerDeliveries[customer.ID]
		if delivered >= required {
			continue
		}
		shortfall := required - delivered
		amount := LatenessPenaltyRate * float64(shortfall) * customer.PricePerUnit
		s.Cash -= amount
		event := LatenessPenalty{
			Day:        s.Day,
			CustomerID: customer.ID,
			Required:   required,
			Delivered:  delivered,
			Shortfall:  shortfall,
			Amount:     amount,
		}
		s.LatenessPenalties = append(s.LatenessPenalties, event)
		tick.latenessEvents = append(tick.latenessEvents, event)
		tick.lateness += amount
	}
}

// assessOverstock executes step 8 against the end-of-day quantities.
func (p *Processor) assessOverstock(s *State, tick *tickTotals) {
	for _, category := range shared.Categories() {
		rule, ok := p.cfg.Overstock[category]
		if !ok {
			continue
		}
		qty := s.Inventory.Of(category)
		if qty <= rule.Threshold {
			continue
		}
		excess := qty - rule.Threshold
		amount := float64(excess) * rule.PenaltyPerUnit
		s.Cash -= amount
		event := OverstockPenalty{
			Day:      s.Day,
			Category: category,
			Quantity: qty,
			Excess:   excess,
			Amount:   amount,
		}
		s.OverstockPenalties = append(s.OverstockPenalties, event)
		tick.overstockEvents = append(tick.overstockEvents, event)
		tick.overstock += amount
	}
}

// inventoryValue prices the whole position: raw materials against purchase
// lots, finished goods against production batches.
func (p *Processor) inventoryValue(s *State) float64 {
	value := 0.0
	for _, m := range shared.RawMaterials() {
		value += ledger.Value(s.InventoryTransactions, m, s.Inventory.Of(m))
	}
	value += ledger.ValueBatches(s.FinishedGoodsBatches, s.Inventory.FinishedGoods)
	return value
}

// applyHoldingCost executes step 9 on the post-action valuation and returns
// that valuation for the history snapshot.
func (p *Processor) applyHoldingCost(s *State, tick *tickTotals) float64 {
	value := p.inventoryValue(s)
	holding := ledger.HoldingCost(value, p.cfg.HoldingCostRate)
	s.Cash -= holding
	tick.holding += holding
	return value
}
