package game

import "github.com/andrekvist/burgersim/internal/domain/ledger"

// The two pending-transfer queues age by one day per tick. An entry with
// daysRemaining <= 1 arrives this tick; everything else stays queued with one
// day less. Aging runs before any order placed this tick is enqueued, so a
// lead time of n days makes material ordered on day d usable from day d+n.
// Lead time 0 never touches a queue; it is applied synchronously at order
// time.

// advanceShipments splits the incoming queue into arrivals and the aged
// remainder.
func advanceShipments(queue []PendingShipment) (arrived, remaining []PendingShipment) {
	for _, p := range queue {
		if p.DaysRemaining <= 1 {
			p.DaysRemaining = 0
			arrived = append(arrived, p)
			continue
		}
		p.DaysRemaining--
		remaining = append(remaining, p)
	}
	return arrived, remaining
}

// advanceDeliveries splits the outgoing queue into arrivals and the aged
// remainder.
func advanceDeliveries(queue []PendingDelivery) (arrived, remaining []PendingDelivery) {
	for _, p := range queue {
		if p.DaysRemaining <= 1 {
			p.DaysRemaining = 0
			arrived = append(arrived, p)
			continue
		}
		p.DaysRemaining--
		remaining = append(remaining, p)
	}
	return arrived, remaining
}

// resolveShipments applies every shipment arriving this tick: the quantity is
// added to inventory and a purchase lot is recorded at totalCost/quantity.
// Malformed entries with quantity <= 0 are dropped without effect.
func (p *Processor) resolveShipments(s *State) {
	arrived, remaining := advanceShipments(s.PendingOrders)
	s.PendingOrders = remaining
	for _, shipment := range arrived {
		if shipment.Quantity <= 0 {
			continue
		}
		s.Inventory.Add(shipment.Material, shipment.Quantity)
		s.InventoryTransactions = append(s.InventoryTransactions, ledger.Lot{
			Material:   shipment.Material,
			Quantity:   shipment.Quantity,
			UnitCost:   shipment.TotalCost / float64(shipment.Quantity),
			Day:        s.Day,
			SupplierID: shipment.SupplierID,
			Timestamp:  p.clock.Now(),
		})
	}
}

// resolveDeliveries applies every customer delivery arriving this tick:
// revenue is recognized and the lifetime delivery counter advances. The
// recognized revenue is reported back so the day snapshot can include it.
func (p *Processor) resolveDeliveries(s *State) (revenue float64) {
	arrived, remaining := advanceDeliveries(s.PendingCustomerOrders)
	s.PendingCustomerOrders = remaining
	for _, delivery := range arrived {
		if delivery.Quantity <= 0 {
			continue
		}
		s.Cash += delivery.NetRevenue
		s.recordCustomerDelivery(delivery.CustomerID, delivery.Quantity)
		revenue += delivery.NetRevenue
	}
	return revenue
}
