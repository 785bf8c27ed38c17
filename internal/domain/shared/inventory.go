package shared

// Inventory holds the on-hand quantity for every category. Quantities are
// never negative; the engine clamps consumption to available stock before
// applying it.
type Inventory struct {
	Patty         int `json:"patty"`
	Cheese        int `json:"cheese"`
	Bun           int `json:"bun"`
	Potato        int `json:"potato"`
	FinishedGoods int `json:"finishedGoods"`
}

// Of returns the on-hand quantity for the given category.
func (inv Inventory) Of(m Material) int {
	switch m {
	case MaterialPatty:
		return inv.Patty
	case MaterialCheese:
		return inv.Cheese
	case MaterialBun:
		return inv.Bun
	case MaterialPotato:
		return inv.Potato
	case MaterialFinished:
		return inv.FinishedGoods
	}
	return 0
}

// Add adjusts the on-hand quantity for the given category by delta.
// The result is clamped at zero.
func (inv *Inventory) Add(m Material, delta int) {
	set := func(p *int) {
		*p += delta
		if *p < 0 {
			*p = 0
		}
	}
	switch m {
	case MaterialPatty:
		set(&inv.Patty)
	case MaterialCheese:
		set(&inv.Cheese)
	case MaterialBun:
		set(&inv.Bun)
	case MaterialPotato:
		set(&inv.Potato)
	case MaterialFinished:
		set(&inv.FinishedGoods)
	}
}
