package shared

// Material identifies one of the inventory categories tracked by the
// simulation. The four raw materials are combined into finished goods by
// production; MaterialFinished is the sellable end product.
type Material string

const (
	MaterialPatty    Material = "patty"
	MaterialCheese   Material = "cheese"
	MaterialBun      Material = "bun"
	MaterialPotato   Material = "potato"
	MaterialFinished Material = "finishedGoods"
)

// RawMaterials returns the four purchasable raw materials.
func RawMaterials() []Material {
	return []Material{MaterialPatty, MaterialCheese, MaterialBun, MaterialPotato}
}

// Categories returns every inventory category, raw materials first.
// Holding cost and overstock rules iterate in this order so that
// per-category breakdowns are stable.
func Categories() []Material {
	return []Material{MaterialPatty, MaterialCheese, MaterialBun, MaterialPotato, MaterialFinished}
}

// IsRaw reports whether m is one of the purchasable raw materials.
func (m Material) IsRaw() bool {
	switch m {
	case MaterialPatty, MaterialCheese, MaterialBun, MaterialPotato:
		return true
	}
	return false
}

// IsValid reports whether m names a known inventory category.
func (m Material) IsValid() bool {
	return m.IsRaw() || m == MaterialFinished
}

func (m Material) String() string {
	return string(m)
}
