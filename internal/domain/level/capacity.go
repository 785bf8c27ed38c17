package level

import "github.com/andrekvist/burgersim/internal/domain/shared"

// Unlimited marks a capacity dimension with no configured limit.
const Unlimited = -1

// Capacity is a supplier capacity limit resolved into a single per-material
// lookup at construction time. Source configs historically expressed this as
// either a flat number or a per-material map; both variants normalize here so
// the engine never type-narrows.
type Capacity struct {
	flat        int
	perMaterial map[shared.Material]int
}

// UnlimitedCapacity returns a capacity with no limit for any material.
func UnlimitedCapacity() Capacity {
	return Capacity{flat: Unlimited}
}

// FlatCapacity returns a capacity applying the same limit to every material.
func FlatCapacity(limit int) Capacity {
	return Capacity{flat: limit}
}

// PerMaterialCapacity returns a capacity with explicit per-material limits.
// Materials absent from the map are unlimited.
func PerMaterialCapacity(limits map[shared.Material]int) Capacity {
	resolved := make(map[shared.Material]int, len(limits))
	for m, l := range limits {
		resolved[m] = l
	}
	return Capacity{flat: Unlimited, perMaterial: resolved}
}

// For returns the limit for material m, or Unlimited.
func (c Capacity) For(m shared.Material) int {
	if c.perMaterial != nil {
		if limit, ok := c.perMaterial[m]; ok {
			return limit
		}
		return Unlimited
	}
	if c.flat == 0 && c.perMaterial == nil {
		// Zero value means "not configured".
		return Unlimited
	}
	return c.flat
}

// Limits reports whether m has a finite limit.
func (c Capacity) Limits(m shared.Material) bool {
	return c.For(m) >= 0
}
