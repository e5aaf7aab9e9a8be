package pricing

import (
	"sort"

	"github.com/currybox/currybox/internal/domain/builder"
	"github.com/currybox/currybox/internal/domain/catalog"
	"github.com/currybox/currybox/internal/types"
)

// The engine is pure: no I/O, no clock, no mutation of inputs. Calling any
// function twice with identical inputs yields identical outputs. All monetary
// values are integers in minor currency units, so no rounding error can
// accumulate across intermediate results.

// CostedLine is one priced, quantified entry flattened out of a builder
// selection
type CostedLine struct {
	Category    types.ItemCategory `json:"category"`
	ProductID   string             `json:"product_id"`
	Name        string             `json:"name"`
	UnitPrice   int64              `json:"unit_price"`
	Quantity    int                `json:"quantity"`
	LineTotal   int64              `json:"line_total"`
	SpiceLevel  *types.SpiceLevel  `json:"spice_level,omitempty"`
	MaxQuantity *int               `json:"max_quantity,omitempty"`
}

// Promo is the pricing-relevant slice of a validated promo code
type Promo struct {
	Type  types.DiscountType `json:"type"`
	Value int64              `json:"value"`
	Valid bool               `json:"valid"`
}

// PricedItem is the minimal input CalculateTotals needs per cart line
type PricedItem struct {
	UnitPrice int64
	Quantity  int
}

// VolumeTier grants a percentage discount once the cart holds at least
// MinItems items (sum of quantities, not line count)
type VolumeTier struct {
	MinItems int
	Percent  int64
}

// RuleSet carries the configured pricing constants
type RuleSet struct {
	// FreeDeliveryThreshold is the subtotal at or above which delivery is free
	FreeDeliveryThreshold int64
	// DeliveryFee is the flat fee charged below the threshold
	DeliveryFee int64
	// VolumeTiers, highest qualifying tier wins, tiers never stack
	VolumeTiers []VolumeTier
}

// Totals is the derived charge summary; always recomputed, never stored
type Totals struct {
	Subtotal       int64 `json:"subtotal"`
	VolumeDiscount int64 `json:"volume_discount"`
	PromoDiscount  int64 `json:"promo_discount"`
	Discount       int64 `json:"discount"`
	DeliveryFee    int64 `json:"delivery_fee"`
	Total          int64 `json:"total"`
	ItemCount      int   `json:"item_count"`
}

// CostLineItems flattens a builder selection into priced line items using the
// catalog's lookup tables. Ids absent from the catalog are silently skipped:
// catalog drift from seasonal menu changes is expected and must never break
// costing. Output order is deterministic (category order, then item id).
func CostLineItems(sel builder.Selection, cat *catalog.Catalog) []CostedLine {
	lines := make([]CostedLine, 0)

	for _, id := range sortedCurryIDs(sel.BunnyFillings) {
		if line, ok := costCurry(types.ItemCategoryBunny, id, sel.BunnyFillings[id], cat); ok {
			lines = append(lines, line)
		}
	}
	for _, id := range sortedCurryIDs(sel.FamilyCurries) {
		if line, ok := costCurry(types.ItemCategoryFamily, id, sel.FamilyCurries[id], cat); ok {
			lines = append(lines, line)
		}
	}
	for _, entry := range []struct {
		category types.ItemCategory
		m        map[string]int
	}{
		{types.ItemCategorySide, sel.Sides},
		{types.ItemCategorySauce, sel.Sauces},
		{types.ItemCategoryDrink, sel.Drinks},
	} {
		for _, id := range sortedQuantityIDs(entry.m) {
			if line, ok := costQuantity(entry.category, id, entry.m[id], cat); ok {
				lines = append(lines, line)
			}
		}
	}

	return lines
}

func costCurry(category types.ItemCategory, id string, cs *builder.CurrySelection, cat *catalog.Catalog) (CostedLine, bool) {
	if cs == nil || cs.Quantity <= 0 {
		return CostedLine{}, false
	}
	item, ok := cat.Lookup(category, id)
	if !ok {
		return CostedLine{}, false
	}
	spice := cs.SpiceLevel
	return CostedLine{
		Category:    category,
		ProductID:   id,
		Name:        item.Name,
		UnitPrice:   item.Price,
		Quantity:    cs.Quantity,
		LineTotal:   item.Price * int64(cs.Quantity),
		SpiceLevel:  &spice,
		MaxQuantity: item.MaxQuantity,
	}, true
}

func costQuantity(category types.ItemCategory, id string, quantity int, cat *catalog.Catalog) (CostedLine, bool) {
	if quantity <= 0 {
		return CostedLine{}, false
	}
	item, ok := cat.Lookup(category, id)
	if !ok {
		return CostedLine{}, false
	}
	return CostedLine{
		Category:    category,
		ProductID:   id,
		Name:        item.Name,
		UnitPrice:   item.Price,
		Quantity:    quantity,
		LineTotal:   item.Price * int64(quantity),
		MaxQuantity: item.MaxQuantity,
	}, true
}

func sortedCurryIDs(m map[string]*builder.CurrySelection) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedQuantityIDs(m map[string]int) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CalculateTotals computes the charge summary for a flat list of priced line
// items and an optional promo code.
//
// Volume and promo discounts are both derived from the same subtotal, never
// from each other, so their order of computation does not matter and no
// compounding occurs. A fixed promo may exceed the subtotal; the final clamp
// absorbs it.
func CalculateTotals(items []PricedItem, promo *Promo, rules RuleSet) Totals {
	var subtotal int64
	itemCount := 0
	for _, item := range items {
		subtotal += item.UnitPrice * int64(item.Quantity)
		itemCount += item.Quantity
	}

	volumeDiscount := volumeDiscountFor(subtotal, itemCount, rules.VolumeTiers)

	var promoDiscount int64
	if promo != nil && promo.Valid {
		switch promo.Type {
		case types.DiscountTypePercentage:
			promoDiscount = roundPercent(subtotal, promo.Value)
		case types.DiscountTypeFixed:
			promoDiscount = promo.Value
		}
	}

	discount := volumeDiscount + promoDiscount

	var deliveryFee int64
	if subtotal < rules.FreeDeliveryThreshold {
		deliveryFee = rules.DeliveryFee
	}

	total := subtotal + deliveryFee - discount
	if total < 0 {
		total = 0
	}

	return Totals{
		Subtotal:       subtotal,
		VolumeDiscount: volumeDiscount,
		PromoDiscount:  promoDiscount,
		Discount:       discount,
		DeliveryFee:    deliveryFee,
		Total:          total,
		ItemCount:      itemCount,
	}
}

// volumeDiscountFor applies exactly one tier, the highest qualifying one
func volumeDiscountFor(subtotal int64, itemCount int, tiers []VolumeTier) int64 {
	best := VolumeTier{}
	for _, tier := range tiers {
		if itemCount >= tier.MinItems && tier.MinItems >= best.MinItems {
			best = tier
		}
	}
	if best.Percent == 0 {
		return 0
	}
	return roundPercent(subtotal, best.Percent)
}

// roundPercent computes round(amount * percent / 100) with integer
// arithmetic, rounding half up. Inputs are never negative.
func roundPercent(amount int64, percent int64) int64 {
	return (amount*percent + 50) / 100
}
