package cart

import (
	"github.com/currybox/currybox/internal/domain/pricing"
	"github.com/currybox/currybox/internal/types"
)

// Store owns the canonical line item list and the active promo code. Totals
// are delegated to the pricing engine on every read, never cached, so they
// can never go stale across mutations.
//
// Like the builder store, it has a single logical writer; the service layer
// serialises access per session.
type Store struct {
	items []Item
	promo *PromoCode
	rules pricing.RuleSet
}

// NewStore creates an empty cart governed by the given pricing rules
func NewStore(rules pricing.RuleSet) *Store {
	return &Store{
		items: make([]Item, 0),
		rules: rules,
	}
}

// Items returns a copy of the line item list
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Promo returns the active promo code, nil when none is applied
func (s *Store) Promo() *PromoCode {
	if s.promo == nil {
		return nil
	}
	p := *s.promo
	return &p
}

// AddFromBuilder appends a flattened builder selection to the cart. Boxes
// built in sequence coexist: lines are appended, except that a line for the
// same prefixed product id merges into the existing one rather than
// duplicating it.
func (s *Store) AddFromBuilder(lines []pricing.CostedLine) {
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		productID := PrefixedProductID(line.Category, line.ProductID)
		if idx := s.indexOfProduct(productID); idx >= 0 {
			s.items[idx].Quantity += line.Quantity
			if line.SpiceLevel != nil {
				spice := *line.SpiceLevel
				s.items[idx].SpiceLevel = &spice
			}
			continue
		}
		item := Item{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CART_LINE),
			ProductID:   productID,
			Name:        line.Name,
			Price:       line.UnitPrice,
			Quantity:    line.Quantity,
			Category:    line.Category,
			MaxQuantity: line.MaxQuantity,
		}
		if line.SpiceLevel != nil {
			spice := *line.SpiceLevel
			item.SpiceLevel = &spice
		}
		s.items = append(s.items, item)
	}
}

// AddCatalogItem adds a single item from a catalog browsing view, merging
// into an existing line for the same product rather than duplicating it. The
// add respects the item's max quantity: only the allowable remainder is added
// (possibly zero) and the result tells the caller what happened.
func (s *Store) AddCatalogItem(payload AddItemPayload) AddItemResult {
	requested := payload.Quantity
	if requested <= 0 {
		requested = 1
	}

	idx := s.indexOfProduct(payload.ProductID)

	current := 0
	maxQuantity := payload.MaxQuantity
	if idx >= 0 {
		current = s.items[idx].Quantity
		if maxQuantity == nil {
			maxQuantity = s.items[idx].MaxQuantity
		}
	}

	addable := requested
	if maxQuantity != nil {
		room := *maxQuantity - current
		if room < 0 {
			room = 0
		}
		if addable > room {
			addable = room
		}
	}

	if addable > 0 {
		if idx >= 0 {
			s.items[idx].Quantity += addable
		} else {
			s.items = append(s.items, Item{
				ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CART_LINE),
				ProductID:   payload.ProductID,
				Name:        payload.Name,
				Price:       payload.Price,
				Quantity:    addable,
				Category:    payload.Category,
				SpiceLevel:  payload.SpiceLevel,
				MaxQuantity: payload.MaxQuantity,
			})
			idx = len(s.items) - 1
		}
	}

	result := AddItemResult{
		Added:         addable > 0,
		AddedQuantity: addable,
		Remaining:     -1,
	}
	if maxQuantity != nil {
		remaining := *maxQuantity - (current + addable)
		if remaining < 0 {
			remaining = 0
		}
		result.Remaining = remaining
		result.LimitReached = remaining == 0
	}
	return result
}

// RemoveItem deletes a line by its line id
func (s *Store) RemoveItem(lineID string) bool {
	for i, item := range s.items {
		if item.ID == lineID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateQuantity sets a line's quantity; zero or below removes the line, and
// quantities above the item's max are silently clamped
func (s *Store) UpdateQuantity(lineID string, quantity int) bool {
	for i := range s.items {
		if s.items[i].ID != lineID {
			continue
		}
		if quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
		if s.items[i].MaxQuantity != nil && quantity > *s.items[i].MaxQuantity {
			quantity = *s.items[i].MaxQuantity
		}
		s.items[i].Quantity = quantity
		return true
	}
	return false
}

// Clear empties the cart. The promo code is cleared with it; a discount
// cannot outlive the items it applied to.
func (s *Store) Clear() {
	s.items = make([]Item, 0)
	s.promo = nil
}

// ApplyPromoCode stores a validated promo result verbatim, replacing any
// prior code. Passing nil removes the active code.
func (s *Store) ApplyPromoCode(promo *PromoCode) {
	if promo == nil {
		s.promo = nil
		return
	}
	p := *promo
	s.promo = &p
}

// Totals recomputes the charge summary from the current lines and promo
func (s *Store) Totals() pricing.Totals {
	priced := make([]pricing.PricedItem, len(s.items))
	for i, item := range s.items {
		priced[i] = pricing.PricedItem{UnitPrice: item.Price, Quantity: item.Quantity}
	}
	return pricing.CalculateTotals(priced, s.promo.ToPromo(), s.rules)
}

// Merge folds a server-side copy into this cart for cross-device continuity.
// Lines unknown locally are appended; lines present on both sides keep the
// larger quantity. The local promo code wins.
func (s *Store) Merge(other State) {
	for _, item := range other.Items {
		if idx := s.indexOfProduct(item.ProductID); idx >= 0 {
			if item.Quantity > s.items[idx].Quantity {
				s.items[idx].Quantity = item.Quantity
			}
			continue
		}
		s.items = append(s.items, item)
	}
	if s.promo == nil && other.Promo != nil {
		p := *other.Promo
		s.promo = &p
	}
}

// Snapshot returns the serializable state of the cart
func (s *Store) Snapshot() State {
	state := State{Items: make([]Item, len(s.items))}
	copy(state.Items, s.items)
	if s.promo != nil {
		p := *s.promo
		state.Promo = &p
	}
	return state
}

// RestoreStore rebuilds a cart store from a persisted snapshot
func RestoreStore(state State, rules pricing.RuleSet) *Store {
	store := NewStore(rules)
	store.items = make([]Item, len(state.Items))
	copy(store.items, state.Items)
	if state.Promo != nil {
		p := *state.Promo
		store.promo = &p
	}
	return store
}

func (s *Store) indexOfProduct(productID string) int {
	for i, item := range s.items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
