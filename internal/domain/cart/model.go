package cart

import (
	"fmt"

	"github.com/currybox/currybox/internal/domain/pricing"
	"github.com/currybox/currybox/internal/types"
)

// Item is one priced, quantified line in the cart. There is exactly one Item
// per distinct (product id, origin) pair; builder-origin lines carry a
// category-prefixed product id so a boxed item never collides with the same
// product added from the catalog browsing view.
type Item struct {
	ID          string             `json:"id"`
	ProductID   string             `json:"product_id"`
	Name        string             `json:"name"`
	Price       int64              `json:"price"`
	Quantity    int                `json:"quantity"`
	Category    types.ItemCategory `json:"category"`
	SpiceLevel  *types.SpiceLevel  `json:"spice_level,omitempty"`
	MaxQuantity *int               `json:"max_quantity,omitempty"`
}

// PrefixedProductID builds the builder-origin product id for a category
func PrefixedProductID(category types.ItemCategory, productID string) string {
	return fmt.Sprintf("%s-%s", category, productID)
}

// PromoCode is the validated result of an external promo lookup. The cart
// stores it verbatim and never validates codes itself. At most one is active;
// replacing discards the prior one, codes never stack.
type PromoCode struct {
	Code          string             `json:"code"`
	DiscountType  types.DiscountType `json:"discount_type"`
	DiscountValue int64              `json:"discount_value"`
	IsValid       bool               `json:"is_valid"`
	ErrorMessage  string             `json:"error_message,omitempty"`
}

// ToPromo converts to the pricing engine's input shape
func (p *PromoCode) ToPromo() *pricing.Promo {
	if p == nil {
		return nil
	}
	return &pricing.Promo{
		Type:  p.DiscountType,
		Value: p.DiscountValue,
		Valid: p.IsValid,
	}
}

// AddItemPayload is a direct single-item add from a catalog browsing view
type AddItemPayload struct {
	ProductID   string             `json:"product_id"`
	Name        string             `json:"name"`
	Price       int64              `json:"price"`
	Quantity    int                `json:"quantity"`
	Category    types.ItemCategory `json:"category"`
	SpiceLevel  *types.SpiceLevel  `json:"spice_level,omitempty"`
	MaxQuantity *int               `json:"max_quantity,omitempty"`
}

// AddItemResult signals partial success explicitly. Unlike the builder's bulk
// quantity controls, which clamp silently, a single add action needs to tell
// the caller exactly what happened so it can render an "only N left" message.
// Remaining is the room left under the max quantity, -1 when unlimited.
type AddItemResult struct {
	Added         bool `json:"added"`
	AddedQuantity int  `json:"added_quantity"`
	LimitReached  bool `json:"limit_reached"`
	Remaining     int  `json:"remaining"`
}

// State is the serializable snapshot of a cart store
type State struct {
	Items []Item     `json:"items"`
	Promo *PromoCode `json:"promo,omitempty"`
}
