package dto

import (
	"github.com/currybox/currybox/internal/domain/cart"
	"github.com/currybox/currybox/internal/domain/pricing"
	"github.com/currybox/currybox/internal/types"
	"github.com/currybox/currybox/internal/validator"
)

// CartResponse is the cart view: lines, the active promo and freshly computed
// totals
type CartResponse struct {
	Items  []cart.Item     `json:"items"`
	Promo  *cart.PromoCode `json:"promo,omitempty"`
	Totals pricing.Totals  `json:"totals"`
}

// AddCartItemRequest adds a single item from a catalog browsing view
type AddCartItemRequest struct {
	ProductID   string            `json:"product_id" validate:"required"`
	Name        string            `json:"name" validate:"required"`
	Price       int64             `json:"price" validate:"gte=0"`
	Quantity    int               `json:"quantity" validate:"omitempty,gte=1"`
	Category    string            `json:"category" validate:"required,oneof=bunny family side sauce drink"`
	SpiceLevel  *types.SpiceLevel `json:"spice_level,omitempty"`
	MaxQuantity *int              `json:"max_quantity,omitempty"`
}

func (r *AddCartItemRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *AddCartItemRequest) ToPayload() cart.AddItemPayload {
	return cart.AddItemPayload{
		ProductID:   r.ProductID,
		Name:        r.Name,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Category:    types.ItemCategory(r.Category),
		SpiceLevel:  r.SpiceLevel,
		MaxQuantity: r.MaxQuantity,
	}
}

// AddCartItemResponse pairs the explicit add outcome with the refreshed cart
type AddCartItemResponse struct {
	Result cart.AddItemResult `json:"result"`
	Cart   CartResponse       `json:"cart"`
}

// UpdateCartItemRequest sets a line's quantity; zero removes the line
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

func (r *UpdateCartItemRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ApplyPromoRequest submits a promo code for validation
type ApplyPromoRequest struct {
	Code string `json:"code" validate:"required,max=64"`
}

func (r *ApplyPromoRequest) Validate() error {
	return validator.ValidateRequest(r)
}
