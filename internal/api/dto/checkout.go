package dto

import (
	"github.com/currybox/currybox/internal/domain/checkout"
	"github.com/currybox/currybox/internal/domain/order"
	"github.com/currybox/currybox/internal/validator"
)

// UpdateCheckoutRequest is a partial update; only non-nil fields are applied.
// The store itself does no validation beyond enum parsing, required-field
// checks belong to the client pages.
type UpdateCheckoutRequest struct {
	Step                  *string                    `json:"step,omitempty" validate:"omitempty,oneof=cart delivery schedule payment confirmation"`
	DeliveryAddress       *checkout.DeliveryAddress  `json:"delivery_address,omitempty"`
	DeliverySchedule      *checkout.DeliverySchedule `json:"delivery_schedule,omitempty"`
	SubscriptionFrequency *string                    `json:"subscription_frequency,omitempty" validate:"omitempty,oneof=none weekly biweekly monthly"`
	SaveAddress           *bool                      `json:"save_address,omitempty"`
	SavePaymentMethod     *bool                      `json:"save_payment_method,omitempty"`
	GuestEmail            *string                    `json:"guest_email,omitempty" validate:"omitempty,email"`
	Notes                 *string                    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

func (r *UpdateCheckoutRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// CheckoutStateResponse is the persisted checkout state plus the transient
// submission flag
type CheckoutStateResponse struct {
	checkout.State
	InFlight bool `json:"in_flight"`
}

// PlaceOrderResponse is the outcome of a submission. Reconciling is true in
// the payment-captured exception case: the charge succeeded but the order
// record is still being created in the background, the shopper is done either
// way. Reference is a short shopper-facing number support can quote while
// the order record is still pending.
type PlaceOrderResponse struct {
	OrderID      string         `json:"order_id,omitempty"`
	Reference    string         `json:"reference,omitempty"`
	PaymentToken string         `json:"payment_token"`
	Reconciling  bool           `json:"reconciling"`
	Snapshot     order.Snapshot `json:"snapshot"`
}
