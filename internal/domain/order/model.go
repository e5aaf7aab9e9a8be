package order

import (
	"time"

	"github.com/currybox/currybox/internal/domain/cart"
	"github.com/currybox/currybox/internal/domain/checkout"
	"github.com/currybox/currybox/internal/types"
)

// Snapshot is the frozen view handed to the order/payment collaborator: line
// items plus computed totals plus shopper intent. Nothing in it is
// recalculated after freezing.
type Snapshot struct {
	Items                 []cart.Item                 `json:"items"`
	Subtotal              int64                       `json:"subtotal"`
	DeliveryFee           int64                       `json:"delivery_fee"`
	Discount              int64                       `json:"discount"`
	Total                 int64                       `json:"total"`
	DeliveryAddress       *checkout.DeliveryAddress   `json:"delivery_address,omitempty"`
	DeliveryDate          string                      `json:"delivery_date,omitempty"`
	DeliveryTimeSlot      string                      `json:"delivery_time_slot,omitempty"`
	PromoCode             string                      `json:"promo_code,omitempty"`
	SubscriptionFrequency types.SubscriptionFrequency `json:"subscription_frequency,omitempty"`
	GuestEmail            string                      `json:"guest_email,omitempty"`
	Notes                 string                      `json:"notes,omitempty"`
}

// PendingStatus tracks a dangling payment awaiting an order record
type PendingStatus string

const (
	PendingStatusOpen      PendingStatus = "open"
	PendingStatusResolved  PendingStatus = "resolved"
	PendingStatusAbandoned PendingStatus = "abandoned"
)

// Pending is a payment that was captured before order creation failed. Order
// creation is idempotent keyed by the payment confirmation token, so retrying
// can never double-create.
type Pending struct {
	ID           string        `json:"id"`
	Reference    string        `json:"reference"`
	PaymentToken string        `json:"payment_token"`
	SessionID    string        `json:"session_id"`
	Snapshot     Snapshot      `json:"snapshot"`
	Status       PendingStatus `json:"status"`
	Attempts     int           `json:"attempts"`
	LastError    string        `json:"last_error,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// NewPending wraps a snapshot for reconciliation
func NewPending(sessionID, paymentToken string, snapshot Snapshot) *Pending {
	now := time.Now().UTC()
	return &Pending{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RECONCILE),
		Reference:    types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_ORDER),
		PaymentToken: paymentToken,
		SessionID:    sessionID,
		Snapshot:     snapshot,
		Status:       PendingStatusOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
