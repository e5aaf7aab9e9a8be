package checkout

import (
	"github.com/currybox/currybox/internal/types"
)

// DeliveryAddress is shopper-entered and unvalidated here; required-field and
// postcode checks belong to the presentation layer.
type DeliveryAddress struct {
	RecipientName string `json:"recipient_name"`
	Line1         string `json:"line1"`
	Line2         string `json:"line2,omitempty"`
	City          string `json:"city"`
	Postcode      string `json:"postcode"`
	Phone         string `json:"phone,omitempty"`
}

// DeliverySchedule is the chosen delivery date and time slot
type DeliverySchedule struct {
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
}

// State is the multi-page checkout state, persisted independently of the cart
// so a reload mid-checkout keeps shopper-entered delivery and schedule data.
// Reset explicitly after order completion so nothing bleeds into a later
// session.
type State struct {
	Step                  types.CheckoutStep          `json:"step"`
	DeliveryAddress       *DeliveryAddress            `json:"delivery_address,omitempty"`
	DeliverySchedule      *DeliverySchedule           `json:"delivery_schedule,omitempty"`
	SubscriptionFrequency types.SubscriptionFrequency `json:"subscription_frequency"`
	SaveAddress           bool                        `json:"save_address"`
	SavePaymentMethod     bool                        `json:"save_payment_method"`
	GuestEmail            string                      `json:"guest_email,omitempty"`
	Notes                 string                      `json:"notes,omitempty"`
}

// NewState returns the initial empty checkout state
func NewState() State {
	return State{
		Step:                  types.CheckoutStepCart,
		SubscriptionFrequency: types.SubscriptionNone,
	}
}
