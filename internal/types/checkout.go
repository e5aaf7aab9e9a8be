package types

// CheckoutStep is one page of the multi-page checkout sequence
type CheckoutStep string

const (
	CheckoutStepCart         CheckoutStep = "cart"
	CheckoutStepDelivery     CheckoutStep = "delivery"
	CheckoutStepSchedule     CheckoutStep = "schedule"
	CheckoutStepPayment      CheckoutStep = "payment"
	CheckoutStepConfirmation CheckoutStep = "confirmation"
)

// SubscriptionFrequency is the cadence at which a box order repeats
type SubscriptionFrequency string

const (
	SubscriptionNone     SubscriptionFrequency = "none"
	SubscriptionWeekly   SubscriptionFrequency = "weekly"
	SubscriptionBiweekly SubscriptionFrequency = "biweekly"
	SubscriptionMonthly  SubscriptionFrequency = "monthly"
)

func (f SubscriptionFrequency) Validate() bool {
	switch f {
	case SubscriptionNone, SubscriptionWeekly, SubscriptionBiweekly, SubscriptionMonthly:
		return true
	}
	return false
}
