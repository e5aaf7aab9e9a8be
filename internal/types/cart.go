package types

// DiscountType is the kind of reduction a promo code applies
type DiscountType string

const (
	// DiscountTypePercentage reduces the subtotal by a percentage
	DiscountTypePercentage DiscountType = "percentage"
	// DiscountTypeFixed reduces the total by a fixed amount of minor units
	DiscountTypeFixed DiscountType = "fixed"
)

func (d DiscountType) Validate() bool {
	switch d {
	case DiscountTypePercentage, DiscountTypeFixed:
		return true
	}
	return false
}
