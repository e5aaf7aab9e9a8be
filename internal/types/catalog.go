package types

// ItemCategory identifies which part of the menu a purchasable item belongs to.
// Cart lines carry the category of the selection that produced them.
type ItemCategory string

const (
	// ItemCategoryBunny is a bunny chow filling curry
	ItemCategoryBunny ItemCategory = "bunny"
	// ItemCategoryFamily is a family-size curry
	ItemCategoryFamily ItemCategory = "family"
	ItemCategorySide   ItemCategory = "side"
	ItemCategorySauce  ItemCategory = "sauce"
	ItemCategoryDrink  ItemCategory = "drink"
)

func (c ItemCategory) Validate() bool {
	switch c {
	case ItemCategoryBunny, ItemCategoryFamily, ItemCategorySide, ItemCategorySauce, ItemCategoryDrink:
		return true
	}
	return false
}

// QuantityCategories are the categories managed through plain quantity maps
// in the builder. Curries have their own selection type carrying spice level.
var QuantityCategories = []ItemCategory{ItemCategorySide, ItemCategorySauce, ItemCategoryDrink}

// SpiceLevel is the heat level a shopper picks for a curry
type SpiceLevel string

const (
	SpiceLevelMild    SpiceLevel = "mild"
	SpiceLevelHot     SpiceLevel = "hot"
	SpiceLevelVeryHot SpiceLevel = "very_hot"
)

func (s SpiceLevel) Validate() bool {
	switch s {
	case SpiceLevelMild, SpiceLevelHot, SpiceLevelVeryHot:
		return true
	}
	return false
}

// CurryKind distinguishes the two independent curry selection maps
type CurryKind string

const (
	CurryKindBunny  CurryKind = "bunny"
	CurryKindFamily CurryKind = "family"
)
