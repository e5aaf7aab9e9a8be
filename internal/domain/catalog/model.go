package catalog

import (
	"github.com/currybox/currybox/internal/types"
)

// Item is one purchasable menu entry. The catalog is externally supplied and
// read-only for the lifetime of a session; prices are non-negative integers in
// minor currency units.
type Item struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Price       int64             `json:"price" yaml:"price"`
	MaxQuantity *int              `json:"max_quantity,omitempty" yaml:"max_quantity,omitempty"`
	SpiceLevel  *types.SpiceLevel `json:"spice_level,omitempty" yaml:"spice_level,omitempty"`
}

// Catalog groups items by category. Bread bases live in Sides so the
// unspecified builder flow can offer them on the sides step.
type Catalog struct {
	BunnyFillings []Item `json:"bunny_fillings" yaml:"bunny_fillings"`
	FamilyCurries []Item `json:"family_curries" yaml:"family_curries"`
	Sides         []Item `json:"sides" yaml:"sides"`
	Sauces        []Item `json:"sauces" yaml:"sauces"`
	Drinks        []Item `json:"drinks" yaml:"drinks"`
}

// ItemsFor returns the item list for a category
func (c *Catalog) ItemsFor(category types.ItemCategory) []Item {
	switch category {
	case types.ItemCategoryBunny:
		return c.BunnyFillings
	case types.ItemCategoryFamily:
		return c.FamilyCurries
	case types.ItemCategorySide:
		return c.Sides
	case types.ItemCategorySauce:
		return c.Sauces
	case types.ItemCategoryDrink:
		return c.Drinks
	}
	return nil
}

// Lookup finds an item by category and id. The second return is false when the
// id is unknown, which callers treat as catalog drift rather than an error.
func (c *Catalog) Lookup(category types.ItemCategory, id string) (Item, bool) {
	for _, item := range c.ItemsFor(category) {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// PriceBook is a per-category price lookup table keyed by item id
type PriceBook map[types.ItemCategory]map[string]int64

// Prices derives the price lookup tables from the catalog
func (c *Catalog) Prices() PriceBook {
	book := make(PriceBook)
	for _, category := range []types.ItemCategory{
		types.ItemCategoryBunny,
		types.ItemCategoryFamily,
		types.ItemCategorySide,
		types.ItemCategorySauce,
		types.ItemCategoryDrink,
	} {
		prices := make(map[string]int64)
		for _, item := range c.ItemsFor(category) {
			prices[item.ID] = item.Price
		}
		book[category] = prices
	}
	return book
}
