package testutil

import (
	"github.com/currybox/currybox/internal/config"
	"github.com/currybox/currybox/internal/domain/catalog"
	"github.com/currybox/currybox/internal/types"
	"github.com/currybox/currybox/internal/validator"
)

func init() {
	// request DTO validation is package global; tests need it armed
	validator.NewValidator()
}

func intPtr(v int) *int {
	return &v
}

// TestCatalog returns a small fixed menu with known prices so totals in tests
// are easy to compute by hand
func TestCatalog() *catalog.Catalog {
	hot := types.SpiceLevelHot
	return &catalog.Catalog{
		BunnyFillings: []catalog.Item{
			{ID: "lamb", Name: "Lamb Bunny", Price: 1295},
			{ID: "chicken", Name: "Chicken Bunny", Price: 1095},
			{ID: "bean", Name: "Bean Bunny", Price: 895},
		},
		FamilyCurries: []catalog.Item{
			{ID: "lamb-pot", Name: "Family Lamb Curry", Price: 3495, SpiceLevel: &hot},
			{ID: "veg-pot", Name: "Family Vegetable Curry", Price: 2495},
		},
		Sides: []catalog.Item{
			{ID: "quarter-loaf", Name: "Quarter Loaf", Price: 250},
			{ID: "chips", Name: "Masala Chips", Price: 350},
		},
		Sauces: []catalog.Item{
			{ID: "chakalaka", Name: "Chakalaka", Price: 195},
			{ID: "mother-in-law", Name: "Mother-in-Law Chutney", Price: 245, MaxQuantity: intPtr(3)},
		},
		Drinks: []catalog.Item{
			{ID: "cola", Name: "Cola 330ml", Price: 250},
			{ID: "lassi", Name: "Mango Lassi", Price: 395, MaxQuantity: intPtr(6)},
		},
	}
}

// TestConfig returns the default configuration used across service tests
func TestConfig() *config.Configuration {
	return config.GetDefaultConfig()
}
