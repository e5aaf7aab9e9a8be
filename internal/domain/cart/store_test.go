package cart

import (
	"testing"

	"github.com/currybox/currybox/internal/domain/pricing"
	"github.com/currybox/currybox/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRules() pricing.RuleSet {
	return pricing.RuleSet{
		FreeDeliveryThreshold: 5000,
		DeliveryFee:           500,
		VolumeTiers: []pricing.VolumeTier{
			{MinItems: 15, Percent: 15},
			{MinItems: 10, Percent: 10},
			{MinItems: 5, Percent: 5},
		},
	}
}

func intPtr(v int) *int { return &v }

func lambLine() pricing.CostedLine {
	spice := types.SpiceLevelHot
	return pricing.CostedLine{
		Category:   types.ItemCategoryBunny,
		ProductID:  "lamb",
		Name:       "Lamb Bunny",
		UnitPrice:  1295,
		Quantity:   1,
		LineTotal:  1295,
		SpiceLevel: &spice,
	}
}

func TestAddFromBuilderPrefixesProductIDs(t *testing.T) {
	store := NewStore(testRules())
	store.AddFromBuilder([]pricing.CostedLine{lambLine()})

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "bunny-lamb", items[0].ProductID)
	assert.Equal(t, types.ItemCategoryBunny, items[0].Category)
	assert.Equal(t, int64(1295), items[0].Price)
	assert.NotEmpty(t, items[0].ID)
}

func TestAddFromBuilderMergesSameProduct(t *testing.T) {
	// two boxes built in sequence with the same filling merge into one line
	store := NewStore(testRules())
	store.AddFromBuilder([]pricing.CostedLine{lambLine()})
	store.AddFromBuilder([]pricing.CostedLine{lambLine()})

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(2590), store.Totals().Subtotal)
}

func TestAddFromBuilderSkipsZeroQuantities(t *testing.T) {
	line := lambLine()
	line.Quantity = 0
	store := NewStore(testRules())
	store.AddFromBuilder([]pricing.CostedLine{line})
	assert.Empty(t, store.Items())
}

func TestAddCatalogItemPartialAdd(t *testing.T) {
	store := NewStore(testRules())

	first := store.AddCatalogItem(AddItemPayload{
		ProductID: "lassi", Name: "Mango Lassi", Price: 395,
		Quantity: 2, Category: types.ItemCategoryDrink, MaxQuantity: intPtr(3),
	})
	assert.True(t, first.Added)
	assert.Equal(t, 2, first.AddedQuantity)
	assert.False(t, first.LimitReached)
	assert.Equal(t, 1, first.Remaining)

	// requesting five more only fits one
	second := store.AddCatalogItem(AddItemPayload{
		ProductID: "lassi", Name: "Mango Lassi", Price: 395,
		Quantity: 5, Category: types.ItemCategoryDrink, MaxQuantity: intPtr(3),
	})
	assert.True(t, second.Added)
	assert.Equal(t, 1, second.AddedQuantity)
	assert.True(t, second.LimitReached)
	assert.Equal(t, 0, second.Remaining)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	// at the limit nothing is added
	third := store.AddCatalogItem(AddItemPayload{
		ProductID: "lassi", Name: "Mango Lassi", Price: 395,
		Quantity: 1, Category: types.ItemCategoryDrink, MaxQuantity: intPtr(3),
	})
	assert.False(t, third.Added)
	assert.Equal(t, 0, third.AddedQuantity)
	assert.True(t, third.LimitReached)
}

func TestAddCatalogItemUnlimited(t *testing.T) {
	store := NewStore(testRules())
	result := store.AddCatalogItem(AddItemPayload{
		ProductID: "cola", Name: "Cola", Price: 250,
		Quantity: 40, Category: types.ItemCategoryDrink,
	})
	assert.True(t, result.Added)
	assert.Equal(t, 40, result.AddedQuantity)
	assert.False(t, result.LimitReached)
	assert.Equal(t, -1, result.Remaining)
}

func TestAddCatalogItemDefaultsQuantityToOne(t *testing.T) {
	store := NewStore(testRules())
	result := store.AddCatalogItem(AddItemPayload{
		ProductID: "cola", Name: "Cola", Price: 250,
		Category: types.ItemCategoryDrink,
	})
	assert.Equal(t, 1, result.AddedQuantity)
}

func TestRemoveItem(t *testing.T) {
	store := NewStore(testRules())
	store.AddFromBuilder([]pricing.CostedLine{lambLine()})
	lineID := store.Items()[0].ID

	assert.True(t, store.RemoveItem(lineID))
	assert.Empty(t, store.Items())
	assert.False(t, store.RemoveItem(lineID))
}

func TestUpdateQuantity(t *testing.T) {
	store := NewStore(testRules())
	store.AddCatalogItem(AddItemPayload{
		ProductID: "lassi", Name: "Mango Lassi", Price: 395,
		Quantity: 1, Category: types.ItemCategoryDrink, MaxQuantity: intPtr(3),
	})
	lineID := store.Items()[0].ID

	require.True(t, store.UpdateQuantity(lineID, 2))
	assert.Equal(t, 2, store.Items()[0].Quantity)

	// silently clamped to the max
	require.True(t, store.UpdateQuantity(lineID, 10))
	assert.Equal(t, 3, store.Items()[0].Quantity)

	// zero removes the line
	require.True(t, store.UpdateQuantity(lineID, 0))
	assert.Empty(t, store.Items())

	assert.False(t, store.UpdateQuantity("missing", 1))
}

func TestClearAlsoDropsPromo(t *testing.T) {
	store := NewStore(testRules())
	store.AddFromBuilder([]pricing.CostedLine{lambLine()})
	store.ApplyPromoCode(&PromoCode{Code: "TEN", DiscountType: types.DiscountTypePercentage, DiscountValue: 10, IsValid: true})

	store.Clear()

	assert.Empty(t, store.Items())
	assert.Nil(t, store.Promo())
}

func TestApplyPromoCodeReplaces(t *testing.T) {
	store := NewStore(testRules())
	store.ApplyPromoCode(&PromoCode{Code: "FIRST", IsValid: true})
	store.ApplyPromoCode(&PromoCode{Code: "SECOND", IsValid: true})

	require.NotNil(t, store.Promo())
	assert.Equal(t, "SECOND", store.Promo().Code)

	store.ApplyPromoCode(nil)
	assert.Nil(t, store.Promo())
}

func TestInvalidPromoStoredButIgnoredByTotals(t *testing.T) {
	store := NewStore(testRules())
	store.AddFromBuilder([]pricing.CostedLine{lambLine()})
	store.ApplyPromoCode(&PromoCode{Code: "EXPIRED", DiscountType: types.DiscountTypePercentage, DiscountValue: 50, IsValid: false, ErrorMessage: "code expired"})

	require.NotNil(t, store.Promo())
	assert.Equal(t, "code expired", store.Promo().ErrorMessage)
	assert.Equal(t, int64(0), store.Totals().PromoDiscount)
}

func TestTotalsWithValidPromo(t *testing.T) {
	store := NewStore(testRules())
	store.AddFromBuilder([]pricing.CostedLine{lambLine()})
	store.ApplyPromoCode(&PromoCode{Code: "TEN", DiscountType: types.DiscountTypePercentage, DiscountValue: 10, IsValid: true})

	totals := store.Totals()
	assert.Equal(t, int64(1295), totals.Subtotal)
	assert.Equal(t, int64(130), totals.PromoDiscount) // 129.5 rounds up
	assert.Equal(t, int64(500), totals.DeliveryFee)
	assert.Equal(t, int64(1665), totals.Total)
}

func TestMerge(t *testing.T) {
	store := NewStore(testRules())
	store.AddFromBuilder([]pricing.CostedLine{lambLine()})
	store.ApplyPromoCode(&PromoCode{Code: "LOCAL", IsValid: true})

	server := State{
		Items: []Item{
			{ID: "line_x", ProductID: "bunny-lamb", Name: "Lamb Bunny", Price: 1295, Quantity: 3, Category: types.ItemCategoryBunny},
			{ID: "line_y", ProductID: "drink-cola", Name: "Cola", Price: 250, Quantity: 1, Category: types.ItemCategoryDrink},
		},
		Promo: &PromoCode{Code: "SERVER", IsValid: true},
	}
	store.Merge(server)

	items := store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity, "larger quantity wins")
	assert.Equal(t, "drink-cola", items[1].ProductID)
	assert.Equal(t, "LOCAL", store.Promo().Code, "local promo wins")
}

func TestMergePromoFillsEmptySlot(t *testing.T) {
	store := NewStore(testRules())
	store.Merge(State{Promo: &PromoCode{Code: "SERVER", IsValid: true}})
	require.NotNil(t, store.Promo())
	assert.Equal(t, "SERVER", store.Promo().Code)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	store := NewStore(testRules())
	store.AddFromBuilder([]pricing.CostedLine{lambLine()})
	store.ApplyPromoCode(&PromoCode{Code: "TEN", DiscountType: types.DiscountTypePercentage, DiscountValue: 10, IsValid: true})

	restored := RestoreStore(store.Snapshot(), testRules())

	assert.Equal(t, store.Items(), restored.Items())
	assert.Equal(t, store.Promo(), restored.Promo())
	assert.Equal(t, store.Totals(), restored.Totals())
}

func TestPrefixedProductID(t *testing.T) {
	assert.Equal(t, "bunny-lamb", PrefixedProductID(types.ItemCategoryBunny, "lamb"))
	assert.Equal(t, "side-chips", PrefixedProductID(types.ItemCategorySide, "chips"))
}
