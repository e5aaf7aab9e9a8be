package builder

import (
	"testing"

	"github.com/currybox/currybox/internal/domain/catalog"
	"github.com/currybox/currybox/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func lamb() catalog.Item {
	return catalog.Item{ID: "lamb", Name: "Lamb Bunny", Price: 1295}
}

func chips() catalog.Item {
	return catalog.Item{ID: "chips", Name: "Masala Chips", Price: 350}
}

func chakalaka() catalog.Item {
	return catalog.Item{ID: "chakalaka", Name: "Chakalaka", Price: 195, MaxQuantity: intPtr(2)}
}

func TestNewStoreStartsOnFirstStep(t *testing.T) {
	assert.Equal(t, types.StepBunnyBuilder, NewStore(types.FlowBunny).Navigation().CurrentStep)
	assert.Equal(t, types.StepBunnyBuilder, NewStore(types.FlowCurry).Navigation().CurrentStep)
	assert.Equal(t, types.StepCurry, NewStore(types.FlowUnspecified).Navigation().CurrentStep)
}

func TestNewStoreUnknownFlowFallsBack(t *testing.T) {
	store := NewStore(types.BuilderFlow("mystery"))
	assert.Equal(t, types.FlowUnspecified, store.Navigation().Flow)
}

func TestStepTablePerFlow(t *testing.T) {
	// bunny flow: builder mandatory, curry optional upsell
	bunny := StepsFor(types.FlowBunny)
	assert.Equal(t, types.StepBunnyBuilder, bunny[0].Step)
	assert.False(t, bunny[0].Optional)
	assert.True(t, bunny[1].Optional)

	// curry flow: builder optional and skippable, curry gated
	curry := StepsFor(types.FlowCurry)
	assert.True(t, curry[0].Optional)
	assert.True(t, curry[0].Skippable)
	assert.NotNil(t, curry[1].Gate)

	// unspecified flow has no bunny builder step at all
	for _, cfg := range StepsFor(types.FlowUnspecified) {
		assert.NotEqual(t, types.StepBunnyBuilder, cfg.Step)
	}
}

func TestForwardNavigationGated(t *testing.T) {
	store := NewStore(types.FlowCurry)
	require.True(t, store.GoToStep(types.StepCurry)) // builder is optional

	// curry step gate fails with no curries selected
	assert.False(t, store.GoToStep(types.StepSides))
	assert.Equal(t, types.StepCurry, store.Navigation().CurrentStep)

	store.AddCurry(types.CurryKindBunny, lamb(), types.SpiceLevelMild)
	assert.True(t, store.GoToStep(types.StepSides))
}

func TestForwardNavigationChecksIntermediateGates(t *testing.T) {
	// jumping from the optional builder straight past the gated curry step
	// must still honour the curry gate
	store := NewStore(types.FlowCurry)
	assert.False(t, store.GoToStep(types.StepDrinks))

	store.AddCurry(types.CurryKindFamily, catalog.Item{ID: "veg-pot", Price: 2495}, types.SpiceLevelMild)
	assert.True(t, store.GoToStep(types.StepDrinks))
}

func TestBackwardNavigationAlwaysAllowed(t *testing.T) {
	store := NewStore(types.FlowCurry)
	store.AddCurry(types.CurryKindBunny, lamb(), types.SpiceLevelMild)
	require.True(t, store.GoToStep(types.StepSummary))

	assert.True(t, store.GoToStep(types.StepCurry))
	assert.True(t, store.GoToStep(types.StepBunnyBuilder))
}

func TestNextAndPrev(t *testing.T) {
	store := NewStore(types.FlowBunny)
	require.True(t, store.NextStep())
	assert.Equal(t, types.StepCurry, store.Navigation().CurrentStep)

	require.True(t, store.PrevStep())
	assert.Equal(t, types.StepBunnyBuilder, store.Navigation().CurrentStep)

	// no-op on the first step
	assert.False(t, store.PrevStep())
}

func TestGoToUnknownStep(t *testing.T) {
	store := NewStore(types.FlowUnspecified)
	assert.False(t, store.GoToStep(types.StepBunnyBuilder))
}

func TestBunnyBuilderPartAutoAdvance(t *testing.T) {
	store := NewStore(types.FlowBunny)
	require.Equal(t, types.BunnyBuilderPartBase, store.Navigation().BunnyBuilderPart)

	// picking a base item on part 1 advances to part 2
	store.IncrementItem(types.ItemCategorySide, chips())
	assert.Equal(t, types.BunnyBuilderPartFilling, store.Navigation().BunnyBuilderPart)

	// the transition is one-way: removing the base does not go back
	store.DecrementItem(types.ItemCategorySide, "chips")
	assert.Equal(t, types.BunnyBuilderPartFilling, store.Navigation().BunnyBuilderPart)
}

func TestBunnyBuilderPartResetsOnReentry(t *testing.T) {
	store := NewStore(types.FlowBunny)
	store.IncrementItem(types.ItemCategorySide, chips())
	require.Equal(t, types.BunnyBuilderPartFilling, store.Navigation().BunnyBuilderPart)

	require.True(t, store.NextStep())
	require.True(t, store.PrevStep())
	assert.Equal(t, types.BunnyBuilderPartBase, store.Navigation().BunnyBuilderPart)
}

func TestIncrementItemRespectsMaxQuantity(t *testing.T) {
	store := NewStore(types.FlowUnspecified)
	for i := 0; i < 5; i++ {
		store.IncrementItem(types.ItemCategorySauce, chakalaka())
	}
	assert.Equal(t, 2, store.Selection().Sauces["chakalaka"])
}

func TestIncrementItemIgnoresCurryCategories(t *testing.T) {
	store := NewStore(types.FlowUnspecified)
	store.IncrementItem(types.ItemCategoryBunny, lamb())
	sel := store.Selection()
	assert.True(t, sel.IsEmpty())
}

func TestDecrementItemDeletesAtZero(t *testing.T) {
	store := NewStore(types.FlowUnspecified)
	store.IncrementItem(types.ItemCategoryDrink, catalog.Item{ID: "cola", Price: 250})
	store.DecrementItem(types.ItemCategoryDrink, "cola")

	_, ok := store.Selection().Drinks["cola"]
	assert.False(t, ok)

	// decrementing an absent item is a no-op
	store.DecrementItem(types.ItemCategoryDrink, "cola")
}

func TestCurryLifecycle(t *testing.T) {
	store := NewStore(types.FlowCurry)

	store.AddCurry(types.CurryKindBunny, lamb(), types.SpiceLevelHot)
	sel := store.Selection()
	require.Contains(t, sel.BunnyFillings, "lamb")
	assert.Equal(t, 1, sel.BunnyFillings["lamb"].Quantity)
	assert.Equal(t, types.SpiceLevelHot, sel.BunnyFillings["lamb"].SpiceLevel)

	// adding again increments and re-applies the spice level
	store.AddCurry(types.CurryKindBunny, lamb(), types.SpiceLevelMild)
	sel = store.Selection()
	assert.Equal(t, 2, sel.BunnyFillings["lamb"].Quantity)
	assert.Equal(t, types.SpiceLevelMild, sel.BunnyFillings["lamb"].SpiceLevel)

	store.IncrementCurry(types.CurryKindBunny, lamb())
	assert.Equal(t, 3, store.Selection().BunnyFillings["lamb"].Quantity)

	store.UpdateCurrySpice(types.CurryKindBunny, "lamb", types.SpiceLevelVeryHot)
	assert.Equal(t, types.SpiceLevelVeryHot, store.Selection().BunnyFillings["lamb"].SpiceLevel)

	store.DecrementCurry(types.CurryKindBunny, "lamb")
	store.DecrementCurry(types.CurryKindBunny, "lamb")
	store.DecrementCurry(types.CurryKindBunny, "lamb")
	assert.NotContains(t, store.Selection().BunnyFillings, "lamb")
}

func TestCurryMaxQuantityClamp(t *testing.T) {
	limited := catalog.Item{ID: "special", Price: 1500, MaxQuantity: intPtr(2)}
	store := NewStore(types.FlowCurry)

	store.AddCurry(types.CurryKindFamily, limited, types.SpiceLevelMild)
	store.AddCurry(types.CurryKindFamily, limited, types.SpiceLevelMild)
	store.AddCurry(types.CurryKindFamily, limited, types.SpiceLevelMild)
	assert.Equal(t, 2, store.Selection().FamilyCurries["special"].Quantity)

	store.IncrementCurry(types.CurryKindFamily, limited)
	assert.Equal(t, 2, store.Selection().FamilyCurries["special"].Quantity)
}

func TestCurryOperationsOnAbsentEntries(t *testing.T) {
	store := NewStore(types.FlowCurry)
	store.IncrementCurry(types.CurryKindBunny, lamb())
	store.DecrementCurry(types.CurryKindBunny, "lamb")
	store.UpdateCurrySpice(types.CurryKindBunny, "lamb", types.SpiceLevelHot)
	store.RemoveCurry(types.CurryKindBunny, "lamb")
	sel := store.Selection()
	assert.True(t, sel.IsEmpty())
}

func TestInvalidSpiceLevelFallsBackToMild(t *testing.T) {
	store := NewStore(types.FlowCurry)
	store.AddCurry(types.CurryKindBunny, lamb(), types.SpiceLevel("nuclear"))
	assert.Equal(t, types.SpiceLevelMild, store.Selection().BunnyFillings["lamb"].SpiceLevel)
}

func TestSkipBunnyBuilder(t *testing.T) {
	store := NewStore(types.FlowCurry)
	store.IncrementItem(types.ItemCategorySide, chips())
	store.AddCurry(types.CurryKindBunny, lamb(), types.SpiceLevelMild)
	store.IncrementItem(types.ItemCategoryDrink, catalog.Item{ID: "cola", Price: 250})

	require.True(t, store.SkipBunnyBuilder())

	sel := store.Selection()
	assert.Empty(t, sel.BunnyFillings, "skip zeroes the fillings")
	assert.Empty(t, sel.Sides, "skip zeroes the base selections")
	assert.Equal(t, 1, sel.Drinks["cola"], "other categories survive")
	assert.Equal(t, types.StepCurry, store.Navigation().CurrentStep)
}

func TestSkipBunnyBuilderOnlyWhenSkippable(t *testing.T) {
	assert.False(t, NewStore(types.FlowBunny).SkipBunnyBuilder())
	assert.False(t, NewStore(types.FlowUnspecified).SkipBunnyBuilder())
}

func TestResetClearsEverything(t *testing.T) {
	store := NewStore(types.FlowBunny)
	store.AddCurry(types.CurryKindBunny, lamb(), types.SpiceLevelHot)
	store.IncrementItem(types.ItemCategorySide, chips())
	store.SetNotes("extra gravy")
	require.True(t, store.NextStep())
	require.True(t, store.HasUnsavedChanges())

	store.Reset()

	sel := store.Selection()
	assert.True(t, sel.IsEmpty())
	assert.Equal(t, types.StepBunnyBuilder, store.Navigation().CurrentStep)
	assert.Equal(t, types.BunnyBuilderPartBase, store.Navigation().BunnyBuilderPart)
	assert.Equal(t, types.FlowBunny, store.Navigation().Flow)
	assert.False(t, store.HasUnsavedChanges())
}

func TestDirtyFlagLifecycle(t *testing.T) {
	store := NewStore(types.FlowUnspecified)
	assert.False(t, store.HasUnsavedChanges())

	store.AddCurry(types.CurryKindBunny, lamb(), types.SpiceLevelMild)
	assert.True(t, store.HasUnsavedChanges())

	store.MarkAsSaved()
	assert.False(t, store.HasUnsavedChanges())
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	store := NewStore(types.FlowCurry)
	store.AddCurry(types.CurryKindBunny, lamb(), types.SpiceLevelHot)
	store.IncrementItem(types.ItemCategorySide, chips())
	store.SetNotes("no onions")
	require.True(t, store.GoToStep(types.StepCurry))

	restored := RestoreStore(store.Snapshot())

	assert.Equal(t, store.Navigation(), restored.Navigation())
	assert.Equal(t, store.Selection(), restored.Selection())
	assert.Equal(t, store.HasUnsavedChanges(), restored.HasUnsavedChanges())
}

func TestRestoreRepairsForeignStep(t *testing.T) {
	// a snapshot persisted under a different flow may reference a step the
	// current flow does not have
	state := State{
		Selection: NewSelection(),
		Navigation: NavigationState{
			CurrentStep: types.StepBunnyBuilder,
			Flow:        types.FlowUnspecified,
		},
	}
	restored := RestoreStore(state)
	assert.Equal(t, types.StepCurry, restored.Navigation().CurrentStep)
}

func TestSelectionCloneIsDeep(t *testing.T) {
	store := NewStore(types.FlowCurry)
	store.AddCurry(types.CurryKindBunny, lamb(), types.SpiceLevelMild)

	sel := store.Selection()
	sel.BunnyFillings["lamb"].Quantity = 99
	sel.Sides["sneaky"] = 1

	fresh := store.Selection()
	assert.Equal(t, 1, fresh.BunnyFillings["lamb"].Quantity)
	assert.NotContains(t, fresh.Sides, "sneaky")
}
