package builder

import (
	"github.com/currybox/currybox/internal/domain/catalog"
	"github.com/currybox/currybox/internal/types"
)

// Store owns one shopper's in-progress configuration and enforces which step
// is reachable next. All mutation methods are total functions: out-of-range
// requests are silently clamped or ignored, never raised.
//
// The store is not safe for concurrent use; the service layer serialises
// access per session.
type Store struct {
	sel   Selection
	nav   NavigationState
	steps []StepConfig
	dirty bool
}

// NewStore creates an empty builder store for a flow, positioned on the
// flow's first step
func NewStore(flow types.BuilderFlow) *Store {
	if !flow.Validate() {
		flow = types.FlowUnspecified
	}
	steps := StepsFor(flow)
	return &Store{
		sel: NewSelection(),
		nav: NavigationState{
			CurrentStep:      steps[0].Step,
			Flow:             flow,
			BunnyBuilderPart: types.BunnyBuilderPartBase,
		},
		steps: steps,
	}
}

// Selection returns a deep copy of the current selection
func (s *Store) Selection() Selection {
	return s.sel.Clone()
}

// Navigation returns the current navigational state
func (s *Store) Navigation() NavigationState {
	return s.nav
}

// Steps returns the active flow's step table
func (s *Store) Steps() []StepConfig {
	return s.steps
}

// HasUnsavedChanges reports the dirty flag. It is a UI confirmation signal,
// not a correctness invariant.
func (s *Store) HasUnsavedChanges() bool {
	return s.dirty
}

// MarkAsSaved clears the dirty flag after a hand-off to the cart
func (s *Store) MarkAsSaved() {
	s.dirty = false
}

// GoToStep navigates to a step. Backward and same-position moves are always
// allowed; forward moves are rejected (no-op, returns false) when any gated
// step between here and the target fails its predicate.
func (s *Store) GoToStep(target types.BuilderStep) bool {
	cur := stepIndex(s.steps, s.nav.CurrentStep)
	tgt := stepIndex(s.steps, target)
	if tgt < 0 || cur < 0 {
		return false
	}
	if tgt <= cur {
		s.moveTo(target)
		return true
	}
	for i := cur; i < tgt; i++ {
		cfg := s.steps[i]
		if cfg.Optional || cfg.Gate == nil {
			continue
		}
		if !cfg.Gate(&s.sel) {
			return false
		}
	}
	s.moveTo(target)
	return true
}

// NextStep advances to the following step of the active flow, subject to the
// same gating as GoToStep
func (s *Store) NextStep() bool {
	cur := stepIndex(s.steps, s.nav.CurrentStep)
	if cur < 0 || cur+1 >= len(s.steps) {
		return false
	}
	return s.GoToStep(s.steps[cur+1].Step)
}

// PrevStep moves back one step; no-op on the first reachable step
func (s *Store) PrevStep() bool {
	cur := stepIndex(s.steps, s.nav.CurrentStep)
	if cur <= 0 {
		return false
	}
	s.moveTo(s.steps[cur-1].Step)
	return true
}

// moveTo updates the current step. Re-entering the bunny builder from outside
// resets it to part 1; the part 1 -> 2 transition itself is one-way and only
// happens through selection (see IncrementItem).
func (s *Store) moveTo(target types.BuilderStep) {
	if target == types.StepBunnyBuilder && s.nav.CurrentStep != types.StepBunnyBuilder {
		s.nav.BunnyBuilderPart = types.BunnyBuilderPartBase
	}
	s.nav.CurrentStep = target
}

// IncrementItem adds one of a quantity-map item (sides, sauces, drinks). The
// increment silently refuses once the item's max quantity would be exceeded.
// Selecting a base item during bunny-builder part 1 auto-advances to part 2;
// decrementing it back to zero later does not revert the part.
func (s *Store) IncrementItem(category types.ItemCategory, item catalog.Item) {
	m := s.sel.quantities(category)
	if m == nil {
		return
	}
	if item.MaxQuantity != nil && m[item.ID] >= *item.MaxQuantity {
		return
	}
	m[item.ID]++
	s.dirty = true

	if category == types.ItemCategorySide &&
		s.nav.CurrentStep == types.StepBunnyBuilder &&
		s.nav.BunnyBuilderPart == types.BunnyBuilderPartBase {
		s.nav.BunnyBuilderPart = types.BunnyBuilderPartFilling
	}
}

// DecrementItem removes one of a quantity-map item; dropping below one
// deletes the entry
func (s *Store) DecrementItem(category types.ItemCategory, itemID string) {
	m := s.sel.quantities(category)
	if m == nil {
		return
	}
	q, ok := m[itemID]
	if !ok {
		return
	}
	if q <= 1 {
		delete(m, itemID)
	} else {
		m[itemID] = q - 1
	}
	s.dirty = true
}

// AddCurry adds a curry selection with quantity one, or increments the
// existing entry. The spice level is applied either way.
func (s *Store) AddCurry(kind types.CurryKind, item catalog.Item, spice types.SpiceLevel) {
	if !spice.Validate() {
		spice = types.SpiceLevelMild
	}
	m := s.sel.curries(kind)
	if existing, ok := m[item.ID]; ok {
		if item.MaxQuantity == nil || existing.Quantity < *item.MaxQuantity {
			existing.Quantity++
		}
		existing.SpiceLevel = spice
	} else {
		m[item.ID] = &CurrySelection{Quantity: 1, SpiceLevel: spice}
	}
	s.dirty = true
}

// RemoveCurry deletes a curry selection entirely
func (s *Store) RemoveCurry(kind types.CurryKind, itemID string) {
	m := s.sel.curries(kind)
	if _, ok := m[itemID]; !ok {
		return
	}
	delete(m, itemID)
	s.dirty = true
}

// IncrementCurry adds one to an existing curry selection, clamped at the
// item's max quantity
func (s *Store) IncrementCurry(kind types.CurryKind, item catalog.Item) {
	m := s.sel.curries(kind)
	existing, ok := m[item.ID]
	if !ok {
		return
	}
	if item.MaxQuantity != nil && existing.Quantity >= *item.MaxQuantity {
		return
	}
	existing.Quantity++
	s.dirty = true
}

// DecrementCurry removes one from a curry selection; reaching zero deletes
// the entry
func (s *Store) DecrementCurry(kind types.CurryKind, itemID string) {
	m := s.sel.curries(kind)
	existing, ok := m[itemID]
	if !ok {
		return
	}
	if existing.Quantity <= 1 {
		delete(m, itemID)
	} else {
		existing.Quantity--
	}
	s.dirty = true
}

// UpdateCurrySpice changes the heat level of an existing curry selection
// without touching its quantity
func (s *Store) UpdateCurrySpice(kind types.CurryKind, itemID string, spice types.SpiceLevel) {
	existing, ok := s.sel.curries(kind)[itemID]
	if !ok || !spice.Validate() {
		return
	}
	existing.SpiceLevel = spice
	s.dirty = true
}

// SetNotes replaces the free-text notes
func (s *Store) SetNotes(notes string) {
	s.sel.Notes = notes
	s.dirty = true
}

// SkipBunnyBuilder skips past the bunny builder when the active flow marks it
// skippable. Skipping zeroes out the base and filling selections collected on
// that branch and advances to the step after it.
func (s *Store) SkipBunnyBuilder() bool {
	idx := stepIndex(s.steps, types.StepBunnyBuilder)
	if idx < 0 || !s.steps[idx].Skippable {
		return false
	}
	s.sel.BunnyFillings = make(map[string]*CurrySelection)
	s.sel.Sides = make(map[string]int)
	s.dirty = true
	if idx+1 < len(s.steps) {
		s.moveTo(s.steps[idx+1].Step)
	}
	return true
}

// Reset clears all selection maps, notes and navigation back to the flow's
// initial state
func (s *Store) Reset() {
	s.sel = NewSelection()
	s.nav = NavigationState{
		CurrentStep:      s.steps[0].Step,
		Flow:             s.nav.Flow,
		BunnyBuilderPart: types.BunnyBuilderPartBase,
	}
	s.dirty = false
}

// Snapshot returns the serializable state of the store
func (s *Store) Snapshot() State {
	return State{
		Selection:  s.sel.Clone(),
		Navigation: s.nav,
		Dirty:      s.dirty,
	}
}

// RestoreStore rebuilds a store from a persisted snapshot
func RestoreStore(state State) *Store {
	flow := state.Navigation.Flow
	if !flow.Validate() {
		flow = types.FlowUnspecified
	}
	store := NewStore(flow)
	store.sel = state.Selection.Clone()
	store.nav = state.Navigation
	store.dirty = state.Dirty
	if stepIndex(store.steps, store.nav.CurrentStep) < 0 {
		store.nav.CurrentStep = store.steps[0].Step
	}
	return store
}
