package builder

import (
	"github.com/currybox/currybox/internal/types"
)

// CurrySelection is one picked curry with its quantity and heat level. Spice
// level is mutable independent of quantity for as long as the entry exists.
type CurrySelection struct {
	Quantity   int              `json:"quantity"`
	SpiceLevel types.SpiceLevel `json:"spice_level"`
}

// Selection is the shopper's in-progress box configuration. Absence from a
// quantity map means zero.
type Selection struct {
	BunnyFillings map[string]*CurrySelection `json:"bunny_fillings"`
	FamilyCurries map[string]*CurrySelection `json:"family_curries"`
	Sides         map[string]int             `json:"sides"`
	Sauces        map[string]int             `json:"sauces"`
	Drinks        map[string]int             `json:"drinks"`
	Notes         string                     `json:"notes"`
}

// NewSelection returns an empty selection with all maps initialised
func NewSelection() Selection {
	return Selection{
		BunnyFillings: make(map[string]*CurrySelection),
		FamilyCurries: make(map[string]*CurrySelection),
		Sides:         make(map[string]int),
		Sauces:        make(map[string]int),
		Drinks:        make(map[string]int),
	}
}

// curries returns the curry map for a kind
func (s *Selection) curries(kind types.CurryKind) map[string]*CurrySelection {
	if kind == types.CurryKindFamily {
		return s.FamilyCurries
	}
	return s.BunnyFillings
}

// quantities returns the quantity map for a category, nil for curry categories
func (s *Selection) quantities(category types.ItemCategory) map[string]int {
	switch category {
	case types.ItemCategorySide:
		return s.Sides
	case types.ItemCategorySauce:
		return s.Sauces
	case types.ItemCategoryDrink:
		return s.Drinks
	}
	return nil
}

// HasCurries reports whether at least one bunny filling or family curry is
// selected. This is the gating predicate for the curry step.
func (s *Selection) HasCurries() bool {
	return len(s.BunnyFillings) > 0 || len(s.FamilyCurries) > 0
}

// IsEmpty reports whether nothing at all has been selected
func (s *Selection) IsEmpty() bool {
	return len(s.BunnyFillings) == 0 &&
		len(s.FamilyCurries) == 0 &&
		len(s.Sides) == 0 &&
		len(s.Sauces) == 0 &&
		len(s.Drinks) == 0 &&
		s.Notes == ""
}

// Clone returns a deep copy of the selection
func (s *Selection) Clone() Selection {
	out := NewSelection()
	for id, cs := range s.BunnyFillings {
		c := *cs
		out.BunnyFillings[id] = &c
	}
	for id, cs := range s.FamilyCurries {
		c := *cs
		out.FamilyCurries[id] = &c
	}
	for id, q := range s.Sides {
		out.Sides[id] = q
	}
	for id, q := range s.Sauces {
		out.Sauces[id] = q
	}
	for id, q := range s.Drinks {
		out.Drinks[id] = q
	}
	out.Notes = s.Notes
	return out
}

// NavigationState is the configurator's navigational position.
// BunnyBuilderPart is only meaningful while CurrentStep is the bunny builder;
// it resets to part 1 whenever that step is re-entered from outside.
type NavigationState struct {
	CurrentStep      types.BuilderStep      `json:"current_step"`
	Flow             types.BuilderFlow      `json:"flow"`
	BunnyBuilderPart types.BunnyBuilderPart `json:"bunny_builder_part"`
}

// State is the serializable snapshot of a builder store, persisted so the
// configurator survives a reload within the same session
type State struct {
	Selection  Selection       `json:"selection"`
	Navigation NavigationState `json:"navigation"`
	Dirty      bool            `json:"dirty"`
}
