package dto

import (
	"github.com/currybox/currybox/internal/domain/builder"
	"github.com/currybox/currybox/internal/domain/pricing"
	"github.com/currybox/currybox/internal/types"
	"github.com/currybox/currybox/internal/validator"
)

// StartBuilderRequest begins a fresh configurator for a flow. An empty or
// unknown flow falls back to the unspecified flow.
type StartBuilderRequest struct {
	Flow string `json:"flow" validate:"omitempty,oneof=bunny curry unspecified"`
}

func (r *StartBuilderRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// GoToStepRequest navigates to a named step of the active flow
type GoToStepRequest struct {
	Step string `json:"step" validate:"required"`
}

func (r *GoToStepRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// BuilderItemRequest addresses one quantity-map item (sides, sauces, drinks)
type BuilderItemRequest struct {
	Category string `json:"category" validate:"required,oneof=side sauce drink"`
	ItemID   string `json:"item_id" validate:"required"`
}

func (r *BuilderItemRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// CurryRequest addresses one curry selection. SpiceLevel is only meaningful on
// add and spice updates.
type CurryRequest struct {
	Kind       string `json:"kind" validate:"required,oneof=bunny family"`
	ItemID     string `json:"item_id" validate:"required"`
	SpiceLevel string `json:"spice_level" validate:"omitempty,oneof=mild hot very_hot"`
}

func (r *CurryRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CurryRequest) CurryKind() types.CurryKind {
	return types.CurryKind(r.Kind)
}

func (r *CurryRequest) Spice() types.SpiceLevel {
	if r.SpiceLevel == "" {
		return types.SpiceLevelMild
	}
	return types.SpiceLevel(r.SpiceLevel)
}

// BuilderNotesRequest replaces the free-text notes
type BuilderNotesRequest struct {
	Notes string `json:"notes" validate:"max=2000"`
}

func (r *BuilderNotesRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// StepInfo is one entry of the active flow's step list as shown to the client
type StepInfo struct {
	Step      types.BuilderStep `json:"step"`
	Optional  bool              `json:"optional"`
	Skippable bool              `json:"skippable"`
	Current   bool              `json:"current"`
}

// BuilderStateResponse is the full configurator view: navigation, selection
// and a live costing preview of the box so far
type BuilderStateResponse struct {
	Flow              types.BuilderFlow      `json:"flow"`
	CurrentStep       types.BuilderStep      `json:"current_step"`
	BunnyBuilderPart  types.BunnyBuilderPart `json:"bunny_builder_part"`
	Steps             []StepInfo             `json:"steps"`
	Selection         builder.Selection      `json:"selection"`
	HasUnsavedChanges bool                   `json:"has_unsaved_changes"`
	Lines             []pricing.CostedLine   `json:"lines"`
	Totals            pricing.Totals         `json:"totals"`
}
