package builder

import (
	"github.com/currybox/currybox/internal/types"
)

// GatePredicate guards forward navigation past a step
type GatePredicate func(sel *Selection) bool

// StepConfig is one entry of a flow's ordered step list. The step machine is
// driven entirely by this table; flows alter order and optionality, never the
// step set.
type StepConfig struct {
	Step types.BuilderStep
	// Optional steps never block forward navigation and may be skipped past
	Optional bool
	// Skippable steps expose an explicit skip action that zeroes out their
	// selections (curry flow's bunny builder)
	Skippable bool
	// Gate must pass before navigating forward past this step. Ignored when
	// the step is optional.
	Gate GatePredicate
}

func hasCurries(sel *Selection) bool {
	return sel.HasCurries()
}

var (
	tailSteps = []StepConfig{
		{Step: types.StepSides},
		{Step: types.StepSauces},
		{Step: types.StepDrinks},
		{Step: types.StepSummary},
	}

	bunnyFlowSteps = append([]StepConfig{
		{Step: types.StepBunnyBuilder},
		// family-curry upsell only, fillings were collected in the builder
		{Step: types.StepCurry, Optional: true},
	}, tailSteps...)

	curryFlowSteps = append([]StepConfig{
		{Step: types.StepBunnyBuilder, Optional: true, Skippable: true},
		{Step: types.StepCurry, Gate: hasCurries},
	}, tailSteps...)

	// unspecified flow merges the bunny builder into the combined curry step;
	// bread is offered on the sides step instead
	unspecifiedFlowSteps = append([]StepConfig{
		{Step: types.StepCurry, Gate: hasCurries},
	}, tailSteps...)
)

// StepsFor returns the ordered step list for a flow
func StepsFor(flow types.BuilderFlow) []StepConfig {
	switch flow {
	case types.FlowBunny:
		return bunnyFlowSteps
	case types.FlowCurry:
		return curryFlowSteps
	default:
		return unspecifiedFlowSteps
	}
}

// stepIndex returns the position of a step within the list, -1 when the step
// is not part of the active flow
func stepIndex(steps []StepConfig, step types.BuilderStep) int {
	for i, cfg := range steps {
		if cfg.Step == step {
			return i
		}
	}
	return -1
}
