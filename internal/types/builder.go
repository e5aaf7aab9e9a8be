package types

// BuilderFlow is the configurator's entry mode. It controls step order and
// optionality, never the step set itself.
type BuilderFlow string

const (
	// FlowBunny is bread-first: the bunny builder is mandatory and the curry
	// step becomes an optional family-curry upsell
	FlowBunny BuilderFlow = "bunny"
	// FlowCurry is curry-first: the bunny builder is optional and skippable,
	// the curry step is mandatory and shows both curry maps
	FlowCurry BuilderFlow = "curry"
	// FlowUnspecified merges the bunny builder into a combined curry step and
	// moves bread to the sides step
	FlowUnspecified BuilderFlow = "unspecified"
)

func (f BuilderFlow) Validate() bool {
	switch f {
	case FlowBunny, FlowCurry, FlowUnspecified:
		return true
	}
	return false
}

// BuilderStep is one screen of the box configurator
type BuilderStep string

const (
	StepBunnyBuilder BuilderStep = "bunny-builder"
	StepCurry        BuilderStep = "curry"
	StepSides        BuilderStep = "sides"
	StepSauces       BuilderStep = "sauces"
	StepDrinks       BuilderStep = "drinks"
	StepSummary      BuilderStep = "summary"
)

// BunnyBuilderPart is the sub-state of the bunny-builder step.
// Part 1 is base/bread selection, part 2 is filling selection.
type BunnyBuilderPart int

const (
	BunnyBuilderPartBase    BunnyBuilderPart = 1
	BunnyBuilderPartFilling BunnyBuilderPart = 2
)
