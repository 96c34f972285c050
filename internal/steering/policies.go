package steering

import "boatsim/internal/core"

// Names of the built-in policies.
const (
	InertName        = "inert"
	FixedHeadingName = "fixed-heading"
	GoalSeekingName  = "goal-seeking"
)

// Inert never steers; the boat moves by drift alone.
type Inert struct{}

// Name identifies the policy.
func (Inert) Name() string { return InertName }

// Displace always returns the zero vector.
func (Inert) Displace(Input) core.Vec { return core.Vec{} }

// FixedHeading holds the start-to-goal direction chosen at construction and
// never corrects for drift.
type FixedHeading struct {
	heading float64
}

// NewFixedHeading captures the heading from start to goal.
func NewFixedHeading(start, goal core.Vec) *FixedHeading {
	return &FixedHeading{heading: Heading(start, goal)}
}

// Name identifies the policy.
func (f *FixedHeading) Name() string { return FixedHeadingName }

// Heading reports the captured heading in radians.
func (f *FixedHeading) Heading() float64 { return f.heading }

// Displace moves StepSize along the captured heading.
func (f *FixedHeading) Displace(in Input) core.Vec {
	return unit(f.heading, in.StepSize)
}

// GoalSeeking re-aims at the goal from wherever the boat is at every step.
// It reacts to position only, never to the current.
type GoalSeeking struct{}

// Name identifies the policy.
func (GoalSeeking) Name() string { return GoalSeekingName }

// Displace moves StepSize straight toward the goal.
func (GoalSeeking) Displace(in Input) core.Vec {
	return unit(Heading(in.Position, in.Goal), in.StepSize)
}

func init() {
	Register(InertName, func(Params) Policy { return Inert{} })
	Register(FixedHeadingName, func(p Params) Policy { return NewFixedHeading(p.Start, p.Goal) })
	Register(GoalSeekingName, func(Params) Policy { return GoalSeeking{} })
}
