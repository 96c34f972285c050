package trajectory

import (
	"fmt"

	"boatsim/internal/core"
	"boatsim/internal/current"
	"boatsim/internal/steering"
)

// Options are the numeric knobs of one integration run.
type Options struct {
	// StepSize is handed to the policy as its displacement magnitude.
	StepSize float64
	// Drift scales the sampled current before it is added.
	Drift float64
	// MaxSteps bounds the run; reaching it yields DidNotConverge.
	MaxSteps int
}

// Simulate advances a boat from start until it leaves the field, comes within
// GoalRadius of goal, or takes MaxSteps steps. Each step appends
//
//	p + Drift*current(p) + policy.Displace(p)
//
// Bounds are checked on the last position before it is sampled, so the final
// point of a LeftDomain run is the first position outside the field.
func Simulate(field *current.Field, start, goal core.Vec, policy steering.Policy, opts Options) (Trajectory, error) {
	if field == nil {
		return Trajectory{}, ErrNilField
	}
	if policy == nil {
		return Trajectory{}, ErrNilPolicy
	}
	if opts.MaxSteps <= 0 {
		return Trajectory{}, fmt.Errorf("%w: got %d", ErrInvalidMaxSteps, opts.MaxSteps)
	}

	tr := Trajectory{Policy: policy.Name(), Points: []core.Vec{start}}
	for {
		p := tr.Final()
		if reason, done := stopReason(field, p, goal, tr.Steps(), opts.MaxSteps); done {
			tr.Reason = reason
			return tr, nil
		}

		c, err := field.Sample(p)
		if err != nil {
			return tr, fmt.Errorf("%w: step %d of %s: %w", ErrInvariant, tr.Steps(), tr.Policy, err)
		}
		d := policy.Displace(steering.Input{Position: p, Goal: goal, Current: c, StepSize: opts.StepSize})
		next := core.Add(core.Add(p, core.Scale(c, opts.Drift)), d)
		tr.Points = append(tr.Points, next)
	}
}

func stopReason(field *current.Field, p, goal core.Vec, steps, maxSteps int) (Reason, bool) {
	switch {
	case !field.Contains(p):
		return LeftDomain, true
	case core.Dist(p, goal) <= GoalRadius:
		return ReachedGoal, true
	case steps >= maxSteps:
		return DidNotConverge, true
	}
	return 0, false
}
