// Package trajectory integrates a boat's position through a current field.
package trajectory

import (
	"boatsim/internal/core"
)

// GoalRadius is the distance at which a boat counts as arrived.
const GoalRadius = 1.0

// Reason records why integration stopped.
type Reason int

const (
	// ReachedGoal means the last position is within GoalRadius of the goal.
	ReachedGoal Reason = iota + 1
	// LeftDomain means the last position lies outside the field.
	LeftDomain
	// DidNotConverge means the step bound was hit first.
	DidNotConverge
)

// String returns the reason's display name.
func (r Reason) String() string {
	switch r {
	case ReachedGoal:
		return "reached goal"
	case LeftDomain:
		return "left domain"
	case DidNotConverge:
		return "did not converge"
	default:
		return "unknown"
	}
}

// Trajectory is the ordered position history of one run. Points always
// starts with the start position and is never modified after Simulate.
type Trajectory struct {
	Policy string
	Points []core.Vec
	Reason Reason
}

// Steps returns the number of integration steps taken.
func (t Trajectory) Steps() int {
	if len(t.Points) == 0 {
		return 0
	}
	return len(t.Points) - 1
}

// Start returns the first position.
func (t Trajectory) Start() core.Vec { return t.Points[0] }

// Final returns the last position.
func (t Trajectory) Final() core.Vec { return t.Points[len(t.Points)-1] }

// Length returns the travelled path length.
func (t Trajectory) Length() float64 {
	var total float64
	for i := 1; i < len(t.Points); i++ {
		total += core.Dist(t.Points[i-1], t.Points[i])
	}
	return total
}

// Displacements returns the per-step position deltas.
func (t Trajectory) Displacements() []core.Vec {
	if len(t.Points) < 2 {
		return nil
	}
	out := make([]core.Vec, len(t.Points)-1)
	for i := 1; i < len(t.Points); i++ {
		out[i-1] = core.Sub(t.Points[i], t.Points[i-1])
	}
	return out
}

// Err maps DidNotConverge to ErrDidNotConverge and every other reason to nil.
func (t Trajectory) Err() error {
	if t.Reason == DidNotConverge {
		return ErrDidNotConverge
	}
	return nil
}
