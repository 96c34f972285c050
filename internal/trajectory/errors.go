package trajectory

import "errors"

var (
	// ErrDidNotConverge marks a run stopped by the step bound while still
	// inside the domain and away from the goal. It is a reported outcome,
	// not a failure of Simulate.
	ErrDidNotConverge = errors.New("trajectory: step limit reached before goal or domain exit")
	// ErrInvariant indicates the integrator sampled outside the field even
	// though it checked bounds first. Callers should treat it as fatal.
	ErrInvariant = errors.New("trajectory: internal invariant violated")
	// ErrInvalidMaxSteps indicates a non-positive step bound.
	ErrInvalidMaxSteps = errors.New("trajectory: max steps must be positive")
	// ErrNilPolicy indicates Simulate was called without a policy.
	ErrNilPolicy = errors.New("trajectory: nil policy")
	// ErrNilField indicates Simulate was called without a field.
	ErrNilField = errors.New("trajectory: nil field")
)
