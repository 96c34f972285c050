package current

import "errors"

var (
	// ErrInvalidDimensions indicates a grid too small for the neighbour recurrence.
	ErrInvalidDimensions = errors.New("current: width and height must both be at least 3")
	// ErrInvalidDispersion indicates a dispersion outside [0, 1).
	ErrInvalidDispersion = errors.New("current: dispersion must be in [0, 1)")
	// ErrInvalidSpeed indicates a negative or non-finite maximum speed.
	ErrInvalidSpeed = errors.New("current: max speed must be finite and non-negative")
	// ErrInvalidNormalization indicates an unknown normalization mode.
	ErrInvalidNormalization = errors.New("current: unknown normalization mode")
	// ErrOutOfBounds indicates a sample outside [0,W) x [0,H).
	ErrOutOfBounds = errors.New("current: sample outside field")
)
