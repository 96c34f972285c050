// Package current synthesizes and samples 2-D water-current fields.
//
// A Field is built once by Generate from a stochastic recurrence: every
// interior cell is the mean of three already-built neighbours, each scaled by
// a fresh uniform factor in [1-d, 1+d]. The border that the recurrence never
// reaches is copied from its inner neighbour, and the whole field is scaled so
// its largest value equals the configured maximum speed.
//
// Indexing is row-major (row = y, column = x) with the origin at the
// bottom-left cell. A Field is immutable once Generate returns, so any number
// of goroutines may sample it concurrently.
//
// Errors:
//
//   - ErrInvalidDimensions: width or height below 3.
//   - ErrInvalidDispersion: dispersion outside [0, 1).
//   - ErrInvalidSpeed: negative or non-finite maximum speed.
//   - ErrInvalidNormalization: unknown normalization mode.
//   - ErrOutOfBounds: Sample called outside the grid.
package current
