package current

import (
	"fmt"
	"math"

	"boatsim/internal/core"
)

// Normalization selects the reference value the field is scaled against.
type Normalization string

const (
	// NormalizeComponent divides by the largest component value across both
	// grids. A cell's speed can therefore reach sqrt(2) times MaxSpeed.
	NormalizeComponent Normalization = "component"
	// NormalizeMagnitude divides by the largest speed magnitude so no cell
	// is faster than MaxSpeed.
	NormalizeMagnitude Normalization = "magnitude"
)

// Params controls field synthesis.
type Params struct {
	// Dispersion bounds the multiplicative noise, in [0, 1).
	Dispersion float64
	// MaxSpeed is the value the normalization reference is scaled to.
	MaxSpeed float64
	// Normalization defaults to NormalizeComponent when empty.
	Normalization Normalization
}

// Source supplies uniform values in [0, 1). *core.RNG and *rand.Rand both
// satisfy it.
type Source interface {
	Float64() float64
}

// Validate reports the first invalid parameter, if any.
func (p Params) Validate() error {
	if math.IsNaN(p.Dispersion) || p.Dispersion < 0 || p.Dispersion >= 1 {
		return fmt.Errorf("%w: got %g", ErrInvalidDispersion, p.Dispersion)
	}
	if math.IsNaN(p.MaxSpeed) || math.IsInf(p.MaxSpeed, 0) || p.MaxSpeed < 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidSpeed, p.MaxSpeed)
	}
	switch p.Normalization {
	case "", NormalizeComponent, NormalizeMagnitude:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidNormalization, p.Normalization)
	}
	return nil
}

// Generate builds a current field of the given size. Both components start
// at 1 everywhere; cell (i+1, j+1) is then the mean of its bottom-left,
// left and bottom neighbours, each perturbed by its own draw from rng.
func Generate(size core.Size, p Params, rng Source) (*Field, error) {
	if size.W < 3 || size.H < 3 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, size.W, size.H)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("current: nil random source")
	}

	f := &Field{
		size: size,
		u:    core.NewGrid(size.W, size.H, 1),
		v:    core.NewGrid(size.W, size.H, 1),
	}

	lo, hi := 1-p.Dispersion, 1+p.Dispersion
	draw := func() float64 { return lo + (hi-lo)*rng.Float64() }

	for i := 1; i < size.H-1; i++ {
		for j := 1; j < size.W-1; j++ {
			relax(f.u, i, j, draw)
			relax(f.v, i, j, draw)
		}
	}

	f.u.CopyRow(0, 1)
	f.v.CopyRow(0, 1)
	f.u.CopyCol(size.W-1, size.W-2)
	f.v.CopyCol(size.W-1, size.W-2)

	normalize(f, p)
	return f, nil
}

// relax fills cell (row i+1, col j+1) of g. Draw order is fixed so a seed
// reproduces the same field.
func relax(g *core.Grid, i, j int, draw func() float64) {
	a := g.At(j, i) * draw()
	b := g.At(j, i+1) * draw()
	c := g.At(j+1, i) * draw()
	g.Set(j+1, i+1, (a+b+c)/3)
}

func normalize(f *Field, p Params) {
	var ref float64
	switch p.Normalization {
	case NormalizeMagnitude:
		ref = f.MaxSpeed()
	default:
		ref = f.MaxComponent()
	}
	if ref <= 0 {
		f.u.Fill(0)
		f.v.Fill(0)
		return
	}
	k := p.MaxSpeed / ref
	f.u.Scale(k)
	f.v.Scale(k)
}
