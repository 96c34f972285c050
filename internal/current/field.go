package current

import (
	"fmt"
	"math"

	"boatsim/internal/core"
)

// Field holds the x and y components of the current at every grid cell.
type Field struct {
	size core.Size
	u, v *core.Grid
}

// Size reports the grid dimensions.
func (f *Field) Size() core.Size { return f.size }

// At returns the current stored at cell (x, y). The cell must be in bounds.
func (f *Field) At(x, y int) core.Vec {
	i := f.u.Index(x, y)
	return core.V(f.u.Cells()[i], f.v.Cells()[i])
}

// U returns a copy of the x components in row-major order.
func (f *Field) U() []float64 { return append([]float64(nil), f.u.Cells()...) }

// V returns a copy of the y components in row-major order.
func (f *Field) V() []float64 { return append([]float64(nil), f.v.Cells()...) }

// Contains reports whether p lies inside [0,W) x [0,H).
func (f *Field) Contains(p core.Vec) bool {
	return p[0] >= 0 && p[0] < float64(f.size.W) && p[1] >= 0 && p[1] < float64(f.size.H)
}

// Sample returns the current of the cell enclosing p. Coordinates are
// truncated, not rounded.
func (f *Field) Sample(p core.Vec) (core.Vec, error) {
	if math.IsNaN(p[0]) || math.IsNaN(p[1]) || p[0] < 0 || p[1] < 0 {
		return core.Vec{}, fmt.Errorf("%w: (%g, %g)", ErrOutOfBounds, p[0], p[1])
	}
	x, y := int(p[0]), int(p[1])
	if !f.u.InBounds(x, y) {
		return core.Vec{}, fmt.Errorf("%w: (%g, %g) -> cell (%d, %d) of %dx%d",
			ErrOutOfBounds, p[0], p[1], x, y, f.size.W, f.size.H)
	}
	return f.At(x, y), nil
}

// Speed returns the magnitude of the current at cell (x, y).
func (f *Field) Speed(x, y int) float64 {
	i := f.u.Index(x, y)
	return math.Hypot(f.u.Cells()[i], f.v.Cells()[i])
}

// MaxComponent returns the largest component value across both grids.
func (f *Field) MaxComponent() float64 {
	return math.Max(f.u.Max(), f.v.Max())
}

// MaxSpeed returns the largest speed magnitude over all cells.
func (f *Field) MaxSpeed() float64 {
	var m float64
	u, v := f.u.Cells(), f.v.Cells()
	for i := range u {
		if s := math.Hypot(u[i], v[i]); s > m {
			m = s
		}
	}
	return m
}
