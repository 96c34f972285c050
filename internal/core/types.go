package core

import (
	"math"

	"github.com/ungerik/go3d/float64/vec2"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Cells returns the number of cells covered by the grid.
func (s Size) Cells() int { return s.W * s.H }

// Vec is a real-valued 2-D vector: index 0 is x, index 1 is y.
type Vec = vec2.T

// V builds a Vec from its components.
func V(x, y float64) Vec { return Vec{x, y} }

// Add returns a+b.
func Add(a, b Vec) Vec { return vec2.Add(&a, &b) }

// Sub returns a-b.
func Sub(a, b Vec) Vec { return vec2.Sub(&a, &b) }

// Scale returns v scaled by f.
func Scale(v Vec, f float64) Vec { return v.Scaled(f) }

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Vec) float64 {
	d := vec2.Sub(&a, &b)
	return d.Length()
}

// Finite reports whether both components are neither NaN nor infinite.
func Finite(v Vec) bool {
	return !math.IsNaN(v[0]) && !math.IsInf(v[0], 0) && !math.IsNaN(v[1]) && !math.IsInf(v[1], 0)
}
