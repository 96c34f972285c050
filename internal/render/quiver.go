package render

import (
	"math"

	"boatsim/internal/core"
	"boatsim/internal/current"
)

// Anchor is a cell at which an arrow is drawn.
type Anchor struct {
	X, Y int
}

// Center returns the cell center in field coordinates.
func (a Anchor) Center() core.Vec { return core.V(float64(a.X)+0.5, float64(a.Y)+0.5) }

// QuiverAnchors picks one cell every spacing cells in both directions,
// centering the lattice inside the grid.
func QuiverAnchors(size core.Size, spacing int) []Anchor {
	if size.W <= 0 || size.H <= 0 {
		return nil
	}
	if spacing <= 0 {
		spacing = 1
	}

	countX := (size.W + spacing - 1) / spacing
	countY := (size.H + spacing - 1) / spacing
	startX := max((size.W-1-(countX-1)*spacing)/2, 0)
	startY := max((size.H-1-(countY-1)*spacing)/2, 0)

	out := make([]Anchor, 0, countX*countY)
	for yi := 0; yi < countY; yi++ {
		cellY := min(startY+yi*spacing, size.H-1)
		for xi := 0; xi < countX; xi++ {
			cellX := min(startX+xi*spacing, size.W-1)
			out = append(out, Anchor{X: cellX, Y: cellY})
		}
	}
	return out
}

// Arrow is a quiver glyph: a shaft from Tail to Tip plus two barbs.
type Arrow struct {
	Tail, Tip   core.Vec
	Left, Right core.Vec
	// Speed is the current magnitude relative to the field maximum.
	Speed float64
}

const headAngle = math.Pi / 6

// NewArrow builds an arrow of maxLen*speed centered on at, pointing along v.
// Calm cells (zero vector) report false.
func NewArrow(at, v core.Vec, speed, maxLen float64) (Arrow, bool) {
	mag := math.Hypot(v[0], v[1])
	if mag == 0 || maxLen <= 0 {
		return Arrow{}, false
	}
	speed = clamp01(speed)
	length := maxLen * (0.25 + 0.75*speed)
	dir := core.Scale(v, 1/mag)

	half := core.Scale(dir, length/2)
	tail := core.Sub(at, half)
	tip := core.Add(at, half)

	head := length * 0.3
	angle := math.Atan2(dir[1], dir[0])
	left := core.V(tip[0]-math.Cos(angle+headAngle)*head, tip[1]-math.Sin(angle+headAngle)*head)
	right := core.V(tip[0]-math.Cos(angle-headAngle)*head, tip[1]-math.Sin(angle-headAngle)*head)
	return Arrow{Tail: tail, Tip: tip, Left: left, Right: right, Speed: speed}, true
}

// Quiver builds the arrows for f at every anchor. maxLen is in field units.
func Quiver(f *current.Field, spacing int, maxLen float64) []Arrow {
	ref := f.MaxSpeed()
	var out []Arrow
	for _, a := range QuiverAnchors(f.Size(), spacing) {
		var speed float64
		if ref > 0 {
			speed = f.Speed(a.X, a.Y) / ref
		}
		if arrow, ok := NewArrow(a.Center(), f.At(a.X, a.Y), speed, maxLen); ok {
			out = append(out, arrow)
		}
	}
	return out
}
