//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"boatsim/internal/core"
	"boatsim/internal/render"
	"boatsim/internal/scenario"
)

// Overlay draws current arrows, trajectories and markers over the heatmap.
type Overlay struct {
	res     *scenario.Result
	scale   int
	spacing int

	showHeat   bool
	showArrows bool
	showPaths  bool

	arrows []render.Arrow
}

// NewOverlay prepares the overlay for res. Arrows are computed once since the
// field never changes.
func NewOverlay(res *scenario.Result, scale, spacing int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	if spacing <= 0 {
		spacing = 8
	}
	return &Overlay{
		res:        res,
		scale:      scale,
		spacing:    spacing,
		showHeat:   true,
		showArrows: true,
		showPaths:  true,
		arrows:     render.Quiver(res.Field, spacing, 0.9*float64(spacing)),
	}
}

// Update handles the layer toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showHeat = !o.showHeat
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showArrows = !o.showArrows
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showPaths = !o.showPaths
	}
}

// ShowHeatmap reports whether the speed heatmap layer is enabled.
func (o *Overlay) ShowHeatmap() bool { return o.showHeat }

// Draw renders the enabled layers, revealing the first shown points of each
// trajectory.
func (o *Overlay) Draw(screen *ebiten.Image, shown int) {
	if o.showArrows {
		o.drawArrows(screen)
	}

	start, goal := o.res.Scenario.Start.Vec(), o.res.Scenario.Goal.Vec()
	o.drawDashed(screen, start, goal, render.ColorDirect)

	if o.showPaths {
		for i, tr := range o.res.Ordered() {
			n := min(shown, len(tr.Points))
			col := render.PolicyColor(tr.Policy, i)
			for k := 1; k < n; k++ {
				o.drawLine(screen, tr.Points[k-1], tr.Points[k], 2, col)
			}
			if n > 0 {
				o.drawDot(screen, tr.Points[n-1], 2.5, col)
			}
		}
	}

	o.drawDot(screen, start, 4, render.ColorStart)
	o.drawDot(screen, goal, 4, render.ColorGoal)
}

func (o *Overlay) drawArrows(screen *ebiten.Image) {
	thickness := math.Max(1, float64(o.scale)*0.25)
	for _, a := range o.arrows {
		col := render.ArrowColor(a.Speed)
		o.drawLine(screen, a.Tail, a.Tip, thickness, col)
		o.drawLine(screen, a.Tip, a.Left, thickness*0.85, col)
		o.drawLine(screen, a.Tip, a.Right, thickness*0.85, col)
	}
}

func (o *Overlay) drawDashed(screen *ebiten.Image, from, to core.Vec, col color.RGBA) {
	const dash, gap = 1.0, 1.0
	total := core.Dist(from, to)
	if total == 0 {
		return
	}
	dir := core.Scale(core.Sub(to, from), 1/total)
	for d := 0.0; d < total; d += dash + gap {
		a := core.Add(from, core.Scale(dir, d))
		b := core.Add(from, core.Scale(dir, math.Min(d+dash, total)))
		o.drawLine(screen, a, b, 1, col)
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, a, b core.Vec, thickness float64, col color.RGBA) {
	h := o.res.Field.Size().H
	x1, y1 := ToScreen(a, h, o.scale)
	x2, y2 := ToScreen(b, h, o.scale)
	vector.StrokeLine(screen, x1, y1, x2, y2, float32(thickness), col, true)
}

func (o *Overlay) drawDot(screen *ebiten.Image, p core.Vec, radius float64, col color.RGBA) {
	x, y := ToScreen(p, o.res.Field.Size().H, o.scale)
	vector.DrawFilledCircle(screen, x, y, float32(radius*math.Max(1, float64(o.scale)/3)), col, true)
}
