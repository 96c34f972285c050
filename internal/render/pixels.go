package render

import (
	"image/color"
	"math"

	"boatsim/internal/current"
)

// Policy colors shared by the figure and the viewer.
var (
	ColorInert       = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	ColorFixed       = color.RGBA{R: 20, G: 160, B: 40, A: 255}
	ColorGoalSeeking = color.RGBA{R: 200, G: 0, B: 200, A: 255}
	ColorStart       = color.RGBA{R: 20, G: 180, B: 40, A: 255}
	ColorGoal        = color.RGBA{R: 220, G: 30, B: 30, A: 255}
	ColorDirect      = color.RGBA{R: 220, G: 30, B: 30, A: 200}
)

var extraPolicyColors = []color.RGBA{
	{R: 30, G: 110, B: 220, A: 255},
	{R: 230, G: 140, B: 20, A: 255},
	{R: 20, G: 170, B: 170, A: 255},
	{R: 150, G: 90, B: 40, A: 255},
}

// PolicyColor returns the line color for a policy. Names without a fixed
// color cycle through a small palette by index.
func PolicyColor(name string, index int) color.RGBA {
	switch name {
	case "inert":
		return ColorInert
	case "fixed-heading":
		return ColorFixed
	case "goal-seeking":
		return ColorGoalSeeking
	}
	if index < 0 {
		index = -index
	}
	return extraPolicyColors[index%len(extraPolicyColors)]
}

// FillSpeedRGBA writes one pixel per cell into buf, coloured by current speed
// relative to the field's fastest cell. Rows are flipped so the bottom row of
// the field (y = 0) lands on the last image row. buf must hold 4*W*H bytes.
func FillSpeedRGBA(buf []byte, f *current.Field) {
	size := f.Size()
	if len(buf) < 4*size.Cells() {
		return
	}
	ref := f.MaxSpeed()
	for y := 0; y < size.H; y++ {
		row := size.H - 1 - y
		for x := 0; x < size.W; x++ {
			var t float64
			if ref > 0 {
				t = f.Speed(x, y) / ref
			}
			col := SpeedColor(t)
			base := (row*size.W + x) * 4
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
}

// SpeedColor maps a normalized speed in [0, 1] onto a deep-to-shallow water
// ramp.
func SpeedColor(t float64) color.RGBA {
	t = clamp01(t)
	stops := []struct {
		t   float64
		col color.RGBA
	}{
		{0.0, color.RGBA{R: 15, G: 30, B: 80, A: 255}},
		{0.25, color.RGBA{R: 30, G: 70, B: 150, A: 255}},
		{0.5, color.RGBA{R: 40, G: 140, B: 180, A: 255}},
		{0.75, color.RGBA{R: 110, G: 200, B: 190, A: 255}},
		{1.0, color.RGBA{R: 230, G: 245, B: 235, A: 255}},
	}
	for i := 1; i < len(stops); i++ {
		curr := stops[i]
		if t <= curr.t {
			prev := stops[i-1]
			span := curr.t - prev.t
			var local float64
			if span > 0 {
				local = (t - prev.t) / span
			}
			return lerpRGBA(prev.col, curr.col, clamp01(local))
		}
	}
	return stops[len(stops)-1].col
}

// ArrowColor tints quiver arrows by normalized speed.
func ArrowColor(t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: uint8(math.Round(40 + 60*t)),
		G: uint8(math.Round(60 + 60*t)),
		B: uint8(math.Round(90 + 60*t)),
		A: uint8(math.Round(150 + 90*t)),
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
