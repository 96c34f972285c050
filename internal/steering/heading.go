package steering

import (
	"math"

	"boatsim/internal/core"
)

// Heading returns the direction from one point to another in radians,
// measured counter-clockwise from the +x axis. Vertically aligned points are
// handled explicitly so the result is never NaN.
func Heading(from, to core.Vec) float64 {
	dx := to[0] - from[0]
	dy := to[1] - from[1]
	if dx == 0 {
		switch {
		case dy > 0:
			return math.Pi / 2
		case dy < 0:
			return -math.Pi / 2
		default:
			return 0
		}
	}
	return math.Atan2(dy, dx)
}

// Bearing converts a heading into clockwise degrees in [0, 360).
func Bearing(heading float64) float64 {
	deg := math.Mod(360-heading*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// unit returns the displacement of length step along heading.
func unit(heading, step float64) core.Vec {
	return core.V(step*math.Cos(heading), step*math.Sin(heading))
}
