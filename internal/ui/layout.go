package ui

import (
	"fmt"

	"boatsim/internal/core"
)

// ToScreen maps field coordinates to pixels. The field origin is bottom-left,
// the screen origin top-left.
func ToScreen(p core.Vec, height, scale int) (float32, float32) {
	s := float64(scale)
	return float32(p[0] * s), float32((float64(height) - p[1]) * s)
}

// HUDLine is one row of the parameter panel.
type HUDLine struct {
	Text   string
	Header bool
}

// HUDLines flattens a snapshot into panel rows: a header per group followed
// by "label: value" rows. Descriptions, when present, get their own row.
func HUDLines(snap core.ParameterSnapshot) []HUDLine {
	var out []HUDLine
	for _, g := range snap.Groups {
		out = append(out, HUDLine{Text: g.Name, Header: true})
		for _, p := range g.Params {
			out = append(out, HUDLine{Text: fmt.Sprintf("%s: %s", p.Label, p.Value)})
			if p.Description != "" {
				out = append(out, HUDLine{Text: "  " + p.Description})
			}
		}
	}
	return out
}
