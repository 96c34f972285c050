//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"boatsim/internal/core"
)

// HUD renders the read-only parameter panel to the right of the field.
type HUD struct {
	width      int
	panel      *ebiten.Image
	lastHeight int
	lines      []HUDLine
}

// NewHUD builds the panel contents once; a finished run never changes.
func NewHUD(snap core.ParameterSnapshot, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{width: width, lines: HUDLines(snap)}
}

// Draw paints the panel at offsetX with the given height, followed by the
// playback status line.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int, pb *Playback) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	for _, line := range h.lines {
		col := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if line.Header {
			y += sectionGap
			col = color.RGBA{R: 200, G: 200, B: 120, A: 255}
		}
		text.Draw(h.panel, line.Text, face, panelPadding, y, col)
		y += lineHeight
	}

	if pb != nil {
		status := fmt.Sprintf("step %d/%d", pb.Shown()-1, pb.Total()-1)
		if pb.Paused() {
			status += " (paused)"
		}
		text.Draw(h.panel, status, face, panelPadding, height-panelPadding, color.RGBA{R: 160, G: 160, B: 170, A: 255})
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

const (
	panelPadding   = 12
	lineHeight     = 16
	sectionGap     = 8
	headerBaseline = 6
)
