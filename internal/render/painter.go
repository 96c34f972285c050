//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"boatsim/internal/current"
)

// FieldPainter holds the speed heatmap of a field as an ebiten image.
type FieldPainter struct {
	img *ebiten.Image
}

// NewFieldPainter rasterizes f once, one pixel per cell.
func NewFieldPainter(f *current.Field) *FieldPainter {
	size := f.Size()
	buf := make([]byte, 4*size.Cells())
	FillSpeedRGBA(buf, f)
	img := ebiten.NewImage(size.W, size.H)
	img.WritePixels(buf)
	return &FieldPainter{img: img}
}

// Blit draws the heatmap scaled up to screen pixels.
func (p *FieldPainter) Blit(screen *ebiten.Image, scale int) {
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(p.img, op)
}
