//go:build ebiten

package app

import (
	"errors"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"boatsim/internal/config"
	"boatsim/internal/core"
	"boatsim/internal/render"
	"boatsim/internal/scenario"
	"boatsim/internal/ui"
)

// Game adapts a finished run to the ebiten.Game interface.
type Game struct {
	res      *scenario.Result
	painter  *render.FieldPainter
	overlay  *ui.Overlay
	hud      *ui.HUD
	playback *ui.Playback

	scale    int
	hudWidth int
}

// New constructs a Game displaying res.
func New(res *scenario.Result, cfg config.ViewerConfig, quiverSpacing int) *Game {
	longest := 0
	for _, tr := range res.Trajectories {
		longest = max(longest, len(tr.Points))
	}
	return &Game{
		res:      res,
		painter:  render.NewFieldPainter(res.Field),
		overlay:  ui.NewOverlay(res, cfg.Scale, quiverSpacing),
		hud:      ui.NewHUD(res.Parameters(), cfg.HUDWidth),
		playback: ui.NewPlayback(longest, core.NewFixedStep(cfg.PlaybackTPS)),
		scale:    cfg.Scale,
		hudWidth: cfg.HUDWidth,
	}
}

// Update handles input and advances playback.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.playback.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		g.playback.Restart()
	}
	g.overlay.Update()
	g.playback.Advance()
	return nil
}

// Draw renders the heatmap, overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 12, B: 24, A: 255})
	if g.overlay.ShowHeatmap() {
		g.painter.Blit(screen, g.scale)
	}
	g.overlay.Draw(screen, g.playback.Shown())

	size := g.res.Field.Size()
	g.hud.Draw(screen, size.W*g.scale, size.H*g.scale, g.playback)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.res.Field.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}

// Run opens the window and blocks until it is closed.
func Run(res *scenario.Result, cfg config.ViewerConfig, quiverSpacing int) error {
	game := New(res, cfg, quiverSpacing)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("boatsim - seed " + strconv.FormatInt(res.Scenario.Seed, 10))
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
