package render

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"boatsim/internal/core"
	"boatsim/internal/scenario"
)

// FigureOptions sizes the PNG figure.
type FigureOptions struct {
	Width, Height int
	// QuiverSpacing is the distance in cells between arrows.
	QuiverSpacing int
}

const noStroke = -1.0

// Figure assembles the chart for res: current arrows, the dotted direct
// path, one line per trajectory and the start and goal markers. Only the
// direct path and the trajectories appear in the legend.
func Figure(res *scenario.Result, opts FigureOptions) chart.Chart {
	size := res.Field.Size()
	start, goal := res.Scenario.Start.Vec(), res.Scenario.Goal.Vec()

	var series []chart.Series
	for _, a := range Quiver(res.Field, opts.QuiverSpacing, 0.9*float64(opts.QuiverSpacing)) {
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{a.Tail[0], a.Tip[0], a.Left[0], a.Tip[0], a.Right[0]},
			YValues: []float64{a.Tail[1], a.Tip[1], a.Left[1], a.Tip[1], a.Right[1]},
			Style:   chart.Style{StrokeColor: toDrawing(ArrowColor(a.Speed)), StrokeWidth: 1},
		})
	}

	named := []chart.Series{
		chart.ContinuousSeries{
			Name:    "direct path",
			XValues: []float64{start[0], goal[0]},
			YValues: []float64{start[1], goal[1]},
			Style: chart.Style{
				StrokeColor:     toDrawing(ColorDirect),
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{2, 4},
			},
		},
	}
	for i, tr := range res.Ordered() {
		xs, ys := split(tr.Points)
		named = append(named, chart.ContinuousSeries{
			Name:    tr.Policy,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: toDrawing(PolicyColor(tr.Policy, i)), StrokeWidth: 2},
		})
	}
	series = append(series, named...)
	series = append(series, marker(start, ColorStart), marker(goal, ColorGoal))

	legend := chart.Chart{Series: named}
	return chart.Chart{
		Title:  fmt.Sprintf("Boat trajectories, seed %d", res.Scenario.Seed),
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "x",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(size.W - 1)},
		},
		YAxis: chart.YAxis{
			Name:  "y",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(size.H - 1)},
		},
		Series:   series,
		Elements: []chart.Renderable{chart.Legend(&legend)},
	}
}

// WriteFigure renders the figure for res as PNG.
func WriteFigure(w io.Writer, res *scenario.Result, opts FigureOptions) error {
	graph := Figure(res, opts)
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render: figure: %w", err)
	}
	return nil
}

// WriteFigureFile renders the figure to path.
func WriteFigureFile(path string, res *scenario.Result, opts FigureOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("render: %w", cerr)
		}
	}()
	return WriteFigure(f, res, opts)
}

func marker(p core.Vec, col color.RGBA) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		XValues: []float64{p[0]},
		YValues: []float64{p[1]},
		Style: chart.Style{
			StrokeWidth: noStroke,
			DotColor:    toDrawing(col),
			DotWidth:    6,
		},
	}
}

func split(points []core.Vec) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p[0], p[1]
	}
	return xs, ys
}

func toDrawing(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
