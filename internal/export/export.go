// Package export serializes a finished run to JSON.
package export

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"boatsim/internal/core"
	"boatsim/internal/scenario"
	"boatsim/internal/steering"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Options controls what is written.
type Options struct {
	// IncludeField adds both component grids, row-major.
	IncludeField bool
}

// Document is the top-level JSON object.
type Document struct {
	RunID          string       `json:"run_id"`
	Parameters     Parameters   `json:"parameters"`
	MaxSpeedActual float64      `json:"max_speed_actual"`
	InitialBearing float64      `json:"initial_bearing_deg"`
	Trajectories   []Trajectory `json:"trajectories"`
	Field          *Field       `json:"field,omitempty"`
}

// Parameters mirrors the scenario settings.
type Parameters struct {
	Width         int      `json:"width"`
	Height        int      `json:"height"`
	Dispersion    float64  `json:"dispersion"`
	MaxSpeed      float64  `json:"max_speed"`
	Normalization string   `json:"normalization"`
	Start         core.Vec `json:"start"`
	Goal          core.Vec `json:"goal"`
	Drift         float64  `json:"drift"`
	StepSize      float64  `json:"step_size"`
	Seed          int64    `json:"seed"`
	MaxSteps      int      `json:"max_steps"`
	Policies      []string `json:"policies"`
}

// Trajectory is one policy's outcome.
type Trajectory struct {
	Policy string     `json:"policy"`
	Reason string     `json:"reason"`
	Steps  int        `json:"steps"`
	Length float64    `json:"length"`
	Points []core.Vec `json:"points"`
}

// Field holds the current components.
type Field struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	U      []float64 `json:"u"`
	V      []float64 `json:"v"`
}

// Build converts res into a Document.
func Build(res *scenario.Result, opts Options) Document {
	s := res.Scenario
	doc := Document{
		RunID: res.RunID,
		Parameters: Parameters{
			Width:         s.Width,
			Height:        s.Height,
			Dispersion:    s.Dispersion,
			MaxSpeed:      s.MaxSpeed,
			Normalization: s.Normalization,
			Start:         s.Start.Vec(),
			Goal:          s.Goal.Vec(),
			Drift:         s.Drift,
			StepSize:      s.StepSize,
			Seed:          s.Seed,
			MaxSteps:      s.MaxSteps,
			Policies:      res.Order,
		},
		MaxSpeedActual: res.Field.MaxSpeed(),
		InitialBearing: steering.Bearing(res.InitialHeading()),
	}
	for _, tr := range res.Ordered() {
		doc.Trajectories = append(doc.Trajectories, Trajectory{
			Policy: tr.Policy,
			Reason: tr.Reason.String(),
			Steps:  tr.Steps(),
			Length: tr.Length(),
			Points: tr.Points,
		})
	}
	if opts.IncludeField {
		size := res.Field.Size()
		doc.Field = &Field{Width: size.W, Height: size.H, U: res.Field.U(), V: res.Field.V()}
	}
	return doc
}

// Write encodes res as indented JSON.
func Write(w io.Writer, res *scenario.Result, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Build(res, opts)); err != nil {
		return fmt.Errorf("export: encode run %s: %w", res.RunID, err)
	}
	return nil
}

// WriteFile writes res to path, replacing any existing file.
func WriteFile(path string, res *scenario.Result, opts Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("export: %w", cerr)
		}
	}()
	return Write(f, res, opts)
}

// Read decodes a Document written by Write.
func Read(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("export: decode: %w", err)
	}
	return doc, nil
}
