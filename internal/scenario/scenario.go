// Package scenario generates one current field and runs every selected
// steering policy through it.
package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"boatsim/internal/config"
	"boatsim/internal/core"
	"boatsim/internal/current"
	"boatsim/internal/steering"
	"boatsim/internal/trajectory"
)

// ErrNoPolicies indicates a scenario with nothing to simulate.
var ErrNoPolicies = errors.New("scenario: no policies selected")

// Result is a finished run: the field plus one trajectory per policy.
type Result struct {
	RunID        string
	Scenario     config.Scenario
	Field        *current.Field
	Trajectories map[string]trajectory.Trajectory
	// Order lists the policy names in the order they were requested.
	Order []string
}

// Ordered returns the trajectories in request order.
func (r *Result) Ordered() []trajectory.Trajectory {
	out := make([]trajectory.Trajectory, 0, len(r.Order))
	for _, name := range r.Order {
		out = append(out, r.Trajectories[name])
	}
	return out
}

// InitialHeading is the start-to-goal heading in radians.
func (r *Result) InitialHeading() float64 {
	return steering.Heading(r.Scenario.Start.Vec(), r.Scenario.Goal.Vec())
}

// Run generates the field from s.Seed and simulates every policy in
// s.Policies. Repeated names are simulated once.
func Run(ctx context.Context, s config.Scenario) (*Result, error) {
	field, err := current.Generate(s.Size(), s.FieldParams(), core.NewRNG(s.Seed))
	if err != nil {
		return nil, fmt.Errorf("generate field: %w", err)
	}
	return Simulate(ctx, field, s)
}

// Simulate runs the policies of s through an existing field. Policies run
// concurrently; the field is only read.
func Simulate(ctx context.Context, field *current.Field, s config.Scenario) (*Result, error) {
	order := dedupe(s.Policies)
	if len(order) == 0 {
		return nil, ErrNoPolicies
	}

	start, goal := s.Start.Vec(), s.Goal.Vec()
	params := steering.Params{Start: start, Goal: goal}
	policies := make([]steering.Policy, len(order))
	for i, name := range order {
		p, err := steering.New(name, params)
		if err != nil {
			return nil, err
		}
		policies[i] = p
	}

	slots := make([]trajectory.Trajectory, len(order))
	g, ctx := errgroup.WithContext(ctx)
	for i := range policies {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tr, err := trajectory.Simulate(field, start, goal, policies[i], s.Options())
			if err != nil {
				return fmt.Errorf("simulate %s: %w", order[i], err)
			}
			slots[i] = tr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		RunID:        uuid.NewString(),
		Scenario:     s,
		Field:        field,
		Trajectories: make(map[string]trajectory.Trajectory, len(order)),
		Order:        order,
	}
	for i, name := range order {
		res.Trajectories[name] = slots[i]
	}
	return res, nil
}

// LogSummary writes the run header and one line per policy.
func (r *Result) LogSummary(logger *zap.Logger) {
	logger.Info("Currents generated",
		zap.String("run_id", r.RunID),
		zap.Int("width", r.Field.Size().W),
		zap.Int("height", r.Field.Size().H),
		zap.Int64("seed", r.Scenario.Seed),
		zap.Float64("max_step", r.Scenario.MaxSpeed),
		zap.Float64("max_speed_actual", r.Field.MaxSpeed()),
	)
	logger.Info("Initial heading", zap.Float64("bearing_deg", steering.Bearing(r.InitialHeading())))
	for _, name := range r.Order {
		tr := r.Trajectories[name]
		final := tr.Final()
		logger.Info("Trajectory finished",
			zap.String("policy", name),
			zap.Stringer("reason", tr.Reason),
			zap.Int("steps", tr.Steps()),
			zap.Float64s("final", []float64{final[0], final[1]}),
			zap.Float64("length", tr.Length()),
		)
	}
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
