package trajectory_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boatsim/internal/core"
	"boatsim/internal/current"
	"boatsim/internal/steering"
	"boatsim/internal/trajectory"
)

func generate(t *testing.T, w, h int, p current.Params, seed int64) *current.Field {
	t.Helper()
	f, err := current.Generate(core.Size{W: w, H: h}, p, core.NewRNG(seed))
	require.NoError(t, err)
	return f
}

func policy(t *testing.T, name string, start, goal core.Vec) steering.Policy {
	t.Helper()
	p, err := steering.New(name, steering.Params{Start: start, Goal: goal})
	require.NoError(t, err)
	return p
}

// On a calm 10x10 field both steering models walk (1,5) -> (7,5) in unit
// steps and stop one unit short of the goal. The inert boat never moves.
func TestSimulate_CalmFieldWalk(t *testing.T) {
	field := generate(t, 10, 10, current.Params{Dispersion: 0, MaxSpeed: 0}, 1)
	start, goal := core.V(1, 5), core.V(8, 5)
	opts := trajectory.Options{StepSize: 1, Drift: 1, MaxSteps: 100}

	want := []core.Vec{core.V(1, 5), core.V(2, 5), core.V(3, 5), core.V(4, 5), core.V(5, 5), core.V(6, 5), core.V(7, 5)}
	for _, name := range []string{steering.FixedHeadingName, steering.GoalSeekingName} {
		t.Run(name, func(t *testing.T) {
			tr, err := trajectory.Simulate(field, start, goal, policy(t, name, start, goal), opts)
			require.NoError(t, err)
			assert.Equal(t, trajectory.ReachedGoal, tr.Reason)
			assert.Equal(t, 6, tr.Steps())
			if diff := cmp.Diff(want, tr.Points); diff != "" {
				t.Fatalf("unexpected walk (-want +got):\n%s", diff)
			}
			assert.NoError(t, tr.Err())
		})
	}

	t.Run(steering.InertName, func(t *testing.T) {
		tr, err := trajectory.Simulate(field, start, goal, policy(t, steering.InertName, start, goal), opts)
		require.NoError(t, err)
		assert.Equal(t, trajectory.DidNotConverge, tr.Reason)
		assert.Len(t, tr.Points, opts.MaxSteps+1)
		for _, p := range tr.Points {
			assert.Equal(t, start, p)
		}
		assert.ErrorIs(t, tr.Err(), trajectory.ErrDidNotConverge)
	})
}

func TestSimulate_LeftDomainKeepsFinalPosition(t *testing.T) {
	// Zero dispersion gives a uniform current of (1, 1).
	field := generate(t, 10, 10, current.Params{Dispersion: 0, MaxSpeed: 1}, 1)
	start, goal := core.V(9.5, 5), core.V(1, 1)

	tr, err := trajectory.Simulate(field, start, goal, steering.Inert{}, trajectory.Options{StepSize: 1, Drift: 1, MaxSteps: 10})
	require.NoError(t, err)

	assert.Equal(t, trajectory.LeftDomain, tr.Reason)
	require.Len(t, tr.Points, 2)
	assert.Equal(t, core.V(10.5, 6), tr.Final())
	assert.False(t, field.Contains(tr.Final()))
}

func TestSimulate_StartOutsideDomain(t *testing.T) {
	field := generate(t, 5, 5, current.Params{MaxSpeed: 1}, 1)
	tr, err := trajectory.Simulate(field, core.V(-1, 2), core.V(3, 3), steering.GoalSeeking{}, trajectory.Options{StepSize: 1, Drift: 1, MaxSteps: 10})
	require.NoError(t, err)
	assert.Equal(t, trajectory.LeftDomain, tr.Reason)
	assert.Equal(t, []core.Vec{core.V(-1, 2)}, tr.Points)
}

func TestSimulate_InertFollowsDriftOnly(t *testing.T) {
	field := generate(t, 60, 40, current.Params{Dispersion: 0.3, MaxSpeed: 0.7}, 7)
	start, goal := core.V(5, 20), core.V(55, 20)
	opts := trajectory.Options{StepSize: 1, Drift: 0.5, MaxSteps: 200}

	tr, err := trajectory.Simulate(field, start, goal, steering.Inert{}, opts)
	require.NoError(t, err)
	require.NotEmpty(t, tr.Points)
	assert.LessOrEqual(t, len(tr.Points), opts.MaxSteps+1)

	for i, d := range tr.Displacements() {
		c := field.At(int(tr.Points[i][0]), int(tr.Points[i][1]))
		assert.InDelta(t, opts.Drift*c[0], d[0], 1e-12, "step %d", i)
		assert.InDelta(t, opts.Drift*c[1], d[1], 1e-12, "step %d", i)
	}
}

func TestSimulate_GoalSeekingStraightLineOnCalmField(t *testing.T) {
	field := generate(t, 20, 20, current.Params{MaxSpeed: 0}, 1)
	start, goal := core.V(1, 1), core.V(7, 9)

	tr, err := trajectory.Simulate(field, start, goal, steering.GoalSeeking{}, trajectory.Options{StepSize: 1, Drift: 1, MaxSteps: 100})
	require.NoError(t, err)
	assert.Equal(t, trajectory.ReachedGoal, tr.Reason)
	assert.LessOrEqual(t, tr.Steps(), 10)
	assert.LessOrEqual(t, core.Dist(tr.Final(), goal), trajectory.GoalRadius)

	dir := core.Sub(goal, start)
	for _, p := range tr.Points {
		off := core.Sub(p, start)
		cross := off[0]*dir[1] - off[1]*dir[0]
		assert.InDelta(t, 0, cross, 1e-9, "point %v off the direct line", p)
	}
}

func TestSimulate_Deterministic(t *testing.T) {
	params := current.Params{Dispersion: 0.3, MaxSpeed: 0.7}
	start, goal := core.V(5, 40), core.V(155, 40)
	opts := trajectory.Options{StepSize: 1, Drift: 1, MaxSteps: 2000}

	run := func() []trajectory.Trajectory {
		field := generate(t, 160, 90, params, 42)
		var out []trajectory.Trajectory
		for _, name := range steering.Names() {
			tr, err := trajectory.Simulate(field, start, goal, policy(t, name, start, goal), opts)
			require.NoError(t, err)
			out = append(out, tr)
		}
		return out
	}

	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Fatalf("same seed produced different trajectories:\n%s", diff)
	}
}

func TestSimulate_StepBound(t *testing.T) {
	field := generate(t, 50, 50, current.Params{MaxSpeed: 0}, 1)
	start, goal := core.V(1, 1), core.V(45, 45)

	tr, err := trajectory.Simulate(field, start, goal, steering.GoalSeeking{}, trajectory.Options{StepSize: 0.5, Drift: 1, MaxSteps: 3})
	require.NoError(t, err)
	assert.Equal(t, trajectory.DidNotConverge, tr.Reason)
	assert.Equal(t, 3, tr.Steps())
}

func TestSimulate_Errors(t *testing.T) {
	field := generate(t, 5, 5, current.Params{MaxSpeed: 1}, 1)
	good := trajectory.Options{StepSize: 1, Drift: 1, MaxSteps: 5}

	_, err := trajectory.Simulate(nil, core.V(1, 1), core.V(3, 3), steering.Inert{}, good)
	assert.ErrorIs(t, err, trajectory.ErrNilField)

	_, err = trajectory.Simulate(field, core.V(1, 1), core.V(3, 3), nil, good)
	assert.ErrorIs(t, err, trajectory.ErrNilPolicy)

	_, err = trajectory.Simulate(field, core.V(1, 1), core.V(3, 3), steering.Inert{}, trajectory.Options{MaxSteps: 0})
	if !errors.Is(err, trajectory.ErrInvalidMaxSteps) {
		t.Fatalf("error = %v; want ErrInvalidMaxSteps", err)
	}
}

func TestTrajectoryMetrics(t *testing.T) {
	tr := trajectory.Trajectory{Points: []core.Vec{core.V(0, 0), core.V(3, 4), core.V(3, 5)}}
	assert.Equal(t, 2, tr.Steps())
	assert.Equal(t, core.V(0, 0), tr.Start())
	assert.Equal(t, core.V(3, 5), tr.Final())
	assert.InDelta(t, 6, tr.Length(), 1e-12)
	assert.Equal(t, []core.Vec{core.V(3, 4), core.V(0, 1)}, tr.Displacements())
	assert.Equal(t, "unknown", trajectory.Reason(0).String())
	assert.Equal(t, "left domain", trajectory.LeftDomain.String())
	assert.False(t, math.IsNaN(tr.Length()))
}
