package scenario_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"boatsim/internal/config"
	"boatsim/internal/core"
	"boatsim/internal/current"
	"boatsim/internal/scenario"
	"boatsim/internal/steering"
	"boatsim/internal/trajectory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func calmScenario() config.Scenario {
	s := config.NewDefaultConfig().Scenario
	s.Width, s.Height = 10, 10
	s.Dispersion, s.MaxSpeed = 0, 0
	s.Start = config.Point{X: 1, Y: 5}
	s.Goal = config.Point{X: 8, Y: 5}
	s.MaxSteps = 50
	return s
}

func TestRun_CalmField(t *testing.T) {
	res, err := scenario.Run(context.Background(), calmScenario())
	require.NoError(t, err)

	_, err = uuid.Parse(res.RunID)
	require.NoError(t, err)
	assert.Equal(t, []string{steering.InertName, steering.FixedHeadingName, steering.GoalSeekingName}, res.Order)
	require.Len(t, res.Trajectories, 3)

	for _, name := range []string{steering.FixedHeadingName, steering.GoalSeekingName} {
		tr := res.Trajectories[name]
		assert.Equal(t, name, tr.Policy)
		assert.Equal(t, trajectory.ReachedGoal, tr.Reason, name)
		assert.Equal(t, core.V(7, 5), tr.Final(), name)
	}
	inert := res.Trajectories[steering.InertName]
	assert.Equal(t, trajectory.DidNotConverge, inert.Reason)
	assert.Len(t, inert.Points, 51)

	ordered := res.Ordered()
	require.Len(t, ordered, 3)
	assert.Equal(t, steering.InertName, ordered[0].Policy)
	assert.Equal(t, steering.GoalSeekingName, ordered[2].Policy)
	assert.InDelta(t, 0, res.InitialHeading(), 1e-12)
}

func TestRun_Deterministic(t *testing.T) {
	s := config.NewDefaultConfig().Scenario
	a, err := scenario.Run(context.Background(), s)
	require.NoError(t, err)
	b, err := scenario.Run(context.Background(), s)
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
	if diff := cmp.Diff(a.Trajectories, b.Trajectories); diff != "" {
		t.Fatalf("trajectories differ for the same seed:\n%s", diff)
	}
	assert.Equal(t, a.Field.U(), b.Field.U())
	assert.Equal(t, a.Field.V(), b.Field.V())
}

func TestRun_DuplicatePoliciesRunOnce(t *testing.T) {
	s := calmScenario()
	s.Policies = []string{"goal-seeking", "inert", "goal-seeking"}

	res, err := scenario.Run(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, []string{"goal-seeking", "inert"}, res.Order)
}

func TestRun_Errors(t *testing.T) {
	s := calmScenario()
	s.Policies = nil
	_, err := scenario.Run(context.Background(), s)
	assert.ErrorIs(t, err, scenario.ErrNoPolicies)

	s = calmScenario()
	s.Policies = []string{"kayak"}
	_, err = scenario.Run(context.Background(), s)
	assert.ErrorIs(t, err, steering.ErrUnknownPolicy)

	s = calmScenario()
	s.Width = 2
	_, err = scenario.Run(context.Background(), s)
	assert.ErrorIs(t, err, current.ErrInvalidDimensions)

	s = calmScenario()
	s.MaxSteps = 0
	_, err = scenario.Run(context.Background(), s)
	assert.ErrorIs(t, err, trajectory.ErrInvalidMaxSteps)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scenario.Run(ctx, calmScenario())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulate_ReusesField(t *testing.T) {
	s := calmScenario()
	field, err := current.Generate(s.Size(), s.FieldParams(), core.NewRNG(1))
	require.NoError(t, err)

	res, err := scenario.Simulate(context.Background(), field, s)
	require.NoError(t, err)
	assert.Same(t, field, res.Field)
}

func TestParameters(t *testing.T) {
	res, err := scenario.Run(context.Background(), calmScenario())
	require.NoError(t, err)

	snap := res.Parameters()
	w, ok := snap.Lookup("w")
	require.True(t, ok)
	assert.Equal(t, "10", w.Value)
	assert.Equal(t, core.ParamTypeInt, w.Type)

	start, ok := snap.Lookup("start")
	require.True(t, ok)
	assert.Equal(t, "(1.00, 5.00)", start.Value)

	bearing, ok := snap.Lookup("bearing")
	require.True(t, ok)
	assert.Equal(t, "0", bearing.Value)

	outcome, ok := snap.Lookup(steering.GoalSeekingName)
	require.True(t, ok)
	assert.Equal(t, "reached goal in 6", outcome.Value)
	assert.Equal(t, "final (7.00, 5.00)", outcome.Description)
}

func TestLogSummary(t *testing.T) {
	res, err := scenario.Run(context.Background(), calmScenario())
	require.NoError(t, err)

	obs, logs := observer.New(zap.InfoLevel)
	res.LogSummary(zap.New(obs))

	entries := logs.All()
	require.Len(t, entries, 2+len(res.Order))
	assert.Equal(t, "Currents generated", entries[0].Message)
	assert.Equal(t, res.RunID, entries[0].ContextMap()["run_id"])
	assert.Equal(t, "Initial heading", entries[1].Message)

	last := entries[len(entries)-1].ContextMap()
	assert.Equal(t, steering.GoalSeekingName, last["policy"])
	assert.Equal(t, "reached goal", last["reason"])
	assert.Equal(t, int64(6), last["steps"])
}
