package export_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boatsim/internal/config"
	"boatsim/internal/core"
	"boatsim/internal/export"
	"boatsim/internal/scenario"
)

func runSmall(t *testing.T) *scenario.Result {
	t.Helper()
	s := config.NewDefaultConfig().Scenario
	s.Width, s.Height = 10, 10
	s.Dispersion, s.MaxSpeed = 0, 0
	s.Start = config.Point{X: 1, Y: 5}
	s.Goal = config.Point{X: 8, Y: 5}
	s.MaxSteps = 20
	res, err := scenario.Run(context.Background(), s)
	require.NoError(t, err)
	return res
}

func TestWriteRead(t *testing.T) {
	res := runSmall(t)

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, res, export.Options{}))
	assert.NotContains(t, buf.String(), `"field"`)

	doc, err := export.Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, res.RunID, doc.RunID)
	assert.Equal(t, 10, doc.Parameters.Width)
	assert.Equal(t, core.V(8, 5), doc.Parameters.Goal)
	assert.Equal(t, res.Order, doc.Parameters.Policies)
	require.Len(t, doc.Trajectories, 3)

	gs := doc.Trajectories[2]
	assert.Equal(t, "goal-seeking", gs.Policy)
	assert.Equal(t, "reached goal", gs.Reason)
	assert.Equal(t, 6, gs.Steps)
	assert.InDelta(t, 6, gs.Length, 1e-12)
	assert.Equal(t, res.Trajectories["goal-seeking"].Points, gs.Points)

	assert.Equal(t, "did not converge", doc.Trajectories[0].Reason)
	assert.Len(t, doc.Trajectories[0].Points, 21)
}

func TestWrite_IncludeField(t *testing.T) {
	res := runSmall(t)

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, res, export.Options{IncludeField: true}))
	doc, err := export.Read(&buf)
	require.NoError(t, err)

	require.NotNil(t, doc.Field)
	assert.Equal(t, 10, doc.Field.Width)
	assert.Equal(t, res.Field.U(), doc.Field.U)
	assert.Equal(t, res.Field.V(), doc.Field.V)
}

func TestWriteFile(t *testing.T) {
	res := runSmall(t)
	path := filepath.Join(t.TempDir(), "run.json")

	require.NoError(t, export.WriteFile(path, res, export.Options{}))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	doc, err := export.Read(f)
	require.NoError(t, err)
	assert.Equal(t, res.RunID, doc.RunID)
}

func TestWriteFile_BadPath(t *testing.T) {
	res := runSmall(t)
	err := export.WriteFile(filepath.Join(t.TempDir(), "missing", "run.json"), res, export.Options{})
	assert.Error(t, err)
}

func TestRead_Garbage(t *testing.T) {
	_, err := export.Read(bytes.NewBufferString("{not json"))
	assert.Error(t, err)
}
