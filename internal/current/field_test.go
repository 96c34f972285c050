package current_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boatsim/internal/core"
	"boatsim/internal/current"
)

func newField(t *testing.T, w, h int) *current.Field {
	t.Helper()
	f, err := current.Generate(core.Size{W: w, H: h}, current.Params{Dispersion: 0.4, MaxSpeed: 1}, core.NewRNG(11))
	require.NoError(t, err)
	return f
}

func TestSampleTruncates(t *testing.T) {
	f := newField(t, 8, 6)

	got, err := f.Sample(core.V(3.99, 2.01))
	require.NoError(t, err)
	assert.Equal(t, f.At(3, 2), got)

	got, err = f.Sample(core.V(0, 0))
	require.NoError(t, err)
	assert.Equal(t, f.At(0, 0), got)
}

func TestSampleOutOfBounds(t *testing.T) {
	f := newField(t, 8, 6)
	points := []core.Vec{
		core.V(8, 0),
		core.V(0, 6),
		core.V(-0.5, 2),
		core.V(2, -0.01),
		core.V(math.NaN(), 1),
	}
	for _, p := range points {
		_, err := f.Sample(p)
		if !errors.Is(err, current.ErrOutOfBounds) {
			t.Errorf("Sample(%v) error = %v; want ErrOutOfBounds", p, err)
		}
	}
}

func TestContainsMatchesSample(t *testing.T) {
	f := newField(t, 5, 4)
	for _, p := range []core.Vec{core.V(0, 0), core.V(4.999, 3.999), core.V(5, 1), core.V(-0.1, 1), core.V(1, 4)} {
		_, err := f.Sample(p)
		assert.Equal(t, f.Contains(p), err == nil, "point %v", p)
	}
}

func TestComponentCopiesAreIsolated(t *testing.T) {
	f := newField(t, 4, 4)
	u := f.U()
	before := f.At(0, 0)
	u[0] = 1000
	assert.Equal(t, before, f.At(0, 0))
	assert.Len(t, f.V(), 16)
}
