package montecarlo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/rng"
)

func unitDisc(x []float64) float64 {
	if x[0]*x[0]+x[1]*x[1] <= 1 {
		return 1
	}
	return 0
}

func TestPlainConstant(t *testing.T) {
	two := func(x []float64) float64 { return 2 }

	est, err := Plain(two, []float64{0, 1}, []float64{2, 4}, 100, rng.New(1))
	require.NoError(t, err)
	assert.InDelta(t, 12.0, est.Value, 1e-12)
	assert.Zero(t, est.Error)

	est, err = Plain(two, []float64{0, 4}, []float64{2, 1}, 100, rng.New(1))
	require.NoError(t, err)
	assert.InDelta(t, -12.0, est.Value, 1e-12)
	assert.Zero(t, est.Error)
}

func TestPlainDeterministic(t *testing.T) {
	a, b := []float64{0, 0}, []float64{1, 1}

	first, err := Plain(unitDisc, a, b, 1000, rng.New(1234))
	require.NoError(t, err)
	second, err := Plain(unitDisc, a, b, 1000, rng.New(1234))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPlainOneSigmaCoverage(t *testing.T) {
	const seeds = 200
	a, b := []float64{0, 0}, []float64{1, 1}

	covered := 0
	for seed := uint64(1); seed <= seeds; seed++ {
		est, err := Plain(unitDisc, a, b, 1000, rng.New(seed))
		require.NoError(t, err)
		if math.Abs(est.Value-math.Pi/4) < est.Error {
			covered++
		}
	}

	// one standard error covers ~68% of runs
	assert.Greater(t, float64(covered)/seeds, 0.55)
}

func TestPlainCountsEvaluations(t *testing.T) {
	c := Count(unitDisc)
	_, err := Plain(c.Eval, []float64{0, 0}, []float64{1, 1}, 777, rng.NewMT19937(3))
	require.NoError(t, err)
	assert.Equal(t, 777, c.Calls())
}

func TestPlainFailures(t *testing.T) {
	a, b := []float64{0, 0}, []float64{1, 1}

	_, err := Plain(unitDisc, a, b, 0, rng.New(1))
	assert.ErrorIs(t, err, ErrNoSamples)

	_, err = Plain(unitDisc, a, []float64{1}, 10, rng.New(1))
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Plain(unitDisc, nil, nil, 10, rng.New(1))
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Plain(unitDisc, a, []float64{1, math.Inf(1)}, 10, rng.New(1))
	assert.ErrorIs(t, err, ErrInvalidBounds)

	_, err = Plain(unitDisc, a, b, 10, nil)
	assert.ErrorIs(t, err, ErrNilSampler)
}
