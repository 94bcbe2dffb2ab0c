package montecarlo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/rng"
)

func smoothExp(x []float64) float64 {
	return math.Exp(x[0] + x[1])
}

var smoothExpIntegral = (math.E - 1) * (math.E - 1)

func TestRadicalInverse(t *testing.T) {
	tests := []struct {
		i, base uint64
		want    float64
	}{
		{0, 2, 0},
		{1, 2, 0.5},
		{2, 2, 0.25},
		{3, 2, 0.75},
		{1, 3, 1.0 / 3},
		{5, 3, 2.0/3 + 1.0/9},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, radicalInverse(tt.i, tt.base), 1e-15, "i=%d base=%d", tt.i, tt.base)
	}
}

func TestHaltonBases(t *testing.T) {
	h, err := NewHalton(2, 0, 1)
	require.NoError(t, err)

	x := make([]float64, 2)
	h.Next(x)
	assert.InDeltaSlice(t, []float64{0.5, 1.0 / 3}, x, 1e-15)
	h.Next(x)
	assert.InDeltaSlice(t, []float64{0.25, 2.0 / 3}, x, 1e-15)

	_, err = NewHalton(len(haltonBases), 1, 0)
	assert.ErrorIs(t, err, ErrTooManyDimensions)
}

func TestLowDiscrepancyAccuracy(t *testing.T) {
	est, err := LowDiscrepancy(smoothExp, []float64{0, 0}, []float64{1, 1}, 10000, 1234)
	require.NoError(t, err)
	assert.InDelta(t, smoothExpIntegral, est.Value, 0.01)
	assert.Less(t, est.Error, 0.01)
}

func TestLowDiscrepancyProxyShrinksFasterThanRootN(t *testing.T) {
	a, b := []float64{0, 0}, []float64{1, 1}
	meanError := func(n int) float64 {
		var sum float64
		for seed := uint64(1); seed <= 5; seed++ {
			est, err := LowDiscrepancy(smoothExp, a, b, n, seed)
			require.NoError(t, err)
			sum += est.Error
		}
		return sum / 5
	}

	small, large := meanError(1000), meanError(32000)
	require.Greater(t, small, 0.0)

	// plain Monte Carlo would shrink by 1/√32 over the same growth
	assert.Less(t, large/small, 1/math.Sqrt(32))

	plainSmall, err := Plain(smoothExp, a, b, 1000, rng.New(1))
	require.NoError(t, err)
	plainLarge, err := Plain(smoothExp, a, b, 32000, rng.New(1))
	require.NoError(t, err)
	assert.Less(t, large/small, plainLarge.Error/plainSmall.Error)
}

func TestLowDiscrepancyDeterministic(t *testing.T) {
	a, b := []float64{-1, 0, 2}, []float64{1, 1, 3}
	f := func(x []float64) float64 { return x[0]*x[0] + x[1]*x[2] }

	first, err := LowDiscrepancy(f, a, b, 2000, 9)
	require.NoError(t, err)
	second, err := LowDiscrepancy(f, a, b, 2000, 9)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	c := Count(f)
	_, err = LowDiscrepancy(c.Eval, a, b, 2001, 9)
	require.NoError(t, err)
	assert.Equal(t, 2000, c.Calls())
}

func TestLowDiscrepancyFailures(t *testing.T) {
	_, err := LowDiscrepancy(smoothExp, []float64{0, 0}, []float64{1, 1}, 1, 0)
	assert.ErrorIs(t, err, ErrNoSamples)

	dim := MaxLowDiscrepancyDimensions + 1
	a, b := make([]float64, dim), make([]float64, dim)
	for i := range b {
		b[i] = 1
	}
	_, err = LowDiscrepancy(func([]float64) float64 { return 1 }, a, b, 100, 0)
	assert.ErrorIs(t, err, ErrTooManyDimensions)

	est, err := LowDiscrepancy(func([]float64) float64 { return 1 }, a[1:], b[1:], 100, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, est.Value, 1e-12)
}
