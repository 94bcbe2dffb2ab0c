package quadrature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImproperKnownIntegrals(t *testing.T) {
	inf := math.Inf(1)

	tests := []struct {
		name string
		f    Func
		a, b float64
		want float64
	}{
		{"inverse square", func(x float64) float64 { return math.Pow(x, -2) }, 1, inf, 1},
		{"gaussian", func(x float64) float64 { return math.Exp(-x * x) }, -inf, inf, math.Sqrt(math.Pi)},
		{"gamma(5)", func(x float64) float64 { return math.Pow(x, 4) * math.Exp(-x) }, 0, inf, 24},
		{"lower tail", func(x float64) float64 { return math.Exp(x) }, -inf, 0, 1},
		{"finite passthrough", math.Sqrt, 0, 1, 2.0 / 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Improper(tt.f, tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, res.Value, 0.01)
		})
	}
}

func TestImproperOrientation(t *testing.T) {
	inf := math.Inf(1)
	gauss := func(x float64) float64 { return math.Exp(-x * x) }

	pairs := [][2]float64{
		{0, inf},
		{-inf, 1},
		{-inf, inf},
	}

	for _, p := range pairs {
		fwd, err := Improper(gauss, p[0], p[1])
		require.NoError(t, err)
		rev, err := Improper(gauss, p[1], p[0])
		require.NoError(t, err)

		assert.Equal(t, fwd.Value, -rev.Value, "bounds %v", p)
		assert.Equal(t, fwd.Evaluations, rev.Evaluations)
	}
}

func TestImproperInvalidLimits(t *testing.T) {
	inf := math.Inf(1)
	f := func(x float64) float64 { return 1 }

	for _, bounds := range [][2]float64{{inf, inf}, {-inf, -inf}, {math.NaN(), inf}} {
		_, err := Improper(f, bounds[0], bounds[1])
		assert.ErrorIs(t, err, ErrInvalidLimits)
	}
}
