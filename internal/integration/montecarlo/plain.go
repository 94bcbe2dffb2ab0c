package montecarlo

import (
	"math"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/rng"
)

// Plain integrates f over the box ∏[a_i, b_i] with n uniform random points.
//
//	value = V·mean,  error = |V|·√(variance/n)
//
// where variance is the uncorrected sample variance.
func Plain(f Func, a, b []float64, n int, s rng.Sampler) (Estimate, error) {
	if err := validate(a, b, n, s); err != nil {
		return Estimate{}, err
	}

	sm := newSampler(f, s, len(a))
	stats := sm.sample(a, b, n, nil)

	v := volume(a, b)
	return Estimate{
		Value: stats.Mean() * v,
		Error: math.Abs(v) * math.Sqrt(stats.Variance()/float64(n)),
	}, nil
}

// boxSampler draws uniform points in a box and evaluates the integrand.
// Buffers are reused across calls.
type boxSampler struct {
	f    Func
	src  rng.Sampler
	x, u []float64
}

func newSampler(f Func, src rng.Sampler, dim int) *boxSampler {
	return &boxSampler{
		f:   f,
		src: src,
		x:   make([]float64, dim),
		u:   make([]float64, dim),
	}
}

// sample evaluates n uniform points in [a, b]. When sides is non-nil, each
// value is also recorded per axis on the half (0: towards a, 1: towards b)
// containing the point.
func (bs *boxSampler) sample(a, b []float64, n int, sides [][2]SampleStats) SampleStats {
	var total SampleStats
	for j := 0; j < n; j++ {
		for i := range bs.x {
			bs.u[i] = bs.src.Float64()
			bs.x[i] = a[i] + bs.u[i]*(b[i]-a[i])
		}
		fx := bs.f(bs.x)
		total.Add(fx)

		for i := range sides {
			side := 0
			if bs.u[i] >= 0.5 {
				side = 1
			}
			sides[i][side].Add(fx)
		}
	}
	return total
}
