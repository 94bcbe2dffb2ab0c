package montecarlo

import (
	"fmt"
	"math"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/rng"
)

// LowDiscrepancy integrates f over ∏[a_i, b_i] with two Halton sequences of
// n/2 points each. The first uses bases p_0…p_{d-1} from index 1; the second
// uses p_1…p_d starting at an index in [n/2, n) drawn from seed.
//
// The returned Error is |int1 − int2|. It tracks how far two equally good
// quasi-random estimates disagree and shrinks roughly as 1/n for smooth
// integrands, but it carries no probabilistic coverage guarantee.
func LowDiscrepancy(f Func, a, b []float64, n int, seed uint64) (Estimate, error) {
	half := n / 2
	if half <= 0 {
		return Estimate{}, fmt.Errorf("%w: need at least 2, got %d", ErrNoSamples, n)
	}
	if err := validateBox(a, b); err != nil {
		return Estimate{}, err
	}

	dim := len(a)
	if dim > MaxLowDiscrepancyDimensions {
		return Estimate{}, fmt.Errorf("%w: %d > %d", ErrTooManyDimensions, dim, MaxLowDiscrepancyDimensions)
	}

	offset := uint64(half) + uint64(rng.New(seed).Float64()*float64(half))
	first, err := NewHalton(dim, 0, 1)
	if err != nil {
		return Estimate{}, err
	}
	second, err := NewHalton(dim, 1, offset+1)
	if err != nil {
		return Estimate{}, err
	}

	u := make([]float64, dim)
	x := make([]float64, dim)
	eval := func(h *Halton) float64 {
		h.Next(u)
		for i := range x {
			x[i] = a[i] + u[i]*(b[i]-a[i])
		}
		return f(x)
	}

	var sum1, sum2 float64
	for j := 0; j < half; j++ {
		sum1 += eval(first)
		sum2 += eval(second)
	}

	v := volume(a, b)
	int1 := v * sum1 / float64(half)
	int2 := v * sum2 / float64(half)
	return Estimate{Value: int1, Error: math.Abs(int1 - int2)}, nil
}
