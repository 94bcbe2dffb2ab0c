package montecarlo

import (
	"fmt"
	"math"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/rng"
)

// StratifiedOptions tunes recursive stratified sampling. Zero fields take
// their defaults: EstimateFraction 0.1, MinCalls 8·D and
// MinCallsPerBisection 16·MinCalls, where D is the dimension.
type StratifiedOptions struct {
	// EstimateFraction is the share of a box's budget spent choosing the
	// bisection axis.
	EstimateFraction float64 `json:"estimate_fraction"`
	// MinCalls is the minimum estimation budget and the minimum budget
	// handed to either half of a bisected box.
	MinCalls int `json:"min_calls"`
	// MinCallsPerBisection is the budget at or below which a box is
	// integrated with plain Monte Carlo instead of being bisected.
	MinCallsPerBisection int `json:"min_calls_per_bisection"`
}

// DefaultStratifiedOptions returns the defaults for a dim-dimensional box
func DefaultStratifiedOptions(dim int) StratifiedOptions {
	return StratifiedOptions{
		EstimateFraction:     0.1,
		MinCalls:             8 * dim,
		MinCallsPerBisection: 16 * 8 * dim,
	}
}

func (o StratifiedOptions) resolve(dim int) (StratifiedOptions, error) {
	if o.EstimateFraction == 0 {
		o.EstimateFraction = 0.1
	}
	if o.MinCalls == 0 {
		o.MinCalls = 8 * dim
	}
	if o.MinCallsPerBisection == 0 {
		o.MinCallsPerBisection = 16 * o.MinCalls
	}

	if math.IsNaN(o.EstimateFraction) || o.EstimateFraction <= 0 || o.EstimateFraction >= 1 {
		return o, fmt.Errorf("%w: estimate fraction %v not in (0,1)", ErrInvalidOptions, o.EstimateFraction)
	}
	if o.MinCalls < 0 || o.MinCallsPerBisection < 0 {
		return o, fmt.Errorf("%w: negative call limits", ErrInvalidOptions)
	}
	return o, nil
}

// Stratified integrates f over ∏[a_i, b_i] with n samples using recursive
// stratified sampling. A nil opts selects DefaultStratifiedOptions.
//
// Each box above the bisection threshold spends part of its budget on an
// estimation pass, bisects along the axis whose halves promise the lowest
// combined variance, and splits the rest of its budget between the halves in
// proportion to their standard deviations. Estimation samples are not
// discarded: each half pools them with its own result.
//
// An axis whose estimation pass left one half empty is never chosen. A box
// where that holds for every axis is not bisected: the rest of its budget is
// sampled uniformly and pooled with the estimation samples, as for a box
// below the bisection threshold.
func Stratified(f Func, a, b []float64, n int, s rng.Sampler, opts *StratifiedOptions) (Estimate, error) {
	if err := validate(a, b, n, s); err != nil {
		return Estimate{}, err
	}

	var o StratifiedOptions
	if opts != nil {
		o = *opts
	}
	o, err := o.resolve(len(a))
	if err != nil {
		return Estimate{}, err
	}

	st := &stratifier{sampler: newSampler(f, s, len(a)), opts: o}
	pooled, err := st.run(a, b, n, Pooled{})
	if err != nil {
		return Estimate{}, err
	}
	if pooled.Count == 0 {
		return Estimate{}, fmt.Errorf("%w: no samples were pooled", ErrInsufficientSamples)
	}

	v := volume(a, b)
	return Estimate{
		Value: pooled.Mean * v,
		Error: math.Sqrt(pooled.Variance) * math.Abs(v),
	}, nil
}

type stratifier struct {
	sampler *boxSampler
	opts    StratifiedOptions
}

// run estimates the mean of f over [a, b] with a budget of n samples and pools
// it with the statistics carried down from the parent's estimation pass.
func (st *stratifier) run(a, b []float64, n int, carried Pooled) (Pooled, error) {
	nEst := max(st.opts.MinCalls, int(st.opts.EstimateFraction*float64(n)))
	if n <= st.opts.MinCallsPerBisection || n-nEst < 2*st.opts.MinCalls {
		stats := st.sampler.sample(a, b, n, nil)
		return Pool(carried, stats.Estimate()), nil
	}

	sides := make([][2]SampleStats, len(a))
	est := st.sampler.sample(a, b, nEst, sides)

	axis, ok := chooseAxis(sides)
	if !ok {
		// no axis can be bisected: finish this box as a plain stratum
		rest := st.sampler.sample(a, b, n-nEst, nil)
		return Pool(carried, est.Merge(rest).Estimate()), nil
	}
	left, right := sides[axis][0], sides[axis][1]

	remaining := n - nEst
	nLeft := allocate(remaining, st.opts.MinCalls, math.Sqrt(left.Variance()), math.Sqrt(right.Variance()))

	mid := (a[axis] + b[axis]) / 2
	bLeft := append([]float64(nil), b...)
	bLeft[axis] = mid
	aRight := append([]float64(nil), a...)
	aRight[axis] = mid

	l, err := st.run(a, bLeft, nLeft, left.Estimate())
	if err != nil {
		return Pooled{}, err
	}
	r, err := st.run(aRight, b, remaining-nLeft, right.Estimate())
	if err != nil {
		return Pooled{}, err
	}

	combined := Pooled{
		Mean:     (l.Mean + r.Mean) / 2,
		Variance: (l.Variance + r.Variance) / 4,
		Count:    l.Count + r.Count,
	}
	return Pool(carried, combined), nil
}

// chooseAxis picks the axis minimising σ²_L/(4n_L) + σ²_R/(4n_R). Axes with
// an empty half are skipped.
func chooseAxis(sides [][2]SampleStats) (int, bool) {
	best, bestScore := -1, math.Inf(1)
	for i, s := range sides {
		l, r := s[0], s[1]
		if l.Count == 0 || r.Count == 0 {
			continue
		}
		score := l.Variance()/(4*float64(l.Count)) + r.Variance()/(4*float64(r.Count))
		if best < 0 || score < bestScore {
			best, bestScore = i, score
		}
	}
	return best, best >= 0
}

// allocate returns the left half's share of remaining, proportional to
// sigmaLeft : sigmaRight and leaving each half at least minCalls.
func allocate(remaining, minCalls int, sigmaLeft, sigmaRight float64) int {
	frac := 0.5
	if sigmaLeft+sigmaRight > 0 {
		frac = sigmaLeft / (sigmaLeft + sigmaRight)
	}
	n := int(math.Round(float64(remaining) * frac))
	return min(max(n, minCalls), remaining-minCalls)
}
