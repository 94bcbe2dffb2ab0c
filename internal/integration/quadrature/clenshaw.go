package quadrature

import (
	"fmt"
	"math"
)

// ClenshawCurtis integrates f over the finite interval [a, b] through the
// substitution x = (a+b)/2 + (b-a)/2·cos(θ), θ ∈ [0, π]. Sample density
// concentrates near a and b, which handles integrable endpoint singularities
// with far fewer evaluations than Integrate.
func (q *Integrator) ClenshawCurtis(f Func, a, b float64) (Result, error) {
	if err := finiteLimits(a, b); err != nil {
		return Result{}, fmt.Errorf("clenshaw-curtis: %w", err)
	}

	g := func(theta float64) float64 {
		return f((a+b)/2+(b-a)/2*math.Cos(theta)) * math.Sin(theta) * (b - a) / 2
	}
	return q.Integrate(g, 0, math.Pi)
}
