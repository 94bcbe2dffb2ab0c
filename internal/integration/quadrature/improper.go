package quadrature

import (
	"fmt"
	"math"
)

// Improper integrates f over [a, b] where either bound may be infinite.
//
//	(-∞, ∞): x = t/(1-t²),  dx = (1+t²)/(1-t²)² dt,  t ∈ (-1, 1)
//	[a, ∞):  x = a + (1-t)/t, dx = dt/t²,           t ∈ (0, 1]
//	(-∞, b]: x = b - (1-t)/t, dx = dt/t²,           t ∈ (0, 1]
//
// Intervals running towards -∞ from the lower bound, or starting at +∞, are
// integrated in their natural orientation and negated. Finite intervals are
// passed to Integrate unchanged.
func (q *Integrator) Improper(f Func, a, b float64) (Result, error) {
	if math.IsNaN(a) || math.IsNaN(b) {
		return Result{}, fmt.Errorf("%w: NaN bound", ErrInvalidLimits)
	}

	aInf, bInf := math.IsInf(a, 0), math.IsInf(b, 0)
	switch {
	case aInf && bInf:
		if a == b {
			return Result{}, fmt.Errorf("%w: both bounds are %g", ErrInvalidLimits, a)
		}
		if a > b {
			return q.reversed(f, a, b)
		}
		g := func(t float64) float64 {
			return f(t/(1-t*t)) * (1 + t*t) / math.Pow(1-t*t, 2)
		}
		return q.Integrate(g, -1, 1)

	case bInf:
		if b < 0 {
			return q.reversed(f, a, b)
		}
		g := func(t float64) float64 {
			return f(a+(1-t)/t) / (t * t)
		}
		return q.Integrate(g, 0, 1)

	case aInf:
		if a > 0 {
			return q.reversed(f, a, b)
		}
		g := func(t float64) float64 {
			return f(b-(1-t)/t) / (t * t)
		}
		return q.Integrate(g, 0, 1)
	}

	return q.Integrate(f, a, b)
}

func (q *Integrator) reversed(f Func, a, b float64) (Result, error) {
	res, err := q.Improper(f, b, a)
	res.Value = -res.Value
	return res, err
}
