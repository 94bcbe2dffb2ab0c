package quadrature

import (
	"fmt"
	"math"
)

// frame is a pending subinterval. f2 and f3 are the integrand values at 2/6
// and 4/6 of the interval, inherited from the parent.
type frame struct {
	a, b   float64
	abs    float64
	f2, f3 float64
	depth  int
}

// Integrate adaptively integrates f over the finite interval [a, b].
// Reversed bounds (a > b) yield the negated integral.
//
// On failure the partial sum over the subintervals accepted so far is
// returned together with the error.
func (q *Integrator) Integrate(f Func, a, b float64) (Result, error) {
	if err := finiteLimits(a, b); err != nil {
		return Result{}, err
	}
	if err := q.Precision.Validate(); err != nil {
		return Result{}, err
	}

	rel := q.Precision.Rel
	maxDepth := q.maxDepth()

	if q.MaxEvaluations > 0 && q.MaxEvaluations < 2 {
		return Result{}, fmt.Errorf("%w: %d", ErrEvaluationLimit, q.MaxEvaluations)
	}
	f2, f3 := f(a+2.0/6*(b-a)), f(a+4.0/6*(b-a))
	res := Result{Evaluations: 2}
	var variance float64

	done := func(err error) (Result, error) {
		res.Error = math.Sqrt(variance)
		return res, err
	}

	stack := []frame{{a: a, b: b, abs: q.Precision.Abs, f2: f2, f3: f3}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if q.MaxEvaluations > 0 && res.Evaluations+2 > q.MaxEvaluations {
			return done(fmt.Errorf("%w: %d", ErrEvaluationLimit, q.MaxEvaluations))
		}

		h := fr.b - fr.a
		f1, f4 := f(fr.a+1.0/6*h), f(fr.a+5.0/6*h)
		res.Evaluations += 2

		high := (2*f1 + fr.f2 + fr.f3 + 2*f4) / 6 * h
		low := (f1 + fr.f2 + fr.f3 + f4) / 4 * h
		if math.IsNaN(high) || math.IsInf(high, 0) {
			return done(fmt.Errorf("%w on [%g, %g]", ErrNonFinite, fr.a, fr.b))
		}

		errEst := math.Abs(high - low)
		if errEst <= math.Max(fr.abs, rel*math.Abs(high)) {
			res.Value += high
			variance += errEst * errEst
			continue
		}

		if fr.depth >= maxDepth {
			return done(fmt.Errorf("%w: depth %d reached on [%g, %g]", ErrToleranceNotAchievable, maxDepth, fr.a, fr.b))
		}
		mid := (fr.a + fr.b) / 2
		if mid <= math.Min(fr.a, fr.b) || mid >= math.Max(fr.a, fr.b) {
			return done(fmt.Errorf("%w: [%g, %g] cannot be bisected", ErrToleranceNotAchievable, fr.a, fr.b))
		}

		// The left half's 2/6 and 4/6 points are the parent's 1/6 and 2/6
		// points; the right half's are the parent's 4/6 and 5/6 points.
		abs := fr.abs / math.Sqrt2
		stack = append(stack,
			frame{a: mid, b: fr.b, abs: abs, f2: fr.f3, f3: f4, depth: fr.depth + 1},
			frame{a: fr.a, b: mid, abs: abs, f2: f1, f3: fr.f2, depth: fr.depth + 1},
		)
	}

	return done(nil)
}

func finiteLimits(a, b float64) error {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return fmt.Errorf("%w: [%g, %g] must be finite", ErrInvalidLimits, a, b)
	}
	return nil
}
