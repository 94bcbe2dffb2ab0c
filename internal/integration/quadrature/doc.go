// Package quadrature provides deterministic adaptive integration of
// one-dimensional real functions.
//
// The core rule samples four interior points of an interval at 1/6, 2/6, 4/6
// and 5/6 of its width, compares a higher-order (weights 2,1,1,2) and a
// lower-order (weights 1,1,1,1) estimate, and bisects until the difference is
// within tolerance. Interior points are placed so that every child interval
// inherits two of its four samples from the parent; each subdivision costs
// two fresh integrand evaluations per child.
//
// Wrappers:
//   - Improper: maps semi-infinite and infinite intervals onto finite ones
//   - ClenshawCurtis: x = mid + half·cos(θ) substitution that clusters samples
//     near the endpoints, suited to integrable endpoint singularities
//
// Error estimates of accepted subintervals combine in quadrature (root of the
// sum of squares), so each half receives the parent's absolute tolerance
// divided by √2.
//
// Example Usage:
//
//	res, err := quadrature.Integrate(math.Sqrt, 0, 1)
//	// res.Value ≈ 2/3, res.Error, res.Evaluations
//
//	q := quadrature.New(quadrature.Precision{Abs: 1e-6, Rel: 0})
//	res, err = q.Improper(func(x float64) float64 { return math.Exp(-x * x) },
//		math.Inf(-1), math.Inf(1))
package quadrature
