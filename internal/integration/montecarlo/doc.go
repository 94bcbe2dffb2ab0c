// Package montecarlo provides stochastic integration of functions over
// hyperrectangles.
//
// Integrators:
//   - Plain: uniform random sampling, error from the sample variance
//   - LowDiscrepancy: two decorrelated Halton sequences; the reported error
//     is the difference between the two estimates, a heuristic discrepancy
//     proxy and not a confidence interval
//   - Stratified: recursive stratified sampling (MISER-style) that bisects
//     the box along the axis promising the largest variance reduction and
//     distributes samples in proportion to the per-side standard deviations
//
// Every random draw comes from the rng.Sampler passed in by the caller; the
// same sampler state and arguments reproduce the same estimate.
//
// Example Usage:
//
//	disc := func(x []float64) float64 {
//		if x[0]*x[0]+x[1]*x[1] <= 1 {
//			return 1
//		}
//		return 0
//	}
//	est, err := montecarlo.Stratified(disc, []float64{0, 0}, []float64{1, 1}, 10000, rng.New(1234), nil)
package montecarlo
