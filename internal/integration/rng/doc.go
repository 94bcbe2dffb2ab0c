// Package rng provides the uniform variate sources used by the Monte Carlo
// integrators.
//
// Every stochastic routine takes a Sampler explicitly. There is no package
// level generator: a caller that wants reproducible output constructs a
// generator from a seed and hands it to exactly one integration at a time.
//
// Generators:
//   - Rng: 64-bit wyrand-style hash generator, fast and seed-reproducible
//   - MT19937: Mersenne Twister stream backed by gonum's mathext/prng
//   - Locked: mutex wrapper for a generator shared between goroutines
//
// Example Usage:
//
//	gen := rng.New(1234)
//	est, err := montecarlo.Plain(f, a, b, 10000, gen)
package rng
