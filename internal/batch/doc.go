// Package batch runs suites of integrations described in job files.
//
// A job file lists named jobs, each naming a method, an integrand expression
// and its bounds, and optionally an expected value with a tolerance:
//
//	concurrency: 4
//	jobs:
//	  - name: gaussian
//	    method: improper
//	    expression: exp(-x*x)
//	    a: -inf
//	    b: inf
//	    expected: 1.7724538509055159
//	    tolerance: 0.01
//	  - name: disc
//	    method: stratified
//	    expression: "x[0]*x[0] + x[1]*x[1] <= 1 ? 1 : 0"
//	    lower: [-1, -1]
//	    upper: [1, 1]
//	    samples: 100000
//	    seed: 42
//
// Files may be JSON, YAML or TOML, optionally gzip or zstd compressed.
// Runner executes jobs concurrently; every Monte Carlo job builds its own
// generator from its seed, so reports do not depend on scheduling. Job IDs
// are UUIDv5 over the source file and job name and stay stable across runs.
package batch
