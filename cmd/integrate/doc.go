// Package main is the integrate command line tool.
//
// Usage:
//
//	integrate quad 'sqrt(x)' --a 0 --b 1
//	integrate quad 'exp(-x*x)' --method improper --a=-inf --b=inf
//	integrate mc 'x[0]*x[1]' --lower 0,0 --upper 1,1 --method stratified -n 100000
//	integrate run 'suites/**/*.yaml' --format json
//
// Exit status is 0 when every job succeeds, 1 when a job fails or misses its
// expected value, and 2 for usage errors and unreadable job files.
package main
