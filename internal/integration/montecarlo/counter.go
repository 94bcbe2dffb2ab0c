package montecarlo

import "sync/atomic"

// Counter wraps an integrand and records how many times it is called.
type Counter struct {
	f     Func
	calls atomic.Int64
}

// Count wraps f in a Counter
func Count(f Func) *Counter {
	return &Counter{f: f}
}

// Eval calls the wrapped integrand
func (c *Counter) Eval(x []float64) float64 {
	c.calls.Add(1)
	return c.f(x)
}

// Calls returns the number of evaluations so far
func (c *Counter) Calls() int {
	return int(c.calls.Load())
}
