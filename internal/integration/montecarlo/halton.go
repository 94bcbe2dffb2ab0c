package montecarlo

import "fmt"

// haltonBases are the first 32 primes. The decorrelated second sequence uses
// the table shifted by one, so at most len(haltonBases)-1 dimensions are
// supported.
var haltonBases = [...]uint64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53,
	59, 61, 67, 71, 73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131,
}

// MaxLowDiscrepancyDimensions is the largest dimension LowDiscrepancy accepts.
const MaxLowDiscrepancyDimensions = len(haltonBases) - 1

// radicalInverse mirrors the base-b digits of i about the radix point.
func radicalInverse(i, base uint64) float64 {
	inv := 1 / float64(base)
	scale := inv
	var r float64
	for i > 0 {
		r += float64(i%base) * scale
		i /= base
		scale *= inv
	}
	return r
}

// Halton generates points of the unit hypercube with one prime base per axis.
type Halton struct {
	bases []uint64
	index uint64
}

// NewHalton creates a dim-dimensional sequence using the bases starting at
// haltonBases[shift], beginning at point index start.
func NewHalton(dim, shift int, start uint64) (*Halton, error) {
	if dim <= 0 || shift < 0 || dim+shift > len(haltonBases) {
		return nil, fmt.Errorf("%w: dim=%d shift=%d, %d bases available", ErrTooManyDimensions, dim, shift, len(haltonBases))
	}
	return &Halton{bases: haltonBases[shift : shift+dim], index: start}, nil
}

// Next writes the next point into x and advances the sequence
func (h *Halton) Next(x []float64) {
	for i, base := range h.bases {
		x[i] = radicalInverse(h.index, base)
	}
	h.index++
}
