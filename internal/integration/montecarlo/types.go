package montecarlo

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/rng"
)

// Func is a multi-dimensional integrand. The slice is owned by the
// integrator and reused between calls; Func must not retain it.
type Func func(x []float64) float64

var (
	ErrNoSamples           = errors.New("sample count must be positive")
	ErrDimensionMismatch   = errors.New("bound dimensions do not match")
	ErrInvalidBounds       = errors.New("bounds must be finite")
	ErrNilSampler          = errors.New("sampler is nil")
	ErrTooManyDimensions   = errors.New("dimension exceeds available low-discrepancy bases")
	ErrInsufficientSamples = errors.New("insufficient samples for stratification")
	ErrInvalidOptions      = errors.New("invalid stratification options")
)

// Estimate is the outcome of a Monte Carlo integration.
type Estimate struct {
	Value float64 `json:"value"`
	Error float64 `json:"error"`
}

func validateBox(a, b []float64) error {
	if len(a) == 0 || len(a) != len(b) {
		return fmt.Errorf("%w: len(a)=%d len(b)=%d", ErrDimensionMismatch, len(a), len(b))
	}
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) || math.IsInf(a[i], 0) || math.IsInf(b[i], 0) {
			return fmt.Errorf("%w: axis %d is [%g, %g]", ErrInvalidBounds, i, a[i], b[i])
		}
	}
	return nil
}

func validate(a, b []float64, n int, s rng.Sampler) error {
	if n <= 0 {
		return fmt.Errorf("%w: got %d", ErrNoSamples, n)
	}
	if s == nil {
		return ErrNilSampler
	}
	return validateBox(a, b)
}

// volume is the signed volume of the box; reversed axes flip its sign.
func volume(a, b []float64) float64 {
	w := make([]float64, len(a))
	floats.SubTo(w, b, a)
	return floats.Prod(w)
}
