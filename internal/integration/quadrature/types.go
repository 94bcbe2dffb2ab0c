package quadrature

import (
	"errors"
	"fmt"
	"math"
)

// Func is a real integrand. It must be free of side effects visible to the
// integrator; wrap it in a Counter to observe evaluations.
type Func func(x float64) float64

// DefaultMaxDepth bounds bisection depth. Integrable endpoint singularities
// such as 1/√x on [0,1] converge only after ~1070 levels, when the
// subintervals reach the subnormal range.
const DefaultMaxDepth = 2048

var (
	ErrInvalidLimits          = errors.New("invalid integration limits")
	ErrInvalidPrecision       = errors.New("invalid precision")
	ErrToleranceNotAchievable = errors.New("tolerance not achievable")
	ErrNonFinite              = errors.New("integrand estimate is not finite")
	ErrEvaluationLimit        = errors.New("evaluation limit exceeded")
)

// Precision is the (absolute, relative) tolerance pair. A subinterval is
// accepted when its error estimate is within max(Abs, Rel·|estimate|).
type Precision struct {
	Abs float64 `json:"abs"`
	Rel float64 `json:"rel"`
}

// DefaultPrecision returns the (0.01, 0.01) tolerance pair
func DefaultPrecision() Precision {
	return Precision{Abs: 0.01, Rel: 0.01}
}

// Validate rejects negative or NaN tolerances
func (p Precision) Validate() error {
	if math.IsNaN(p.Abs) || math.IsNaN(p.Rel) || p.Abs < 0 || p.Rel < 0 {
		return fmt.Errorf("%w: abs=%v rel=%v", ErrInvalidPrecision, p.Abs, p.Rel)
	}
	return nil
}

// Result is the outcome of an adaptive integration.
type Result struct {
	Value       float64 `json:"value"`
	Error       float64 `json:"error"`
	Evaluations int     `json:"evaluations"`
}

// Integrator holds tolerance and resource limits for adaptive integration.
// The zero value of MaxDepth means DefaultMaxDepth; MaxEvaluations <= 0 means
// unlimited.
type Integrator struct {
	Precision      Precision
	MaxDepth       int
	MaxEvaluations int
}

// New creates an integrator with the given precision and default limits
func New(p Precision) *Integrator {
	return &Integrator{Precision: p, MaxDepth: DefaultMaxDepth}
}

// Default returns an integrator with DefaultPrecision
func Default() *Integrator {
	return New(DefaultPrecision())
}

func (q *Integrator) maxDepth() int {
	if q.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return q.MaxDepth
}

// Integrate runs Default().Integrate
func Integrate(f Func, a, b float64) (Result, error) {
	return Default().Integrate(f, a, b)
}

// Improper runs Default().Improper
func Improper(f Func, a, b float64) (Result, error) {
	return Default().Improper(f, a, b)
}

// ClenshawCurtis runs Default().ClenshawCurtis
func ClenshawCurtis(f Func, a, b float64) (Result, error) {
	return Default().ClenshawCurtis(f, a, b)
}
