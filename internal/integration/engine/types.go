package engine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/montecarlo"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/quadrature"
)

var (
	ErrUnknownMethod  = errors.New("unknown integration method")
	ErrUnknownSampler = errors.New("unknown sampler")
	ErrLimitExceeded  = errors.New("request exceeds configured limit")
	ErrInvalidLimit   = errors.New("invalid integration limit")
)

// Method names an integration algorithm
type Method string

const (
	MethodQuad           Method = "quad"
	MethodImproper       Method = "improper"
	MethodClenshawCurtis Method = "clenshaw_curtis"
	MethodPlain          Method = "plain"
	MethodLowDiscrepancy Method = "low_discrepancy"
	MethodStratified     Method = "stratified"
)

// Methods lists every supported method in a stable order
var Methods = []Method{
	MethodQuad,
	MethodImproper,
	MethodClenshawCurtis,
	MethodPlain,
	MethodLowDiscrepancy,
	MethodStratified,
}

// ParseMethod accepts a method name as listed in Methods
func ParseMethod(s string) (Method, error) {
	for _, m := range Methods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Vector reports whether the method integrates over a box with x[i]
func (m Method) Vector() bool {
	switch m {
	case MethodPlain, MethodLowDiscrepancy, MethodStratified:
		return true
	}
	return false
}

// Sampler names a uniform generator for the random Monte Carlo methods
type Sampler string

const (
	SamplerWyrand  Sampler = "wyrand"
	SamplerMT19937 Sampler = "mt19937"
)

// Request describes one integration.
type Request struct {
	Method     Method
	Expression string

	// A and B bound 1-D methods; Lower and Upper bound the box of vector methods.
	A, B         float64
	Lower, Upper []float64

	// Precision applies to 1-D methods; nil selects the configured default.
	Precision *quadrature.Precision

	Samples int
	Seed    uint64
	Sampler Sampler
	Options *montecarlo.StratifiedOptions
}

// Outcome is the result of one integration. On failure it may still carry
// the partial estimate reached before the error.
type Outcome struct {
	Method      Method        `json:"method"`
	Value       float64       `json:"value"`
	Error       float64       `json:"error"`
	Evaluations int           `json:"evaluations"`
	Duration    time.Duration `json:"duration"`
}

// ParseLimit parses an integration bound. Besides decimal numbers it accepts
// inf, +inf, -inf, infinity and -infinity in any case.
func ParseLimit(s string) (float64, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	switch t {
	case "inf", "+inf", "infinity", "+infinity":
		return math.Inf(1), nil
	case "-inf", "-infinity":
		return math.Inf(-1), nil
	}

	v, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLimit, s)
	}
	return v, nil
}

// FormatLimit is the inverse of ParseLimit
func FormatLimit(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
