package batch

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/engine"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/montecarlo"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/quadrature"
)

var (
	ErrInvalidJob    = errors.New("invalid job")
	ErrDuplicateName = errors.New("duplicate job name")
)

// Bound is an integration limit. It decodes from a number or from one of the
// strings accepted by engine.ParseLimit, and encodes infinities as strings.
type Bound float64

// UnmarshalJSON implements json.Unmarshaler
func (b *Bound) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	v, err := engine.ParseLimit(s)
	if err != nil {
		return err
	}
	*b = Bound(v)
	return nil
}

// MarshalJSON implements json.Marshaler
func (b Bound) MarshalJSON() ([]byte, error) {
	v := float64(b)
	if math.IsInf(v, 0) {
		return []byte(strconv.Quote(engine.FormatLimit(v))), nil
	}
	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

// Job is one integration in a job file
type Job struct {
	Name       string `json:"name" validate:"required,max=128"`
	Method     string `json:"method" validate:"required,oneof=quad improper clenshaw_curtis plain low_discrepancy stratified"`
	Expression string `json:"expression" validate:"required,max=4096"`

	// A and B bound the 1-D methods.
	A *Bound `json:"a,omitempty"`
	B *Bound `json:"b,omitempty"`
	// Lower and Upper bound the box of the Monte Carlo methods.
	Lower []float64 `json:"lower,omitempty"`
	Upper []float64 `json:"upper,omitempty"`

	Abs *float64 `json:"abs,omitempty" validate:"omitempty,gte=0"`
	Rel *float64 `json:"rel,omitempty" validate:"omitempty,gte=0"`

	Samples    int                           `json:"samples,omitempty" validate:"gte=0"`
	Seed       uint64                        `json:"seed,omitempty"`
	Sampler    string                        `json:"sampler,omitempty" validate:"omitempty,oneof=wyrand mt19937"`
	Stratified *montecarlo.StratifiedOptions `json:"stratified,omitempty"`

	// Expected, when set, is compared against the computed value. A job whose
	// deviation exceeds Tolerance is reported as a mismatch.
	Expected  *float64 `json:"expected,omitempty"`
	Tolerance *float64 `json:"tolerance,omitempty" validate:"omitempty,gte=0"`

	// Source is the file the job was loaded from.
	Source string `json:"-"`
}

// File is the top level of a job file
type File struct {
	Concurrency int   `json:"concurrency,omitempty" validate:"gte=0"`
	Jobs        []Job `json:"jobs" validate:"required,min=1,dive"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateJobShape, Job{})
	return v
}

// validateJobShape checks the fields that depend on the method
func validateJobShape(sl validator.StructLevel) {
	job := sl.Current().Interface().(Job)
	method, err := engine.ParseMethod(job.Method)
	if err != nil {
		return // reported by the oneof tag
	}

	if !method.Vector() {
		if job.A == nil {
			sl.ReportError(job.A, "a", "A", "required_for_method", job.Method)
		}
		if job.B == nil {
			sl.ReportError(job.B, "b", "B", "required_for_method", job.Method)
		}
		return
	}

	if len(job.Lower) == 0 {
		sl.ReportError(job.Lower, "lower", "Lower", "required_for_method", job.Method)
	}
	if len(job.Upper) != len(job.Lower) {
		sl.ReportError(job.Upper, "upper", "Upper", "len_matches_lower", "")
	}
	if job.Samples == 0 {
		sl.ReportError(job.Samples, "samples", "Samples", "required_for_method", job.Method)
	}
}

// Validate checks a file's jobs and rejects duplicate names
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}

	seen := make(map[string]bool, len(f.Jobs))
	for _, job := range f.Jobs {
		if seen[job.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, job.Name)
		}
		seen[job.Name] = true
	}
	return nil
}

// Request converts the job into an engine request. defaults fills in
// whichever of Abs and Rel the job leaves unset.
func (j Job) Request(defaults quadrature.Precision) (engine.Request, error) {
	method, err := engine.ParseMethod(j.Method)
	if err != nil {
		return engine.Request{}, err
	}

	req := engine.Request{
		Method:     method,
		Expression: j.Expression,
		Lower:      j.Lower,
		Upper:      j.Upper,
		Samples:    j.Samples,
		Seed:       j.Seed,
		Sampler:    engine.Sampler(j.Sampler),
		Options:    j.Stratified,
		Precision:  j.precision(defaults),
	}
	if j.A != nil {
		req.A = float64(*j.A)
	}
	if j.B != nil {
		req.B = float64(*j.B)
	}
	return req, nil
}

// precision resolves the job tolerances against defaults. It returns nil
// when the job sets neither.
func (j Job) precision(defaults quadrature.Precision) *quadrature.Precision {
	if j.Abs == nil && j.Rel == nil {
		return nil
	}
	p := defaults
	if j.Abs != nil {
		p.Abs = *j.Abs
	}
	if j.Rel != nil {
		p.Rel = *j.Rel
	}
	return &p
}
