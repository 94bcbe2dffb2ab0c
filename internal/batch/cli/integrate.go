package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/batch"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/engine"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/montecarlo"
)

// QuadOptions holds flags for the quad command.
type QuadOptions struct {
	*RootOptions
	Method   string
	A, B     string
	Abs, Rel float64
	Expected string
}

// NewQuadCommand creates the quad command.
func NewQuadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QuadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "quad <expression>",
		Short: "Integrate a function of one variable",
		Long: `Integrate an expression of x over [a, b] with adaptive quadrature.

Methods: quad (finite bounds), improper (either bound may be inf/-inf),
clenshaw_curtis (finite bounds, suited to endpoint singularities).

Example:
  integrate quad 'sqrt(x)' --a 0 --b 1
  integrate quad 'exp(-x*x)' --method improper --a -inf --b inf --rel 1e-8`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := opts.job(args[0], cmd)
			if err != nil {
				return commandError(err)
			}
			return runSingle(cmd, opts.RootOptions, job)
		},
	}

	cmd.Flags().StringVarP(&opts.Method, "method", "m", string(engine.MethodQuad), "quad|improper|clenshaw_curtis")
	cmd.Flags().StringVar(&opts.A, "a", "", "lower limit (number, inf or -inf)")
	cmd.Flags().StringVar(&opts.B, "b", "", "upper limit (number, inf or -inf)")
	cmd.Flags().Float64Var(&opts.Abs, "abs", 0, "absolute tolerance (default: configured)")
	cmd.Flags().Float64Var(&opts.Rel, "rel", 0, "relative tolerance (default: configured)")
	cmd.Flags().StringVar(&opts.Expected, "expected", "", "expected value, reported as a deviation")

	return cmd
}

func (o *QuadOptions) job(expression string, cmd *cobra.Command) (batch.Job, error) {
	method, err := engine.ParseMethod(o.Method)
	if err != nil {
		return batch.Job{}, err
	}
	if method.Vector() {
		return batch.Job{}, fmt.Errorf("%s integrates over a box; use the mc command", method)
	}

	job := batch.Job{Name: jobName(expression), Method: string(method), Expression: expression}

	if o.A == "" || o.B == "" {
		return job, fmt.Errorf("--a and --b are required")
	}
	a, err := engine.ParseLimit(o.A)
	if err != nil {
		return job, fmt.Errorf("--a: %w", err)
	}
	b, err := engine.ParseLimit(o.B)
	if err != nil {
		return job, fmt.Errorf("--b: %w", err)
	}
	ba, bb := batch.Bound(a), batch.Bound(b)
	job.A, job.B = &ba, &bb

	if cmd.Flags().Changed("abs") {
		job.Abs = &o.Abs
	}
	if cmd.Flags().Changed("rel") {
		job.Rel = &o.Rel
	}
	if job.Expected, err = parseExpected(o.Expected); err != nil {
		return job, err
	}
	return job, nil
}

// MCOptions holds flags for the mc command.
type MCOptions struct {
	*RootOptions
	Method   string
	Lower    []float64
	Upper    []float64
	Samples  int
	Seed     uint64
	Sampler  string
	Expected string

	EstimateFraction     float64
	MinCalls             int
	MinCallsPerBisection int
}

// NewMCCommand creates the mc command.
func NewMCCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MCOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "mc <expression>",
		Short: "Integrate over a box with Monte Carlo",
		Long: `Integrate an expression of the vector x (x[0], x[1], ...) over the box
[lower, upper] with Monte Carlo sampling.

Methods: plain, low_discrepancy (two Halton sequences), stratified
(recursive stratified sampling).

Example:
  integrate mc 'x[0]*x[0] + x[1]*x[1] <= 1 ? 1 : 0' --lower -1,-1 --upper 1,1 -n 100000
  integrate mc 'exp(x[0]+x[1])' --method low_discrepancy --lower 0,0 --upper 1,1`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := opts.job(args[0])
			if err != nil {
				return commandError(err)
			}
			return runSingle(cmd, opts.RootOptions, job)
		},
	}

	cmd.Flags().StringVarP(&opts.Method, "method", "m", string(engine.MethodPlain), "plain|low_discrepancy|stratified")
	cmd.Flags().Float64SliceVar(&opts.Lower, "lower", nil, "lower corner of the box, comma separated")
	cmd.Flags().Float64SliceVar(&opts.Upper, "upper", nil, "upper corner of the box, comma separated")
	cmd.Flags().IntVarP(&opts.Samples, "samples", "n", 10000, "number of integrand evaluations")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "generator seed")
	cmd.Flags().StringVar(&opts.Sampler, "sampler", "", "uniform generator: wyrand (default) or mt19937")
	cmd.Flags().StringVar(&opts.Expected, "expected", "", "expected value, reported as a deviation")
	cmd.Flags().Float64Var(&opts.EstimateFraction, "estimate-fraction", 0, "stratified: share of a box's budget used to choose the axis")
	cmd.Flags().IntVar(&opts.MinCalls, "min-calls", 0, "stratified: minimum samples per estimate and per half")
	cmd.Flags().IntVar(&opts.MinCallsPerBisection, "min-calls-per-bisection", 0, "stratified: budget at or below which a box is sampled plainly")

	return cmd
}

func (o *MCOptions) job(expression string) (batch.Job, error) {
	method, err := engine.ParseMethod(o.Method)
	if err != nil {
		return batch.Job{}, err
	}
	if !method.Vector() {
		return batch.Job{}, fmt.Errorf("%s integrates over an interval; use the quad command", method)
	}

	if len(o.Lower) == 0 || len(o.Upper) == 0 {
		return batch.Job{}, fmt.Errorf("--lower and --upper are required")
	}

	job := batch.Job{
		Name:       jobName(expression),
		Method:     string(method),
		Expression: expression,
		Lower:      o.Lower,
		Upper:      o.Upper,
		Samples:    o.Samples,
		Seed:       o.Seed,
		Sampler:    o.Sampler,
	}

	opts := montecarlo.StratifiedOptions{
		EstimateFraction:     o.EstimateFraction,
		MinCalls:             o.MinCalls,
		MinCallsPerBisection: o.MinCallsPerBisection,
	}
	if opts != (montecarlo.StratifiedOptions{}) {
		if method != engine.MethodStratified {
			return job, fmt.Errorf("stratification flags apply only to the stratified method")
		}
		job.Stratified = &opts
	}

	if job.Expected, err = parseExpected(o.Expected); err != nil {
		return job, err
	}
	return job, nil
}

// jobName labels a command-line job with its expression, shortened to fit
// the job name limit
func jobName(expression string) string {
	const maxLen = 64
	r := []rune(strings.TrimSpace(expression))
	if len(r) <= maxLen {
		return string(r)
	}
	return string(r[:maxLen-3]) + "..."
}

func parseExpected(s string) (*float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return nil, fmt.Errorf("--expected: invalid number %q", s)
	}
	return &v, nil
}

func runSingle(cmd *cobra.Command, opts *RootOptions, job batch.Job) error {
	file := batch.File{Jobs: []batch.Job{job}}
	if err := file.Validate(); err != nil {
		return commandError(err)
	}

	e, err := newEnv(opts)
	if err != nil {
		return err
	}
	defer e.close()

	reports, err := batch.NewRunner(e.engine, 1, e.logger, nil).Run(cmd.Context(), file.Jobs)
	if err != nil {
		return err
	}
	return finish(cmd, opts.Format, reports)
}
