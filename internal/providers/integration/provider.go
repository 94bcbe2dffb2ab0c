package integration

import (
	"context"
	"fmt"
	"math"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/engine"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/montecarlo"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/quadrature"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/types"
)

// Provider exposes the integration engine as a service
type Provider struct {
	engine *engine.Engine
}

// NewProvider creates an integration provider
func NewProvider(e *engine.Engine) *Provider {
	return &Provider{engine: e}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "integration",
		Name:        "Integration Service",
		Description: "Numerical integration: adaptive quadrature, improper integrals, Clenshaw-Curtis, Monte Carlo",
		Category:    types.CategoryIntegration,
		Capabilities: []string{
			"adaptive_quadrature",
			"improper_integrals",
			"clenshaw_curtis",
			"monte_carlo",
			"quasi_monte_carlo",
			"stratified_sampling",
		},
		Tools: GetTools(),
	}
}

// Execute parses the tool parameters and runs the integration
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	service, name, ok := types.SplitToolID(toolID)
	if !ok || service != "integration" {
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
	method, err := engine.ParseMethod(name)
	if err != nil {
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}

	req, err := p.request(method, params)
	if err != nil {
		return Failure(err.Error())
	}

	out, err := p.engine.Run(ctx, req)
	data := outcomeData(out)
	if err != nil {
		return FailureWith(err.Error(), data)
	}
	if !isFinite(out.Value) || !isFinite(out.Error) {
		return FailureWith(fmt.Sprintf("integrand produced a non-finite estimate (value %v, error %v)", out.Value, out.Error), data)
	}
	return Success(data)
}

func (p *Provider) request(method engine.Method, params map[string]interface{}) (engine.Request, error) {
	req := engine.Request{Method: method}

	expression, ok := GetString(params, "expression")
	if !ok {
		return req, fmt.Errorf("expression parameter required")
	}
	req.Expression = expression

	var err error
	if method.Vector() {
		if req.Lower, err = GetLimits(params, "a"); err != nil {
			return req, err
		}
		if req.Upper, err = GetLimits(params, "b"); err != nil {
			return req, err
		}
		if req.Samples, err = GetCount(params, "samples"); err != nil {
			return req, err
		}
		if req.Samples == 0 {
			return req, fmt.Errorf("samples parameter required")
		}
		if req.Seed, err = GetSeed(params, "seed"); err != nil {
			return req, err
		}
		if s, ok := GetString(params, "sampler"); ok {
			req.Sampler = engine.Sampler(s)
		}
		if method == engine.MethodStratified {
			if req.Options, err = stratifiedOptions(params); err != nil {
				return req, err
			}
		}
		return req, nil
	}

	if req.A, err = GetLimit(params, "a"); err != nil {
		return req, err
	}
	if req.B, err = GetLimit(params, "b"); err != nil {
		return req, err
	}

	abs, hasAbs := GetNumber(params, "abs")
	rel, hasRel := GetNumber(params, "rel")
	if hasAbs || hasRel {
		limits := p.engine.Limits()
		precision := quadrature.Precision{Abs: limits.AbsTolerance, Rel: limits.RelTolerance}
		if hasAbs {
			precision.Abs = abs
		}
		if hasRel {
			precision.Rel = rel
		}
		req.Precision = &precision
	}
	return req, nil
}

func stratifiedOptions(params map[string]interface{}) (*montecarlo.StratifiedOptions, error) {
	var opts montecarlo.StratifiedOptions
	var err error

	if v, ok := GetNumber(params, "estimate_fraction"); ok {
		opts.EstimateFraction = v
	}
	if opts.MinCalls, err = GetCount(params, "min_calls"); err != nil {
		return nil, err
	}
	if opts.MinCallsPerBisection, err = GetCount(params, "min_calls_per_bisection"); err != nil {
		return nil, err
	}

	if opts == (montecarlo.StratifiedOptions{}) {
		return nil, nil
	}
	return &opts, nil
}

// outcomeData builds the result payload. Non-finite numbers have no JSON
// encoding and are reported as null.
func outcomeData(out engine.Outcome) map[string]interface{} {
	return map[string]interface{}{
		"method":      string(out.Method),
		"value":       finiteOrNil(out.Value),
		"error":       finiteOrNil(out.Error),
		"evaluations": out.Evaluations,
		"duration_ms": float64(out.Duration.Microseconds()) / 1000,
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteOrNil(v float64) interface{} {
	if !isFinite(v) {
		return nil
	}
	return v
}
