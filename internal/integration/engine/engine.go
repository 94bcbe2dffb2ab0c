package engine

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/expr"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/montecarlo"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/quadrature"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/rng"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/shared/utils"
)

// Engine evaluates integration requests on pooled expression runtimes
type Engine struct {
	pool    *expr.Pool
	limits  config.IntegrationConfig
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// New creates an engine. metrics may be nil.
func New(pool *expr.Pool, limits config.IntegrationConfig, logger *logging.Logger, metrics *monitoring.Metrics) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{
		pool:    pool,
		limits:  limits,
		logger:  logger.Component("integration"),
		metrics: metrics,
	}
}

// NewPool creates the runtime pool sized and timed by limits
func NewPool(limits config.IntegrationConfig) (*expr.Pool, error) {
	cfg := expr.DefaultConfig()
	cfg.Timeout = limits.Timeout
	return expr.NewPool(cfg, limits.PoolSize)
}

// Limits returns the configured limits
func (e *Engine) Limits() config.IntegrationConfig {
	return e.limits
}

// Run compiles the request's expression and integrates it. The returned
// Outcome carries any partial estimate even when err is non-nil.
func (e *Engine) Run(ctx context.Context, req Request) (Outcome, error) {
	out := Outcome{Method: req.Method}
	start := time.Now()

	err := tracing.Trace(ctx, "integration."+string(req.Method), func(ctx context.Context, span *tracing.Span) error {
		span.SetTag("integration.method", string(req.Method))

		err := e.run(ctx, req, &out)

		span.SetTag("integration.evaluations", strconv.Itoa(out.Evaluations))
		return err
	})
	out.Duration = time.Since(start)

	if e.metrics != nil {
		e.metrics.RecordIntegration(string(req.Method), out.Evaluations, out.Duration, err)
	}

	fields := []zap.Field{
		zap.String("method", string(req.Method)),
		zap.Float64("value", out.Value),
		zap.Float64("error_estimate", out.Error),
		zap.Int("evaluations", out.Evaluations),
		zap.Duration("duration", out.Duration),
	}
	if err != nil {
		e.logger.Warn("integration failed", append(fields, zap.Error(err))...)
	} else {
		e.logger.Debug("integration finished", fields...)
	}

	return out, err
}

func (e *Engine) run(ctx context.Context, req Request, out *Outcome) error {
	if _, err := ParseMethod(string(req.Method)); err != nil {
		return err
	}
	if err := utils.ValidateExpression(req.Expression); err != nil {
		return err
	}
	if req.Method.Vector() && req.Samples > e.limits.MaxSamples {
		return fmt.Errorf("%w: %d samples > %d", ErrLimitExceeded, req.Samples, e.limits.MaxSamples)
	}

	prog, err := expr.Compile(req.Expression)
	if err != nil {
		return err
	}

	var sampler rng.Sampler
	if req.Method == MethodPlain || req.Method == MethodStratified {
		if sampler, err = newSampler(req.Sampler, req.Seed); err != nil {
			return err
		}
	}

	e.trackRuntimes()
	defer e.trackRuntimes()

	return e.pool.Run(ctx, prog, func(s *expr.Session) error {
		e.trackRuntimes()

		if req.Method.Vector() {
			c := montecarlo.Count(s.Vector)
			var est montecarlo.Estimate
			switch req.Method {
			case MethodPlain:
				est, err = montecarlo.Plain(c.Eval, req.Lower, req.Upper, req.Samples, sampler)
			case MethodLowDiscrepancy:
				est, err = montecarlo.LowDiscrepancy(c.Eval, req.Lower, req.Upper, req.Samples, req.Seed)
			case MethodStratified:
				est, err = montecarlo.Stratified(c.Eval, req.Lower, req.Upper, req.Samples, sampler, req.Options)
			}
			out.Value, out.Error, out.Evaluations = est.Value, est.Error, c.Calls()
			return err
		}

		q := e.integrator(req.Precision)
		var res quadrature.Result
		switch req.Method {
		case MethodQuad:
			res, err = q.Integrate(s.Scalar, req.A, req.B)
		case MethodImproper:
			res, err = q.Improper(s.Scalar, req.A, req.B)
		case MethodClenshawCurtis:
			res, err = q.ClenshawCurtis(s.Scalar, req.A, req.B)
		}
		out.Value, out.Error, out.Evaluations = res.Value, res.Error, res.Evaluations
		return err
	})
}

func (e *Engine) integrator(p *quadrature.Precision) *quadrature.Integrator {
	precision := quadrature.Precision{Abs: e.limits.AbsTolerance, Rel: e.limits.RelTolerance}
	if p != nil {
		precision = *p
	}
	q := quadrature.New(precision)
	q.MaxDepth = e.limits.MaxDepth
	q.MaxEvaluations = e.limits.MaxEvaluations
	return q
}

func (e *Engine) trackRuntimes() {
	if e.metrics == nil {
		return
	}
	if inUse, ok := e.pool.Stats()["in_use"].(int); ok {
		e.metrics.SetRuntimesInUse(inUse)
	}
}

func newSampler(name Sampler, seed uint64) (rng.Sampler, error) {
	switch name {
	case "", SamplerWyrand:
		return rng.New(seed), nil
	case SamplerMT19937:
		return rng.NewMT19937(seed), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSampler, name)
}
