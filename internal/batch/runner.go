package batch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/engine"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/quadrature"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/shared/id"
)

// Status of a finished job
type Status string

const (
	StatusOK       Status = "ok"
	StatusFailed   Status = "failed"
	StatusMismatch Status = "mismatch"
)

// ErrJobsFailed is returned by callers that treat any non-ok report as failure
var ErrJobsFailed = errors.New("one or more jobs did not succeed")

// Report is the result of one job
type Report struct {
	ID          id.JobID
	RunID       id.RunID
	Source      string
	Name        string
	Method      string
	Value       float64
	Error       float64
	Evaluations int
	Expected    *float64
	Deviation   *float64
	Duration    time.Duration
	Status      Status
	Failure     string
}

// OK reports whether the job succeeded and matched its expectation
func (r Report) OK() bool {
	return r.Status == StatusOK
}

// Runner executes jobs on an engine
type Runner struct {
	engine      *engine.Engine
	concurrency int
	logger      *logging.Logger
	metrics     *monitoring.Metrics
}

// NewRunner creates a runner. concurrency <= 0 uses GOMAXPROCS; logger and
// metrics may be nil. Concurrency never exceeds the engine's runtime pool,
// so no job waits on the pool behind a running one.
func NewRunner(e *engine.Engine, concurrency int, logger *logging.Logger, metrics *monitoring.Metrics) *Runner {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	if e != nil {
		if size := e.Limits().PoolSize; size > 0 {
			concurrency = min(concurrency, size)
		}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		engine:      e,
		concurrency: concurrency,
		logger:      logger.Component("batch"),
		metrics:     metrics,
	}
}

// Run executes jobs concurrently and returns one report per job in input
// order. Job failures are recorded in the reports; the returned error is
// non-nil only when ctx ends before every job ran.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Report, error) {
	runID := id.NewRunID()
	reports := make([]Report, len(jobs))

	r.logger.Info("batch started",
		zap.String("run_id", runID.String()),
		zap.Int("jobs", len(jobs)),
		zap.Int("concurrency", r.concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = r.runJob(gctx, runID, jobs[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return reports, fmt.Errorf("batch %s: %w", runID, err)
	}

	failed := 0
	for _, rep := range reports {
		if !rep.OK() {
			failed++
		}
	}
	r.logger.Info("batch finished",
		zap.String("run_id", runID.String()),
		zap.Int("jobs", len(jobs)),
		zap.Int("failed", failed),
	)
	return reports, nil
}

func (r *Runner) runJob(ctx context.Context, runID id.RunID, job Job) Report {
	rep := Report{
		ID:       id.NewJobID(job.Source, job.Name),
		RunID:    runID,
		Source:   job.Source,
		Name:     job.Name,
		Method:   job.Method,
		Expected: job.Expected,
	}

	r.logger.Debug("job started",
		zap.String("job_id", rep.ID.String()),
		zap.String("name", job.Name),
		zap.String("method", job.Method),
	)

	limits := r.engine.Limits()
	req, err := job.Request(quadrature.Precision{Abs: limits.AbsTolerance, Rel: limits.RelTolerance})
	if err == nil {
		var out engine.Outcome
		out, err = r.engine.Run(ctx, req)
		rep.Value, rep.Error, rep.Evaluations, rep.Duration = out.Value, out.Error, out.Evaluations, out.Duration
	}

	switch {
	case err != nil:
		rep.Status, rep.Failure = StatusFailed, err.Error()
	case job.Expected != nil:
		dev := rep.Value - *job.Expected
		rep.Deviation = &dev
		rep.Status = StatusOK
		if job.Tolerance != nil && !(math.Abs(dev) <= *job.Tolerance) {
			rep.Status = StatusMismatch
			rep.Failure = fmt.Sprintf("deviation %.3g exceeds tolerance %g", dev, *job.Tolerance)
		}
	default:
		rep.Status = StatusOK
	}

	if r.metrics != nil {
		r.metrics.RecordBatchJob(rep.OK())
	}

	r.logger.Info("job finished",
		zap.String("job_id", rep.ID.String()),
		zap.String("name", job.Name),
		zap.String("status", string(rep.Status)),
		zap.Float64("value", rep.Value),
		zap.Int("evaluations", rep.Evaluations),
		zap.Duration("duration", rep.Duration),
	)
	return rep
}
