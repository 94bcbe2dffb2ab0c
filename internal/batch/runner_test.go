package batch

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/engine"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/shared/id"
)

func newRunner(t *testing.T, concurrency int) (*Runner, *monitoring.Metrics) {
	t.Helper()
	limits := config.DefaultIntegration()
	pool, err := engine.NewPool(limits)
	require.NoError(t, err)
	metrics := monitoring.NewMetrics()
	t.Cleanup(func() {
		pool.Close()
		metrics.Close()
	})
	return NewRunner(engine.New(pool, limits, logging.NewNop(), metrics), concurrency, logging.NewNop(), metrics), metrics
}

func suite() []Job {
	return []Job{
		{Name: "cubic", Method: "quad", Expression: "x*x*x", A: bound(0), B: bound(2), Expected: ptr(4), Tolerance: ptr(1e-9), Source: "suite.yaml"},
		{Name: "gaussian", Method: "improper", Expression: "exp(-x*x)", A: bound(math.Inf(-1)), B: bound(math.Inf(1)), Expected: ptr(math.Sqrt(math.Pi)), Tolerance: ptr(0.01), Source: "suite.yaml"},
		{Name: "inverse sqrt", Method: "clenshaw_curtis", Expression: "1/sqrt(x)", A: bound(0), B: bound(1), Source: "suite.yaml"},
		{Name: "plain", Method: "plain", Expression: "x[0]*x[1]", Lower: []float64{0, 0}, Upper: []float64{1, 1}, Samples: 4000, Seed: 1, Source: "suite.yaml"},
		{Name: "halton", Method: "low_discrepancy", Expression: "x[0]*x[1]", Lower: []float64{0, 0}, Upper: []float64{1, 1}, Samples: 4000, Seed: 1, Source: "suite.yaml"},
		{Name: "rss", Method: "stratified", Expression: "x[0]*x[1]", Lower: []float64{0, 0}, Upper: []float64{1, 1}, Samples: 4000, Seed: 1, Expected: ptr(0.25), Tolerance: ptr(0.05), Source: "suite.yaml"},
	}
}

func TestRunSuite(t *testing.T) {
	r, metrics := newRunner(t, 3)
	jobs := suite()

	reports, err := r.Run(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, reports, len(jobs))

	runID := reports[0].RunID
	assert.True(t, id.IsValidPrefixed(runID.String(), id.RunPrefix))

	for i, rep := range reports {
		assert.Equal(t, jobs[i].Name, rep.Name, "order preserved")
		assert.Equal(t, StatusOK, rep.Status, "%s: %s", rep.Name, rep.Failure)
		assert.Equal(t, runID, rep.RunID)
		assert.Equal(t, id.NewJobID("suite.yaml", jobs[i].Name), rep.ID)
		assert.Greater(t, rep.Evaluations, 0)
	}

	assert.InDelta(t, 2.0, reports[2].Value, 0.01)
	assert.InDelta(t, 0.25, reports[3].Value, 0.02)
	require.NotNil(t, reports[0].Deviation)
	assert.InDelta(t, 0, *reports[0].Deviation, 1e-9)
	assert.Nil(t, reports[2].Deviation)

	assert.Equal(t, float64(len(jobs)), testutil.ToFloat64(metrics.BatchJobs.WithLabelValues("ok")))
}

func TestRunDeterministicAcrossConcurrency(t *testing.T) {
	serial, _ := newRunner(t, 1)
	parallel, _ := newRunner(t, 4)

	a, err := serial.Run(context.Background(), suite())
	require.NoError(t, err)
	b, err := parallel.Run(context.Background(), suite())
	require.NoError(t, err)

	for i := range a {
		assert.Equal(t, a[i].Value, b[i].Value, a[i].Name)
		assert.Equal(t, a[i].Error, b[i].Error, a[i].Name)
		assert.Equal(t, a[i].Evaluations, b[i].Evaluations, a[i].Name)
		assert.Equal(t, a[i].ID, b[i].ID)
	}
	assert.NotEqual(t, a[0].RunID, b[0].RunID)
}

func TestRunFailuresAndMismatches(t *testing.T) {
	r, metrics := newRunner(t, 2)
	jobs := []Job{
		{Name: "syntax", Method: "quad", Expression: "x +", A: bound(0), B: bound(1)},
		{Name: "wrong", Method: "quad", Expression: "x", A: bound(0), B: bound(1), Expected: ptr(1), Tolerance: ptr(0.1)},
		{Name: "no tolerance", Method: "quad", Expression: "x", A: bound(0), B: bound(1), Expected: ptr(1)},
		{Name: "bad method", Method: "simpson", Expression: "x"},
	}

	reports, err := r.Run(context.Background(), jobs)
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, reports[0].Status)
	assert.NotEmpty(t, reports[0].Failure)

	assert.Equal(t, StatusMismatch, reports[1].Status)
	assert.Contains(t, reports[1].Failure, "exceeds tolerance")
	require.NotNil(t, reports[1].Deviation)
	assert.InDelta(t, -0.5, *reports[1].Deviation, 1e-9)

	assert.Equal(t, StatusOK, reports[2].Status)
	assert.Equal(t, StatusFailed, reports[3].Status)

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.BatchJobs.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.BatchJobs.WithLabelValues("ok")))
}

func TestRunCanceled(t *testing.T) {
	r, _ := newRunner(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, suite())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, 0, nil, nil)
	assert.Greater(t, r.concurrency, 0)
	assert.NotNil(t, r.logger)
}

func TestNewRunnerCapsConcurrencyAtPoolSize(t *testing.T) {
	limits := config.DefaultIntegration()
	limits.PoolSize = 2
	pool, err := engine.NewPool(limits)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	e := engine.New(pool, limits, logging.NewNop(), nil)

	assert.Equal(t, 2, NewRunner(e, 8, nil, nil).concurrency)
	assert.Equal(t, 1, NewRunner(e, 1, nil, nil).concurrency)
	assert.LessOrEqual(t, NewRunner(e, 0, nil, nil).concurrency, 2)

	jobs := make([]Job, 0, 8)
	for i := 0; i < 8; i++ {
		jobs = append(jobs, suite()[0])
		jobs[i].Name = fmt.Sprintf("job-%d", i)
	}
	reports, err := NewRunner(e, 8, nil, nil).Run(context.Background(), jobs)
	require.NoError(t, err)
	for _, rep := range reports {
		assert.True(t, rep.OK(), "%s: %s", rep.Name, rep.Failure)
	}
}
