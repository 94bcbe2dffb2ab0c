package expr

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/montecarlo"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/quadrature"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/rng"
)

func TestPoolRunQuadrature(t *testing.T) {
	pool, err := NewPool(DefaultConfig(), 2)
	require.NoError(t, err)
	defer pool.Close()

	p, err := Compile("1/sqrt(x)")
	require.NoError(t, err)

	var res quadrature.Result
	err = pool.Run(context.Background(), p, func(s *Session) error {
		var err error
		res, err = quadrature.Integrate(s.Scalar, 0, 1)
		return err
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, res.Value, 0.01)
}

func TestPoolRunMonteCarlo(t *testing.T) {
	pool, err := NewPool(DefaultConfig(), 1)
	require.NoError(t, err)
	defer pool.Close()

	p, err := Compile("x[0] + x[1]")
	require.NoError(t, err)

	var est montecarlo.Estimate
	err = pool.Run(context.Background(), p, func(s *Session) error {
		var err error
		est, err = montecarlo.Stratified(s.Vector, []float64{0, 0}, []float64{1, 1}, 5000, rng.New(1), nil)
		return err
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, est.Value, 0.05)
}

func TestPoolRunPrefersExpressionError(t *testing.T) {
	pool, err := NewPool(DefaultConfig(), 1)
	require.NoError(t, err)
	defer pool.Close()

	p, err := Compile("x < 0.5 ? x : missing")
	require.NoError(t, err)

	err = pool.Run(context.Background(), p, func(s *Session) error {
		_, err := quadrature.Integrate(s.Scalar, 0, 1)
		return err
	})
	assert.ErrorIs(t, err, ErrRuntime)
	assert.NotErrorIs(t, err, quadrature.ErrNonFinite)
}

func TestPoolConcurrent(t *testing.T) {
	pool, err := NewPool(DefaultConfig(), 3)
	require.NoError(t, err)
	defer pool.Close()

	p, err := Compile("x*x")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]float64, 12)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := pool.Run(context.Background(), p, func(s *Session) error {
				res, err := quadrature.Integrate(s.Scalar, 0, 3)
				results[i] = res.Value
				return err
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	for _, v := range results {
		assert.InDelta(t, 9.0, v, 1e-9)
	}
	assert.Equal(t, 3, pool.Stats()["available"])
}

func TestPoolClosed(t *testing.T) {
	pool, err := NewPool(DefaultConfig(), 1)
	require.NoError(t, err)
	require.NoError(t, pool.Close())
	require.NoError(t, pool.Close())

	_, err = pool.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrPoolClosed)
	assert.Equal(t, true, pool.Stats()["closed"])
}

func TestPoolAcquireContext(t *testing.T) {
	pool, err := NewPool(DefaultConfig(), 1)
	require.NoError(t, err)
	defer pool.Close()

	rt, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	defer pool.Release(rt)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = pool.Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
