package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/types"
	"github.com/GriffinCanCode/AgentOS/integrator/tests/helpers/testutil"
)

func newMockProvider(t *testing.T, id string) *testutil.MockServiceProvider {
	t.Helper()
	return testutil.NewMockServiceProvider(t, id, types.CategoryIntegration)
}

func TestRegister(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(newMockProvider(t, "test")))
	_, ok := r.Get("test")
	assert.True(t, ok)

	assert.Error(t, r.Register(newMockProvider(t, "")))
	assert.Error(t, r.Register(newMockProvider(t, "a.b")))

	r.Unregister("test")
	_, ok = r.Get("test")
	assert.False(t, ok)
}

func TestList(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newMockProvider(t, "zeta")))
	require.NoError(t, r.Register(newMockProvider(t, "alpha")))

	require.NoError(t, r.Register(testutil.NewMockServiceProvider(t, "sys", types.CategorySystem)))

	services := r.List(nil)
	require.Len(t, services, 3)
	assert.Equal(t, "alpha", services[0].ID)
	assert.Equal(t, "zeta", services[2].ID)

	cat := types.CategoryIntegration
	assert.Len(t, r.List(&cat), 2)

	assert.NotNil(t, NewRegistry().List(nil))
}

func TestDiscover(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newMockProvider(t, "integration")))

	results := r.Discover("run monte carlo integration", 5)
	require.Len(t, results, 1)
	assert.Equal(t, "integration", results[0].ID)

	assert.Empty(t, r.Discover("unrelated words", 5))
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	p := newMockProvider(t, "test")
	require.NoError(t, r.Register(p))

	ctx := context.Background()
	params := map[string]interface{}{"x": 1.0}
	want := &types.Result{Success: true, Data: map[string]interface{}{"result": "success"}}
	p.On("Execute", ctx, "test.test", params, (*types.Context)(nil)).Return(want, nil).Once()

	result, err := r.Execute(ctx, "test.test", params, nil)
	require.NoError(t, err)
	assert.Same(t, want, result)
	p.AssertExpectations(t)
}

func TestExecuteErrors(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	result, err := r.Execute(ctx, "noservice", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidToolID)
	assert.False(t, result.Success)

	result, err = r.Execute(ctx, ".quad", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidToolID)
	assert.False(t, result.Success)

	result, err = r.Execute(ctx, "missing.tool", nil, nil)
	assert.ErrorIs(t, err, ErrServiceNotFound)
	require.NotNil(t, result.Error)
	assert.Contains(t, *result.Error, "missing")
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newMockProvider(t, "test1")))
	require.NoError(t, r.Register(newMockProvider(t, "test2")))

	stats := r.Stats()
	assert.Equal(t, 2, stats["total_services"])
	assert.Equal(t, 2, stats["total_tools"])
	assert.Equal(t, map[string]int{"integration": 2}, stats["categories"])
}
