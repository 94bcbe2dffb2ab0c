// Package testutil provides shared mocks and assertions for integrator tests.
package testutil

import (
	"context"
	"math"
	"testing"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockServiceProvider is a mock implementation of service.Provider for testing.
type MockServiceProvider struct {
	mock.Mock
}

// Definition mocks the Definition method.
func (m *MockServiceProvider) Definition() types.Service {
	args := m.Called()
	return args.Get(0).(types.Service)
}

// Execute mocks the Execute method.
func (m *MockServiceProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	args := m.Called(ctx, toolID, params, appCtx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Result), args.Error(1)
}

// NewMockServiceProvider creates a mock provider whose definition is
// CreateTestService(id, category).
func NewMockServiceProvider(t *testing.T, id string, category types.Category) *MockServiceProvider {
	t.Helper()
	m := new(MockServiceProvider)
	m.On("Definition").Return(CreateTestService(t, id, category)).Maybe()
	return m
}

// CreateTestService creates a service definition with a single "<id>.test" tool.
func CreateTestService(t *testing.T, id string, category types.Category) types.Service {
	t.Helper()

	return types.Service{
		ID:           id,
		Name:         "Test Service",
		Description:  "Numerical quadrature test service",
		Category:     category,
		Capabilities: []string{"adaptive_quadrature", "monte_carlo"},
		Tools: []types.Tool{
			{
				ID:          id + ".test",
				Name:        "test",
				Description: "Test tool",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// AssertSuccess is a helper to assert a successful result.
func AssertSuccess(t *testing.T, result *types.Result) {
	t.Helper()
	if result == nil {
		t.Fatal("Result is nil")
	}
	if !result.Success {
		t.Fatalf("Expected success, got error: %v", derefError(result))
	}
}

// AssertFailure asserts a failed result carrying an error message.
func AssertFailure(t *testing.T, result *types.Result) {
	t.Helper()
	if result == nil {
		t.Fatal("Result is nil")
	}
	if result.Success {
		t.Fatal("Expected failure, got success")
	}
	if result.Error == nil {
		t.Fatal("Expected error message, got nil")
	}
}

// AssertValueWithin asserts a successful integration result whose "value"
// lies within tol of want. Infinite wants must match exactly.
func AssertValueWithin(t *testing.T, result *types.Result, want, tol float64) {
	t.Helper()
	AssertSuccess(t, result)

	raw, ok := result.Data["value"]
	if !ok {
		t.Fatal("Field value not found in result data")
	}
	got, ok := raw.(float64)
	if !ok {
		t.Fatalf("Field value: expected float64, got %T", raw)
	}
	if math.IsInf(want, 0) {
		if got != want {
			t.Fatalf("value: expected %v, got %v", want, got)
		}
		return
	}
	if math.Abs(got-want) > tol {
		t.Fatalf("value: expected %v within %g, got %v", want, tol, got)
	}
}

func derefError(result *types.Result) string {
	if result.Error == nil {
		return "<nil>"
	}
	return *result.Error
}
