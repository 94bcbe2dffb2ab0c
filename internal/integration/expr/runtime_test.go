package expr

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRuntime(t *testing.T, config Config) *Runtime {
	t.Helper()
	rt, err := New(config)
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close() })
	return rt
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr bool
	}{
		{name: "polynomial", source: "3*x*x + 2*x + 1"},
		{name: "math globals", source: "sin(x) * exp(-x)"},
		{name: "vector", source: "x[0] * x[1]"},
		{name: "ternary", source: "x[0]*x[0] + x[1]*x[1] <= 1 ? 1 : 0"},
		{name: "empty", source: "   ", wantErr: true},
		{name: "syntax error", source: "x +* 2", wantErr: true},
		{name: "unbalanced", source: "(x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.source)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCompile)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.source, p.Source())
		})
	}
}

func TestEvalScalar(t *testing.T) {
	rt := newRuntime(t, DefaultConfig())
	ctx := context.Background()

	tests := []struct {
		source string
		x      float64
		want   float64
	}{
		{"x*x", 3, 9},
		{"sqrt(x)", 16, 4},
		{"Math.sqrt(x)", 16, 4},
		{"ln(x)", math.E, 1},
		{"sin(PI/2)", 0, 1},
		{"exp(-x*x)", 0, 1},
		{"pow(x, 4) * exp(-x)", 1, math.Exp(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			p, err := Compile(tt.source)
			require.NoError(t, err)

			got, err := rt.Eval(ctx, p, tt.x)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestSessionVector(t *testing.T) {
	rt := newRuntime(t, DefaultConfig())
	p, err := Compile("x.length * (x[0] + 2*x[1])")
	require.NoError(t, err)

	s, err := rt.Bind(context.Background(), p)
	require.NoError(t, err)
	defer s.Close()

	x := []float64{1, 2}
	assert.Equal(t, 10.0, s.Vector(x))

	x[0], x[1] = 3, -1
	assert.Equal(t, 2.0, s.Vector(x))
	assert.NoError(t, s.Err())
	assert.EqualValues(t, 2, s.Calls())
}

func TestSessionRuntimeError(t *testing.T) {
	rt := newRuntime(t, DefaultConfig())
	p, err := Compile("undefinedName * x")
	require.NoError(t, err)

	s, err := rt.Bind(context.Background(), p)
	require.NoError(t, err)
	defer s.Close()

	assert.True(t, math.IsNaN(s.Scalar(1)))
	assert.ErrorIs(t, s.Err(), ErrRuntime)

	// later calls short-circuit
	assert.True(t, math.IsNaN(s.Scalar(2)))
	assert.EqualValues(t, 1, s.Calls())
}

func TestSessionSandbox(t *testing.T) {
	rt := newRuntime(t, DefaultConfig())

	for _, source := range []string{"require('fs')", "process.exit(1)"} {
		p, err := Compile(source)
		require.NoError(t, err)

		_, err = rt.Eval(context.Background(), p, 0)
		assert.ErrorIs(t, err, ErrRuntime, source)
	}
}

func TestSessionTimeout(t *testing.T) {
	config := DefaultConfig()
	config.Timeout = 50 * time.Millisecond
	rt := newRuntime(t, config)

	p, err := Compile("(function () { while (true) {} })()")
	require.NoError(t, err)

	start := time.Now()
	_, err = rt.Eval(context.Background(), p, 0)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)

	// the interrupt does not leak into the next session
	ok, err := Compile("x + 1")
	require.NoError(t, err)
	got, err := rt.Eval(context.Background(), ok, 1)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)
}

func TestSessionContextCancel(t *testing.T) {
	rt := newRuntime(t, DefaultConfig())
	p, err := Compile("(function () { while (true) {} })()")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = rt.Eval(ctx, p, 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRuntimeReset(t *testing.T) {
	rt := newRuntime(t, DefaultConfig())
	ctx := context.Background()

	clobber, err := Compile("(sin = function () { return 42 }, 0)")
	require.NoError(t, err)
	_, err = rt.Eval(ctx, clobber, 0)
	require.NoError(t, err)

	p, err := Compile("sin(x)")
	require.NoError(t, err)
	got, err := rt.Eval(ctx, p, 0)
	require.NoError(t, err)
	assert.Equal(t, 42.0, got)

	require.NoError(t, rt.Reset())
	got, err = rt.Eval(ctx, p, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}
