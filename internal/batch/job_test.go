package batch

import (
	"math"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/engine"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/quadrature"
)

func bound(v float64) *Bound {
	b := Bound(v)
	return &b
}

func TestBoundJSON(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{`1.5`, 1.5},
		{`-2`, -2},
		{`"inf"`, math.Inf(1)},
		{`"-inf"`, math.Inf(-1)},
		{`"+Infinity"`, math.Inf(1)},
		{`"0.25"`, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var b Bound
			require.NoError(t, sonic.Unmarshal([]byte(tt.in), &b))
			assert.Equal(t, tt.want, float64(b))
		})
	}

	var b Bound
	assert.Error(t, sonic.Unmarshal([]byte(`"up"`), &b))

	data, err := sonic.Marshal([]Bound{1.5, Bound(math.Inf(-1))})
	require.NoError(t, err)
	assert.JSONEq(t, `[1.5, "-inf"]`, string(data))
}

func TestFileValidate(t *testing.T) {
	valid1D := Job{Name: "a", Method: "quad", Expression: "x", A: bound(0), B: bound(1)}
	validMC := Job{Name: "b", Method: "plain", Expression: "1", Lower: []float64{0}, Upper: []float64{1}, Samples: 10}

	require.NoError(t, (&File{Jobs: []Job{valid1D, validMC}}).Validate())

	tests := []struct {
		name string
		file File
	}{
		{"no jobs", File{}},
		{"negative concurrency", File{Concurrency: -1, Jobs: []Job{valid1D}}},
		{"missing name", File{Jobs: []Job{{Method: "quad", Expression: "x", A: bound(0), B: bound(1)}}}},
		{"unknown method", File{Jobs: []Job{{Name: "a", Method: "simpson", Expression: "x", A: bound(0), B: bound(1)}}}},
		{"missing expression", File{Jobs: []Job{{Name: "a", Method: "quad", A: bound(0), B: bound(1)}}}},
		{"missing bound", File{Jobs: []Job{{Name: "a", Method: "quad", Expression: "x", A: bound(0)}}}},
		{"missing box", File{Jobs: []Job{{Name: "a", Method: "plain", Expression: "1", Samples: 10}}}},
		{"box mismatch", File{Jobs: []Job{{Name: "a", Method: "plain", Expression: "1", Lower: []float64{0, 0}, Upper: []float64{1}, Samples: 10}}}},
		{"missing samples", File{Jobs: []Job{{Name: "a", Method: "stratified", Expression: "1", Lower: []float64{0}, Upper: []float64{1}}}}},
		{"bad sampler", File{Jobs: []Job{{Name: "a", Method: "plain", Expression: "1", Lower: []float64{0}, Upper: []float64{1}, Samples: 10, Sampler: "dice"}}}},
		{"negative abs", File{Jobs: []Job{{Name: "a", Method: "quad", Expression: "x", A: bound(0), B: bound(1), Abs: ptr(-1)}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.file.Validate(), ErrInvalidJob)
		})
	}

	dup := File{Jobs: []Job{valid1D, valid1D}}
	assert.ErrorIs(t, dup.Validate(), ErrDuplicateName)
}

func TestJobRequest(t *testing.T) {
	defaults := quadrature.Precision{Abs: 0.01, Rel: 0.01}

	job := Job{Name: "g", Method: "improper", Expression: "exp(-x*x)", A: bound(math.Inf(-1)), B: bound(math.Inf(1)), Rel: ptr(1e-6)}
	req, err := job.Request(defaults)
	require.NoError(t, err)
	assert.Equal(t, engine.MethodImproper, req.Method)
	assert.True(t, math.IsInf(req.A, -1))
	assert.True(t, math.IsInf(req.B, 1))
	require.NotNil(t, req.Precision)
	assert.Equal(t, quadrature.Precision{Abs: 0.01, Rel: 1e-6}, *req.Precision)

	job = Job{Name: "p", Method: "plain", Expression: "1", Lower: []float64{0}, Upper: []float64{2}, Samples: 5, Seed: 9, Sampler: "mt19937"}
	req, err = job.Request(defaults)
	require.NoError(t, err)
	assert.Nil(t, req.Precision)
	assert.Equal(t, engine.SamplerMT19937, req.Sampler)
	assert.Equal(t, uint64(9), req.Seed)
	assert.Equal(t, []float64{2}, req.Upper)

	_, err = Job{Method: "simpson"}.Request(defaults)
	assert.ErrorIs(t, err, engine.ErrUnknownMethod)
}

func ptr(v float64) *float64 {
	return &v
}
