package integration

import (
	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/engine"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/types"
)

var (
	expressionParam = types.Parameter{Name: "expression", Type: "string", Description: "Integrand as a JavaScript expression of x (Math functions available as globals)", Required: true}
	absParam        = types.Parameter{Name: "abs", Type: "number", Description: "Absolute tolerance", Required: false}
	relParam        = types.Parameter{Name: "rel", Type: "number", Description: "Relative tolerance", Required: false}
	samplesParam    = types.Parameter{Name: "samples", Type: "number", Description: "Number of integrand evaluations", Required: true}
	seedParam       = types.Parameter{Name: "seed", Type: "number", Description: "Generator seed", Required: false}
	samplerParam    = types.Parameter{Name: "sampler", Type: "string", Description: "Uniform generator, wyrand by default", Enum: []string{string(engine.SamplerWyrand), string(engine.SamplerMT19937)}}
	lowerParam      = types.Parameter{Name: "a", Type: "array", Description: "Lower corner of the box", Required: true}
	upperParam      = types.Parameter{Name: "b", Type: "array", Description: "Upper corner of the box", Required: true}
)

func scalarParams(limitType string) []types.Parameter {
	return []types.Parameter{
		expressionParam,
		{Name: "a", Type: limitType, Description: "Lower limit", Required: true},
		{Name: "b", Type: limitType, Description: "Upper limit", Required: true},
		absParam,
		relParam,
	}
}

func toolID(m engine.Method) string {
	return "integration." + string(m)
}

// GetTools returns integration tool definitions
func GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          toolID(engine.MethodQuad),
			Name:        "Adaptive Quadrature",
			Description: "Integrate over a finite interval with adaptive open four-point quadrature",
			Parameters:  scalarParams("number"),
			Returns:     "object",
		},
		{
			ID:          toolID(engine.MethodImproper),
			Name:        "Improper Integral",
			Description: "Integrate over an interval with infinite limits via variable transformation",
			Parameters:  scalarParams("number|string"),
			Returns:     "object",
		},
		{
			ID:          toolID(engine.MethodClenshawCurtis),
			Name:        "Clenshaw-Curtis Quadrature",
			Description: "Adaptive quadrature after a cosine substitution, suited to endpoint singularities",
			Parameters:  scalarParams("number"),
			Returns:     "object",
		},
		{
			ID:          toolID(engine.MethodPlain),
			Name:        "Plain Monte Carlo",
			Description: "Integrate over a box with uniform random sampling",
			Parameters:  []types.Parameter{expressionParam, lowerParam, upperParam, samplesParam, seedParam, samplerParam},
			Returns:     "object",
		},
		{
			ID:          toolID(engine.MethodLowDiscrepancy),
			Name:        "Low-Discrepancy Monte Carlo",
			Description: "Integrate over a box with two Halton sequences, error from their disagreement",
			Parameters:  []types.Parameter{expressionParam, lowerParam, upperParam, samplesParam, seedParam},
			Returns:     "object",
		},
		{
			ID:          toolID(engine.MethodStratified),
			Name:        "Recursive Stratified Sampling",
			Description: "Integrate over a box with recursive stratified sampling",
			Parameters: []types.Parameter{
				expressionParam, lowerParam, upperParam, samplesParam, seedParam, samplerParam,
				{Name: "estimate_fraction", Type: "number", Description: "Share of each box's budget used to pick the bisection axis", Required: false},
				{Name: "min_calls", Type: "number", Description: "Minimum samples per estimation pass and per half", Required: false},
				{Name: "min_calls_per_bisection", Type: "number", Description: "Budget at or below which a box is sampled plainly", Required: false},
			},
			Returns: "object",
		},
	}
}
