package integration

import (
	"fmt"
	"math"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/integration/engine"
	"github.com/GriffinCanCode/AgentOS/integrator/internal/types"
)

// Success creates a successful result
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure creates a failed result
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// FailureWith creates a failed result that still carries data, such as a
// partial estimate
func FailureWith(message string, data map[string]interface{}) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg, Data: data}, nil
}

// GetNumber extracts float64 from params with validation
func GetNumber(params map[string]interface{}, key string) (float64, bool) {
	val, ok := params[key]
	if !ok {
		return 0, false
	}
	return toNumber(val)
}

func toNumber(val interface{}) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	default:
		return 0, false
	}
}

// GetString extracts string from params
func GetString(params map[string]interface{}, key string) (string, bool) {
	val, ok := params[key].(string)
	return val, ok
}

// GetLimit extracts an integration bound: a number, or a string such as
// "inf" or "-inf".
func GetLimit(params map[string]interface{}, key string) (float64, error) {
	val, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s parameter required", key)
	}
	return toLimit(val, key)
}

func toLimit(val interface{}, name string) (float64, error) {
	if s, ok := val.(string); ok {
		v, err := engine.ParseLimit(s)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		return v, nil
	}
	v, ok := toNumber(val)
	if !ok || math.IsNaN(v) {
		return 0, fmt.Errorf("%s must be a number or \"inf\"/\"-inf\"", name)
	}
	return v, nil
}

// GetLimits extracts an array of finite bounds
func GetLimits(params map[string]interface{}, key string) ([]float64, error) {
	arr, ok := params[key].([]interface{})
	if !ok {
		if floats, ok := params[key].([]float64); ok {
			return floats, nil
		}
		return nil, fmt.Errorf("%s must be an array of numbers", key)
	}

	limits := make([]float64, len(arr))
	for i, v := range arr {
		n, ok := toNumber(v)
		if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, fmt.Errorf("%s[%d] must be a finite number", key, i)
		}
		limits[i] = n
	}
	return limits, nil
}

// GetCount extracts a non-negative integral count. Missing keys yield 0.
func GetCount(params map[string]interface{}, key string) (int, error) {
	val, ok := params[key]
	if !ok {
		return 0, nil
	}
	n, ok := toNumber(val)
	if !ok || n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return int(n), nil
}

// GetSeed extracts a generator seed. JSON numbers are exact up to 2^53.
func GetSeed(params map[string]interface{}, key string) (uint64, error) {
	val, ok := params[key]
	if !ok {
		return 0, nil
	}
	n, ok := toNumber(val)
	if !ok || n < 0 || n != math.Trunc(n) || n > 1<<53 {
		return 0, fmt.Errorf("%s must be an integer in [0, 2^53]", key)
	}
	return uint64(n), nil
}
