package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateToolID(t *testing.T) {
	tests := []struct {
		id       string
		required bool
		wantErr  bool
	}{
		{"integration.quad", true, false},
		{"integration.low_discrepancy", true, false},
		{"", false, false},
		{"", true, true},
		{"integration quad", true, true},
		{"integration/quad", true, true},
		{strings.Repeat("a", MaxIDLength+1), true, true},
	}

	for _, tt := range tests {
		err := ValidateToolID(tt.id, "tool_id", tt.required)
		if tt.wantErr {
			assert.Error(t, err, "id %q", tt.id)
		} else {
			assert.NoError(t, err, "id %q", tt.id)
		}
	}
}

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, ValidateCategory("integration", true))
	assert.NoError(t, ValidateCategory("", false))
	assert.Error(t, ValidateCategory("", true))
	assert.Error(t, ValidateCategory("Integration", false))
}

func TestValidateQuery(t *testing.T) {
	assert.NoError(t, ValidateQuery("integrate a function"))
	assert.Error(t, ValidateQuery(""))
	assert.Error(t, ValidateQuery("   "))
	assert.Error(t, ValidateQuery(strings.Repeat("q", MaxQueryLength+1)))
}

func TestValidateExpression(t *testing.T) {
	assert.NoError(t, ValidateExpression("exp(-x*x)"))
	assert.Error(t, ValidateExpression(""))
	assert.Error(t, ValidateExpression("x\x00"))
	assert.Error(t, ValidateExpression(strings.Repeat("x+", MaxExpressionLength)))
}
