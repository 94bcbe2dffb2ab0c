package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitToolID(t *testing.T) {
	tests := []struct {
		in      string
		service string
		tool    string
		ok      bool
	}{
		{"integration.quad", "integration", "quad", true},
		{"system.limits", "system", "limits", true},
		{"a.b.c", "a", "b.c", true},
		{"integration", "integration", "", false},
		{".quad", "", "quad", false},
		{"integration.", "integration", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			service, tool, ok := SplitToolID(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.service, service)
			assert.Equal(t, tt.tool, tool)
		})
	}
}
