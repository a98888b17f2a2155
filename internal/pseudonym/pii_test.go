package pseudonym

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPII(t *testing.T) {
	tests := []struct {
		name   string
		record map[string]any
		want   bool
	}{
		{"nil record", nil, false},
		{"empty record", map[string]any{}, false},
		{"skills only", map[string]any{"skills": []any{"JavaScript"}, "experience": "5 years"}, false},
		{"name", map[string]any{"name": "X"}, true},
		{"name and email", map[string]any{"name": "John Doe", "email": "john@example.com"}, true},
		{"empty name", map[string]any{"name": ""}, false},
		{"phone zero", map[string]any{"phone": float64(0)}, false},
		{"phone number", map[string]any{"phone": float64(4921117607313)}, true},
		{"address object", map[string]any{"address": map[string]any{}}, true},
		{"email false", map[string]any{"email": false}, false},
		{"null address", map[string]any{"address": nil}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsPII(tt.record))
		})
	}
}
