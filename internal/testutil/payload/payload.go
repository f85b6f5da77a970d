//go:build unit || e2e

package payload

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Map renders v as its JSON object form and applies muts, so a test can drop
// or corrupt individual fields of an otherwise valid request body.
func Map(t *testing.T, v any, muts ...func(map[string]any)) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, f := range muts {
		f(m)
	}
	return m
}

// Field sets key to value, or deletes it when value is nil.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}
