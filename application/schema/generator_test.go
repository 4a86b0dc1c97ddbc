package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForConfig(t *testing.T) {
	out, err := ForConfig()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, "object", decoded["type"])

	props, ok := decoded["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, props, "licenses")
	assert.Contains(t, props, "bans")
	assert.Contains(t, props, "sources")

	// Nested sections resolve through $defs; the kebab-case source keys must
	// survive reflection.
	encoded := string(out)
	assert.Contains(t, encoded, "unknown-registry")
	assert.Contains(t, encoded, "allow-org")
	assert.Contains(t, encoded, "clarify")
}
