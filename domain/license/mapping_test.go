package license

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable_LoadsEmbeddedData(t *testing.T) {
	table := DefaultTable()
	require.NotZero(t, table.Len(), "embedded mapping data should load")

	id, ok := table.Lookup("mit license")
	require.True(t, ok)
	assert.Equal(t, "MIT", id)

	id, ok = table.Lookup("gnu lesser general public license v2.1")
	require.True(t, ok)
	assert.Equal(t, "LGPL-2.1", id)
}

func TestNewMappingTable_CleansKeys(t *testing.T) {
	table := NewMappingTable(map[string]string{
		"  MIT   License ": "MIT",
		"":                 "Dropped",
		"empty value":      "",
	})

	assert.Equal(t, 1, table.Len())
	id, ok := table.Lookup("mit license")
	require.True(t, ok)
	assert.Equal(t, "MIT", id)
}

func TestMultiWordKeys_SortedLongestFirst(t *testing.T) {
	table := NewMappingTable(map[string]string{
		"mit":                "MIT",
		"mit license":        "MIT",
		"the mit license":    "MIT",
		"apache license 2.0": "Apache-2.0",
	})

	keys := table.MultiWordKeys()
	require.Len(t, keys, 3, "single-word keys are excluded")
	for i := 1; i < len(keys); i++ {
		assert.GreaterOrEqual(t, len(keys[i-1]), len(keys[i]),
			"keys must be ordered longest first for greedy matching")
	}
}
