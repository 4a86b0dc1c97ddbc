package license

import (
	_ "embed"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed data/license_mappings.toml
var embeddedMappings []byte

// MappingTable maps lowercased license phrases to canonical identifiers.
// A table is immutable after construction and safe to share; it is passed
// explicitly into the Normalizer and Tokenizer rather than held as global
// state.
type MappingTable struct {
	entries   map[string]string
	multiWord []string
}

// NewMappingTable builds a table from the given phrase-to-id map. Keys are
// lowercased and whitespace-collapsed; nil or empty values are dropped.
func NewMappingTable(entries map[string]string) MappingTable {
	cleaned := make(map[string]string, len(entries))
	for k, v := range entries {
		key := collapseWhitespace(strings.ToLower(strings.TrimSpace(k)))
		val := strings.TrimSpace(v)
		if key == "" || val == "" {
			continue
		}
		cleaned[key] = val
	}
	var multi []string
	for k := range cleaned {
		if strings.Contains(k, " ") {
			multi = append(multi, k)
		}
	}
	// Longest first, so the tokenizer's greedy prefix match prefers the most
	// specific phrase. Ties break lexicographically for determinism.
	sort.Slice(multi, func(i, j int) bool {
		if len(multi[i]) != len(multi[j]) {
			return len(multi[i]) > len(multi[j])
		}
		return multi[i] < multi[j]
	})
	return MappingTable{entries: cleaned, multiWord: multi}
}

// DefaultTable loads the embedded mapping data. A corrupt data file degrades
// to an empty table (heuristic-only normalization), never an error.
func DefaultTable() MappingTable {
	var data struct {
		Licenses map[string]string `toml:"licenses"`
	}
	if err := toml.Unmarshal(embeddedMappings, &data); err != nil {
		return NewMappingTable(nil)
	}
	return NewMappingTable(data.Licenses)
}

// Lookup returns the canonical id for a lowercased, whitespace-collapsed
// phrase.
func (t MappingTable) Lookup(phrase string) (string, bool) {
	id, ok := t.entries[phrase]
	return id, ok
}

// MultiWordKeys returns the phrases containing spaces, longest first. The
// tokenizer uses these for greedy multi-word atom matching.
func (t MappingTable) MultiWordKeys() []string {
	return t.multiWord
}

// Len returns the number of known phrases.
func (t MappingTable) Len() int {
	return len(t.entries)
}
