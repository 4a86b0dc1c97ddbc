package license

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// UnknownLicense is the sentinel used by package metadata extraction when no
// license could be determined. It is never normalized and never compliant.
const UnknownLicense = "Unknown"

var whitespaceRe = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return whitespaceRe.ReplaceAllString(s, " ")
}

// heuristicRule maps a substring pattern to a canonical id. A rule matches
// when every substring in All is present and, if Any is non-empty, at least
// one substring in Any is present. Inputs are lowercased before matching.
type heuristicRule struct {
	ID  string
	All []string
	Any []string
}

func (r heuristicRule) matches(s string) bool {
	for _, sub := range r.All {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	if len(r.Any) == 0 {
		return true
	}
	for _, sub := range r.Any {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// heuristicRules are tried in order after a table miss; the first match wins.
// Order is load-bearing: lgpl before agpl before gpl, since the shorter
// markers are substrings of the longer ones.
var heuristicRules = []heuristicRule{
	{ID: "Apache-2.0", All: []string{"apache"}, Any: []string{"2.0", "2"}},
	{ID: "MIT", All: []string{"mit"}},
	{ID: "BSD-3-Clause", All: []string{"bsd"}, Any: []string{"3", "three", "new"}},
	{ID: "LGPL-2.1", All: []string{"lgpl", "2.1"}},
	{ID: "LGPL-3.0", All: []string{"lgpl", "3"}},
	{ID: "AGPL-3.0", All: []string{"agpl", "3"}},
	{ID: "GPL-3.0", All: []string{"gpl", "3"}},
	{ID: "GPL-2.0", All: []string{"gpl", "2"}},
	{ID: "PSF-2.0", Any: []string{"psf", "python software foundation"}},
	{ID: "CC0-1.0", All: []string{"public domain"}},
}

// copyleftMarkers flag the GPL license families. "gpl" also matches inside
// "lgpl" and "agpl"; that is intentional, all three families are copyleft.
var copyleftMarkers = []string{"gpl", "agpl", "lgpl"}

// Normalizer maps raw license strings to canonical identifiers using a
// mapping table plus ordered heuristic substring rules.
type Normalizer struct {
	table MappingTable
}

// NewNormalizer returns a Normalizer backed by the given table.
func NewNormalizer(table MappingTable) Normalizer {
	return Normalizer{table: table}
}

// Normalize maps a raw license phrase to its canonical id. Empty input and
// the Unknown sentinel pass through unchanged. On a table miss the heuristic
// rules apply in order; if none match, the trimmed original is returned
// verbatim, and callers must treat such survivors as non-matching against any
// canonical allow-set. Canonical ids are fixed points: Normalize is
// idempotent.
func (n Normalizer) Normalize(raw string) string {
	if raw == "" || raw == UnknownLicense {
		return raw
	}
	normalized := strings.ToLower(collapseWhitespace(strings.TrimSpace(raw)))
	if id, ok := n.table.Lookup(normalized); ok {
		return id
	}
	for _, rule := range heuristicRules {
		if rule.matches(normalized) {
			return rule.ID
		}
	}
	return strings.TrimSpace(raw)
}

// IsCopyleft reports whether the license id belongs to a copyleft family.
func IsCopyleft(id string) bool {
	lowered := strings.ToLower(id)
	for _, marker := range copyleftMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// Summarize collapses whitespace in value and truncates it to maxLen runes,
// appending "..." when truncated. Used for report lines.
func Summarize(value string, maxLen int) string {
	collapsed := strings.TrimSpace(collapseWhitespace(value))
	if maxLen <= 3 || utf8.RuneCountInString(collapsed) <= maxLen {
		return collapsed
	}
	runes := []rune(collapsed)
	return string(runes[:maxLen-3]) + "..."
}
