package license

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_TableHits(t *testing.T) {
	n := NewNormalizer(DefaultTable())

	tests := []struct {
		raw  string
		want string
	}{
		{"MIT License", "MIT"},
		{"The MIT License (MIT)", "MIT"},
		{"Apache License, Version 2.0", "Apache-2.0"},
		{"GNU Lesser General Public License v2.1", "LGPL-2.1"},
		{"Mozilla Public License 2.0", "MPL-2.0"},
		{"zlib/libpng   license", "Zlib"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.raw))
		})
	}
}

func TestNormalize_Heuristics(t *testing.T) {
	// Empty table forces the heuristic path.
	n := NewNormalizer(NewMappingTable(nil))

	tests := []struct {
		raw  string
		want string
	}{
		{"Apache Software License v2.0", "Apache-2.0"},
		{"some mit-style permissive thing", "MIT"},
		{"BSD three clause", "BSD-3-Clause"},
		{"New BSD", "BSD-3-Clause"},
		{"GNU LGPL v2.1", "LGPL-2.1"},
		{"GNU LGPL version 3", "LGPL-3.0"},
		{"AGPL version 3", "AGPL-3.0"},
		{"GPL version 3 only", "GPL-3.0"},
		{"GPL version 2", "GPL-2.0"},
		{"Python Software Foundation thing", "PSF-2.0"},
		{"released into the public domain", "CC0-1.0"},
		{"Some Proprietary License", "Some Proprietary License"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.raw))
		})
	}
}

func TestNormalize_SentinelsPassThrough(t *testing.T) {
	n := NewNormalizer(DefaultTable())
	assert.Equal(t, "", n.Normalize(""))
	assert.Equal(t, UnknownLicense, n.Normalize(UnknownLicense))
}

func TestNormalize_Idempotent(t *testing.T) {
	n := NewNormalizer(DefaultTable())
	inputs := []string{
		"MIT License",
		"Apache License 2.0",
		"GNU Lesser General Public License v2.1",
		"GPL v3",
		"public domain",
		"Totally Unrecognized License",
		"",
		UnknownLicense,
	}
	for _, raw := range inputs {
		once := n.Normalize(raw)
		assert.Equal(t, once, n.Normalize(once), "canonical ids must be fixed points: %q", raw)
	}
}

func TestIsCopyleft(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"LGPL-2.1", true},
		{"AGPL-3.0", true},
		{"GPL-2.0", true},
		{"GPL-3.0", true},
		{"MIT", false},
		{"Apache-2.0", false},
		{"BSD-3-Clause", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCopyleft(tt.id))
		})
	}
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "MIT", Summarize("  MIT  ", 64))
	assert.Equal(t, "a b c", Summarize("a\n b\t\tc", 64))

	long := "GNU Lesser General Public License v2.1 or later with extra prose attached"
	got := Summarize(long, 20)
	assert.Len(t, got, 20)
	assert.Equal(t, "...", got[17:])
}

func TestSummarize_TruncatesOnRuneBoundary(t *testing.T) {
	// Truncation counts runes, not bytes: a multi-byte rune at the cut must
	// not be split into invalid UTF-8.
	long := strings.Repeat("é", 10) // 10 runes, 20 bytes
	got := Summarize(long, 8)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 5)+"...", got)
	assert.Equal(t, 8, utf8.RuneCountInString(got))

	assert.Equal(t, long, Summarize(long, 10), "rune count within limit is untouched")
}
