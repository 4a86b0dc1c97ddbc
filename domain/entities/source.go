package entities

// SourceKind classifies where an installed package came from.
type SourceKind string

const (
	// SourceKindPyPI is the default package index.
	SourceKindPyPI SourceKind = "pypi"

	// SourceKindRegistry is a non-default registry or index URL.
	SourceKindRegistry SourceKind = "registry"

	// SourceKindGit is a version-control checkout.
	SourceKindGit SourceKind = "git"

	// SourceKindDir is a local directory install.
	SourceKindDir SourceKind = "dir"

	// SourceKindURL is a direct archive URL install.
	SourceKindURL SourceKind = "url"

	// SourceKindUnknown is provenance that could not be determined.
	SourceKindUnknown SourceKind = "unknown"
)

// SourceInfo describes the provenance of one installed package.
type SourceInfo struct {
	// Label is a human-readable origin, e.g. "pypi" or
	// "git:https://github.com/myorg/pkg@abc123".
	Label string `json:"label" yaml:"label"`

	// Kind is the provenance classification.
	Kind SourceKind `json:"kind" yaml:"kind"`
}
