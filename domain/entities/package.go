package entities

// PackageRecord is one installed third-party package as seen by the checker.
// Records are constructed once per run from environment inspection and are
// immutable thereafter; every derived value (normalized licenses, verdicts,
// classifications) is a pure function of the record and the policy.
type PackageRecord struct {
	// Name is the distribution name, lowercased.
	Name string `json:"name" yaml:"name"`

	// Version is the installed version string, verbatim.
	Version string `json:"version" yaml:"version"`

	// RawLicense is the license string as reported by package metadata.
	RawLicense string `json:"raw_license" yaml:"raw_license"`

	// EffectiveLicense is the license string actually evaluated: either
	// RawLicense or a clarify-rule override.
	EffectiveLicense string `json:"effective_license" yaml:"effective_license"`

	// Clarified is true when a clarify rule replaced the raw license.
	Clarified bool `json:"clarified" yaml:"clarified"`

	// Source is the package's provenance.
	Source SourceInfo `json:"source" yaml:"source"`
}
