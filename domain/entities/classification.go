package entities

// Status is the outcome of classifying one package under one check scope.
type Status string

const (
	// StatusOk means the package passed the check.
	StatusOk Status = "ok"

	// StatusWarn means the package passed but a warn-decision fired.
	StatusWarn Status = "warn"

	// StatusDeny means the package violates the policy.
	StatusDeny Status = "deny"
)

// StatusDetail refines an ok classification.
type StatusDetail string

const (
	// DetailMetadata means the license came straight from package metadata.
	DetailMetadata StatusDetail = "metadata"

	// DetailClarified means a clarify rule substituted the license.
	DetailClarified StatusDetail = "clarified"

	// DetailPrivateSkipped means the package was skipped as private and the
	// license check was bypassed entirely.
	DetailPrivateSkipped StatusDetail = "private-skipped"
)

// Classification is the per-package result handed to the report renderer.
type Classification struct {
	// Package is the lowercased package name.
	Package string `json:"package" yaml:"package"`

	// Version is the installed version.
	Version string `json:"version" yaml:"version"`

	// Status is the three-state outcome.
	Status Status `json:"status" yaml:"status"`

	// Detail refines ok outcomes (metadata, clarified, private-skipped).
	Detail StatusDetail `json:"detail,omitempty" yaml:"detail,omitempty"`

	// License is the displayed license string.
	License string `json:"license,omitempty" yaml:"license,omitempty"`

	// Reason explains deny outcomes and accumulated warnings.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Warnings are warn-decision messages that did not stop evaluation.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// IsDeny reports whether the classification fails the run.
func (c Classification) IsDeny() bool {
	return c.Status == StatusDeny
}
