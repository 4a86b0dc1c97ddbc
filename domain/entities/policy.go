package entities

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// LicenseException grants extra allowed licenses to a single package, on top
// of the global allow-list. When Source is non-empty the grant only applies
// if the package's source label contains it (case-insensitive).
type LicenseException struct {
	// Package is the lowercased package name the exception applies to.
	Package string `json:"package" yaml:"package"`

	// Allow is the set of additional canonical license ids granted.
	Allow StringSet `json:"allow" yaml:"allow"`

	// Source optionally scopes the grant to a source-label substring.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Reason is free-form operator documentation.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// AppliesTo reports whether the exception grants licenses to pkg.
func (e LicenseException) AppliesTo(pkg PackageRecord) bool {
	if e.Package != pkg.Name {
		return false
	}
	if e.Source == "" {
		return true
	}
	return strings.Contains(strings.ToLower(pkg.Source.Label), strings.ToLower(e.Source))
}

// ClarifyRule replaces an untrustworthy reported license with a known-correct
// expression for a specific package, optionally limited to a version range.
// Rules are evaluated in configuration-declared order; the first match wins.
type ClarifyRule struct {
	// Package is the lowercased package name the rule applies to.
	Package string `json:"package" yaml:"package"`

	// Expression is the license expression substituted for the raw license.
	Expression string `json:"expression" yaml:"expression"`

	// Versions optionally restricts the rule to a version range. Nil means
	// the rule applies to every version.
	Versions *semver.Constraints `json:"-" yaml:"-"`

	// Link optionally points at the upstream evidence for the override.
	Link string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Matches reports whether the rule applies to the named package version.
// A version that cannot be parsed never matches a constrained rule.
func (r ClarifyRule) Matches(name, version string) bool {
	if r.Package != name {
		return false
	}
	if r.Versions == nil {
		return true
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return r.Versions.Check(v)
}

// PrivatePolicy controls skipping of packages from private registries.
type PrivatePolicy struct {
	// Ignore enables the skip behavior.
	Ignore bool `json:"ignore" yaml:"ignore"`

	// Registries are source-label substrings identifying private registries.
	Registries []string `json:"registries,omitempty" yaml:"registries,omitempty"`
}

// LicensePolicy is the license axis of the operator policy.
type LicensePolicy struct {
	// Allow is the global set of allowed canonical license ids.
	Allow StringSet `json:"allow" yaml:"allow"`

	// Deny lists canonical license ids that are rejected outright. Deny
	// membership takes precedence over everything, including Allow.
	Deny StringSet `json:"deny,omitempty" yaml:"deny,omitempty"`

	// Unlicensed is applied to packages with an empty or Unknown license.
	Unlicensed Decision `json:"unlicensed" yaml:"unlicensed"`

	// Copyleft is applied to packages naming a GPL-family license.
	Copyleft Decision `json:"copyleft" yaml:"copyleft"`

	// Exceptions are per-package extra license grants.
	Exceptions []LicenseException `json:"exceptions,omitempty" yaml:"exceptions,omitempty"`

	// ClarifyRules are per-package license overrides, first match wins.
	ClarifyRules []ClarifyRule `json:"clarify,omitempty" yaml:"clarify,omitempty"`

	// Private controls private-registry skipping.
	Private PrivatePolicy `json:"private" yaml:"private"`
}

// BanRule names one package that is banned or exempted by name.
type BanRule struct {
	// Name is the lowercased package name.
	Name string `json:"name" yaml:"name"`

	// Reason is free-form operator documentation, echoed in reports.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// BanPolicy is the identity axis of the operator policy. A name present in
// both lists is skipped: Skip takes precedence over Deny.
type BanPolicy struct {
	Deny []BanRule `json:"deny,omitempty" yaml:"deny,omitempty"`
	Skip []BanRule `json:"skip,omitempty" yaml:"skip,omitempty"`
}

// SourcePolicy is the provenance axis of the operator policy.
type SourcePolicy struct {
	// UnknownRegistry is applied to registry/url/dir/unknown sources that
	// match no AllowRegistry entry.
	UnknownRegistry Decision `json:"unknown_registry" yaml:"unknown_registry"`

	// UnknownGit is applied to git sources that match no AllowGit entry and
	// no AllowOrg mapping.
	UnknownGit Decision `json:"unknown_git" yaml:"unknown_git"`

	// AllowRegistry are source-label substrings for allowed registries.
	AllowRegistry []string `json:"allow_registry,omitempty" yaml:"allow_registry,omitempty"`

	// AllowGit are source-label substrings for allowed git origins.
	AllowGit []string `json:"allow_git,omitempty" yaml:"allow_git,omitempty"`

	// AllowOrg maps a git host (e.g. "github.com") to the organizations
	// allowed on that host.
	AllowOrg map[string][]string `json:"allow_org,omitempty" yaml:"allow_org,omitempty"`
}

// Config is the full operator policy consumed by the checker.
type Config struct {
	Licenses LicensePolicy `json:"licenses" yaml:"licenses"`
	Bans     BanPolicy     `json:"bans" yaml:"bans"`
	Sources  SourcePolicy  `json:"sources" yaml:"sources"`
}
