// Package checker orchestrates the independent check scopes (licenses, bans,
// sources) over an enumerated package set and aggregates the results into a
// report for rendering.
package checker

import (
	"log/slog"

	"github.com/licensedeny/licensedeny/domain/entities"
	"github.com/licensedeny/licensedeny/domain/license"
	"github.com/licensedeny/licensedeny/domain/policy"
)

// Scope selects one compliance check.
type Scope string

const (
	// ScopeLicenses checks license policy compliance.
	ScopeLicenses Scope = "licenses"

	// ScopeBans checks the package ban lists.
	ScopeBans Scope = "bans"

	// ScopeSources checks package provenance.
	ScopeSources Scope = "sources"

	// ScopeAll runs every check.
	ScopeAll Scope = "all"
)

// ParseScope validates a scope argument.
func ParseScope(s string) (Scope, bool) {
	switch Scope(s) {
	case ScopeLicenses, ScopeBans, ScopeSources, ScopeAll:
		return Scope(s), true
	default:
		return "", false
	}
}

// Options control one checker run.
type Options struct {
	// Scope selects which checks run.
	Scope Scope

	// Strict requires every license named in a compound expression to be
	// allowed, even across OR.
	Strict bool
}

// LicenseReport is the license-scope outcome.
type LicenseReport struct {
	// Results holds one classification per package, in package-name order.
	Results []entities.Classification

	// EmptyAllowList is set when the global allow-list is empty, which
	// implies every non-excepted package will be denied.
	EmptyAllowList bool
}

// Passed reports whether no package was denied.
func (r LicenseReport) Passed() bool {
	for _, res := range r.Results {
		if res.IsDeny() {
			return false
		}
	}
	return true
}

// SourceReport is the source-scope outcome.
type SourceReport struct {
	Results []entities.Classification
}

// Passed reports whether no package was denied.
func (r SourceReport) Passed() bool {
	for _, res := range r.Results {
		if res.IsDeny() {
			return false
		}
	}
	return true
}

// Report aggregates the outcomes of the requested scopes. Scopes that did
// not run are nil.
type Report struct {
	Licenses *LicenseReport
	Bans     *policy.BanResult
	Sources  *SourceReport
}

// Passed reports whether every scope that ran is free of deny outcomes.
// Warnings never change the verdict.
func (r Report) Passed() bool {
	if r.Licenses != nil && !r.Licenses.Passed() {
		return false
	}
	if r.Bans != nil && !r.Bans.Passed() {
		return false
	}
	if r.Sources != nil && !r.Sources.Passed() {
		return false
	}
	return true
}

// Checker runs compliance checks over a package set.
type Checker struct {
	cfg    entities.Config
	table  license.MappingTable
	logger *slog.Logger
}

// New builds a Checker. A nil logger defaults to slog.Default().
func New(cfg entities.Config, table license.MappingTable, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{cfg: cfg, table: table, logger: logger}
}

// Run evaluates every package in pkgs under the requested scopes. Packages
// are expected in package-name order; the run is a single deterministic pass
// and the report preserves input order.
func (c *Checker) Run(pkgs []entities.PackageRecord, opts Options) Report {
	var report Report
	if opts.Scope == ScopeAll || opts.Scope == ScopeSources {
		report.Sources = c.runSources(pkgs)
	}
	if opts.Scope == ScopeAll || opts.Scope == ScopeBans {
		result := policy.CheckBans(pkgs, c.cfg.Bans)
		report.Bans = &result
	}
	if opts.Scope == ScopeAll || opts.Scope == ScopeLicenses {
		report.Licenses = c.runLicenses(pkgs, opts.Strict)
	}
	return report
}

func (c *Checker) runLicenses(pkgs []entities.PackageRecord, strict bool) *LicenseReport {
	report := &LicenseReport{EmptyAllowList: len(c.cfg.Licenses.Allow) == 0}
	if report.EmptyAllowList {
		c.logger.Warn("license allow-list is empty; all licenses will be rejected")
	}
	lc := policy.NewLicenseChecker(c.cfg, c.table)
	for _, pkg := range pkgs {
		res := lc.Classify(pkg, strict)
		if res.IsDeny() {
			c.logger.Debug("license violation", "package", pkg.Name, "version", pkg.Version, "reason", res.Reason)
		}
		report.Results = append(report.Results, res)
	}
	return report
}

func (c *Checker) runSources(pkgs []entities.PackageRecord) *SourceReport {
	report := &SourceReport{}
	sc := policy.NewSourceChecker(c.cfg.Sources)
	for _, pkg := range pkgs {
		res := sc.Classify(pkg)
		if res.IsDeny() {
			c.logger.Debug("source violation", "package", pkg.Name, "version", pkg.Version, "source", pkg.Source.Label)
		}
		report.Results = append(report.Results, res)
	}
	return report
}
