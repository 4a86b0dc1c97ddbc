package policy

import (
	"fmt"
	"strings"

	"github.com/licensedeny/licensedeny/domain/entities"
	"github.com/licensedeny/licensedeny/domain/license"
)

// summaryLen bounds license strings in report and reason text.
const summaryLen = 64

// ResolveAllowedSet returns the global allow-list unioned with the grants of
// every exception that applies to pkg (package name match, and source-label
// substring match when the exception is source-scoped).
func ResolveAllowedSet(pkg entities.PackageRecord, cfg entities.Config) entities.StringSet {
	allowed := entities.NewStringSet().Union(cfg.Licenses.Allow)
	for _, exc := range cfg.Licenses.Exceptions {
		if exc.AppliesTo(pkg) {
			allowed = allowed.Union(exc.Allow)
		}
	}
	return allowed
}

// LicenseChecker classifies packages under the license axis of the policy.
type LicenseChecker struct {
	cfg  entities.Config
	eval license.Evaluator
}

// NewLicenseChecker builds a checker over the given policy and mapping table.
func NewLicenseChecker(cfg entities.Config, table license.MappingTable) LicenseChecker {
	return LicenseChecker{cfg: cfg, eval: license.NewEvaluator(table)}
}

// Classify runs the per-package license state machine, in fixed order:
// private-registry skip, unlicensed decision, deny-list intersection,
// compliance against the resolved allow-set, copyleft decision, ok. Deny
// decisions stop evaluation; warn decisions accumulate and evaluation
// continues.
func (c LicenseChecker) Classify(pkg entities.PackageRecord, strict bool) entities.Classification {
	out := entities.Classification{
		Package: pkg.Name,
		Version: pkg.Version,
		License: license.Summarize(pkg.EffectiveLicense, summaryLen),
	}

	if c.privateSkip(pkg) {
		out.Status = entities.StatusOk
		out.Detail = entities.DetailPrivateSkipped
		return out
	}

	if pkg.EffectiveLicense == "" || pkg.EffectiveLicense == license.UnknownLicense {
		switch c.cfg.Licenses.Unlicensed {
		case entities.DecisionAllow:
			out.Status = entities.StatusOk
			out.Detail = c.okDetail(pkg)
		case entities.DecisionWarn:
			out.Status = entities.StatusWarn
			out.Detail = c.okDetail(pkg)
			out.Warnings = append(out.Warnings, "package has no license metadata")
		default:
			out.Status = entities.StatusDeny
			out.Reason = "package has no license metadata"
		}
		return out
	}

	parts := c.eval.NormalizedParts(pkg.EffectiveLicense)

	// Deny-list membership overrides everything, including allow-list hits.
	if len(c.cfg.Licenses.Deny) > 0 {
		for _, id := range parts.Sorted() {
			if c.cfg.Licenses.Deny.Contains(id) {
				out.Status = entities.StatusDeny
				out.Reason = fmt.Sprintf("license %s is denied by policy", id)
				return out
			}
		}
	}

	allowed := ResolveAllowedSet(pkg, c.cfg)
	if !c.eval.IsCompliant(pkg.EffectiveLicense, allowed, strict) {
		out.Status = entities.StatusDeny
		out.Reason = c.unapprovedReason(pkg)
		return out
	}

	if c.anyCopyleft(parts) {
		switch c.cfg.Licenses.Copyleft {
		case entities.DecisionDeny:
			out.Status = entities.StatusDeny
			out.Reason = fmt.Sprintf("copyleft license: %s", license.Summarize(pkg.EffectiveLicense, summaryLen))
			return out
		case entities.DecisionWarn:
			out.Warnings = append(out.Warnings, fmt.Sprintf("copyleft license: %s", license.Summarize(pkg.EffectiveLicense, summaryLen)))
		}
	}

	if len(out.Warnings) > 0 {
		out.Status = entities.StatusWarn
	} else {
		out.Status = entities.StatusOk
	}
	out.Detail = c.okDetail(pkg)
	return out
}

// DisplayLicense renders the package's effective license for report lines,
// with atoms normalized and the raw value appended when it differs.
func (c LicenseChecker) DisplayLicense(pkg entities.PackageRecord, showRaw bool) string {
	primary := license.Summarize(c.eval.NormalizeForDisplay(pkg.EffectiveLicense), summaryLen)
	if showRaw {
		raw := license.Summarize(pkg.RawLicense, summaryLen)
		if raw != "" && raw != primary {
			return fmt.Sprintf("%s (raw: %s)", primary, raw)
		}
	}
	return primary
}

func (c LicenseChecker) privateSkip(pkg entities.PackageRecord) bool {
	private := c.cfg.Licenses.Private
	if !private.Ignore {
		return false
	}
	label := strings.ToLower(pkg.Source.Label)
	for _, marker := range private.Registries {
		if marker != "" && strings.Contains(label, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

func (c LicenseChecker) okDetail(pkg entities.PackageRecord) entities.StatusDetail {
	if pkg.Clarified {
		return entities.DetailClarified
	}
	return entities.DetailMetadata
}

func (c LicenseChecker) anyCopyleft(parts entities.StringSet) bool {
	for id := range parts {
		if license.IsCopyleft(id) {
			return true
		}
	}
	return false
}

func (c LicenseChecker) unapprovedReason(pkg entities.PackageRecord) string {
	effective := license.Summarize(pkg.EffectiveLicense, summaryLen)
	if pkg.EffectiveLicense != pkg.RawLicense {
		return fmt.Sprintf("uses unapproved license: %s (raw: %s)", effective, license.Summarize(pkg.RawLicense, summaryLen))
	}
	return fmt.Sprintf("uses unapproved license: %s", effective)
}
