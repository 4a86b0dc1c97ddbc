package policy

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/licensedeny/licensedeny/domain/entities"
)

// SourceChecker classifies package provenance against the source policy.
type SourceChecker struct {
	policy entities.SourcePolicy
}

// NewSourceChecker builds a checker over the given source policy.
func NewSourceChecker(policy entities.SourcePolicy) SourceChecker {
	return SourceChecker{policy: policy}
}

// Classify applies the provenance rules: pypi and local-directory installs
// are always allowed; git sources must match an allow-git substring or an
// allow-org host/organization mapping, otherwise the unknown-git decision
// applies; every other kind must match an allow-registry substring,
// otherwise the unknown-registry decision applies.
func (c SourceChecker) Classify(pkg entities.PackageRecord) entities.Classification {
	out := entities.Classification{
		Package: pkg.Name,
		Version: pkg.Version,
		License: pkg.Source.Label,
	}

	switch pkg.Source.Kind {
	case entities.SourceKindPyPI, entities.SourceKindDir:
		out.Status = entities.StatusOk
		return out
	case entities.SourceKindGit:
		if c.gitAllowed(pkg.Source.Label) {
			out.Status = entities.StatusOk
			return out
		}
		return c.applyDecision(out, c.policy.UnknownGit,
			fmt.Sprintf("git source not in allowlist: %s", pkg.Source.Label))
	default:
		if c.labelAllowed(pkg.Source.Label, c.policy.AllowRegistry) {
			out.Status = entities.StatusOk
			return out
		}
		return c.applyDecision(out, c.policy.UnknownRegistry,
			fmt.Sprintf("source not in allowlist: %s", pkg.Source.Label))
	}
}

func (c SourceChecker) applyDecision(out entities.Classification, decision entities.Decision, reason string) entities.Classification {
	switch decision {
	case entities.DecisionAllow:
		out.Status = entities.StatusOk
	case entities.DecisionWarn:
		out.Status = entities.StatusWarn
		out.Warnings = append(out.Warnings, reason)
	default:
		out.Status = entities.StatusDeny
		out.Reason = reason
	}
	return out
}

func (c SourceChecker) labelAllowed(label string, allowlist []string) bool {
	lowered := strings.ToLower(label)
	for _, allowed := range allowlist {
		if allowed != "" && strings.Contains(lowered, strings.ToLower(allowed)) {
			return true
		}
	}
	return false
}

func (c SourceChecker) gitAllowed(label string) bool {
	if c.labelAllowed(label, c.policy.AllowGit) {
		return true
	}
	host, org, ok := parseGitLabel(label)
	if !ok {
		return false
	}
	for allowedHost, orgs := range c.policy.AllowOrg {
		if !strings.Contains(host, strings.ToLower(allowedHost)) {
			continue
		}
		for _, allowedOrg := range orgs {
			if strings.EqualFold(org, allowedOrg) {
				return true
			}
		}
	}
	return false
}

// parseGitLabel extracts the hostname and first path segment (the
// organization) from a git source label such as
// "git+ssh://git@github.com/myorg/pkg.git" or
// "git:https://github.com/myorg/pkg@abc123".
func parseGitLabel(label string) (host, org string, ok bool) {
	cleaned := strings.TrimSpace(label)
	for _, prefix := range []string{"git+", "ssh+", "git:"} {
		cleaned = strings.TrimPrefix(cleaned, prefix)
	}
	u, err := url.Parse(cleaned)
	if err != nil || u.Hostname() == "" {
		return "", "", false
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return "", "", false
	}
	return strings.ToLower(u.Hostname()), segments[0], true
}
