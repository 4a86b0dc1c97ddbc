package policy

import "github.com/licensedeny/licensedeny/domain/entities"

// BanHit pairs a package with the rule reason that matched it.
type BanHit struct {
	Package entities.PackageRecord
	Reason  string
}

// BanResult partitions packages into skipped (exempted by name) and
// violations (banned by name).
type BanResult struct {
	Skipped    []BanHit
	Violations []BanHit
}

// Passed reports whether no banned package was found.
func (r BanResult) Passed() bool {
	return len(r.Violations) == 0
}

// CheckBans matches packages by exact lowercased name against the ban
// policy. A name present in both lists is skipped: the skip-list takes
// precedence over the deny-list.
func CheckBans(pkgs []entities.PackageRecord, policy entities.BanPolicy) BanResult {
	skip := make(map[string]string, len(policy.Skip))
	for _, rule := range policy.Skip {
		skip[rule.Name] = rule.Reason
	}
	deny := make(map[string]string, len(policy.Deny))
	for _, rule := range policy.Deny {
		deny[rule.Name] = rule.Reason
	}

	var result BanResult
	for _, pkg := range pkgs {
		if reason, ok := skip[pkg.Name]; ok {
			result.Skipped = append(result.Skipped, BanHit{Package: pkg, Reason: reason})
			continue
		}
		if reason, ok := deny[pkg.Name]; ok {
			result.Violations = append(result.Violations, BanHit{Package: pkg, Reason: reason})
		}
	}
	return result
}
