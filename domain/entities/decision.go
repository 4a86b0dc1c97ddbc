package entities

import "strings"

// Decision is a three-valued policy outcome attached to a policy axis
// (unlicensed handling, copyleft handling, unknown source handling).
// Decisions come from configuration only; they are never computed from data.
type Decision string

const (
	// DecisionAllow permits the package without comment.
	DecisionAllow Decision = "allow"

	// DecisionWarn permits the package but surfaces a warning to the operator.
	DecisionWarn Decision = "warn"

	// DecisionDeny rejects the package and fails the overall check.
	DecisionDeny Decision = "deny"
)

// ParseDecision parses s case-insensitively into a Decision, returning
// fallback when s is empty or not a recognized decision.
func ParseDecision(s string, fallback Decision) Decision {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "allow":
		return DecisionAllow
	case "warn":
		return DecisionWarn
	case "deny":
		return DecisionDeny
	default:
		return fallback
	}
}
