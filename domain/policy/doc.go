// Package policy is the decision engine: it combines the license engine's
// compliance verdicts with deny-lists, unlicensed/copyleft/exception
// handling, ban rules, and source provenance rules to classify each package
// as ok, warn, or deny.
package policy
