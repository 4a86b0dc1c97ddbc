// Package license implements the license-expression engine: normalization of
// free-form license strings to canonical identifiers, tokenization of
// compound AND/OR expressions, shunting-yard parsing to postfix form, and
// postfix evaluation against an allow-set under strict or permissive
// semantics.
//
// Every function here is a pure function over strings and sets. The mapping
// table is an immutable value constructed once at startup and passed into the
// components that need it; there is no package-level mutable state. Malformed
// expressions never surface as errors to callers of IsCompliant: evaluation
// degrades to a conservative split-based fallback instead.
package license
