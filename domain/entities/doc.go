// Package entities provides the core domain types shared across the checker:
// package records, provenance info, policy configuration, and classification
// results. These are plain values with no I/O; loading them from disk belongs
// to the infrastructure packages.
package entities
