// Package kernel contains shared value objects used across all domain
// aggregates: UUID identifiers and Money amounts. Kernel types are immutable,
// validated on construction, and safe for concurrent use.
package kernel
