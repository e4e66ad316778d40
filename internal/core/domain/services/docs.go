// Package services contains stateless domain services that operate across
// aggregates: deriving shop obligations from delivered orders and computing
// per-shop settlement summaries.
package services
