// Package assignment contains the Assignment aggregate: one proposal to
// deliver a specific order by a specific delivery boy. A proposal is pending
// until the delivery boy accepts or rejects it, and is immutable once
// responded. Multiple assignments may exist historically for one order, but
// the coordinator guarantees at most one pending proposal per order.
package assignment
