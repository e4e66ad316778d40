// Package order contains the Order aggregate and its lifecycle state
// machine. An order moves pending -> assigned -> picked_up -> delivered on
// the happy path, with cancellation allowed from pending and assigned only.
// Delivered and cancelled are terminal.
//
// The aggregate owns the invariant that a delivery boy is referenced if and
// only if the order is in assigned, picked_up, or delivered status, and that
// the picked-up and delivered timestamps are stamped exactly once.
package order
