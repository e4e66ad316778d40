package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request or
// command, ensuring isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control, repositories bound to the transaction, and tracks
// which tables were touched so that change signals can be published after a
// successful commit.
//
// A unit of work spans a single logical write. The assignment coordinator
// deliberately uses one unit of work per saga step: the store offers no
// cross-table atomicity to it, and the compensation path depends on the
// steps committing independently.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and publishes one change
	// signal per touched table. Returns an error if no transaction is
	// active or the commit fails (in which case nothing is published).
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction, discarding both the
	// writes and the pending change signals.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// AssignmentRepository returns an AssignmentRepository bound to the
	// current transaction.
	AssignmentRepository() AssignmentRepository

	// DeliveryBoyRepository returns a DeliveryBoyRepository bound to the
	// current transaction.
	DeliveryBoyRepository() DeliveryBoyRepository

	// ShopPaymentRepository returns a ShopPaymentRepository bound to the
	// current transaction.
	ShopPaymentRepository() ShopPaymentRepository
}
