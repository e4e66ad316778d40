package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for assignment
// proposals.
type AssignmentRepository interface {
	// Add persists a new proposal. The store enforces at most one pending
	// proposal per order via a partial unique index; violating inserts fail.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Update persists a response to a proposal.
	Update(ctx context.Context, aggregate *assignment.Assignment) error

	// Get retrieves a proposal by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// GetPendingByOrder retrieves the pending proposal for an order, or
	// errs.ErrObjectNotFound if none exists. At most one can exist.
	GetPendingByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)

	// GetAllPending retrieves every unanswered proposal, oldest first.
	// Feeds the delivery boy console worklist.
	GetAllPending(ctx context.Context) ([]*assignment.Assignment, error)
}
