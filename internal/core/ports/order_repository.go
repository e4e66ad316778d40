// Package ports defines the persistence and notification contracts between
// the domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate
	// unconditionally. Used by lifecycle transitions that have already
	// loaded and validated the aggregate, and by the coordinator's
	// compensating write.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateConditional persists the aggregate only if the stored row still
	// matches the expected (status, delivery_boy_id) pair, as a single
	// atomic compare-and-set UPDATE, never as separate read and write
	// round trips. A nil expectedDeliveryBoy means the column must be NULL.
	//
	// If the row no longer matches, zero rows are affected and
	// errs.ErrPreconditionFailed is returned: the caller lost the race and
	// must not retry blindly. This is the sole concurrency-control
	// mechanism for the assignment protocol.
	UpdateConditional(
		ctx context.Context,
		aggregate *order.Order,
		expectedStatus order.Status,
		expectedDeliveryBoy *kernel.UUID,
	) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus retrieves all orders in the given lifecycle status.
	// The settlement reconciler uses it to scan delivered orders.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
