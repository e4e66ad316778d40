package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payment"
)

// ShopPaymentRepository defines the persistence contract for shop payment
// obligations.
type ShopPaymentRepository interface {
	// Add persists a new obligation unconditionally. Used for manual
	// TypeOther obligations that carry no idempotency key.
	Add(ctx context.Context, aggregate *payment.ShopPayment) error

	// Upsert persists an order-derived obligation keyed on
	// (order_id, payment_type): if a row with that key already exists the
	// insert is a no-op and Upsert reports inserted=false. This makes
	// reconciliation safe to re-run arbitrarily often.
	Upsert(ctx context.Context, aggregate *payment.ShopPayment) (inserted bool, err error)

	// Update persists a settlement (pending -> paid) of an obligation.
	Update(ctx context.Context, aggregate *payment.ShopPayment) error

	// Get retrieves an obligation by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*payment.ShopPayment, error)

	// GetAll retrieves the full current set of obligations. The settlement
	// summary recomputes from this set on every call.
	GetAll(ctx context.Context) ([]*payment.ShopPayment, error)
}
