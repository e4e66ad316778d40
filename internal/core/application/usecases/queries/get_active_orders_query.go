// Package queries contains read-only operations over the store. Query
// handlers bypass the aggregates and repositories and read with raw SQL,
// returning flat read models shaped for their consumers.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves all orders still moving through the
// lifecycle: pending, assigned, or picked_up. Delivered and cancelled
// orders are excluded.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query to retrieve in-flight orders.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is the monitoring read model for one
// in-flight order.
type GetActiveOrdersQueryResponse struct {
	ID              kernel.UUID
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	ShopName        string
	TotalAmount     decimal.Decimal
	PaymentStatus   string
	PaymentMethod   string
	Status          string
	DeliveryBoyID   *kernel.UUID
	AssignedAt      *time.Time
	PickedUpAt      *time.Time
	CreatedAt       time.Time
}
