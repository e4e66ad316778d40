package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetPendingAssignmentsQueryIsNotConstructed = errors.New(
	"GetPendingAssignmentsQuery must be created via NewGetPendingAssignmentsQuery constructor",
)

// GetPendingAssignmentsQuery retrieves every unanswered proposal together
// with enough order context for the delivery boy console to render a
// worklist without further lookups.
type GetPendingAssignmentsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingAssignmentsQuery creates a query to retrieve unanswered
// proposals.
func NewGetPendingAssignmentsQuery() GetPendingAssignmentsQuery {
	return GetPendingAssignmentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingAssignmentsQueryIsNotConstructed)
}

// GetPendingAssignmentsQueryResponse is the worklist read model for one
// unanswered proposal.
type GetPendingAssignmentsQueryResponse struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	DeliveryBoyID   kernel.UUID
	Notes           string
	AssignedAt      time.Time
	CustomerName    string
	CustomerAddress string
	ShopName        string
}
