package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingAssignmentsQueryHandler reads unanswered proposals joined with
// their order context, oldest first.
type GetPendingAssignmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingAssignmentsQueryHandler creates a handler for pending
// proposal queries.
func NewGetPendingAssignmentsQueryHandler(db *gorm.DB) GetPendingAssignmentsQueryHandler {
	return GetPendingAssignmentsQueryHandler{db: db}
}

// Handle executes the query to retrieve all pending proposals.
func (h GetPendingAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingAssignmentsQuery,
) ([]GetPendingAssignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	proposals := make([]GetPendingAssignmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.order_id,
			a.delivery_boy_id,
			a.notes,
			a.assigned_at,
			o.customer_name,
			o.customer_address,
			o.shop_name
		FROM order_assignments a
		JOIN orders o ON o.id = a.order_id
		WHERE a.status = 'pending'
		ORDER BY a.assigned_at
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var proposal GetPendingAssignmentsQueryResponse
		var id, orderID, boyID uuid.UUID

		err = rows.Scan(
			&id,
			&orderID,
			&boyID,
			&proposal.Notes,
			&proposal.AssignedAt,
			&proposal.CustomerName,
			&proposal.CustomerAddress,
			&proposal.ShopName,
		)
		if err != nil {
			return nil, err
		}

		if proposal.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if proposal.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if proposal.DeliveryBoyID, err = kernel.UUIDFromBytes(boyID[:]); err != nil {
			return nil, err
		}

		proposals = append(proposals, proposal)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return proposals, nil
}
