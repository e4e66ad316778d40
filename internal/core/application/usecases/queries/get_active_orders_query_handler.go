package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads in-flight orders directly from the
// database, bypassing the aggregate. Sorted oldest first so the dispatch
// console surfaces the orders that have waited longest.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order
// queries. Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query and returns orders in pending, assigned, or
// picked_up status.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_name,
			customer_phone,
			customer_address,
			shop_name,
			total_amount,
			payment_status,
			payment_method,
			status,
			delivery_boy_id,
			assigned_at,
			picked_up_at,
			created_at
		FROM orders
		WHERE status IN ('pending', 'assigned', 'picked_up')
		ORDER BY created_at
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetActiveOrdersQueryResponse
		var id uuid.UUID
		var boyID uuid.NullUUID

		err = rows.Scan(
			&id,
			&orderResp.CustomerName,
			&orderResp.CustomerPhone,
			&orderResp.CustomerAddress,
			&orderResp.ShopName,
			&orderResp.TotalAmount,
			&orderResp.PaymentStatus,
			&orderResp.PaymentMethod,
			&orderResp.Status,
			&boyID,
			&orderResp.AssignedAt,
			&orderResp.PickedUpAt,
			&orderResp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID

		if boyID.Valid {
			deliveryBoyID, idErr := kernel.UUIDFromBytes(boyID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			orderResp.DeliveryBoyID = &deliveryBoyID
		}

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
