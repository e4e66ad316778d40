package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetShopSettlementSummaryQueryHandler loads the full shop payment set,
// restores the domain aggregates, and delegates the per-shop grouping and
// totals to the settlement summarizer, so the read path and the domain
// compute the breakdown the same way.
type GetShopSettlementSummaryQueryHandler struct {
	db         *gorm.DB
	summarizer *services.SettlementSummarizer
}

// NewGetShopSettlementSummaryQueryHandler creates a handler for settlement
// summary queries.
func NewGetShopSettlementSummaryQueryHandler(db *gorm.DB) GetShopSettlementSummaryQueryHandler {
	return GetShopSettlementSummaryQueryHandler{
		db:         db,
		summarizer: services.NewSettlementSummarizer(),
	}
}

// Handle executes the query and returns one breakdown per shop, sorted by
// shop name.
func (h GetShopSettlementSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetShopSettlementSummaryQuery,
) ([]GetShopSettlementSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	payments, err := h.loadPayments(ctx)
	if err != nil {
		return nil, err
	}

	summaries := h.summarizer.Summarize(payments)

	responses := make([]GetShopSettlementSummaryQueryResponse, 0, len(summaries))
	for _, summary := range summaries {
		responses = append(responses, GetShopSettlementSummaryQueryResponse{
			ShopName:              summary.ShopName,
			TotalPending:          summary.TotalPending.Amount(),
			TotalPaid:             summary.TotalPaid.Amount(),
			PendingCommission:     summary.PendingCommission.Amount(),
			PendingDeliveryCharge: summary.PendingDeliveryCharge.Amount(),
			PendingOther:          summary.PendingOther.Amount(),
			PaidCommission:        summary.PaidCommission.Amount(),
			PaidDeliveryCharge:    summary.PaidDeliveryCharge.Amount(),
			PaidOther:             summary.PaidOther.Amount(),
			PaymentCount:          summary.PaymentCount,
		})
	}

	return responses, nil
}

func (h GetShopSettlementSummaryQueryHandler) loadPayments(
	ctx context.Context,
) ([]*payment.ShopPayment, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			shop_name,
			amount,
			payment_type,
			order_id,
			status,
			paid_by,
			paid_at,
			notes
		FROM shop_payments
		ORDER BY shop_name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]*payment.ShopPayment, 0)

	for rows.Next() {
		var id uuid.UUID
		var orderID uuid.NullUUID
		var shopName, paymentType, status, paidBy, notes string
		var amount decimal.Decimal
		var paidAt *time.Time

		err = rows.Scan(
			&id,
			&shopName,
			&amount,
			&paymentType,
			&orderID,
			&status,
			&paidBy,
			&paidAt,
			&notes,
		)
		if err != nil {
			return nil, err
		}

		paymentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		var orderRef *kernel.UUID
		if orderID.Valid {
			ref, idErr := kernel.UUIDFromBytes(orderID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			orderRef = &ref
		}

		money, moneyErr := kernel.NewMoney(amount)
		if moneyErr != nil {
			return nil, moneyErr
		}

		restored, restoreErr := payment.RestoreShopPayment(
			paymentID,
			shopName,
			money,
			payment.Type(paymentType),
			orderRef,
			payment.Status(status),
			paidBy,
			paidAt,
			notes,
		)
		if restoreErr != nil {
			return nil, restoreErr
		}

		payments = append(payments, restored)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}
