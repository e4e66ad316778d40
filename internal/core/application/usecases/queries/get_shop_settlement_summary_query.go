package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetShopSettlementSummaryQueryIsNotConstructed = errors.New(
	"GetShopSettlementSummaryQuery must be created via NewGetShopSettlementSummaryQuery constructor",
)

// GetShopSettlementSummaryQuery retrieves the per-shop settlement
// breakdown. The summary is recomputed from the full payment set on every
// call; nothing is cached or incrementally maintained.
type GetShopSettlementSummaryQuery struct {
	guard guard.ConstructorGuard
}

// NewGetShopSettlementSummaryQuery creates a settlement summary query.
func NewGetShopSettlementSummaryQuery() GetShopSettlementSummaryQuery {
	return GetShopSettlementSummaryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetShopSettlementSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetShopSettlementSummaryQueryIsNotConstructed)
}

// GetShopSettlementSummaryQueryResponse is the settlement breakdown for one
// shop.
type GetShopSettlementSummaryQueryResponse struct {
	ShopName string

	TotalPending decimal.Decimal
	TotalPaid    decimal.Decimal

	PendingCommission     decimal.Decimal
	PendingDeliveryCharge decimal.Decimal
	PendingOther          decimal.Decimal

	PaidCommission     decimal.Decimal
	PaidDeliveryCharge decimal.Decimal
	PaidOther          decimal.Decimal

	PaymentCount int
}
