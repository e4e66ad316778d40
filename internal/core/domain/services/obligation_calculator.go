package services

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
)

// ErrOrderNotDelivered is returned when obligations are requested for an
// order that has not been delivered. Only delivered orders create
// settlement obligations.
var ErrOrderNotDelivered = errors.New("order is not delivered")

// ObligationCalculator derives the shop obligations a delivered order gives
// rise to: one commission obligation and one delivery-charge obligation,
// skipping any whose amount is zero.
//
// The calculator is pure; persistence and the (order, type) idempotency key
// are the reconciler's concern.
type ObligationCalculator struct{}

// NewObligationCalculator creates an ObligationCalculator.
func NewObligationCalculator() *ObligationCalculator {
	return &ObligationCalculator{}
}

// Obligations returns the ShopPayments due for the given delivered order.
// Amounts are taken from the order's commission and delivery charge fields;
// the shop name from the order's shop field. Zero-amount obligations are
// skipped. Returns ErrOrderNotDelivered for any other status.
func (c *ObligationCalculator) Obligations(o *order.Order) ([]*payment.ShopPayment, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Status() != order.StatusDelivered {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderNotDelivered, o.ID(), o.Status())
	}

	amounts := map[payment.Type]kernel.Money{
		payment.TypeCommission:     o.Commission(),
		payment.TypeDeliveryCharge: o.DeliveryCharge(),
	}

	orderID := o.ID()
	obligations := make([]*payment.ShopPayment, 0, len(amounts))
	for _, paymentType := range payment.ReconciledTypes() {
		amount := amounts[paymentType]
		if amount.IsZero() {
			continue
		}

		p, err := payment.NewShopPayment(
			kernel.NewUUID(),
			o.ShopName(),
			amount,
			paymentType,
			&orderID,
			"",
		)
		if err != nil {
			return nil, err
		}
		obligations = append(obligations, p)
	}

	return obligations, nil
}
