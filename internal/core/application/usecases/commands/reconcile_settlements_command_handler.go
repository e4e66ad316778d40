package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// ReconcileSettlementsCommandHandler materializes shop payment obligations
// for delivered orders. Each obligation is inserted with an
// ON CONFLICT DO NOTHING upsert keyed on (order_id, payment_type), so the
// scan is idempotent: re-running it never duplicates an obligation, even
// one that was settled in the meantime.
type ReconcileSettlementsCommandHandler struct {
	uowFactory SettlementUoWFactory
	calculator *services.ObligationCalculator
}

// NewReconcileSettlementsCommandHandler creates a handler for settlement
// reconciliation.
func NewReconcileSettlementsCommandHandler(uowFactory SettlementUoWFactory) ReconcileSettlementsCommandHandler {
	return ReconcileSettlementsCommandHandler{
		uowFactory: uowFactory,
		calculator: services.NewObligationCalculator(),
	}
}

// Handle processes the reconciliation command and reports how many new
// obligations were created by this run.
func (h *ReconcileSettlementsCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcileSettlementsCommand,
) (created int, err error) {
	if err = cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	delivered, err := uow.OrderRepository().GetAllInStatus(ctx, order.StatusDelivered)
	if err != nil {
		return 0, err
	}

	paymentRepo := uow.ShopPaymentRepository()

	for _, deliveredOrder := range delivered {
		obligations, err := h.calculator.Obligations(deliveredOrder)
		if err != nil {
			return 0, err
		}

		for _, obligation := range obligations {
			inserted, err := paymentRepo.Upsert(ctx, obligation)
			if err != nil {
				return 0, err
			}
			if inserted {
				created++
			}
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return created, nil
}
