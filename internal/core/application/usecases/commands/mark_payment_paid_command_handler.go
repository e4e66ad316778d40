package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
)

// ErrPaymentNotFound is returned when a command references a shop payment
// that does not exist.
var ErrPaymentNotFound = errors.New("shop payment not found")

// MarkPaymentPaidCommandHandler settles a shop payment obligation. Settling
// an already paid obligation fails with payment.ErrAlreadySettled; paid
// rows are immutable.
type MarkPaymentPaidCommandHandler struct {
	uowFactory PaymentUoWFactory
}

// NewMarkPaymentPaidCommandHandler creates a handler for payment
// settlement.
func NewMarkPaymentPaidCommandHandler(uowFactory PaymentUoWFactory) MarkPaymentPaidCommandHandler {
	return MarkPaymentPaidCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the settlement command.
func (h *MarkPaymentPaidCommandHandler) Handle(ctx context.Context, cmd MarkPaymentPaidCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paymentRepo := uow.ShopPaymentRepository()

	obligation, err := paymentRepo.Get(ctx, cmd.PaymentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrPaymentNotFound
	}
	if err != nil {
		return err
	}

	if err = obligation.MarkPaid(cmd.PaidBy(), time.Now().UTC()); err != nil {
		return err
	}

	if err = paymentRepo.Update(ctx, obligation); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
