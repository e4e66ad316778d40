package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
)

// ErrOrderNotFound is returned when a command references an order that does
// not exist.
var ErrOrderNotFound = errors.New("order not found")

// AdvanceOrderStatusCommandHandler handles lifecycle progression of an
// order. The aggregate decides transition legality and stamps the pickup
// and delivery timestamps exactly once, so repeating a request is a no-op
// rather than an error.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdvanceOrderStatusCommandHandler creates a handler for order status
// progression.
func NewAdvanceOrderStatusCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status advance command. Loads the aggregate,
// applies the transition, and persists the result in one transaction.
func (h *AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) error {
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

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	if err = aggregate.AdvanceTo(cmd.Target(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
