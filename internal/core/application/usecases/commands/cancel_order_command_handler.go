package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/pkg/errs"
)

// CancelOrderCommandHandler handles order cancellation. Cancelling is
// permitted from pending and assigned; once goods are picked up the
// aggregate refuses. Cancelling an assigned order also rejects any pending
// proposal for it, so the delivery boy's worklist does not keep offering a
// dead order.
type CancelOrderCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory AssignmentUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command in a single transaction.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	if err = aggregate.Cancel(cmd.Reason()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = h.rejectPendingProposal(ctx, uow, cmd); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

func (h *CancelOrderCommandHandler) rejectPendingProposal(
	ctx context.Context,
	uow AssignmentUoW,
	cmd CancelOrderCommand,
) error {
	assignmentRepo := uow.AssignmentRepository()

	proposal, err := assignmentRepo.GetPendingByOrder(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err = proposal.Reject(time.Now().UTC()); err != nil {
		// Responded in between; the partial unique index guarantees no
		// other pending proposal exists.
		if errors.Is(err, assignment.ErrAlreadyResponded) {
			return nil
		}
		return err
	}

	return assignmentRepo.Update(ctx, proposal)
}
