package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ErrAssignmentNotFound is returned when a command references a proposal
// that does not exist.
var ErrAssignmentNotFound = errors.New("assignment not found")

// RespondToAssignmentCommandHandler records a delivery boy's answer to a
// pending proposal. Accepting only stamps the response: the order was
// already claimed when the proposal was made. Rejecting additionally
// releases the claim so the order re-enters the assignable pool.
type RespondToAssignmentCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

// NewRespondToAssignmentCommandHandler creates a handler for proposal
// responses.
func NewRespondToAssignmentCommandHandler(uowFactory AssignmentUoWFactory) RespondToAssignmentCommandHandler {
	return RespondToAssignmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the response command. Answering an already answered
// proposal fails with assignment.ErrAlreadyResponded; responses are
// immutable once recorded.
func (h *RespondToAssignmentCommandHandler) Handle(ctx context.Context, cmd RespondToAssignmentCommand) error {
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

	assignmentRepo := uow.AssignmentRepository()

	proposal, err := assignmentRepo.Get(ctx, cmd.AssignmentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrAssignmentNotFound
	}
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	switch cmd.Decision() {
	case assignment.StatusAccepted:
		err = proposal.Accept(now)
	case assignment.StatusRejected:
		err = proposal.Reject(now)
	}
	if err != nil {
		return err
	}

	if err = assignmentRepo.Update(ctx, proposal); err != nil {
		return err
	}

	if cmd.Decision() == assignment.StatusRejected {
		if err = h.releaseOrder(ctx, uow, proposal); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// releaseOrder reverts the rejected proposal's order to pending so it can
// be offered again. The write is conditional on the order still being
// assigned to the rejecting delivery boy; if an operator cancelled the
// order in the meantime the release is skipped.
func (h *RespondToAssignmentCommandHandler) releaseOrder(
	ctx context.Context,
	uow AssignmentUoW,
	proposal *assignment.Assignment,
) error {
	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, proposal.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	boyID := proposal.DeliveryBoy()
	if aggregate.DeliveryBoy() == nil || !aggregate.DeliveryBoy().IsEqual(boyID) {
		return nil
	}

	if err = aggregate.Unassign(); err != nil {
		return nil
	}

	err = orderRepo.UpdateConditional(ctx, aggregate, order.StatusAssigned, &boyID)
	if errors.Is(err, errs.ErrPreconditionFailed) {
		return nil
	}
	return err
}
