package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderNoLongerAvailable is returned when the offered order is not
	// pending and unassigned anymore, either at the guard read or because a
	// concurrent proposal won the conditional claim.
	ErrOrderNoLongerAvailable = errors.New("order is no longer available for assignment")

	// ErrDeliveryBoyNotAvailable is returned when the delivery boy does not
	// exist or is not accepting proposals.
	ErrDeliveryBoyNotAvailable = errors.New("delivery boy is not available")

	// ErrProposalAlreadyPending is returned when the order already has an
	// unanswered proposal.
	ErrProposalAlreadyPending = errors.New("order already has a pending proposal")
)

// CompensationFailedError reports that creating the proposal record failed
// after the order had been claimed, and the compensating write that should
// have released the claim failed too. The order is left assigned with no
// proposal backing it and needs operator attention.
type CompensationFailedError struct {
	OrderID           kernel.UUID
	DeliveryBoyID     kernel.UUID
	Cause             error
	CompensationCause error
}

func (e *CompensationFailedError) Error() string {
	return fmt.Sprintf(
		"order %s is claimed by %s with no proposal record: proposal creation failed (%v) and releasing the claim failed (%v)",
		e.OrderID, e.DeliveryBoyID, e.Cause, e.CompensationCause,
	)
}

func (e *CompensationFailedError) Unwrap() []error {
	return []error{e.Cause, e.CompensationCause}
}

// ProposeAssignmentCommandHandler runs the two-step assignment protocol.
// The order claim and the proposal record live in different tables and the
// store gives no cross-table transaction to the coordinator, so the handler
// works as a small saga with one unit of work per step:
//
//  1. guard reads, then claim the order with an atomic conditional write
//  2. insert the pending proposal record
//  3. on step 2 failure, release the claim with a compensating conditional
//     write
//
// Concurrent proposals for the same order race on step 1; exactly one wins,
// the rest get ErrOrderNoLongerAvailable.
type ProposeAssignmentCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

// NewProposeAssignmentCommandHandler creates a handler for assignment
// proposals.
func NewProposeAssignmentCommandHandler(uowFactory AssignmentUoWFactory) ProposeAssignmentCommandHandler {
	return ProposeAssignmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the proposal command. On success the order is assigned
// and a pending proposal exists for the delivery boy to answer. On failure
// the claim has been released, unless compensation itself failed, in which
// case a *CompensationFailedError is returned.
func (h *ProposeAssignmentCommandHandler) Handle(ctx context.Context, cmd ProposeAssignmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	claimed, err := h.claimOrder(ctx, cmd, now)
	if err != nil {
		return err
	}

	if err = h.createProposal(ctx, cmd, now); err != nil {
		if compErr := h.releaseClaim(ctx, claimed, cmd); compErr != nil {
			return &CompensationFailedError{
				OrderID:           cmd.OrderID(),
				DeliveryBoyID:     cmd.DeliveryBoyID(),
				Cause:             err,
				CompensationCause: compErr,
			}
		}
		return err
	}

	return nil
}

// claimOrder is saga step 1: verify the delivery boy and the order, then
// flip the order pending -> assigned with a conditional write so that two
// coordinators proposing the same order cannot both succeed.
func (h *ProposeAssignmentCommandHandler) claimOrder(
	ctx context.Context,
	cmd ProposeAssignmentCommand,
	now time.Time,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	boy, err := uow.DeliveryBoyRepository().Get(ctx, cmd.DeliveryBoyID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrDeliveryBoyNotAvailable
	}
	if err != nil {
		return nil, err
	}
	if !boy.IsActive() {
		return nil, ErrDeliveryBoyNotAvailable
	}

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if aggregate.Status() != order.StatusPending || aggregate.DeliveryBoy() != nil {
		return nil, ErrOrderNoLongerAvailable
	}

	_, err = uow.AssignmentRepository().GetPendingByOrder(ctx, cmd.OrderID())
	if err == nil {
		return nil, ErrProposalAlreadyPending
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	if err = aggregate.Assign(cmd.DeliveryBoyID(), now); err != nil {
		return nil, err
	}

	err = orderRepo.UpdateConditional(ctx, aggregate, order.StatusPending, nil)
	if errors.Is(err, errs.ErrPreconditionFailed) {
		return nil, ErrOrderNoLongerAvailable
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// createProposal is saga step 2: insert the pending proposal record. The
// partial unique index on (order_id) WHERE status='pending' backstops the
// one-pending-proposal-per-order rule.
func (h *ProposeAssignmentCommandHandler) createProposal(
	ctx context.Context,
	cmd ProposeAssignmentCommand,
	now time.Time,
) error {
	proposal, err := assignment.NewAssignment(
		kernel.NewUUID(), cmd.OrderID(), cmd.DeliveryBoyID(), cmd.Notes(), now,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AssignmentRepository().Add(ctx, proposal); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// releaseClaim is the compensating write: revert the order to pending, but
// only if it is still assigned to the delivery boy this saga claimed it
// for.
func (h *ProposeAssignmentCommandHandler) releaseClaim(
	ctx context.Context,
	claimed *order.Order,
	cmd ProposeAssignmentCommand,
) error {
	if err := claimed.Unassign(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	boyID := cmd.DeliveryBoyID()
	if err := uow.OrderRepository().UpdateConditional(
		ctx, claimed, order.StatusAssigned, &boyID,
	); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
