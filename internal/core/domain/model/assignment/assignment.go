package assignment

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrAssignmentIsNotConstructed is returned when an Assignment was not
	// created through NewAssignment or RestoreAssignment.
	ErrAssignmentIsNotConstructed = errors.New(
		"Assignment must be created via NewAssignment or RestoreAssignment",
	)

	// ErrAlreadyResponded is returned when accepting or rejecting a
	// proposal that has already been answered. Responded proposals are
	// immutable; a new proposal must be created instead.
	ErrAlreadyResponded = errors.New("assignment has already been responded to")
)

// Assignment is one proposal to deliver a specific order by a specific
// delivery boy. It records when it was proposed and, once the delivery boy
// answers, the decision and when it was taken.
type Assignment struct {
	id            kernel.UUID
	orderID       kernel.UUID
	deliveryBoyID kernel.UUID
	status        Status
	notes         string
	assignedAt    time.Time
	respondedAt   *time.Time

	isConstructed bool
}

// NewAssignment creates a pending proposal for the given order and delivery
// boy, stamped with the proposal time.
func NewAssignment(id, orderID, deliveryBoyID kernel.UUID, notes string, assignedAt time.Time) (*Assignment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		deliveryBoyID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Assignment{
		id:            id,
		orderID:       orderID,
		deliveryBoyID: deliveryBoyID,
		status:        StatusPending,
		notes:         notes,
		assignedAt:    assignedAt,
		isConstructed: true,
	}, nil
}

// RestoreAssignment reconstructs an Assignment from persistence.
func RestoreAssignment(
	id, orderID, deliveryBoyID kernel.UUID,
	status Status,
	notes string,
	assignedAt time.Time,
	respondedAt *time.Time,
) (*Assignment, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if status.IsResponded() && respondedAt == nil {
		return nil, fmt.Errorf("%s assignment must have a responded_at timestamp", status)
	}

	a, err := NewAssignment(id, orderID, deliveryBoyID, notes, assignedAt)
	if err != nil {
		return nil, err
	}

	a.status = status
	a.respondedAt = respondedAt
	return a, nil
}

// Validate ensures the Assignment was created through a factory function.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID { return a.id }

// OrderID returns the proposed order.
func (a *Assignment) OrderID() kernel.UUID { return a.orderID }

// DeliveryBoy returns the proposed delivery boy.
func (a *Assignment) DeliveryBoy() kernel.UUID { return a.deliveryBoyID }

// Status returns the proposal's response state.
func (a *Assignment) Status() Status { return a.status }

// Notes returns the free-text notes attached by the proposer.
func (a *Assignment) Notes() string { return a.notes }

// AssignedAt returns when the proposal was made.
func (a *Assignment) AssignedAt() time.Time { return a.assignedAt }

// RespondedAt returns when the proposal was answered, or nil while pending.
func (a *Assignment) RespondedAt() *time.Time { return a.respondedAt }

// IsPending reports whether the proposal is still awaiting a response.
func (a *Assignment) IsPending() bool { return a.status == StatusPending }

// Accept records the delivery boy's confirmation. Fails with
// ErrAlreadyResponded if the proposal has been answered.
func (a *Assignment) Accept(at time.Time) error {
	return a.respond(StatusAccepted, at)
}

// Reject records the delivery boy's refusal. Fails with ErrAlreadyResponded
// if the proposal has been answered.
func (a *Assignment) Reject(at time.Time) error {
	return a.respond(StatusRejected, at)
}

func (a *Assignment) respond(decision Status, at time.Time) error {
	if a.status.IsResponded() {
		return fmt.Errorf("%w: already %s", ErrAlreadyResponded, a.status)
	}

	a.status = decision
	a.respondedAt = &at
	return nil
}
