package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrProposeAssignmentCommandIsNotConstructed is returned when the command
// was not created via its constructor.
var ErrProposeAssignmentCommandIsNotConstructed = errors.New(
	"ProposeAssignmentCommand must be created via NewProposeAssignmentCommand constructor",
)

// ProposeAssignmentCommand represents a request to offer an order to a
// delivery boy. The offer is two-step: the order is claimed immediately,
// the delivery boy confirms or refuses later.
type ProposeAssignmentCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	deliveryBoyID kernel.UUID
	notes         string

	guard guard.ConstructorGuard
}

// NewProposeAssignmentCommand creates a command to propose an assignment.
func NewProposeAssignmentCommand(
	orderID, deliveryBoyID kernel.UUID,
	notes string,
) (ProposeAssignmentCommand, error) {
	proposeCommand := ProposeAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		proposeCommand.setOrderID(orderID),
		proposeCommand.setDeliveryBoyID(deliveryBoyID),
	); err != nil {
		return ProposeAssignmentCommand{}, err
	}

	proposeCommand.notes = notes

	return proposeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ProposeAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrProposeAssignmentCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order being offered.
func (c ProposeAssignmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DeliveryBoyID returns the delivery boy the order is offered to.
func (c ProposeAssignmentCommand) DeliveryBoyID() kernel.UUID {
	return c.deliveryBoyID
}

// Notes returns free-text instructions attached to the proposal.
func (c ProposeAssignmentCommand) Notes() string {
	return c.notes
}

func (c *ProposeAssignmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ProposeAssignmentCommand) setDeliveryBoyID(deliveryBoyID kernel.UUID) error {
	if err := deliveryBoyID.Validate(); err != nil {
		return err
	}

	c.deliveryBoyID = deliveryBoyID
	return nil
}
