package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

// ErrAdvanceOrderStatusCommandIsNotConstructed is returned when the command
// was not created via its constructor.
var ErrAdvanceOrderStatusCommandIsNotConstructed = errors.New(
	"AdvanceOrderStatusCommand must be created via NewAdvanceOrderStatusCommand constructor",
)

// AdvanceOrderStatusCommand represents a request to move an order along the
// happy path to picked_up or delivered. Assignment and cancellation have
// their own commands; this one only advances.
type AdvanceOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status

	guard guard.ConstructorGuard
}

// NewAdvanceOrderStatusCommand creates a command to advance an order's
// lifecycle status. The target must be a recognized status; whether the
// transition is legal from the order's current status is decided by the
// aggregate when the command is handled.
func NewAdvanceOrderStatusCommand(orderID kernel.UUID, target order.Status) (AdvanceOrderStatusCommand, error) {
	statusCommand := AdvanceOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderID(orderID),
		statusCommand.setTarget(target),
	); err != nil {
		return AdvanceOrderStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStatusCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c AdvanceOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested lifecycle status.
func (c AdvanceOrderStatusCommand) Target() order.Status {
	return c.target
}

func (c *AdvanceOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
