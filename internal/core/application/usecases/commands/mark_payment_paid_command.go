package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrMarkPaymentPaidCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrMarkPaymentPaidCommandIsNotConstructed = errors.New(
	"MarkPaymentPaidCommand must be created via NewMarkPaymentPaidCommand constructor",
)

// MarkPaymentPaidCommand represents a request to settle a shop payment
// obligation, recording who performed the settlement.
type MarkPaymentPaidCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID
	paidBy    string

	guard guard.ConstructorGuard
}

// NewMarkPaymentPaidCommand creates a command to settle an obligation.
// The settling actor is required for the audit trail.
func NewMarkPaymentPaidCommand(paymentID kernel.UUID, paidBy string) (MarkPaymentPaidCommand, error) {
	paidCommand := MarkPaymentPaidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := paymentID.Validate(); err != nil {
		return MarkPaymentPaidCommand{}, err
	}
	if paidBy == "" {
		return MarkPaymentPaidCommand{}, errs.NewValueIsRequiredError("paidBy")
	}

	paidCommand.paymentID = paymentID
	paidCommand.paidBy = paidBy

	return paidCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPaymentPaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkPaymentPaidCommandIsNotConstructed)
}

// PaymentID returns the unique identifier of the obligation to settle.
func (c MarkPaymentPaidCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

// PaidBy returns who performed the settlement.
func (c MarkPaymentPaidCommand) PaidBy() string {
	return c.paidBy
}
