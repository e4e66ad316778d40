package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

// ErrReconcileSettlementsCommandIsNotConstructed is returned when the
// command was not created via its constructor.
var ErrReconcileSettlementsCommandIsNotConstructed = errors.New(
	"ReconcileSettlementsCommand must be created via NewReconcileSettlementsCommand constructor",
)

// ReconcileSettlementsCommand represents a request to scan delivered orders
// and materialize any missing shop payment obligations. The command carries
// no parameters; reconciliation always covers the full delivered set.
type ReconcileSettlementsCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileSettlementsCommand creates a reconciliation command.
func NewReconcileSettlementsCommand() ReconcileSettlementsCommand {
	return ReconcileSettlementsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ReconcileSettlementsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileSettlementsCommandIsNotConstructed)
}
