package order

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when a requested status change does
	// not follow an edge of the lifecycle state machine.
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrTerminalState is returned when an operation is attempted on an
	// order whose physical progress forbids it, such as cancelling an order
	// that has already been picked up.
	ErrTerminalState = errors.New("order is in a terminal or irreversible state")
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	pending ──> assigned ──> picked_up ──> delivered
//	   │            │
//	   └────────────┴──> cancelled
//
// delivered and cancelled are terminal.
type Status string

const (
	// StatusPending is the initial status: the order awaits assignment.
	StatusPending Status = "pending"

	// StatusAssigned indicates a delivery boy has been proposed for the
	// order and references it.
	StatusAssigned Status = "assigned"

	// StatusPickedUp indicates the goods are in transit. Cancellation is
	// refused from this point on.
	StatusPickedUp Status = "picked_up"

	// StatusDelivered is the terminal happy-path status. Delivered orders
	// feed the settlement reconciler.
	StatusDelivered Status = "delivered"

	// StatusCancelled is the terminal abort status.
	StatusCancelled Status = "cancelled"
)

// validStatuses lists every recognized status; remember to extend it when
// adding new statuses.
var validStatuses = map[Status]struct{}{
	StatusPending:   {},
	StatusAssigned:  {},
	StatusPickedUp:  {},
	StatusDelivered: {},
	StatusCancelled: {},
}

// transitions enumerates the permitted edges of the state machine.
var transitions = map[Status][]Status{
	StatusPending:  {StatusAssigned, StatusCancelled},
	StatusAssigned: {StatusPickedUp, StatusCancelled},
	StatusPickedUp: {StatusDelivered},
}

// ToStatus parses a status string received from persistence or a
// collaborator. Returns an error for unrecognized values.
func ToStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := validStatuses[status]; !ok {
		return "", fmt.Errorf("%w: %q is not a valid order status", ErrInvalidTransition, s)
	}
	return status, nil
}

// Validate checks that the status is one of the recognized values.
func (s Status) Validate() error {
	if _, ok := validStatuses[s]; !ok {
		return fmt.Errorf("%w: %q is not a valid order status", ErrInvalidTransition, string(s))
	}
	return nil
}

// String returns the persisted representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether target is reachable from s along a single
// edge of the state machine.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target if the edge s -> target exists, or
// ErrInvalidTransition otherwise. Callers that want idempotent re-invocation
// must check s == target before calling.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}
	if !s.CanTransitionTo(target) {
		return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}
	return target, nil
}

// ValidateCanHaveDeliveryBoy enforces the consistency rule between status
// and delivery boy reference: assigned, picked_up, and delivered orders must
// reference a delivery boy; pending and cancelled orders must not.
func (s Status) ValidateCanHaveDeliveryBoy(hasDeliveryBoy bool) error {
	requires := s == StatusAssigned || s == StatusPickedUp || s == StatusDelivered
	if hasDeliveryBoy && !requires {
		return fmt.Errorf("%w: %s order must not reference a delivery boy", ErrInvalidTransition, s)
	}
	if !hasDeliveryBoy && requires {
		return fmt.Errorf("%w: %s order must reference a delivery boy", ErrInvalidTransition, s)
	}
	return nil
}
