package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrRespondToAssignmentCommandIsNotConstructed is returned when the command
// was not created via its constructor.
var ErrRespondToAssignmentCommandIsNotConstructed = errors.New(
	"RespondToAssignmentCommand must be created via NewRespondToAssignmentCommand constructor",
)

// RespondToAssignmentCommand represents a delivery boy's answer to a
// pending proposal: accepted or rejected.
type RespondToAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	decision     assignment.Status

	guard guard.ConstructorGuard
}

// NewRespondToAssignmentCommand creates a command to answer a proposal.
// The decision must be StatusAccepted or StatusRejected.
func NewRespondToAssignmentCommand(
	assignmentID kernel.UUID,
	decision assignment.Status,
) (RespondToAssignmentCommand, error) {
	respondCommand := RespondToAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		respondCommand.setAssignmentID(assignmentID),
		respondCommand.setDecision(decision),
	); err != nil {
		return RespondToAssignmentCommand{}, err
	}

	return respondCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RespondToAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrRespondToAssignmentCommandIsNotConstructed)
}

// AssignmentID returns the unique identifier of the proposal being
// answered.
func (c RespondToAssignmentCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// Decision returns the delivery boy's answer.
func (c RespondToAssignmentCommand) Decision() assignment.Status {
	return c.decision
}

func (c *RespondToAssignmentCommand) setAssignmentID(assignmentID kernel.UUID) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}

	c.assignmentID = assignmentID
	return nil
}

func (c *RespondToAssignmentCommand) setDecision(decision assignment.Status) error {
	if decision != assignment.StatusAccepted && decision != assignment.StatusRejected {
		return errs.NewValueIsInvalidErrorWithCause(
			"decision",
			errors.New("decision must be accepted or rejected"),
		)
	}

	c.decision = decision
	return nil
}
