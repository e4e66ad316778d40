package assignment

import "fmt"

// Status is the response state of an assignment proposal.
type Status string

const (
	// StatusPending means the delivery boy has not responded yet.
	StatusPending Status = "pending"

	// StatusAccepted means the delivery boy confirmed the proposal.
	StatusAccepted Status = "accepted"

	// StatusRejected means the delivery boy declined the proposal.
	StatusRejected Status = "rejected"
)

// ToStatus parses a proposal status string from persistence.
func ToStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusAccepted, StatusRejected:
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid assignment status: %q", s)
	}
}

// Validate checks that the status is a recognized value.
func (s Status) Validate() error {
	_, err := ToStatus(string(s))
	return err
}

// String returns the persisted representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsResponded reports whether the proposal has been answered. Responded
// proposals are immutable.
func (s Status) IsResponded() bool {
	return s == StatusAccepted || s == StatusRejected
}
