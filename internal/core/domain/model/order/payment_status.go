package order

import "fmt"

// PaymentStatus tracks whether the customer has paid for the order.
// It is independent of the delivery lifecycle status.
type PaymentStatus string

const (
	// PaymentPending means the customer payment has not been collected yet.
	PaymentPending PaymentStatus = "pending"

	// PaymentPaid means the customer payment has been collected.
	PaymentPaid PaymentStatus = "paid"
)

// ToPaymentStatus parses a payment status string from persistence.
func ToPaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid:
		return PaymentStatus(s), nil
	default:
		return "", fmt.Errorf("invalid payment status: %q", s)
	}
}

// Validate checks that the payment status is a recognized value.
func (p PaymentStatus) Validate() error {
	_, err := ToPaymentStatus(string(p))
	return err
}

// String returns the persisted representation of the payment status.
func (p PaymentStatus) String() string {
	return string(p)
}
