package payment

import "fmt"

// Type classifies what a shop is owed money for.
type Type string

const (
	// TypeCommission is the platform commission share passed to the shop.
	TypeCommission Type = "commission"

	// TypeDeliveryCharge is the delivery charge collected on the shop's
	// behalf.
	TypeDeliveryCharge Type = "delivery_charge"

	// TypeOther covers manually recorded obligations with no order link.
	TypeOther Type = "other"
)

// ReconciledTypes lists the payment types the settlement reconciler derives
// from delivered orders. TypeOther is excluded: it is only created manually.
func ReconciledTypes() []Type {
	return []Type{TypeCommission, TypeDeliveryCharge}
}

// ToType parses a payment type string from persistence.
func ToType(s string) (Type, error) {
	switch Type(s) {
	case TypeCommission, TypeDeliveryCharge, TypeOther:
		return Type(s), nil
	default:
		return "", fmt.Errorf("invalid payment type: %q", s)
	}
}

// Validate checks that the type is a recognized value.
func (t Type) Validate() error {
	_, err := ToType(string(t))
	return err
}

// String returns the persisted representation of the type.
func (t Type) String() string {
	return string(t)
}

// Status is the settlement state of a shop payment.
type Status string

const (
	// StatusPending means the obligation has been recorded but not paid.
	StatusPending Status = "pending"

	// StatusPaid means the obligation has been settled.
	StatusPaid Status = "paid"
)

// ToStatus parses a payment status string from persistence.
func ToStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPaid:
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid shop payment status: %q", s)
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
