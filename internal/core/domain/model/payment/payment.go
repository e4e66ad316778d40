package payment

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrShopPaymentIsNotConstructed is returned when a ShopPayment was not
	// created through NewShopPayment or RestoreShopPayment.
	ErrShopPaymentIsNotConstructed = errors.New(
		"ShopPayment must be created via NewShopPayment or RestoreShopPayment",
	)

	// ErrAlreadySettled is the idempotency guard on settlement: marking a
	// paid obligation paid again is refused.
	ErrAlreadySettled = errors.New("shop payment is already settled")
)

// ShopPayment is one payable or paid obligation from the platform to a
// partner shop. Obligations derived from orders carry the order reference
// and are unique per (order, type); manually recorded obligations use
// TypeOther with no order link.
type ShopPayment struct {
	id          kernel.UUID
	shopName    string
	amount      kernel.Money
	paymentType Type
	orderID     *kernel.UUID
	status      Status
	paidBy      string
	paidAt      *time.Time
	notes       string

	isConstructed bool
}

// NewShopPayment creates a pending obligation.
//
// Validation rules:
//   - shopName is required
//   - paymentType must be a recognized value
//   - order-derived types (commission, delivery_charge) require an order
//     reference
func NewShopPayment(
	id kernel.UUID,
	shopName string,
	amount kernel.Money,
	paymentType Type,
	orderID *kernel.UUID,
	notes string,
) (*ShopPayment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if shopName == "" {
		return nil, errs.NewValueIsRequiredError("shopName")
	}
	if err := paymentType.Validate(); err != nil {
		return nil, err
	}
	if paymentType != TypeOther && orderID == nil {
		return nil, errs.NewValueIsRequiredError("orderID")
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}

	return &ShopPayment{
		id:            id,
		shopName:      shopName,
		amount:        amount,
		paymentType:   paymentType,
		orderID:       orderID,
		status:        StatusPending,
		notes:         notes,
		isConstructed: true,
	}, nil
}

// RestoreShopPayment reconstructs a ShopPayment from persistence.
func RestoreShopPayment(
	id kernel.UUID,
	shopName string,
	amount kernel.Money,
	paymentType Type,
	orderID *kernel.UUID,
	status Status,
	paidBy string,
	paidAt *time.Time,
	notes string,
) (*ShopPayment, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if status == StatusPaid && paidAt == nil {
		return nil, fmt.Errorf("paid shop payment must have a paid_at timestamp")
	}

	p, err := NewShopPayment(id, shopName, amount, paymentType, orderID, notes)
	if err != nil {
		return nil, err
	}

	p.status = status
	p.paidBy = paidBy
	p.paidAt = paidAt
	return p, nil
}

// Validate ensures the ShopPayment was created through a factory function.
func (p *ShopPayment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrShopPaymentIsNotConstructed
	}
	return nil
}

// ID returns the payment's unique identifier.
func (p *ShopPayment) ID() kernel.UUID { return p.id }

// ShopName returns the shop the obligation is owed to.
func (p *ShopPayment) ShopName() string { return p.shopName }

// Amount returns the obligation amount.
func (p *ShopPayment) Amount() kernel.Money { return p.amount }

// PaymentType returns what the obligation is for.
func (p *ShopPayment) PaymentType() Type { return p.paymentType }

// OrderID returns the linked order, or nil for manual obligations.
func (p *ShopPayment) OrderID() *kernel.UUID { return p.orderID }

// Status returns the settlement state.
func (p *ShopPayment) Status() Status { return p.status }

// PaidBy returns who settled the obligation, empty while pending.
func (p *ShopPayment) PaidBy() string { return p.paidBy }

// PaidAt returns when the obligation was settled, or nil while pending.
func (p *ShopPayment) PaidAt() *time.Time { return p.paidAt }

// Notes returns the free-text notes.
func (p *ShopPayment) Notes() string { return p.notes }

// IsPending reports whether the obligation is still owed.
func (p *ShopPayment) IsPending() bool { return p.status == StatusPending }

// MarkPaid settles the obligation, stamping who settled it and when.
// Fails with ErrAlreadySettled if the payment is already paid.
func (p *ShopPayment) MarkPaid(paidBy string, at time.Time) error {
	if p.status == StatusPaid {
		return fmt.Errorf("%w: %s", ErrAlreadySettled, p.id)
	}
	if paidBy == "" {
		return errs.NewValueIsRequiredError("paidBy")
	}

	p.status = StatusPaid
	p.paidBy = paidBy
	p.paidAt = &at
	return nil
}
