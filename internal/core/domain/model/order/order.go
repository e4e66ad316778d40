package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory functions.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for a single delivery order. It manages the
// lifecycle from creation through assignment, pickup, and delivery, and
// carries the monetary fields the settlement reconciler derives shop
// obligations from.
//
// Invariants:
//   - a delivery boy is referenced iff status is assigned, picked_up, or delivered
//   - picked_up_at and delivered_at are stamped exactly once
//   - status transitions follow the edges defined in status.go
//   - orders are never deleted, only terminally transitioned
type Order struct {
	id kernel.UUID

	customerName    string
	customerPhone   string
	customerAddress string
	shopName        string

	items []Item

	totalAmount    kernel.Money
	deliveryCharge kernel.Money
	commission     kernel.Money

	paymentStatus PaymentStatus
	paymentMethod string

	status         Status
	deliveryBoyID  *kernel.UUID
	assignedAt     *time.Time
	pickedUpAt     *time.Time
	deliveredAt    *time.Time
	cancelReason   string

	isConstructed bool
}

// NewOrder creates a new Order in pending status with no delivery boy.
//
// Validation rules:
//   - id must be a valid UUID
//   - customerName and customerPhone identify the customer and are required
//   - shopName is required (settlement obligations are keyed by it)
//   - at least one item, each created via NewItem
//   - totalAmount is non-negative by Money construction
func NewOrder(
	id kernel.UUID,
	customerName, customerPhone, customerAddress, shopName string,
	items []Item,
	totalAmount, deliveryCharge, commission kernel.Money,
	paymentMethod string,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		paymentStatus: PaymentPending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customerName, customerPhone, customerAddress),
		o.setShopName(shopName),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.totalAmount = totalAmount
	o.deliveryCharge = deliveryCharge
	o.commission = commission
	o.paymentMethod = paymentMethod

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. It re-checks the
// status/delivery-boy consistency rule so corrupt rows are rejected at the
// repository boundary.
func RestoreOrder(
	id kernel.UUID,
	customerName, customerPhone, customerAddress, shopName string,
	items []Item,
	totalAmount, deliveryCharge, commission kernel.Money,
	paymentStatus PaymentStatus, paymentMethod string,
	status Status,
	deliveryBoyID *kernel.UUID,
	assignedAt, pickedUpAt, deliveredAt *time.Time,
	cancelReason string,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveDeliveryBoy(deliveryBoyID != nil); err != nil {
		return nil, err
	}
	if err := paymentStatus.Validate(); err != nil {
		return nil, err
	}

	o, err := NewOrder(
		id,
		customerName, customerPhone, customerAddress, shopName,
		items,
		totalAmount, deliveryCharge, commission,
		paymentMethod,
	)
	if err != nil {
		return nil, err
	}

	o.paymentStatus = paymentStatus
	o.status = status
	o.deliveryBoyID = deliveryBoyID
	o.assignedAt = assignedAt
	o.pickedUpAt = pickedUpAt
	o.deliveredAt = deliveredAt
	o.cancelReason = cancelReason

	return o, nil
}

// Validate ensures the Order was created through a factory function.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// CustomerName returns the customer's name.
func (o *Order) CustomerName() string { return o.customerName }

// CustomerPhone returns the customer's phone number.
func (o *Order) CustomerPhone() string { return o.customerPhone }

// CustomerAddress returns the delivery address.
func (o *Order) CustomerAddress() string { return o.customerAddress }

// ShopName returns the partner shop the order was placed with.
func (o *Order) ShopName() string { return o.shopName }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount returns the total order amount.
func (o *Order) TotalAmount() kernel.Money { return o.totalAmount }

// DeliveryCharge returns the delivery charge owed to the shop on delivery.
func (o *Order) DeliveryCharge() kernel.Money { return o.deliveryCharge }

// Commission returns the commission owed to the shop on delivery.
func (o *Order) Commission() kernel.Money { return o.commission }

// PaymentStatus returns the customer payment status.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// PaymentMethod returns the customer payment method.
func (o *Order) PaymentMethod() string { return o.paymentMethod }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// DeliveryBoy returns the assigned delivery boy's ID, or nil if unassigned.
func (o *Order) DeliveryBoy() *kernel.UUID { return o.deliveryBoyID }

// AssignedAt returns when the order was assigned, or nil.
func (o *Order) AssignedAt() *time.Time { return o.assignedAt }

// PickedUpAt returns when the order was picked up, or nil.
func (o *Order) PickedUpAt() *time.Time { return o.pickedUpAt }

// DeliveredAt returns when the order was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// CancelReason returns the free-text cancellation reason, empty unless the
// order was cancelled.
func (o *Order) CancelReason() string { return o.cancelReason }

// Assign moves a pending order to assigned, referencing the delivery boy and
// stamping assigned_at. Transitions into assigned are owned by the
// assignment coordinator; AdvanceTo rejects the assigned target so the
// delivery boy reference can never be skipped.
func (o *Order) Assign(deliveryBoyID kernel.UUID, at time.Time) error {
	if err := deliveryBoyID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(StatusAssigned)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveryBoyID = &deliveryBoyID
	o.assignedAt = &at
	return nil
}

// Unassign reverts an assigned order back to pending, clearing the delivery
// boy reference and the assignment timestamp. Used by the coordinator's
// compensating write and by assignment rejection.
func (o *Order) Unassign() error {
	if o.status != StatusAssigned {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, StatusPending)
	}

	o.status = StatusPending
	o.deliveryBoyID = nil
	o.assignedAt = nil
	return nil
}

// AdvanceTo moves the order along the happy path to picked_up or delivered,
// stamping the corresponding timestamp exactly once.
//
// Re-invoking with a target the order is already in is a no-op, not an
// error, so flaky observer actions can retry safely. The assigned target is
// rejected here: it requires a delivery boy and belongs to Assign.
func (o *Order) AdvanceTo(target Status, at time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if o.status == target {
		return nil
	}

	if target != StatusPickedUp && target != StatusDelivered {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, target)
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	switch newStatus {
	case StatusPickedUp:
		if o.pickedUpAt == nil {
			o.pickedUpAt = &at
		}
	case StatusDelivered:
		if o.deliveredAt == nil {
			o.deliveredAt = &at
		}
	}

	return nil
}

// Cancel aborts the order. Permitted from pending and assigned only; once
// the goods are picked up they are in transit and cancellation is refused
// with ErrTerminalState. Cancelling an assigned order clears the delivery
// boy reference to preserve the status/reference invariant.
func (o *Order) Cancel(reason string) error {
	switch o.status {
	case StatusPending, StatusAssigned:
	case StatusPickedUp, StatusDelivered, StatusCancelled:
		return fmt.Errorf("%w: cannot cancel %s order", ErrTerminalState, o.status)
	default:
		return fmt.Errorf("%w: cannot cancel %s order", ErrInvalidTransition, o.status)
	}

	o.status = StatusCancelled
	o.deliveryBoyID = nil
	o.cancelReason = reason
	return nil
}

// MarkCustomerPaid records that the customer payment has been collected.
// Idempotent.
func (o *Order) MarkCustomerPaid() {
	o.paymentStatus = PaymentPaid
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(name, phone, address string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	if phone == "" {
		return errs.NewValueIsRequiredError("customerPhone")
	}

	o.customerName = name
	o.customerPhone = phone
	o.customerAddress = address
	return nil
}

func (o *Order) setShopName(shopName string) error {
	if shopName == "" {
		return errs.NewValueIsRequiredError("shopName")
	}
	o.shopName = shopName
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}
