package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new fulfillment
// order. Carries the customer contact details, the shop it was placed with,
// the order lines, and the monetary fields settlement later derives shop
// obligations from.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerName    string
	customerPhone   string
	customerAddress string
	shopName        string
	items           []order.Item
	totalAmount     kernel.Money
	deliveryCharge  kernel.Money
	commission      kernel.Money
	paymentMethod   string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the order ID is valid, the customer and shop are named, and
// at least one order line is present.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerName, customerPhone, customerAddress, shopName string,
	items []order.Item,
	totalAmount, deliveryCharge, commission kernel.Money,
	paymentMethod string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomer(customerName, customerPhone, customerAddress),
		orderCommand.setShopName(shopName),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	orderCommand.totalAmount = totalAmount
	orderCommand.deliveryCharge = deliveryCharge
	orderCommand.commission = commission
	orderCommand.paymentMethod = paymentMethod

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerName returns the customer's name.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// CustomerPhone returns the customer's phone number.
func (c CreateOrderCommand) CustomerPhone() string {
	return c.customerPhone
}

// CustomerAddress returns the delivery address.
func (c CreateOrderCommand) CustomerAddress() string {
	return c.customerAddress
}

// ShopName returns the partner shop the order was placed with.
func (c CreateOrderCommand) ShopName() string {
	return c.shopName
}

// Items returns the order lines.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

// TotalAmount returns the total order amount.
func (c CreateOrderCommand) TotalAmount() kernel.Money {
	return c.totalAmount
}

// DeliveryCharge returns the delivery charge owed to the shop on delivery.
func (c CreateOrderCommand) DeliveryCharge() kernel.Money {
	return c.deliveryCharge
}

// Commission returns the commission owed to the shop on delivery.
func (c CreateOrderCommand) Commission() kernel.Money {
	return c.commission
}

// PaymentMethod returns the customer payment method.
func (c CreateOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomer(name, phone, address string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	if phone == "" {
		return errs.NewValueIsRequiredError("customerPhone")
	}

	c.customerName = name
	c.customerPhone = phone
	c.customerAddress = address
	return nil
}

func (c *CreateOrderCommand) setShopName(shopName string) error {
	if shopName == "" {
		return errs.NewValueIsRequiredError("shopName")
	}

	c.shopName = shopName
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = items
	return nil
}
