package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item was not created through
// the NewItem factory function.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a single product line on an order: a product name, a positive
// quantity, and the unit price agreed at order time. Items are value
// objects; changing a line means replacing it.
type Item struct {
	productName string
	quantity    int
	unitPrice   kernel.Money

	isConstructed bool
}

// NewItem creates a validated order line.
//
// Validation rules:
//   - productName must not be empty
//   - quantity must be positive
func NewItem(productName string, quantity int, unitPrice kernel.Money) (Item, error) {
	if productName == "" {
		return Item{}, errs.NewValueIsRequiredError("productName")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	return Item{
		productName:   productName,
		quantity:      quantity,
		unitPrice:     unitPrice,
		isConstructed: true,
	}, nil
}

// Validate ensures the Item was created via NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ProductName returns the product name of the line.
func (i Item) ProductName() string {
	return i.productName
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns unit price multiplied by quantity.
func (i Item) Subtotal() kernel.Money {
	return i.unitPrice.Mul(i.quantity)
}
