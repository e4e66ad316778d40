// Package paymentrepo provides data transfer objects and mapping functions
// for shop payment persistence.
package paymentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShopPaymentDTO represents the database structure for persisting shop
// payment obligations. The unique index on (order_id, payment_type) is the
// reconciliation idempotency key; rows with a NULL order_id (manual
// obligations) never collide on it.
type ShopPaymentDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ShopName    string          `gorm:"type:text;not null;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentType string          `gorm:"type:text;not null;uniqueIndex:idx_shop_payments_order_type"`
	OrderID     *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_shop_payments_order_type"`
	Status      string          `gorm:"type:text;not null;index"`
	PaidBy      string          `gorm:"type:text;not null;default:''"`
	PaidAt      *time.Time
	Notes       string `gorm:"type:text;not null;default:''"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming convention.
func (ShopPaymentDTO) TableName() string {
	return "shop_payments"
}

func fromDomain(aggregate *payment.ShopPayment) ShopPaymentDTO {
	var orderID *uuid.UUID
	if id := aggregate.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return ShopPaymentDTO{
		ID:          aggregate.ID().Bytes(),
		ShopName:    aggregate.ShopName(),
		Amount:      aggregate.Amount().Amount(),
		PaymentType: string(aggregate.PaymentType()),
		OrderID:     orderID,
		Status:      string(aggregate.Status()),
		PaidBy:      aggregate.PaidBy(),
		PaidAt:      aggregate.PaidAt(),
		Notes:       aggregate.Notes(),
	}
}

func toDomain(dto ShopPaymentDTO) (*payment.ShopPayment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		ref, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &ref
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	return payment.RestoreShopPayment(
		id,
		dto.ShopName,
		amount,
		payment.Type(dto.PaymentType),
		orderID,
		payment.Status(dto.Status),
		dto.PaidBy,
		dto.PaidAt,
		dto.Notes,
	)
}
