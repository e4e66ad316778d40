// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between domain entities and database rows.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Status and delivery boy are indexed because assignment and
// reconciliation both filter on them.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerName    string    `gorm:"type:text;not null"`
	CustomerPhone   string    `gorm:"type:text;not null"`
	CustomerAddress string    `gorm:"type:text;not null"`
	ShopName        string    `gorm:"type:text;not null;index"`

	Items ItemsDTO `gorm:"type:jsonb;not null"`

	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryCharge decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Commission     decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	PaymentStatus string `gorm:"type:text;not null"`
	PaymentMethod string `gorm:"type:text;not null"`

	Status        string     `gorm:"type:text;not null;index"`
	DeliveryBoyID *uuid.UUID `gorm:"type:uuid;index"`
	AssignedAt    *time.Time
	PickedUpAt    *time.Time
	DeliveredAt   *time.Time
	CancelReason  string `gorm:"type:text;not null;default:''"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line inside the items JSONB column.
type ItemDTO struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// ItemsDTO stores the order lines as a single JSONB document. Lines are
// immutable after creation, so there is nothing to gain from a child table.
type ItemsDTO []ItemDTO

// Value implements driver.Valuer, serializing the lines to JSON.
func (items ItemsDTO) Value() (driver.Value, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (items *ItemsDTO) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*items = nil
		return nil
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	default:
		return fmt.Errorf("cannot scan %T into ItemsDTO", value)
	}
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var deliveryBoyID *uuid.UUID
	if id := aggregate.DeliveryBoy(); id != nil {
		raw := id.Bytes()
		deliveryBoyID = &raw
	}

	items := make(ItemsDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Amount(),
		})
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		CustomerName:    aggregate.CustomerName(),
		CustomerPhone:   aggregate.CustomerPhone(),
		CustomerAddress: aggregate.CustomerAddress(),
		ShopName:        aggregate.ShopName(),
		Items:           items,
		TotalAmount:     aggregate.TotalAmount().Amount(),
		DeliveryCharge:  aggregate.DeliveryCharge().Amount(),
		Commission:      aggregate.Commission().Amount(),
		PaymentStatus:   string(aggregate.PaymentStatus()),
		PaymentMethod:   aggregate.PaymentMethod(),
		Status:          string(aggregate.Status()),
		DeliveryBoyID:   deliveryBoyID,
		AssignedAt:      aggregate.AssignedAt(),
		PickedUpAt:      aggregate.PickedUpAt(),
		DeliveredAt:     aggregate.DeliveredAt(),
		CancelReason:    aggregate.CancelReason(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var deliveryBoyID *kernel.UUID
	if dto.DeliveryBoyID != nil {
		boyID, boyErr := kernel.UUIDFromBytes((*dto.DeliveryBoyID)[:])
		if boyErr != nil {
			return nil, boyErr
		}
		deliveryBoyID = &boyID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		unitPrice, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(itemDTO.ProductName, itemDTO.Quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	totalAmount, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}
	deliveryCharge, err := kernel.NewMoney(dto.DeliveryCharge)
	if err != nil {
		return nil, err
	}
	commission, err := kernel.NewMoney(dto.Commission)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.CustomerName, dto.CustomerPhone, dto.CustomerAddress, dto.ShopName,
		items,
		totalAmount, deliveryCharge, commission,
		order.PaymentStatus(dto.PaymentStatus), dto.PaymentMethod,
		order.Status(dto.Status),
		deliveryBoyID,
		dto.AssignedAt, dto.PickedUpAt, dto.DeliveredAt,
		dto.CancelReason,
	)
}
