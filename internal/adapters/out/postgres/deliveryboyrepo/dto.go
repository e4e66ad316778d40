// Package deliveryboyrepo provides read-only access to delivery boy rows.
// The rows are owned by an external personnel system; this engine only
// looks delivery boys up when proposing assignments.
package deliveryboyrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/deliveryboy"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryBoyDTO represents the database structure of a delivery boy row.
type DeliveryBoyDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"type:text;not null"`
	Phone           string    `gorm:"type:text;not null"`
	VehicleType     string    `gorm:"type:text;not null;default:''"`
	VehicleNumber   string    `gorm:"type:text;not null;default:''"`
	IsActive        bool      `gorm:"not null;default:true;index"`
	CurrentLocation string    `gorm:"type:text;not null;default:''"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming convention.
func (DeliveryBoyDTO) TableName() string {
	return "delivery_boys"
}

func toDomain(dto DeliveryBoyDTO) (*deliveryboy.DeliveryBoy, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return deliveryboy.RestoreDeliveryBoy(
		id,
		dto.Name, dto.Phone, dto.VehicleType, dto.VehicleNumber,
		dto.IsActive,
		dto.CurrentLocation,
	)
}
