package deliveryboyrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/deliveryboy"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryBoyRepository implements DeliveryBoyRepository using GORM.
// All operations are reads; the engine never writes delivery boy rows.
type GormDeliveryBoyRepository struct {
	db *gorm.DB
}

// NewGormDeliveryBoyRepository creates a new GORM delivery boy repository.
func NewGormDeliveryBoyRepository(db *gorm.DB) *GormDeliveryBoyRepository {
	return &GormDeliveryBoyRepository{db: db}
}

// Get retrieves a delivery boy by ID.
func (r *GormDeliveryBoyRepository) Get(ctx context.Context, id kernel.UUID) (*deliveryboy.DeliveryBoy, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryBoyDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery boy", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves every delivery boy eligible for proposals, sorted
// by name.
func (r *GormDeliveryBoyRepository) GetAllActive(ctx context.Context) ([]*deliveryboy.DeliveryBoy, error) {
	var dtos []DeliveryBoyDTO
	err := r.db.WithContext(ctx).
		Order("name").
		Find(&dtos, "is_active = ?", true).Error
	if err != nil {
		return nil, err
	}

	boys := make([]*deliveryboy.DeliveryBoy, 0, len(dtos))
	for _, dto := range dtos {
		boy, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		boys = append(boys, boy)
	}

	return boys, nil
}
