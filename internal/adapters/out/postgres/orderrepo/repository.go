package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker changeTracker
}

// changeTracker defines the interface for recording which tables a unit of
// work touched.
type changeTracker interface {
	TrackChange(table string)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker changeTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackChange(ports.TableOrders)
	return nil
}

// Update saves an existing order to the database unconditionally.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(mutableColumns(dto))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackChange(ports.TableOrders)
	return nil
}

// UpdateConditional saves the order only if the stored row still matches
// the expected (status, delivery_boy_id) pair. The check and the write are
// one UPDATE statement, so concurrent claimants serialize on the row and
// exactly one sees RowsAffected == 1.
func (r *GormOrderRepository) UpdateConditional(
	ctx context.Context,
	aggregate *order.Order,
	expectedStatus order.Status,
	expectedDeliveryBoy *kernel.UUID,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	query := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, string(expectedStatus))
	if expectedDeliveryBoy == nil {
		query = query.Where("delivery_boy_id IS NULL")
	} else {
		query = query.Where("delivery_boy_id = ?", expectedDeliveryBoy.Bytes())
	}

	result := query.Updates(mutableColumns(dto))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewPreconditionFailedError("order", aggregate.ID().String())
	}

	r.tracker.TrackChange(ports.TableOrders)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInStatus retrieves all orders in the given lifecycle status,
// oldest first.
func (r *GormOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "status = ?", string(status)).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// mutableColumns lists the columns lifecycle transitions may change. A map
// is used instead of the struct so that clearing the delivery boy writes a
// real NULL; struct-based Updates skips nil fields.
func mutableColumns(dto OrderDTO) map[string]any {
	return map[string]any{
		"status":          dto.Status,
		"payment_status":  dto.PaymentStatus,
		"delivery_boy_id": dto.DeliveryBoyID,
		"assigned_at":     dto.AssignedAt,
		"picked_up_at":    dto.PickedUpAt,
		"delivered_at":    dto.DeliveredAt,
		"cancel_reason":   dto.CancelReason,
	}
}
