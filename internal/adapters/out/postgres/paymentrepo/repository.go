package paymentrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShopPaymentRepository implements ShopPaymentRepository using GORM.
type GormShopPaymentRepository struct {
	db      *gorm.DB
	tracker changeTracker
}

// changeTracker defines the interface for recording which tables a unit of
// work touched.
type changeTracker interface {
	TrackChange(table string)
}

// NewGormShopPaymentRepository creates a new GORM shop payment repository.
func NewGormShopPaymentRepository(db *gorm.DB, tracker changeTracker) *GormShopPaymentRepository {
	return &GormShopPaymentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new obligation unconditionally.
func (r *GormShopPaymentRepository) Add(ctx context.Context, aggregate *payment.ShopPayment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackChange(ports.TableShopPayments)
	return nil
}

// Upsert inserts an order-derived obligation, doing nothing if a row with
// the same (order_id, payment_type) already exists. The conflict target is
// the reconciliation idempotency key, so a paid row is just as much a
// conflict as a pending one and is never recreated.
func (r *GormShopPaymentRepository) Upsert(
	ctx context.Context,
	aggregate *payment.ShopPayment,
) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "payment_type"}},
			DoNothing: true,
		}).
		Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	r.tracker.TrackChange(ports.TableShopPayments)
	return true, nil
}

// Update saves a settlement of an obligation.
func (r *GormShopPaymentRepository) Update(ctx context.Context, aggregate *payment.ShopPayment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ShopPaymentDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":  dto.Status,
			"paid_by": dto.PaidBy,
			"paid_at": dto.PaidAt,
			"notes":   dto.Notes,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackChange(ports.TableShopPayments)
	return nil
}

// Get retrieves an obligation by ID.
func (r *GormShopPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.ShopPayment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShopPaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shop payment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves the full current set of obligations.
func (r *GormShopPaymentRepository) GetAll(ctx context.Context) ([]*payment.ShopPayment, error) {
	var dtos []ShopPaymentDTO
	if err := r.db.WithContext(ctx).Order("shop_name, created_at").Find(&dtos).Error; err != nil {
		return nil, err
	}

	payments := make([]*payment.ShopPayment, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, nil
}
