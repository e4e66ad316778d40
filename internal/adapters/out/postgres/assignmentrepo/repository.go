package assignmentrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker changeTracker
}

// changeTracker defines the interface for recording which tables a unit of
// work touched.
type changeTracker interface {
	TrackChange(table string)
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB, tracker changeTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new proposal to the database. Inserting a second pending
// proposal for the same order violates the partial unique index and fails.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackChange(ports.TableAssignments)
	return nil
}

// Update saves a response to a proposal.
func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":       dto.Status,
			"responded_at": dto.RespondedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackChange(ports.TableAssignments)
	return nil
}

// Get retrieves a proposal by ID.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPendingByOrder retrieves the pending proposal for an order. The
// partial unique index guarantees at most one exists.
func (r *GormAssignmentRepository) GetPendingByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*assignment.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND status = ?", orderID.Bytes(), string(assignment.StatusPending)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pending assignment for order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves every unanswered proposal, oldest first.
func (r *GormAssignmentRepository) GetAllPending(ctx context.Context) ([]*assignment.Assignment, error) {
	var dtos []AssignmentDTO
	err := r.db.WithContext(ctx).
		Order("assigned_at").
		Find(&dtos, "status = ?", string(assignment.StatusPending)).Error
	if err != nil {
		return nil, err
	}

	proposals := make([]*assignment.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		proposal, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, proposal)
	}

	return proposals, nil
}
