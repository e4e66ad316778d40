// Package assignmentrepo provides data transfer objects and mapping
// functions for assignment proposal persistence.
package assignmentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for persisting proposals.
// The partial unique index on order_id enforces at most one pending
// proposal per order at the storage level; responded rows fall out of the
// index and stay forever as the audit trail.
type AssignmentDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_assignments_pending_order,where:status = 'pending'"`
	DeliveryBoyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status        string    `gorm:"type:text;not null;index"`
	Notes         string    `gorm:"type:text;not null;default:''"`
	AssignedAt    time.Time `gorm:"not null"`
	RespondedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming convention.
func (AssignmentDTO) TableName() string {
	return "order_assignments"
}

func fromDomain(aggregate *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:            aggregate.ID().Bytes(),
		OrderID:       aggregate.OrderID().Bytes(),
		DeliveryBoyID: aggregate.DeliveryBoy().Bytes(),
		Status:        string(aggregate.Status()),
		Notes:         aggregate.Notes(),
		AssignedAt:    aggregate.AssignedAt(),
		RespondedAt:   aggregate.RespondedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	deliveryBoyID, err := kernel.UUIDFromBytes(dto.DeliveryBoyID[:])
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(
		id, orderID, deliveryBoyID,
		assignment.Status(dto.Status),
		dto.Notes,
		dto.AssignedAt,
		dto.RespondedAt,
	)
}
