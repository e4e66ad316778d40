package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/deliveryboy"
	"fulfillment/internal/core/domain/model/kernel"
)

// DeliveryBoyRepository defines the read-only persistence contract for
// delivery boys. Rows are created and mutated by an external CRUD
// collaborator; the engine only reads them.
type DeliveryBoyRepository interface {
	// Get retrieves a delivery boy by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*deliveryboy.DeliveryBoy, error)

	// GetAllActive retrieves every delivery boy eligible for proposals.
	GetAllActive(ctx context.Context) ([]*deliveryboy.DeliveryBoy, error)
}
