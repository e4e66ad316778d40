// Package deliveryboy contains the read-only DeliveryBoy entity. Delivery
// boys are managed by an external CRUD collaborator; the engine only reads
// their identity and active flag when proposing assignments.
package deliveryboy

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrDeliveryBoyIsNotConstructed is returned when a DeliveryBoy was not
// created through RestoreDeliveryBoy.
var ErrDeliveryBoyIsNotConstructed = errors.New("DeliveryBoy must be created via RestoreDeliveryBoy")

// DeliveryBoy is a fulfillment agent. The engine never mutates it.
type DeliveryBoy struct {
	id              kernel.UUID
	name            string
	phone           string
	vehicleType     string
	vehicleNumber   string
	isActive        bool
	currentLocation string

	isConstructed bool
}

// RestoreDeliveryBoy reconstructs a DeliveryBoy from persistence. There is
// no New constructor: rows are created by the external collaborator.
func RestoreDeliveryBoy(
	id kernel.UUID,
	name, phone, vehicleType, vehicleNumber string,
	isActive bool,
	currentLocation string,
) (*DeliveryBoy, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return &DeliveryBoy{
		id:              id,
		name:            name,
		phone:           phone,
		vehicleType:     vehicleType,
		vehicleNumber:   vehicleNumber,
		isActive:        isActive,
		currentLocation: currentLocation,
		isConstructed:   true,
	}, nil
}

// Validate ensures the DeliveryBoy was created through RestoreDeliveryBoy.
func (d *DeliveryBoy) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryBoyIsNotConstructed
	}
	return nil
}

// ID returns the delivery boy's unique identifier.
func (d *DeliveryBoy) ID() kernel.UUID { return d.id }

// Name returns the delivery boy's name.
func (d *DeliveryBoy) Name() string { return d.name }

// Phone returns the delivery boy's phone number.
func (d *DeliveryBoy) Phone() string { return d.phone }

// VehicleType returns the vehicle type, e.g. "bike".
func (d *DeliveryBoy) VehicleType() string { return d.vehicleType }

// VehicleNumber returns the vehicle registration number.
func (d *DeliveryBoy) VehicleNumber() string { return d.vehicleNumber }

// IsActive reports whether the delivery boy may receive new proposals.
func (d *DeliveryBoy) IsActive() bool { return d.isActive }

// CurrentLocation returns the free-text location, maintained externally.
func (d *DeliveryBoy) CurrentLocation() string { return d.currentLocation }
