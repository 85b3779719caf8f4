package vehicle

import (
	"errors"
	"fmt"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// ErrVehicleIsNotConstructed is returned when a Vehicle instance was not created
// through NewVehicle or RestoreVehicle.
var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle or RestoreVehicle")

// Vehicle is a hauling truck owned by a transport company. The plate is unique
// across the fleet, enforced by the store.
type Vehicle struct {
	id        kernel.UUID
	companyID kernel.UUID

	plate       string
	vehicleType Type
	capacity    float64

	status Status

	createdAt time.Time
	updatedAt time.Time

	guard kernel.ConstructorGuard
}

// NewVehicle creates an available vehicle. Capacity is in tons and must be positive.
func NewVehicle(
	id kernel.UUID,
	companyID kernel.UUID,
	plate string,
	vehicleType Type,
	capacity float64,
	now time.Time,
) (*Vehicle, error) {
	v := &Vehicle{
		status:    StatusAvailable,
		createdAt: now,
		updatedAt: now,
		guard:     kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setCompanyID(companyID),
		v.setPlate(plate),
		v.setType(vehicleType),
		v.setCapacity(capacity),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// Snapshot is the flattened persisted state of a vehicle.
type Snapshot struct {
	ID        kernel.UUID
	CompanyID kernel.UUID

	Plate       string
	VehicleType Type
	Capacity    float64

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RestoreVehicle reconstructs a vehicle from its persisted snapshot.
func RestoreVehicle(s Snapshot) (*Vehicle, error) {
	v := &Vehicle{
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
		guard:     kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(s.ID),
		v.setCompanyID(s.CompanyID),
		v.setPlate(s.Plate),
		v.setType(s.VehicleType),
		v.setCapacity(s.Capacity),
		v.setStatus(s.Status),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// Snapshot returns the flattened persisted state of the vehicle.
func (v *Vehicle) Snapshot() Snapshot {
	return Snapshot{
		ID:          v.id,
		CompanyID:   v.companyID,
		Plate:       v.plate,
		VehicleType: v.vehicleType,
		Capacity:    v.capacity,
		Status:      v.status,
		CreatedAt:   v.createdAt,
		UpdatedAt:   v.updatedAt,
	}
}

// Validate ensures the vehicle was created through a constructor.
func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

// IsEqual compares vehicles by identity.
func (v *Vehicle) IsEqual(other *Vehicle) bool {
	return other != nil && v.id.IsEqual(other.id)
}

// ID returns the vehicle's unique identifier.
func (v *Vehicle) ID() kernel.UUID { return v.id }

// CompanyID returns the owning transport company.
func (v *Vehicle) CompanyID() kernel.UUID { return v.companyID }

// Plate returns the license plate.
func (v *Vehicle) Plate() string { return v.plate }

// VehicleType returns the size class.
func (v *Vehicle) VehicleType() Type { return v.vehicleType }

// Capacity returns the load capacity in tons.
func (v *Vehicle) Capacity() float64 { return v.capacity }

// Status returns the current availability.
func (v *Vehicle) Status() Status { return v.status }

// CreatedAt returns the creation time.
func (v *Vehicle) CreatedAt() time.Time { return v.createdAt }

// UpdatedAt returns the last mutation time.
func (v *Vehicle) UpdatedAt() time.Time { return v.updatedAt }

// Allocate flips an available vehicle to in_use. Vehicles in any other status
// are rejected with a resource conflict.
func (v *Vehicle) Allocate(now time.Time) error {
	if v.status != StatusAvailable {
		return errs.NewResourceConflictError("vehicle",
			fmt.Sprintf("vehicle %s is %s, not available", v.plate, v.status))
	}

	v.status = StatusInUse
	v.touch(now)
	return nil
}

// Release flips an in_use vehicle back to available. Releasing a vehicle in any
// other status is a no-op so that sweeps and delivery handlers need no pre-check.
func (v *Vehicle) Release(now time.Time) error {
	if v.status != StatusInUse {
		return nil
	}

	v.status = StatusAvailable
	v.touch(now)
	return nil
}

// SetStatus records a manual status change, e.g. sending the vehicle to
// maintenance. In_use is owned by order assignment and cannot be entered or
// left manually.
func (v *Vehicle) SetStatus(status Status, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == StatusInUse {
		return errs.NewValueIsInvalidErrorWithCause("vehicleStatus",
			errors.New("in_use is set by order assignment, not manually"))
	}
	if v.status == StatusInUse {
		return errs.NewResourceConflictError("vehicle",
			fmt.Sprintf("vehicle %s is bound to an active order", v.plate))
	}

	v.status = status
	v.touch(now)
	return nil
}

// UpdateDetails replaces the descriptive fields of the vehicle.
func (v *Vehicle) UpdateDetails(vehicleType Type, capacity float64, now time.Time) error {
	if err := errors.Join(v.setType(vehicleType), v.setCapacity(capacity)); err != nil {
		return err
	}
	v.touch(now)
	return nil
}

func (v *Vehicle) touch(now time.Time) {
	v.updatedAt = now
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setCompanyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("companyId", err)
	}
	v.companyID = id
	return nil
}

func (v *Vehicle) setPlate(plate string) error {
	if plate == "" {
		return errs.NewValueIsRequiredError("plate")
	}
	v.plate = plate
	return nil
}

func (v *Vehicle) setType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	v.vehicleType = t
	return nil
}

func (v *Vehicle) setCapacity(capacity float64) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity",
			fmt.Errorf("%f is not greater than 0", capacity))
	}
	v.capacity = capacity
	return nil
}

func (v *Vehicle) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	v.status = status
	return nil
}
