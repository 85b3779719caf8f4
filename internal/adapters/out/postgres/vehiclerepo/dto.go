// Package vehiclerepo persists transport company vehicles.
package vehiclerepo

import (
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

// VehicleDTO represents the database structure for vehicle rows.
type VehicleDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;index"`

	Plate       string `gorm:"uniqueIndex;size:16"`
	VehicleType string `gorm:"size:16"`
	Capacity    float64

	Status string `gorm:"size:16;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming convention to use "vehicles".
func (VehicleDTO) TableName() string {
	return "vehicles"
}

func fromDomain(aggregate *vehicle.Vehicle) VehicleDTO {
	s := aggregate.Snapshot()
	return VehicleDTO{
		ID:          s.ID.Bytes(),
		CompanyID:   s.CompanyID.Bytes(),
		Plate:       s.Plate,
		VehicleType: s.VehicleType.String(),
		Capacity:    s.Capacity,
		Status:      s.Status.String(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}
	vehicleType, err := vehicle.TypeFromString(dto.VehicleType)
	if err != nil {
		return nil, err
	}
	status, err := vehicle.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return vehicle.RestoreVehicle(vehicle.Snapshot{
		ID:          id,
		CompanyID:   companyID,
		Plate:       dto.Plate,
		VehicleType: vehicleType,
		Capacity:    dto.Capacity,
		Status:      status,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	})
}
