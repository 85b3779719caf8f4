package ports

import (
	"context"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/vehicle"
)

// VehicleRepository defines the persistence contract for vehicle aggregates.
type VehicleRepository interface {
	// Add persists a new vehicle. The store rejects a duplicate plate.
	Add(ctx context.Context, aggregate *vehicle.Vehicle) error

	// Update persists changes to an existing vehicle.
	Update(ctx context.Context, aggregate *vehicle.Vehicle) error

	// Get retrieves a vehicle by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)

	// GetAllByCompany retrieves a company's fleet.
	GetAllByCompany(ctx context.Context, companyID kernel.UUID) ([]*vehicle.Vehicle, error)

	// UpdateStatusFrom performs an optimistic check-and-set on a vehicle's
	// status: the row is updated only if it still holds the expected status.
	// A lost race surfaces as a ResourceConflictError.
	UpdateStatusFrom(ctx context.Context, id kernel.UUID, from, to vehicle.Status) error
}
