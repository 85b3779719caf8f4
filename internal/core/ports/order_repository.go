// Package ports defines repository interfaces for the waste pickup domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order. Only pending orders are ever deleted; the
	// command layer enforces that.
	Delete(ctx context.Context, id kernel.UUID) error

	// GetAllWithStaleAllocations retrieves orders that still reference a driver
	// association although their status no longer needs one: terminal orders
	// and orders already delivered. Used by the allocation sweep.
	GetAllWithStaleAllocations(ctx context.Context) ([]*order.Order, error)

	// GetActiveAllocationRefs lists the driver associations and vehicles held
	// by orders currently in an assignment state. The allocation sweep must
	// not touch these: a resource referenced by a finished order may since
	// have been re-allocated to a newer active one.
	GetActiveAllocationRefs(ctx context.Context) (ActiveAllocationRefs, error)
}

// ActiveAllocationRefs carries the resource references of all orders in
// transport_assigned or transporting status.
type ActiveAllocationRefs struct {
	DriverAssociationIDs []kernel.UUID
	VehicleIDs           []kernel.UUID
}
