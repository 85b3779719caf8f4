package commands

import (
	"context"
	"errors"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/membership"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/vehicle"
	"github.com/esp3j0/waste-transort/internal/core/ports"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// ReleaseStaleAllocationsCommandHandler sweeps orders whose status no longer
// holds resources and releases any driver or vehicle still marked busy for
// them. Normal delivery releases resources inline; the sweep is the safety
// net for rows left behind by crashes or manual order surgery.
//
// Finished orders keep their resource references for history, so a driver or
// vehicle a finished order points at may since have been allocated to a newer
// active order. The sweep therefore skips any resource an order in an
// assignment state currently holds.
type ReleaseStaleAllocationsCommandHandler struct {
	uowFactory UoWFactory
}

// NewReleaseStaleAllocationsCommandHandler creates a handler for the allocation sweep.
func NewReleaseStaleAllocationsCommandHandler(uowFactory UoWFactory) ReleaseStaleAllocationsCommandHandler {
	return ReleaseStaleAllocationsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle runs the sweep and reports how many resources were released.
func (h *ReleaseStaleAllocationsCommandHandler) Handle(
	ctx context.Context,
	cmd ReleaseStaleAllocationsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetAllWithStaleAllocations(ctx)
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		return 0, uow.Commit(ctx)
	}

	activeRefs, err := uow.OrderRepository().GetActiveAllocationRefs(ctx)
	if err != nil {
		return 0, err
	}
	held := heldResources(activeRefs)

	released := 0
	for _, aggregate := range orders {
		n, err := h.releaseOrderResources(ctx, uow, aggregate, held)
		if err != nil {
			return 0, err
		}
		released += n
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return released, nil
}

func (h *ReleaseStaleAllocationsCommandHandler) releaseOrderResources(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	held heldResourceSet,
) (int, error) {
	released := 0

	if driverID := aggregate.DriverAssociationID(); driverID != nil && !held.drivers[*driverID] {
		err := uow.MembershipRepository().UpdateDriverStatusFrom(ctx, *driverID,
			membership.DriverStatusBusy, membership.DriverStatusAvailable)
		switch {
		case err == nil:
			released++
		case errors.Is(err, errs.ErrResourceConflict), errors.Is(err, errs.ErrObjectNotFound):
			// Already released or no longer busy.
		default:
			return 0, err
		}
	}

	if vehicleID := aggregate.VehicleID(); vehicleID != nil && !held.vehicles[*vehicleID] {
		err := uow.VehicleRepository().UpdateStatusFrom(ctx, *vehicleID,
			vehicle.StatusInUse, vehicle.StatusAvailable)
		switch {
		case err == nil:
			released++
		case errors.Is(err, errs.ErrResourceConflict), errors.Is(err, errs.ErrObjectNotFound):
			// Already released or no longer in use.
		default:
			return 0, err
		}
	}

	return released, nil
}

// heldResourceSet indexes the resources active orders currently hold.
type heldResourceSet struct {
	drivers  map[kernel.UUID]bool
	vehicles map[kernel.UUID]bool
}

func heldResources(refs ports.ActiveAllocationRefs) heldResourceSet {
	held := heldResourceSet{
		drivers:  make(map[kernel.UUID]bool, len(refs.DriverAssociationIDs)),
		vehicles: make(map[kernel.UUID]bool, len(refs.VehicleIDs)),
	}
	for _, id := range refs.DriverAssociationIDs {
		held.drivers[id] = true
	}
	for _, id := range refs.VehicleIDs {
		held.vehicles[id] = true
	}
	return held
}
