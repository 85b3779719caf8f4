package commands

import (
	"context"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/membership"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/vehicle"
	"github.com/esp3j0/waste-transort/internal/core/domain/services"
)

// ChangeOrderStatusCommandHandler drives the order state machine: it loads the
// order and, when the edge touches them, the driver and vehicle, resolves the
// actor's scope, runs the transition, and persists every touched aggregate in
// one transaction.
//
// Driver and vehicle rows are written with optimistic check-and-set updates.
// Two concurrent assignments of the same driver both pass the in-memory
// availability check, but only the first check-and-set finds the row still
// available; the second gets a ResourceConflictError and rolls back.
type ChangeOrderStatusCommandHandler struct {
	uowFactory    UoWFactory
	scopeResolver ScopeResolver
	stateMachine  services.OrderStateMachine
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory UoWFactory,
	scopeResolver ScopeResolver,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory:    uowFactory,
		scopeResolver: scopeResolver,
		stateMachine:  services.NewOrderStateMachine(),
	}
}

// Handle processes the transition command.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	scope, err := h.scopeResolver.Resolve(ctx, cmd.Actor())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	transitionCtx := &services.TransitionContext{
		Actor:   cmd.Actor(),
		Order:   aggregate,
		Scope:   scope,
		Payload: cmd.Payload(),
		Now:     time.Now().UTC(),
	}

	if err = h.loadResources(ctx, uow, transitionCtx); err != nil {
		return err
	}

	driverStatusBefore, vehicleStatusBefore := resourceStatuses(transitionCtx)

	if err = h.stateMachine.Transition(transitionCtx, cmd.TargetStatus()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}
	if err = h.persistResources(ctx, uow, transitionCtx, driverStatusBefore, vehicleStatusBefore); err != nil {
		return err
	}

	if aggregate.Status() == order.StatusCompleted {
		if err = uow.PaymentRecorder().Record(
			ctx, aggregate.ID(), aggregate.Price(), aggregate.PaymentStatus()); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// loadResources fetches the driver and vehicle the transition will touch: the
// payload's pair for an assignment, the order's recorded pair for edges that
// release an existing allocation.
func (h *ChangeOrderStatusCommandHandler) loadResources(
	ctx context.Context,
	uow UoW,
	transitionCtx *services.TransitionContext,
) error {
	driverAssociationID := transitionCtx.Order.DriverAssociationID()
	vehicleID := transitionCtx.Order.VehicleID()
	if transitionCtx.Payload.DriverAssociationID != nil {
		driverAssociationID = transitionCtx.Payload.DriverAssociationID
	}
	if transitionCtx.Payload.VehicleID != nil {
		vehicleID = transitionCtx.Payload.VehicleID
	}

	if driverAssociationID != nil {
		driver, err := uow.MembershipRepository().Get(ctx, *driverAssociationID)
		if err != nil {
			return err
		}
		transitionCtx.Driver = driver
	}
	if vehicleID != nil {
		veh, err := uow.VehicleRepository().Get(ctx, *vehicleID)
		if err != nil {
			return err
		}
		transitionCtx.Vehicle = veh
	}
	return nil
}

func resourceStatuses(transitionCtx *services.TransitionContext) (membership.DriverStatus, vehicle.Status) {
	var driverStatus membership.DriverStatus
	var vehicleStatus vehicle.Status
	if transitionCtx.Driver != nil {
		driverStatus = transitionCtx.Driver.DriverStatus()
	}
	if transitionCtx.Vehicle != nil {
		vehicleStatus = transitionCtx.Vehicle.Status()
	}
	return driverStatus, vehicleStatus
}

// persistResources writes the driver and vehicle availability flips with
// check-and-set updates keyed on the status read at load time.
func (h *ChangeOrderStatusCommandHandler) persistResources(
	ctx context.Context,
	uow UoW,
	transitionCtx *services.TransitionContext,
	driverStatusBefore membership.DriverStatus,
	vehicleStatusBefore vehicle.Status,
) error {
	if transitionCtx.Driver != nil && transitionCtx.Driver.DriverStatus() != driverStatusBefore {
		if err := uow.MembershipRepository().UpdateDriverStatusFrom(
			ctx, transitionCtx.Driver.ID(), driverStatusBefore, transitionCtx.Driver.DriverStatus()); err != nil {
			return err
		}
	}
	if transitionCtx.Vehicle != nil && transitionCtx.Vehicle.Status() != vehicleStatusBefore {
		if err := uow.VehicleRepository().UpdateStatusFrom(
			ctx, transitionCtx.Vehicle.ID(), vehicleStatusBefore, transitionCtx.Vehicle.Status()); err != nil {
			return err
		}
	}
	return nil
}
