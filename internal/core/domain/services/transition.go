package services

import (
	"fmt"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/membership"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/vehicle"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// TransitionPayload carries the role-specific references a transition may need.
// Which fields are required depends on the target status.
type TransitionPayload struct {
	TransportCompanyID  *kernel.UUID
	DriverAssociationID *kernel.UUID
	VehicleID           *kernel.UUID
	RecyclingCompanyID  *kernel.UUID
}

// TransitionContext is everything a single transition runs against: the acting
// user, the order, the actor's resolved scope, the request payload, and the
// driver and vehicle aggregates when the transition touches them. The command
// layer loads Driver and Vehicle before calling the state machine so that the
// machine itself stays free of persistence.
type TransitionContext struct {
	Actor   kernel.Actor
	Order   *order.Order
	Scope   Scope
	Payload TransitionPayload
	Driver  *membership.Membership
	Vehicle *vehicle.Vehicle
	Now     time.Time
}

type transitionKey struct {
	from order.Status
	to   order.Status
}

// transitionRule is one edge of the state machine. The guard checks who may
// request the transition; the effect mutates the order and, where the edge
// touches them, the driver and vehicle. Superusers bypass guards but never
// effects: availability and status preconditions hold for everyone.
type transitionRule struct {
	guard  func(*TransitionContext) error
	effect func(OrderStateMachine, *TransitionContext) error
}

// OrderStateMachine validates and applies order status transitions. All edges
// live in one table keyed by (current, target) so the valid transition set is
// enumerable and exhaustively testable.
type OrderStateMachine struct {
	allocator ResourceAllocator
}

// NewOrderStateMachine creates a new OrderStateMachine instance.
func NewOrderStateMachine() OrderStateMachine {
	return OrderStateMachine{allocator: NewResourceAllocator()}
}

// Transition moves the order to the target status on behalf of the actor. A
// missing edge for (current, target), including target == current, is an
// invalid transition. A failing guard is a permission error that names the
// missing permission without leaking other actors' data.
func (sm OrderStateMachine) Transition(ctx *TransitionContext, target order.Status) error {
	if err := ctx.Actor.Validate(); err != nil {
		return err
	}
	if err := ctx.Order.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	rule, ok := transitionRules()[transitionKey{from: ctx.Order.Status(), to: target}]
	if !ok {
		return errs.NewInvalidTransitionError(ctx.Order.Status().String(), target.String())
	}

	if !ctx.Actor.IsSuperuser() {
		if err := rule.guard(ctx); err != nil {
			return err
		}
	}

	return rule.effect(sm, ctx)
}

func transitionRules() map[transitionKey]transitionRule {
	return map[transitionKey]transitionRule{
		{order.StatusPending, order.StatusPropertyConfirmed}: {
			guard:  guardPropertyConfirm,
			effect: applyPropertyConfirm,
		},
		{order.StatusPropertyConfirmed, order.StatusTransportAssigned}: {
			guard:  guardTransportAssign,
			effect: applyTransportAssign,
		},
		{order.StatusTransportAssigned, order.StatusTransporting}: {
			guard:  guardTransportProgress,
			effect: applyStartTransport,
		},
		{order.StatusTransporting, order.StatusDelivered}: {
			guard:  guardTransportProgress,
			effect: applyDelivered,
		},
		{order.StatusDelivered, order.StatusRecyclingConfirmed}: {
			guard:  guardRecyclingConfirm,
			effect: applyRecyclingConfirm,
		},
		{order.StatusRecyclingConfirmed, order.StatusCompleted}: {
			guard:  guardComplete,
			effect: applyComplete,
		},
		{order.StatusPending, order.StatusCancelled}: {
			guard:  guardCancelPending,
			effect: applyCancel,
		},
		{order.StatusPropertyConfirmed, order.StatusCancelled}: {
			guard:  guardCancelConfirmed,
			effect: applyCancel,
		},
	}
}

func guardPropertyConfirm(ctx *TransitionContext) error {
	if ctx.Actor.Role() != kernel.RoleProperty {
		return errs.NewPermissionDeniedError("confirm orders as a property manager")
	}
	if !ctx.Scope.Property.ContainsCommunity(ctx.Order.CommunityID()) {
		return errs.NewPermissionDeniedError("manage the order's community")
	}
	return nil
}

func applyPropertyConfirm(_ OrderStateMachine, ctx *TransitionContext) error {
	return ctx.Order.ConfirmByProperty(ctx.Actor.ID(), ctx.Now)
}

func guardTransportAssign(ctx *TransitionContext) error {
	if ctx.Actor.Role() != kernel.RoleTransport {
		return errs.NewPermissionDeniedError("assign transport as a transport manager")
	}
	if ctx.Payload.TransportCompanyID == nil {
		return errs.NewValueIsRequiredError("transportCompanyId")
	}
	if !ctx.Scope.Transport.ContainsCompany(*ctx.Payload.TransportCompanyID) {
		return errs.NewPermissionDeniedError("dispatch for the transport company")
	}
	return nil
}

func applyTransportAssign(sm OrderStateMachine, ctx *TransitionContext) error {
	if ctx.Payload.TransportCompanyID == nil {
		return errs.NewValueIsRequiredError("transportCompanyId")
	}
	if ctx.Payload.DriverAssociationID == nil {
		return errs.NewValueIsRequiredError("driverAssociationId")
	}
	if ctx.Payload.VehicleID == nil {
		return errs.NewValueIsRequiredError("vehicleId")
	}
	if ctx.Driver == nil {
		return errs.NewObjectNotFoundError("driverAssociationId", ctx.Payload.DriverAssociationID)
	}
	if ctx.Vehicle == nil {
		return errs.NewObjectNotFoundError("vehicleId", ctx.Payload.VehicleID)
	}

	return sm.allocator.Assign(
		ctx.Order, ctx.Actor.ID(), ctx.Driver, ctx.Vehicle, *ctx.Payload.TransportCompanyID, ctx.Now)
}

// guardTransportProgress admits the assigned driver and anyone dispatching for
// the order's transport company.
func guardTransportProgress(ctx *TransitionContext) error {
	if ctx.Actor.Role() != kernel.RoleTransport {
		return errs.NewPermissionDeniedError("progress transport as a transport member")
	}

	if assocID := ctx.Order.DriverAssociationID(); assocID != nil &&
		ctx.Scope.Transport.ContainsDriverAssociation(*assocID) {
		return nil
	}
	if companyID := ctx.Order.TransportCompanyID(); companyID != nil &&
		ctx.Scope.Transport.ContainsCompany(*companyID) {
		return nil
	}

	return errs.NewPermissionDeniedError("act as the order's driver or dispatcher")
}

func applyStartTransport(_ OrderStateMachine, ctx *TransitionContext) error {
	return ctx.Order.StartTransport(ctx.Now)
}

func applyDelivered(sm OrderStateMachine, ctx *TransitionContext) error {
	if err := ctx.Order.MarkDelivered(ctx.Now); err != nil {
		return err
	}
	return sm.allocator.Release(ctx.Driver, ctx.Vehicle, ctx.Now)
}

func guardRecyclingConfirm(ctx *TransitionContext) error {
	if ctx.Actor.Role() != kernel.RoleRecycling {
		return errs.NewPermissionDeniedError("confirm loads as a recycling member")
	}

	companyID := ctx.Order.RecyclingCompanyID()
	if ctx.Payload.RecyclingCompanyID != nil {
		companyID = ctx.Payload.RecyclingCompanyID
	}
	if companyID == nil {
		return errs.NewValueIsRequiredError("recyclingCompanyId")
	}
	if !ctx.Scope.Recycling.ContainsCompany(*companyID) {
		return errs.NewPermissionDeniedError("act for the receiving recycling company")
	}
	return nil
}

func applyRecyclingConfirm(_ OrderStateMachine, ctx *TransitionContext) error {
	companyID := ctx.Order.RecyclingCompanyID()
	if ctx.Payload.RecyclingCompanyID != nil {
		companyID = ctx.Payload.RecyclingCompanyID
	}
	if companyID == nil {
		return errs.NewValueIsRequiredError("recyclingCompanyId")
	}
	return ctx.Order.ConfirmRecycling(ctx.Actor.ID(), *companyID, ctx.Now)
}

func guardComplete(ctx *TransitionContext) error {
	if ctx.Actor.Role() != kernel.RoleRecycling {
		return errs.NewPermissionDeniedError("complete orders as a recycling member")
	}
	companyID := ctx.Order.RecyclingCompanyID()
	if companyID == nil || !ctx.Scope.Recycling.ContainsCompany(*companyID) {
		return errs.NewPermissionDeniedError("act for the order's recycling company")
	}
	return nil
}

func applyComplete(_ OrderStateMachine, ctx *TransitionContext) error {
	return ctx.Order.Complete(ctx.Now)
}

// guardCancelPending admits the order's owner and property managers scoped to
// the order's community.
func guardCancelPending(ctx *TransitionContext) error {
	if ctx.Actor.Role() == kernel.RoleCustomer && ctx.Order.CustomerID().IsEqual(ctx.Actor.ID()) {
		return nil
	}
	return guardCancelConfirmed(ctx)
}

// guardCancelConfirmed admits only property managers scoped to the order's
// community. Once the property side confirmed, the customer can no longer
// cancel unilaterally.
func guardCancelConfirmed(ctx *TransitionContext) error {
	if ctx.Actor.Role() == kernel.RoleProperty &&
		ctx.Scope.Property.ContainsCommunity(ctx.Order.CommunityID()) {
		return nil
	}
	return errs.NewPermissionDeniedError(
		fmt.Sprintf("cancel order %s", ctx.Order.ID()))
}

func applyCancel(sm OrderStateMachine, ctx *TransitionContext) error {
	if err := ctx.Order.Cancel(ctx.Now); err != nil {
		return err
	}
	// cancellable statuses precede assignment, but a sweep-resurrected or
	// manually patched order may still hold resources
	return sm.allocator.Release(ctx.Driver, ctx.Vehicle, ctx.Now)
}
