package commands

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
	"github.com/esp3j0/waste-transort/internal/core/domain/services"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// UpdateOrderCommandHandler applies general field updates to an order. The
// command already checked the field allow-list; the handler checks the actor's
// scope over this concrete order and the role's status window, then applies
// the changes through the aggregate's setters.
type UpdateOrderCommandHandler struct {
	uowFactory    OrderUoWFactory
	scopeResolver ScopeResolver
}

// NewUpdateOrderCommandHandler creates a handler for general order updates.
func NewUpdateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	scopeResolver ScopeResolver,
) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory:    uowFactory,
		scopeResolver: scopeResolver,
	}
}

// Handle processes the update command.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) error {
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

	if err = h.guardEdit(cmd.Actor(), scope, aggregate); err != nil {
		return err
	}

	if err = applyOrderUpdate(aggregate, cmd.Update(), time.Now().UTC()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *UpdateOrderCommandHandler) guardEdit(
	actor kernel.Actor,
	scope services.Scope,
	aggregate *order.Order,
) error {
	if actor.IsSuperuser() {
		return nil
	}

	if actor.Role() == kernel.RoleCustomer && !aggregate.CustomerID().IsEqual(actor.ID()) {
		return errs.NewPermissionDeniedError("edit another customer's order")
	}
	if !scope.AllowsView(actor, aggregate) {
		return errs.NewPermissionDeniedError(
			fmt.Sprintf("edit order %s", aggregate.ID()))
	}

	windows := editableStatusesByRole()[actor.Role()]
	if !slices.Contains(windows, aggregate.Status()) {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s orders are not editable by the %s role", aggregate.Status(), actor.Role()))
	}

	return nil
}

func applyOrderUpdate(aggregate *order.Order, update OrderUpdate, now time.Time) error {
	if update.WasteType != nil || update.WasteVolume != nil {
		wasteType := aggregate.WasteType()
		wasteVolume := aggregate.WasteVolume()
		if update.WasteType != nil {
			wasteType = *update.WasteType
		}
		if update.WasteVolume != nil {
			wasteVolume = *update.WasteVolume
		}
		if err := aggregate.UpdateWasteDetails(wasteType, wasteVolume, now); err != nil {
			return err
		}
	}

	if update.ExpectedPickupTime != nil {
		aggregate.SetExpectedPickupTime(*update.ExpectedPickupTime, now)
	}
	if update.Notes != nil {
		aggregate.SetNotes(*update.Notes, now)
	}
	if update.ContactName != nil || update.ContactPhone != nil {
		contactName := aggregate.ContactName()
		contactPhone := aggregate.ContactPhone()
		if update.ContactName != nil {
			contactName = *update.ContactName
		}
		if update.ContactPhone != nil {
			contactPhone = *update.ContactPhone
		}
		aggregate.SetContact(contactName, contactPhone, now)
	}

	if update.PropertyNotes != nil {
		aggregate.SetPropertyNotes(*update.PropertyNotes, now)
	}

	if update.TransportRoute != nil || update.TransportNotes != nil {
		route := aggregate.TransportRoute()
		notes := aggregate.TransportNotes()
		if update.TransportRoute != nil {
			route = *update.TransportRoute
		}
		if update.TransportNotes != nil {
			notes = *update.TransportNotes
		}
		aggregate.SetTransportDetails(route, notes, now)
	}
	if update.ActualPickupTime != nil {
		aggregate.SetActualPickupTime(*update.ActualPickupTime, now)
	}
	if update.DeliveryTime != nil {
		aggregate.SetDeliveryTime(*update.DeliveryTime, now)
	}

	if update.RecyclingNotes != nil {
		aggregate.SetRecyclingNotes(*update.RecyclingNotes, now)
	}
	if update.WasteWeight != nil {
		if err := aggregate.SetWasteWeight(*update.WasteWeight, now); err != nil {
			return err
		}
	}

	return nil
}
