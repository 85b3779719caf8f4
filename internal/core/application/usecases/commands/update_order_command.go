package commands

import (
	"errors"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
	"github.com/esp3j0/waste-transort/internal/pkg/guard"
)

var (
	ErrUpdateOrderCommandIsNotConstructed = errors.New(
		"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
	)
)

// Field names accepted by the order update allow-lists.
const (
	FieldWasteType          = "wasteType"
	FieldWasteVolume        = "wasteVolume"
	FieldExpectedPickupTime = "expectedPickupTime"
	FieldNotes              = "notes"
	FieldContactName        = "contactName"
	FieldContactPhone       = "contactPhone"
	FieldPropertyNotes      = "propertyNotes"
	FieldTransportRoute     = "transportRoute"
	FieldTransportNotes     = "transportNotes"
	FieldActualPickupTime   = "actualPickupTime"
	FieldDeliveryTime       = "deliveryTime"
	FieldRecyclingNotes     = "recyclingNotes"
	FieldWasteWeight        = "wasteWeight"
)

// OrderUpdate carries the optional field changes of a general order update.
// Nil pointers mean the field is untouched.
type OrderUpdate struct {
	WasteType          *string
	WasteVolume        *float64
	ExpectedPickupTime *time.Time
	Notes              *string
	ContactName        *string
	ContactPhone       *string

	PropertyNotes *string

	TransportRoute   *string
	TransportNotes   *string
	ActualPickupTime *time.Time
	DeliveryTime     *time.Time

	RecyclingNotes *string
	WasteWeight    *float64
}

// FieldNames lists which fields the update touches.
func (u OrderUpdate) FieldNames() []string {
	var names []string
	add := func(name string, set bool) {
		if set {
			names = append(names, name)
		}
	}
	add(FieldWasteType, u.WasteType != nil)
	add(FieldWasteVolume, u.WasteVolume != nil)
	add(FieldExpectedPickupTime, u.ExpectedPickupTime != nil)
	add(FieldNotes, u.Notes != nil)
	add(FieldContactName, u.ContactName != nil)
	add(FieldContactPhone, u.ContactPhone != nil)
	add(FieldPropertyNotes, u.PropertyNotes != nil)
	add(FieldTransportRoute, u.TransportRoute != nil)
	add(FieldTransportNotes, u.TransportNotes != nil)
	add(FieldActualPickupTime, u.ActualPickupTime != nil)
	add(FieldDeliveryTime, u.DeliveryTime != nil)
	add(FieldRecyclingNotes, u.RecyclingNotes != nil)
	add(FieldWasteWeight, u.WasteWeight != nil)
	return names
}

// allowedFieldsByRole is the statically declared field allow-list per role.
// Superusers are not listed; they may touch every field.
func allowedFieldsByRole() map[kernel.Role]map[string]struct{} {
	set := func(names ...string) map[string]struct{} {
		s := make(map[string]struct{}, len(names))
		for _, n := range names {
			s[n] = struct{}{}
		}
		return s
	}
	return map[kernel.Role]map[string]struct{}{
		kernel.RoleCustomer: set(FieldWasteType, FieldWasteVolume, FieldExpectedPickupTime,
			FieldNotes, FieldContactName, FieldContactPhone),
		kernel.RoleProperty: set(FieldPropertyNotes),
		kernel.RoleTransport: set(FieldTransportRoute, FieldTransportNotes,
			FieldActualPickupTime, FieldDeliveryTime),
		kernel.RoleRecycling: set(FieldRecyclingNotes, FieldWasteWeight),
	}
}

// editableStatusesByRole is the statically declared status gate per role: the
// phases of the lifecycle in which the role's fields still make sense.
func editableStatusesByRole() map[kernel.Role][]order.Status {
	return map[kernel.Role][]order.Status{
		kernel.RoleCustomer: {order.StatusPending},
		kernel.RoleProperty: {order.StatusPending, order.StatusPropertyConfirmed},
		kernel.RoleTransport: {order.StatusPropertyConfirmed, order.StatusTransportAssigned,
			order.StatusTransporting},
		kernel.RoleRecycling: {order.StatusDelivered, order.StatusRecyclingConfirmed},
	}
}

// UpdateOrderCommand represents a general (non-status) order update, gated by
// per-role field allow-lists and per-role status windows.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	update  OrderUpdate

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to update order fields. Requires at
// least one field and rejects fields outside the actor's allow-list up front,
// naming the first offending field.
func NewUpdateOrderCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	update OrderUpdate,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setUpdate(update),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the order to update.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the requesting actor.
func (c UpdateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

// Update returns the requested field changes.
func (c UpdateOrderCommand) Update() OrderUpdate {
	return c.update
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *UpdateOrderCommand) setUpdate(update OrderUpdate) error {
	names := update.FieldNames()
	if len(names) == 0 {
		return errs.NewValueIsRequiredError("update")
	}

	if !c.actor.IsSuperuser() {
		allowed, ok := allowedFieldsByRole()[c.actor.Role()]
		if !ok {
			return errs.NewPermissionDeniedError("update orders")
		}
		for _, name := range names {
			if _, ok := allowed[name]; !ok {
				return errs.NewPermissionDeniedError("edit field " + name)
			}
		}
	}

	c.update = update
	return nil
}
