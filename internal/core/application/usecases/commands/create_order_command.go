package commands

import (
	"errors"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
	"github.com/esp3j0/waste-transort/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a customer's request to create a pickup order
// for an address they registered.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), actor, addressID, "construction debris", 2.5)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, addressRepository)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	actor       kernel.Actor
	addressID   kernel.UUID
	wasteType   string
	wasteVolume float64

	expectedPickupTime *time.Time
	notes              string
	contactName        string
	contactPhone       string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new pickup order.
// Validates identities, the waste declaration, and that the actor holds the
// customer role (superusers may create orders on a customer's behalf).
func NewCreateOrderCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	addressID kernel.UUID,
	wasteType string,
	wasteVolume float64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setAddressID(addressID),
		cmd.setWasteType(wasteType),
		cmd.setWasteVolume(wasteVolume),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// WithPickupDetails attaches the optional scheduling and contact fields.
func (c CreateOrderCommand) WithPickupDetails(
	expectedPickupTime *time.Time,
	notes, contactName, contactPhone string,
) CreateOrderCommand {
	c.expectedPickupTime = expectedPickupTime
	c.notes = notes
	c.contactName = contactName
	c.contactPhone = contactPhone
	return c
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the requesting actor.
func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

// AddressID returns the pickup address.
func (c CreateOrderCommand) AddressID() kernel.UUID {
	return c.addressID
}

// WasteType returns the declared waste category.
func (c CreateOrderCommand) WasteType() string {
	return c.wasteType
}

// WasteVolume returns the declared volume in cubic meters.
func (c CreateOrderCommand) WasteVolume() float64 {
	return c.wasteVolume
}

// ExpectedPickupTime returns the requested pickup slot, if any.
func (c CreateOrderCommand) ExpectedPickupTime() *time.Time {
	return c.expectedPickupTime
}

// Notes returns the customer's note.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

// ContactName returns the pickup contact person.
func (c CreateOrderCommand) ContactName() string {
	return c.contactName
}

// ContactPhone returns the pickup contact phone.
func (c CreateOrderCommand) ContactPhone() string {
	return c.contactPhone
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != kernel.RoleCustomer && !actor.IsSuperuser() {
		return errs.NewPermissionDeniedError("create orders as a customer")
	}

	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setAddressID(addressID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("addressId", err)
	}

	c.addressID = addressID
	return nil
}

func (c *CreateOrderCommand) setWasteType(wasteType string) error {
	if wasteType == "" {
		return errs.NewValueIsRequiredError("wasteType")
	}

	c.wasteType = wasteType
	return nil
}

func (c *CreateOrderCommand) setWasteVolume(wasteVolume float64) error {
	if wasteVolume <= 0 {
		return errs.NewValueIsInvalidError("wasteVolume")
	}

	c.wasteVolume = wasteVolume
	return nil
}
