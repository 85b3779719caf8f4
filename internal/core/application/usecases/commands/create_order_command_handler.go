package commands

import (
	"context"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
	"github.com/esp3j0/waste-transort/internal/core/ports"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Derives the order's community from the chosen address and creates the order
// in pending status with a generated order number.
type CreateOrderCommandHandler struct {
	uowFactory        OrderUoWFactory
	addressRepository ports.AddressRepository
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	addressRepository ports.AddressRepository,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:        uowFactory,
		addressRepository: addressRepository,
	}
}

// Handle processes the order creation command. The address lookup pins the
// community id on the order so scoping never traverses the address again.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	address, err := h.addressRepository.Get(ctx, cmd.AddressID())
	if err != nil {
		return err
	}

	// customers order only for their own addresses
	if !cmd.Actor().IsSuperuser() && !address.OwnerID().IsEqual(cmd.Actor().ID()) {
		return errs.NewPermissionDeniedError("order pickups for the chosen address")
	}

	now := time.Now().UTC()
	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Actor().ID(),
		address.ID(),
		address.CommunityID(),
		cmd.WasteType(),
		cmd.WasteVolume(),
		now,
	)
	if err != nil {
		return err
	}

	if pickupAt := cmd.ExpectedPickupTime(); pickupAt != nil {
		newOrder.SetExpectedPickupTime(*pickupAt, now)
	}
	if cmd.Notes() != "" {
		newOrder.SetNotes(cmd.Notes(), now)
	}
	if cmd.ContactName() != "" || cmd.ContactPhone() != "" {
		newOrder.SetContact(cmd.ContactName(), cmd.ContactPhone(), now)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
