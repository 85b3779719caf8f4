package commands

import (
	"context"
	"fmt"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// DeleteOrderCommandHandler handles order deletion. An order that progressed
// past pending is part of other organizations' records and can only be
// cancelled through the state machine, never deleted, except by a superuser.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDeleteOrderCommandHandler creates a handler for order deletion.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deletion command.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !cmd.Actor().IsSuperuser() {
		if cmd.Actor().Role() != kernel.RoleCustomer || !aggregate.CustomerID().IsEqual(cmd.Actor().ID()) {
			return errs.NewPermissionDeniedError(
				fmt.Sprintf("delete order %s", aggregate.ID()))
		}
		if aggregate.Status() != order.StatusPending {
			return errs.NewValueIsInvalidErrorWithCause("status",
				fmt.Errorf("only pending orders can be deleted, order is %s", aggregate.Status()))
		}
	}

	if err = uow.OrderRepository().Delete(ctx, aggregate.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
