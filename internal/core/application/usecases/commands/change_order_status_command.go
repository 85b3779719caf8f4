package commands

import (
	"errors"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
	"github.com/esp3j0/waste-transort/internal/core/domain/services"
	"github.com/esp3j0/waste-transort/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
)

// ChangeOrderStatusCommand represents a request to move an order to a target
// status. The payload carries the role-specific references some transitions
// need; the state machine decides which are required.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(orderID, actor, order.StatusPropertyConfirmed)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, scopeResolver)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("transition rejected: %w", err)
//	}
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actor        kernel.Actor
	targetStatus order.Status
	payload      services.TransitionPayload

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to request a status transition.
// Whether the edge exists and whether the actor may take it is decided by the
// state machine, not here; the constructor only checks the inputs parse.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	targetStatus order.Status,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setTargetStatus(targetStatus),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// WithPayload attaches the role-specific transition references.
func (c ChangeOrderStatusCommand) WithPayload(payload services.TransitionPayload) ChangeOrderStatusCommand {
	c.payload = payload
	return c
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the requesting actor.
func (c ChangeOrderStatusCommand) Actor() kernel.Actor {
	return c.actor
}

// TargetStatus returns the requested target status.
func (c ChangeOrderStatusCommand) TargetStatus() order.Status {
	return c.targetStatus
}

// Payload returns the role-specific transition references.
func (c ChangeOrderStatusCommand) Payload() services.TransitionPayload {
	return c.payload
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ChangeOrderStatusCommand) setTargetStatus(targetStatus order.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return err
	}

	c.targetStatus = targetStatus
	return nil
}
