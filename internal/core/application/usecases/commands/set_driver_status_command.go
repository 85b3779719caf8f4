package commands

import (
	"errors"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/membership"
	"github.com/esp3j0/waste-transort/internal/pkg/guard"
)

var (
	ErrSetDriverStatusCommandIsNotConstructed = errors.New(
		"SetDriverStatusCommand must be created via NewSetDriverStatusCommand constructor",
	)
)

// SetDriverStatusCommand represents a manual driver status override, for
// example taking a driver off duty or bringing them back to available.
type SetDriverStatusCommand struct { //nolint:recvcheck //using for validation
	membershipID kernel.UUID
	actor        kernel.Actor
	status       membership.DriverStatus

	guard guard.ConstructorGuard
}

// NewSetDriverStatusCommand creates a command to override a driver's status.
func NewSetDriverStatusCommand(
	membershipID kernel.UUID,
	actor kernel.Actor,
	status membership.DriverStatus,
) (SetDriverStatusCommand, error) {
	cmd := SetDriverStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMembershipID(membershipID),
		cmd.setActor(actor),
		cmd.setStatus(status),
	); err != nil {
		return SetDriverStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetDriverStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverStatusCommandIsNotConstructed)
}

// MembershipID returns the driver membership to update.
func (c SetDriverStatusCommand) MembershipID() kernel.UUID {
	return c.membershipID
}

// Actor returns the requesting actor.
func (c SetDriverStatusCommand) Actor() kernel.Actor {
	return c.actor
}

// Status returns the requested driver status.
func (c SetDriverStatusCommand) Status() membership.DriverStatus {
	return c.status
}

func (c *SetDriverStatusCommand) setMembershipID(membershipID kernel.UUID) error {
	if err := membershipID.Validate(); err != nil {
		return err
	}

	c.membershipID = membershipID
	return nil
}

func (c *SetDriverStatusCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *SetDriverStatusCommand) setStatus(status membership.DriverStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
