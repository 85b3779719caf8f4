package commands

import (
	"errors"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/pkg/guard"
)

var (
	ErrRemoveMembershipCommandIsNotConstructed = errors.New(
		"RemoveMembershipCommand must be created via NewRemoveMembershipCommand constructor",
	)
)

// RemoveMembershipCommand represents a request to remove a user from an
// organization.
type RemoveMembershipCommand struct { //nolint:recvcheck //using for validation
	membershipID kernel.UUID
	actor        kernel.Actor

	guard guard.ConstructorGuard
}

// NewRemoveMembershipCommand creates a command to remove a membership row.
func NewRemoveMembershipCommand(membershipID kernel.UUID, actor kernel.Actor) (RemoveMembershipCommand, error) {
	cmd := RemoveMembershipCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMembershipID(membershipID),
		cmd.setActor(actor),
	); err != nil {
		return RemoveMembershipCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveMembershipCommand) Validate() error {
	return c.guard.Validate(ErrRemoveMembershipCommandIsNotConstructed)
}

// MembershipID returns the membership to remove.
func (c RemoveMembershipCommand) MembershipID() kernel.UUID {
	return c.membershipID
}

// Actor returns the requesting actor.
func (c RemoveMembershipCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *RemoveMembershipCommand) setMembershipID(membershipID kernel.UUID) error {
	if err := membershipID.Validate(); err != nil {
		return err
	}

	c.membershipID = membershipID
	return nil
}

func (c *RemoveMembershipCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
