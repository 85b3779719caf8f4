package commands

import (
	"errors"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
	"github.com/esp3j0/waste-transort/internal/pkg/guard"
)

var (
	ErrUpdateMembershipCommandIsNotConstructed = errors.New(
		"UpdateMembershipCommand must be created via NewUpdateMembershipCommand constructor",
	)
)

// UpdateMembershipCommand represents a request to change a membership row: a
// primary promotion or demotion, or a new community assignment for a scoped
// property member. Nil fields are untouched.
type UpdateMembershipCommand struct { //nolint:recvcheck //using for validation
	membershipID kernel.UUID
	actor        kernel.Actor

	isPrimary   *bool
	communityID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewUpdateMembershipCommand creates a command to update a membership.
// Requires at least one change.
func NewUpdateMembershipCommand(
	membershipID kernel.UUID,
	actor kernel.Actor,
	isPrimary *bool,
	communityID *kernel.UUID,
) (UpdateMembershipCommand, error) {
	cmd := UpdateMembershipCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMembershipID(membershipID),
		cmd.setActor(actor),
	); err != nil {
		return UpdateMembershipCommand{}, err
	}

	if isPrimary == nil && communityID == nil {
		return UpdateMembershipCommand{}, errs.NewValueIsRequiredError("update")
	}
	cmd.isPrimary = isPrimary
	cmd.communityID = communityID

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateMembershipCommand) Validate() error {
	return c.guard.Validate(ErrUpdateMembershipCommandIsNotConstructed)
}

// MembershipID returns the membership to update.
func (c UpdateMembershipCommand) MembershipID() kernel.UUID {
	return c.membershipID
}

// Actor returns the requesting actor.
func (c UpdateMembershipCommand) Actor() kernel.Actor {
	return c.actor
}

// IsPrimary returns the requested primary flag change, nil when untouched.
func (c UpdateMembershipCommand) IsPrimary() *bool {
	return c.isPrimary
}

// CommunityID returns the requested community assignment, nil when untouched.
func (c UpdateMembershipCommand) CommunityID() *kernel.UUID {
	return c.communityID
}

func (c *UpdateMembershipCommand) setMembershipID(membershipID kernel.UUID) error {
	if err := membershipID.Validate(); err != nil {
		return err
	}

	c.membershipID = membershipID
	return nil
}

func (c *UpdateMembershipCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
