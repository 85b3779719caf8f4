package commands

import (
	"errors"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/membership"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
	"github.com/esp3j0/waste-transort/internal/pkg/guard"
)

var (
	ErrCreateMembershipCommandIsNotConstructed = errors.New(
		"CreateMembershipCommand must be created via NewCreateMembershipCommand constructor",
	)
)

// MembershipSpec describes the membership row to create. Which attribute
// fields apply depends on OrgType and IsPrimary; the aggregate constructors
// validate the combination.
type MembershipSpec struct {
	UserID  kernel.UUID
	OrgID   kernel.UUID
	OrgType membership.OrgType

	IsPrimary bool

	CommunityID         *kernel.UUID
	TransportRole       membership.TransportRole
	DriverLicenseNumber string
	RecyclingRole       membership.RecyclingRole
}

// CreateMembershipCommand represents a request to assign a user to an
// organization. Only the organization's primary member or a superuser may
// issue it.
type CreateMembershipCommand struct { //nolint:recvcheck //using for validation
	membershipID kernel.UUID
	actor        kernel.Actor
	spec         MembershipSpec

	guard guard.ConstructorGuard
}

// NewCreateMembershipCommand creates a command to add a membership row.
func NewCreateMembershipCommand(
	membershipID kernel.UUID,
	actor kernel.Actor,
	spec MembershipSpec,
) (CreateMembershipCommand, error) {
	cmd := CreateMembershipCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMembershipID(membershipID),
		cmd.setActor(actor),
		cmd.setSpec(spec),
	); err != nil {
		return CreateMembershipCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateMembershipCommand) Validate() error {
	return c.guard.Validate(ErrCreateMembershipCommandIsNotConstructed)
}

// MembershipID returns the identifier for the new membership.
func (c CreateMembershipCommand) MembershipID() kernel.UUID {
	return c.membershipID
}

// Actor returns the requesting actor.
func (c CreateMembershipCommand) Actor() kernel.Actor {
	return c.actor
}

// Spec returns the membership description.
func (c CreateMembershipCommand) Spec() MembershipSpec {
	return c.spec
}

// NewAggregate constructs the membership aggregate the spec describes.
func (c CreateMembershipCommand) NewAggregate(now time.Time) (*membership.Membership, error) {
	if c.spec.IsPrimary {
		return membership.NewPrimaryMembership(
			c.membershipID, c.spec.UserID, c.spec.OrgID, c.spec.OrgType, now)
	}

	switch c.spec.OrgType {
	case membership.OrgTypeProperty:
		if c.spec.CommunityID == nil {
			return nil, errs.NewValueIsRequiredError("communityId")
		}
		return membership.NewPropertyMembership(
			c.membershipID, c.spec.UserID, c.spec.OrgID, *c.spec.CommunityID, now)
	case membership.OrgTypeTransport:
		return membership.NewTransportMembership(
			c.membershipID, c.spec.UserID, c.spec.OrgID,
			c.spec.TransportRole, c.spec.DriverLicenseNumber, now)
	default:
		return membership.NewRecyclingMembership(
			c.membershipID, c.spec.UserID, c.spec.OrgID, c.spec.RecyclingRole, now)
	}
}

func (c *CreateMembershipCommand) setMembershipID(membershipID kernel.UUID) error {
	if err := membershipID.Validate(); err != nil {
		return err
	}

	c.membershipID = membershipID
	return nil
}

func (c *CreateMembershipCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateMembershipCommand) setSpec(spec MembershipSpec) error {
	if err := errors.Join(
		spec.UserID.Validate(),
		spec.OrgID.Validate(),
		spec.OrgType.Validate(),
	); err != nil {
		return err
	}

	c.spec = spec
	return nil
}
