package kernel

import (
	"fmt"

	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// Role is the global role of a user, resolved by the external identity service.
// It determines which side of the order lifecycle an actor participates in;
// company-level permissions (primary manager, dispatcher, driver, community scope)
// are carried by membership rows, not by the role.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer places pickup orders and owns them until confirmation.
	RoleCustomer

	// RoleProperty confirms orders for communities managed by a property company.
	RoleProperty

	// RoleTransport assigns drivers and vehicles and executes the transport leg.
	RoleTransport

	// RoleRecycling confirms delivery at the recycling station and completes orders.
	RoleRecycling

	// RoleAdmin is the platform operator role. Admin users normally also carry
	// the superuser flag; the role alone grants nothing in the core.
	RoleAdmin
)

func roleStrings() map[Role]string {
	return map[Role]string{
		RoleCustomer:  "customer",
		RoleProperty:  "property",
		RoleTransport: "transport",
		RoleRecycling: "recycling",
		RoleAdmin:     "admin",
	}
}

// RoleFromString parses the wire representation of a role ("customer", "property", ...).
func RoleFromString(s string) (Role, error) {
	for role, str := range roleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate reports whether the role is one of the defined values.
func (r Role) Validate() error {
	if _, ok := roleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the lowercase wire representation, or "unknown".
func (r Role) String() string {
	if s, ok := roleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// ErrActorIsNotConstructed indicates an Actor that was not created via NewActor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("Actor must be created via NewActor")

// Actor is the authenticated principal acting on the system: the resolved user id,
// its global role, and the superuser flag. Every core operation receives the actor
// explicitly; there is no ambient "current user".
//
// A superuser bypasses role and scope guards but never state-machine preconditions:
// even a superuser cannot skip order statuses.
type Actor struct {
	id          UUID
	role        Role
	isSuperuser bool

	guard ConstructorGuard
}

// NewActor creates an actor from a resolved identity. The id must be valid and the
// role one of the defined values.
func NewActor(id UUID, role Role, isSuperuser bool) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{
		id:          id,
		role:        role,
		isSuperuser: isSuperuser,
		guard:       NewConstructorGuard(),
	}, nil
}

// Validate ensures the actor was created via NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the actor's user id.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the actor's global role.
func (a Actor) Role() Role {
	return a.role
}

// IsSuperuser reports whether the actor bypasses role and scope guards.
func (a Actor) IsSuperuser() bool {
	return a.isSuperuser
}
