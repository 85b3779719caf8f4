package membership

import (
	"errors"
	"fmt"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

var (
	// ErrMembershipIsNotConstructed is returned when a Membership instance was not
	// created through one of the New*Membership constructors or RestoreMembership.
	ErrMembershipIsNotConstructed = errors.New(
		"Membership must be created via NewPrimaryMembership, NewPropertyMembership, NewTransportMembership, NewRecyclingMembership or RestoreMembership")
)

// Membership links a user to an organization and carries the org-type specific
// scope attributes that authorization and allocation read.
//
// Invariants:
//   - a primary membership needs no scope attribute; it grants company-wide access
//   - a non-primary property membership carries exactly one managed community
//   - a non-primary transport membership carries a transport role; drivers
//     additionally carry a license number and a driver status
//   - a non-primary recycling membership carries a recycling role
//   - one primary membership per organization, enforced by the command layer
//     which swaps the primary flag transactionally
type Membership struct {
	id      kernel.UUID
	userID  kernel.UUID
	orgID   kernel.UUID
	orgType OrgType

	isPrimary bool

	communityID *kernel.UUID

	transportRole       TransportRole
	driverStatus        DriverStatus
	driverLicenseNumber string

	recyclingRole RecyclingRole

	createdAt time.Time
	updatedAt time.Time

	guard kernel.ConstructorGuard
}

// NewPrimaryMembership creates the company-wide administrator membership of an
// organization. Primary members carry no scope attribute.
func NewPrimaryMembership(
	id kernel.UUID,
	userID kernel.UUID,
	orgID kernel.UUID,
	orgType OrgType,
	now time.Time,
) (*Membership, error) {
	m := newMembership(orgType, true, now)
	if err := errors.Join(
		m.setIdentity(id, userID, orgID),
		orgType.Validate(),
	); err != nil {
		return nil, err
	}
	return m, nil
}

// NewPropertyMembership creates a scoped membership of a property company
// restricted to a single managed community.
func NewPropertyMembership(
	id kernel.UUID,
	userID kernel.UUID,
	orgID kernel.UUID,
	communityID kernel.UUID,
	now time.Time,
) (*Membership, error) {
	m := newMembership(OrgTypeProperty, false, now)
	if err := m.setIdentity(id, userID, orgID); err != nil {
		return nil, err
	}
	if err := communityID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("communityId", err)
	}
	m.communityID = &communityID
	return m, nil
}

// NewTransportMembership creates a scoped membership of a transport company.
// Drivers start available and must carry a license number; dispatchers carry
// neither.
func NewTransportMembership(
	id kernel.UUID,
	userID kernel.UUID,
	orgID kernel.UUID,
	role TransportRole,
	licenseNumber string,
	now time.Time,
) (*Membership, error) {
	m := newMembership(OrgTypeTransport, false, now)
	if err := errors.Join(
		m.setIdentity(id, userID, orgID),
		role.Validate(),
	); err != nil {
		return nil, err
	}

	m.transportRole = role
	if role == TransportRoleDriver {
		if licenseNumber == "" {
			return nil, errs.NewValueIsRequiredError("driverLicenseNumber")
		}
		m.driverLicenseNumber = licenseNumber
		m.driverStatus = DriverStatusAvailable
	} else if licenseNumber != "" {
		return nil, errs.NewValueIsInvalidErrorWithCause("driverLicenseNumber",
			errors.New("only drivers carry a license number"))
	}

	return m, nil
}

// NewRecyclingMembership creates a scoped membership of a recycling station.
func NewRecyclingMembership(
	id kernel.UUID,
	userID kernel.UUID,
	orgID kernel.UUID,
	role RecyclingRole,
	now time.Time,
) (*Membership, error) {
	m := newMembership(OrgTypeRecycling, false, now)
	if err := errors.Join(
		m.setIdentity(id, userID, orgID),
		role.Validate(),
	); err != nil {
		return nil, err
	}
	m.recyclingRole = role
	return m, nil
}

func newMembership(orgType OrgType, isPrimary bool, now time.Time) *Membership {
	return &Membership{
		orgType:   orgType,
		isPrimary: isPrimary,
		createdAt: now,
		updatedAt: now,
		guard:     kernel.NewConstructorGuard(),
	}
}

// Snapshot is the flattened persisted state of a membership.
type Snapshot struct {
	ID      kernel.UUID
	UserID  kernel.UUID
	OrgID   kernel.UUID
	OrgType OrgType

	IsPrimary bool

	CommunityID *kernel.UUID

	TransportRole       TransportRole
	DriverStatus        DriverStatus
	DriverLicenseNumber string

	RecyclingRole RecyclingRole

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RestoreMembership reconstructs a membership from its persisted snapshot,
// revalidating the org-type specific invariants.
func RestoreMembership(s Snapshot) (*Membership, error) {
	m := &Membership{
		orgType:             s.OrgType,
		isPrimary:           s.IsPrimary,
		communityID:         s.CommunityID,
		transportRole:       s.TransportRole,
		driverStatus:        s.DriverStatus,
		driverLicenseNumber: s.DriverLicenseNumber,
		recyclingRole:       s.RecyclingRole,
		createdAt:           s.CreatedAt,
		updatedAt:           s.UpdatedAt,
		guard:               kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setIdentity(s.ID, s.UserID, s.OrgID),
		s.OrgType.Validate(),
	); err != nil {
		return nil, err
	}

	if err := m.validateScopeAttribute(); err != nil {
		return nil, err
	}

	return m, nil
}

// Snapshot returns the flattened persisted state of the membership.
func (m *Membership) Snapshot() Snapshot {
	return Snapshot{
		ID:                  m.id,
		UserID:              m.userID,
		OrgID:               m.orgID,
		OrgType:             m.orgType,
		IsPrimary:           m.isPrimary,
		CommunityID:         m.communityID,
		TransportRole:       m.transportRole,
		DriverStatus:        m.driverStatus,
		DriverLicenseNumber: m.driverLicenseNumber,
		RecyclingRole:       m.recyclingRole,
		CreatedAt:           m.createdAt,
		UpdatedAt:           m.updatedAt,
	}
}

// Validate ensures the membership was created through a constructor.
func (m *Membership) Validate() error {
	if m == nil {
		return ErrMembershipIsNotConstructed
	}
	return m.guard.Validate(ErrMembershipIsNotConstructed)
}

// IsEqual compares memberships by identity.
func (m *Membership) IsEqual(other *Membership) bool {
	return other != nil && m.id.IsEqual(other.id)
}

// ID returns the membership's unique identifier.
func (m *Membership) ID() kernel.UUID { return m.id }

// UserID returns the member's user id.
func (m *Membership) UserID() kernel.UUID { return m.userID }

// OrgID returns the organization the user belongs to.
func (m *Membership) OrgID() kernel.UUID { return m.orgID }

// OrgType returns which coordination side the organization belongs to.
func (m *Membership) OrgType() OrgType { return m.orgType }

// IsPrimary reports whether this is the organization's primary membership.
func (m *Membership) IsPrimary() bool { return m.isPrimary }

// CommunityID returns the managed community for scoped property memberships,
// nil for primary members who see every community of the company.
func (m *Membership) CommunityID() *kernel.UUID { return m.communityID }

// TransportRole returns the in-company role for scoped transport memberships.
func (m *Membership) TransportRole() TransportRole { return m.transportRole }

// DriverStatus returns the driver's availability, DriverStatusUnknown for non-drivers.
func (m *Membership) DriverStatus() DriverStatus { return m.driverStatus }

// DriverLicenseNumber returns the driver's license number, empty for non-drivers.
func (m *Membership) DriverLicenseNumber() string { return m.driverLicenseNumber }

// RecyclingRole returns the in-station role for scoped recycling memberships.
func (m *Membership) RecyclingRole() RecyclingRole { return m.recyclingRole }

// CreatedAt returns the creation time.
func (m *Membership) CreatedAt() time.Time { return m.createdAt }

// UpdatedAt returns the last mutation time.
func (m *Membership) UpdatedAt() time.Time { return m.updatedAt }

// IsDriver reports whether the membership is a transport driver.
func (m *Membership) IsDriver() bool {
	return m.orgType == OrgTypeTransport && m.transportRole == TransportRoleDriver
}

// CanDispatch reports whether the membership may assign drivers and vehicles:
// the company's primary member or a dispatcher.
func (m *Membership) CanDispatch() bool {
	return m.orgType == OrgTypeTransport && (m.isPrimary || m.transportRole == TransportRoleDispatcher)
}

// Allocate flips an available driver to busy. Non-drivers and drivers in any
// other status are rejected with a resource conflict.
func (m *Membership) Allocate(now time.Time) error {
	if !m.IsDriver() {
		return errs.NewValueIsInvalidErrorWithCause("membershipId",
			fmt.Errorf("membership %s is not a driver", m.id))
	}
	if m.driverStatus != DriverStatusAvailable {
		return errs.NewResourceConflictError("driver",
			fmt.Sprintf("driver %s is %s, not available", m.id, m.driverStatus))
	}

	m.driverStatus = DriverStatusBusy
	m.touch(now)
	return nil
}

// Release flips a busy driver back to available. Releasing a driver who is not
// busy is a no-op so that sweeps and delivery handlers need no pre-check.
func (m *Membership) Release(now time.Time) error {
	if !m.IsDriver() {
		return errs.NewValueIsInvalidErrorWithCause("membershipId",
			fmt.Errorf("membership %s is not a driver", m.id))
	}
	if m.driverStatus != DriverStatusBusy {
		return nil
	}

	m.driverStatus = DriverStatusAvailable
	m.touch(now)
	return nil
}

// SetDriverStatus records a manual availability change, e.g. a driver going off
// duty. Busy is owned by the allocator and cannot be entered or left manually.
func (m *Membership) SetDriverStatus(status DriverStatus, now time.Time) error {
	if !m.IsDriver() {
		return errs.NewValueIsInvalidErrorWithCause("membershipId",
			fmt.Errorf("membership %s is not a driver", m.id))
	}
	if err := status.Validate(); err != nil {
		return err
	}
	if status == DriverStatusBusy {
		return errs.NewValueIsInvalidErrorWithCause("driverStatus",
			errors.New("busy is set by order assignment, not manually"))
	}
	if m.driverStatus == DriverStatusBusy {
		return errs.NewResourceConflictError("driver",
			fmt.Sprintf("driver %s is busy with an active order", m.id))
	}

	m.driverStatus = status
	m.touch(now)
	return nil
}

// MakePrimary promotes the membership to the organization's primary one.
// Demoting the previous primary first is the command layer's job.
func (m *Membership) MakePrimary(now time.Time) {
	m.isPrimary = true
	m.touch(now)
}

// ClearPrimary demotes a primary membership back to a scoped one. The demoted
// row must already carry the scope attribute its org type requires; whether a
// replacement primary exists is checked by the command layer.
func (m *Membership) ClearPrimary(now time.Time) error {
	if !m.isPrimary {
		return nil
	}

	m.isPrimary = false
	if err := m.validateScopeAttribute(); err != nil {
		m.isPrimary = true
		return err
	}
	m.touch(now)
	return nil
}

// AssignCommunity sets the managed community of a property membership.
func (m *Membership) AssignCommunity(communityID kernel.UUID, now time.Time) error {
	if m.orgType != OrgTypeProperty {
		return errs.NewValueIsInvalidErrorWithCause("communityId",
			fmt.Errorf("membership %s is not a property membership", m.id))
	}
	if err := communityID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("communityId", err)
	}
	m.communityID = &communityID
	m.touch(now)
	return nil
}

func (m *Membership) touch(now time.Time) {
	m.updatedAt = now
}

func (m *Membership) setIdentity(id, userID, orgID kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	if err := orgID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orgId", err)
	}
	m.id = id
	m.userID = userID
	m.orgID = orgID
	return nil
}

// validateScopeAttribute enforces that non-primary memberships carry the scope
// attribute of their org type. Primary memberships may carry one but need not.
func (m *Membership) validateScopeAttribute() error {
	if m.communityID != nil {
		if err := m.communityID.Validate(); err != nil {
			return err
		}
	}
	if m.IsDriver() {
		if err := m.driverStatus.Validate(); err != nil {
			return err
		}
		if m.driverLicenseNumber == "" {
			return errs.NewValueIsRequiredError("driverLicenseNumber")
		}
	}

	if m.isPrimary {
		return nil
	}

	switch m.orgType {
	case OrgTypeProperty:
		if m.communityID == nil {
			return errs.NewValueIsRequiredError("communityId")
		}
	case OrgTypeTransport:
		if err := m.transportRole.Validate(); err != nil {
			return err
		}
	case OrgTypeRecycling:
		if err := m.recyclingRole.Validate(); err != nil {
			return err
		}
	}
	return nil
}
