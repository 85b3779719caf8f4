// Package memberrepo persists organization membership rows: the link between
// a user and a property, transport, or recycling company, together with the
// row's scope attribute and, for drivers, the availability status.
package memberrepo

import (
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/membership"

	"github.com/google/uuid"
)

// MembershipDTO represents the database structure for membership rows.
// The unique index on (user_id, org_id) is the storage-level duplicate guard.
// The partial index on primary rows only speeds up primary lookups; the
// one-primary-per-company invariant is enforced by the command layer, which
// demotes the old primary and promotes the new one in a single transaction.
type MembershipDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_memberships_user_org"`
	OrgID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_memberships_user_org;index"`
	OrgType string    `gorm:"size:16;index"`

	IsPrimary bool `gorm:"index:idx_memberships_org_primary,where:is_primary"`

	CommunityID *uuid.UUID `gorm:"type:uuid;index"`

	TransportRole       string `gorm:"size:16"`
	DriverStatus        string `gorm:"size:16;index"`
	DriverLicenseNumber string `gorm:"size:32"`

	RecyclingRole string `gorm:"size:16"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming convention to use "memberships".
func (MembershipDTO) TableName() string {
	return "memberships"
}

// fromDomain converts a membership aggregate to its database representation.
func fromDomain(aggregate *membership.Membership) MembershipDTO {
	s := aggregate.Snapshot()

	var communityID *uuid.UUID
	if s.CommunityID != nil {
		raw := s.CommunityID.Bytes()
		communityID = &raw
	}

	dto := MembershipDTO{
		ID:                  s.ID.Bytes(),
		UserID:              s.UserID.Bytes(),
		OrgID:               s.OrgID.Bytes(),
		OrgType:             s.OrgType.String(),
		IsPrimary:           s.IsPrimary,
		CommunityID:         communityID,
		DriverLicenseNumber: s.DriverLicenseNumber,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
	if s.TransportRole != membership.TransportRoleUnknown {
		dto.TransportRole = s.TransportRole.String()
	}
	if s.DriverStatus != membership.DriverStatusUnknown {
		dto.DriverStatus = s.DriverStatus.String()
	}
	if s.RecyclingRole != membership.RecyclingRoleUnknown {
		dto.RecyclingRole = s.RecyclingRole.String()
	}
	return dto
}

// toDomain converts a database row to a membership aggregate via
// RestoreMembership, which revalidates the scope attribute invariant.
func toDomain(dto MembershipDTO) (*membership.Membership, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	orgID, err := kernel.UUIDFromBytes(dto.OrgID[:])
	if err != nil {
		return nil, err
	}
	orgType, err := membership.OrgTypeFromString(dto.OrgType)
	if err != nil {
		return nil, err
	}

	var communityID *kernel.UUID
	if dto.CommunityID != nil {
		restored, idErr := kernel.UUIDFromBytes((*dto.CommunityID)[:])
		if idErr != nil {
			return nil, idErr
		}
		communityID = &restored
	}

	s := membership.Snapshot{
		ID:                  id,
		UserID:              userID,
		OrgID:               orgID,
		OrgType:             orgType,
		IsPrimary:           dto.IsPrimary,
		CommunityID:         communityID,
		DriverLicenseNumber: dto.DriverLicenseNumber,
		CreatedAt:           dto.CreatedAt,
		UpdatedAt:           dto.UpdatedAt,
	}
	if dto.TransportRole != "" {
		s.TransportRole, err = membership.TransportRoleFromString(dto.TransportRole)
		if err != nil {
			return nil, err
		}
	}
	if dto.DriverStatus != "" {
		s.DriverStatus, err = membership.DriverStatusFromString(dto.DriverStatus)
		if err != nil {
			return nil, err
		}
	}
	if dto.RecyclingRole != "" {
		s.RecyclingRole, err = membership.RecyclingRoleFromString(dto.RecyclingRole)
		if err != nil {
			return nil, err
		}
	}

	return membership.RestoreMembership(s)
}
