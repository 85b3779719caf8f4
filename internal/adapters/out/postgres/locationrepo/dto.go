// Package locationrepo persists communities and customer addresses. Both are
// read-mostly reference data for order creation and scope resolution.
package locationrepo

import (
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/location"

	"github.com/google/uuid"
)

// CommunityDTO represents the database structure for community rows.
type CommunityDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID uuid.UUID `gorm:"type:uuid;index"`

	Name     string `gorm:"size:128"`
	City     string `gorm:"size:64"`
	District string `gorm:"size:64"`

	CreatedAt time.Time
}

// TableName overrides GORM's default naming convention to use "communities".
func (CommunityDTO) TableName() string {
	return "communities"
}

// AddressDTO represents the database structure for address rows.
type AddressDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index"`
	CommunityID uuid.UUID `gorm:"type:uuid;index"`

	Detail string

	CreatedAt time.Time
}

// TableName overrides GORM's default naming convention to use "addresses".
func (AddressDTO) TableName() string {
	return "addresses"
}

func communityFromDomain(c *location.Community) CommunityDTO {
	return CommunityDTO{
		ID:        c.ID().Bytes(),
		OrgID:     c.OrgID().Bytes(),
		Name:      c.Name(),
		City:      c.City(),
		District:  c.District(),
		CreatedAt: c.CreatedAt(),
	}
}

func communityToDomain(dto CommunityDTO) (*location.Community, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orgID, err := kernel.UUIDFromBytes(dto.OrgID[:])
	if err != nil {
		return nil, err
	}
	return location.RestoreCommunity(id, orgID, dto.Name, dto.City, dto.District, dto.CreatedAt)
}

func addressFromDomain(a *location.Address) AddressDTO {
	return AddressDTO{
		ID:          a.ID().Bytes(),
		OwnerID:     a.OwnerID().Bytes(),
		CommunityID: a.CommunityID().Bytes(),
		Detail:      a.Detail(),
		CreatedAt:   a.CreatedAt(),
	}
}

func addressToDomain(dto AddressDTO) (*location.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	communityID, err := kernel.UUIDFromBytes(dto.CommunityID[:])
	if err != nil {
		return nil, err
	}
	return location.RestoreAddress(id, ownerID, communityID, dto.Detail, dto.CreatedAt)
}
