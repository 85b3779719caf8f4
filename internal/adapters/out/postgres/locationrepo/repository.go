package locationrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/location"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAddressRepository implements ports.AddressRepository using GORM.
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GORM address repository.
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// Get retrieves an address by ID.
func (r *GormAddressRepository) Get(ctx context.Context, id kernel.UUID) (*location.Address, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AddressDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("address", id.String())
		}
		return nil, err
	}

	return addressToDomain(dto)
}

// GormCommunityRepository implements ports.CommunityRepository using GORM.
type GormCommunityRepository struct {
	db *gorm.DB
}

// NewGormCommunityRepository creates a new GORM community repository.
func NewGormCommunityRepository(db *gorm.DB) *GormCommunityRepository {
	return &GormCommunityRepository{db: db}
}

// Get retrieves a community by ID.
func (r *GormCommunityRepository) Get(ctx context.Context, id kernel.UUID) (*location.Community, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CommunityDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("community", id.String())
		}
		return nil, err
	}

	return communityToDomain(dto)
}

// GetIDsByOrgs retrieves the community ids managed by each given property
// company. Companies without communities are absent from the result.
func (r *GormCommunityRepository) GetIDsByOrgs(
	ctx context.Context, orgIDs []kernel.UUID) (map[kernel.UUID][]kernel.UUID, error) {
	if len(orgIDs) == 0 {
		return map[kernel.UUID][]kernel.UUID{}, nil
	}

	ids := make([]uuid.UUID, 0, len(orgIDs))
	for _, orgID := range orgIDs {
		if err := orgID.Validate(); err != nil {
			return nil, err
		}
		ids = append(ids, orgID.Bytes())
	}

	var rows []CommunityDTO
	err := r.db.WithContext(ctx).
		Select("id", "org_id").
		Where("org_id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[kernel.UUID][]kernel.UUID, len(orgIDs))
	for _, row := range rows {
		orgID, err := kernel.UUIDFromBytes(row.OrgID[:])
		if err != nil {
			return nil, err
		}
		communityID, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return nil, err
		}
		result[orgID] = append(result[orgID], communityID)
	}

	return result, nil
}

// Add saves a new community to the database. Reference data is seeded rather
// than managed through the domain, so both repositories write without an
// aggregate tracker.
func (r *GormCommunityRepository) Add(ctx context.Context, community *location.Community) error {
	if err := community.Validate(); err != nil {
		return err
	}

	dto := communityFromDomain(community)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewResourceConflictErrorWithCause(
				"community", fmt.Sprintf("community %s already exists", community.ID()), err)
		}
		return err
	}
	return nil
}

// Add saves a new address to the database.
func (r *GormAddressRepository) Add(ctx context.Context, address *location.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	dto := addressFromDomain(address)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewResourceConflictErrorWithCause(
				"address", fmt.Sprintf("address %s already exists", address.ID()), err)
		}
		return err
	}
	return nil
}
