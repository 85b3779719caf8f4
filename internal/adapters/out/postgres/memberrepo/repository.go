package memberrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/membership"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMembershipRepository implements ports.MembershipRepository using GORM.
type GormMembershipRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormMembershipRepository creates a new GORM membership repository.
func NewGormMembershipRepository(db *gorm.DB, tracker aggregateTracker) *GormMembershipRepository {
	return &GormMembershipRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new membership to the database.
func (r *GormMembershipRepository) Add(ctx context.Context, aggregate *membership.Membership) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewResourceConflictErrorWithCause("membership",
				fmt.Sprintf("user %s already belongs to organization %s",
					aggregate.UserID(), aggregate.OrgID()), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing membership to the database.
func (r *GormMembershipRepository) Update(ctx context.Context, aggregate *membership.Membership) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a membership by ID.
func (r *GormMembershipRepository) Get(ctx context.Context, id kernel.UUID) (*membership.Membership, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MembershipDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("membership", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes a membership row.
func (r *GormMembershipRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&MembershipDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("membership", id.String())
	}
	return nil
}

// GetAllByUser retrieves every membership of the user with the given org type.
func (r *GormMembershipRepository) GetAllByUser(
	ctx context.Context,
	userID kernel.UUID,
	orgType membership.OrgType,
) ([]*membership.Membership, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MembershipDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "user_id = ? AND org_type = ?", userID.Bytes(), orgType.String()).Error
	if err != nil {
		return nil, err
	}

	memberships := make([]*membership.Membership, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}

	return memberships, nil
}

// GetByUserAndOrg retrieves the user's membership of one organization.
func (r *GormMembershipRepository) GetByUserAndOrg(
	ctx context.Context,
	userID, orgID kernel.UUID,
) (*membership.Membership, error) {
	if err := errors.Join(userID.Validate(), orgID.Validate()); err != nil {
		return nil, err
	}

	var dto MembershipDTO
	err := r.db.WithContext(ctx).
		First(&dto, "user_id = ? AND org_id = ?", userID.Bytes(), orgID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("membership",
				fmt.Sprintf("user %s in organization %s", userID, orgID))
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountPrimaryByOrg returns how many primary memberships an organization has.
func (r *GormMembershipRepository) CountPrimaryByOrg(ctx context.Context, orgID kernel.UUID) (int64, error) {
	if err := orgID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&MembershipDTO{}).
		Where("org_id = ? AND is_primary", orgID.Bytes()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// UpdateDriverStatusFrom flips a driver's availability with an optimistic
// check-and-set. The row is written only if it still holds the expected
// status; losing the race surfaces as a ResourceConflictError.
func (r *GormMembershipRepository) UpdateDriverStatusFrom(
	ctx context.Context,
	id kernel.UUID,
	from, to membership.DriverStatus,
) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&MembershipDTO{}).
		Where("id = ? AND driver_status = ?", id.Bytes(), from.String()).
		Update("driver_status", to.String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewResourceConflictError("driver",
			fmt.Sprintf("driver %s is no longer %s", id, from))
	}

	return nil
}
