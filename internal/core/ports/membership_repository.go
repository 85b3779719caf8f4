package ports

import (
	"context"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/membership"
)

// MembershipRepository defines the persistence contract for membership
// aggregates across all three organization types.
type MembershipRepository interface {
	// Add persists a new membership. The store rejects a duplicate membership
	// for the same user and organization.
	Add(ctx context.Context, aggregate *membership.Membership) error

	// Update persists changes to an existing membership.
	Update(ctx context.Context, aggregate *membership.Membership) error

	// Get retrieves a membership by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*membership.Membership, error)

	// Delete removes a membership row.
	Delete(ctx context.Context, id kernel.UUID) error

	// GetAllByUser retrieves every membership of the user with the given org
	// type, the input to scope resolution.
	GetAllByUser(ctx context.Context, userID kernel.UUID, orgType membership.OrgType) ([]*membership.Membership, error)

	// GetByUserAndOrg retrieves the user's membership of one organization,
	// or an ObjectNotFoundError.
	GetByUserAndOrg(ctx context.Context, userID, orgID kernel.UUID) (*membership.Membership, error)

	// CountPrimaryByOrg returns how many primary memberships an organization
	// has. Used to guard sole-primary demotion and duplicate-primary creation.
	CountPrimaryByOrg(ctx context.Context, orgID kernel.UUID) (int64, error)

	// UpdateDriverStatusFrom performs an optimistic check-and-set on a driver's
	// availability: the row is updated only if it still holds the expected
	// status. A lost race surfaces as a ResourceConflictError. This is what
	// keeps two concurrent assignments from both taking the same driver.
	UpdateDriverStatusFrom(ctx context.Context, id kernel.UUID, from, to membership.DriverStatus) error
}
