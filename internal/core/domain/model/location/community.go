package location

import (
	"errors"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// ErrCommunityIsNotConstructed is returned when a Community instance was not
// created through NewCommunity or RestoreCommunity.
var ErrCommunityIsNotConstructed = errors.New("Community must be created via NewCommunity or RestoreCommunity")

// Community is a residential compound owned by exactly one property company.
// Property memberships reference it to scope which orders their holders may
// see and confirm.
type Community struct {
	id       kernel.UUID
	orgID    kernel.UUID
	name     string
	city     string
	district string

	createdAt time.Time

	guard kernel.ConstructorGuard
}

// NewCommunity creates a community owned by the given property company.
func NewCommunity(id, orgID kernel.UUID, name, city, district string, now time.Time) (*Community, error) {
	if err := errors.Join(id.Validate(), orgID.Validate()); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return &Community{
		id:        id,
		orgID:     orgID,
		name:      name,
		city:      city,
		district:  district,
		createdAt: now,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// RestoreCommunity reconstructs a community from its persisted state.
func RestoreCommunity(id, orgID kernel.UUID, name, city, district string, createdAt time.Time) (*Community, error) {
	return NewCommunity(id, orgID, name, city, district, createdAt)
}

// Validate ensures the community was created through a constructor.
func (c *Community) Validate() error {
	if c == nil {
		return ErrCommunityIsNotConstructed
	}
	return c.guard.Validate(ErrCommunityIsNotConstructed)
}

// ID returns the community's unique identifier.
func (c *Community) ID() kernel.UUID { return c.id }

// OrgID returns the property company that owns the community.
func (c *Community) OrgID() kernel.UUID { return c.orgID }

// Name returns the community name.
func (c *Community) Name() string { return c.name }

// City returns the city the community is in.
func (c *Community) City() string { return c.city }

// District returns the district the community is in.
func (c *Community) District() string { return c.district }

// CreatedAt returns the creation time.
func (c *Community) CreatedAt() time.Time { return c.createdAt }
