package ports

import (
	"context"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/location"
)

// AddressRepository defines the read contract for customer addresses. Address
// CRUD itself lives outside this module; order creation only needs the lookup
// that derives the community from the chosen address.
type AddressRepository interface {
	// Get retrieves an address by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*location.Address, error)
}

// CommunityRepository defines the read contract for communities.
type CommunityRepository interface {
	// Get retrieves a community by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*location.Community, error)

	// GetIDsByOrgs retrieves, for each given property company, the ids of the
	// communities it manages. The input to primary-membership scope expansion.
	GetIDsByOrgs(ctx context.Context, orgIDs []kernel.UUID) (map[kernel.UUID][]kernel.UUID, error)
}
