package location

import (
	"errors"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// ErrAddressIsNotConstructed is returned when an Address instance was not
// created through NewAddress or RestoreAddress.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress or RestoreAddress")

// Address is a concrete pickup point inside a community, owned by the customer
// who registered it.
type Address struct {
	id          kernel.UUID
	ownerID     kernel.UUID
	communityID kernel.UUID
	detail      string

	createdAt time.Time

	guard kernel.ConstructorGuard
}

// NewAddress creates an address inside a community.
func NewAddress(id, ownerID, communityID kernel.UUID, detail string, now time.Time) (*Address, error) {
	if err := errors.Join(id.Validate(), ownerID.Validate(), communityID.Validate()); err != nil {
		return nil, err
	}
	if detail == "" {
		return nil, errs.NewValueIsRequiredError("detail")
	}

	return &Address{
		id:          id,
		ownerID:     ownerID,
		communityID: communityID,
		detail:      detail,
		createdAt:   now,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// RestoreAddress reconstructs an address from its persisted state.
func RestoreAddress(id, ownerID, communityID kernel.UUID, detail string, createdAt time.Time) (*Address, error) {
	return NewAddress(id, ownerID, communityID, detail, createdAt)
}

// Validate ensures the address was created through a constructor.
func (a *Address) Validate() error {
	if a == nil {
		return ErrAddressIsNotConstructed
	}
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// ID returns the address's unique identifier.
func (a *Address) ID() kernel.UUID { return a.id }

// OwnerID returns the customer who registered the address.
func (a *Address) OwnerID() kernel.UUID { return a.ownerID }

// CommunityID returns the community the address belongs to.
func (a *Address) CommunityID() kernel.UUID { return a.communityID }

// Detail returns the free-form street and unit text.
func (a *Address) Detail() string { return a.detail }

// CreatedAt returns the creation time.
func (a *Address) CreatedAt() time.Time { return a.createdAt }
