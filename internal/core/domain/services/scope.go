package services

import (
	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/membership"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
)

// PropertyScope is the set of communities a property actor may act upon.
type PropertyScope struct {
	communityIDs map[kernel.UUID]struct{}
}

// ResolvePropertyScope computes a property actor's accessible communities as
// the union over all their property memberships: a primary membership
// contributes every community of its company (looked up by the caller and
// passed in communitiesByOrg), a scoped membership contributes its single
// community. An actor may be primary in one company and scoped in another at
// the same time.
func ResolvePropertyScope(
	memberships []*membership.Membership,
	communitiesByOrg map[kernel.UUID][]kernel.UUID,
) PropertyScope {
	scope := PropertyScope{communityIDs: make(map[kernel.UUID]struct{})}

	for _, m := range memberships {
		if m.OrgType() != membership.OrgTypeProperty {
			continue
		}
		if m.IsPrimary() {
			for _, communityID := range communitiesByOrg[m.OrgID()] {
				scope.communityIDs[communityID] = struct{}{}
			}
			continue
		}
		if communityID := m.CommunityID(); communityID != nil {
			scope.communityIDs[*communityID] = struct{}{}
		}
	}

	return scope
}

// ContainsCommunity reports whether the community is in the accessible set.
func (s PropertyScope) ContainsCommunity(communityID kernel.UUID) bool {
	_, ok := s.communityIDs[communityID]
	return ok
}

// CommunityIDs returns the accessible communities for query filtering.
func (s PropertyScope) CommunityIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(s.communityIDs))
	for id := range s.communityIDs {
		ids = append(ids, id)
	}
	return ids
}

// IsEmpty reports whether the scope grants access to nothing. A zero-membership
// actor yields an empty scope, not an error.
func (s PropertyScope) IsEmpty() bool {
	return len(s.communityIDs) == 0
}

// TransportScope is what a transport actor may act upon: companies where they
// dispatch (primary or dispatcher role) and the driver associations they hold.
type TransportScope struct {
	companyIDs           map[kernel.UUID]struct{}
	driverAssociationIDs map[kernel.UUID]struct{}
}

// ResolveTransportScope computes a transport actor's scope from their transport
// memberships. A primary or dispatcher membership grants dispatch access to the
// whole company; a driver membership grants access only to orders bound to that
// driver association.
func ResolveTransportScope(memberships []*membership.Membership) TransportScope {
	scope := TransportScope{
		companyIDs:           make(map[kernel.UUID]struct{}),
		driverAssociationIDs: make(map[kernel.UUID]struct{}),
	}

	for _, m := range memberships {
		if m.OrgType() != membership.OrgTypeTransport {
			continue
		}
		if m.CanDispatch() {
			scope.companyIDs[m.OrgID()] = struct{}{}
		}
		if m.IsDriver() {
			scope.driverAssociationIDs[m.ID()] = struct{}{}
		}
	}

	return scope
}

// ContainsCompany reports whether the actor dispatches for the company.
func (s TransportScope) ContainsCompany(companyID kernel.UUID) bool {
	_, ok := s.companyIDs[companyID]
	return ok
}

// ContainsDriverAssociation reports whether the actor holds the driver association.
func (s TransportScope) ContainsDriverAssociation(associationID kernel.UUID) bool {
	_, ok := s.driverAssociationIDs[associationID]
	return ok
}

// CompanyIDs returns the dispatchable companies for query filtering.
func (s TransportScope) CompanyIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(s.companyIDs))
	for id := range s.companyIDs {
		ids = append(ids, id)
	}
	return ids
}

// DriverAssociationIDs returns the held driver associations for query filtering.
func (s TransportScope) DriverAssociationIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(s.driverAssociationIDs))
	for id := range s.driverAssociationIDs {
		ids = append(ids, id)
	}
	return ids
}

// IsEmpty reports whether the scope grants access to nothing.
func (s TransportScope) IsEmpty() bool {
	return len(s.companyIDs) == 0 && len(s.driverAssociationIDs) == 0
}

// RecyclingScope is the set of recycling companies an actor belongs to. Any
// membership of a station, primary or scoped, grants access to its orders.
type RecyclingScope struct {
	companyIDs map[kernel.UUID]struct{}
}

// ResolveRecyclingScope computes a recycling actor's scope from their
// recycling memberships.
func ResolveRecyclingScope(memberships []*membership.Membership) RecyclingScope {
	scope := RecyclingScope{companyIDs: make(map[kernel.UUID]struct{})}

	for _, m := range memberships {
		if m.OrgType() != membership.OrgTypeRecycling {
			continue
		}
		scope.companyIDs[m.OrgID()] = struct{}{}
	}

	return scope
}

// ContainsCompany reports whether the actor belongs to the company.
func (s RecyclingScope) ContainsCompany(companyID kernel.UUID) bool {
	_, ok := s.companyIDs[companyID]
	return ok
}

// CompanyIDs returns the member companies for query filtering.
func (s RecyclingScope) CompanyIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(s.companyIDs))
	for id := range s.companyIDs {
		ids = append(ids, id)
	}
	return ids
}

// IsEmpty reports whether the scope grants access to nothing.
func (s RecyclingScope) IsEmpty() bool {
	return len(s.companyIDs) == 0
}

// Scope bundles the per-side scopes resolved for one actor. Sides the actor has
// no memberships in stay empty.
type Scope struct {
	Property  PropertyScope
	Transport TransportScope
	Recycling RecyclingScope
}

// NewScope resolves all three sides from the actor's memberships.
func NewScope(
	memberships []*membership.Membership,
	communitiesByOrg map[kernel.UUID][]kernel.UUID,
) Scope {
	return Scope{
		Property:  ResolvePropertyScope(memberships, communitiesByOrg),
		Transport: ResolveTransportScope(memberships),
		Recycling: ResolveRecyclingScope(memberships),
	}
}

// AllowsView reports whether the actor may read the order. Customers see their
// own orders, property actors see orders in their communities, transport
// actors see orders of their companies or bound to their driver association
// plus the property-confirmed pool awaiting assignment, recycling actors see
// orders of their companies plus the delivered pool awaiting confirmation.
// Superusers see everything.
func (s Scope) AllowsView(actor kernel.Actor, o *order.Order) bool {
	if actor.IsSuperuser() {
		return true
	}

	switch actor.Role() {
	case kernel.RoleCustomer:
		return o.CustomerID().IsEqual(actor.ID())

	case kernel.RoleProperty:
		return s.Property.ContainsCommunity(o.CommunityID())

	case kernel.RoleTransport:
		if companyID := o.TransportCompanyID(); companyID != nil && s.Transport.ContainsCompany(*companyID) {
			return true
		}
		if assocID := o.DriverAssociationID(); assocID != nil && s.Transport.ContainsDriverAssociation(*assocID) {
			return true
		}
		// dispatchers pick unassigned work from the confirmed pool
		return o.Status() == order.StatusPropertyConfirmed && len(s.Transport.companyIDs) > 0

	case kernel.RoleRecycling:
		if companyID := o.RecyclingCompanyID(); companyID != nil && s.Recycling.ContainsCompany(*companyID) {
			return true
		}
		// stations see arriving loads before confirmation binds them
		return o.Status() == order.StatusDelivered && len(s.Recycling.companyIDs) > 0
	}

	return false
}
