// Package scopes resolves an actor's authorization scope from the membership
// store. Commands and queries both consume the resolver so that single-order
// guards and list filtering always agree on what an actor may see.
package scopes

import (
	"context"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/membership"
	"github.com/esp3j0/waste-transort/internal/core/domain/services"
	"github.com/esp3j0/waste-transort/internal/core/ports"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// Resolver fetches an actor's memberships and computes their scope. Scope
// reads only gate access and never mutate shared state, so the resolver runs
// outside the command transaction.
type Resolver struct {
	membershipRepository ports.MembershipRepository
	communityRepository  ports.CommunityRepository
}

// NewResolver creates a Resolver over the membership and community stores.
func NewResolver(
	membershipRepository ports.MembershipRepository,
	communityRepository ports.CommunityRepository,
) (Resolver, error) {
	if membershipRepository == nil {
		return Resolver{}, errs.NewValueIsRequiredError("membershipRepository")
	}
	if communityRepository == nil {
		return Resolver{}, errs.NewValueIsRequiredError("communityRepository")
	}
	return Resolver{
		membershipRepository: membershipRepository,
		communityRepository:  communityRepository,
	}, nil
}

// Resolve computes the scope for the actor's role. Roles without memberships
// resolve to an empty scope, not an error. Superusers get an empty scope too;
// guards and visibility checks bypass scope for them anyway.
func (r Resolver) Resolve(ctx context.Context, actor kernel.Actor) (services.Scope, error) {
	if err := actor.Validate(); err != nil {
		return services.Scope{}, err
	}

	switch actor.Role() {
	case kernel.RoleProperty:
		return r.resolveProperty(ctx, actor)
	case kernel.RoleTransport:
		memberships, err := r.membershipRepository.GetAllByUser(ctx, actor.ID(), membership.OrgTypeTransport)
		if err != nil {
			return services.Scope{}, err
		}
		return services.Scope{Transport: services.ResolveTransportScope(memberships)}, nil
	case kernel.RoleRecycling:
		memberships, err := r.membershipRepository.GetAllByUser(ctx, actor.ID(), membership.OrgTypeRecycling)
		if err != nil {
			return services.Scope{}, err
		}
		return services.Scope{Recycling: services.ResolveRecyclingScope(memberships)}, nil
	}

	return services.Scope{}, nil
}

func (r Resolver) resolveProperty(ctx context.Context, actor kernel.Actor) (services.Scope, error) {
	memberships, err := r.membershipRepository.GetAllByUser(ctx, actor.ID(), membership.OrgTypeProperty)
	if err != nil {
		return services.Scope{}, err
	}

	// only primary memberships need the company's full community list
	var primaryOrgIDs []kernel.UUID
	for _, m := range memberships {
		if m.IsPrimary() {
			primaryOrgIDs = append(primaryOrgIDs, m.OrgID())
		}
	}

	communitiesByOrg := map[kernel.UUID][]kernel.UUID{}
	if len(primaryOrgIDs) > 0 {
		communitiesByOrg, err = r.communityRepository.GetIDsByOrgs(ctx, primaryOrgIDs)
		if err != nil {
			return services.Scope{}, err
		}
	}

	return services.Scope{Property: services.ResolvePropertyScope(memberships, communitiesByOrg)}, nil
}
