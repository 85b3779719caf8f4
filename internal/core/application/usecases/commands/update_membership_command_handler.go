package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// UpdateMembershipCommandHandler handles membership updates: primary
// promotion and demotion under the one-primary invariant, and community
// reassignment for property members.
type UpdateMembershipCommandHandler struct {
	uowFactory MembershipUoWFactory
}

// NewUpdateMembershipCommandHandler creates a handler for membership updates.
func NewUpdateMembershipCommandHandler(uowFactory MembershipUoWFactory) UpdateMembershipCommandHandler {
	return UpdateMembershipCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the membership update command.
func (h *UpdateMembershipCommandHandler) Handle(ctx context.Context, cmd UpdateMembershipCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.MembershipRepository()

	aggregate, err := repo.Get(ctx, cmd.MembershipID())
	if err != nil {
		return err
	}

	if err = guardOrgAdmin(ctx, repo, cmd.Actor(), aggregate.OrgID()); err != nil {
		return err
	}

	now := time.Now().UTC()

	if cmd.CommunityID() != nil {
		if err = aggregate.AssignCommunity(*cmd.CommunityID(), now); err != nil {
			return err
		}
	}

	if cmd.IsPrimary() != nil && *cmd.IsPrimary() != aggregate.IsPrimary() {
		primaryCount, err := repo.CountPrimaryByOrg(ctx, aggregate.OrgID())
		if err != nil {
			return err
		}

		if *cmd.IsPrimary() {
			if primaryCount > 0 {
				return errs.NewResourceConflictError("membership",
					fmt.Sprintf("organization %s already has a primary member", aggregate.OrgID()))
			}
			aggregate.MakePrimary(now)
		} else {
			if primaryCount <= 1 {
				return errs.NewResourceConflictError("membership",
					fmt.Sprintf("membership %s is the sole primary of its organization", aggregate.ID()))
			}
			if err = aggregate.ClearPrimary(now); err != nil {
				return err
			}
		}
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
