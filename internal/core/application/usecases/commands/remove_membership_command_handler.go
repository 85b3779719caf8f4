package commands

import (
	"context"
	"fmt"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/membership"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// RemoveMembershipCommandHandler handles membership removal. Members cannot
// remove themselves, the sole primary of an organization cannot be removed,
// and a driver holding an active allocation stays until released.
type RemoveMembershipCommandHandler struct {
	uowFactory MembershipUoWFactory
}

// NewRemoveMembershipCommandHandler creates a handler for membership removal.
func NewRemoveMembershipCommandHandler(uowFactory MembershipUoWFactory) RemoveMembershipCommandHandler {
	return RemoveMembershipCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the membership removal command.
func (h *RemoveMembershipCommandHandler) Handle(ctx context.Context, cmd RemoveMembershipCommand) error {
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

	if aggregate.UserID().IsEqual(cmd.Actor().ID()) && !cmd.Actor().IsSuperuser() {
		return errs.NewPermissionDeniedError("remove own membership")
	}

	if aggregate.IsPrimary() {
		primaryCount, err := repo.CountPrimaryByOrg(ctx, aggregate.OrgID())
		if err != nil {
			return err
		}
		if primaryCount <= 1 {
			return errs.NewResourceConflictError("membership",
				fmt.Sprintf("membership %s is the sole primary of its organization", aggregate.ID()))
		}
	}

	if aggregate.IsDriver() && aggregate.DriverStatus() == membership.DriverStatusBusy {
		return errs.NewResourceConflictError("membership",
			fmt.Sprintf("driver %s holds an active allocation", aggregate.ID()))
	}

	if err = repo.Delete(ctx, aggregate.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
