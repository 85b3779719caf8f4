package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/ports"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// CreateMembershipCommandHandler handles membership creation with the store
// invariants: no duplicate membership per user and organization, and at most
// one primary member per organization.
type CreateMembershipCommandHandler struct {
	uowFactory MembershipUoWFactory
}

// NewCreateMembershipCommandHandler creates a handler for membership creation.
func NewCreateMembershipCommandHandler(uowFactory MembershipUoWFactory) CreateMembershipCommandHandler {
	return CreateMembershipCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the membership creation command.
func (h *CreateMembershipCommandHandler) Handle(ctx context.Context, cmd CreateMembershipCommand) error {
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
	spec := cmd.Spec()

	if err := guardOrgAdmin(ctx, repo, cmd.Actor(), spec.OrgID); err != nil {
		return err
	}

	if _, err := repo.GetByUserAndOrg(ctx, spec.UserID, spec.OrgID); err == nil {
		return errs.NewResourceConflictError("membership",
			fmt.Sprintf("user %s is already a member of organization %s", spec.UserID, spec.OrgID))
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if spec.IsPrimary {
		primaryCount, err := repo.CountPrimaryByOrg(ctx, spec.OrgID)
		if err != nil {
			return err
		}
		if primaryCount > 0 {
			return errs.NewResourceConflictError("membership",
				fmt.Sprintf("organization %s already has a primary member", spec.OrgID))
		}
	}

	aggregate, err := cmd.NewAggregate(time.Now().UTC())
	if err != nil {
		return err
	}

	if err = repo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// guardOrgAdmin admits superusers and the organization's primary member.
func guardOrgAdmin(
	ctx context.Context,
	repo ports.MembershipRepository,
	actor kernel.Actor,
	orgID kernel.UUID,
) error {
	if actor.IsSuperuser() {
		return nil
	}

	actorMembership, err := repo.GetByUserAndOrg(ctx, actor.ID(), orgID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewPermissionDeniedError(
				fmt.Sprintf("administer organization %s", orgID))
		}
		return err
	}
	if !actorMembership.IsPrimary() {
		return errs.NewPermissionDeniedError(
			fmt.Sprintf("administer organization %s", orgID))
	}
	return nil
}
