package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// SetDriverStatusCommandHandler handles manual driver status overrides.
// The override is gated to dispatch staff of the driver's own company, and
// the busy status stays under allocation control: it can be neither set nor
// cleared by hand.
type SetDriverStatusCommandHandler struct {
	uowFactory MembershipUoWFactory
}

// NewSetDriverStatusCommandHandler creates a handler for driver status overrides.
func NewSetDriverStatusCommandHandler(uowFactory MembershipUoWFactory) SetDriverStatusCommandHandler {
	return SetDriverStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the driver status override command.
func (h *SetDriverStatusCommandHandler) Handle(ctx context.Context, cmd SetDriverStatusCommand) error {
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

	if !aggregate.IsDriver() {
		return errs.NewValueIsInvalidError("membershipId")
	}

	if !cmd.Actor().IsSuperuser() {
		actorMembership, err := repo.GetByUserAndOrg(ctx, cmd.Actor().ID(), aggregate.OrgID())
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return errs.NewPermissionDeniedError(
					fmt.Sprintf("manage drivers of organization %s", aggregate.OrgID()))
			}
			return err
		}
		if !actorMembership.CanDispatch() {
			return errs.NewPermissionDeniedError(
				fmt.Sprintf("manage drivers of organization %s", aggregate.OrgID()))
		}
	}

	before := aggregate.DriverStatus()

	if err = aggregate.SetDriverStatus(cmd.Status(), time.Now().UTC()); err != nil {
		return err
	}

	if err = repo.UpdateDriverStatusFrom(ctx, aggregate.ID(), before, aggregate.DriverStatus()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
