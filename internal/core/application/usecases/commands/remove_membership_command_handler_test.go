package commands_test

import (
	"testing"

	"github.com/esp3j0/waste-transort/internal/core/application/usecases/commands"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/membership"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRemoveMembershipCommandHandler_Handle_PrimaryRemovesScopedMember(t *testing.T) {
	ctx := t.Context()
	orgID := kernel.NewUUID()
	actor := newActor(t, kernel.RoleProperty)
	admin, err := membership.NewPrimaryMembership(
		kernel.NewUUID(), actor.ID(), orgID, membership.OrgTypeProperty, fixedNow)
	require.NoError(t, err)

	aggregate, err := membership.NewPropertyMembership(
		kernel.NewUUID(), kernel.NewUUID(), orgID, kernel.NewUUID(), fixedNow)
	require.NoError(t, err)

	cmd, err := commands.NewRemoveMembershipCommand(aggregate.ID(), actor)
	require.NoError(t, err)

	repo := new(MockMembershipRepository)
	uow := new(MockMembershipUoW)
	uow.On("MembershipRepository").Return(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("GetByUserAndOrg", ctx, actor.ID(), orgID).Return(admin, nil).Once(),
		repo.On("Delete", ctx, aggregate.ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMembershipUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRemoveMembershipCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRemoveMembershipCommandHandler_Handle_SelfRemovalRejected(t *testing.T) {
	ctx := t.Context()
	orgID := kernel.NewUUID()
	actor := newActor(t, kernel.RoleProperty)
	admin, err := membership.NewPrimaryMembership(
		kernel.NewUUID(), actor.ID(), orgID, membership.OrgTypeProperty, fixedNow)
	require.NoError(t, err)

	cmd, err := commands.NewRemoveMembershipCommand(admin.ID(), actor)
	require.NoError(t, err)

	repo := new(MockMembershipRepository)
	uow := new(MockMembershipUoW)
	uow.On("MembershipRepository").Return(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Get", ctx, admin.ID()).Return(admin, nil).Once(),
		repo.On("GetByUserAndOrg", ctx, actor.ID(), orgID).Return(admin, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMembershipUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRemoveMembershipCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrPermissionDenied)
	repo.AssertNotCalled(t, "Delete", ctx, admin.ID())
}

func TestRemoveMembershipCommandHandler_Handle_SolePrimaryRejected(t *testing.T) {
	ctx := t.Context()
	orgID := kernel.NewUUID()
	actor := newSuperuser(t)

	aggregate, err := membership.NewPrimaryMembership(
		kernel.NewUUID(), kernel.NewUUID(), orgID, membership.OrgTypeProperty, fixedNow)
	require.NoError(t, err)

	cmd, err := commands.NewRemoveMembershipCommand(aggregate.ID(), actor)
	require.NoError(t, err)

	repo := new(MockMembershipRepository)
	uow := new(MockMembershipUoW)
	uow.On("MembershipRepository").Return(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("CountPrimaryByOrg", ctx, orgID).Return(int64(1), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMembershipUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRemoveMembershipCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrResourceConflict)
}

func TestRemoveMembershipCommandHandler_Handle_BusyDriverRejected(t *testing.T) {
	ctx := t.Context()
	orgID := kernel.NewUUID()
	actor := newSuperuser(t)

	driver := newDriver(t, kernel.NewUUID(), orgID)
	require.NoError(t, driver.Allocate(fixedNow))

	cmd, err := commands.NewRemoveMembershipCommand(driver.ID(), actor)
	require.NoError(t, err)

	repo := new(MockMembershipRepository)
	uow := new(MockMembershipUoW)
	uow.On("MembershipRepository").Return(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Get", ctx, driver.ID()).Return(driver, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMembershipUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRemoveMembershipCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrResourceConflict)
	repo.AssertNotCalled(t, "Delete", ctx, driver.ID())
}
