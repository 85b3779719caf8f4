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

func propertySpec(userID, orgID kernel.UUID, communityID *kernel.UUID, isPrimary bool) commands.MembershipSpec {
	return commands.MembershipSpec{
		UserID:      userID,
		OrgID:       orgID,
		OrgType:     membership.OrgTypeProperty,
		IsPrimary:   isPrimary,
		CommunityID: communityID,
	}
}

func TestCreateMembershipCommandHandler_Handle_PrimaryAddsScopedMember(t *testing.T) {
	ctx := t.Context()
	orgID := kernel.NewUUID()
	communityID := kernel.NewUUID()
	actor := newActor(t, kernel.RoleProperty)
	admin, err := membership.NewPrimaryMembership(
		kernel.NewUUID(), actor.ID(), orgID, membership.OrgTypeProperty, fixedNow)
	require.NoError(t, err)

	userID := kernel.NewUUID()
	cmd, err := commands.NewCreateMembershipCommand(
		kernel.NewUUID(), actor, propertySpec(userID, orgID, &communityID, false))
	require.NoError(t, err)

	repo := new(MockMembershipRepository)
	uow := new(MockMembershipUoW)
	uow.On("MembershipRepository").Return(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("GetByUserAndOrg", ctx, actor.ID(), orgID).Return(admin, nil).Once(),
		repo.On("GetByUserAndOrg", ctx, userID, orgID).
			Return(nil, errs.NewObjectNotFoundError("membership", userID)).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*membership.Membership")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMembershipUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateMembershipCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateMembershipCommandHandler_Handle_NonAdminRejected(t *testing.T) {
	ctx := t.Context()
	orgID := kernel.NewUUID()
	communityID := kernel.NewUUID()
	actor := newActor(t, kernel.RoleProperty)

	cmd, err := commands.NewCreateMembershipCommand(
		kernel.NewUUID(), actor, propertySpec(kernel.NewUUID(), orgID, &communityID, false))
	require.NoError(t, err)

	repo := new(MockMembershipRepository)
	uow := new(MockMembershipUoW)
	uow.On("MembershipRepository").Return(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("GetByUserAndOrg", ctx, actor.ID(), orgID).
			Return(nil, errs.NewObjectNotFoundError("membership", actor.ID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMembershipUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateMembershipCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrPermissionDenied)
	repo.AssertNotCalled(t, "Add", ctx, mock.Anything)
}

func TestCreateMembershipCommandHandler_Handle_DuplicateRejected(t *testing.T) {
	ctx := t.Context()
	orgID := kernel.NewUUID()
	communityID := kernel.NewUUID()
	actor := newSuperuser(t)

	userID := kernel.NewUUID()
	existing, err := membership.NewPropertyMembership(
		kernel.NewUUID(), userID, orgID, communityID, fixedNow)
	require.NoError(t, err)

	cmd, err := commands.NewCreateMembershipCommand(
		kernel.NewUUID(), actor, propertySpec(userID, orgID, &communityID, false))
	require.NoError(t, err)

	repo := new(MockMembershipRepository)
	uow := new(MockMembershipUoW)
	uow.On("MembershipRepository").Return(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("GetByUserAndOrg", ctx, userID, orgID).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMembershipUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateMembershipCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrResourceConflict)
}

func TestCreateMembershipCommandHandler_Handle_SecondPrimaryRejected(t *testing.T) {
	ctx := t.Context()
	orgID := kernel.NewUUID()
	actor := newSuperuser(t)

	userID := kernel.NewUUID()
	cmd, err := commands.NewCreateMembershipCommand(
		kernel.NewUUID(), actor, propertySpec(userID, orgID, nil, true))
	require.NoError(t, err)

	repo := new(MockMembershipRepository)
	uow := new(MockMembershipUoW)
	uow.On("MembershipRepository").Return(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("GetByUserAndOrg", ctx, userID, orgID).
			Return(nil, errs.NewObjectNotFoundError("membership", userID)).Once(),
		repo.On("CountPrimaryByOrg", ctx, orgID).Return(int64(1), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMembershipUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateMembershipCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrResourceConflict)
	repo.AssertNotCalled(t, "Add", ctx, mock.Anything)
}

func TestCreateMembershipCommandHandler_Handle_ScopedMemberWithoutCommunityRejected(t *testing.T) {
	ctx := t.Context()
	orgID := kernel.NewUUID()
	actor := newSuperuser(t)

	userID := kernel.NewUUID()
	cmd, err := commands.NewCreateMembershipCommand(
		kernel.NewUUID(), actor, propertySpec(userID, orgID, nil, false))
	require.NoError(t, err)

	repo := new(MockMembershipRepository)
	uow := new(MockMembershipUoW)
	uow.On("MembershipRepository").Return(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("GetByUserAndOrg", ctx, userID, orgID).
			Return(nil, errs.NewObjectNotFoundError("membership", userID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMembershipUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateMembershipCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrValueIsRequired)
}
