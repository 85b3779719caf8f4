package commands_test

import (
	"context"

	"github.com/esp3j0/waste-transort/internal/core/application/usecases/commands"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/location"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/membership"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/vehicle"
	"github.com/esp3j0/waste-transort/internal/core/domain/services"
	"github.com/esp3j0/waste-transort/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) GetAllWithStaleAllocations(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if orders, ok := args.Get(0).([]*order.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetActiveAllocationRefs(ctx context.Context) (ports.ActiveAllocationRefs, error) {
	args := m.Called(ctx)
	refs, _ := args.Get(0).(ports.ActiveAllocationRefs)
	return refs, args.Error(1)
}

type MockMembershipRepository struct{ mock.Mock }

func (m *MockMembershipRepository) Add(ctx context.Context, aggregate *membership.Membership) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockMembershipRepository) Update(ctx context.Context, aggregate *membership.Membership) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockMembershipRepository) Get(ctx context.Context, id kernel.UUID) (*membership.Membership, error) {
	args := m.Called(ctx, id)
	if aggregate, ok := args.Get(0).(*membership.Membership); ok {
		return aggregate, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMembershipRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMembershipRepository) GetAllByUser(
	ctx context.Context, userID kernel.UUID, orgType membership.OrgType,
) ([]*membership.Membership, error) {
	args := m.Called(ctx, userID, orgType)
	if memberships, ok := args.Get(0).([]*membership.Membership); ok {
		return memberships, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMembershipRepository) GetByUserAndOrg(
	ctx context.Context, userID, orgID kernel.UUID,
) (*membership.Membership, error) {
	args := m.Called(ctx, userID, orgID)
	if aggregate, ok := args.Get(0).(*membership.Membership); ok {
		return aggregate, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMembershipRepository) CountPrimaryByOrg(ctx context.Context, orgID kernel.UUID) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMembershipRepository) UpdateDriverStatusFrom(
	ctx context.Context, id kernel.UUID, from, to membership.DriverStatus,
) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Add(ctx context.Context, aggregate *vehicle.Vehicle) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, aggregate *vehicle.Vehicle) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	if aggregate, ok := args.Get(0).(*vehicle.Vehicle); ok {
		return aggregate, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVehicleRepository) GetAllByCompany(
	ctx context.Context, companyID kernel.UUID,
) ([]*vehicle.Vehicle, error) {
	args := m.Called(ctx, companyID)
	if vehicles, ok := args.Get(0).([]*vehicle.Vehicle); ok {
		return vehicles, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVehicleRepository) UpdateStatusFrom(
	ctx context.Context, id kernel.UUID, from, to vehicle.Status,
) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

type MockPaymentRecorder struct{ mock.Mock }

func (m *MockPaymentRecorder) Record(
	ctx context.Context, orderID kernel.UUID, amount float64, status string,
) error {
	args := m.Called(ctx, orderID, amount, status)
	return args.Error(0)
}

type MockAddressRepository struct{ mock.Mock }

func (m *MockAddressRepository) Get(ctx context.Context, id kernel.UUID) (*location.Address, error) {
	args := m.Called(ctx, id)
	if address, ok := args.Get(0).(*location.Address); ok {
		return address, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockScopeResolver struct{ mock.Mock }

func (m *MockScopeResolver) Resolve(ctx context.Context, actor kernel.Actor) (services.Scope, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(services.Scope), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockMembershipUoW struct{ mock.Mock }

func (m *MockMembershipUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMembershipUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMembershipUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMembershipUoW) MembershipRepository() ports.MembershipRepository {
	args := m.Called()
	return args.Get(0).(ports.MembershipRepository)
}

type MockMembershipUoWFactory struct{ mock.Mock }

func (m *MockMembershipUoWFactory) Create() commands.MembershipUoW {
	args := m.Called()
	return args.Get(0).(commands.MembershipUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) MembershipRepository() ports.MembershipRepository {
	args := m.Called()
	return args.Get(0).(ports.MembershipRepository)
}

func (m *MockUoW) VehicleRepository() ports.VehicleRepository {
	args := m.Called()
	return args.Get(0).(ports.VehicleRepository)
}

func (m *MockUoW) PaymentRecorder() ports.PaymentRecorder {
	args := m.Called()
	return args.Get(0).(ports.PaymentRecorder)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}
