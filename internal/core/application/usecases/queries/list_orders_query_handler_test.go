package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/esp3j0/waste-transort/internal/adapters/out/postgres/orderrepo"
	"github.com/esp3j0/waste-transort/internal/core/application/usecases/queries"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/membership"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
	"github.com/esp3j0/waste-transort/internal/core/domain/services"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// stubResolver returns a prebuilt scope so listing tests control visibility
// without seeding membership rows.
type stubResolver struct {
	scope services.Scope
}

func (s stubResolver) Resolve(_ context.Context, _ kernel.Actor) (services.Scope, error) {
	return s.scope, nil
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type ListOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *ListOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.orderRepo = orderrepo.NewGormOrderRepository(db, noopTracker{})
}

func (suite *ListOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ListOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *ListOrdersQueryHandlerTestSuite) handlerWith(scope services.Scope) queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(suite.db, stubResolver{scope: scope})
}

func (suite *ListOrdersQueryHandlerTestSuite) newActor(role kernel.Role) kernel.Actor {
	actor, err := kernel.NewActor(kernel.NewUUID(), role, false)
	suite.Require().NoError(err)
	return actor
}

func (suite *ListOrdersQueryHandlerTestSuite) addOrder(customerID, communityID kernel.UUID) *order.Order {
	o, err := order.NewOrder(
		kernel.NewUUID(), customerID, kernel.NewUUID(), communityID,
		"construction debris", 2.5, fixedNow)
	suite.Require().NoError(err)
	err = suite.orderRepo.Add(context.Background(), o)
	suite.Require().NoError(err)
	return o
}

func (suite *ListOrdersQueryHandlerTestSuite) confirm(o *order.Order) {
	err := o.ConfirmByProperty(kernel.NewUUID(), fixedNow)
	suite.Require().NoError(err)
	err = suite.orderRepo.Update(context.Background(), o)
	suite.Require().NoError(err)
}

func (suite *ListOrdersQueryHandlerTestSuite) assign(o *order.Order, companyID, assocID kernel.UUID) {
	err := o.AssignTransport(kernel.NewUUID(), assocID, kernel.NewUUID(), companyID, fixedNow)
	suite.Require().NoError(err)
	err = suite.orderRepo.Update(context.Background(), o)
	suite.Require().NoError(err)
}

func (suite *ListOrdersQueryHandlerTestSuite) deliver(o *order.Order) {
	err := o.StartTransport(fixedNow)
	suite.Require().NoError(err)
	err = o.MarkDelivered(fixedNow)
	suite.Require().NoError(err)
	err = suite.orderRepo.Update(context.Background(), o)
	suite.Require().NoError(err)
}

func (suite *ListOrdersQueryHandlerTestSuite) resultIDs(results []queries.OrderResponse) map[kernel.UUID]bool {
	ids := make(map[kernel.UUID]bool, len(results))
	for _, r := range results {
		ids[r.ID] = true
	}
	return ids
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_CustomerSeesOnlyOwnOrders() {
	actor := suite.newActor(kernel.RoleCustomer)
	mine1 := suite.addOrder(actor.ID(), kernel.NewUUID())
	mine2 := suite.addOrder(actor.ID(), kernel.NewUUID())
	suite.addOrder(kernel.NewUUID(), kernel.NewUUID()) // someone else's

	query, err := queries.NewListOrdersQuery(actor)
	suite.Require().NoError(err)

	result, err := suite.handlerWith(services.Scope{}).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Len(result, 2)

	ids := suite.resultIDs(result)
	suite.True(ids[mine1.ID()])
	suite.True(ids[mine2.ID()])
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_PropertySeesCommunityOrders() {
	actor := suite.newActor(kernel.RoleProperty)
	communityID := kernel.NewUUID()

	inScope := suite.addOrder(kernel.NewUUID(), communityID)
	suite.addOrder(kernel.NewUUID(), kernel.NewUUID()) // other community

	m, err := membership.NewPropertyMembership(
		kernel.NewUUID(), actor.ID(), kernel.NewUUID(), communityID, fixedNow)
	suite.Require().NoError(err)
	scope := services.NewScope([]*membership.Membership{m}, nil)

	query, err := queries.NewListOrdersQuery(actor)
	suite.Require().NoError(err)

	result, err := suite.handlerWith(scope).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(inScope.ID().IsEqual(result[0].ID))
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_EmptyScopeYieldsEmptyResult() {
	suite.addOrder(kernel.NewUUID(), kernel.NewUUID())

	actor := suite.newActor(kernel.RoleProperty)
	query, err := queries.NewListOrdersQuery(actor)
	suite.Require().NoError(err)

	result, err := suite.handlerWith(services.Scope{}).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_DispatcherSeesCompanyOrdersAndConfirmedPool() {
	actor := suite.newActor(kernel.RoleTransport)
	companyID := kernel.NewUUID()

	companyOrder := suite.addOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.confirm(companyOrder)
	suite.assign(companyOrder, companyID, kernel.NewUUID())

	foreignOrder := suite.addOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.confirm(foreignOrder)
	suite.assign(foreignOrder, kernel.NewUUID(), kernel.NewUUID())

	poolOrder := suite.addOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.confirm(poolOrder)

	suite.addOrder(kernel.NewUUID(), kernel.NewUUID()) // pending, not in pool

	dispatcher, err := membership.NewTransportMembership(
		kernel.NewUUID(), actor.ID(), companyID, membership.TransportRoleDispatcher, "", fixedNow)
	suite.Require().NoError(err)
	scope := services.NewScope([]*membership.Membership{dispatcher}, nil)

	query, err := queries.NewListOrdersQuery(actor)
	suite.Require().NoError(err)

	result, err := suite.handlerWith(scope).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Len(result, 2)

	ids := suite.resultIDs(result)
	suite.True(ids[companyOrder.ID()], "Dispatcher should see their company's order")
	suite.True(ids[poolOrder.ID()], "Dispatcher should see the confirmed pool")
	suite.False(ids[foreignOrder.ID()], "Another company's assigned order stays hidden")
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_DriverSeesOnlyBoundOrders() {
	actor := suite.newActor(kernel.RoleTransport)
	companyID := kernel.NewUUID()

	driver, err := membership.NewTransportMembership(
		kernel.NewUUID(), actor.ID(), companyID, membership.TransportRoleDriver, "B2-9911", fixedNow)
	suite.Require().NoError(err)

	boundOrder := suite.addOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.confirm(boundOrder)
	suite.assign(boundOrder, companyID, driver.ID())

	otherOrder := suite.addOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.confirm(otherOrder)
	suite.assign(otherOrder, companyID, kernel.NewUUID())

	poolOrder := suite.addOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.confirm(poolOrder)

	scope := services.NewScope([]*membership.Membership{driver}, nil)

	query, err := queries.NewListOrdersQuery(actor)
	suite.Require().NoError(err)

	result, err := suite.handlerWith(scope).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1, "Drivers do not see the confirmed pool")
	suite.True(boundOrder.ID().IsEqual(result[0].ID))
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_RecyclingSeesCompanyOrdersAndDeliveredPool() {
	actor := suite.newActor(kernel.RoleRecycling)
	companyID := kernel.NewUUID()

	confirmed := suite.addOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.confirm(confirmed)
	suite.assign(confirmed, kernel.NewUUID(), kernel.NewUUID())
	suite.deliver(confirmed)
	err := confirmed.ConfirmRecycling(kernel.NewUUID(), companyID, fixedNow)
	suite.Require().NoError(err)
	err = suite.orderRepo.Update(context.Background(), confirmed)
	suite.Require().NoError(err)

	delivered := suite.addOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.confirm(delivered)
	suite.assign(delivered, kernel.NewUUID(), kernel.NewUUID())
	suite.deliver(delivered)

	suite.addOrder(kernel.NewUUID(), kernel.NewUUID()) // pending, invisible

	m, err := membership.NewRecyclingMembership(
		kernel.NewUUID(), actor.ID(), companyID, membership.RecyclingRoleSupervisor, fixedNow)
	suite.Require().NoError(err)
	scope := services.NewScope([]*membership.Membership{m}, nil)

	query, err := queries.NewListOrdersQuery(actor)
	suite.Require().NoError(err)

	result, err := suite.handlerWith(scope).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Len(result, 2)

	ids := suite.resultIDs(result)
	suite.True(ids[confirmed.ID()], "Station should see its own confirmed order")
	suite.True(ids[delivered.ID()], "Station should see the delivered pool")
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_SuperuserSeesEverything() {
	suite.addOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.addOrder(kernel.NewUUID(), kernel.NewUUID())

	superuser, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin, true)
	suite.Require().NoError(err)

	query, err := queries.NewListOrdersQuery(superuser)
	suite.Require().NoError(err)

	result, err := suite.handlerWith(services.Scope{}).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Len(result, 2)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_StatusFilter() {
	pending := suite.addOrder(kernel.NewUUID(), kernel.NewUUID())
	confirmed := suite.addOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.confirm(confirmed)

	superuser, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin, true)
	suite.Require().NoError(err)

	query, err := queries.NewListOrdersQuery(superuser)
	suite.Require().NoError(err)
	query, err = query.WithStatus(order.StatusPending)
	suite.Require().NoError(err)

	result, err := suite.handlerWith(services.Scope{}).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(pending.ID().IsEqual(result[0].ID))
	suite.Equal(order.StatusPending.String(), result[0].Status)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_ResponseCarriesPartyReferences() {
	actor := suite.newActor(kernel.RoleCustomer)
	o := suite.addOrder(actor.ID(), kernel.NewUUID())
	suite.confirm(o)
	companyID := kernel.NewUUID()
	assocID := kernel.NewUUID()
	suite.assign(o, companyID, assocID)

	query, err := queries.NewListOrdersQuery(actor)
	suite.Require().NoError(err)

	result, err := suite.handlerWith(services.Scope{}).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)

	row := result[0]
	suite.Equal(order.StatusTransportAssigned.String(), row.Status)
	suite.Require().NotNil(row.TransportCompanyID)
	suite.True(companyID.IsEqual(*row.TransportCompanyID))
	suite.Require().NotNil(row.DriverAssociationID)
	suite.True(assocID.IsEqual(*row.DriverAssociationID))
	suite.Nil(row.RecyclingCompanyID)
	suite.Equal(o.OrderNumber(), row.OrderNumber)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.ListOrdersQuery{}

	result, err := suite.handlerWith(services.Scope{}).Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewListOrdersQuery constructor")
}

func TestListOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListOrdersQueryHandlerTestSuite))
}
