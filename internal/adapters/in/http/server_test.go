package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/application/usecases/commands"
	"github.com/esp3j0/waste-transort/internal/core/application/usecases/queries"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/location"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
	"github.com/esp3j0/waste-transort/internal/core/domain/services"
	"github.com/esp3j0/waste-transort/internal/core/ports"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("waste-transort-test-secret")

// memOrders is an in-memory order repository for handler tests. It implements
// ports.OrderRepository without any transaction semantics.
type memOrders struct {
	orders map[kernel.UUID]*order.Order
}

func newMemOrders() *memOrders {
	return &memOrders{orders: make(map[kernel.UUID]*order.Order)}
}

func (r *memOrders) Add(_ context.Context, aggregate *order.Order) error {
	r.orders[aggregate.ID()] = aggregate
	return nil
}

func (r *memOrders) Update(_ context.Context, aggregate *order.Order) error {
	r.orders[aggregate.ID()] = aggregate
	return nil
}

func (r *memOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	aggregate, ok := r.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return aggregate, nil
}

func (r *memOrders) Delete(_ context.Context, id kernel.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *memOrders) GetAllWithStaleAllocations(_ context.Context) ([]*order.Order, error) {
	return nil, nil
}

func (r *memOrders) GetActiveAllocationRefs(_ context.Context) (ports.ActiveAllocationRefs, error) {
	return ports.ActiveAllocationRefs{}, nil
}

type memAddresses struct {
	addresses map[kernel.UUID]*location.Address
}

func (r *memAddresses) Get(_ context.Context, id kernel.UUID) (*location.Address, error) {
	address, ok := r.addresses[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("address", id)
	}
	return address, nil
}

// fakeOrderUoW hands out the shared in-memory repository and treats the
// transaction boundary as a no-op.
type fakeOrderUoW struct {
	orders ports.OrderRepository
}

func (u fakeOrderUoW) Begin(context.Context) error    { return nil }
func (u fakeOrderUoW) Commit(context.Context) error   { return nil }
func (u fakeOrderUoW) Rollback(context.Context) error { return nil }
func (u fakeOrderUoW) OrderRepository() ports.OrderRepository {
	return u.orders
}

type fakeOrderUoWFactory struct {
	orders ports.OrderRepository
}

func (f fakeOrderUoWFactory) Create() commands.OrderUoW {
	return fakeOrderUoW{orders: f.orders}
}

type stubResolver struct {
	scope services.Scope
}

func (r stubResolver) Resolve(context.Context, kernel.Actor) (services.Scope, error) {
	return r.scope, nil
}

type serverFixture struct {
	echo      *echo.Echo
	orders    *memOrders
	addresses *memAddresses
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	orders := newMemOrders()
	addresses := &memAddresses{addresses: make(map[kernel.UUID]*location.Address)}
	resolver := stubResolver{}
	orderUoWFactory := fakeOrderUoWFactory{orders: orders}

	server := NewServer(
		commands.NewCreateOrderCommandHandler(orderUoWFactory, addresses),
		commands.UpdateOrderCommandHandler{},
		commands.NewDeleteOrderCommandHandler(orderUoWFactory),
		commands.ChangeOrderStatusCommandHandler{},
		commands.CreateMembershipCommandHandler{},
		commands.UpdateMembershipCommandHandler{},
		commands.RemoveMembershipCommandHandler{},
		commands.SetDriverStatusCommandHandler{},
		queries.NewListOrdersQueryHandler(nil, resolver),
		queries.NewGetOrderQueryHandler(orders, resolver),
	)

	e := echo.New()
	server.RegisterRoutes(e, AuthMiddleware(testSecret))

	return &serverFixture{echo: e, orders: orders, addresses: addresses}
}

func (f *serverFixture) seedAddress(t *testing.T, ownerID kernel.UUID) *location.Address {
	t.Helper()
	address, err := location.NewAddress(
		kernel.NewUUID(), ownerID, kernel.NewUUID(), "Building 7, Unit 2", time.Now().UTC())
	require.NoError(t, err)
	f.addresses.addresses[address.ID()] = address
	return address
}

func (f *serverFixture) seedOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), customerID, kernel.NewUUID(), kernel.NewUUID(),
		"construction_debris", 3.5, time.Now().UTC())
	require.NoError(t, err)
	f.orders.orders[aggregate.ID()] = aggregate
	return aggregate
}

func customerActor(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleCustomer, false)
	require.NoError(t, err)
	return actor
}

func (f *serverFixture) do(t *testing.T, method, target string, body any, actor *kernel.Actor) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if actor != nil {
		token, err := IssueToken(testSecret, *actor)
		require.NoError(t, err)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func Test_Server_Health(t *testing.T) {
	fixture := newServerFixture(t)

	rec := fixture.do(t, http.MethodGet, "/health", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func Test_Server_Auth(t *testing.T) {
	fixture := newServerFixture(t)

	t.Run("missing token is rejected", func(t *testing.T) {
		rec := fixture.do(t, http.MethodGet, "/api/v1/orders", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		fixture.echo.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		actor := customerActor(t)
		token, err := IssueToken([]byte("some-other-secret"), actor)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		fixture.echo.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func Test_Server_CreateOrder(t *testing.T) {
	fixture := newServerFixture(t)
	actor := customerActor(t)
	address := fixture.seedAddress(t, actor.ID())

	t.Run("creates pending order for own address", func(t *testing.T) {
		rec := fixture.do(t, http.MethodPost, "/api/v1/orders", createOrderRequest{
			AddressID:    address.ID().String(),
			WasteType:    "construction_debris",
			WasteVolume:  4.2,
			ContactName:  "Wang Lei",
			ContactPhone: "13800001111",
		}, &actor)

		require.Equal(t, http.StatusCreated, rec.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		orderID, err := kernel.UUIDFromString(response["id"])
		require.NoError(t, err)

		created, err := fixture.orders.Get(context.Background(), orderID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, created.Status())
		assert.True(t, created.CustomerID().IsEqual(actor.ID()))
		assert.Equal(t, "Wang Lei", created.ContactName())
	})

	t.Run("rejects order for someone else's address", func(t *testing.T) {
		foreign := fixture.seedAddress(t, kernel.NewUUID())

		rec := fixture.do(t, http.MethodPost, "/api/v1/orders", createOrderRequest{
			AddressID:   foreign.ID().String(),
			WasteType:   "construction_debris",
			WasteVolume: 1.0,
		}, &actor)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("rejects unknown address", func(t *testing.T) {
		rec := fixture.do(t, http.MethodPost, "/api/v1/orders", createOrderRequest{
			AddressID:   kernel.NewUUID().String(),
			WasteType:   "construction_debris",
			WasteVolume: 1.0,
		}, &actor)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rejects malformed address id", func(t *testing.T) {
		rec := fixture.do(t, http.MethodPost, "/api/v1/orders", createOrderRequest{
			AddressID:   "not-a-uuid",
			WasteType:   "construction_debris",
			WasteVolume: 1.0,
		}, &actor)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects invalid volume", func(t *testing.T) {
		rec := fixture.do(t, http.MethodPost, "/api/v1/orders", createOrderRequest{
			AddressID:   address.ID().String(),
			WasteType:   "construction_debris",
			WasteVolume: -1.0,
		}, &actor)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_Server_GetOrder(t *testing.T) {
	fixture := newServerFixture(t)
	actor := customerActor(t)

	t.Run("returns detail for own order", func(t *testing.T) {
		aggregate := fixture.seedOrder(t, actor.ID())

		rec := fixture.do(t, http.MethodGet, "/api/v1/orders/"+aggregate.ID().String(), nil, &actor)

		require.Equal(t, http.StatusOK, rec.Code)

		var detail orderDetailJSON
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
		assert.Equal(t, aggregate.ID().String(), detail.ID)
		assert.Equal(t, "pending", detail.Status)
		assert.Equal(t, aggregate.OrderNumber(), detail.OrderNumber)
		assert.Nil(t, detail.TransportCompanyID)
	})

	t.Run("hides someone else's order", func(t *testing.T) {
		aggregate := fixture.seedOrder(t, kernel.NewUUID())

		rec := fixture.do(t, http.MethodGet, "/api/v1/orders/"+aggregate.ID().String(), nil, &actor)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown order yields 404", func(t *testing.T) {
		rec := fixture.do(t, http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), nil, &actor)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed order id yields 400", func(t *testing.T) {
		rec := fixture.do(t, http.MethodGet, "/api/v1/orders/abc", nil, &actor)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_Server_ListOrders(t *testing.T) {
	fixture := newServerFixture(t)
	actor := customerActor(t)

	t.Run("rejects unknown status filter", func(t *testing.T) {
		rec := fixture.do(t, http.MethodGet, "/api/v1/orders?status=flying", nil, &actor)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_Server_DeleteOrder(t *testing.T) {
	fixture := newServerFixture(t)
	actor := customerActor(t)

	t.Run("deletes own pending order", func(t *testing.T) {
		aggregate := fixture.seedOrder(t, actor.ID())

		rec := fixture.do(t, http.MethodDelete, "/api/v1/orders/"+aggregate.ID().String(), nil, &actor)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		_, err := fixture.orders.Get(context.Background(), aggregate.ID())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("refuses someone else's order", func(t *testing.T) {
		aggregate := fixture.seedOrder(t, kernel.NewUUID())

		rec := fixture.do(t, http.MethodDelete, "/api/v1/orders/"+aggregate.ID().String(), nil, &actor)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("refuses confirmed order", func(t *testing.T) {
		aggregate := fixture.seedOrder(t, actor.ID())
		require.NoError(t, aggregate.ConfirmByProperty(kernel.NewUUID(), time.Now().UTC()))

		rec := fixture.do(t, http.MethodDelete, "/api/v1/orders/"+aggregate.ID().String(), nil, &actor)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_Server_ChangeOrderStatus_Parsing(t *testing.T) {
	fixture := newServerFixture(t)
	actor := customerActor(t)
	orderID := kernel.NewUUID().String()

	t.Run("rejects unknown target status", func(t *testing.T) {
		rec := fixture.do(t, http.MethodPut, "/api/v1/orders/"+orderID+"/status",
			changeOrderStatusRequest{Status: "teleported"}, &actor)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed payload reference", func(t *testing.T) {
		bad := "not-a-uuid"
		rec := fixture.do(t, http.MethodPut, "/api/v1/orders/"+orderID+"/status",
			changeOrderStatusRequest{Status: "transport_assigned", VehicleID: &bad}, &actor)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_Server_SetDriverStatus_Parsing(t *testing.T) {
	fixture := newServerFixture(t)
	actor := customerActor(t)

	rec := fixture.do(t, http.MethodPut,
		"/api/v1/transport-managers/drivers/"+kernel.NewUUID().String()+"/status",
		setDriverStatusRequest{Status: "sleeping"}, &actor)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
