// Package http exposes the order coordination use cases over a JSON API.
// Every route except the health check requires a bearer token; the actor it
// carries is what the command and query layers authorize against.
package http

import (
	"net/http"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/application/usecases/commands"
	"github.com/esp3j0/waste-transort/internal/core/application/usecases/queries"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/membership"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
	"github.com/esp3j0/waste-transort/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderHandler       commands.UpdateOrderCommandHandler
	deleteOrderHandler       commands.DeleteOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler
	createMembershipHandler  commands.CreateMembershipCommandHandler
	updateMembershipHandler  commands.UpdateMembershipCommandHandler
	removeMembershipHandler  commands.RemoveMembershipCommandHandler
	setDriverStatusHandler   commands.SetDriverStatusCommandHandler

	// Query handlers
	listOrdersHandler queries.ListOrdersQueryHandler
	getOrderHandler   queries.GetOrderQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	createMembershipHandler commands.CreateMembershipCommandHandler,
	updateMembershipHandler commands.UpdateMembershipCommandHandler,
	removeMembershipHandler commands.RemoveMembershipCommandHandler,
	setDriverStatusHandler commands.SetDriverStatusCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateOrderHandler:       updateOrderHandler,
		deleteOrderHandler:       deleteOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		createMembershipHandler:  createMembershipHandler,
		updateMembershipHandler:  updateMembershipHandler,
		removeMembershipHandler:  removeMembershipHandler,
		setDriverStatusHandler:   setDriverStatusHandler,
		listOrdersHandler:        listOrdersHandler,
		getOrderHandler:          getOrderHandler,
	}
}

// RegisterRoutes wires the API routes. The auth middleware guards everything
// under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", auth)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:orderID", s.GetOrder)
	api.PUT("/orders/:orderID", s.UpdateOrder)
	api.DELETE("/orders/:orderID", s.DeleteOrder)
	api.PUT("/orders/:orderID/status", s.ChangeOrderStatus)

	api.POST("/memberships", s.CreateMembership)
	api.PUT("/memberships/:membershipID", s.UpdateMembership)
	api.DELETE("/memberships/:membershipID", s.RemoveMembership)

	api.PUT("/transport-managers/drivers/:assocID/status", s.SetDriverStatus)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type createOrderRequest struct {
	AddressID   string  `json:"addressId"`
	WasteType   string  `json:"wasteType"`
	WasteVolume float64 `json:"wasteVolume"`

	ExpectedPickupTime *time.Time `json:"expectedPickupTime,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	ContactName        string     `json:"contactName,omitempty"`
	ContactPhone       string     `json:"contactPhone,omitempty"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeBadRequest(ctx, "missing actor")
	}

	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	addressID, err := kernel.UUIDFromString(req.AddressID)
	if err != nil {
		return writeBadRequest(ctx, "invalid addressId")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, actor, addressID, req.WasteType, req.WasteVolume)
	if err != nil {
		return writeError(ctx, err)
	}
	cmd = cmd.WithPickupDetails(req.ExpectedPickupTime, req.Notes, req.ContactName, req.ContactPhone)

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// ListOrders handles GET /api/v1/orders. The optional status query parameter
// narrows the listing to one lifecycle state.
func (s *Server) ListOrders(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeBadRequest(ctx, "missing actor")
	}

	query, err := queries.NewListOrdersQuery(actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if statusParam := ctx.QueryParam("status"); statusParam != "" {
		status, parseErr := order.StatusFromString(statusParam)
		if parseErr != nil {
			return writeBadRequest(ctx, "invalid status filter")
		}
		if query, err = query.WithStatus(status); err != nil {
			return writeError(ctx, err)
		}
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]orderJSON, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderJSON(o))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:orderID.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeBadRequest(ctx, "missing actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderDetailJSON(detail))
}

type updateOrderRequest struct {
	WasteType          *string    `json:"wasteType,omitempty"`
	WasteVolume        *float64   `json:"wasteVolume,omitempty"`
	ExpectedPickupTime *time.Time `json:"expectedPickupTime,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
	ContactName        *string    `json:"contactName,omitempty"`
	ContactPhone       *string    `json:"contactPhone,omitempty"`

	PropertyNotes *string `json:"propertyNotes,omitempty"`

	TransportRoute   *string    `json:"transportRoute,omitempty"`
	TransportNotes   *string    `json:"transportNotes,omitempty"`
	ActualPickupTime *time.Time `json:"actualPickupTime,omitempty"`
	DeliveryTime     *time.Time `json:"deliveryTime,omitempty"`

	RecyclingNotes *string  `json:"recyclingNotes,omitempty"`
	WasteWeight    *float64 `json:"wasteWeight,omitempty"`
}

// UpdateOrder handles PUT /api/v1/orders/:orderID.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeBadRequest(ctx, "missing actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	var req updateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, actor, commands.OrderUpdate{
		WasteType:          req.WasteType,
		WasteVolume:        req.WasteVolume,
		ExpectedPickupTime: req.ExpectedPickupTime,
		Notes:              req.Notes,
		ContactName:        req.ContactName,
		ContactPhone:       req.ContactPhone,
		PropertyNotes:      req.PropertyNotes,
		TransportRoute:     req.TransportRoute,
		TransportNotes:     req.TransportNotes,
		ActualPickupTime:   req.ActualPickupTime,
		DeliveryTime:       req.DeliveryTime,
		RecyclingNotes:     req.RecyclingNotes,
		WasteWeight:        req.WasteWeight,
	})
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/:orderID.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeBadRequest(ctx, "missing actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type changeOrderStatusRequest struct {
	Status string `json:"status"`

	TransportCompanyID  *string `json:"transportCompanyId,omitempty"`
	DriverAssociationID *string `json:"driverAssociationId,omitempty"`
	VehicleID           *string `json:"vehicleId,omitempty"`
	RecyclingCompanyID  *string `json:"recyclingCompanyId,omitempty"`
}

// ChangeOrderStatus handles PUT /api/v1/orders/:orderID/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeBadRequest(ctx, "missing actor")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, "invalid order id")
	}

	var req changeOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	targetStatus, err := order.StatusFromString(req.Status)
	if err != nil {
		return writeBadRequest(ctx, "invalid target status")
	}

	payload, err := transitionPayload(req)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, actor, targetStatus)
	if err != nil {
		return writeError(ctx, err)
	}
	cmd = cmd.WithPayload(payload)

	if err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type createMembershipRequest struct {
	UserID    string `json:"userId"`
	OrgID     string `json:"orgId"`
	OrgType   string `json:"orgType"`
	IsPrimary bool   `json:"isPrimary"`

	CommunityID         *string `json:"communityId,omitempty"`
	TransportRole       string  `json:"transportRole,omitempty"`
	DriverLicenseNumber string  `json:"driverLicenseNumber,omitempty"`
	RecyclingRole       string  `json:"recyclingRole,omitempty"`
}

// CreateMembership handles POST /api/v1/memberships.
func (s *Server) CreateMembership(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeBadRequest(ctx, "missing actor")
	}

	var req createMembershipRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	spec, err := membershipSpec(req)
	if err != nil {
		return writeBadRequest(ctx, err.Error())
	}

	membershipID := kernel.NewUUID()
	cmd, err := commands.NewCreateMembershipCommand(membershipID, actor, spec)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createMembershipHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": membershipID.String()})
}

type updateMembershipRequest struct {
	IsPrimary   *bool   `json:"isPrimary,omitempty"`
	CommunityID *string `json:"communityId,omitempty"`
}

// UpdateMembership handles PUT /api/v1/memberships/:membershipID.
func (s *Server) UpdateMembership(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeBadRequest(ctx, "missing actor")
	}

	membershipID, err := kernel.UUIDFromString(ctx.Param("membershipID"))
	if err != nil {
		return writeBadRequest(ctx, "invalid membership id")
	}

	var req updateMembershipRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	communityID, err := optionalUUID(req.CommunityID)
	if err != nil {
		return writeBadRequest(ctx, "invalid communityId")
	}

	cmd, err := commands.NewUpdateMembershipCommand(membershipID, actor, req.IsPrimary, communityID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updateMembershipHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveMembership handles DELETE /api/v1/memberships/:membershipID.
func (s *Server) RemoveMembership(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeBadRequest(ctx, "missing actor")
	}

	membershipID, err := kernel.UUIDFromString(ctx.Param("membershipID"))
	if err != nil {
		return writeBadRequest(ctx, "invalid membership id")
	}

	cmd, err := commands.NewRemoveMembershipCommand(membershipID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.removeMembershipHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type setDriverStatusRequest struct {
	Status string `json:"status"`
}

// SetDriverStatus handles PUT /api/v1/transport-managers/drivers/:assocID/status.
// The association id is the driver's membership record, the same reference
// orders carry.
func (s *Server) SetDriverStatus(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeBadRequest(ctx, "missing actor")
	}

	membershipID, err := kernel.UUIDFromString(ctx.Param("assocID"))
	if err != nil {
		return writeBadRequest(ctx, "invalid driver association id")
	}

	var req setDriverStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	status, err := membership.DriverStatusFromString(req.Status)
	if err != nil {
		return writeBadRequest(ctx, "invalid driver status")
	}

	cmd, err := commands.NewSetDriverStatusCommand(membershipID, actor, status)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.setDriverStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func transitionPayload(req changeOrderStatusRequest) (services.TransitionPayload, error) {
	var payload services.TransitionPayload
	var err error

	if payload.TransportCompanyID, err = optionalUUID(req.TransportCompanyID); err != nil {
		return services.TransitionPayload{}, err
	}
	if payload.DriverAssociationID, err = optionalUUID(req.DriverAssociationID); err != nil {
		return services.TransitionPayload{}, err
	}
	if payload.VehicleID, err = optionalUUID(req.VehicleID); err != nil {
		return services.TransitionPayload{}, err
	}
	if payload.RecyclingCompanyID, err = optionalUUID(req.RecyclingCompanyID); err != nil {
		return services.TransitionPayload{}, err
	}

	return payload, nil
}

func membershipSpec(req createMembershipRequest) (commands.MembershipSpec, error) {
	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return commands.MembershipSpec{}, err
	}
	orgID, err := kernel.UUIDFromString(req.OrgID)
	if err != nil {
		return commands.MembershipSpec{}, err
	}
	orgType, err := membership.OrgTypeFromString(req.OrgType)
	if err != nil {
		return commands.MembershipSpec{}, err
	}

	spec := commands.MembershipSpec{
		UserID:              userID,
		OrgID:               orgID,
		OrgType:             orgType,
		IsPrimary:           req.IsPrimary,
		DriverLicenseNumber: req.DriverLicenseNumber,
	}

	if spec.CommunityID, err = optionalUUID(req.CommunityID); err != nil {
		return commands.MembershipSpec{}, err
	}
	if req.TransportRole != "" {
		if spec.TransportRole, err = membership.TransportRoleFromString(req.TransportRole); err != nil {
			return commands.MembershipSpec{}, err
		}
	}
	if req.RecyclingRole != "" {
		if spec.RecyclingRole, err = membership.RecyclingRoleFromString(req.RecyclingRole); err != nil {
			return commands.MembershipSpec{}, err
		}
	}

	return spec, nil
}

func optionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
