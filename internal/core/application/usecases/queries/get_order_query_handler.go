package queries

import (
	"context"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
	"github.com/esp3j0/waste-transort/internal/core/ports"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// GetOrderQueryHandler retrieves one order and checks the actor's scope
// against it. Unlike the listing, the detail view restores the full aggregate
// because the visibility rule needs the order's party references.
type GetOrderQueryHandler struct {
	orders   ports.OrderRepository
	resolver ScopeResolver
}

// NewGetOrderQueryHandler creates a handler for single-order lookups.
func NewGetOrderQueryHandler(orders ports.OrderRepository, resolver ScopeResolver) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, resolver: resolver}
}

// GetOrderDetailResponse represents the full detail view of one order.
type GetOrderDetailResponse struct {
	OrderResponse

	WasteWeight *float64

	PropertyManagerID  *kernel.UUID
	TransportManagerID *kernel.UUID
	RecyclingManagerID *kernel.UUID

	ExpectedPickupTime   *time.Time
	ActualPickupTime     *time.Time
	DeliveryTime         *time.Time
	PropertyConfirmTime  *time.Time
	RecyclingConfirmTime *time.Time
	PaymentTime          *time.Time

	Notes          string
	PropertyNotes  string
	TransportNotes string
	RecyclingNotes string
	TransportRoute string
}

// Handle executes the lookup. Returns ObjectNotFoundError when the order does
// not exist and PermissionDeniedError when it exists outside the actor's scope.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderDetailResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderDetailResponse{}, err
	}

	aggregate, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderDetailResponse{}, err
	}

	actor := query.Actor()
	scope, err := h.resolver.Resolve(ctx, actor)
	if err != nil {
		return GetOrderDetailResponse{}, err
	}
	if !scope.AllowsView(actor, aggregate) {
		return GetOrderDetailResponse{}, errs.NewPermissionDeniedError(
			"view order " + aggregate.ID().String())
	}

	return toDetailResponse(aggregate), nil
}

func toDetailResponse(o *order.Order) GetOrderDetailResponse {
	return GetOrderDetailResponse{
		OrderResponse: OrderResponse{
			ID:                  o.ID(),
			OrderNumber:         o.OrderNumber(),
			Status:              o.Status().String(),
			CustomerID:          o.CustomerID(),
			AddressID:           o.AddressID(),
			CommunityID:         o.CommunityID(),
			ContactName:         o.ContactName(),
			ContactPhone:        o.ContactPhone(),
			WasteType:           o.WasteType(),
			WasteVolume:         o.WasteVolume(),
			TransportCompanyID:  o.TransportCompanyID(),
			DriverAssociationID: o.DriverAssociationID(),
			VehicleID:           o.VehicleID(),
			RecyclingCompanyID:  o.RecyclingCompanyID(),
			Price:               o.Price(),
			PaymentStatus:       o.PaymentStatus(),
			CreatedAt:           o.CreatedAt(),
			UpdatedAt:           o.UpdatedAt(),
		},
		WasteWeight:          o.WasteWeight(),
		PropertyManagerID:    o.PropertyManagerID(),
		TransportManagerID:   o.TransportManagerID(),
		RecyclingManagerID:   o.RecyclingManagerID(),
		ExpectedPickupTime:   o.ExpectedPickupTime(),
		ActualPickupTime:     o.ActualPickupTime(),
		DeliveryTime:         o.DeliveryTime(),
		PropertyConfirmTime:  o.PropertyConfirmTime(),
		RecyclingConfirmTime: o.RecyclingConfirmTime(),
		PaymentTime:          o.PaymentTime(),
		Notes:                o.Notes(),
		PropertyNotes:        o.PropertyNotes(),
		TransportNotes:       o.TransportNotes(),
		RecyclingNotes:       o.RecyclingNotes(),
		TransportRoute:       o.TransportRoute(),
	}
}
