package queries

import (
	"context"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
	"github.com/esp3j0/waste-transort/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScopeResolver computes the authorization scope of an actor. Implemented by
// the scopes package; an interface here so handler tests can stub it.
type ScopeResolver interface {
	Resolve(ctx context.Context, actor kernel.Actor) (services.Scope, error)
}

// ListOrdersQueryHandler retrieves the orders visible to an actor directly
// from the database. Scope filtering happens in the WHERE clause rather than
// in memory, so the handler never materializes rows the actor may not see.
type ListOrdersQueryHandler struct {
	db       *gorm.DB
	resolver ScopeResolver
}

// NewListOrdersQueryHandler creates a handler for scope-filtered order listings.
func NewListOrdersQueryHandler(db *gorm.DB, resolver ScopeResolver) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, resolver: resolver}
}

// listOrderRow mirrors the columns of the orders table for direct scanning.
type listOrderRow struct {
	ID          uuid.UUID
	OrderNumber string
	Status      string

	CustomerID  uuid.UUID
	AddressID   uuid.UUID
	CommunityID uuid.UUID

	ContactName  string
	ContactPhone string

	WasteType   string
	WasteVolume float64

	TransportCompanyID  *uuid.UUID
	DriverAssociationID *uuid.UUID
	VehicleID           *uuid.UUID
	RecyclingCompanyID  *uuid.UUID

	Price         float64
	PaymentStatus string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Handle executes the listing. An actor whose scope grants access to nothing
// receives an empty result, not an error.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	tx := h.db.WithContext(ctx).Table("orders")

	if !actor.IsSuperuser() {
		scope, err := h.resolver.Resolve(ctx, actor)
		if err != nil {
			return nil, err
		}

		switch actor.Role() {
		case kernel.RoleCustomer:
			tx = tx.Where("customer_id = ?", actor.ID().Bytes())

		case kernel.RoleProperty:
			if scope.Property.IsEmpty() {
				return []OrderResponse{}, nil
			}
			tx = tx.Where("community_id IN ?", rawIDs(scope.Property.CommunityIDs()))

		case kernel.RoleTransport:
			if scope.Transport.IsEmpty() {
				return []OrderResponse{}, nil
			}
			companies := scope.Transport.CompanyIDs()
			if len(companies) > 0 {
				// dispatchers also see the confirmed pool awaiting assignment
				tx = tx.Where(
					"(transport_company_id IN ? OR driver_association_id IN ? OR status = ?)",
					rawIDs(companies),
					rawIDs(scope.Transport.DriverAssociationIDs()),
					order.StatusPropertyConfirmed.String(),
				)
			} else {
				tx = tx.Where(
					"driver_association_id IN ?",
					rawIDs(scope.Transport.DriverAssociationIDs()),
				)
			}

		case kernel.RoleRecycling:
			if scope.Recycling.IsEmpty() {
				return []OrderResponse{}, nil
			}
			// stations also see arriving loads before confirmation binds them
			tx = tx.Where(
				"(recycling_company_id IN ? OR status = ?)",
				rawIDs(scope.Recycling.CompanyIDs()),
				order.StatusDelivered.String(),
			)

		default:
			return []OrderResponse{}, nil
		}
	}

	if status := query.Status(); status != nil {
		tx = tx.Where("status = ?", status.String())
	}

	var rows []listOrderRow
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(rows))
	for _, row := range rows {
		response, err := toOrderResponse(row)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}

	return responses, nil
}

func toOrderResponse(row listOrderRow) (OrderResponse, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	customerID, err := kernel.UUIDFromBytes(row.CustomerID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	addressID, err := kernel.UUIDFromBytes(row.AddressID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	communityID, err := kernel.UUIDFromBytes(row.CommunityID[:])
	if err != nil {
		return OrderResponse{}, err
	}

	response := OrderResponse{
		ID:            id,
		OrderNumber:   row.OrderNumber,
		Status:        row.Status,
		CustomerID:    customerID,
		AddressID:     addressID,
		CommunityID:   communityID,
		ContactName:   row.ContactName,
		ContactPhone:  row.ContactPhone,
		WasteType:     row.WasteType,
		WasteVolume:   row.WasteVolume,
		Price:         row.Price,
		PaymentStatus: row.PaymentStatus,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}

	if response.TransportCompanyID, err = optionalID(row.TransportCompanyID); err != nil {
		return OrderResponse{}, err
	}
	if response.DriverAssociationID, err = optionalID(row.DriverAssociationID); err != nil {
		return OrderResponse{}, err
	}
	if response.VehicleID, err = optionalID(row.VehicleID); err != nil {
		return OrderResponse{}, err
	}
	if response.RecyclingCompanyID, err = optionalID(row.RecyclingCompanyID); err != nil {
		return OrderResponse{}, err
	}

	return response, nil
}

func optionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func rawIDs(ids []kernel.UUID) []uuid.UUID {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return raw
}
