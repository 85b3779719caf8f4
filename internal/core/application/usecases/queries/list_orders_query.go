// Package queries contains read operations that bypass the domain model.
// Queries filter at the database level using the actor's resolved scope, so a
// caller only ever receives rows they are allowed to see.
package queries

import (
	"errors"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
	"github.com/esp3j0/waste-transort/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor")

// ListOrdersQuery retrieves the orders visible to an actor, optionally
// filtered by status. What "visible" means depends on the actor's role:
// customers see their own orders, property actors the orders in their
// communities, transport actors their company's and their own assigned orders
// plus the confirmed pool, recycling actors their company's orders plus the
// delivered pool.
type ListOrdersQuery struct {
	actor  kernel.Actor
	status *order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query for the actor's visible orders.
func NewListOrdersQuery(actor kernel.Actor) (ListOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

// WithStatus restricts the result to one order status.
func (q ListOrdersQuery) WithStatus(status order.Status) (ListOrdersQuery, error) {
	if err := status.Validate(); err != nil {
		return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	q.status = &status
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Actor returns the requesting actor.
func (q ListOrdersQuery) Actor() kernel.Actor { return q.actor }

// Status returns the optional status filter.
func (q ListOrdersQuery) Status() *order.Status { return q.status }

// OrderResponse represents one order row in a query result. Party references
// are nil until the corresponding stage of the lifecycle fills them.
type OrderResponse struct {
	ID          kernel.UUID
	OrderNumber string
	Status      string

	CustomerID  kernel.UUID
	AddressID   kernel.UUID
	CommunityID kernel.UUID

	ContactName  string
	ContactPhone string

	WasteType   string
	WasteVolume float64

	TransportCompanyID  *kernel.UUID
	DriverAssociationID *kernel.UUID
	VehicleID           *kernel.UUID
	RecyclingCompanyID  *kernel.UUID

	Price         float64
	PaymentStatus string

	CreatedAt time.Time
	UpdatedAt time.Time
}
