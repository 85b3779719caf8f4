package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/pkg/errs"
)

// Payment states of an order. Payment handling itself is an external collaborator;
// the order only records the outcome.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
	PaymentStatusWaived = "waived"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrTransportRefsInconsistent is returned when driver association, vehicle, and
	// transport company references are partially set. They are null together before
	// assignment and set together afterwards.
	ErrTransportRefsInconsistent = errs.NewValueIsInvalidError(
		"driver association, vehicle, and transport company must be set together")
)

// Order is the aggregate root for a construction-waste pickup. It carries the
// parties that act on it per lifecycle stage, the waste workload, milestone
// timestamps, and the current Status.
//
// Invariants:
//   - exactly one status at any time, moved only along the Status graph
//   - customer id is immutable after creation
//   - driver association, vehicle, and transport company are all nil or all set
//   - each milestone timestamp is stamped by the transition into its status
//
// Orders are created via NewOrder and reconstructed from persistence via
// RestoreOrder; direct struct construction fails Validate.
type Order struct {
	id          kernel.UUID
	orderNumber string
	customerID  kernel.UUID

	// pickup location: address, and the community derived from it, which is the
	// unit of property-manager scoping
	addressID    kernel.UUID
	communityID  kernel.UUID
	contactName  string
	contactPhone string

	wasteType   string
	wasteVolume float64
	wasteWeight *float64

	expectedPickupTime   *time.Time
	actualPickupTime     *time.Time
	deliveryTime         *time.Time
	propertyConfirmTime  *time.Time
	recyclingConfirmTime *time.Time

	propertyManagerID   *kernel.UUID
	transportManagerID  *kernel.UUID
	driverAssociationID *kernel.UUID
	vehicleID           *kernel.UUID
	transportCompanyID  *kernel.UUID
	recyclingManagerID  *kernel.UUID
	recyclingCompanyID  *kernel.UUID

	notes          string
	propertyNotes  string
	transportNotes string
	recyclingNotes string
	transportRoute string

	status        Status
	price         float64
	paymentStatus string
	paymentTime   *time.Time

	createdAt time.Time
	updatedAt time.Time

	guard kernel.ConstructorGuard
}

// NewOrder creates a pending order for a customer. The community id must be the one
// the address belongs to; the caller resolves it before construction so that scoping
// never needs to traverse the address again.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	addressID kernel.UUID,
	communityID kernel.UUID,
	wasteType string,
	wasteVolume float64,
	now time.Time,
) (*Order, error) {
	o := &Order{
		orderNumber:   NewOrderNumber(now),
		status:        StatusPending,
		paymentStatus: PaymentStatusUnpaid,
		createdAt:     now,
		updatedAt:     now,
		guard:         kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setAddress(addressID, communityID),
		o.setWasteType(wasteType),
		o.setWasteVolume(wasteVolume),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the flattened persisted state of an order. It exists so repositories
// can map the aggregate without reflection and RestoreOrder can revalidate the
// whole record in one place.
type Snapshot struct {
	ID          kernel.UUID
	OrderNumber string
	CustomerID  kernel.UUID

	AddressID    kernel.UUID
	CommunityID  kernel.UUID
	ContactName  string
	ContactPhone string

	WasteType   string
	WasteVolume float64
	WasteWeight *float64

	ExpectedPickupTime   *time.Time
	ActualPickupTime     *time.Time
	DeliveryTime         *time.Time
	PropertyConfirmTime  *time.Time
	RecyclingConfirmTime *time.Time

	PropertyManagerID   *kernel.UUID
	TransportManagerID  *kernel.UUID
	DriverAssociationID *kernel.UUID
	VehicleID           *kernel.UUID
	TransportCompanyID  *kernel.UUID
	RecyclingManagerID  *kernel.UUID
	RecyclingCompanyID  *kernel.UUID

	Notes          string
	PropertyNotes  string
	TransportNotes string
	RecyclingNotes string
	TransportRoute string

	Status        Status
	Price         float64
	PaymentStatus string
	PaymentTime   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RestoreOrder reconstructs an order aggregate from its persisted snapshot,
// revalidating identity, status, and the transport reference invariant.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		orderNumber:          s.OrderNumber,
		contactName:          s.ContactName,
		contactPhone:         s.ContactPhone,
		wasteWeight:          s.WasteWeight,
		expectedPickupTime:   s.ExpectedPickupTime,
		actualPickupTime:     s.ActualPickupTime,
		deliveryTime:         s.DeliveryTime,
		propertyConfirmTime:  s.PropertyConfirmTime,
		recyclingConfirmTime: s.RecyclingConfirmTime,
		propertyManagerID:    s.PropertyManagerID,
		transportManagerID:   s.TransportManagerID,
		driverAssociationID:  s.DriverAssociationID,
		vehicleID:            s.VehicleID,
		transportCompanyID:   s.TransportCompanyID,
		recyclingManagerID:   s.RecyclingManagerID,
		recyclingCompanyID:   s.RecyclingCompanyID,
		notes:                s.Notes,
		propertyNotes:        s.PropertyNotes,
		transportNotes:       s.TransportNotes,
		recyclingNotes:       s.RecyclingNotes,
		transportRoute:       s.TransportRoute,
		price:                s.Price,
		paymentStatus:        s.PaymentStatus,
		paymentTime:          s.PaymentTime,
		createdAt:            s.CreatedAt,
		updatedAt:            s.UpdatedAt,
		guard:                kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCustomerID(s.CustomerID),
		o.setAddress(s.AddressID, s.CommunityID),
		o.setWasteType(s.WasteType),
		o.setWasteVolume(s.WasteVolume),
		o.setStatus(s.Status),
	); err != nil {
		return nil, err
	}

	if err := o.validateTransportRefs(); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot returns the flattened persisted state of the order.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                   o.id,
		OrderNumber:          o.orderNumber,
		CustomerID:           o.customerID,
		AddressID:            o.addressID,
		CommunityID:          o.communityID,
		ContactName:          o.contactName,
		ContactPhone:         o.contactPhone,
		WasteType:            o.wasteType,
		WasteVolume:          o.wasteVolume,
		WasteWeight:          o.wasteWeight,
		ExpectedPickupTime:   o.expectedPickupTime,
		ActualPickupTime:     o.actualPickupTime,
		DeliveryTime:         o.deliveryTime,
		PropertyConfirmTime:  o.propertyConfirmTime,
		RecyclingConfirmTime: o.recyclingConfirmTime,
		PropertyManagerID:    o.propertyManagerID,
		TransportManagerID:   o.transportManagerID,
		DriverAssociationID:  o.driverAssociationID,
		VehicleID:            o.vehicleID,
		TransportCompanyID:   o.transportCompanyID,
		RecyclingManagerID:   o.recyclingManagerID,
		RecyclingCompanyID:   o.recyclingCompanyID,
		Notes:                o.notes,
		PropertyNotes:        o.propertyNotes,
		TransportNotes:       o.transportNotes,
		RecyclingNotes:       o.recyclingNotes,
		TransportRoute:       o.transportRoute,
		Status:               o.status,
		Price:                o.price,
		PaymentStatus:        o.paymentStatus,
		PaymentTime:          o.paymentTime,
		CreatedAt:            o.createdAt,
		UpdatedAt:            o.updatedAt,
	}
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// OrderNumber returns the human-readable order reference.
func (o *Order) OrderNumber() string { return o.orderNumber }

// CustomerID returns the owning customer, immutable after creation.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// AddressID returns the pickup address.
func (o *Order) AddressID() kernel.UUID { return o.addressID }

// CommunityID returns the community derived from the pickup address.
// This is the unit of property-manager scoping.
func (o *Order) CommunityID() kernel.UUID { return o.communityID }

// WasteType returns the declared waste category.
func (o *Order) WasteType() string { return o.wasteType }

// WasteVolume returns the declared volume in cubic meters.
func (o *Order) WasteVolume() float64 { return o.wasteVolume }

// WasteWeight returns the measured weight in tons, nil until weighed.
func (o *Order) WasteWeight() *float64 { return o.wasteWeight }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// PropertyManagerID returns the confirming property manager, nil before confirmation.
func (o *Order) PropertyManagerID() *kernel.UUID { return o.propertyManagerID }

// TransportManagerID returns the dispatcher who assigned transport, nil before assignment.
func (o *Order) TransportManagerID() *kernel.UUID { return o.transportManagerID }

// DriverAssociationID returns the assigned driver's membership record, nil before assignment.
// Orders reference the membership row, never the driver's user id directly.
func (o *Order) DriverAssociationID() *kernel.UUID { return o.driverAssociationID }

// VehicleID returns the assigned vehicle, nil before assignment.
func (o *Order) VehicleID() *kernel.UUID { return o.vehicleID }

// TransportCompanyID returns the hauling company, nil before assignment.
func (o *Order) TransportCompanyID() *kernel.UUID { return o.transportCompanyID }

// RecyclingManagerID returns the confirming recycling manager, nil before confirmation.
func (o *Order) RecyclingManagerID() *kernel.UUID { return o.recyclingManagerID }

// RecyclingCompanyID returns the receiving recycling company, nil before confirmation.
func (o *Order) RecyclingCompanyID() *kernel.UUID { return o.recyclingCompanyID }

// ExpectedPickupTime returns the customer's requested pickup time.
func (o *Order) ExpectedPickupTime() *time.Time { return o.expectedPickupTime }

// ActualPickupTime returns the time the driver started transporting.
func (o *Order) ActualPickupTime() *time.Time { return o.actualPickupTime }

// DeliveryTime returns the time the load arrived at the recycling station.
func (o *Order) DeliveryTime() *time.Time { return o.deliveryTime }

// PropertyConfirmTime returns the property confirmation milestone.
func (o *Order) PropertyConfirmTime() *time.Time { return o.propertyConfirmTime }

// RecyclingConfirmTime returns the recycling confirmation milestone.
func (o *Order) RecyclingConfirmTime() *time.Time { return o.recyclingConfirmTime }

// Notes returns the customer's note.
func (o *Order) Notes() string { return o.notes }

// PropertyNotes returns the property company's note.
func (o *Order) PropertyNotes() string { return o.propertyNotes }

// TransportNotes returns the transport company's note.
func (o *Order) TransportNotes() string { return o.transportNotes }

// RecyclingNotes returns the recycling company's note.
func (o *Order) RecyclingNotes() string { return o.recyclingNotes }

// TransportRoute returns the planned haul route.
func (o *Order) TransportRoute() string { return o.transportRoute }

// Price returns the order price.
func (o *Order) Price() float64 { return o.price }

// PaymentStatus returns the recorded payment outcome.
func (o *Order) PaymentStatus() string { return o.paymentStatus }

// PaymentTime returns when payment was recorded, nil while unpaid.
func (o *Order) PaymentTime() *time.Time { return o.paymentTime }

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last mutation time.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// ContactName returns the pickup contact person.
func (o *Order) ContactName() string { return o.contactName }

// ContactPhone returns the pickup contact phone.
func (o *Order) ContactPhone() string { return o.contactPhone }

// HasTransportAllocation reports whether a driver and vehicle are referenced.
func (o *Order) HasTransportAllocation() bool {
	return o.driverAssociationID != nil
}

// ConfirmByProperty moves a pending order to property_confirmed, recording the
// confirming manager and stamping the confirmation milestone.
func (o *Order) ConfirmByProperty(managerID kernel.UUID, now time.Time) error {
	if err := managerID.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateTransition(StatusPropertyConfirmed); err != nil {
		return err
	}

	o.status = StatusPropertyConfirmed
	o.propertyManagerID = &managerID
	o.propertyConfirmTime = &now
	o.touch(now)
	return nil
}

// AssignTransport moves a property-confirmed order to transport_assigned, recording
// the dispatcher and the driver/vehicle/company triple. The caller (the resource
// allocator, driven by the state machine) has already verified driver and vehicle
// availability; this method only maintains the order-side invariant that the three
// references appear together.
func (o *Order) AssignTransport(
	managerID kernel.UUID,
	driverAssociationID kernel.UUID,
	vehicleID kernel.UUID,
	transportCompanyID kernel.UUID,
	now time.Time,
) error {
	if err := errors.Join(
		managerID.Validate(),
		driverAssociationID.Validate(),
		vehicleID.Validate(),
		transportCompanyID.Validate(),
	); err != nil {
		return err
	}
	if err := o.status.ValidateTransition(StatusTransportAssigned); err != nil {
		return err
	}

	o.status = StatusTransportAssigned
	o.transportManagerID = &managerID
	o.driverAssociationID = &driverAssociationID
	o.vehicleID = &vehicleID
	o.transportCompanyID = &transportCompanyID
	o.touch(now)
	return nil
}

// StartTransport moves a transport-assigned order to transporting, stamping the
// actual pickup time unless one was already recorded manually.
func (o *Order) StartTransport(now time.Time) error {
	if err := o.status.ValidateTransition(StatusTransporting); err != nil {
		return err
	}

	o.status = StatusTransporting
	if o.actualPickupTime == nil {
		o.actualPickupTime = &now
	}
	o.touch(now)
	return nil
}

// MarkDelivered moves a transporting order to delivered and stamps the delivery time.
// Releasing the driver and vehicle is the resource allocator's job.
func (o *Order) MarkDelivered(now time.Time) error {
	if err := o.status.ValidateTransition(StatusDelivered); err != nil {
		return err
	}

	o.status = StatusDelivered
	o.deliveryTime = &now
	o.touch(now)
	return nil
}

// ConfirmRecycling moves a delivered order to recycling_confirmed, recording the
// confirming manager and the receiving company. If a receiving company was already
// set on the order it cannot be changed here.
func (o *Order) ConfirmRecycling(managerID, recyclingCompanyID kernel.UUID, now time.Time) error {
	if err := errors.Join(managerID.Validate(), recyclingCompanyID.Validate()); err != nil {
		return err
	}
	if err := o.status.ValidateTransition(StatusRecyclingConfirmed); err != nil {
		return err
	}
	if o.recyclingCompanyID != nil && !o.recyclingCompanyID.IsEqual(recyclingCompanyID) {
		return errs.NewValueIsInvalidErrorWithCause("recyclingCompanyId",
			fmt.Errorf("order is already routed to recycling company %s", o.recyclingCompanyID))
	}

	o.status = StatusRecyclingConfirmed
	o.recyclingManagerID = &managerID
	o.recyclingCompanyID = &recyclingCompanyID
	o.recyclingConfirmTime = &now
	o.touch(now)
	return nil
}

// Complete moves a recycling-confirmed order to the terminal completed status.
func (o *Order) Complete(now time.Time) error {
	if err := o.status.ValidateTransition(StatusCompleted); err != nil {
		return err
	}

	o.status = StatusCompleted
	o.touch(now)
	return nil
}

// Cancel moves a pending or property-confirmed order to the terminal cancelled
// status. Orders that progressed into transport cannot be cancelled anymore; the
// state graph has no edge from those statuses.
func (o *Order) Cancel(now time.Time) error {
	if err := o.status.ValidateTransition(StatusCancelled); err != nil {
		return err
	}

	o.status = StatusCancelled
	o.touch(now)
	return nil
}

// UpdateWasteDetails replaces the customer-editable workload fields.
// Allowed only while the order is pending; afterwards downstream parties have
// acted on the declared values.
func (o *Order) UpdateWasteDetails(wasteType string, wasteVolume float64, now time.Time) error {
	if o.status != StatusPending {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("waste details can only change while pending, order is %s", o.status))
	}
	if err := errors.Join(o.setWasteType(wasteType), o.setWasteVolume(wasteVolume)); err != nil {
		return err
	}
	o.touch(now)
	return nil
}

// SetExpectedPickupTime records the customer's requested pickup slot.
func (o *Order) SetExpectedPickupTime(at time.Time, now time.Time) {
	o.expectedPickupTime = &at
	o.touch(now)
}

// SetNotes replaces the customer note.
func (o *Order) SetNotes(notes string, now time.Time) {
	o.notes = notes
	o.touch(now)
}

// SetPropertyNotes replaces the property company's note.
func (o *Order) SetPropertyNotes(notes string, now time.Time) {
	o.propertyNotes = notes
	o.touch(now)
}

// SetTransportDetails replaces the transport company's route and note.
func (o *Order) SetTransportDetails(route, notes string, now time.Time) {
	o.transportRoute = route
	o.transportNotes = notes
	o.touch(now)
}

// SetRecyclingNotes replaces the recycling company's note.
func (o *Order) SetRecyclingNotes(notes string, now time.Time) {
	o.recyclingNotes = notes
	o.touch(now)
}

// SetActualPickupTime corrects the recorded pickup time.
func (o *Order) SetActualPickupTime(at time.Time, now time.Time) {
	o.actualPickupTime = &at
	o.touch(now)
}

// SetDeliveryTime corrects the recorded delivery time.
func (o *Order) SetDeliveryTime(at time.Time, now time.Time) {
	o.deliveryTime = &at
	o.touch(now)
}

// SetWasteWeight records the measured weight in tons. Negative weights are rejected.
func (o *Order) SetWasteWeight(weight float64, now time.Time) error {
	if weight < 0 {
		return errs.NewValueIsInvalidErrorWithCause("wasteWeight",
			fmt.Errorf("%f is negative", weight))
	}
	o.wasteWeight = &weight
	o.touch(now)
	return nil
}

// SetContact replaces the pickup contact snapshot.
func (o *Order) SetContact(name, phone string, now time.Time) {
	o.contactName = name
	o.contactPhone = phone
	o.touch(now)
}

// RecordPayment stores the payment outcome reported by the external payment collaborator.
func (o *Order) RecordPayment(status string, price float64, now time.Time) error {
	switch status {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusWaived:
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%q is not a valid payment status", status))
	}
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%f is negative", price))
	}

	o.paymentStatus = status
	o.price = price
	if status != PaymentStatusUnpaid {
		o.paymentTime = &now
	}
	o.touch(now)
	return nil
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setAddress(addressID, communityID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("addressId", err)
	}
	if err := communityID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("communityId", err)
	}
	o.addressID = addressID
	o.communityID = communityID
	return nil
}

func (o *Order) setWasteType(wasteType string) error {
	if wasteType == "" {
		return errs.NewValueIsRequiredError("wasteType")
	}
	o.wasteType = wasteType
	return nil
}

func (o *Order) setWasteVolume(volume float64) error {
	if volume <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("wasteVolume",
			fmt.Errorf("%f is not greater than 0", volume))
	}
	o.wasteVolume = volume
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// validateTransportRefs enforces the all-or-none invariant on the transport triple.
func (o *Order) validateTransportRefs() error {
	set := 0
	for _, ref := range []*kernel.UUID{o.driverAssociationID, o.vehicleID, o.transportCompanyID} {
		if ref != nil {
			set++
		}
	}
	if set != 0 && set != 3 {
		return ErrTransportRefsInconsistent
	}
	return nil
}
