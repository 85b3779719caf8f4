// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by the columns every scoped listing filters on: status, owner,
// community, and the transport and recycling references.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber string    `gorm:"uniqueIndex;size:32"`
	Status      string    `gorm:"index;size:32"`

	CustomerID  uuid.UUID `gorm:"type:uuid;index"`
	AddressID   uuid.UUID `gorm:"type:uuid"`
	CommunityID uuid.UUID `gorm:"type:uuid;index"`

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

	PropertyManagerID   *uuid.UUID `gorm:"type:uuid"`
	TransportManagerID  *uuid.UUID `gorm:"type:uuid"`
	DriverAssociationID *uuid.UUID `gorm:"type:uuid;index"`
	VehicleID           *uuid.UUID `gorm:"type:uuid"`
	TransportCompanyID  *uuid.UUID `gorm:"type:uuid;index"`
	RecyclingManagerID  *uuid.UUID `gorm:"type:uuid"`
	RecyclingCompanyID  *uuid.UUID `gorm:"type:uuid;index"`

	Notes          string
	PropertyNotes  string
	TransportNotes string
	RecyclingNotes string
	TransportRoute string

	Price         float64
	PaymentStatus string `gorm:"size:16"`
	PaymentTime   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalDomainID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	restored, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &restored, nil
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.Snapshot()
	return OrderDTO{
		ID:                   s.ID.Bytes(),
		OrderNumber:          s.OrderNumber,
		Status:               s.Status.String(),
		CustomerID:           s.CustomerID.Bytes(),
		AddressID:            s.AddressID.Bytes(),
		CommunityID:          s.CommunityID.Bytes(),
		ContactName:          s.ContactName,
		ContactPhone:         s.ContactPhone,
		WasteType:            s.WasteType,
		WasteVolume:          s.WasteVolume,
		WasteWeight:          s.WasteWeight,
		ExpectedPickupTime:   s.ExpectedPickupTime,
		ActualPickupTime:     s.ActualPickupTime,
		DeliveryTime:         s.DeliveryTime,
		PropertyConfirmTime:  s.PropertyConfirmTime,
		RecyclingConfirmTime: s.RecyclingConfirmTime,
		PropertyManagerID:    optionalID(s.PropertyManagerID),
		TransportManagerID:   optionalID(s.TransportManagerID),
		DriverAssociationID:  optionalID(s.DriverAssociationID),
		VehicleID:            optionalID(s.VehicleID),
		TransportCompanyID:   optionalID(s.TransportCompanyID),
		RecyclingManagerID:   optionalID(s.RecyclingManagerID),
		RecyclingCompanyID:   optionalID(s.RecyclingCompanyID),
		Notes:                s.Notes,
		PropertyNotes:        s.PropertyNotes,
		TransportNotes:       s.TransportNotes,
		RecyclingNotes:       s.RecyclingNotes,
		TransportRoute:       s.TransportRoute,
		Price:                s.Price,
		PaymentStatus:        s.PaymentStatus,
		PaymentTime:          s.PaymentTime,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

// toDomain converts a database row to an order aggregate via RestoreOrder,
// which revalidates the record.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	addressID, err := kernel.UUIDFromBytes(dto.AddressID[:])
	if err != nil {
		return nil, err
	}
	communityID, err := kernel.UUIDFromBytes(dto.CommunityID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	propertyManagerID, err := optionalDomainID(dto.PropertyManagerID)
	if err != nil {
		return nil, err
	}
	transportManagerID, err := optionalDomainID(dto.TransportManagerID)
	if err != nil {
		return nil, err
	}
	driverAssociationID, err := optionalDomainID(dto.DriverAssociationID)
	if err != nil {
		return nil, err
	}
	vehicleID, err := optionalDomainID(dto.VehicleID)
	if err != nil {
		return nil, err
	}
	transportCompanyID, err := optionalDomainID(dto.TransportCompanyID)
	if err != nil {
		return nil, err
	}
	recyclingManagerID, err := optionalDomainID(dto.RecyclingManagerID)
	if err != nil {
		return nil, err
	}
	recyclingCompanyID, err := optionalDomainID(dto.RecyclingCompanyID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                   id,
		OrderNumber:          dto.OrderNumber,
		CustomerID:           customerID,
		AddressID:            addressID,
		CommunityID:          communityID,
		ContactName:          dto.ContactName,
		ContactPhone:         dto.ContactPhone,
		WasteType:            dto.WasteType,
		WasteVolume:          dto.WasteVolume,
		WasteWeight:          dto.WasteWeight,
		ExpectedPickupTime:   dto.ExpectedPickupTime,
		ActualPickupTime:     dto.ActualPickupTime,
		DeliveryTime:         dto.DeliveryTime,
		PropertyConfirmTime:  dto.PropertyConfirmTime,
		RecyclingConfirmTime: dto.RecyclingConfirmTime,
		PropertyManagerID:    propertyManagerID,
		TransportManagerID:   transportManagerID,
		DriverAssociationID:  driverAssociationID,
		VehicleID:            vehicleID,
		TransportCompanyID:   transportCompanyID,
		RecyclingManagerID:   recyclingManagerID,
		RecyclingCompanyID:   recyclingCompanyID,
		Notes:                dto.Notes,
		PropertyNotes:        dto.PropertyNotes,
		TransportNotes:       dto.TransportNotes,
		RecyclingNotes:       dto.RecyclingNotes,
		TransportRoute:       dto.TransportRoute,
		Status:               status,
		Price:                dto.Price,
		PaymentStatus:        dto.PaymentStatus,
		PaymentTime:          dto.PaymentTime,
		CreatedAt:            dto.CreatedAt,
		UpdatedAt:            dto.UpdatedAt,
	})
}
