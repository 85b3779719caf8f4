package http

import (
	"time"

	"github.com/esp3j0/waste-transort/internal/core/application/usecases/queries"
	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
)

type orderJSON struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`

	CustomerID  string `json:"customerId"`
	AddressID   string `json:"addressId"`
	CommunityID string `json:"communityId"`

	ContactName  string `json:"contactName,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`

	WasteType   string  `json:"wasteType"`
	WasteVolume float64 `json:"wasteVolume"`

	TransportCompanyID  *string `json:"transportCompanyId,omitempty"`
	DriverAssociationID *string `json:"driverAssociationId,omitempty"`
	VehicleID           *string `json:"vehicleId,omitempty"`
	RecyclingCompanyID  *string `json:"recyclingCompanyId,omitempty"`

	Price         float64 `json:"price"`
	PaymentStatus string  `json:"paymentStatus"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type orderDetailJSON struct {
	orderJSON

	WasteWeight *float64 `json:"wasteWeight,omitempty"`

	PropertyManagerID  *string `json:"propertyManagerId,omitempty"`
	TransportManagerID *string `json:"transportManagerId,omitempty"`
	RecyclingManagerID *string `json:"recyclingManagerId,omitempty"`

	ExpectedPickupTime   *time.Time `json:"expectedPickupTime,omitempty"`
	ActualPickupTime     *time.Time `json:"actualPickupTime,omitempty"`
	DeliveryTime         *time.Time `json:"deliveryTime,omitempty"`
	PropertyConfirmTime  *time.Time `json:"propertyConfirmTime,omitempty"`
	RecyclingConfirmTime *time.Time `json:"recyclingConfirmTime,omitempty"`
	PaymentTime          *time.Time `json:"paymentTime,omitempty"`

	Notes          string `json:"notes,omitempty"`
	PropertyNotes  string `json:"propertyNotes,omitempty"`
	TransportNotes string `json:"transportNotes,omitempty"`
	RecyclingNotes string `json:"recyclingNotes,omitempty"`
	TransportRoute string `json:"transportRoute,omitempty"`
}

func toOrderJSON(o queries.OrderResponse) orderJSON {
	return orderJSON{
		ID:          o.ID.String(),
		OrderNumber: o.OrderNumber,
		Status:      o.Status,

		CustomerID:  o.CustomerID.String(),
		AddressID:   o.AddressID.String(),
		CommunityID: o.CommunityID.String(),

		ContactName:  o.ContactName,
		ContactPhone: o.ContactPhone,

		WasteType:   o.WasteType,
		WasteVolume: o.WasteVolume,

		TransportCompanyID:  uuidString(o.TransportCompanyID),
		DriverAssociationID: uuidString(o.DriverAssociationID),
		VehicleID:           uuidString(o.VehicleID),
		RecyclingCompanyID:  uuidString(o.RecyclingCompanyID),

		Price:         o.Price,
		PaymentStatus: o.PaymentStatus,

		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func toOrderDetailJSON(d queries.GetOrderDetailResponse) orderDetailJSON {
	return orderDetailJSON{
		orderJSON: toOrderJSON(d.OrderResponse),

		WasteWeight: d.WasteWeight,

		PropertyManagerID:  uuidString(d.PropertyManagerID),
		TransportManagerID: uuidString(d.TransportManagerID),
		RecyclingManagerID: uuidString(d.RecyclingManagerID),

		ExpectedPickupTime:   d.ExpectedPickupTime,
		ActualPickupTime:     d.ActualPickupTime,
		DeliveryTime:         d.DeliveryTime,
		PropertyConfirmTime:  d.PropertyConfirmTime,
		RecyclingConfirmTime: d.RecyclingConfirmTime,
		PaymentTime:          d.PaymentTime,

		Notes:          d.Notes,
		PropertyNotes:  d.PropertyNotes,
		TransportNotes: d.TransportNotes,
		RecyclingNotes: d.RecyclingNotes,
		TransportRoute: d.TransportRoute,
	}
}

func uuidString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
