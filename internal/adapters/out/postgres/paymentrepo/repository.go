package paymentrepo

import (
	"context"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentRecorder implements ports.PaymentRecorder using GORM.
type GormPaymentRecorder struct {
	db *gorm.DB
}

// NewGormPaymentRecorder creates a new GORM payment recorder.
func NewGormPaymentRecorder(db *gorm.DB) *GormPaymentRecorder {
	return &GormPaymentRecorder{db: db}
}

// Record writes a payment record for a completed order.
func (r *GormPaymentRecorder) Record(
	ctx context.Context, orderID kernel.UUID, amount float64, status string) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	dto := PaymentRecordDTO{
		ID:      uuid.New(),
		OrderID: orderID.Bytes(),
		Amount:  amount,
		Status:  status,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}
