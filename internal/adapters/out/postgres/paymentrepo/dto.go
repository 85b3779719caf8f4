// Package paymentrepo persists payment records created when orders complete.
package paymentrepo

import (
	"time"

	"github.com/google/uuid"
)

// PaymentRecordDTO represents the database structure for payment records.
type PaymentRecordDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`

	Amount float64
	Status string `gorm:"size:16"`

	CreatedAt time.Time
}

// TableName overrides GORM's default naming convention to use "payment_records".
func (PaymentRecordDTO) TableName() string {
	return "payment_records"
}
