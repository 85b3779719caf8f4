package ports

import (
	"context"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"
)

// PaymentRecorder writes a payment record when an order completes. The payment
// gateway itself is an external collaborator; this module only persists the
// outcome row it will later reconcile against.
type PaymentRecorder interface {
	Record(ctx context.Context, orderID kernel.UUID, amount float64, status string) error
}
