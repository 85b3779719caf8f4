package order

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// numberPrefix starts every order number; the rest is the creation date and a
// random six-digit suffix, giving a human-readable unique reference like
// "WT20260830417203". Uniqueness is backed by the database constraint on the
// order_number column; a collision surfaces as a rejected insert.
const numberPrefix = "WT"

// NewOrderNumber generates a human-readable order number for the given creation time.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("%s%s%06d", numberPrefix, now.Format("20060102"), rand.IntN(1000000))
}
