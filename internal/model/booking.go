package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage format of every calendar date.
const DateLayout = "2006-01-02"

// Booking reserves one banquet for one customer's event.  TotalCost is
// derived as CostPerDay × Duration when the row is written and is never
// accepted from callers.
type Booking struct {
	BookingID  string          `json:"booking_id"`
	CustomerID string          `json:"customer_id"`
	BanquetID  string          `json:"banquet_id"`
	EventID    string          `json:"event_id"`
	EventDate  time.Time       `json:"-"`
	Duration   int             `json:"duration"`
	TotalCost  decimal.Decimal `json:"total_cost"`
}

// MaxAmount is the largest value the DECIMAL(14,2) money columns hold.
var MaxAmount = decimal.RequireFromString("999999999999.99")

// TotalFor computes the derived cost of renting at costPerDay for duration days.
func TotalFor(costPerDay decimal.Decimal, duration int) decimal.Decimal {
	return costPerDay.Mul(decimal.NewFromInt(int64(duration)))
}
