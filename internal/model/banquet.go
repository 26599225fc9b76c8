package model

import "github.com/shopspring/decimal"

// Banquet is a rentable venue.  Read-only from the booking core.
type Banquet struct {
	BanquetID  string          `json:"banquet_id"`
	Name       string          `json:"name"`
	Location   string          `json:"location"`
	Capacity   int             `json:"capacity"`
	CostPerDay decimal.Decimal `json:"cost_per_day"`
}
