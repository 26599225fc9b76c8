package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod values are stored verbatim; "Credit Card" keeps the
// spelling used by existing rows.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "Cash"
	PaymentCreditCard PaymentMethod = "Credit Card"
	PaymentUPI        PaymentMethod = "UPI"
)

// PaymentStatus is descriptive only; no transitions are enforced.
type PaymentStatus string

const (
	StatusCompleted PaymentStatus = "Completed"
	StatusPending   PaymentStatus = "Pending"
	StatusFailed    PaymentStatus = "Failed"
)

// ParsePaymentMethod accepts the three methods case-insensitively, with
// "CreditCard" and "Credit Card" both naming the card method.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.Join(strings.Fields(s), "")) {
	case "cash":
		return PaymentCash, nil
	case "creditcard":
		return PaymentCreditCard, nil
	case "upi":
		return PaymentUPI, nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// ParsePaymentStatus accepts Completed, Pending or Failed case-insensitively.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "completed":
		return StatusCompleted, nil
	case "pending":
		return StatusPending, nil
	case "failed":
		return StatusFailed, nil
	}
	return "", fmt.Errorf("unknown payment status %q", s)
}

// Payment is a bookkeeping record against a booking.  Amount is not
// reconciled with the booking's TotalCost.
type Payment struct {
	PaymentID     string          `json:"payment_id"`
	BookingID     string          `json:"booking_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	PaymentDate   time.Time       `json:"-"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
}
