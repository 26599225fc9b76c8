// Package queue defines message payloads exchanged over the message broker
// and the audit consumer that reads them.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/banquet-booking/internal/model"
)

// QueueName is the durable queue every domain event is routed to.
const QueueName = "banquet.events"

// Event types.
const (
	BookingCreated  = "booking.created"
	BookingUpdated  = "booking.updated"
	BookingDeleted  = "booking.deleted"
	PaymentRecorded = "payment.recorded"
)

// Event is published after a write has committed.  Exactly one of Booking
// or Payment is set, except for deletions which carry only BookingID.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt string          `json:"occurred_at"`
	BookingID  string          `json:"booking_id"`
	Booking    *BookingPayload `json:"booking,omitempty"`
	Payment    *PaymentPayload `json:"payment,omitempty"`
}

// BookingPayload is the booking as seen by downstream consumers.
type BookingPayload struct {
	CustomerID string `json:"customer_id"`
	BanquetID  string `json:"banquet_id"`
	EventID    string `json:"event_id"`
	EventDate  string `json:"event_date"`
	Duration   int    `json:"duration"`
	TotalCost  string `json:"total_cost"`
}

// PaymentPayload is the payment as seen by downstream consumers.
type PaymentPayload struct {
	PaymentID     string `json:"payment_id"`
	Amount        string `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	PaymentDate   string `json:"payment_date"`
	PaymentStatus string `json:"payment_status"`
}

func newEvent(typ, bookingID string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		BookingID:  bookingID,
	}
}

// NewBookingEvent describes a created or updated booking.
func NewBookingEvent(typ string, b model.Booking) Event {
	ev := newEvent(typ, b.BookingID)
	ev.Booking = &BookingPayload{
		CustomerID: b.CustomerID,
		BanquetID:  b.BanquetID,
		EventID:    b.EventID,
		EventDate:  b.EventDate.Format(model.DateLayout),
		Duration:   b.Duration,
		TotalCost:  b.TotalCost.StringFixed(2),
	}
	return ev
}

// NewBookingDeletedEvent describes a removed booking.
func NewBookingDeletedEvent(bookingID string) Event {
	return newEvent(BookingDeleted, bookingID)
}

// NewPaymentEvent describes a recorded payment.
func NewPaymentEvent(p model.Payment) Event {
	ev := newEvent(PaymentRecorded, p.BookingID)
	ev.Payment = &PaymentPayload{
		PaymentID:     p.PaymentID,
		Amount:        p.Amount.StringFixed(2),
		PaymentMethod: string(p.PaymentMethod),
		PaymentDate:   p.PaymentDate.Format(model.DateLayout),
		PaymentStatus: string(p.PaymentStatus),
	}
	return ev
}
