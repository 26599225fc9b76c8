package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/banquet-booking/internal/metrics"
	"github.com/iliyamo/banquet-booking/internal/model"
	"github.com/iliyamo/banquet-booking/internal/queue"
)

// PaymentStore persists payment records.
type PaymentStore interface {
	Save(ctx context.Context, p model.Payment) (model.Payment, error)
	Find(ctx context.Context, paymentID, bookingID string) (model.Payment, error)
}

// PaymentInput carries payment fields as text.
type PaymentInput struct {
	PaymentID     string `json:"payment_id" validate:"required,max=50"`
	BookingID     string `json:"booking_id" validate:"required,max=50"`
	Amount        string `json:"amount" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required"`
	PaymentDate   string `json:"payment_date" validate:"required,datetime=2006-01-02"`
	PaymentStatus string `json:"payment_status" validate:"required"`
}

// PaymentService validates payment input server-side and records it.
// Amounts are bookkeeping only and are not compared with the booking total.
type PaymentService struct {
	store    PaymentStore
	events   Publisher
	validate *validator.Validate
}

// NewPaymentService wires a PaymentService.  A nil publisher disables events.
func NewPaymentService(store PaymentStore, events Publisher) *PaymentService {
	if events == nil {
		events = NopPublisher{}
	}
	return &PaymentService{store: store, events: events, validate: newValidator()}
}

// Save parses in and stores the payment.
func (s *PaymentService) Save(ctx context.Context, in PaymentInput) (p model.Payment, err error) {
	defer func(start time.Time) { metrics.Observe("payment", "save", start, err) }(time.Now())

	p, err = s.parse(in)
	if err != nil {
		return model.Payment{}, err
	}
	if p, err = s.store.Save(ctx, p); err != nil {
		return model.Payment{}, err
	}
	publish(ctx, s.events, queue.NewPaymentEvent(p))
	return p, nil
}

// Find looks a payment up by its id and the booking it belongs to.
func (s *PaymentService) Find(ctx context.Context, paymentID, bookingID string) (p model.Payment, err error) {
	defer func(start time.Time) { metrics.Observe("payment", "find", start, err) }(time.Now())

	verr := &ValidationError{}
	if paymentID == "" {
		verr.add("payment_id", "is required")
	}
	if bookingID == "" {
		verr.add("booking_id", "is required")
	}
	if err = verr.orNil(); err != nil {
		return model.Payment{}, err
	}
	return s.store.Find(ctx, paymentID, bookingID)
}

func (s *PaymentService) parse(in PaymentInput) (model.Payment, error) {
	trim(&in)
	verr := check(s.validate, in)
	p := model.Payment{PaymentID: in.PaymentID, BookingID: in.BookingID}

	if in.Amount != "" {
		amt, err := decimal.NewFromString(in.Amount)
		switch {
		case err != nil:
			verr.add("amount", "must be a decimal number")
		case amt.IsNegative():
			verr.add("amount", "must not be negative")
		case !amt.Equal(amt.Round(2)):
			verr.add("amount", "must have at most 2 decimal places")
		case amt.GreaterThan(model.MaxAmount):
			verr.add("amount", "must be at most "+model.MaxAmount.String())
		default:
			p.Amount = amt
		}
	}
	if in.PaymentMethod != "" {
		m, err := model.ParsePaymentMethod(in.PaymentMethod)
		if err != nil {
			verr.add("payment_method", "must be one of Cash, CreditCard, UPI")
		}
		p.PaymentMethod = m
	}
	if in.PaymentStatus != "" {
		st, err := model.ParsePaymentStatus(in.PaymentStatus)
		if err != nil {
			verr.add("payment_status", "must be one of Completed, Pending, Failed")
		}
		p.PaymentStatus = st
	}
	if d, err := time.Parse(model.DateLayout, in.PaymentDate); err == nil {
		p.PaymentDate = d
	}
	if err := verr.orNil(); err != nil {
		return model.Payment{}, err
	}
	return p, nil
}
