package service

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/banquet-booking/internal/metrics"
	"github.com/iliyamo/banquet-booking/internal/model"
	"github.com/iliyamo/banquet-booking/internal/queue"
)

// BookingStore persists bookings and owns the TotalCost derivation.
type BookingStore interface {
	Create(ctx context.Context, b model.Booking) (model.Booking, error)
	Get(ctx context.Context, bookingID string) (model.Booking, error)
	Update(ctx context.Context, b model.Booking) (model.Booking, error)
	Delete(ctx context.Context, bookingID string) error
}

// BookingInput carries the booking fields exactly as the presentation
// layer collected them.
type BookingInput struct {
	BookingID  string `json:"booking_id" validate:"required,max=50"`
	CustomerID string `json:"customer_id" validate:"required,max=50"`
	BanquetID  string `json:"banquet_id" validate:"required,max=50"`
	EventID    string `json:"event_id" validate:"required,max=50"`
	EventDate  string `json:"event_date" validate:"required,datetime=2006-01-02"`
	Duration   string `json:"duration" validate:"required,number"`
}

// BookingService parses booking input and drives the booking repository.
type BookingService struct {
	store    BookingStore
	events   Publisher
	validate *validator.Validate
}

// NewBookingService wires a BookingService.  A nil publisher disables events.
func NewBookingService(store BookingStore, events Publisher) *BookingService {
	if events == nil {
		events = NopPublisher{}
	}
	return &BookingService{store: store, events: events, validate: newValidator()}
}

// Create validates in and inserts the booking priced from its banquet.
func (s *BookingService) Create(ctx context.Context, in BookingInput) (b model.Booking, err error) {
	defer func(start time.Time) { metrics.Observe("booking", "create", start, err) }(time.Now())

	b, err = s.parse(in)
	if err != nil {
		return model.Booking{}, err
	}
	if b, err = s.store.Create(ctx, b); err != nil {
		return model.Booking{}, err
	}
	publish(ctx, s.events, queue.NewBookingEvent(queue.BookingCreated, b))
	return b, nil
}

// Get returns one booking.
func (s *BookingService) Get(ctx context.Context, bookingID string) (b model.Booking, err error) {
	defer func(start time.Time) { metrics.Observe("booking", "get", start, err) }(time.Now())

	if err = requireID("booking_id", bookingID); err != nil {
		return model.Booking{}, err
	}
	return s.store.Get(ctx, bookingID)
}

// Update validates in and rewrites the booking, repricing it from the
// banquet's current CostPerDay.
func (s *BookingService) Update(ctx context.Context, in BookingInput) (b model.Booking, err error) {
	defer func(start time.Time) { metrics.Observe("booking", "update", start, err) }(time.Now())

	b, err = s.parse(in)
	if err != nil {
		return model.Booking{}, err
	}
	if b, err = s.store.Update(ctx, b); err != nil {
		return model.Booking{}, err
	}
	publish(ctx, s.events, queue.NewBookingEvent(queue.BookingUpdated, b))
	return b, nil
}

// Delete removes one booking.
func (s *BookingService) Delete(ctx context.Context, bookingID string) (err error) {
	defer func(start time.Time) { metrics.Observe("booking", "delete", start, err) }(time.Now())

	if err = requireID("booking_id", bookingID); err != nil {
		return err
	}
	if err = s.store.Delete(ctx, bookingID); err != nil {
		return err
	}
	publish(ctx, s.events, queue.NewBookingDeletedEvent(bookingID))
	return nil
}

func (s *BookingService) parse(in BookingInput) (model.Booking, error) {
	trim(&in)
	verr := check(s.validate, in)
	b := model.Booking{
		BookingID:  in.BookingID,
		CustomerID: in.CustomerID,
		BanquetID:  in.BanquetID,
		EventID:    in.EventID,
	}
	if in.EventDate != "" {
		if d, err := time.Parse(model.DateLayout, in.EventDate); err == nil {
			b.EventDate = d
		}
	}
	if in.Duration != "" {
		n, err := strconv.Atoi(in.Duration)
		switch {
		case err != nil && !verr.has("duration"):
			verr.add("duration", "must be a whole number")
		case err == nil && n < 1:
			verr.add("duration", "must be at least 1 day")
		case err == nil && n > math.MaxInt32:
			verr.add("duration", "is too large")
		}
		b.Duration = n
	}
	if err := verr.orNil(); err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

func requireID(field, id string) error {
	if id == "" {
		return &ValidationError{Fields: []FieldError{{Field: field, Message: "is required"}}}
	}
	return nil
}

// publish delivers ev on a best-effort basis.  The write has already
// committed, so a broker failure is logged and otherwise ignored.
func publish(ctx context.Context, p Publisher, ev queue.Event) {
	if err := p.Publish(ctx, ev); err != nil {
		logrus.WithContext(ctx).WithError(err).WithFields(logrus.Fields{
			"event_type": ev.Type,
			"event_id":   ev.ID,
			"booking_id": ev.BookingID,
		}).Warn("failed to publish domain event")
	}
}
