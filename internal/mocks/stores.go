// Package mocks holds in-memory implementations of the service stores and
// publisher.  They follow the repository contracts and are used by tests.
package mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/banquet-booking/internal/model"
	"github.com/iliyamo/banquet-booking/internal/queue"
	"github.com/iliyamo/banquet-booking/internal/repository"
)

// Bookings prices bookings the way BookingRepo does, against an
// in-memory banquet price list.
type Bookings struct {
	mu    sync.Mutex
	Costs map[string]decimal.Decimal
	Rows  map[string]model.Booking
}

func NewBookings(costs map[string]string) *Bookings {
	m := &Bookings{Costs: map[string]decimal.Decimal{}, Rows: map[string]model.Booking{}}
	for id, c := range costs {
		m.Costs[id] = decimal.RequireFromString(c)
	}
	return m
}

func (m *Bookings) price(b *model.Booking) error {
	cost, ok := m.Costs[b.BanquetID]
	if !ok {
		return fmt.Errorf("%w: %s", repository.ErrUnknownBanquet, b.BanquetID)
	}
	b.TotalCost = model.TotalFor(cost, b.Duration)
	if b.TotalCost.GreaterThan(model.MaxAmount) {
		return fmt.Errorf("%w: total cost exceeds %s", repository.ErrValidation, model.MaxAmount)
	}
	return nil
}

func (m *Bookings) Create(_ context.Context, b model.Booking) (model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.price(&b); err != nil {
		return model.Booking{}, err
	}
	if _, ok := m.Rows[b.BookingID]; ok {
		return model.Booking{}, repository.ErrDuplicateKey
	}
	m.Rows[b.BookingID] = b
	return b, nil
}

func (m *Bookings) Get(_ context.Context, id string) (model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.Rows[id]
	if !ok {
		return model.Booking{}, repository.ErrNotFound
	}
	return b, nil
}

func (m *Bookings) Update(_ context.Context, b model.Booking) (model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.price(&b); err != nil {
		return model.Booking{}, err
	}
	if _, ok := m.Rows[b.BookingID]; !ok {
		return model.Booking{}, repository.ErrNotFound
	}
	m.Rows[b.BookingID] = b
	return b, nil
}

func (m *Bookings) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Rows, id)
	return nil
}

type Payments struct {
	mu   sync.Mutex
	Rows map[string]model.Payment
}

func NewPayments() *Payments { return &Payments{Rows: map[string]model.Payment{}} }

func (m *Payments) Save(_ context.Context, p model.Payment) (model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Rows[p.PaymentID]; ok {
		return model.Payment{}, repository.ErrDuplicateKey
	}
	m.Rows[p.PaymentID] = p
	return p, nil
}

func (m *Payments) Find(_ context.Context, paymentID, bookingID string) (model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Rows[paymentID]
	if !ok || p.BookingID != bookingID {
		return model.Payment{}, repository.ErrNotFound
	}
	return p, nil
}

type Customers struct {
	mu   sync.Mutex
	Rows []model.Customer
}

func (m *Customers) Create(_ context.Context, c model.Customer) (model.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, have := range m.Rows {
		if have.CustomerID == c.CustomerID {
			return model.Customer{}, repository.ErrDuplicateKey
		}
	}
	m.Rows = append(m.Rows, c)
	return c, nil
}

func (m *Customers) ListByName(_ context.Context, name string) ([]model.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Customer
	for _, c := range m.Rows {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *Customers) ListLegacyPasswords(context.Context) ([]model.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Customer
	for _, c := range m.Rows {
		if len(c.PasswordHash) < 2 || c.PasswordHash[:2] != "$2" {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *Customers) UpdatePasswordHash(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Rows {
		if m.Rows[i].CustomerID == id {
			m.Rows[i].PasswordHash = hash
			return nil
		}
	}
	return repository.ErrNotFound
}

type Publisher struct {
	mu     sync.Mutex
	events []queue.Event
	Err    error
}

func (r *Publisher) Publish(_ context.Context, ev queue.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, ev)
	return nil
}

// Types lists the published event types in order.
func (r *Publisher) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

// ErrBroker simulates an unreachable message broker.
var ErrBroker = errors.New("broker down")

// Catalog serves banquets and event types from memory.
type Catalog struct {
	Banquets   []model.Banquet
	EventTypes []model.EventType
}

func (m *Catalog) Get(_ context.Context, id string) (model.Banquet, error) {
	for _, b := range m.Banquets {
		if b.BanquetID == id {
			return b, nil
		}
	}
	return model.Banquet{}, fmt.Errorf("%w: banquet %s", repository.ErrNotFound, id)
}

func (m *Catalog) Search(_ context.Context, q repository.BanquetSearchQuery) ([]model.Banquet, int64, error) {
	out := []model.Banquet{}
	for _, b := range m.Banquets {
		if q.Location != "" && !strings.Contains(strings.ToLower(b.Location), strings.ToLower(q.Location)) {
			continue
		}
		if q.Name != "" && !strings.Contains(strings.ToLower(b.Name), strings.ToLower(q.Name)) {
			continue
		}
		if b.Capacity < q.MinCapacity {
			continue
		}
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (m *Catalog) List(context.Context) ([]model.EventType, error) {
	return append([]model.EventType{}, m.EventTypes...), nil
}
