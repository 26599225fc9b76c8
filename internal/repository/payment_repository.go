package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/banquet-booking/internal/database"
	"github.com/iliyamo/banquet-booking/internal/model"
)

// PaymentRepo records payments against bookings.  It never touches the
// Booking or Banquet tables and does not reconcile Amount with TotalCost.
type PaymentRepo struct {
	conns database.Provider
}

// NewPaymentRepo returns a PaymentRepo drawing connections from p.
func NewPaymentRepo(p database.Provider) *PaymentRepo { return &PaymentRepo{conns: p} }

// Save inserts p.  A taken PaymentID is ErrDuplicateKey; a BookingID
// rejected by the foreign key is ErrUnknownBooking.
func (r *PaymentRepo) Save(ctx context.Context, p model.Payment) (model.Payment, error) {
	err := withConn(ctx, r.conns, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx,
			`INSERT INTO Payment (PaymentID, BookingID, Amount, PaymentMethod, PaymentDate, PaymentStatus)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			p.PaymentID, p.BookingID, p.Amount, string(p.PaymentMethod), p.PaymentDate, string(p.PaymentStatus))
		return classify(err, "insert payment "+p.PaymentID, ErrUnknownBooking)
	})
	if err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

// Find returns the first payment matching both ids, or ErrNotFound.
func (r *PaymentRepo) Find(ctx context.Context, paymentID, bookingID string) (model.Payment, error) {
	var p model.Payment
	err := withConn(ctx, r.conns, func(conn *sql.Conn) error {
		var method, status string
		err := conn.QueryRowContext(ctx,
			`SELECT PaymentID, BookingID, Amount, PaymentMethod, PaymentDate, PaymentStatus
			 FROM Payment WHERE PaymentID = ? AND BookingID = ? LIMIT 1`,
			paymentID, bookingID).Scan(&p.PaymentID, &p.BookingID, &p.Amount, &method, &p.PaymentDate, &status)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: payment %s for booking %s", ErrNotFound, paymentID, bookingID)
		}
		if err != nil {
			return classify(err, "find payment "+paymentID, nil)
		}
		p.PaymentMethod = model.PaymentMethod(method)
		p.PaymentStatus = model.PaymentStatus(status)
		return nil
	})
	if err != nil {
		return model.Payment{}, err
	}
	return p, nil
}
