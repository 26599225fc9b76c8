package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/banquet-booking/internal/database"
	"github.com/iliyamo/banquet-booking/internal/model"
)

// BookingRepo is the only writer of Booking.TotalCost.  Every write reads
// the banquet's current CostPerDay and stores the derived total inside the
// same transaction, so a row is never committed with a missing or stale
// cost.  No isolation beyond the store default is requested: concurrent
// writers to one booking resolve as last write wins.
type BookingRepo struct {
	conns database.Provider
}

// NewBookingRepo returns a BookingRepo drawing connections from p.
func NewBookingRepo(p database.Provider) *BookingRepo { return &BookingRepo{conns: p} }

// Create prices and inserts b.  b.TotalCost is ignored and replaced by the
// derived value.  Returns ErrUnknownBanquet when b.BanquetID does not exist
// and ErrDuplicateKey when b.BookingID is taken.
func (r *BookingRepo) Create(ctx context.Context, b model.Booking) (model.Booking, error) {
	if err := checkDuration(b); err != nil {
		return model.Booking{}, err
	}
	err := withTx(ctx, r.conns, "create booking", func(tx *sql.Tx) error {
		if err := price(ctx, tx, &b); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO Booking (BookingID, CustomerID, BanquetID, EventID, EventDate, Duration, TotalCost)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			b.BookingID, b.CustomerID, b.BanquetID, b.EventID, b.EventDate, b.Duration, b.TotalCost)
		return classify(err, "insert booking "+b.BookingID, ErrUnknownCustomer)
	})
	if err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// Get returns the booking with the given id or ErrNotFound.
func (r *BookingRepo) Get(ctx context.Context, bookingID string) (model.Booking, error) {
	var b model.Booking
	err := withConn(ctx, r.conns, func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx,
			`SELECT BookingID, CustomerID, BanquetID, EventID, EventDate, Duration, TotalCost
			 FROM Booking WHERE BookingID = ?`, bookingID).Scan(
			&b.BookingID, &b.CustomerID, &b.BanquetID, &b.EventID, &b.EventDate, &b.Duration, &b.TotalCost)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
		}
		return classify(err, "get booking "+bookingID, nil)
	})
	if err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// Update rewrites every column of an existing booking and recomputes
// TotalCost from the banquet's current CostPerDay.  A booking id that
// matches no row is ErrNotFound; the transaction is rolled back.
func (r *BookingRepo) Update(ctx context.Context, b model.Booking) (model.Booking, error) {
	if err := checkDuration(b); err != nil {
		return model.Booking{}, err
	}
	err := withTx(ctx, r.conns, "update booking", func(tx *sql.Tx) error {
		if err := price(ctx, tx, &b); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE Booking SET CustomerID = ?, BanquetID = ?, EventID = ?, EventDate = ?, Duration = ?, TotalCost = ?
			 WHERE BookingID = ?`,
			b.CustomerID, b.BanquetID, b.EventID, b.EventDate, b.Duration, b.TotalCost, b.BookingID)
		if err != nil {
			return classify(err, "update booking "+b.BookingID, ErrUnknownCustomer)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return classify(err, "update booking "+b.BookingID, nil)
		}
		if n == 0 {
			return fmt.Errorf("%w: booking %s", ErrNotFound, b.BookingID)
		}
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// Delete removes a booking.  Zero affected rows is ErrNotFound; a booking
// that still has payments is ErrConflict.
func (r *BookingRepo) Delete(ctx context.Context, bookingID string) error {
	return withConn(ctx, r.conns, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, "DELETE FROM Booking WHERE BookingID = ?", bookingID)
		if err != nil {
			return classify(err, "delete booking "+bookingID, nil)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return classify(err, "delete booking "+bookingID, nil)
		}
		if n == 0 {
			return fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
		}
		return nil
	})
}

// price fills b.TotalCost from the banquet's CostPerDay read on tx.
func price(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	cost, err := lookupCostPerDay(ctx, tx, b.BanquetID)
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrUnknownBanquet, b.BanquetID)
	}
	if err != nil {
		return err
	}
	total := model.TotalFor(cost, b.Duration)
	if total.GreaterThan(model.MaxAmount) {
		return fmt.Errorf("%w: total cost %s for %d days exceeds %s", ErrValidation, total, b.Duration, model.MaxAmount)
	}
	b.TotalCost = total
	return nil
}

func checkDuration(b model.Booking) error {
	if b.Duration < 1 {
		return fmt.Errorf("%w: duration must be at least 1 day", ErrValidation)
	}
	return nil
}
