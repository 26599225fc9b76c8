package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/banquet-booking/internal/database"
	"github.com/iliyamo/banquet-booking/internal/model"
)

// BanquetRepo is the read-only catalog lookup used when pricing bookings.
type BanquetRepo struct {
	conns database.Provider
}

// NewBanquetRepo returns a BanquetRepo drawing connections from p.
func NewBanquetRepo(p database.Provider) *BanquetRepo { return &BanquetRepo{conns: p} }

// CostPerDay returns the daily rental cost of a banquet, or ErrNotFound.
func (r *BanquetRepo) CostPerDay(ctx context.Context, banquetID string) (decimal.Decimal, error) {
	var cost decimal.Decimal
	err := withConn(ctx, r.conns, func(conn *sql.Conn) error {
		var err error
		cost, err = lookupCostPerDay(ctx, conn, banquetID)
		return err
	})
	return cost, err
}

// Get returns the full catalog entry for a banquet.
func (r *BanquetRepo) Get(ctx context.Context, banquetID string) (model.Banquet, error) {
	var b model.Banquet
	err := withConn(ctx, r.conns, func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx,
			"SELECT BanquetID, Name, Location, Capacity, CostPerDay FROM Banquet WHERE BanquetID = ?",
			banquetID).Scan(&b.BanquetID, &b.Name, &b.Location, &b.Capacity, &b.CostPerDay)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: banquet %s", ErrNotFound, banquetID)
		}
		return classify(err, "get banquet", nil)
	})
	return b, err
}

// lookupCostPerDay reads CostPerDay on q, which may be the transaction of
// the booking write that consumes the value.
func lookupCostPerDay(ctx context.Context, q querier, banquetID string) (decimal.Decimal, error) {
	var cost decimal.Decimal
	err := q.QueryRowContext(ctx,
		"SELECT CostPerDay FROM Banquet WHERE BanquetID = ?", banquetID).Scan(&cost)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Decimal{}, fmt.Errorf("%w: banquet %s", ErrNotFound, banquetID)
	}
	if err != nil {
		return decimal.Decimal{}, classify(err, "lookup cost per day", nil)
	}
	return cost, nil
}
