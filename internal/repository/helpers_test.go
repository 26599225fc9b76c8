package repository

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/banquet-booking/internal/database"
)

func newMock(t *testing.T) (*database.Pool, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return database.NewPool(db, 0), mock
}

// decimalArg matches a driver value numerically, so "15000" and "15000.00"
// are the same amount.
type decimalArg struct{ want decimal.Decimal }

func (a decimalArg) Match(v driver.Value) bool {
	var got decimal.Decimal
	if err := got.Scan(v); err != nil {
		return false
	}
	return got.Equal(a.want)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
