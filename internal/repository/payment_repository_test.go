package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/banquet-booking/internal/model"
)

var paymentCols = []string{"PaymentID", "BookingID", "Amount", "PaymentMethod", "PaymentDate", "PaymentStatus"}

func samplePayment() model.Payment {
	return model.Payment{
		PaymentID:     "P1",
		BookingID:     "BK1",
		Amount:        dec("15000"),
		PaymentMethod: model.PaymentUPI,
		PaymentDate:   day("2024-12-01"),
		PaymentStatus: model.StatusCompleted,
	}
}

func TestPaymentRepo_SaveThenFind(t *testing.T) {
	pool, mock := newMock(t)
	repo := NewPaymentRepo(pool)

	mock.ExpectExec("INSERT INTO Payment").
		WithArgs("P1", "BK1", decimalArg{dec("15000")}, "UPI", day("2024-12-01"), "Completed").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM Payment WHERE PaymentID = \\? AND BookingID = \\?").
		WithArgs("P1", "BK1").
		WillReturnRows(sqlmock.NewRows(paymentCols).
			AddRow("P1", "BK1", "15000", "UPI", day("2024-12-01"), "Completed"))

	saved, err := repo.Save(context.Background(), samplePayment())
	require.NoError(t, err)

	found, err := repo.Find(context.Background(), "P1", "BK1")
	require.NoError(t, err)
	assert.Equal(t, saved.PaymentID, found.PaymentID)
	assert.Equal(t, saved.BookingID, found.BookingID)
	assert.True(t, saved.Amount.Equal(found.Amount))
	assert.Equal(t, saved.PaymentMethod, found.PaymentMethod)
	assert.Equal(t, saved.PaymentDate, found.PaymentDate)
	assert.Equal(t, saved.PaymentStatus, found.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepo_FindWrongBookingIsNotFound(t *testing.T) {
	pool, mock := newMock(t)
	repo := NewPaymentRepo(pool)

	mock.ExpectQuery("FROM Payment WHERE").
		WithArgs("P1", "BK2").
		WillReturnRows(sqlmock.NewRows(paymentCols))

	_, err := repo.Find(context.Background(), "P1", "BK2")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepo_SaveDuplicate(t *testing.T) {
	pool, mock := newMock(t)
	repo := NewPaymentRepo(pool)

	mock.ExpectExec("INSERT INTO Payment").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'P1'"})

	_, err := repo.Save(context.Background(), samplePayment())
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepo_SaveUnknownBooking(t *testing.T) {
	pool, mock := newMock(t)
	repo := NewPaymentRepo(pool)

	mock.ExpectExec("INSERT INTO Payment").
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})

	_, err := repo.Save(context.Background(), samplePayment())
	assert.ErrorIs(t, err, ErrUnknownBooking)
	assert.NoError(t, mock.ExpectationsWereMet())
}
