//go:build integration

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/iliyamo/banquet-booking/internal/database"
	"github.com/iliyamo/banquet-booking/internal/model"
)

// integrationDB is shared by every test in this file.  MYSQL_DSN points the
// suite at an existing server instead of a container.
var integrationDB *sql.DB

func TestMain(m *testing.M) {
	ctx := context.Background()
	dsn := os.Getenv("MYSQL_DSN")
	var container *tcmysql.MySQLContainer
	if dsn == "" {
		var err error
		container, err = tcmysql.RunContainer(ctx,
			testcontainers.WithImage("mysql:8.0"),
			tcmysql.WithDatabase("banquet"),
			tcmysql.WithUsername("banquet"),
			tcmysql.WithPassword("banquet"),
		)
		if err != nil {
			fmt.Println("> start mysql container:", err)
			os.Exit(1)
		}
		dsn, err = container.ConnectionString(ctx, "parseTime=true", "clientFoundRows=true", "loc=UTC")
		if err != nil {
			fmt.Println("> mysql connection string:", err)
			os.Exit(1)
		}
	}

	db, err := database.OpenDSN(dsn)
	if err == nil {
		err = database.Migrate(ctx, db)
	}
	if err != nil {
		fmt.Println("> setup database:", err)
		os.Exit(1)
	}
	integrationDB = db

	code := m.Run()
	_ = db.Close()
	if container != nil {
		_ = container.Terminate(ctx)
	}
	os.Exit(code)
}

// seed empties every table and inserts one customer and two banquets.
func seed(t *testing.T) *database.Pool {
	t.Helper()
	ctx := context.Background()
	for _, stmt := range []string{
		"DELETE FROM Payment",
		"DELETE FROM Booking",
		"DELETE FROM Customer",
		"DELETE FROM Banquet",
		"DELETE FROM EventType",
		`INSERT INTO Customer (CustomerID, Name, Contact, Email, Address, Password)
		 VALUES ('C1', 'Asha', '9876543210', 'asha@example.com', 'Pune', 'x')`,
		`INSERT INTO Banquet (BanquetID, Name, Location, Capacity, CostPerDay)
		 VALUES ('B1', 'Grand Hall', 'Mumbai', 300, 5000.00), ('B2', 'Lotus', 'Pune', 120, 7250.50)`,
		`INSERT INTO EventType (EventID, EventName, Description) VALUES ('E1', 'Wedding', NULL)`,
	} {
		_, err := integrationDB.ExecContext(ctx, stmt)
		require.NoError(t, err, stmt)
	}
	return database.NewPool(integrationDB, 5*time.Second)
}

func countBookings(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, integrationDB.QueryRow("SELECT COUNT(*) FROM Booking").Scan(&n))
	return n
}

func TestIntegration_BookingLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepo(seed(t))
	in := model.Booking{BookingID: "BK1", CustomerID: "C1", BanquetID: "B1", EventID: "E1", EventDate: day("2024-12-01"), Duration: 3}

	created, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.True(t, created.TotalCost.Equal(dec("15000")))

	got, err := repo.Get(ctx, "BK1")
	require.NoError(t, err)
	assert.True(t, got.TotalCost.Equal(dec("15000")))
	assert.Equal(t, "2024-12-01", got.EventDate.Format(model.DateLayout))
	got.TotalCost, got.EventDate = decimal.Zero, in.EventDate
	assert.Equal(t, in, got)

	_, err = repo.Create(ctx, in)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	// Same values again: matched but unchanged is still an update.
	_, err = repo.Update(ctx, in)
	require.NoError(t, err)

	in.BanquetID, in.Duration = "B2", 2
	updated, err := repo.Update(ctx, in)
	require.NoError(t, err)
	assert.True(t, updated.TotalCost.Equal(dec("14501")))
	got, err = repo.Get(ctx, "BK1")
	require.NoError(t, err)
	assert.Equal(t, "B2", got.BanquetID)
	assert.Equal(t, 2, got.Duration)
	assert.Equal(t, "C1", got.CustomerID)

	require.NoError(t, repo.Delete(ctx, "BK1"))
	_, err = repo.Get(ctx, "BK1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "BK1"), ErrNotFound)
}

func TestIntegration_BookingRejections(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepo(seed(t))

	_, err := repo.Create(ctx, model.Booking{BookingID: "BK1", CustomerID: "C1", BanquetID: "NOPE", EventID: "E1", EventDate: day("2024-12-01"), Duration: 1})
	assert.ErrorIs(t, err, ErrUnknownBanquet)
	_, err = repo.Create(ctx, model.Booking{BookingID: "BK1", CustomerID: "C404", BanquetID: "B1", EventID: "E1", EventDate: day("2024-12-01"), Duration: 1})
	assert.ErrorIs(t, err, ErrUnknownCustomer)
	_, err = repo.Update(ctx, model.Booking{BookingID: "MISSING", CustomerID: "C1", BanquetID: "B1", EventID: "E1", EventDate: day("2024-12-01"), Duration: 1})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, countBookings(t))
}

func TestIntegration_PriceChangeAppliesOnUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepo(seed(t))
	b := model.Booking{BookingID: "BK1", CustomerID: "C1", BanquetID: "B1", EventID: "E1", EventDate: day("2024-12-01"), Duration: 2}
	_, err := repo.Create(ctx, b)
	require.NoError(t, err)

	_, err = integrationDB.Exec("UPDATE Banquet SET CostPerDay = 6000 WHERE BanquetID = 'B1'")
	require.NoError(t, err)

	got, err := repo.Get(ctx, "BK1")
	require.NoError(t, err)
	assert.True(t, got.TotalCost.Equal(dec("10000")))

	updated, err := repo.Update(ctx, b)
	require.NoError(t, err)
	assert.True(t, updated.TotalCost.Equal(dec("12000")))
}

func TestIntegration_Payments(t *testing.T) {
	ctx := context.Background()
	pool := seed(t)
	_, err := NewBookingRepo(pool).Create(ctx, model.Booking{BookingID: "BK1", CustomerID: "C1", BanquetID: "B1", EventID: "E1", EventDate: day("2024-12-01"), Duration: 1})
	require.NoError(t, err)

	repo := NewPaymentRepo(pool)
	p := model.Payment{PaymentID: "P1", BookingID: "BK1", Amount: dec("5000.00"), PaymentMethod: model.PaymentCreditCard, PaymentDate: day("2024-12-01"), PaymentStatus: model.StatusPending}
	_, err = repo.Save(ctx, p)
	require.NoError(t, err)
	_, err = repo.Save(ctx, p)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	got, err := repo.Find(ctx, "P1", "BK1")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentCreditCard, got.PaymentMethod)
	assert.True(t, got.Amount.Equal(dec("5000")))

	_, err = repo.Find(ctx, "P1", "BK2")
	assert.ErrorIs(t, err, ErrNotFound)

	p.PaymentID, p.BookingID = "P2", "BK404"
	_, err = repo.Save(ctx, p)
	assert.ErrorIs(t, err, ErrUnknownBooking)

	assert.ErrorIs(t, NewBookingRepo(pool).Delete(ctx, "BK1"), ErrConflict)
}

func TestIntegration_Catalog(t *testing.T) {
	ctx := context.Background()
	pool := seed(t)

	items, total, err := NewBanquetRepo(pool).Search(ctx, BanquetSearchQuery{Location: "pun"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "B2", items[0].BanquetID)

	types, err := NewEventTypeRepo(pool).List(ctx)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Empty(t, types[0].Description)
}

func TestIntegration_Customers(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepo(seed(t))

	legacy, err := repo.ListLegacyPasswords(ctx)
	require.NoError(t, err)
	require.Len(t, legacy, 1)

	require.NoError(t, repo.UpdatePasswordHash(ctx, "C1", "$2a$04$abcdefghijklmnopqrstuuJ3x8Xn9H7bQvT6N2m8g9oK7l6yQy1mS"))
	legacy, err = repo.ListLegacyPasswords(ctx)
	require.NoError(t, err)
	assert.Empty(t, legacy)

	_, err = repo.Create(ctx, model.Customer{CustomerID: "C1", Name: "Dup", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
	found, err := repo.ListByName(ctx, "Asha")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
