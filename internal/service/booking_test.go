package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/banquet-booking/internal/mocks"
	"github.com/iliyamo/banquet-booking/internal/queue"
	"github.com/iliyamo/banquet-booking/internal/repository"
)

func bookingInput(duration string) BookingInput {
	return BookingInput{
		BookingID:  "BK1",
		CustomerID: "C1",
		BanquetID:  "B1",
		EventID:    "E1",
		EventDate:  "2024-12-01",
		Duration:   duration,
	}
}

func TestBookingService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewBookings(map[string]string{"B1": "5000"})
	events := &mocks.Publisher{}
	svc := NewBookingService(store, events)

	created, err := svc.Create(ctx, bookingInput("3"))
	require.NoError(t, err)
	assert.True(t, created.TotalCost.Equal(decimal.NewFromInt(15000)))

	got, err := svc.Get(ctx, "BK1")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := svc.Update(ctx, bookingInput("5"))
	require.NoError(t, err)
	assert.True(t, updated.TotalCost.Equal(decimal.NewFromInt(25000)))

	require.NoError(t, svc.Delete(ctx, "BK1"))
	_, err = svc.Get(ctx, "BK1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.Equal(t, []string{queue.BookingCreated, queue.BookingUpdated, queue.BookingDeleted}, events.Types())
}

func TestBookingService_UpdateUsesCurrentPrice(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewBookings(map[string]string{"B1": "5000"})
	svc := NewBookingService(store, nil)

	_, err := svc.Create(ctx, bookingInput("2"))
	require.NoError(t, err)

	store.Costs["B1"] = decimal.RequireFromString("7000")
	updated, err := svc.Update(ctx, bookingInput("4"))
	require.NoError(t, err)
	assert.True(t, updated.TotalCost.Equal(decimal.NewFromInt(28000)))
}

func TestBookingService_ValidationErrors(t *testing.T) {
	svc := NewBookingService(mocks.NewBookings(map[string]string{"B1": "5000"}), nil)

	cases := map[string]struct {
		mutate func(*BookingInput)
		field  string
	}{
		"non-numeric duration": {func(in *BookingInput) { in.Duration = "three" }, "duration"},
		"fractional duration":  {func(in *BookingInput) { in.Duration = "2.5" }, "duration"},
		"zero duration":        {func(in *BookingInput) { in.Duration = "0" }, "duration"},
		"bad date":             {func(in *BookingInput) { in.EventDate = "01/12/2024" }, "event_date"},
		"missing banquet":      {func(in *BookingInput) { in.BanquetID = "  " }, "banquet_id"},
		"missing booking id":   {func(in *BookingInput) { in.BookingID = "" }, "booking_id"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			in := bookingInput("3")
			tc.mutate(&in)
			_, err := svc.Create(context.Background(), in)
			require.ErrorIs(t, err, repository.ErrValidation)
			assert.NotErrorIs(t, err, repository.ErrStorage)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Fields[0].Field)
		})
	}
}

func TestBookingService_UnknownBanquet(t *testing.T) {
	store := mocks.NewBookings(map[string]string{"B1": "5000"})
	svc := NewBookingService(store, nil)

	in := bookingInput("3")
	in.BanquetID = "B404"
	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, repository.ErrUnknownBanquet)
	assert.Empty(t, store.Rows)
}

func TestBookingService_TotalBeyondStorableIsValidation(t *testing.T) {
	store := mocks.NewBookings(map[string]string{"B1": "5000"})
	svc := NewBookingService(store, nil)

	_, err := svc.Create(context.Background(), bookingInput("2000000000"))
	assert.ErrorIs(t, err, repository.ErrValidation)
	assert.NotErrorIs(t, err, repository.ErrStorage)
	assert.Empty(t, store.Rows)
}

func TestBookingService_DeleteMissingIsNotFound(t *testing.T) {
	store := mocks.NewBookings(map[string]string{"B1": "5000"})
	svc := NewBookingService(store, nil)

	_, err := svc.Create(context.Background(), bookingInput("1"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), "BK9"), repository.ErrNotFound)
	assert.Len(t, store.Rows, 1)
}

func TestBookingService_PublishFailureDoesNotFailWrite(t *testing.T) {
	store := mocks.NewBookings(map[string]string{"B1": "5000"})
	svc := NewBookingService(store, &mocks.Publisher{Err: mocks.ErrBroker})

	b, err := svc.Create(context.Background(), bookingInput("3"))
	require.NoError(t, err)
	assert.Equal(t, "BK1", b.BookingID)
}

func TestBookingService_TrimsInput(t *testing.T) {
	store := mocks.NewBookings(map[string]string{"B1": "5000"})
	svc := NewBookingService(store, nil)

	in := bookingInput(" 3 ")
	in.BookingID = " BK1 "
	b, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "BK1", b.BookingID)
	assert.Equal(t, 3, b.Duration)
}
