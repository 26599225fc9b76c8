package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/banquet-booking/internal/mocks"
	"github.com/iliyamo/banquet-booking/internal/model"
	"github.com/iliyamo/banquet-booking/internal/queue"
	"github.com/iliyamo/banquet-booking/internal/repository"
)

func paymentInput() PaymentInput {
	return PaymentInput{
		PaymentID:     "P1",
		BookingID:     "BK1",
		Amount:        "15000",
		PaymentMethod: "UPI",
		PaymentDate:   "2024-12-01",
		PaymentStatus: "Completed",
	}
}

func TestPaymentService_SaveThenFind(t *testing.T) {
	ctx := context.Background()
	events := &mocks.Publisher{}
	svc := NewPaymentService(mocks.NewPayments(), events)

	saved, err := svc.Save(ctx, paymentInput())
	require.NoError(t, err)
	assert.True(t, saved.Amount.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, model.PaymentUPI, saved.PaymentMethod)
	assert.Equal(t, model.StatusCompleted, saved.PaymentStatus)

	found, err := svc.Find(ctx, "P1", "BK1")
	require.NoError(t, err)
	assert.Equal(t, saved, found)

	_, err = svc.Find(ctx, "P1", "BK2")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.Equal(t, []string{queue.PaymentRecorded}, events.Types())
}

func TestPaymentService_Duplicate(t *testing.T) {
	svc := NewPaymentService(mocks.NewPayments(), nil)
	_, err := svc.Save(context.Background(), paymentInput())
	require.NoError(t, err)
	_, err = svc.Save(context.Background(), paymentInput())
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)
}

func TestPaymentService_AmountNotReconciled(t *testing.T) {
	svc := NewPaymentService(mocks.NewPayments(), nil)
	in := paymentInput()
	in.Amount = "1.50"
	p, err := svc.Save(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, p.Amount.Equal(decimal.RequireFromString("1.5")))
}

func TestPaymentService_LargestStorableAmount(t *testing.T) {
	svc := NewPaymentService(mocks.NewPayments(), nil)
	in := paymentInput()
	in.Amount = "999999999999.99"
	p, err := svc.Save(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, p.Amount.Equal(model.MaxAmount))
}

func TestPaymentService_Validation(t *testing.T) {
	svc := NewPaymentService(mocks.NewPayments(), nil)

	cases := map[string]struct {
		mutate func(*PaymentInput)
		field  string
	}{
		"amount not decimal":  {func(in *PaymentInput) { in.Amount = "15k" }, "amount"},
		"negative amount":     {func(in *PaymentInput) { in.Amount = "-1" }, "amount"},
		"sub-cent amount":     {func(in *PaymentInput) { in.Amount = "1.005" }, "amount"},
		"amount too large":    {func(in *PaymentInput) { in.Amount = "1000000000000" }, "amount"},
		"unknown method":      {func(in *PaymentInput) { in.PaymentMethod = "Bitcoin" }, "payment_method"},
		"unknown status":      {func(in *PaymentInput) { in.PaymentStatus = "Refunded" }, "payment_status"},
		"bad date":            {func(in *PaymentInput) { in.PaymentDate = "2024-13-01" }, "payment_date"},
		"missing payment id":  {func(in *PaymentInput) { in.PaymentID = "" }, "payment_id"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			in := paymentInput()
			tc.mutate(&in)
			_, err := svc.Save(context.Background(), in)
			require.ErrorIs(t, err, repository.ErrValidation)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Fields[0].Field)
		})
	}
}

func TestPaymentService_AcceptsLegacyMethodSpelling(t *testing.T) {
	svc := NewPaymentService(mocks.NewPayments(), nil)
	for i, m := range []string{"CreditCard", "Credit Card"} {
		in := paymentInput()
		in.PaymentID = []string{"P1", "P2"}[i]
		in.PaymentMethod = m
		p, err := svc.Save(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentCreditCard, p.PaymentMethod)
	}
}
