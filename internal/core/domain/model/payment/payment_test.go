package payment_test

import (
	"testing"
	"time"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/payment"
	"checkcore/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paidAt = time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newPayment(tender payment.TenderType, tendered, balance string) (*payment.Payment, error) {
	return payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), tender, dec(tendered), dec(balance),
		kernel.NewUUID(), "2026-03-14", paidAt)
}

func TestNewPayment(t *testing.T) {
	t.Run("cash over-tender produces change", func(t *testing.T) {
		p, err := newPayment(payment.Cash, "20.03", "20.00")

		require.NoError(t, err)
		assert.Equal(t, "20.00", p.PaidAmount().StringFixed(2))
		assert.Equal(t, "0.03", p.ChangeDue().StringFixed(2))
		assert.Equal(t, "20.03", p.TenderedAmount().StringFixed(2))
		assert.True(t, p.IsCompleted())
	})

	t.Run("partial cash leaves no change", func(t *testing.T) {
		p, err := newPayment(payment.Cash, "5.00", "20.00")

		require.NoError(t, err)
		assert.Equal(t, "5.00", p.PaidAmount().StringFixed(2))
		assert.True(t, p.ChangeDue().IsZero())
	})

	t.Run("card may not exceed the balance", func(t *testing.T) {
		_, err := newPayment(payment.Card, "20.01", "20.00")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero tender settles a zero balance", func(t *testing.T) {
		for _, tender := range []payment.TenderType{payment.Cash, payment.Card, payment.Other} {
			p, err := newPayment(tender, "0", "0.00")

			require.NoError(t, err, tender)
			assert.True(t, p.PaidAmount().IsZero())
			assert.True(t, p.ChangeDue().IsZero())
		}
	})

	t.Run("zero tender is rejected while a balance remains", func(t *testing.T) {
		_, err := newPayment(payment.Card, "0", "4.00")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject bad input", func(t *testing.T) {
		_, err := newPayment("cheque", "0", "20.00")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.ErrorContains(t, err, "tenderedAmount")
	})
}

func TestPayment_VoidAndCompletedTotal(t *testing.T) {
	first, err := newPayment(payment.Card, "12.00", "20.00")
	require.NoError(t, err)
	second, err := newPayment(payment.Cash, "10.00", "8.00")
	require.NoError(t, err)

	assert.Equal(t, "20.00", payment.CompletedTotal([]*payment.Payment{first, second}).StringFixed(2))

	require.NoError(t, first.Void())
	require.ErrorIs(t, first.Void(), errs.ErrPreconditionFailed)
	assert.Equal(t, "8.00", payment.CompletedTotal([]*payment.Payment{first, second}).StringFixed(2))
}
