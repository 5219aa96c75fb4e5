package check_test

import (
	"testing"
	"time"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var openedAt = time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newOpenCheck(t *testing.T) *check.Check {
	t.Helper()
	c, err := check.NewCheck(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 101,
		check.DineIn, kernel.NewUUID(), "2026-03-14", openedAt)
	require.NoError(t, err)
	return c
}

func newAddOnItem(t *testing.T, price, qty, rate string) *check.Item {
	t.Helper()
	groupID := kernel.NewUUID()
	taxable, err := check.TaxableAmount(dec(price), nil, dec(qty))
	require.NoError(t, err)
	snapshot, err := check.NewTaxSnapshot(&groupID, check.TaxModeAddOn, dec(rate), taxable)
	require.NoError(t, err)
	menuItemID := kernel.NewUUID()
	item, err := check.NewItem(kernel.NewUUID(), &menuItemID, "Burger", dec(price), dec(qty), nil, snapshot, nil, openedAt)
	require.NoError(t, err)
	return item
}
