package services_test

import (
	"context"
	"testing"
	"time"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var ringAt = time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type MockTaxGroupLookup struct{ mock.Mock }

func (m *MockTaxGroupLookup) TaxGroupForMenuItem(ctx context.Context, menuItemID kernel.UUID) (*check.TaxGroup, error) {
	args := m.Called(ctx, menuItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*check.TaxGroup), args.Error(1)
}

func newCheck(t *testing.T) *check.Check {
	t.Helper()
	c, err := check.NewCheck(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 7,
		check.DineIn, kernel.NewUUID(), "2026-03-14", ringAt)
	require.NoError(t, err)
	return c
}

func newTaxGroup(t *testing.T, mode check.TaxMode, rate string) check.TaxGroup {
	t.Helper()
	g, err := check.NewTaxGroup(kernel.NewUUID(), mode, dec(rate))
	require.NoError(t, err)
	return g
}

// ring adds an item priced with group to c and returns it.
func ring(t *testing.T, c *check.Check, group *check.TaxGroup, price, qty string) *check.Item {
	t.Helper()
	snapshot, err := services.NewTaxSnapshotCalculator().Compute(group, dec(price), nil, dec(qty))
	require.NoError(t, err)
	menuItemID := kernel.NewUUID()
	item, err := check.NewItem(kernel.NewUUID(), &menuItemID, "Item", dec(price), dec(qty), nil, snapshot, nil, ringAt)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(item))
	return item
}

func money(d decimal.Decimal) string {
	return kernel.FormatMoney(d)
}
