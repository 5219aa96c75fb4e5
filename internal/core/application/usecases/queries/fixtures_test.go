package queries_test

import (
	"context"
	"testing"
	"time"

	"checkcore/internal/adapters/out/postgres/checkrepo"
	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var openedAt = time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedCheck stores an open check in rvcID holding one item per name, each priced at 10.00.
func seedCheck(t *testing.T, db *gorm.DB, rvcID kernel.UUID, number int, names ...string) *check.Check {
	t.Helper()
	c, err := check.NewCheck(kernel.NewUUID(), rvcID, kernel.NewUUID(), number,
		check.DineIn, kernel.NewUUID(), "2026-03-14", openedAt)
	require.NoError(t, err)

	for i, name := range names {
		groupID := kernel.NewUUID()
		snapshot, err := check.NewTaxSnapshot(&groupID, check.TaxModeAddOn, dec("0.10"), dec("10.00"))
		require.NoError(t, err)
		item, err := check.NewItem(kernel.NewUUID(), nil, name, dec("10.00"), dec("1"), nil, snapshot, nil,
			openedAt.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		require.NoError(t, c.AddItem(item))
	}

	repo := checkrepo.NewGormCheckRepository(db, &mockAggregateTracker{})
	require.NoError(t, repo.Add(context.Background(), c))
	return c
}
