package queries_test

import (
	"context"
	"testing"
	"time"

	"checkcore/internal/adapters/out/postgres/kitchenrepo"
	"checkcore/internal/adapters/out/postgres/testdb"
	"checkcore/internal/core/application/usecases/queries"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/kitchen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStationTicketsQueryHandler(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	handler := queries.NewGetStationTicketsQueryHandler(db)
	tickets := kitchenrepo.NewGormTicketRepository(db, &mockAggregateTracker{})

	rvcID := kernel.NewUUID()
	grillID := kernel.NewUUID()
	c := seedCheck(t, db, rvcID, 11, "Steak", "Ribs")
	roundID := kernel.NewUUID()

	grill, err := kitchen.NewRoutingTarget(grillID, "grill", nil)
	require.NoError(t, err)

	first, err := kitchen.NewTicket(kernel.NewUUID(), c.ID(), rvcID, roundID, &grill, openedAt)
	require.NoError(t, err)
	_, err = first.AddItem(c.Items()[1].ID())
	require.NoError(t, err)
	_, err = first.AddItem(c.Items()[0].ID())
	require.NoError(t, err)
	require.NoError(t, tickets.Add(ctx, first))

	empty, err := kitchen.NewTicket(kernel.NewUUID(), c.ID(), rvcID, roundID, &grill, openedAt.Add(time.Minute))
	require.NoError(t, err)
	require.NoError(t, tickets.Add(ctx, empty))

	voided, err := kitchen.NewTicket(kernel.NewUUID(), c.ID(), rvcID, roundID, &grill, openedAt.Add(2*time.Minute))
	require.NoError(t, err)
	require.NoError(t, voided.Void())
	require.NoError(t, tickets.Add(ctx, voided))

	fallback, err := kitchen.NewTicket(kernel.NewUUID(), c.ID(), rvcID, roundID, nil, openedAt)
	require.NoError(t, err)
	require.NoError(t, tickets.Add(ctx, fallback))

	query, err := queries.NewGetStationTicketsQuery(grillID)
	require.NoError(t, err)

	views, err := handler.Handle(ctx, query)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.True(t, first.ID().IsEqual(views[0].ID))
	assert.Equal(t, 11, views[0].CheckNumber)
	assert.Equal(t, "grill", views[0].StationType)
	assert.Equal(t, "active", views[0].Status)
	require.Len(t, views[0].Items, 2)
	assert.Equal(t, "Ribs", views[0].Items[0].Name)
	assert.Equal(t, "Steak", views[0].Items[1].Name)

	assert.True(t, empty.ID().IsEqual(views[1].ID))
	assert.Empty(t, views[1].Items)
}

func TestNewGetStationTicketsQuery_RequiresDevice(t *testing.T) {
	_, err := queries.NewGetStationTicketsQuery(kernel.UUID{})
	require.Error(t, err)
}
