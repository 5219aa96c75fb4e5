package kitchen_test

import (
	"testing"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/kitchen"
	"checkcore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoutedTicket(t *testing.T) *kitchen.Ticket {
	t.Helper()
	target, err := kitchen.NewRoutingTarget(kernel.NewUUID(), "grill", nil)
	require.NoError(t, err)
	ticket, err := kitchen.NewTicket(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), &target, sentAt)
	require.NoError(t, err)
	return ticket
}

func newPreviewTicket(t *testing.T) *kitchen.Ticket {
	t.Helper()
	ticket, err := kitchen.NewPreviewTicket(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), sentAt)
	require.NoError(t, err)
	return ticket
}

func TestNewTicket(t *testing.T) {
	t.Run("routed ticket starts active", func(t *testing.T) {
		ticket := newRoutedTicket(t)

		assert.Equal(t, kitchen.TicketActive, ticket.Status())
		assert.False(t, ticket.IsPreview())
		assert.False(t, ticket.IsFallback())
		assert.NotNil(t, ticket.RoundID())
		assert.Equal(t, "grill", ticket.Target().StationType())
	})

	t.Run("ticket without target is the fallback", func(t *testing.T) {
		ticket, err := kitchen.NewTicket(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, sentAt)

		require.NoError(t, err)
		assert.True(t, ticket.IsFallback())
		assert.Nil(t, ticket.Target())
	})

	t.Run("routed ticket needs a round", func(t *testing.T) {
		_, err := kitchen.NewTicket(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.UUID{}, nil, sentAt)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("preview ticket has no round", func(t *testing.T) {
		ticket := newPreviewTicket(t)

		assert.True(t, ticket.IsPreview())
		assert.False(t, ticket.IsFallback())
		assert.Nil(t, ticket.RoundID())
		assert.False(t, ticket.IsPaid())
	})
}

func TestTicket_Items(t *testing.T) {
	t.Run("adding the same item twice is a no-op", func(t *testing.T) {
		ticket := newRoutedTicket(t)
		itemID := kernel.NewUUID()

		added, err := ticket.AddItem(itemID)
		require.NoError(t, err)
		assert.True(t, added)

		added, err = ticket.AddItem(itemID)
		require.NoError(t, err)
		assert.False(t, added)
		assert.Len(t, ticket.Items(), 1)
		assert.True(t, ticket.Contains(itemID))
	})

	t.Run("only preview tickets drop items", func(t *testing.T) {
		itemID := kernel.NewUUID()

		routed := newRoutedTicket(t)
		_, err := routed.AddItem(itemID)
		require.NoError(t, err)
		_, err = routed.RemoveItem(itemID)
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)

		preview := newPreviewTicket(t)
		_, err = preview.AddItem(itemID)
		require.NoError(t, err)
		removed, err := preview.RemoveItem(itemID)
		require.NoError(t, err)
		assert.True(t, removed)
		assert.Empty(t, preview.Items())
	})

	t.Run("voided ticket accepts no items", func(t *testing.T) {
		ticket := newRoutedTicket(t)
		require.NoError(t, ticket.Void())

		_, err := ticket.AddItem(kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})
}

func TestTicket_Finalize(t *testing.T) {
	preview := newPreviewTicket(t)
	id := preview.ID()
	roundID := kernel.NewUUID()

	require.NoError(t, preview.Finalize(roundID))

	assert.False(t, preview.IsPreview())
	assert.True(t, preview.ID().IsEqual(id))
	assert.True(t, preview.RoundID().IsEqual(roundID))
	require.ErrorIs(t, preview.Finalize(roundID), errs.ErrPreconditionFailed)
}

func TestTicket_BumpAndRecall(t *testing.T) {
	ticket := newRoutedTicket(t)

	require.ErrorIs(t, ticket.Recall(), errs.ErrPreconditionFailed)

	require.NoError(t, ticket.Bump(sentAt))
	assert.Equal(t, kitchen.TicketBumped, ticket.Status())
	assert.NotNil(t, ticket.BumpedAt())
	require.ErrorIs(t, ticket.Bump(sentAt), errs.ErrPreconditionFailed)

	require.NoError(t, ticket.Recall())
	assert.Equal(t, kitchen.TicketActive, ticket.Status())
	assert.Nil(t, ticket.BumpedAt())

	require.NoError(t, ticket.Void())
	require.ErrorIs(t, ticket.Void(), errs.ErrPreconditionFailed)
	require.ErrorIs(t, ticket.Bump(sentAt), errs.ErrPreconditionFailed)
}

func TestRestoreTicket(t *testing.T) {
	t.Run("finalized ticket needs a round", func(t *testing.T) {
		_, err := kitchen.RestoreTicket(kitchen.TicketState{
			ID: kernel.NewUUID(), CheckID: kernel.NewUUID(), RvcID: kernel.NewUUID(),
			Status: kitchen.TicketActive, CreatedAt: sentAt,
		})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should restore a recalled ticket with items", func(t *testing.T) {
		roundID := kernel.NewUUID()
		item, err := kitchen.RestoreTicketItem(kernel.NewUUID(), kernel.NewUUID(), true)
		require.NoError(t, err)

		ticket, err := kitchen.RestoreTicket(kitchen.TicketState{
			ID: kernel.NewUUID(), CheckID: kernel.NewUUID(), RvcID: kernel.NewUUID(), RoundID: &roundID,
			Status: kitchen.TicketRecalled, Paid: true, Items: []*kitchen.TicketItem{item}, CreatedAt: sentAt,
		})

		require.NoError(t, err)
		assert.True(t, ticket.IsPaid())
		assert.True(t, ticket.Items()[0].IsReady())
		require.NoError(t, ticket.Bump(sentAt))
	})
}
