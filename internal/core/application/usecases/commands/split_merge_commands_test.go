package commands_test

import (
	"testing"

	"checkcore/internal/core/application/usecases/commands"
	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/kitchen"
	"checkcore/internal/core/domain/model/payment"
	"checkcore/internal/core/domain/services"
	"checkcore/internal/core/ports"
	"checkcore/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// sentCheck opens a check with the given prices, all on one taxed menu item, and sends it.
func sentCheck(h *harness, prices ...string) (commands.CheckResult, []kernel.UUID) {
	h.t.Helper()
	dish := kernel.NewUUID()
	h.taxGroup(dish, check.TaxModeAddOn, "0.0825")
	h.routeTo(dish, kernel.NewUUID())
	opened := h.openCheck()
	ids := make([]kernel.UUID, 0, len(prices))
	for _, price := range prices {
		ids = append(ids, h.addItem(opened.CheckID, dish, price, "1").ItemID)
	}
	h.send(opened.CheckID)
	return opened, ids
}

func TestSplitCheckCommandHandler_Handle_MoveToNewCheck(t *testing.T) {
	h := newHarness(t)
	h.orderMode(standardMode)
	opened, ids := sentCheck(h, "12.00", "8.00")
	before := h.check(opened.CheckID).Totals()

	cmd, err := commands.NewSplitCheckCommand(opened.CheckID, nil, h.serverID, nil,
		services.SplitPlan{Move: []kernel.UUID{ids[1]}})
	require.NoError(t, err)
	result, err := commands.NewSplitCheckCommandHandler(h.store, h.deps).Handle(t.Context(), cmd)
	require.NoError(t, err)

	assert.Equal(t, "12.00", money(result.Source.Totals.Subtotal))
	assert.Equal(t, "8.00", money(result.Target.Totals.Subtotal))
	assert.Equal(t, 1002, result.Target.CheckNumber)
	assert.Equal(t, money(before.Subtotal), money(result.Source.Totals.Subtotal.Add(result.Target.Totals.Subtotal)))

	target := h.check(result.Target.CheckID)
	require.Len(t, target.Items(), 1)
	assert.True(t, target.Items()[0].ID().IsEqual(ids[1]))
	assert.True(t, target.Items()[0].IsSent())
}

func TestSplitCheckCommandHandler_Handle_ShareConservesAmounts(t *testing.T) {
	h := newHarness(t)
	h.orderMode(standardMode)
	opened, ids := sentCheck(h, "10.00")
	other := h.openCheck()

	cmd, err := commands.NewSplitCheckCommand(opened.CheckID, nil, h.serverID, &other.CheckID,
		services.SplitPlan{Share: []services.ShareRequest{{ItemID: ids[0], Ratio: decimal.NewFromInt(1).Div(decimal.NewFromInt(3))}}})
	require.NoError(t, err)
	result, err := commands.NewSplitCheckCommandHandler(h.store, h.deps).Handle(t.Context(), cmd)
	require.NoError(t, err)

	source, target := h.check(opened.CheckID), h.check(other.CheckID)
	require.Len(t, source.Items(), 1)
	require.Len(t, target.Items(), 1)
	kept, shared := source.Items()[0], target.Items()[0]

	assert.True(t, kept.Quantity().Add(shared.Quantity()).Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "10.00", money(kept.TaxSnapshot().TaxableAmount().Add(shared.TaxSnapshot().TaxableAmount())))
	assert.Equal(t, "0.83", money(kept.TaxSnapshot().TaxAmount().Add(shared.TaxSnapshot().TaxAmount())))
	assert.True(t, kept.TaxSnapshot().SameTreatment(*shared.TaxSnapshot()))
	assert.Equal(t, "10.00", money(result.Source.Totals.Subtotal.Add(result.Target.Totals.Subtotal)))
}

func TestSplitCheckCommandHandler_Handle_UnsentItemsBlockSplit(t *testing.T) {
	h := newHarness(t)
	h.orderMode(standardMode)
	opened, ids := sentCheck(h, "10.00")
	dessert := kernel.NewUUID()
	h.taxGroup(dessert, check.TaxModeAddOn, "0.0825")
	h.addItem(opened.CheckID, dessert, "6.00", "1")
	checksBefore := len(h.store.checks)

	cmd, err := commands.NewSplitCheckCommand(opened.CheckID, nil, h.serverID, nil,
		services.SplitPlan{Move: []kernel.UUID{ids[0]}})
	require.NoError(t, err)
	_, err = commands.NewSplitCheckCommandHandler(h.store, h.deps).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	assert.Len(t, h.store.checks, checksBefore)
}

func TestMergeChecksCommandHandler_Handle(t *testing.T) {
	h := newHarness(t)
	h.orderMode(standardMode)
	target, _ := sentCheck(h, "10.00")
	source, _ := sentCheck(h, "5.00", "5.00")

	cmd, err := commands.NewMergeChecksCommand(target.CheckID, nil, h.serverID, []kernel.UUID{source.CheckID})
	require.NoError(t, err)
	result, err := commands.NewMergeChecksCommandHandler(h.store, h.deps).Handle(t.Context(), cmd)
	require.NoError(t, err)

	assert.Equal(t, "20.00", money(result.Totals.Subtotal))
	assert.Len(t, h.check(target.CheckID).ActiveItems(), 3)
	merged := h.check(source.CheckID)
	assert.Equal(t, check.Closed, merged.Status())
	assert.Empty(t, merged.ActiveItems())
	assert.Equal(t, "0.00", money(merged.Total()))
}

func TestMergeChecksCommandHandler_Handle_PaidSourceIsRejected(t *testing.T) {
	h := newHarness(t)
	h.orderMode(standardMode)
	target, _ := sentCheck(h, "10.00")
	source, _ := sentCheck(h, "50.00")
	pay, err := commands.NewApplyPaymentCommand(source.CheckID, nil, h.serverID, payment.Card, dec("20.00"))
	require.NoError(t, err)
	_, err = commands.NewApplyPaymentCommandHandler(h.store, h.deps).Handle(t.Context(), pay)
	require.NoError(t, err)

	cmd, err := commands.NewMergeChecksCommand(target.CheckID, nil, h.serverID, []kernel.UUID{source.CheckID})
	require.NoError(t, err)
	_, err = commands.NewMergeChecksCommandHandler(h.store, h.deps).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	assert.Len(t, h.check(source.CheckID).ActiveItems(), 1)
}

func TestMergeChecksCommandHandler_Handle_FoldsPreviewTickets(t *testing.T) {
	h := newHarness(t)
	h.orderMode(kitchen.OrderModeSettings{DynamicEnabled: true, SendMode: kitchen.FireOnFly})
	fries := kernel.NewUUID()
	h.taxGroup(fries, check.TaxModeAddOn, "0.0825")
	target, source := h.openCheck(), h.openCheck()
	onTarget := h.addItem(target.CheckID, fries, "4.00", "1")
	onSource := h.addItem(source.CheckID, fries, "5.00", "1")
	eventsBefore := len(h.rec.events)

	cmd, err := commands.NewMergeChecksCommand(target.CheckID, nil, h.serverID, []kernel.UUID{source.CheckID})
	require.NoError(t, err)
	_, err = commands.NewMergeChecksCommandHandler(h.store, h.deps).Handle(t.Context(), cmd)
	require.NoError(t, err)

	sourceTickets := h.ticketsOf(source.CheckID)
	require.Len(t, sourceTickets, 1)
	assert.Equal(t, kitchen.TicketVoided, sourceTickets[0].Status())
	targetTickets := h.ticketsOf(target.CheckID)
	require.Len(t, targetTickets, 1)
	assert.True(t, targetTickets[0].IsPreview())
	assert.True(t, targetTickets[0].Contains(onTarget.ItemID))
	assert.True(t, targetTickets[0].Contains(onSource.ItemID))
	kdsUpdates := 0
	for _, event := range h.rec.events[eventsBefore:] {
		if event.Type == ports.EventKdsUpdate && event.Action == "merge_checks" {
			kdsUpdates++
		}
	}
	assert.Equal(t, 1, kdsUpdates)

	h.send(target.CheckID)

	for _, itemID := range []kernel.UUID{onTarget.ItemID, onSource.ItemID} {
		live := make([]*kitchen.Ticket, 0)
		for _, ticket := range h.store.tickets {
			if ticket.Status() != kitchen.TicketVoided && ticket.Contains(itemID) {
				live = append(live, ticket)
			}
		}
		require.Len(t, live, 1, "item %s", itemID)
		assert.False(t, live[0].IsPreview())
		assert.True(t, live[0].CheckID().IsEqual(target.CheckID))
	}
}

func TestSplitCheckCommandHandler_Handle_ShareUnderDynamicOrderMode(t *testing.T) {
	h := newHarness(t)
	h.orderMode(kitchen.OrderModeSettings{DynamicEnabled: true, SendMode: kitchen.FireOnFly})
	wine := kernel.NewUUID()
	h.taxGroup(wine, check.TaxModeAddOn, "0.0825")
	opened := h.openCheck()
	added := h.addItem(opened.CheckID, wine, "40.00", "1")
	h.send(opened.CheckID)

	cmd, err := commands.NewSplitCheckCommand(opened.CheckID, nil, h.serverID, nil,
		services.SplitPlan{Share: []services.ShareRequest{{ItemID: added.ItemID, Ratio: dec("0.5")}}})
	require.NoError(t, err)
	result, err := commands.NewSplitCheckCommandHandler(h.store, h.deps).Handle(t.Context(), cmd)
	require.NoError(t, err)

	assert.Equal(t, "20.00", money(result.Source.Totals.Subtotal))
	assert.Equal(t, "20.00", money(result.Target.Totals.Subtotal))
	assert.Equal(t, "3.30", money(result.Source.Totals.TaxTotal.Add(result.Target.Totals.TaxTotal)))
	assert.Empty(t, h.ticketsOf(result.Target.CheckID), "a split never creates kitchen tickets")
	tickets := h.ticketsOf(opened.CheckID)
	require.Len(t, tickets, 1)
	assert.False(t, tickets[0].IsPreview())
}

func TestVoidItemCommandHandler_Handle_AfterCheckDiscountTotalStaysAtZero(t *testing.T) {
	h := newHarness(t)
	h.orderMode(standardMode)
	burger := kernel.NewUUID()
	h.taxGroup(burger, check.TaxModeAddOn, "0.0825")
	discountID := kernel.NewUUID()
	h.discount.On("Discount", mock.Anything, discountID).
		Return(ports.DiscountDefinition{ID: discountID, Name: "Comp"}, nil)
	opened := h.openCheck()
	added := h.addItem(opened.CheckID, burger, "10.00", "1")

	apply, err := commands.NewApplyCheckDiscountCommand(opened.CheckID, nil, h.serverID, discountID, dec("10.00"), "")
	require.NoError(t, err)
	_, err = commands.NewApplyCheckDiscountCommandHandler(h.store, h.deps).Handle(t.Context(), apply)
	require.NoError(t, err)

	void, err := commands.NewVoidItemCommand(opened.CheckID, nil, h.serverID, added.ItemID, "guest left", "")
	require.NoError(t, err)
	result, err := commands.NewVoidItemCommandHandler(h.store, h.deps).Handle(t.Context(), void)
	require.NoError(t, err)

	assert.Equal(t, "0.00", money(result.Totals.Subtotal))
	assert.Equal(t, "0.00", money(result.Totals.DiscountTotal))
	assert.Equal(t, "0.00", money(result.Totals.Total))
	assert.Len(t, h.check(opened.CheckID).Discounts(), 1, "the discount row is kept")
}

func TestNewMergeChecksCommand_Validation(t *testing.T) {
	target, employee, source := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	_, err := commands.NewMergeChecksCommand(target, nil, employee, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewMergeChecksCommand(target, nil, employee, []kernel.UUID{target})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewMergeChecksCommand(target, nil, employee, []kernel.UUID{source, source})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
