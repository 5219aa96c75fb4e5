package check_test

import (
	"testing"
	"time"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheck(t *testing.T) {
	t.Run("should open with zero totals and both business dates", func(t *testing.T) {
		c := newOpenCheck(t)

		assert.Equal(t, check.Open, c.Status())
		assert.True(t, c.Total().IsZero())
		assert.Equal(t, kernel.BusinessDate("2026-03-14"), c.OriginBusinessDate())
		assert.Equal(t, kernel.BusinessDate("2026-03-14"), c.BusinessDate())
		assert.Equal(t, 0, c.Version())
		assert.Nil(t, c.ClosedAt())
		require.NoError(t, c.Validate())
	})

	t.Run("should reject invalid arguments", func(t *testing.T) {
		_, err := check.NewCheck(kernel.NewUUID(), kernel.UUID{}, kernel.NewUUID(), 0,
			"", kernel.NewUUID(), "yesterday", openedAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var c check.Check
		require.ErrorIs(t, c.Validate(), check.ErrCheckIsNotConstructed)
	})
}

func TestCheck_AddAndMutateItems(t *testing.T) {
	t.Run("should add an item once", func(t *testing.T) {
		c := newOpenCheck(t)
		item := newAddOnItem(t, "10.00", "1", "0.0825")

		require.NoError(t, c.AddItem(item))
		require.ErrorIs(t, c.AddItem(item), errs.ErrPreconditionFailed)
		assert.Len(t, c.Items(), 1)
		assert.Len(t, c.UnsentItems(), 1)
	})

	t.Run("quantity change re-derives amounts but keeps the frozen rate", func(t *testing.T) {
		c := newOpenCheck(t)
		item := newAddOnItem(t, "10.00", "1", "0.0825")
		require.NoError(t, c.AddItem(item))
		before := item.TaxSnapshot()

		changed, err := c.ChangeItemQuantity(item.ID(), dec("3"))

		require.NoError(t, err)
		after := changed.TaxSnapshot()
		assert.True(t, after.SameTreatment(*before))
		assert.Equal(t, "30.00", kernel.FormatMoney(after.TaxableAmount()))
		assert.Equal(t, "2.48", kernel.FormatMoney(after.TaxAmount()))
	})

	t.Run("sent items cannot change quantity or modifiers", func(t *testing.T) {
		c := newOpenCheck(t)
		item := newAddOnItem(t, "10.00", "1", "0.0825")
		require.NoError(t, c.AddItem(item))
		_, err := c.MarkItemSent(item.ID(), kernel.NewUUID())
		require.NoError(t, err)

		_, err = c.ChangeItemQuantity(item.ID(), dec("2"))
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)

		_, err = c.ChangeItemModifiers(item.ID(), nil)
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)

		_, err = c.MarkItemSent(item.ID(), kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrPreconditionFailed, "never re-sent")
	})

	t.Run("price override keeps the rate", func(t *testing.T) {
		c := newOpenCheck(t)
		item := newAddOnItem(t, "10.00", "2", "0.0825")
		require.NoError(t, c.AddItem(item))

		changed, err := c.OverrideItemPrice(item.ID(), dec("8.00"))

		require.NoError(t, err)
		assert.Equal(t, "16.00", kernel.FormatMoney(changed.GrossAmount()))
		assert.Equal(t, "0.0825", changed.TaxSnapshot().Rate().String())
	})

	t.Run("void keeps the row and blocks further edits", func(t *testing.T) {
		c := newOpenCheck(t)
		item := newAddOnItem(t, "10.00", "1", "0.0825")
		require.NoError(t, c.AddItem(item))

		_, err := c.VoidItem(item.ID(), "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		voided, err := c.VoidItem(item.ID(), "guest changed mind")
		require.NoError(t, err)
		assert.True(t, voided.IsVoided())
		assert.Len(t, c.Items(), 1)
		assert.Empty(t, c.ActiveItems())

		_, err = c.VoidItem(item.ID(), "again")
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
		_, err = c.OverrideItemPrice(item.ID(), dec("1"))
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("unknown item is not found", func(t *testing.T) {
		c := newOpenCheck(t)
		_, err := c.VoidItem(kernel.NewUUID(), "x")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestCheck_ItemDiscount(t *testing.T) {
	c := newOpenCheck(t)
	item := newAddOnItem(t, "10.00", "1", "0.0825")
	require.NoError(t, c.AddItem(item))

	_, err := c.ApplyItemDiscount(item.ID(), kernel.NewUUID(), dec("10.01"))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	discounted, err := c.ApplyItemDiscount(item.ID(), kernel.NewUUID(), dec("2.00"))
	require.NoError(t, err)
	assert.Equal(t, "2.00", kernel.FormatMoney(discounted.DiscountAmount()))

	_, err = c.ApplyItemDiscount(item.ID(), kernel.NewUUID(), dec("1.00"))
	require.ErrorIs(t, err, errs.ErrPreconditionFailed)
}

func TestCheck_CheckDiscountIsBoundedByRemainingTotal(t *testing.T) {
	c := newOpenCheck(t)
	require.NoError(t, c.ApplyTotals(check.Totals{
		Subtotal: dec("10.00"), DiscountTotal: dec("2.00"), TaxTotal: dec("0.66"), Total: dec("8.66"),
	}))

	tooMuch, err := check.NewDiscount(kernel.NewUUID(), kernel.NewUUID(), dec("8.01"), kernel.NewUUID(), nil, openedAt)
	require.NoError(t, err)
	require.ErrorIs(t, c.ApplyDiscount(tooMuch), errs.ErrValueIsOutOfRange)

	fits, err := check.NewDiscount(kernel.NewUUID(), kernel.NewUUID(), dec("8.00"), kernel.NewUUID(), nil, openedAt)
	require.NoError(t, err)
	require.NoError(t, c.ApplyDiscount(fits))
	assert.Len(t, c.Discounts(), 1)
}

func TestTotals_Validate(t *testing.T) {
	require.NoError(t, check.Totals{Subtotal: dec("10"), DiscountTotal: dec("0"), TaxTotal: dec("0.83"), Total: dec("10.83")}.Validate())
	require.ErrorIs(t,
		check.Totals{Subtotal: dec("10"), DiscountTotal: dec("0"), TaxTotal: dec("0.83"), Total: dec("10.84")}.Validate(),
		errs.ErrValueIsInvalid)
}

func TestCheck_CloseReopenCancel(t *testing.T) {
	closeAt := openedAt.Add(2 * time.Hour)

	t.Run("close overwrites businessDate only", func(t *testing.T) {
		c := newOpenCheck(t)

		require.NoError(t, c.Close("2026-03-15", closeAt))

		assert.Equal(t, check.Closed, c.Status())
		assert.Equal(t, kernel.BusinessDate("2026-03-15"), c.BusinessDate())
		assert.Equal(t, kernel.BusinessDate("2026-03-14"), c.OriginBusinessDate())
		require.NotNil(t, c.ClosedAt())

		require.ErrorIs(t, c.EnsureOpen("add item"), errs.ErrPreconditionFailed)
	})

	t.Run("reopen clears closedAt", func(t *testing.T) {
		c := newOpenCheck(t)
		require.NoError(t, c.Close("2026-03-14", closeAt))

		require.NoError(t, c.Reopen())

		assert.Equal(t, check.Open, c.Status())
		assert.Nil(t, c.ClosedAt())
		require.ErrorIs(t, c.Reopen(), errs.ErrPreconditionFailed)
	})

	t.Run("cancel only when nothing was sent", func(t *testing.T) {
		c := newOpenCheck(t)
		item := newAddOnItem(t, "5", "1", "0.1")
		require.NoError(t, c.AddItem(item))

		require.NoError(t, c.Cancel(closeAt))
		assert.Equal(t, check.Voided, c.Status())

		sent := newOpenCheck(t)
		other := newAddOnItem(t, "5", "1", "0.1")
		require.NoError(t, sent.AddItem(other))
		_, err := sent.MarkItemSent(other.ID(), kernel.NewUUID())
		require.NoError(t, err)
		require.ErrorIs(t, sent.Cancel(closeAt), errs.ErrPreconditionFailed)
	})

	t.Run("payment tolerance", func(t *testing.T) {
		c := newOpenCheck(t)
		require.NoError(t, c.ApplyTotals(check.Totals{
			Subtotal: dec("20.00"), DiscountTotal: decimal.Zero, TaxTotal: decimal.Zero, Total: dec("20.00"),
		}))

		assert.True(t, c.IsPaidBy(dec("19.95")))
		assert.False(t, c.IsPaidBy(dec("19.94")))
	})
}

func TestCheck_Version(t *testing.T) {
	c := newOpenCheck(t)
	require.NoError(t, c.AssertVersion(0))

	c.AdvanceVersion()

	var conflict *errs.VersionConflictError
	require.ErrorAs(t, c.AssertVersion(0), &conflict)
	assert.Equal(t, 1, conflict.Actual)
	require.NoError(t, c.AssertVersion(1))
}

func TestCheck_Transfer(t *testing.T) {
	c := newOpenCheck(t)
	newOwner := kernel.NewUUID()

	require.NoError(t, c.Transfer(newOwner))

	assert.True(t, c.EmployeeID().IsEqual(newOwner))
	require.Error(t, c.Transfer(kernel.UUID{}))
}

func TestCheck_MoveItemsBetweenChecks(t *testing.T) {
	source := newOpenCheck(t)
	target := newOpenCheck(t)
	kept := newAddOnItem(t, "4", "1", "0.1")
	moved := newAddOnItem(t, "6", "1", "0.1")
	require.NoError(t, source.AddItem(kept))
	require.NoError(t, source.AddItem(moved))

	item, err := source.DetachItem(moved.ID())
	require.NoError(t, err)
	require.NoError(t, target.AttachItem(item))

	assert.Len(t, source.Items(), 1)
	assert.Len(t, target.Items(), 1)
	assert.True(t, target.Items()[0].ID().IsEqual(moved.ID()))

	_, err = source.VoidItem(kept.ID(), "spilled")
	require.NoError(t, err)
	_, err = source.DetachItem(kept.ID())
	require.ErrorIs(t, err, errs.ErrPreconditionFailed)
}
