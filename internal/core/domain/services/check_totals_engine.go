package services

import (
	"context"
	"errors"
	"fmt"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// TaxGroupLookup returns the current tax group of a menu item, or nil when it has none.
type TaxGroupLookup interface {
	TaxGroupForMenuItem(ctx context.Context, menuItemID kernel.UUID) (*check.TaxGroup, error)
}

// CheckTotalsEngine recomputes subtotal, discount total, tax total and total
// from the current items and discounts of a check.
//
// Add-on tax is reduced proportionally when check-level discounts exist:
// tax x (1 - checkDiscounts / grossSubtotal). This is an approximation of
// per-item relief that downstream reports depend on; it is kept deliberately.
//
// Check-level discounts never count for more than the amount left after item
// discounts, so a void or price override after a discount cannot push the
// total below zero.
type CheckTotalsEngine struct {
	lookup     TaxGroupLookup
	calculator TaxSnapshotCalculator
}

// NewCheckTotalsEngine needs a lookup only for legacy items without a tax snapshot.
func NewCheckTotalsEngine(lookup TaxGroupLookup) CheckTotalsEngine {
	return CheckTotalsEngine{
		lookup:     lookup,
		calculator: NewTaxSnapshotCalculator(),
	}
}

// Compute returns fresh totals without touching the check.
func (e CheckTotalsEngine) Compute(ctx context.Context, c *check.Check) (check.Totals, error) {
	if err := c.Validate(); err != nil {
		return check.Totals{}, err
	}

	var (
		gross        = decimal.Zero
		addOnTax     = decimal.Zero
		itemDiscount = decimal.Zero
	)

	for _, item := range c.ActiveItems() {
		discount := item.DiscountAmount()
		itemDiscount = itemDiscount.Add(discount)

		if snapshot := item.TaxSnapshot(); snapshot != nil {
			gross = gross.Add(snapshot.TaxableAmount())
			if discount.IsPositive() {
				addOnTax = addOnTax.Add(snapshot.TaxOn(snapshot.TaxableAmount().Sub(discount)))
			} else {
				addOnTax = addOnTax.Add(snapshot.TaxAmount())
			}
			continue
		}

		base := item.GrossAmount()
		gross = gross.Add(base)
		tax, err := e.legacyTax(ctx, item, base.Sub(discount))
		if err != nil {
			return check.Totals{}, err
		}
		addOnTax = addOnTax.Add(tax)
	}

	checkDiscount := decimal.Zero
	for _, d := range c.Discounts() {
		checkDiscount = checkDiscount.Add(d.Amount())
	}

	remaining := decimal.Max(gross.Sub(itemDiscount), decimal.Zero)
	checkDiscount = decimal.Min(checkDiscount, remaining)

	if checkDiscount.IsPositive() && gross.IsPositive() {
		factor := decimal.NewFromInt(1).Sub(checkDiscount.Div(gross))
		if factor.IsNegative() {
			factor = decimal.Zero
		}
		addOnTax = addOnTax.Mul(factor)
	}

	subtotal := kernel.RoundMoney(gross)
	taxTotal := kernel.RoundMoney(addOnTax)
	discountTotal := kernel.RoundMoney(itemDiscount.Add(checkDiscount))

	return check.Totals{
		Subtotal:      subtotal,
		DiscountTotal: discountTotal,
		TaxTotal:      taxTotal,
		Total:         subtotal.Sub(discountTotal).Add(taxTotal),
	}, nil
}

// Recompute computes totals and stores them on the check. Calling it twice
// without an intervening mutation yields identical fields.
func (e CheckTotalsEngine) Recompute(ctx context.Context, c *check.Check) (check.Totals, error) {
	totals, err := e.Compute(ctx, c)
	if err != nil {
		return check.Totals{}, err
	}
	if err = c.ApplyTotals(totals); err != nil {
		return check.Totals{}, err
	}
	return totals, nil
}

func (e CheckTotalsEngine) legacyTax(ctx context.Context, item *check.Item, base decimal.Decimal) (decimal.Decimal, error) {
	menuItemID := item.MenuItemID()
	if menuItemID == nil || e.lookup == nil {
		return decimal.Zero, nil
	}
	group, err := e.lookup.TaxGroupForMenuItem(ctx, *menuItemID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("legacy tax lookup for item %s: %w", item.ID(), err)
	}
	return e.calculator.LegacyTax(group, base), nil
}
