package services

import (
	"checkcore/internal/core/domain/model/check"

	"github.com/shopspring/decimal"
)

// TaxSnapshotCalculator computes the frozen tax facts of a check item.
type TaxSnapshotCalculator struct{}

func NewTaxSnapshotCalculator() TaxSnapshotCalculator {
	return TaxSnapshotCalculator{}
}

// Compute snapshots the current tax group configuration for a new item.
// Items without a tax group get a zero-rate add-on snapshot.
//
//	snapshot, err := calc.Compute(&group, decimal.RequireFromString("10.00"), nil, decimal.NewFromInt(1))
//	// 8.25% add-on: TaxableAmount 10.00, TaxAmount 0.83
func (TaxSnapshotCalculator) Compute(
	group *check.TaxGroup,
	unitPrice decimal.Decimal,
	modifiers []check.Modifier,
	quantity decimal.Decimal,
) (check.TaxSnapshot, error) {
	taxable, err := check.TaxableAmount(unitPrice, modifiers, quantity)
	if err != nil {
		return check.TaxSnapshot{}, err
	}
	if group == nil {
		return check.NewTaxSnapshot(nil, check.TaxModeAddOn, decimal.Zero, taxable)
	}
	if err = group.Validate(); err != nil {
		return check.TaxSnapshot{}, err
	}
	groupID := group.ID()
	return check.NewTaxSnapshot(&groupID, group.Mode(), group.Rate(), taxable)
}

// Recompute re-derives amounts after the item's own price, modifiers or
// quantity changed. Group, mode and rate are kept from the original snapshot.
func (TaxSnapshotCalculator) Recompute(
	snapshot check.TaxSnapshot,
	unitPrice decimal.Decimal,
	modifiers []check.Modifier,
	quantity decimal.Decimal,
) (check.TaxSnapshot, error) {
	taxable, err := check.TaxableAmount(unitPrice, modifiers, quantity)
	if err != nil {
		return check.TaxSnapshot{}, err
	}
	return snapshot.WithTaxableAmount(taxable)
}

// LegacyTax is the unrounded add-on tax on base under the live configuration.
// It exists only for items rung before snapshots were recorded.
func (TaxSnapshotCalculator) LegacyTax(group *check.TaxGroup, base decimal.Decimal) decimal.Decimal {
	if group == nil || group.Mode() != check.TaxModeAddOn || !base.IsPositive() {
		return decimal.Zero
	}
	return base.Mul(group.Rate())
}
