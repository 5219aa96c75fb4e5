package services_test

import (
	"testing"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/services"
	"checkcore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxSnapshotCalculator_Compute(t *testing.T) {
	calc := services.NewTaxSnapshotCalculator()

	t.Run("add-on tax on a single item", func(t *testing.T) {
		group := newTaxGroup(t, check.TaxModeAddOn, "0.0825")

		s, err := calc.Compute(&group, dec("10.00"), nil, dec("1"))

		require.NoError(t, err)
		assert.Equal(t, "10.00", money(s.TaxableAmount()))
		assert.Equal(t, "0.83", money(s.TaxAmount()))
		assert.Equal(t, "0.082500", s.Rate().StringFixed(6))
		assert.True(t, s.TaxGroupID().IsEqual(group.ID()))
	})

	t.Run("modifiers are part of the taxable amount", func(t *testing.T) {
		group := newTaxGroup(t, check.TaxModeAddOn, "0.10")
		cheese, err := check.NewModifier("extra cheese", dec("1.50"))
		require.NoError(t, err)
		onion, err := check.NewModifier("no onion", dec("-0.25"))
		require.NoError(t, err)

		s, err := calc.Compute(&group, dec("8.00"), []check.Modifier{cheese, onion}, dec("2"))

		require.NoError(t, err)
		assert.Equal(t, "18.50", money(s.TaxableAmount()))
		assert.Equal(t, "1.85", money(s.TaxAmount()))
	})

	t.Run("inclusive items add no tax", func(t *testing.T) {
		group := newTaxGroup(t, check.TaxModeInclusive, "0.20")

		s, err := calc.Compute(&group, dec("12.00"), nil, dec("1"))

		require.NoError(t, err)
		assert.Equal(t, check.TaxModeInclusive, s.Mode())
		assert.True(t, s.TaxAmount().IsZero())
	})

	t.Run("items without a group get a zero-rate add-on snapshot", func(t *testing.T) {
		s, err := calc.Compute(nil, dec("4.00"), nil, dec("1"))

		require.NoError(t, err)
		assert.Nil(t, s.TaxGroupID())
		assert.Equal(t, check.TaxModeAddOn, s.Mode())
		assert.True(t, s.Rate().IsZero())
	})

	t.Run("should reject a non-positive quantity", func(t *testing.T) {
		_, err := calc.Compute(nil, dec("4.00"), nil, dec("0"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestTaxSnapshotCalculator_RecomputeKeepsTreatment(t *testing.T) {
	calc := services.NewTaxSnapshotCalculator()
	group := newTaxGroup(t, check.TaxModeAddOn, "0.0825")
	original, err := calc.Compute(&group, dec("10.00"), nil, dec("1"))
	require.NoError(t, err)

	recomputed, err := calc.Recompute(original, dec("10.00"), nil, dec("2"))

	require.NoError(t, err)
	assert.True(t, recomputed.SameTreatment(original))
	assert.Equal(t, "20.00", money(recomputed.TaxableAmount()))
	assert.Equal(t, "1.65", money(recomputed.TaxAmount()))
}

func TestTaxSnapshotCalculator_LegacyTax(t *testing.T) {
	calc := services.NewTaxSnapshotCalculator()
	addOn := newTaxGroup(t, check.TaxModeAddOn, "0.05")
	inclusive := newTaxGroup(t, check.TaxModeInclusive, "0.05")

	assert.Equal(t, "0.50", money(calc.LegacyTax(&addOn, dec("10.00"))))
	assert.True(t, calc.LegacyTax(&inclusive, dec("10.00")).IsZero())
	assert.True(t, calc.LegacyTax(nil, dec("10.00")).IsZero())
	assert.True(t, calc.LegacyTax(&addOn, dec("-1")).IsZero())
}
