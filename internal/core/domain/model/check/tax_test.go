package check_test

import (
	"testing"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaxSnapshot(t *testing.T) {
	groupID := kernel.NewUUID()

	t.Run("add-on tax is rounded half away from zero", func(t *testing.T) {
		s, err := check.NewTaxSnapshot(&groupID, check.TaxModeAddOn, dec("0.0825"), dec("10.00"))

		require.NoError(t, err)
		assert.Equal(t, "0.83", kernel.FormatMoney(s.TaxAmount()))
		assert.Equal(t, "10.00", kernel.FormatMoney(s.TaxableAmount()))
		assert.Equal(t, "0.0825", s.Rate().String())
	})

	t.Run("inclusive items carry no additional tax", func(t *testing.T) {
		s, err := check.NewTaxSnapshot(&groupID, check.TaxModeInclusive, dec("0.20"), dec("12.00"))

		require.NoError(t, err)
		assert.True(t, s.TaxAmount().IsZero())
	})

	t.Run("untaxed items need a zero rate", func(t *testing.T) {
		_, err := check.NewTaxSnapshot(nil, check.TaxModeAddOn, dec("0.05"), dec("1.00"))
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		s, err := check.NewTaxSnapshot(nil, check.TaxModeAddOn, dec("0"), dec("1.00"))
		require.NoError(t, err)
		assert.Nil(t, s.TaxGroupID())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := check.NewTaxSnapshot(&groupID, "vat", dec("0.1"), dec("1"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = check.NewTaxSnapshot(&groupID, check.TaxModeAddOn, dec("2"), dec("1"))
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = check.NewTaxSnapshot(&groupID, check.TaxModeAddOn, dec("0.1"), dec("-1"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestTaxSnapshot_WithTaxableAmountKeepsTreatment(t *testing.T) {
	groupID := kernel.NewUUID()
	original, err := check.NewTaxSnapshot(&groupID, check.TaxModeAddOn, dec("0.0825"), dec("10.00"))
	require.NoError(t, err)

	next, err := original.WithTaxableAmount(dec("30.00"))

	require.NoError(t, err)
	assert.True(t, next.SameTreatment(original))
	assert.Equal(t, "2.48", kernel.FormatMoney(next.TaxAmount()))
	assert.Equal(t, "0.83", kernel.FormatMoney(original.TaxAmount()), "original is a value and stays untouched")
}

func TestTaxSnapshot_ZeroValueIsRejected(t *testing.T) {
	var s check.TaxSnapshot
	require.ErrorIs(t, s.Validate(), check.ErrTaxSnapshotIsNotConstructed)

	_, err := s.WithTaxableAmount(dec("1"))
	require.ErrorIs(t, err, check.ErrTaxSnapshotIsNotConstructed)
}

func TestNewTaxGroup(t *testing.T) {
	g, err := check.NewTaxGroup(kernel.NewUUID(), check.TaxModeAddOn, dec("0.08250049"))
	require.NoError(t, err)
	assert.Equal(t, "0.0825", g.Rate().String())
	require.NoError(t, g.Validate())

	_, err = check.NewTaxGroup(kernel.UUID{}, check.TaxModeAddOn, dec("0.1"))
	require.Error(t, err)
}

func TestTaxableAmount(t *testing.T) {
	cheese, err := check.NewModifier("extra cheese", dec("1.25"))
	require.NoError(t, err)
	noBun, err := check.NewModifier("no bun", dec("-0.50"))
	require.NoError(t, err)

	got, err := check.TaxableAmount(dec("9.00"), []check.Modifier{cheese, noBun}, dec("2"))
	require.NoError(t, err)
	assert.Equal(t, "19.50", kernel.FormatMoney(got))

	_, err = check.TaxableAmount(dec("0.25"), []check.Modifier{noBun}, dec("1"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = check.TaxableAmount(dec("1"), nil, dec("0"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
