package check

import (
	"errors"
	"fmt"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrTaxGroupIsNotConstructed    = errors.New("TaxGroup must be created via NewTaxGroup constructor")
	ErrTaxSnapshotIsNotConstructed = errors.New("TaxSnapshot must be created via NewTaxSnapshot constructor")
)

// TaxMode decides whether tax is charged on top of the price or already contained in it.
type TaxMode string

const (
	// TaxModeAddOn charges rate x taxable on top of the price.
	TaxModeAddOn TaxMode = "add_on"

	// TaxModeInclusive prices already contain tax; no additional tax is charged.
	TaxModeInclusive TaxMode = "inclusive"
)

func (m TaxMode) Validate() error {
	switch m {
	case TaxModeAddOn, TaxModeInclusive:
		return nil
	case "":
		return errs.NewValueIsRequiredError("taxMode")
	default:
		return errs.NewValueIsInvalidErrorWithCause("taxMode", fmt.Errorf("%q is not a known tax mode", string(m)))
	}
}

// TaxGroup is the configured tax treatment of a menu item at a point in time.
// Configuration may change at any moment; only the snapshot taken at ring-in
// is authoritative for an item already on a check.
type TaxGroup struct {
	id    kernel.UUID
	mode  TaxMode
	rate  decimal.Decimal
	guard guard.ConstructorGuard
}

// NewTaxGroup validates mode and a rate in [0, 1].
func NewTaxGroup(id kernel.UUID, mode TaxMode, rate decimal.Decimal) (TaxGroup, error) {
	if err := errors.Join(id.Validate(), mode.Validate(), kernel.ValidateRate("taxRate", rate)); err != nil {
		return TaxGroup{}, err
	}
	return TaxGroup{
		id:    id,
		mode:  mode,
		rate:  kernel.RoundRate(rate),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (g TaxGroup) ID() kernel.UUID {
	return g.id
}

func (g TaxGroup) Mode() TaxMode {
	return g.mode
}

func (g TaxGroup) Rate() decimal.Decimal {
	return g.rate
}

func (g TaxGroup) Validate() error {
	return g.guard.Validate(ErrTaxGroupIsNotConstructed)
}

// TaxSnapshot freezes the tax treatment of a check item at the moment it was rung in.
//
// Invariants:
//   - taxGroupID, mode and rate never change after construction
//   - taxAmount is rate x taxableAmount for add-on items and zero for inclusive items
//   - amounts are stored at two decimal places, the rate at six
//
// New snapshots are derived from an existing one only through WithTaxableAmount,
// which re-derives amounts, and Partition, which divides them. Both keep the
// frozen treatment.
type TaxSnapshot struct {
	taxGroupID    *kernel.UUID
	mode          TaxMode
	rate          decimal.Decimal
	taxableAmount decimal.Decimal
	taxAmount     decimal.Decimal
	guard         guard.ConstructorGuard
}

// NewTaxSnapshot captures a treatment and computes the tax on taxableAmount.
// A nil taxGroupID marks an item rung without a tax group (rate must then be zero).
func NewTaxSnapshot(
	taxGroupID *kernel.UUID,
	mode TaxMode,
	rate decimal.Decimal,
	taxableAmount decimal.Decimal,
) (TaxSnapshot, error) {
	if err := errors.Join(
		mode.Validate(),
		kernel.ValidateRate("taxRateAtSale", rate),
		kernel.ValidateNonNegativeMoney("taxableAmount", taxableAmount),
	); err != nil {
		return TaxSnapshot{}, err
	}
	if taxGroupID == nil && !rate.IsZero() {
		return TaxSnapshot{}, errs.NewValueIsRequiredErrorWithCause(
			"taxGroupIdAtSale", errors.New("a non-zero rate needs its tax group"))
	}

	s := TaxSnapshot{
		taxGroupID: taxGroupID,
		mode:       mode,
		rate:       kernel.RoundRate(rate),
		guard:      guard.NewConstructorGuard(),
	}
	s.taxableAmount = kernel.RoundMoney(taxableAmount)
	s.taxAmount = kernel.RoundMoney(s.TaxOn(s.taxableAmount))
	return s, nil
}

// RestoreTaxSnapshot rehydrates a persisted snapshot without recomputing its tax amount.
func RestoreTaxSnapshot(
	taxGroupID *kernel.UUID,
	mode TaxMode,
	rate decimal.Decimal,
	taxableAmount decimal.Decimal,
	taxAmount decimal.Decimal,
) (TaxSnapshot, error) {
	if err := errors.Join(
		mode.Validate(),
		kernel.ValidateRate("taxRateAtSale", rate),
		kernel.ValidateNonNegativeMoney("taxableAmount", taxableAmount),
		kernel.ValidateNonNegativeMoney("taxAmount", taxAmount),
	); err != nil {
		return TaxSnapshot{}, err
	}
	return TaxSnapshot{
		taxGroupID:    taxGroupID,
		mode:          mode,
		rate:          rate,
		taxableAmount: taxableAmount,
		taxAmount:     taxAmount,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// WithTaxableAmount re-derives amounts for a new taxable base, keeping group, mode and rate.
func (s TaxSnapshot) WithTaxableAmount(taxableAmount decimal.Decimal) (TaxSnapshot, error) {
	if err := s.Validate(); err != nil {
		return TaxSnapshot{}, err
	}
	if err := kernel.ValidateNonNegativeMoney("taxableAmount", taxableAmount); err != nil {
		return TaxSnapshot{}, err
	}
	next := s
	next.taxableAmount = kernel.RoundMoney(taxableAmount)
	next.taxAmount = kernel.RoundMoney(s.TaxOn(next.taxableAmount))
	return next, nil
}

// Partition carves ratio off the snapshot. The carved part gets the rounded
// share of both amounts and the rest keeps the remainder, so the two parts add
// back up to the original to the cent.
func (s TaxSnapshot) Partition(ratio decimal.Decimal) (part TaxSnapshot, rest TaxSnapshot, err error) {
	if err = s.Validate(); err != nil {
		return TaxSnapshot{}, TaxSnapshot{}, err
	}
	if ratio.IsNegative() || ratio.GreaterThan(decimal.NewFromInt(1)) {
		return TaxSnapshot{}, TaxSnapshot{}, errs.NewValueIsOutOfRangeError("ratio", ratio.String(), "0", "1")
	}

	part, rest = s, s
	part.taxableAmount = kernel.RoundMoney(s.taxableAmount.Mul(ratio))
	part.taxAmount = kernel.RoundMoney(s.taxAmount.Mul(ratio))
	rest.taxableAmount = s.taxableAmount.Sub(part.taxableAmount)
	rest.taxAmount = s.taxAmount.Sub(part.taxAmount)
	return part, rest, nil
}

// TaxOn returns the unrounded add-on tax for amount under this treatment.
func (s TaxSnapshot) TaxOn(amount decimal.Decimal) decimal.Decimal {
	if s.mode != TaxModeAddOn {
		return decimal.Zero
	}
	return amount.Mul(s.rate)
}

func (s TaxSnapshot) TaxGroupID() *kernel.UUID {
	if s.taxGroupID == nil {
		return nil
	}
	id := *s.taxGroupID
	return &id
}

func (s TaxSnapshot) Mode() TaxMode {
	return s.mode
}

func (s TaxSnapshot) Rate() decimal.Decimal {
	return s.rate
}

func (s TaxSnapshot) TaxableAmount() decimal.Decimal {
	return s.taxableAmount
}

func (s TaxSnapshot) TaxAmount() decimal.Decimal {
	return s.taxAmount
}

func (s TaxSnapshot) Validate() error {
	return s.guard.Validate(ErrTaxSnapshotIsNotConstructed)
}

// SameTreatment reports whether two snapshots carry the same frozen group, mode and rate.
func (s TaxSnapshot) SameTreatment(other TaxSnapshot) bool {
	return kernel.IsEqualOptional(s.taxGroupID, other.taxGroupID) &&
		s.mode == other.mode &&
		s.rate.Equal(other.rate)
}
