package commands

import (
	"errors"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/payment"
	"checkcore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrApplyPaymentCommandIsNotConstructed = errors.New(
	"ApplyPaymentCommand must be created via NewApplyPaymentCommand constructor",
)

// ApplyPaymentCommand tenders an amount against a check. A zero amount is
// only accepted by the handler when nothing is left to pay.
//
// Example:
//
//	cmd, err := NewApplyPaymentCommand(checkID, &version, cashierID,
//	    payment.Cash, decimal.RequireFromString("20.03"))
type ApplyPaymentCommand struct {
	checkRef
	tenderType payment.TenderType
	amount     decimal.Decimal

	guard guard.ConstructorGuard
}

func NewApplyPaymentCommand(
	checkID kernel.UUID,
	expectedVersion *int,
	employeeID kernel.UUID,
	tenderType payment.TenderType,
	amount decimal.Decimal,
) (ApplyPaymentCommand, error) {
	ref, err := newCheckRef(checkID, expectedVersion, employeeID)
	if err != nil {
		return ApplyPaymentCommand{}, err
	}
	if err = errors.Join(
		tenderType.Validate(),
		kernel.ValidateNonNegativeMoney("amount", amount),
	); err != nil {
		return ApplyPaymentCommand{}, err
	}
	return ApplyPaymentCommand{
		checkRef:   ref,
		tenderType: tenderType,
		amount:     kernel.RoundMoney(amount),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ApplyPaymentCommand) Validate() error {
	return c.guard.Validate(ErrApplyPaymentCommandIsNotConstructed)
}

func (c ApplyPaymentCommand) TenderType() payment.TenderType { return c.tenderType }
func (c ApplyPaymentCommand) Amount() decimal.Decimal        { return c.amount }
