package commands

import (
	"errors"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrApplyItemDiscountCommandIsNotConstructed = errors.New(
		"ApplyItemDiscountCommand must be created via NewApplyItemDiscountCommand constructor",
	)
	ErrApplyCheckDiscountCommandIsNotConstructed = errors.New(
		"ApplyCheckDiscountCommand must be created via NewApplyCheckDiscountCommand constructor",
	)
)

// discountRequest is shared by item and check discounts.
type discountRequest struct {
	discountID kernel.UUID
	amount     decimal.Decimal
	managerPIN string
}

func newDiscountRequest(discountID kernel.UUID, amount decimal.Decimal, managerPIN string) (discountRequest, error) {
	if err := discountID.Validate(); err != nil {
		return discountRequest{}, errs.NewValueIsRequiredErrorWithCause("discountId", err)
	}
	if err := kernel.ValidatePositiveMoney("amount", amount); err != nil {
		return discountRequest{}, err
	}
	return discountRequest{discountID: discountID, amount: kernel.RoundMoney(amount), managerPIN: managerPIN}, nil
}

func (r discountRequest) DiscountID() kernel.UUID { return r.discountID }
func (r discountRequest) Amount() decimal.Decimal { return r.amount }
func (r discountRequest) ManagerPIN() string      { return r.managerPIN }

// ApplyItemDiscountCommand discounts a single item.
type ApplyItemDiscountCommand struct {
	checkRef
	discountRequest
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

func NewApplyItemDiscountCommand(
	checkID kernel.UUID,
	expectedVersion *int,
	employeeID kernel.UUID,
	itemID kernel.UUID,
	discountID kernel.UUID,
	amount decimal.Decimal,
	managerPIN string,
) (ApplyItemDiscountCommand, error) {
	ref, err := newCheckRef(checkID, expectedVersion, employeeID)
	if err != nil {
		return ApplyItemDiscountCommand{}, err
	}
	if err = itemID.Validate(); err != nil {
		return ApplyItemDiscountCommand{}, errs.NewValueIsRequiredErrorWithCause("itemId", err)
	}
	req, err := newDiscountRequest(discountID, amount, managerPIN)
	if err != nil {
		return ApplyItemDiscountCommand{}, err
	}
	return ApplyItemDiscountCommand{
		checkRef:        ref,
		discountRequest: req,
		itemID:          itemID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c ApplyItemDiscountCommand) Validate() error {
	return c.guard.Validate(ErrApplyItemDiscountCommandIsNotConstructed)
}

func (c ApplyItemDiscountCommand) ItemID() kernel.UUID {
	return c.itemID
}

// ApplyCheckDiscountCommand adds a check-level discount.
type ApplyCheckDiscountCommand struct {
	checkRef
	discountRequest

	guard guard.ConstructorGuard
}

func NewApplyCheckDiscountCommand(
	checkID kernel.UUID,
	expectedVersion *int,
	employeeID kernel.UUID,
	discountID kernel.UUID,
	amount decimal.Decimal,
	managerPIN string,
) (ApplyCheckDiscountCommand, error) {
	ref, err := newCheckRef(checkID, expectedVersion, employeeID)
	if err != nil {
		return ApplyCheckDiscountCommand{}, err
	}
	req, err := newDiscountRequest(discountID, amount, managerPIN)
	if err != nil {
		return ApplyCheckDiscountCommand{}, err
	}
	return ApplyCheckDiscountCommand{
		checkRef:        ref,
		discountRequest: req,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c ApplyCheckDiscountCommand) Validate() error {
	return c.guard.Validate(ErrApplyCheckDiscountCommandIsNotConstructed)
}
