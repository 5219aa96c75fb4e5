package commands

import (
	"errors"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrOverridePriceCommandIsNotConstructed = errors.New(
	"OverridePriceCommand must be created via NewOverridePriceCommand constructor",
)

// OverridePriceCommand replaces the unit price of an item. It always needs a
// manager PIN.
type OverridePriceCommand struct {
	checkRef
	itemID     kernel.UUID
	unitPrice  decimal.Decimal
	managerPIN string

	guard guard.ConstructorGuard
}

func NewOverridePriceCommand(
	checkID kernel.UUID,
	expectedVersion *int,
	employeeID kernel.UUID,
	itemID kernel.UUID,
	unitPrice decimal.Decimal,
	managerPIN string,
) (OverridePriceCommand, error) {
	ref, err := newCheckRef(checkID, expectedVersion, employeeID)
	if err != nil {
		return OverridePriceCommand{}, err
	}
	if err = itemID.Validate(); err != nil {
		return OverridePriceCommand{}, errs.NewValueIsRequiredErrorWithCause("itemId", err)
	}
	if err = kernel.ValidateNonNegativeMoney("unitPrice", unitPrice); err != nil {
		return OverridePriceCommand{}, err
	}
	return OverridePriceCommand{
		checkRef:   ref,
		itemID:     itemID,
		unitPrice:  kernel.RoundMoney(unitPrice),
		managerPIN: managerPIN,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c OverridePriceCommand) Validate() error {
	return c.guard.Validate(ErrOverridePriceCommandIsNotConstructed)
}

func (c OverridePriceCommand) ItemID() kernel.UUID        { return c.itemID }
func (c OverridePriceCommand) UnitPrice() decimal.Decimal { return c.unitPrice }
func (c OverridePriceCommand) ManagerPIN() string         { return c.managerPIN }
