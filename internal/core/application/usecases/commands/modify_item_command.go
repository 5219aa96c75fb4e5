package commands

import (
	"errors"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrModifyItemCommandIsNotConstructed = errors.New(
	"ModifyItemCommand must be created via NewModifyItemCommand constructor",
)

// ModifyItemCommand changes the quantity and/or modifiers of an unsent item.
// An invalid quantity leaves the quantity unchanged; nil modifiers leave the
// modifiers unchanged while an empty, non-nil slice clears them.
type ModifyItemCommand struct {
	checkRef
	itemID    kernel.UUID
	quantity  decimal.NullDecimal
	modifiers []check.Modifier

	guard guard.ConstructorGuard
}

func NewModifyItemCommand(
	checkID kernel.UUID,
	expectedVersion *int,
	employeeID kernel.UUID,
	itemID kernel.UUID,
	quantity decimal.NullDecimal,
	modifiers []check.Modifier,
) (ModifyItemCommand, error) {
	ref, err := newCheckRef(checkID, expectedVersion, employeeID)
	if err != nil {
		return ModifyItemCommand{}, err
	}
	if err = itemID.Validate(); err != nil {
		return ModifyItemCommand{}, errs.NewValueIsRequiredErrorWithCause("itemId", err)
	}
	if !quantity.Valid && modifiers == nil {
		return ModifyItemCommand{}, errs.NewValueIsRequiredError("quantity or modifiers")
	}
	if quantity.Valid && !quantity.Decimal.IsPositive() {
		return ModifyItemCommand{}, errs.NewValueIsInvalidError("quantity")
	}
	return ModifyItemCommand{
		checkRef:  ref,
		itemID:    itemID,
		quantity:  quantity,
		modifiers: modifiers,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ModifyItemCommand) Validate() error {
	return c.guard.Validate(ErrModifyItemCommandIsNotConstructed)
}

func (c ModifyItemCommand) ItemID() kernel.UUID           { return c.itemID }
func (c ModifyItemCommand) Quantity() decimal.NullDecimal { return c.quantity }
func (c ModifyItemCommand) Modifiers() []check.Modifier   { return c.modifiers }
func (c ModifyItemCommand) ChangesModifiers() bool        { return c.modifiers != nil }
