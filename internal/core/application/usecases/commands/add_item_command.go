package commands

import (
	"errors"
	"strings"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAddItemCommandIsNotConstructed = errors.New(
	"AddItemCommand must be created via NewAddItemCommand constructor",
)

// AddItemCommand rings an item onto an open check. menuItemID is nil for
// open-priced items that are neither routed nor tax-grouped.
//
// Example:
//
//	cmd, err := NewAddItemCommand(checkID, &version, serverID, &burgerID, "Burger",
//	    decimal.RequireFromString("12.50"), decimal.NewFromInt(1), nil, nil)
type AddItemCommand struct {
	checkRef
	menuItemID   *kernel.UUID
	name         string
	unitPrice    decimal.Decimal
	quantity     decimal.Decimal
	modifiers    []check.Modifier
	linkedEntity *check.LinkedEntityRef

	guard guard.ConstructorGuard
}

func NewAddItemCommand(
	checkID kernel.UUID,
	expectedVersion *int,
	employeeID kernel.UUID,
	menuItemID *kernel.UUID,
	name string,
	unitPrice decimal.Decimal,
	quantity decimal.Decimal,
	modifiers []check.Modifier,
	linkedEntity *check.LinkedEntityRef,
) (AddItemCommand, error) {
	ref, err := newCheckRef(checkID, expectedVersion, employeeID)
	if err != nil {
		return AddItemCommand{}, err
	}
	if strings.TrimSpace(name) == "" {
		return AddItemCommand{}, errs.NewValueIsRequiredError("name")
	}
	if _, err = check.TaxableAmount(unitPrice, modifiers, quantity); err != nil {
		return AddItemCommand{}, err
	}
	if unitPrice.IsNegative() {
		return AddItemCommand{}, errs.NewValueIsInvalidError("unitPrice")
	}
	return AddItemCommand{
		checkRef:     ref,
		menuItemID:   menuItemID,
		name:         name,
		unitPrice:    unitPrice,
		quantity:     quantity,
		modifiers:    append([]check.Modifier(nil), modifiers...),
		linkedEntity: linkedEntity,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AddItemCommand) Validate() error {
	return c.guard.Validate(ErrAddItemCommandIsNotConstructed)
}

func (c AddItemCommand) MenuItemID() *kernel.UUID              { return c.menuItemID }
func (c AddItemCommand) Name() string                          { return c.name }
func (c AddItemCommand) UnitPrice() decimal.Decimal            { return c.unitPrice }
func (c AddItemCommand) Quantity() decimal.Decimal             { return c.quantity }
func (c AddItemCommand) Modifiers() []check.Modifier           { return c.modifiers }
func (c AddItemCommand) LinkedEntity() *check.LinkedEntityRef { return c.linkedEntity }
