package commands

import (
	"errors"
	"strings"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"
)

var ErrVoidItemCommandIsNotConstructed = errors.New(
	"VoidItemCommand must be created via NewVoidItemCommand constructor",
)

// VoidItemCommand voids one item. managerPIN is only consulted when the item
// was already sent to the kitchen.
type VoidItemCommand struct {
	checkRef
	itemID     kernel.UUID
	reason     string
	managerPIN string

	guard guard.ConstructorGuard
}

func NewVoidItemCommand(
	checkID kernel.UUID,
	expectedVersion *int,
	employeeID kernel.UUID,
	itemID kernel.UUID,
	reason string,
	managerPIN string,
) (VoidItemCommand, error) {
	ref, err := newCheckRef(checkID, expectedVersion, employeeID)
	if err != nil {
		return VoidItemCommand{}, err
	}
	if err = itemID.Validate(); err != nil {
		return VoidItemCommand{}, errs.NewValueIsRequiredErrorWithCause("itemId", err)
	}
	if strings.TrimSpace(reason) == "" {
		return VoidItemCommand{}, errs.NewValueIsRequiredError("reason")
	}
	return VoidItemCommand{
		checkRef:   ref,
		itemID:     itemID,
		reason:     strings.TrimSpace(reason),
		managerPIN: managerPIN,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c VoidItemCommand) Validate() error {
	return c.guard.Validate(ErrVoidItemCommandIsNotConstructed)
}

func (c VoidItemCommand) ItemID() kernel.UUID { return c.itemID }
func (c VoidItemCommand) Reason() string      { return c.reason }
func (c VoidItemCommand) ManagerPIN() string  { return c.managerPIN }
