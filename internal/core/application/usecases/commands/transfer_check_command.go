package commands

import (
	"errors"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"
)

var ErrTransferCheckCommandIsNotConstructed = errors.New(
	"TransferCheckCommand must be created via NewTransferCheckCommand constructor",
)

// TransferCheckCommand hands a check to another employee.
type TransferCheckCommand struct {
	checkRef
	toEmployeeID kernel.UUID

	guard guard.ConstructorGuard
}

func NewTransferCheckCommand(
	checkID kernel.UUID,
	expectedVersion *int,
	employeeID kernel.UUID,
	toEmployeeID kernel.UUID,
) (TransferCheckCommand, error) {
	ref, err := newCheckRef(checkID, expectedVersion, employeeID)
	if err != nil {
		return TransferCheckCommand{}, err
	}
	if err = toEmployeeID.Validate(); err != nil {
		return TransferCheckCommand{}, errs.NewValueIsRequiredErrorWithCause("toEmployeeId", err)
	}
	return TransferCheckCommand{
		checkRef:     ref,
		toEmployeeID: toEmployeeID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c TransferCheckCommand) Validate() error {
	return c.guard.Validate(ErrTransferCheckCommandIsNotConstructed)
}

func (c TransferCheckCommand) ToEmployeeID() kernel.UUID {
	return c.toEmployeeID
}
