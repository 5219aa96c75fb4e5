package commands

import (
	"errors"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/guard"
)

var ErrSendCheckCommandIsNotConstructed = errors.New(
	"SendCheckCommand must be created via NewSendCheckCommand constructor",
)

// SendCheckCommand dispatches every unsent item of a check as the next round.
type SendCheckCommand struct {
	checkRef

	guard guard.ConstructorGuard
}

func NewSendCheckCommand(checkID kernel.UUID, expectedVersion *int, employeeID kernel.UUID) (SendCheckCommand, error) {
	ref, err := newCheckRef(checkID, expectedVersion, employeeID)
	if err != nil {
		return SendCheckCommand{}, err
	}
	return SendCheckCommand{
		checkRef: ref,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SendCheckCommand) Validate() error {
	return c.guard.Validate(ErrSendCheckCommandIsNotConstructed)
}
