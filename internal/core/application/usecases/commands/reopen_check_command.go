package commands

import (
	"errors"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/guard"
)

var (
	ErrReopenCheckCommandIsNotConstructed = errors.New(
		"ReopenCheckCommand must be created via NewReopenCheckCommand constructor",
	)
	ErrCancelCheckCommandIsNotConstructed = errors.New(
		"CancelCheckCommand must be created via NewCancelCheckCommand constructor",
	)
)

// ReopenCheckCommand returns a closed check to Open.
type ReopenCheckCommand struct {
	checkRef

	guard guard.ConstructorGuard
}

func NewReopenCheckCommand(checkID kernel.UUID, expectedVersion *int, employeeID kernel.UUID) (ReopenCheckCommand, error) {
	ref, err := newCheckRef(checkID, expectedVersion, employeeID)
	if err != nil {
		return ReopenCheckCommand{}, err
	}
	return ReopenCheckCommand{checkRef: ref, guard: guard.NewConstructorGuard()}, nil
}

func (c ReopenCheckCommand) Validate() error {
	return c.guard.Validate(ErrReopenCheckCommandIsNotConstructed)
}

// CancelCheckCommand voids an open check that never reached the kitchen.
type CancelCheckCommand struct {
	checkRef

	guard guard.ConstructorGuard
}

func NewCancelCheckCommand(checkID kernel.UUID, expectedVersion *int, employeeID kernel.UUID) (CancelCheckCommand, error) {
	ref, err := newCheckRef(checkID, expectedVersion, employeeID)
	if err != nil {
		return CancelCheckCommand{}, err
	}
	return CancelCheckCommand{checkRef: ref, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelCheckCommand) Validate() error {
	return c.guard.Validate(ErrCancelCheckCommandIsNotConstructed)
}
