package commands

import (
	"errors"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"
)

var ErrBumpTicketCommandIsNotConstructed = errors.New(
	"BumpTicketCommand must be created via NewBumpTicketCommand constructor",
)

// BumpTicketCommand clears a ticket from a KDS display.
type BumpTicketCommand struct {
	ticketID   kernel.UUID
	employeeID kernel.UUID

	guard guard.ConstructorGuard
}

func NewBumpTicketCommand(ticketID, employeeID kernel.UUID) (BumpTicketCommand, error) {
	if err := ticketID.Validate(); err != nil {
		return BumpTicketCommand{}, errs.NewValueIsRequiredErrorWithCause("ticketId", err)
	}
	if err := employeeID.Validate(); err != nil {
		return BumpTicketCommand{}, errs.NewValueIsRequiredErrorWithCause("employeeId", err)
	}
	return BumpTicketCommand{
		ticketID:   ticketID,
		employeeID: employeeID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c BumpTicketCommand) Validate() error {
	return c.guard.Validate(ErrBumpTicketCommandIsNotConstructed)
}

func (c BumpTicketCommand) TicketID() kernel.UUID   { return c.ticketID }
func (c BumpTicketCommand) EmployeeID() kernel.UUID { return c.employeeID }
