package kitchen

import (
	"fmt"

	"checkcore/internal/pkg/errs"
)

// TicketStatus is the display state of a KDS ticket.
//
//	Active ──bump──> Bumped ──recall──> Active
//	Recalled ──bump──> Bumped
//	Active/Bumped/Recalled ──void──> Voided
type TicketStatus string

const (
	TicketActive   TicketStatus = "active"
	TicketBumped   TicketStatus = "bumped"
	TicketRecalled TicketStatus = "recalled"
	TicketVoided   TicketStatus = "voided"
)

func (s TicketStatus) Validate() error {
	switch s {
	case TicketActive, TicketBumped, TicketRecalled, TicketVoided:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("ticketStatus", fmt.Errorf("%q is not a known ticket status", string(s)))
	}
}

func (s TicketStatus) bump() (TicketStatus, error) {
	if s != TicketActive && s != TicketRecalled {
		return "", errs.NewPreconditionFailedError("bump ticket", fmt.Sprintf("%s ticket cannot be bumped", s))
	}
	return TicketBumped, nil
}

func (s TicketStatus) recall() (TicketStatus, error) {
	if s != TicketBumped {
		return "", errs.NewPreconditionFailedError("recall ticket", fmt.Sprintf("%s ticket cannot be recalled", s))
	}
	return TicketActive, nil
}

func (s TicketStatus) void() (TicketStatus, error) {
	if s == TicketVoided {
		return "", errs.NewPreconditionFailedError("void ticket", "ticket is already voided")
	}
	return TicketVoided, nil
}
