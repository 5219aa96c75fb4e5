package commands

import (
	"context"

	"checkcore/internal/core/ports"
)

// BumpTicketCommandHandler marks a ticket done on its KDS device. A later
// change to the check recalls it.
type BumpTicketCommandHandler struct {
	uowFactory KitchenUoWFactory
	deps       Collaborators
}

func NewBumpTicketCommandHandler(uowFactory KitchenUoWFactory, deps Collaborators) BumpTicketCommandHandler {
	return BumpTicketCommandHandler{
		uowFactory: uowFactory,
		deps:       deps,
	}
}

func (h BumpTicketCommandHandler) Handle(ctx context.Context, cmd BumpTicketCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tickets := uow.TicketRepository()
	ticket, err := tickets.Get(ctx, cmd.TicketID())
	if err != nil {
		return err
	}

	now := h.deps.now()
	if err = ticket.Bump(now); err != nil {
		return err
	}
	if err = tickets.Update(ctx, ticket); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	var after followUps
	after.audit(ports.AuditEntry{
		RvcID:      ticket.RvcID(),
		EmployeeID: cmd.EmployeeID(),
		Action:     "bump_ticket",
		TargetType: "kds_ticket",
		TargetID:   ticket.ID(),
		Details:    map[string]any{"check_id": ticket.CheckID().String()},
	})
	after.publishTo(ports.EventKdsUpdate, ticket.RvcID(), ticket.CheckID(), "bump_ticket", now)
	after.run(ctx, h.deps)

	return nil
}
