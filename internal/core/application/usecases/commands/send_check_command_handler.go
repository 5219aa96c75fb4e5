package commands

import (
	"context"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/ports"
)

// SendCheckResult carries the new round and the tickets it touched.
type SendCheckResult struct {
	CheckResult
	RoundID     kernel.UUID
	RoundNumber int
	TicketIDs   []kernel.UUID
}

// SendCheckCommandHandler creates a round from the unsent items, routes them
// to KDS tickets (or finalizes the preview ticket in Dynamic Order Mode) and
// marks them sent, all in one transaction.
type SendCheckCommandHandler struct {
	uowFactory UoWFactory
	deps       Collaborators
}

func NewSendCheckCommandHandler(uowFactory UoWFactory, deps Collaborators) SendCheckCommandHandler {
	return SendCheckCommandHandler{
		uowFactory: uowFactory,
		deps:       deps,
	}
}

func (h SendCheckCommandHandler) Handle(ctx context.Context, cmd SendCheckCommand) (SendCheckResult, error) {
	if err := cmd.Validate(); err != nil {
		return SendCheckResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SendCheckResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	checks := uow.CheckRepository()
	c, err := loadCheck(ctx, checks, cmd.checkRef)
	if err != nil {
		return SendCheckResult{}, err
	}

	now := h.deps.now()
	dispatch, err := sendUnsent(ctx, uow, h.deps, c, cmd.EmployeeID(), now)
	if err != nil {
		return SendCheckResult{}, err
	}
	if err = checks.Update(ctx, c); err != nil {
		return SendCheckResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return SendCheckResult{}, err
	}

	sent := dispatch.Tickets()
	ticketIDs := make([]kernel.UUID, 0, len(sent))
	for _, ticket := range sent {
		ticketIDs = append(ticketIDs, ticket.ID())
	}

	var after followUps
	after.audit(checkAudit(c, cmd.EmployeeID(), "send_check", map[string]any{
		"round_number": dispatch.Round.Number(),
		"item_count":   len(dispatch.UpdatedItems),
		"ticket_count": len(ticketIDs),
	}))
	after.publish(ports.EventKdsUpdate, c, "send_check", now)
	after.publish(ports.EventCheckUpdate, c, "send_check", now)
	after.run(ctx, h.deps)

	return SendCheckResult{
		CheckResult: newCheckResult(c),
		RoundID:     dispatch.Round.ID(),
		RoundNumber: dispatch.Round.Number(),
		TicketIDs:   ticketIDs,
	}, nil
}
