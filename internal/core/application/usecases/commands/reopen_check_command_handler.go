package commands

import (
	"context"

	"checkcore/internal/core/ports"
)

// ReopenCheckCommandHandler reopens a closed check. Payments, rounds, tickets
// and the business dates stay as they are.
type ReopenCheckCommandHandler struct {
	uowFactory UoWFactory
	deps       Collaborators
}

func NewReopenCheckCommandHandler(uowFactory UoWFactory, deps Collaborators) ReopenCheckCommandHandler {
	return ReopenCheckCommandHandler{
		uowFactory: uowFactory,
		deps:       deps,
	}
}

func (h ReopenCheckCommandHandler) Handle(ctx context.Context, cmd ReopenCheckCommand) (CheckResult, error) {
	if err := cmd.Validate(); err != nil {
		return CheckResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CheckResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	checks := uow.CheckRepository()
	c, err := loadCheck(ctx, checks, cmd.checkRef)
	if err != nil {
		return CheckResult{}, err
	}
	if err = c.Reopen(); err != nil {
		return CheckResult{}, err
	}
	if err = checks.Update(ctx, c); err != nil {
		return CheckResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return CheckResult{}, err
	}

	var after followUps
	after.audit(checkAudit(c, cmd.EmployeeID(), "reopen_check", nil))
	after.publish(ports.EventCheckUpdate, c, "reopen_check", h.deps.now())
	after.run(ctx, h.deps)

	return newCheckResult(c), nil
}

// CancelCheckCommandHandler voids an unsent check, puts its stock back and
// voids the preview ticket if one was shown.
type CancelCheckCommandHandler struct {
	uowFactory UoWFactory
	deps       Collaborators
}

func NewCancelCheckCommandHandler(uowFactory UoWFactory, deps Collaborators) CancelCheckCommandHandler {
	return CancelCheckCommandHandler{
		uowFactory: uowFactory,
		deps:       deps,
	}
}

func (h CancelCheckCommandHandler) Handle(ctx context.Context, cmd CancelCheckCommand) (CheckResult, error) {
	if err := cmd.Validate(); err != nil {
		return CheckResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CheckResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	checks := uow.CheckRepository()
	tickets := uow.TicketRepository()

	c, err := loadCheck(ctx, checks, cmd.checkRef)
	if err != nil {
		return CheckResult{}, err
	}
	restock := c.ActiveItems()

	now := h.deps.now()
	if err = c.Cancel(now); err != nil {
		return CheckResult{}, err
	}

	preview, err := findPreview(ctx, tickets, c.ID())
	if err != nil {
		return CheckResult{}, err
	}
	if preview != nil {
		if err = preview.Void(); err != nil {
			return CheckResult{}, err
		}
		if err = tickets.Update(ctx, preview); err != nil {
			return CheckResult{}, err
		}
	}

	if err = checks.Update(ctx, c); err != nil {
		return CheckResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return CheckResult{}, err
	}

	var after followUps
	for _, item := range restock {
		after.restoreStock(item, c.PropertyID())
	}
	after.audit(checkAudit(c, cmd.EmployeeID(), "cancel_check", map[string]any{"item_count": len(restock)}))
	after.publish(ports.EventCheckUpdate, c, "cancel_check", now)
	if preview != nil {
		after.publish(ports.EventKdsUpdate, c, "cancel_check", now)
	}
	after.run(ctx, h.deps)

	return newCheckResult(c), nil
}
