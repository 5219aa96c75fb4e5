package commands

import (
	"context"

	"checkcore/internal/core/ports"
)

// ModifyItemCommandHandler edits an unsent item. The tax snapshot keeps its
// frozen treatment; only its amounts are re-derived.
type ModifyItemCommandHandler struct {
	uowFactory UoWFactory
	deps       Collaborators
}

func NewModifyItemCommandHandler(uowFactory UoWFactory, deps Collaborators) ModifyItemCommandHandler {
	return ModifyItemCommandHandler{
		uowFactory: uowFactory,
		deps:       deps,
	}
}

func (h ModifyItemCommandHandler) Handle(ctx context.Context, cmd ModifyItemCommand) (CheckResult, error) {
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

	if q := cmd.Quantity(); q.Valid {
		if _, err = c.ChangeItemQuantity(cmd.ItemID(), q.Decimal); err != nil {
			return CheckResult{}, err
		}
	}
	if cmd.ChangesModifiers() {
		if _, err = c.ChangeItemModifiers(cmd.ItemID(), cmd.Modifiers()); err != nil {
			return CheckResult{}, err
		}
	}

	recalled, err := recallBumpedTickets(ctx, uow.TicketRepository(), c.ID())
	if err != nil {
		return CheckResult{}, err
	}
	if _, err = h.deps.totals().Recompute(ctx, c); err != nil {
		return CheckResult{}, err
	}
	if err = checks.Update(ctx, c); err != nil {
		return CheckResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return CheckResult{}, err
	}

	now := h.deps.now()
	var after followUps
	after.audit(checkAudit(c, cmd.EmployeeID(), "modify_item", map[string]any{"item_id": cmd.ItemID().String()}))
	after.publish(ports.EventCheckUpdate, c, "modify_item", now)
	if recalled > 0 {
		after.publish(ports.EventKdsUpdate, c, "modify_item", now)
	}
	after.run(ctx, h.deps)

	return newCheckResult(c), nil
}
