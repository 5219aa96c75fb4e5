package commands

import (
	"context"

	"checkcore/internal/core/ports"
)

type OverridePriceCommandHandler struct {
	uowFactory UoWFactory
	deps       Collaborators
}

func NewOverridePriceCommandHandler(uowFactory UoWFactory, deps Collaborators) OverridePriceCommandHandler {
	return OverridePriceCommandHandler{
		uowFactory: uowFactory,
		deps:       deps,
	}
}

func (h OverridePriceCommandHandler) Handle(ctx context.Context, cmd OverridePriceCommand) (CheckResult, error) {
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
	if err = c.EnsureOpen("override price"); err != nil {
		return CheckResult{}, err
	}

	approvedBy, err := authorize(ctx, h.deps, cmd.ManagerPIN(), ports.PrivilegePriceOverride)
	if err != nil {
		return CheckResult{}, err
	}

	item, err := c.Item(cmd.ItemID())
	if err != nil {
		return CheckResult{}, err
	}
	previous := item.UnitPrice()
	if _, err = c.OverrideItemPrice(item.ID(), cmd.UnitPrice()); err != nil {
		return CheckResult{}, err
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
	entry := checkAudit(c, cmd.EmployeeID(), "override_price", map[string]any{
		"item_id":        item.ID().String(),
		"previous_price": previous.StringFixed(2),
		"unit_price":     cmd.UnitPrice().StringFixed(2),
	})
	entry.ManagerApprovalID = approvedBy
	after.audit(entry)
	after.publish(ports.EventCheckUpdate, c, "override_price", now)
	if recalled > 0 {
		after.publish(ports.EventKdsUpdate, c, "override_price", now)
	}
	after.run(ctx, h.deps)

	return newCheckResult(c), nil
}
