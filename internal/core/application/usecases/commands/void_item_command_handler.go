package commands

import (
	"context"
	"fmt"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/services"
	"checkcore/internal/core/ports"
)

// VoidItemCommandHandler voids an item. The row stays on the check with its
// reason; a sent item needs manager approval, an unsent one leaves the
// preview ticket.
type VoidItemCommandHandler struct {
	uowFactory UoWFactory
	deps       Collaborators
}

func NewVoidItemCommandHandler(uowFactory UoWFactory, deps Collaborators) VoidItemCommandHandler {
	return VoidItemCommandHandler{
		uowFactory: uowFactory,
		deps:       deps,
	}
}

func (h VoidItemCommandHandler) Handle(ctx context.Context, cmd VoidItemCommand) (CheckResult, error) {
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
	if err = c.EnsureOpen("void item"); err != nil {
		return CheckResult{}, err
	}
	item, err := c.Item(cmd.ItemID())
	if err != nil {
		return CheckResult{}, err
	}

	var approvedBy *kernel.UUID
	if item.IsSent() {
		approvedBy, err = authorize(ctx, h.deps, cmd.ManagerPIN(), ports.PrivilegeVoidSentItem)
		if err != nil {
			return CheckResult{}, err
		}
	}

	wasActive := item.IsActive()
	if _, err = c.VoidItem(item.ID(), cmd.Reason()); err != nil {
		return CheckResult{}, err
	}

	var preview services.PreviewChange
	if !item.IsSent() {
		settings, modeErr := h.deps.Routing.ResolveOrderMode(ctx, c.RvcID())
		if modeErr != nil {
			return CheckResult{}, fmt.Errorf("resolve order mode: %w", modeErr)
		}
		if settings.IsDynamic() {
			current, findErr := findPreview(ctx, tickets, c.ID())
			if findErr != nil {
				return CheckResult{}, findErr
			}
			if preview, err = services.NewDynamicOrderController().OnItemVoided(current, item.ID()); err != nil {
				return CheckResult{}, err
			}
			if err = savePreview(ctx, tickets, preview); err != nil {
				return CheckResult{}, err
			}
		}
	}

	recalled, err := recallBumpedTickets(ctx, tickets, c.ID())
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
	if wasActive {
		after.restoreStock(item, c.PropertyID())
	}
	entry := checkAudit(c, cmd.EmployeeID(), "void_item", map[string]any{
		"item_id": item.ID().String(),
		"sent":    item.IsSent(),
	})
	entry.ReasonCode = cmd.Reason()
	entry.ManagerApprovalID = approvedBy
	after.audit(entry)
	after.publish(ports.EventCheckUpdate, c, "void_item", now)
	if item.IsSent() || preview.Changed() || recalled > 0 {
		after.publish(ports.EventKdsUpdate, c, "void_item", now)
	}
	after.run(ctx, h.deps)

	return newCheckResult(c), nil
}
