package commands

import (
	"context"
	"errors"
	"fmt"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/services"
	"checkcore/internal/core/ports"
	"checkcore/internal/pkg/errs"
)

// AddItemResult identifies the new item and the check state after the ring.
type AddItemResult struct {
	CheckResult
	ItemID kernel.UUID
}

// AddItemCommandHandler rings an item: it snapshots tax, applies the Dynamic
// Order Mode policy, recalls bumped tickets and recomputes totals.
type AddItemCommandHandler struct {
	uowFactory UoWFactory
	deps       Collaborators
}

func NewAddItemCommandHandler(uowFactory UoWFactory, deps Collaborators) AddItemCommandHandler {
	return AddItemCommandHandler{
		uowFactory: uowFactory,
		deps:       deps,
	}
}

func (h AddItemCommandHandler) Handle(ctx context.Context, cmd AddItemCommand) (AddItemResult, error) {
	if err := cmd.Validate(); err != nil {
		return AddItemResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AddItemResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	checks := uow.CheckRepository()
	tickets := uow.TicketRepository()

	c, err := loadCheck(ctx, checks, cmd.checkRef)
	if err != nil {
		return AddItemResult{}, err
	}
	if err = c.EnsureOpen("add item"); err != nil {
		return AddItemResult{}, err
	}

	group, err := h.taxGroup(ctx, cmd.MenuItemID())
	if err != nil {
		return AddItemResult{}, err
	}
	snapshot, err := services.NewTaxSnapshotCalculator().Compute(group, cmd.UnitPrice(), cmd.Modifiers(), cmd.Quantity())
	if err != nil {
		return AddItemResult{}, err
	}

	now := h.deps.now()
	item, err := check.NewItem(kernel.NewUUID(), cmd.MenuItemID(), cmd.Name(), cmd.UnitPrice(),
		cmd.Quantity(), cmd.Modifiers(), snapshot, cmd.LinkedEntity(), now)
	if err != nil {
		return AddItemResult{}, err
	}
	if err = c.AddItem(item); err != nil {
		return AddItemResult{}, err
	}

	recalled, err := recallBumpedTickets(ctx, tickets, c.ID())
	if err != nil {
		return AddItemResult{}, err
	}

	settings, err := h.deps.Routing.ResolveOrderMode(ctx, c.RvcID())
	if err != nil {
		return AddItemResult{}, fmt.Errorf("resolve order mode: %w", err)
	}
	var preview services.PreviewChange
	if settings.IsDynamic() {
		current, findErr := findPreview(ctx, tickets, c.ID())
		if findErr != nil {
			return AddItemResult{}, findErr
		}
		preview, err = services.NewDynamicOrderController().OnItemAdded(c, current, settings.SendMode, item, now)
		if err != nil {
			return AddItemResult{}, err
		}
		if err = savePreview(ctx, tickets, preview); err != nil {
			return AddItemResult{}, err
		}
	}

	if _, err = h.deps.totals().Recompute(ctx, c); err != nil {
		return AddItemResult{}, err
	}
	if err = checks.Update(ctx, c); err != nil {
		return AddItemResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return AddItemResult{}, err
	}

	var after followUps
	after.decrementStock(item, c.PropertyID())
	after.audit(checkAudit(c, cmd.EmployeeID(), "add_item", map[string]any{
		"item_id":  item.ID().String(),
		"name":     item.Name(),
		"quantity": item.Quantity().String(),
	}))
	after.publish(ports.EventCheckUpdate, c, "add_item", now)
	if preview.Changed() || recalled > 0 {
		after.publish(ports.EventKdsUpdate, c, "add_item", now)
	}
	after.run(ctx, h.deps)

	return AddItemResult{CheckResult: newCheckResult(c), ItemID: item.ID()}, nil
}

func (h AddItemCommandHandler) taxGroup(ctx context.Context, menuItemID *kernel.UUID) (*check.TaxGroup, error) {
	if menuItemID == nil {
		return nil, nil
	}
	group, err := h.deps.Menu.TaxGroupForMenuItem(ctx, *menuItemID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tax group for menu item %s: %w", menuItemID, err)
	}
	return group, nil
}
