package commands

import (
	"context"
	"fmt"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/ports"
)

// ApplyItemDiscountCommandHandler discounts one item of an open check.
type ApplyItemDiscountCommandHandler struct {
	uowFactory UoWFactory
	deps       Collaborators
}

func NewApplyItemDiscountCommandHandler(uowFactory UoWFactory, deps Collaborators) ApplyItemDiscountCommandHandler {
	return ApplyItemDiscountCommandHandler{
		uowFactory: uowFactory,
		deps:       deps,
	}
}

func (h ApplyItemDiscountCommandHandler) Handle(ctx context.Context, cmd ApplyItemDiscountCommand) (CheckResult, error) {
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
	if err = c.EnsureOpen("apply item discount"); err != nil {
		return CheckResult{}, err
	}

	approvedBy, err := approveDiscount(ctx, h.deps, cmd.discountRequest)
	if err != nil {
		return CheckResult{}, err
	}
	if _, err = c.ApplyItemDiscount(cmd.ItemID(), cmd.DiscountID(), cmd.Amount()); err != nil {
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
	entry := checkAudit(c, cmd.EmployeeID(), "apply_item_discount", map[string]any{
		"item_id":     cmd.ItemID().String(),
		"discount_id": cmd.DiscountID().String(),
		"amount":      cmd.Amount().StringFixed(2),
	})
	entry.ManagerApprovalID = approvedBy
	after.audit(entry)
	after.publish(ports.EventCheckUpdate, c, "apply_item_discount", now)
	if recalled > 0 {
		after.publish(ports.EventKdsUpdate, c, "apply_item_discount", now)
	}
	after.run(ctx, h.deps)

	return newCheckResult(c), nil
}

// ApplyCheckDiscountCommandHandler adds a check-level discount. The amount is
// checked against the stored totals, which are always current after a
// successful command.
type ApplyCheckDiscountCommandHandler struct {
	uowFactory UoWFactory
	deps       Collaborators
}

func NewApplyCheckDiscountCommandHandler(uowFactory UoWFactory, deps Collaborators) ApplyCheckDiscountCommandHandler {
	return ApplyCheckDiscountCommandHandler{
		uowFactory: uowFactory,
		deps:       deps,
	}
}

func (h ApplyCheckDiscountCommandHandler) Handle(ctx context.Context, cmd ApplyCheckDiscountCommand) (CheckResult, error) {
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
	if err = c.EnsureOpen("apply check discount"); err != nil {
		return CheckResult{}, err
	}

	approvedBy, err := approveDiscount(ctx, h.deps, cmd.discountRequest)
	if err != nil {
		return CheckResult{}, err
	}

	now := h.deps.now()
	discount, err := check.NewDiscount(kernel.NewUUID(), cmd.DiscountID(), cmd.Amount(), cmd.EmployeeID(), approvedBy, now)
	if err != nil {
		return CheckResult{}, err
	}
	if err = c.ApplyDiscount(discount); err != nil {
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

	var after followUps
	entry := checkAudit(c, cmd.EmployeeID(), "apply_check_discount", map[string]any{
		"discount_id": cmd.DiscountID().String(),
		"amount":      cmd.Amount().StringFixed(2),
	})
	entry.ManagerApprovalID = approvedBy
	after.audit(entry)
	after.publish(ports.EventCheckUpdate, c, "apply_check_discount", now)
	if recalled > 0 {
		after.publish(ports.EventKdsUpdate, c, "apply_check_discount", now)
	}
	after.run(ctx, h.deps)

	return newCheckResult(c), nil
}

// approveDiscount looks the discount up and asks for a manager PIN when the
// definition requires approval.
func approveDiscount(ctx context.Context, deps Collaborators, req discountRequest) (*kernel.UUID, error) {
	definition, err := deps.Discounts.Discount(ctx, req.DiscountID())
	if err != nil {
		return nil, fmt.Errorf("discount %s: %w", req.DiscountID(), err)
	}
	if !definition.RequiresApproval {
		return nil, nil
	}
	return authorize(ctx, deps, req.ManagerPIN(), ports.PrivilegeApproveDiscount)
}
