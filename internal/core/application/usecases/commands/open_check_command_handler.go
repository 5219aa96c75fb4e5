package commands

import (
	"context"
	"fmt"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/ports"
)

// OpenCheckCommandHandler allocates the next check number of the revenue
// center and stamps the current business date as both origin and business date.
type OpenCheckCommandHandler struct {
	uowFactory UoWFactory
	deps       Collaborators
}

func NewOpenCheckCommandHandler(uowFactory UoWFactory, deps Collaborators) OpenCheckCommandHandler {
	return OpenCheckCommandHandler{
		uowFactory: uowFactory,
		deps:       deps,
	}
}

func (h OpenCheckCommandHandler) Handle(ctx context.Context, cmd OpenCheckCommand) (CheckResult, error) {
	if err := cmd.Validate(); err != nil {
		return CheckResult{}, err
	}

	businessDate, err := h.deps.BusinessDays.CurrentBusinessDate(ctx, cmd.RvcID())
	if err != nil {
		return CheckResult{}, fmt.Errorf("current business date: %w", err)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CheckResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	checks := uow.CheckRepository()
	number, err := checks.NextCheckNumber(ctx, cmd.RvcID())
	if err != nil {
		return CheckResult{}, err
	}

	now := h.deps.now()
	c, err := check.NewCheck(kernel.NewUUID(), cmd.RvcID(), cmd.PropertyID(), number,
		cmd.OrderType(), cmd.EmployeeID(), businessDate, now)
	if err != nil {
		return CheckResult{}, err
	}
	if err = c.SeatTable(cmd.TableNumber(), cmd.GuestCount()); err != nil {
		return CheckResult{}, err
	}
	if customerID := cmd.CustomerID(); customerID != nil {
		if err = c.AttachCustomer(*customerID); err != nil {
			return CheckResult{}, err
		}
	}

	if err = checks.Add(ctx, c); err != nil {
		return CheckResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return CheckResult{}, err
	}

	var after followUps
	after.audit(checkAudit(c, cmd.EmployeeID(), "open_check", map[string]any{"check_number": number}))
	after.publish(ports.EventCheckUpdate, c, "open_check", now)
	after.run(ctx, h.deps)

	return newCheckResult(c), nil
}
