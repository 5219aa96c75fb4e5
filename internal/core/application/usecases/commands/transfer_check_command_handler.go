package commands

import (
	"context"

	"checkcore/internal/core/ports"
)

type TransferCheckCommandHandler struct {
	uowFactory UoWFactory
	deps       Collaborators
}

func NewTransferCheckCommandHandler(uowFactory UoWFactory, deps Collaborators) TransferCheckCommandHandler {
	return TransferCheckCommandHandler{
		uowFactory: uowFactory,
		deps:       deps,
	}
}

func (h TransferCheckCommandHandler) Handle(ctx context.Context, cmd TransferCheckCommand) (CheckResult, error) {
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
	from := c.EmployeeID()
	if err = c.Transfer(cmd.ToEmployeeID()); err != nil {
		return CheckResult{}, err
	}
	if err = checks.Update(ctx, c); err != nil {
		return CheckResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return CheckResult{}, err
	}

	var after followUps
	after.audit(checkAudit(c, cmd.EmployeeID(), "transfer_check", map[string]any{
		"from_employee_id": from.String(),
		"to_employee_id":   cmd.ToEmployeeID().String(),
	}))
	after.publish(ports.EventCheckUpdate, c, "transfer_check", h.deps.now())
	after.run(ctx, h.deps)

	return newCheckResult(c), nil
}
