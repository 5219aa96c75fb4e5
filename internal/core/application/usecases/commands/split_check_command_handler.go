package commands

import (
	"context"
	"fmt"
	"time"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/services"
	"checkcore/internal/core/ports"
	"checkcore/internal/pkg/errs"
)

// SplitCheckResult reports both checks after the split.
type SplitCheckResult struct {
	Source CheckResult
	Target CheckResult
}

// SplitCheckCommandHandler splits a check inside one transaction: either both
// checks change or neither does.
type SplitCheckCommandHandler struct {
	uowFactory UoWFactory
	deps       Collaborators
}

func NewSplitCheckCommandHandler(uowFactory UoWFactory, deps Collaborators) SplitCheckCommandHandler {
	return SplitCheckCommandHandler{
		uowFactory: uowFactory,
		deps:       deps,
	}
}

func (h SplitCheckCommandHandler) Handle(ctx context.Context, cmd SplitCheckCommand) (SplitCheckResult, error) {
	if err := cmd.Validate(); err != nil {
		return SplitCheckResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SplitCheckResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	checks := uow.CheckRepository()
	source, err := loadCheck(ctx, checks, cmd.checkRef)
	if err != nil {
		return SplitCheckResult{}, err
	}
	if err = source.EnsureOpen("split check"); err != nil {
		return SplitCheckResult{}, err
	}

	now := h.deps.now()
	target, created, err := h.target(ctx, checks, source, cmd, now)
	if err != nil {
		return SplitCheckResult{}, err
	}

	if err = services.NewCheckSplitter().Split(source, target, cmd.Plan()); err != nil {
		return SplitCheckResult{}, err
	}

	engine := h.deps.totals()
	if _, err = engine.Recompute(ctx, source); err != nil {
		return SplitCheckResult{}, err
	}
	if _, err = engine.Recompute(ctx, target); err != nil {
		return SplitCheckResult{}, err
	}

	if err = checks.Update(ctx, source); err != nil {
		return SplitCheckResult{}, err
	}
	if created {
		err = checks.Add(ctx, target)
	} else {
		err = checks.Update(ctx, target)
	}
	if err != nil {
		return SplitCheckResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return SplitCheckResult{}, err
	}

	var after followUps
	after.audit(checkAudit(source, cmd.EmployeeID(), "split_check", map[string]any{
		"target_check_id": target.ID().String(),
		"moved":           len(cmd.Plan().Move),
		"shared":          len(cmd.Plan().Share),
	}))
	after.publish(ports.EventCheckUpdate, source, "split_check", now)
	after.publish(ports.EventCheckUpdate, target, "split_check", now)
	after.run(ctx, h.deps)

	return SplitCheckResult{
		Source: newCheckResult(source),
		Target: newCheckResult(target),
	}, nil
}

// target loads the requested target check or opens a new one next to source.
func (h SplitCheckCommandHandler) target(
	ctx context.Context,
	checks ports.CheckRepository,
	source *check.Check,
	cmd SplitCheckCommand,
	now time.Time,
) (*check.Check, bool, error) {
	if id := cmd.TargetCheckID(); id != nil {
		target, err := checks.Get(ctx, *id)
		if err != nil {
			return nil, false, err
		}
		if !target.RvcID().IsEqual(source.RvcID()) {
			return nil, false, errs.NewPreconditionFailedError("split check", "checks belong to different revenue centers")
		}
		return target, false, nil
	}

	businessDate, err := h.deps.BusinessDays.CurrentBusinessDate(ctx, source.RvcID())
	if err != nil {
		return nil, false, fmt.Errorf("current business date: %w", err)
	}
	number, err := checks.NextCheckNumber(ctx, source.RvcID())
	if err != nil {
		return nil, false, err
	}
	target, err := check.NewCheck(kernel.NewUUID(), source.RvcID(), source.PropertyID(), number,
		source.OrderType(), cmd.EmployeeID(), businessDate, now)
	if err != nil {
		return nil, false, err
	}
	if err = target.SeatTable(source.TableNumber(), 0); err != nil {
		return nil, false, err
	}
	return target, true, nil
}
