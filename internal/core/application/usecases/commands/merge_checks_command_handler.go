package commands

import (
	"context"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kitchen"
	"checkcore/internal/core/domain/model/payment"
	"checkcore/internal/core/domain/services"
	"checkcore/internal/core/ports"
	"checkcore/internal/pkg/errs"
)

// MergeChecksCommandHandler merges checks atomically. Sources must be open,
// unpaid and in the target's revenue center; they are closed empty. Preview
// tickets of the sources are folded into the target's preview ticket.
type MergeChecksCommandHandler struct {
	uowFactory UoWFactory
	deps       Collaborators
}

func NewMergeChecksCommandHandler(uowFactory UoWFactory, deps Collaborators) MergeChecksCommandHandler {
	return MergeChecksCommandHandler{
		uowFactory: uowFactory,
		deps:       deps,
	}
}

func (h MergeChecksCommandHandler) Handle(ctx context.Context, cmd MergeChecksCommand) (CheckResult, error) {
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
	payments := uow.PaymentRepository()
	tickets := uow.TicketRepository()

	target, err := loadCheck(ctx, checks, cmd.checkRef)
	if err != nil {
		return CheckResult{}, err
	}

	sources := make([]*check.Check, 0, len(cmd.SourceCheckIDs()))
	sourcePreviews := make([]*kitchen.Ticket, 0)
	for _, id := range cmd.SourceCheckIDs() {
		source, getErr := checks.Get(ctx, id)
		if getErr != nil {
			return CheckResult{}, getErr
		}
		if !source.RvcID().IsEqual(target.RvcID()) {
			return CheckResult{}, errs.NewPreconditionFailedError("merge checks",
				"check "+id.String()+" belongs to another revenue center")
		}
		paid, listErr := payments.ListByCheck(ctx, id)
		if listErr != nil {
			return CheckResult{}, listErr
		}
		if payment.CompletedTotal(paid).IsPositive() {
			return CheckResult{}, errs.NewPreconditionFailedError("merge checks",
				"check "+id.String()+" already has payments")
		}
		preview, findErr := findPreview(ctx, tickets, id)
		if findErr != nil {
			return CheckResult{}, findErr
		}
		if preview != nil {
			sourcePreviews = append(sourcePreviews, preview)
		}
		sources = append(sources, source)
	}

	now := h.deps.now()
	if err = services.NewCheckSplitter().Merge(target, sources, now); err != nil {
		return CheckResult{}, err
	}

	var preview services.PreviewChange
	if len(sourcePreviews) > 0 {
		current, findErr := findPreview(ctx, tickets, target.ID())
		if findErr != nil {
			return CheckResult{}, findErr
		}
		preview, err = services.NewDynamicOrderController().OnChecksMerged(target, current, sourcePreviews, now)
		if err != nil {
			return CheckResult{}, err
		}
		for _, voided := range sourcePreviews {
			if err = tickets.Update(ctx, voided); err != nil {
				return CheckResult{}, err
			}
		}
		if err = savePreview(ctx, tickets, preview); err != nil {
			return CheckResult{}, err
		}
	}

	engine := h.deps.totals()
	for _, source := range sources {
		if _, err = engine.Recompute(ctx, source); err != nil {
			return CheckResult{}, err
		}
		if err = checks.Update(ctx, source); err != nil {
			return CheckResult{}, err
		}
	}
	if _, err = engine.Recompute(ctx, target); err != nil {
		return CheckResult{}, err
	}
	if err = checks.Update(ctx, target); err != nil {
		return CheckResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return CheckResult{}, err
	}

	merged := make([]string, 0, len(sources))
	for _, source := range sources {
		merged = append(merged, source.ID().String())
	}

	var after followUps
	after.audit(checkAudit(target, cmd.EmployeeID(), "merge_checks", map[string]any{
		"source_check_ids": merged,
	}))
	for _, source := range sources {
		after.publish(ports.EventCheckUpdate, source, "merge_checks", now)
	}
	after.publish(ports.EventCheckUpdate, target, "merge_checks", now)
	if len(sourcePreviews) > 0 {
		after.publish(ports.EventKdsUpdate, target, "merge_checks", now)
	}
	after.run(ctx, h.deps)

	return newCheckResult(target), nil
}
