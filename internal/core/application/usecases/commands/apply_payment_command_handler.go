package commands

import (
	"context"
	"fmt"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/payment"
	"checkcore/internal/core/ports"

	"github.com/shopspring/decimal"
)

// ApplyPaymentResult describes the payment and whether it closed the check.
type ApplyPaymentResult struct {
	CheckResult
	PaymentID   kernel.UUID
	PaidAmount  decimal.Decimal
	ChangeDue   decimal.Decimal
	BalanceDue  decimal.Decimal
	Closed      bool
	RoundNumber int // set when closing sent withheld items
}

// ApplyPaymentCommandHandler records a payment. When completed payments cover
// the total within kernel.PaymentTolerance the check closes: unsent items are
// sent first, the close is stamped with the current business date and every
// ticket of the check is marked paid.
type ApplyPaymentCommandHandler struct {
	uowFactory UoWFactory
	deps       Collaborators
}

func NewApplyPaymentCommandHandler(uowFactory UoWFactory, deps Collaborators) ApplyPaymentCommandHandler {
	return ApplyPaymentCommandHandler{
		uowFactory: uowFactory,
		deps:       deps,
	}
}

func (h ApplyPaymentCommandHandler) Handle(ctx context.Context, cmd ApplyPaymentCommand) (ApplyPaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return ApplyPaymentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ApplyPaymentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	checks := uow.CheckRepository()
	payments := uow.PaymentRepository()
	tickets := uow.TicketRepository()

	c, err := loadCheck(ctx, checks, cmd.checkRef)
	if err != nil {
		return ApplyPaymentResult{}, err
	}
	if err = c.EnsureOpen("apply payment"); err != nil {
		return ApplyPaymentResult{}, err
	}

	businessDate, err := h.deps.BusinessDays.CurrentBusinessDate(ctx, c.RvcID())
	if err != nil {
		return ApplyPaymentResult{}, fmt.Errorf("current business date: %w", err)
	}

	existing, err := payments.ListByCheck(ctx, c.ID())
	if err != nil {
		return ApplyPaymentResult{}, err
	}
	paid := payment.CompletedTotal(existing)
	balance := decimal.Max(c.Total().Sub(paid), decimal.Zero)

	now := h.deps.now()
	p, err := payment.NewPayment(kernel.NewUUID(), c.ID(), cmd.TenderType(), cmd.Amount(), balance,
		cmd.EmployeeID(), businessDate, now)
	if err != nil {
		return ApplyPaymentResult{}, err
	}
	if err = payments.Add(ctx, p); err != nil {
		return ApplyPaymentResult{}, err
	}
	paid = paid.Add(p.PaidAmount())

	result := ApplyPaymentResult{
		PaymentID:  p.ID(),
		PaidAmount: p.PaidAmount(),
		ChangeDue:  p.ChangeDue(),
		BalanceDue: decimal.Max(c.Total().Sub(paid), decimal.Zero),
	}

	if c.IsPaidBy(paid) {
		if len(c.UnsentItems()) > 0 {
			dispatch, sendErr := sendUnsent(ctx, uow, h.deps, c, cmd.EmployeeID(), now)
			if sendErr != nil {
				return ApplyPaymentResult{}, sendErr
			}
			result.RoundNumber = dispatch.Round.Number()
		}
		if err = c.Close(businessDate, now); err != nil {
			return ApplyPaymentResult{}, err
		}
		all, listErr := tickets.ListByCheck(ctx, c.ID())
		if listErr != nil {
			return ApplyPaymentResult{}, listErr
		}
		for _, ticket := range all {
			ticket.MarkPaid()
			if err = tickets.Update(ctx, ticket); err != nil {
				return ApplyPaymentResult{}, err
			}
		}
		result.Closed = true
		result.BalanceDue = decimal.Zero
	}

	if err = checks.Update(ctx, c); err != nil {
		return ApplyPaymentResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return ApplyPaymentResult{}, err
	}
	result.CheckResult = newCheckResult(c)

	var after followUps
	after.audit(checkAudit(c, cmd.EmployeeID(), "apply_payment", map[string]any{
		"payment_id":  p.ID().String(),
		"tender_type": string(p.TenderType()),
		"paid_amount": p.PaidAmount().StringFixed(2),
		"change_due":  p.ChangeDue().StringFixed(2),
	}))
	if result.Closed {
		after.audit(checkAudit(c, cmd.EmployeeID(), "close_check", map[string]any{
			"business_date": c.BusinessDate().String(),
		}))
		after.publish(ports.EventKdsUpdate, c, "close_check", now)
	}
	after.publish(ports.EventCheckUpdate, c, "apply_payment", now)
	after.run(ctx, h.deps)

	return result, nil
}
