package payment

import (
	"errors"
	"fmt"
	"time"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

type TenderType string

const (
	Cash  TenderType = "cash"
	Card  TenderType = "card"
	Other TenderType = "other"
)

func (t TenderType) Validate() error {
	switch t {
	case Cash, Card, Other:
		return nil
	case "":
		return errs.NewValueIsRequiredError("tenderType")
	default:
		return errs.NewValueIsInvalidErrorWithCause("tenderType", fmt.Errorf("%q is not a known tender type", string(t)))
	}
}

type Status string

const (
	Completed Status = "completed"
	Voided    Status = "voided"
)

func (s Status) Validate() error {
	if s != Completed && s != Voided {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%q is not a known payment status", string(s)))
	}
	return nil
}

// Payment is one tender against a check.
//
// Cash may be over-tendered: paidAmount is capped at the balance due and the
// remainder becomes changeDue. Other tenders must not exceed the balance.
// A zero tender of any type is accepted only against a zero balance, which
// is how a fully discounted check is settled and closed.
type Payment struct {
	id             kernel.UUID
	checkID        kernel.UUID
	tenderType     TenderType
	tenderedAmount decimal.Decimal
	paidAmount     decimal.Decimal
	changeDue      decimal.Decimal
	status         Status
	employeeID     kernel.UUID
	businessDate   kernel.BusinessDate
	createdAt      time.Time
	guard          guard.ConstructorGuard
}

// NewPayment applies tendered against balanceDue.
//
//	p, err := payment.NewPayment(kernel.NewUUID(), checkID, payment.Cash,
//	    decimal.RequireFromString("20.03"), decimal.RequireFromString("20.00"),
//	    cashierID, "2026-03-14", time.Now())
//	// p.PaidAmount() == 20.00, p.ChangeDue() == 0.03
func NewPayment(
	id kernel.UUID,
	checkID kernel.UUID,
	tenderType TenderType,
	tendered decimal.Decimal,
	balanceDue decimal.Decimal,
	employeeID kernel.UUID,
	businessDate kernel.BusinessDate,
	createdAt time.Time,
) (*Payment, error) {
	if err := errors.Join(
		id.Validate(),
		checkID.Validate(),
		tenderType.Validate(),
		employeeID.Validate(),
		businessDate.Validate(),
		validateTendered(tendered, balanceDue),
		kernel.ValidateNonNegativeMoney("balanceDue", balanceDue),
	); err != nil {
		return nil, err
	}

	tendered = kernel.RoundMoney(tendered)
	balanceDue = kernel.RoundMoney(balanceDue)

	paid := tendered
	change := decimal.Zero
	if tendered.GreaterThan(balanceDue) {
		if tenderType != Cash {
			return nil, errs.NewValueIsOutOfRangeError("tenderedAmount", tendered.String(), "0.01", balanceDue.String())
		}
		paid = balanceDue
		change = tendered.Sub(balanceDue)
	}

	return &Payment{
		id:             id,
		checkID:        checkID,
		tenderType:     tenderType,
		tenderedAmount: tendered,
		paidAmount:     paid,
		changeDue:      change,
		status:         Completed,
		employeeID:     employeeID,
		businessDate:   businessDate,
		createdAt:      createdAt.UTC(),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func validateTendered(tendered, balanceDue decimal.Decimal) error {
	if kernel.RoundMoney(balanceDue).IsZero() {
		return kernel.ValidateNonNegativeMoney("tenderedAmount", tendered)
	}
	return kernel.ValidatePositiveMoney("tenderedAmount", tendered)
}

// PaymentState carries every persisted field of a Payment for RestorePayment.
type PaymentState struct {
	ID             kernel.UUID
	CheckID        kernel.UUID
	TenderType     TenderType
	TenderedAmount decimal.Decimal
	PaidAmount     decimal.Decimal
	ChangeDue      decimal.Decimal
	Status         Status
	EmployeeID     kernel.UUID
	BusinessDate   kernel.BusinessDate
	CreatedAt      time.Time
}

func RestorePayment(state PaymentState) (*Payment, error) {
	if err := errors.Join(
		state.ID.Validate(),
		state.CheckID.Validate(),
		state.TenderType.Validate(),
		state.Status.Validate(),
		state.EmployeeID.Validate(),
		state.BusinessDate.Validate(),
		kernel.ValidateNonNegativeMoney("paidAmount", state.PaidAmount),
		kernel.ValidateNonNegativeMoney("changeDue", state.ChangeDue),
	); err != nil {
		return nil, err
	}
	return &Payment{
		id:             state.ID,
		checkID:        state.CheckID,
		tenderType:     state.TenderType,
		tenderedAmount: state.TenderedAmount,
		paidAmount:     state.PaidAmount,
		changeDue:      state.ChangeDue,
		status:         state.Status,
		employeeID:     state.EmployeeID,
		businessDate:   state.BusinessDate,
		createdAt:      state.CreatedAt.UTC(),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

func (p *Payment) ID() kernel.UUID                   { return p.id }
func (p *Payment) CheckID() kernel.UUID              { return p.checkID }
func (p *Payment) TenderType() TenderType            { return p.tenderType }
func (p *Payment) TenderedAmount() decimal.Decimal   { return p.tenderedAmount }
func (p *Payment) PaidAmount() decimal.Decimal       { return p.paidAmount }
func (p *Payment) ChangeDue() decimal.Decimal        { return p.changeDue }
func (p *Payment) Status() Status                    { return p.status }
func (p *Payment) EmployeeID() kernel.UUID           { return p.employeeID }
func (p *Payment) BusinessDate() kernel.BusinessDate { return p.businessDate }
func (p *Payment) CreatedAt() time.Time              { return p.createdAt }

func (p *Payment) IsCompleted() bool {
	return p.status == Completed
}

// Void cancels a completed payment; it no longer counts toward the check.
func (p *Payment) Void() error {
	if p.status != Completed {
		return errs.NewPreconditionFailedError("void payment", "payment is already voided")
	}
	p.status = Voided
	return nil
}

// CompletedTotal sums paidAmount over completed payments.
func CompletedTotal(payments []*Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		if p.IsCompleted() {
			sum = sum.Add(p.paidAmount)
		}
	}
	return sum
}
