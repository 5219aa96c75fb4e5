package queries

import (
	"errors"
	"time"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetCheckQueryIsNotConstructed = errors.New("GetCheckQuery must be created via NewGetCheckQuery constructor")

// GetCheckQuery reads one check for display: header, items, check-level
// discounts and payments. Voided items are included and flagged.
//
// Example:
//
//	query, err := NewGetCheckQuery(checkID)
//	if err != nil {
//	    return err
//	}
//	view, err := NewGetCheckQueryHandler(db).Handle(ctx, query)
type GetCheckQuery struct {
	checkID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetCheckQuery(checkID kernel.UUID) (GetCheckQuery, error) {
	if err := checkID.Validate(); err != nil {
		return GetCheckQuery{}, errs.NewValueIsRequiredErrorWithCause("checkID", err)
	}
	return GetCheckQuery{checkID: checkID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCheckQuery) CheckID() kernel.UUID {
	return q.checkID
}

func (q GetCheckQuery) Validate() error {
	return q.guard.Validate(ErrGetCheckQueryIsNotConstructed)
}

// GetCheckQueryResponse is the display view of a check. Version is the token
// a client echoes back on its next mutation.
type GetCheckQueryResponse struct {
	ID            kernel.UUID
	CheckNumber   int
	Status        string
	OrderType     string
	BusinessDate  string
	TableNumber   string
	GuestCount    int
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	TaxTotal      decimal.Decimal
	Total         decimal.Decimal
	OpenedAt      time.Time
	ClosedAt      *time.Time
	Version       int
	Items         []CheckItemView
	Discounts     []CheckDiscountView
	Payments      []CheckPaymentView
}

// CheckItemView is one line of the check. TaxAmount is nil for legacy items.
type CheckItemView struct {
	ID             kernel.UUID
	Name           string
	UnitPrice      decimal.Decimal
	Quantity       decimal.Decimal
	Sent           bool
	Voided         bool
	DiscountAmount decimal.Decimal
	TaxAmount      *decimal.Decimal
	RoundID        *kernel.UUID
}

type CheckDiscountView struct {
	ID         kernel.UUID
	DiscountID kernel.UUID
	Amount     decimal.Decimal
}

type CheckPaymentView struct {
	ID         kernel.UUID
	TenderType string
	PaidAmount decimal.Decimal
	ChangeDue  decimal.Decimal
	Status     string
}
