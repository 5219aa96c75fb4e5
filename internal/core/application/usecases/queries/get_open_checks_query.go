package queries

import (
	"errors"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOpenChecksQueryIsNotConstructed = errors.New(
	"GetOpenChecksQuery must be created via NewGetOpenChecksQuery constructor",
)

// GetOpenChecksQuery lists the open checks of one revenue center, the
// workstation's "open checks" screen.
type GetOpenChecksQuery struct {
	rvcID kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetOpenChecksQuery(rvcID kernel.UUID) (GetOpenChecksQuery, error) {
	if err := rvcID.Validate(); err != nil {
		return GetOpenChecksQuery{}, errs.NewValueIsRequiredErrorWithCause("rvcID", err)
	}
	return GetOpenChecksQuery{rvcID: rvcID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOpenChecksQuery) RvcID() kernel.UUID {
	return q.rvcID
}

func (q GetOpenChecksQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenChecksQueryIsNotConstructed)
}

type GetOpenChecksQueryResponse struct {
	ID          kernel.UUID
	CheckNumber int
	TableNumber string
	GuestCount  int
	EmployeeID  kernel.UUID
	Total       decimal.Decimal
	Version     int
}
