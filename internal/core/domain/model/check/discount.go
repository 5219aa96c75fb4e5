package check

import (
	"errors"
	"time"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrDiscountIsNotConstructed = errors.New("Discount must be created via NewDiscount constructor")

// Discount is a check-level discount. Item-level discounts live on the item itself.
type Discount struct {
	id                kernel.UUID
	discountID        kernel.UUID
	amount            decimal.Decimal
	employeeID        kernel.UUID
	managerApprovalID *kernel.UUID
	appliedAt         time.Time
	guard             guard.ConstructorGuard
}

// NewDiscount validates a positive amount. managerApprovalID is set when the
// discount definition required approval.
func NewDiscount(
	id kernel.UUID,
	discountID kernel.UUID,
	amount decimal.Decimal,
	employeeID kernel.UUID,
	managerApprovalID *kernel.UUID,
	appliedAt time.Time,
) (*Discount, error) {
	if err := errors.Join(
		id.Validate(),
		discountID.Validate(),
		employeeID.Validate(),
		kernel.ValidatePositiveMoney("discountAmount", amount),
	); err != nil {
		return nil, err
	}
	return &Discount{
		id:                id,
		discountID:        discountID,
		amount:            kernel.RoundMoney(amount),
		employeeID:        employeeID,
		managerApprovalID: managerApprovalID,
		appliedAt:         appliedAt.UTC(),
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// RestoreDiscount rehydrates a persisted discount.
func RestoreDiscount(
	id kernel.UUID,
	discountID kernel.UUID,
	amount decimal.Decimal,
	employeeID kernel.UUID,
	managerApprovalID *kernel.UUID,
	appliedAt time.Time,
) (*Discount, error) {
	return NewDiscount(id, discountID, amount, employeeID, managerApprovalID, appliedAt)
}

func (d *Discount) Validate() error {
	if d == nil {
		return ErrDiscountIsNotConstructed
	}
	return d.guard.Validate(ErrDiscountIsNotConstructed)
}

func (d *Discount) ID() kernel.UUID                 { return d.id }
func (d *Discount) DiscountID() kernel.UUID         { return d.discountID }
func (d *Discount) Amount() decimal.Decimal         { return d.amount }
func (d *Discount) EmployeeID() kernel.UUID         { return d.employeeID }
func (d *Discount) ManagerApprovalID() *kernel.UUID { return d.managerApprovalID }
func (d *Discount) AppliedAt() time.Time            { return d.appliedAt }
