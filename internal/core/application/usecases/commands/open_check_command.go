package commands

import (
	"errors"
	"strings"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"
)

var ErrOpenCheckCommandIsNotConstructed = errors.New(
	"OpenCheckCommand must be created via NewOpenCheckCommand constructor",
)

// OpenCheckCommand starts a new guest check in a revenue center.
//
// Example:
//
//	cmd, err := NewOpenCheckCommand(rvcID, propertyID, serverID, check.DineIn, "12", 4, nil)
//	result, err := handler.Handle(ctx, cmd)
//	fmt.Printf("check %d opened", result.CheckNumber)
type OpenCheckCommand struct {
	rvcID       kernel.UUID
	propertyID  kernel.UUID
	employeeID  kernel.UUID
	orderType   check.OrderType
	tableNumber string
	guestCount  int
	customerID  *kernel.UUID

	guard guard.ConstructorGuard
}

func NewOpenCheckCommand(
	rvcID kernel.UUID,
	propertyID kernel.UUID,
	employeeID kernel.UUID,
	orderType check.OrderType,
	tableNumber string,
	guestCount int,
	customerID *kernel.UUID,
) (OpenCheckCommand, error) {
	if err := errors.Join(
		rvcID.Validate(),
		propertyID.Validate(),
		employeeID.Validate(),
		orderType.Validate(),
	); err != nil {
		return OpenCheckCommand{}, err
	}
	if guestCount < 0 {
		return OpenCheckCommand{}, errs.NewValueIsOutOfRangeError("guestCount", guestCount, 0, "unbounded")
	}
	return OpenCheckCommand{
		rvcID:       rvcID,
		propertyID:  propertyID,
		employeeID:  employeeID,
		orderType:   orderType,
		tableNumber: strings.TrimSpace(tableNumber),
		guestCount:  guestCount,
		customerID:  customerID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c OpenCheckCommand) Validate() error {
	return c.guard.Validate(ErrOpenCheckCommandIsNotConstructed)
}

func (c OpenCheckCommand) RvcID() kernel.UUID         { return c.rvcID }
func (c OpenCheckCommand) PropertyID() kernel.UUID    { return c.propertyID }
func (c OpenCheckCommand) EmployeeID() kernel.UUID    { return c.employeeID }
func (c OpenCheckCommand) OrderType() check.OrderType { return c.orderType }
func (c OpenCheckCommand) TableNumber() string        { return c.tableNumber }
func (c OpenCheckCommand) GuestCount() int            { return c.guestCount }
func (c OpenCheckCommand) CustomerID() *kernel.UUID   { return c.customerID }
