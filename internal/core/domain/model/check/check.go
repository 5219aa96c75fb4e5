package check

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCheckIsNotConstructed = errors.New("Check must be created via NewCheck constructor")

// Totals is the output of a totals recomputation.
type Totals struct {
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	TaxTotal      decimal.Decimal
	Total         decimal.Decimal
}

// Validate enforces total == subtotal - discountTotal + taxTotal to the cent.
func (t Totals) Validate() error {
	want := t.Subtotal.Sub(t.DiscountTotal).Add(t.TaxTotal)
	if !kernel.RoundMoney(want).Equal(kernel.RoundMoney(t.Total)) {
		return errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%s != %s - %s + %s", t.Total, t.Subtotal, t.DiscountTotal, t.TaxTotal))
	}
	return nil
}

// Check is the aggregate root for a guest check: its header, items and
// check-level discounts. Rounds, tickets and payments reference it by id.
//
// Invariants:
//   - total == subtotal - discountTotal + taxTotal after every recompute
//   - originBusinessDate never changes; businessDate follows the close
//   - only Open checks accept mutations
//   - version increases by one on every persisted write
type Check struct {
	id                 kernel.UUID
	rvcID              kernel.UUID
	propertyID         kernel.UUID
	checkNumber        int
	status             Status
	orderType          OrderType
	originBusinessDate kernel.BusinessDate
	businessDate       kernel.BusinessDate
	subtotal           decimal.Decimal
	discountTotal      decimal.Decimal
	taxTotal           decimal.Decimal
	total              decimal.Decimal
	guestCount         int
	tableNumber        string
	employeeID         kernel.UUID
	customerID         *kernel.UUID
	openedAt           time.Time
	closedAt           *time.Time
	version            int
	items              []*Item
	discounts          []*Discount
	guard              guard.ConstructorGuard
}

// NewCheck opens a check with zero totals.
//
//	c, err := check.NewCheck(kernel.NewUUID(), rvcID, propertyID, 1042,
//	    check.DineIn, serverID, "2026-03-14", time.Now())
func NewCheck(
	id kernel.UUID,
	rvcID kernel.UUID,
	propertyID kernel.UUID,
	checkNumber int,
	orderType OrderType,
	employeeID kernel.UUID,
	businessDate kernel.BusinessDate,
	openedAt time.Time,
) (*Check, error) {
	c := &Check{
		status:        Open,
		subtotal:      decimal.Zero,
		discountTotal: decimal.Zero,
		taxTotal:      decimal.Zero,
		total:         decimal.Zero,
		openedAt:      openedAt.UTC(),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setRvcID(rvcID),
		c.setPropertyID(propertyID),
		c.setCheckNumber(checkNumber),
		c.setOrderType(orderType),
		c.setEmployeeID(employeeID),
		businessDate.Validate(),
	); err != nil {
		return nil, err
	}
	c.originBusinessDate = businessDate
	c.businessDate = businessDate

	return c, nil
}

// CheckState carries every persisted field of a Check for RestoreCheck.
type CheckState struct {
	ID                 kernel.UUID
	RvcID              kernel.UUID
	PropertyID         kernel.UUID
	CheckNumber        int
	Status             Status
	OrderType          OrderType
	OriginBusinessDate kernel.BusinessDate
	BusinessDate       kernel.BusinessDate
	Subtotal           decimal.Decimal
	DiscountTotal      decimal.Decimal
	TaxTotal           decimal.Decimal
	Total              decimal.Decimal
	GuestCount         int
	TableNumber        string
	EmployeeID         kernel.UUID
	CustomerID         *kernel.UUID
	OpenedAt           time.Time
	ClosedAt           *time.Time
	Version            int
	Items              []*Item
	Discounts          []*Discount
}

// RestoreCheck rehydrates a check from storage. Totals are taken as stored.
func RestoreCheck(state CheckState) (*Check, error) {
	c := &Check{
		status:        state.Status,
		subtotal:      state.Subtotal,
		discountTotal: state.DiscountTotal,
		taxTotal:      state.TaxTotal,
		total:         state.Total,
		guestCount:    state.GuestCount,
		tableNumber:   state.TableNumber,
		customerID:    state.CustomerID,
		openedAt:      state.OpenedAt.UTC(),
		closedAt:      state.ClosedAt,
		version:       state.Version,
		items:         append([]*Item(nil), state.Items...),
		discounts:     append([]*Discount(nil), state.Discounts...),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(state.ID),
		c.setRvcID(state.RvcID),
		c.setPropertyID(state.PropertyID),
		c.setCheckNumber(state.CheckNumber),
		c.setOrderType(state.OrderType),
		c.setEmployeeID(state.EmployeeID),
		state.Status.Validate(),
		state.OriginBusinessDate.Validate(),
		state.BusinessDate.Validate(),
	); err != nil {
		return nil, err
	}
	c.originBusinessDate = state.OriginBusinessDate
	c.businessDate = state.BusinessDate

	for _, item := range c.items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	for _, d := range c.discounts {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *Check) Validate() error {
	if c == nil {
		return ErrCheckIsNotConstructed
	}
	return c.guard.Validate(ErrCheckIsNotConstructed)
}

func (c *Check) IsEqual(other *Check) bool {
	return other != nil && c.id.IsEqual(other.id)
}

func (c *Check) ID() kernel.UUID                         { return c.id }
func (c *Check) RvcID() kernel.UUID                      { return c.rvcID }
func (c *Check) PropertyID() kernel.UUID                 { return c.propertyID }
func (c *Check) CheckNumber() int                        { return c.checkNumber }
func (c *Check) Status() Status                          { return c.status }
func (c *Check) OrderType() OrderType                    { return c.orderType }
func (c *Check) OriginBusinessDate() kernel.BusinessDate { return c.originBusinessDate }
func (c *Check) BusinessDate() kernel.BusinessDate       { return c.businessDate }
func (c *Check) Subtotal() decimal.Decimal               { return c.subtotal }
func (c *Check) DiscountTotal() decimal.Decimal          { return c.discountTotal }
func (c *Check) TaxTotal() decimal.Decimal               { return c.taxTotal }
func (c *Check) Total() decimal.Decimal                  { return c.total }
func (c *Check) GuestCount() int                         { return c.guestCount }
func (c *Check) TableNumber() string                     { return c.tableNumber }
func (c *Check) EmployeeID() kernel.UUID                 { return c.employeeID }
func (c *Check) OpenedAt() time.Time                     { return c.openedAt }
func (c *Check) Version() int                            { return c.version }

func (c *Check) CustomerID() *kernel.UUID {
	if c.customerID == nil {
		return nil
	}
	id := *c.customerID
	return &id
}

func (c *Check) ClosedAt() *time.Time {
	if c.closedAt == nil {
		return nil
	}
	t := *c.closedAt
	return &t
}

// Totals returns the stored totals.
func (c *Check) Totals() Totals {
	return Totals{
		Subtotal:      c.subtotal,
		DiscountTotal: c.discountTotal,
		TaxTotal:      c.taxTotal,
		Total:         c.total,
	}
}

// Items returns every item, voided ones included.
func (c *Check) Items() []*Item {
	out := make([]*Item, len(c.items))
	copy(out, c.items)
	return out
}

// ActiveItems returns non-voided items in ring order.
func (c *Check) ActiveItems() []*Item {
	out := make([]*Item, 0, len(c.items))
	for _, item := range c.items {
		if item.IsActive() {
			out = append(out, item)
		}
	}
	return out
}

// UnsentItems returns non-voided items that have not reached the kitchen, in ring order.
func (c *Check) UnsentItems() []*Item {
	out := make([]*Item, 0, len(c.items))
	for _, item := range c.items {
		if item.IsActive() && !item.IsSent() {
			out = append(out, item)
		}
	}
	return out
}

// HasSentItems reports whether any item, voided or not, was sent.
func (c *Check) HasSentItems() bool {
	for _, item := range c.items {
		if item.IsSent() {
			return true
		}
	}
	return false
}

func (c *Check) Discounts() []*Discount {
	out := make([]*Discount, len(c.discounts))
	copy(out, c.discounts)
	return out
}

// Item finds an item by id.
func (c *Check) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range c.items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("checkItem", itemID.String())
}

// AssertVersion rejects a caller holding a stale version token.
func (c *Check) AssertVersion(expected int) error {
	if expected != c.version {
		return errs.NewVersionConflictError("check", c.id.String(), expected, c.version)
	}
	return nil
}

// AdvanceVersion is called by the repository after a successful write.
func (c *Check) AdvanceVersion() {
	c.version++
}

// EnsureOpen returns a precondition error unless the check accepts mutations.
func (c *Check) EnsureOpen(operation string) error {
	if !c.status.IsOpen() {
		return errs.NewPreconditionFailedError(operation, fmt.Sprintf("check %d is %s", c.checkNumber, c.status))
	}
	return nil
}

// SeatTable records table and cover count.
func (c *Check) SeatTable(tableNumber string, guestCount int) error {
	if err := c.EnsureOpen("seat table"); err != nil {
		return err
	}
	if guestCount < 0 {
		return errs.NewValueIsOutOfRangeError("guestCount", guestCount, 0, "unbounded")
	}
	c.tableNumber = strings.TrimSpace(tableNumber)
	c.guestCount = guestCount
	return nil
}

// AttachCustomer links the check to a customer record.
func (c *Check) AttachCustomer(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = &customerID
	return nil
}

// AddItem appends a freshly rung item.
func (c *Check) AddItem(item *Item) error {
	if err := c.EnsureOpen("add item"); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if _, err := c.Item(item.ID()); err == nil {
		return errs.NewPreconditionFailedError("add item", "item "+item.ID().String()+" is already on the check")
	}
	c.items = append(c.items, item)
	return nil
}

// ChangeItemQuantity changes an unsent item's quantity and re-derives its tax amounts.
func (c *Check) ChangeItemQuantity(itemID kernel.UUID, quantity decimal.Decimal) (*Item, error) {
	return c.mutateItem("change quantity", itemID, func(item *Item) error {
		return item.changeQuantity(quantity)
	})
}

// ChangeItemModifiers replaces an unsent item's modifiers and re-derives its tax amounts.
func (c *Check) ChangeItemModifiers(itemID kernel.UUID, modifiers []Modifier) (*Item, error) {
	return c.mutateItem("change modifiers", itemID, func(item *Item) error {
		return item.changeModifiers(modifiers)
	})
}

// OverrideItemPrice changes the unit price of a non-voided item.
func (c *Check) OverrideItemPrice(itemID kernel.UUID, unitPrice decimal.Decimal) (*Item, error) {
	return c.mutateItem("override price", itemID, func(item *Item) error {
		return item.overridePrice(unitPrice)
	})
}

// ApplyItemDiscount discounts one item. The amount may not exceed the item's gross amount.
func (c *Check) ApplyItemDiscount(itemID, discountID kernel.UUID, amount decimal.Decimal) (*Item, error) {
	return c.mutateItem("apply item discount", itemID, func(item *Item) error {
		return item.applyDiscount(discountID, amount)
	})
}

// VoidItem flags an item as voided. The row stays on the check.
func (c *Check) VoidItem(itemID kernel.UUID, reason string) (*Item, error) {
	return c.mutateItem("void item", itemID, func(item *Item) error {
		return item.void(reason)
	})
}

// MarkItemSent stamps an item with the round it was dispatched in.
func (c *Check) MarkItemSent(itemID, roundID kernel.UUID) (*Item, error) {
	return c.mutateItem("send item", itemID, func(item *Item) error {
		return item.markSent(roundID)
	})
}

func (c *Check) mutateItem(operation string, itemID kernel.UUID, mutate func(*Item) error) (*Item, error) {
	if err := c.EnsureOpen(operation); err != nil {
		return nil, err
	}
	item, err := c.Item(itemID)
	if err != nil {
		return nil, err
	}
	if err = mutate(item); err != nil {
		return nil, err
	}
	return item, nil
}

// ApplyDiscount adds a check-level discount. It may not exceed what remains
// after item and existing check discounts, based on the stored totals.
func (c *Check) ApplyDiscount(discount *Discount) error {
	if err := c.EnsureOpen("apply check discount"); err != nil {
		return err
	}
	if err := discount.Validate(); err != nil {
		return err
	}
	remaining := c.subtotal.Sub(c.discountTotal)
	if discount.Amount().GreaterThan(remaining) {
		return errs.NewValueIsOutOfRangeError("discountAmount", discount.Amount().String(), "0.01", remaining.String())
	}
	c.discounts = append(c.discounts, discount)
	return nil
}

// EnsureAllItemsSent is the split precondition.
func (c *Check) EnsureAllItemsSent(operation string) error {
	if len(c.UnsentItems()) > 0 {
		return errs.NewPreconditionFailedError(operation, "all items must be sent before a split")
	}
	return nil
}

// DetachItem removes a non-voided item so it can be attached to another check.
func (c *Check) DetachItem(itemID kernel.UUID) (*Item, error) {
	if err := c.EnsureOpen("move item"); err != nil {
		return nil, err
	}
	for idx, item := range c.items {
		if !item.ID().IsEqual(itemID) {
			continue
		}
		if item.IsVoided() {
			return nil, errs.NewPreconditionFailedError("move item", "voided items stay on their check")
		}
		c.items = append(c.items[:idx:idx], c.items[idx+1:]...)
		return item, nil
	}
	return nil, errs.NewObjectNotFoundError("checkItem", itemID.String())
}

// AttachItem receives an item moved from another check.
func (c *Check) AttachItem(item *Item) error {
	return c.AddItem(item)
}

// ShareItem splits ratio of an item off into a new, detached item with newItemID.
func (c *Check) ShareItem(itemID, newItemID kernel.UUID, ratio decimal.Decimal) (*Item, error) {
	if err := c.EnsureOpen("share item"); err != nil {
		return nil, err
	}
	item, err := c.Item(itemID)
	if err != nil {
		return nil, err
	}
	return item.share(newItemID, ratio)
}

// DetachDiscounts removes and returns every check-level discount.
func (c *Check) DetachDiscounts() []*Discount {
	out := c.discounts
	c.discounts = nil
	return out
}

// AttachDiscount receives a check-level discount moved from another check
// without re-checking the remaining amount; the caller recomputes totals afterwards.
func (c *Check) AttachDiscount(discount *Discount) error {
	if err := c.EnsureOpen("move discount"); err != nil {
		return err
	}
	if err := discount.Validate(); err != nil {
		return err
	}
	c.discounts = append(c.discounts, discount)
	return nil
}

// ApplyTotals stores recomputed totals.
func (c *Check) ApplyTotals(totals Totals) error {
	if err := totals.Validate(); err != nil {
		return err
	}
	c.subtotal = kernel.RoundMoney(totals.Subtotal)
	c.discountTotal = kernel.RoundMoney(totals.DiscountTotal)
	c.taxTotal = kernel.RoundMoney(totals.TaxTotal)
	c.total = kernel.RoundMoney(totals.Total)
	return nil
}

// IsPaidBy reports whether paid covers the total within kernel.PaymentTolerance.
func (c *Check) IsPaidBy(paid decimal.Decimal) bool {
	return paid.GreaterThanOrEqual(c.total.Sub(kernel.PaymentTolerance))
}

// Close marks the check paid. businessDate becomes the business date of the
// close; originBusinessDate is untouched.
func (c *Check) Close(businessDate kernel.BusinessDate, at time.Time) error {
	if err := businessDate.Validate(); err != nil {
		return err
	}
	next, err := c.status.Close()
	if err != nil {
		return err
	}
	closedAt := at.UTC()
	c.status = next
	c.businessDate = businessDate
	c.closedAt = &closedAt
	return nil
}

// Reopen returns a closed check to Open and clears closedAt.
func (c *Check) Reopen() error {
	next, err := c.status.Reopen()
	if err != nil {
		return err
	}
	c.status = next
	c.closedAt = nil
	return nil
}

// Cancel voids an open check that never sent anything to the kitchen.
func (c *Check) Cancel(at time.Time) error {
	if c.HasSentItems() {
		return errs.NewPreconditionFailedError("cancel check", "items were already sent; void them instead")
	}
	next, err := c.status.Void()
	if err != nil {
		return err
	}
	closedAt := at.UTC()
	c.status = next
	c.closedAt = &closedAt
	return nil
}

// CloseEmpty closes a check whose items were merged into another one.
func (c *Check) CloseEmpty(at time.Time) error {
	if len(c.ActiveItems()) > 0 {
		return errs.NewPreconditionFailedError("close merged check", "check still has items")
	}
	return c.Close(c.businessDate, at)
}

// Transfer reassigns the owning employee. No financial effect.
func (c *Check) Transfer(employeeID kernel.UUID) error {
	if err := c.EnsureOpen("transfer check"); err != nil {
		return err
	}
	return c.setEmployeeID(employeeID)
}

func (c *Check) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Check) setRvcID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("rvcId", err)
	}
	c.rvcID = id
	return nil
}

func (c *Check) setPropertyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("propertyId", err)
	}
	c.propertyID = id
	return nil
}

func (c *Check) setCheckNumber(n int) error {
	if n <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("checkNumber", fmt.Errorf("%d is not greater than 0", n))
	}
	c.checkNumber = n
	return nil
}

func (c *Check) setOrderType(t OrderType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.orderType = t
	return nil
}

func (c *Check) setEmployeeID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("employeeId", err)
	}
	c.employeeID = id
	return nil
}
