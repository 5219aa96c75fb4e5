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

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// ItemStatus tracks kitchen visibility of an item.
type ItemStatus string

const (
	// ItemPending items are rung but not yet part of a round.
	ItemPending ItemStatus = "pending"

	// ItemActive items were sent to the kitchen.
	ItemActive ItemStatus = "active"
)

func (s ItemStatus) Validate() error {
	if s != ItemPending && s != ItemActive {
		return errs.NewValueIsInvalidErrorWithCause("itemStatus", fmt.Errorf("%q is not a known item status", string(s)))
	}
	return nil
}

// Item is a line on a check.
//
// Invariants:
//   - once sent, an item is never unsent
//   - voided items stay on the check for audit and are excluded from totals
//   - the tax snapshot treatment is frozen at ring-in; only its amounts follow
//     changes to this item's own price, quantity or modifiers
//   - a nil snapshot marks a legacy item whose tax is looked up live
type Item struct {
	id             kernel.UUID
	menuItemID     *kernel.UUID
	name           string
	unitPrice      decimal.Decimal
	quantity       decimal.Decimal
	modifiers      []Modifier
	sent           bool
	voided         bool
	voidReason     string
	status         ItemStatus
	roundID        *kernel.UUID
	discountID     *kernel.UUID
	discountAmount decimal.Decimal
	taxSnapshot    *TaxSnapshot
	linkedEntity   *LinkedEntityRef
	addedAt        time.Time
	guard          guard.ConstructorGuard
}

// NewItem rings a new, unsent item. The snapshot must have been computed for
// exactly this price, modifier set and quantity.
func NewItem(
	id kernel.UUID,
	menuItemID *kernel.UUID,
	name string,
	unitPrice decimal.Decimal,
	quantity decimal.Decimal,
	modifiers []Modifier,
	snapshot TaxSnapshot,
	linkedEntity *LinkedEntityRef,
	addedAt time.Time,
) (*Item, error) {
	item := &Item{
		status:         ItemPending,
		discountAmount: decimal.Zero,
		addedAt:        addedAt.UTC(),
		linkedEntity:   linkedEntity,
		menuItemID:     menuItemID,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
		snapshot.Validate(),
	); err != nil {
		return nil, err
	}
	item.modifiers = append([]Modifier(nil), modifiers...)
	item.taxSnapshot = &snapshot

	return item, nil
}

// ItemState carries every persisted field of an Item for RestoreItem.
type ItemState struct {
	ID             kernel.UUID
	MenuItemID     *kernel.UUID
	Name           string
	UnitPrice      decimal.Decimal
	Quantity       decimal.Decimal
	Modifiers      []Modifier
	Sent           bool
	Voided         bool
	VoidReason     string
	Status         ItemStatus
	RoundID        *kernel.UUID
	DiscountID     *kernel.UUID
	DiscountAmount decimal.Decimal
	TaxSnapshot    *TaxSnapshot
	LinkedEntity   *LinkedEntityRef
	AddedAt        time.Time
}

// RestoreItem rehydrates an item from storage, including legacy items without a snapshot.
func RestoreItem(state ItemState) (*Item, error) {
	item := &Item{
		menuItemID:     state.MenuItemID,
		modifiers:      append([]Modifier(nil), state.Modifiers...),
		sent:           state.Sent,
		voided:         state.Voided,
		voidReason:     state.VoidReason,
		status:         state.Status,
		roundID:        state.RoundID,
		discountID:     state.DiscountID,
		discountAmount: state.DiscountAmount,
		taxSnapshot:    state.TaxSnapshot,
		linkedEntity:   state.LinkedEntity,
		addedAt:        state.AddedAt.UTC(),
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(state.ID),
		item.setName(state.Name),
		item.setUnitPrice(state.UnitPrice),
		item.setQuantity(state.Quantity),
		state.Status.Validate(),
	); err != nil {
		return nil, err
	}
	if state.Sent && state.RoundID == nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("roundId", errors.New("sent items belong to a round"))
	}

	return item, nil
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) MenuItemID() *kernel.UUID {
	if i.menuItemID == nil {
		return nil
	}
	id := *i.menuItemID
	return &id
}

func (i *Item) Name() string {
	return i.name
}

func (i *Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

func (i *Item) Quantity() decimal.Decimal {
	return i.quantity
}

func (i *Item) Modifiers() []Modifier {
	out := make([]Modifier, len(i.modifiers))
	copy(out, i.modifiers)
	return out
}

func (i *Item) IsSent() bool {
	return i.sent
}

func (i *Item) IsVoided() bool {
	return i.voided
}

func (i *Item) VoidReason() string {
	return i.voidReason
}

func (i *Item) Status() ItemStatus {
	return i.status
}

func (i *Item) RoundID() *kernel.UUID {
	if i.roundID == nil {
		return nil
	}
	id := *i.roundID
	return &id
}

func (i *Item) DiscountID() *kernel.UUID {
	if i.discountID == nil {
		return nil
	}
	id := *i.discountID
	return &id
}

func (i *Item) DiscountAmount() decimal.Decimal {
	return i.discountAmount
}

// TaxSnapshot returns nil for legacy items.
func (i *Item) TaxSnapshot() *TaxSnapshot {
	if i.taxSnapshot == nil {
		return nil
	}
	s := *i.taxSnapshot
	return &s
}

func (i *Item) IsLegacy() bool {
	return i.taxSnapshot == nil
}

func (i *Item) LinkedEntity() *LinkedEntityRef {
	if i.linkedEntity == nil {
		return nil
	}
	ref := *i.linkedEntity
	return &ref
}

func (i *Item) AddedAt() time.Time {
	return i.addedAt
}

// IsActive reports whether the item counts toward totals.
func (i *Item) IsActive() bool {
	return !i.voided
}

// GrossAmount is the pre-discount, pre-tax value of the line: the snapshot's
// taxable amount, or price x quantity for legacy items.
func (i *Item) GrossAmount() decimal.Decimal {
	if i.taxSnapshot != nil {
		return i.taxSnapshot.TaxableAmount()
	}
	perUnit := i.unitPrice
	for _, m := range i.modifiers {
		perUnit = perUnit.Add(m.priceDelta)
	}
	return kernel.RoundMoney(perUnit.Mul(i.quantity))
}

func (i *Item) ensureEditable(operation string) error {
	if i.voided {
		return errs.NewPreconditionFailedError(operation, "item "+i.id.String()+" is voided")
	}
	return nil
}

func (i *Item) ensureUnsent(operation string) error {
	if err := i.ensureEditable(operation); err != nil {
		return err
	}
	if i.sent {
		return errs.NewPreconditionFailedError(operation, "item "+i.id.String()+" was already sent to the kitchen")
	}
	return nil
}

// reprice re-derives snapshot amounts after this item's price, quantity or modifiers changed.
func (i *Item) reprice(unitPrice, quantity decimal.Decimal, modifiers []Modifier) error {
	taxable, err := TaxableAmount(unitPrice, modifiers, quantity)
	if err != nil {
		return err
	}
	if i.discountAmount.GreaterThan(taxable) {
		return errs.NewPreconditionFailedError("reprice item", "existing discount exceeds the new item amount")
	}
	if i.taxSnapshot != nil {
		next, snapErr := i.taxSnapshot.WithTaxableAmount(taxable)
		if snapErr != nil {
			return snapErr
		}
		i.taxSnapshot = &next
	}
	i.unitPrice = unitPrice
	i.quantity = quantity
	i.modifiers = append([]Modifier(nil), modifiers...)
	return nil
}

func (i *Item) changeQuantity(quantity decimal.Decimal) error {
	if err := i.ensureUnsent("change quantity"); err != nil {
		return err
	}
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	return i.reprice(i.unitPrice, kernel.RoundQuantity(quantity), i.modifiers)
}

func (i *Item) changeModifiers(modifiers []Modifier) error {
	if err := i.ensureUnsent("change modifiers"); err != nil {
		return err
	}
	return i.reprice(i.unitPrice, i.quantity, modifiers)
}

func (i *Item) overridePrice(unitPrice decimal.Decimal) error {
	if err := i.ensureEditable("override price"); err != nil {
		return err
	}
	if err := kernel.ValidateNonNegativeMoney("unitPrice", unitPrice); err != nil {
		return err
	}
	return i.reprice(kernel.RoundMoney(unitPrice), i.quantity, i.modifiers)
}

func (i *Item) applyDiscount(discountID kernel.UUID, amount decimal.Decimal) error {
	if err := i.ensureEditable("apply item discount"); err != nil {
		return err
	}
	if err := discountID.Validate(); err != nil {
		return err
	}
	if err := kernel.ValidatePositiveMoney("discountAmount", amount); err != nil {
		return err
	}
	if i.discountID != nil {
		return errs.NewPreconditionFailedError("apply item discount", "item already carries a discount")
	}
	amount = kernel.RoundMoney(amount)
	if amount.GreaterThan(i.GrossAmount()) {
		return errs.NewValueIsOutOfRangeError("discountAmount", amount.String(), "0.01", i.GrossAmount().String())
	}
	i.discountID = &discountID
	i.discountAmount = amount
	return nil
}

func (i *Item) markSent(roundID kernel.UUID) error {
	if err := i.ensureUnsent("send item"); err != nil {
		return err
	}
	if err := roundID.Validate(); err != nil {
		return err
	}
	i.sent = true
	i.roundID = &roundID
	i.status = ItemActive
	return nil
}

func (i *Item) void(reason string) error {
	if i.voided {
		return errs.NewPreconditionFailedError("void item", "item "+i.id.String()+" is already voided")
	}
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("voidReason")
	}
	i.voided = true
	i.voidReason = reason
	return nil
}

// share carves ratio of this item into a new item with newID. Quantity,
// taxable amount, tax and discount are partitioned so the two parts add back
// up to the original exactly; both snapshots keep the frozen treatment.
func (i *Item) share(newID kernel.UUID, ratio decimal.Decimal) (*Item, error) {
	if err := i.ensureEditable("share item"); err != nil {
		return nil, err
	}
	if !ratio.IsPositive() || !ratio.LessThan(decimal.NewFromInt(1)) {
		return nil, errs.NewValueIsOutOfRangeError("ratio", ratio.String(), "0 (exclusive)", "1 (exclusive)")
	}

	shareQty := kernel.RoundQuantity(i.quantity.Mul(ratio))
	keepQty := i.quantity.Sub(shareQty)
	if !shareQty.IsPositive() || !keepQty.IsPositive() {
		return nil, errs.NewValueIsOutOfRangeError("ratio", ratio.String(), "a share of at least 0.0001", "the full quantity")
	}

	shareDiscount := kernel.RoundMoney(i.discountAmount.Mul(ratio))
	keepDiscount := i.discountAmount.Sub(shareDiscount)

	shared := &Item{
		id:             newID,
		menuItemID:     i.MenuItemID(),
		name:           i.name,
		unitPrice:      i.unitPrice,
		quantity:       shareQty,
		modifiers:      i.Modifiers(),
		sent:           i.sent,
		status:         i.status,
		roundID:        i.RoundID(),
		discountAmount: shareDiscount,
		addedAt:        i.addedAt,
		guard:          guard.NewConstructorGuard(),
	}
	if err := newID.Validate(); err != nil {
		return nil, err
	}
	if i.discountID != nil && shareDiscount.IsPositive() {
		shared.discountID = i.DiscountID()
	}

	if i.taxSnapshot != nil {
		sharedSnapshot, keptSnapshot, err := i.taxSnapshot.Partition(ratio)
		if err != nil {
			return nil, err
		}
		shared.taxSnapshot = &sharedSnapshot
		i.taxSnapshot = &keptSnapshot
	}

	i.quantity = keepQty
	i.discountAmount = keepDiscount
	if keepDiscount.IsZero() {
		i.discountID = nil
	}
	return shared, nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Item) setUnitPrice(price decimal.Decimal) error {
	if err := kernel.ValidateNonNegativeMoney("unitPrice", price); err != nil {
		return err
	}
	i.unitPrice = kernel.RoundMoney(price)
	return nil
}

func (i *Item) setQuantity(quantity decimal.Decimal) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	i.quantity = kernel.RoundQuantity(quantity)
	return nil
}

func validateQuantity(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%s is not greater than 0", quantity.String()))
	}
	return nil
}
