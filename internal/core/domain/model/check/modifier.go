package check

import (
	"errors"
	"fmt"
	"strings"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Modifier is a priced option attached to an item ("extra cheese", "no onion").
// Deltas may be negative; the item's unit price plus all deltas may not.
type Modifier struct {
	name       string
	priceDelta decimal.Decimal
}

func NewModifier(name string, priceDelta decimal.Decimal) (Modifier, error) {
	if strings.TrimSpace(name) == "" {
		return Modifier{}, errs.NewValueIsRequiredError("modifier name")
	}
	return Modifier{name: name, priceDelta: kernel.RoundMoney(priceDelta)}, nil
}

func (m Modifier) Name() string {
	return m.name
}

func (m Modifier) PriceDelta() decimal.Decimal {
	return m.priceDelta
}

// LinkedEntityKind names the subsystem an item is bound to.
type LinkedEntityKind string

const (
	LinkedGiftCard      LinkedEntityKind = "gift_card"
	LinkedLoyaltyReward LinkedEntityKind = "loyalty_reward"
	LinkedReservation   LinkedEntityKind = "reservation"
)

// LinkedEntityRef binds an item to an external record, for example a gift card
// being sold or a loyalty reward being redeemed. It is an explicit, typed field;
// modifiers never carry linkage data.
type LinkedEntityRef struct {
	kind LinkedEntityKind
	id   kernel.UUID
}

func NewLinkedEntityRef(kind LinkedEntityKind, id kernel.UUID) (LinkedEntityRef, error) {
	if strings.TrimSpace(string(kind)) == "" {
		return LinkedEntityRef{}, errs.NewValueIsRequiredError("linkedEntityRef.kind")
	}
	if err := id.Validate(); err != nil {
		return LinkedEntityRef{}, errs.NewValueIsInvalidErrorWithCause("linkedEntityRef.id", err)
	}
	return LinkedEntityRef{kind: kind, id: id}, nil
}

func (r LinkedEntityRef) Kind() LinkedEntityKind {
	return r.kind
}

func (r LinkedEntityRef) ID() kernel.UUID {
	return r.id
}

// TaxableAmount is (unitPrice + sum of modifier deltas) x quantity, rounded to cents.
func TaxableAmount(unitPrice decimal.Decimal, modifiers []Modifier, quantity decimal.Decimal) (decimal.Decimal, error) {
	perUnit := unitPrice
	for _, m := range modifiers {
		perUnit = perUnit.Add(m.priceDelta)
	}
	if perUnit.IsNegative() {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause(
			"modifiers", fmt.Errorf("modifiers reduce the unit price below zero (%s)", perUnit.String()))
	}
	if !quantity.IsPositive() {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause(
			"quantity", errors.New("quantity must be greater than 0"))
	}
	return kernel.RoundMoney(perUnit.Mul(quantity)), nil
}
