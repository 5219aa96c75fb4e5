// Package checkrepo maps check aggregates, their items and check-level
// discounts to relational tables.
package checkrepo

import (
	"time"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckDTO is the header row of a check. Version is the optimistic
// concurrency token compared on every update.
type CheckDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RvcID              uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_checks_rvc_number,priority:1"`
	PropertyID         uuid.UUID       `gorm:"type:uuid;not null"`
	CheckNumber        int             `gorm:"not null;uniqueIndex:idx_checks_rvc_number,priority:2"`
	Status             int             `gorm:"type:smallint;not null;index"`
	OrderType          string          `gorm:"type:varchar(16);not null"`
	OriginBusinessDate string          `gorm:"type:varchar(10);not null"`
	BusinessDate       string          `gorm:"type:varchar(10);not null;index"`
	Subtotal           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DiscountTotal      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TaxTotal           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total              decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	GuestCount         int             `gorm:"not null"`
	TableNumber        string          `gorm:"type:varchar(32)"`
	EmployeeID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID         *uuid.UUID      `gorm:"type:uuid"`
	OpenedAt           time.Time       `gorm:"not null"`
	ClosedAt           *time.Time
	Version            int           `gorm:"not null;default:0"`
	Items              []ItemDTO     `gorm:"foreignKey:CheckID"`
	Discounts          []DiscountDTO `gorm:"foreignKey:CheckID"`
}

func (CheckDTO) TableName() string {
	return "checks"
}

// ItemDTO is one check item. Voided items are kept. The tax_*_at_sale
// columns hold the frozen snapshot and are all NULL for legacy items.
type ItemDTO struct {
	ID               uuid.UUID           `gorm:"type:uuid;primaryKey"`
	CheckID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	MenuItemID       *uuid.UUID          `gorm:"type:uuid"`
	Name             string              `gorm:"type:varchar(255);not null"`
	UnitPrice        decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	Quantity         decimal.Decimal     `gorm:"type:numeric(12,4);not null"`
	Modifiers        []ModifierDTO       `gorm:"serializer:json"`
	Sent             bool                `gorm:"not null"`
	Voided           bool                `gorm:"not null"`
	VoidReason       string              `gorm:"type:varchar(255)"`
	Status           string              `gorm:"type:varchar(16);not null"`
	RoundID          *uuid.UUID          `gorm:"type:uuid;index"`
	DiscountID       *uuid.UUID          `gorm:"type:uuid"`
	DiscountAmount   decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	TaxGroupIDAtSale *uuid.UUID          `gorm:"type:uuid"`
	TaxModeAtSale    *string             `gorm:"type:varchar(16)"`
	TaxRateAtSale    decimal.NullDecimal `gorm:"type:numeric(9,6)"`
	TaxableAmount    decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	TaxAmount        decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	LinkedEntityKind *string             `gorm:"type:varchar(32)"`
	LinkedEntityID   *uuid.UUID          `gorm:"type:uuid"`
	AddedAt          time.Time           `gorm:"not null"`
}

func (ItemDTO) TableName() string {
	return "check_items"
}

// ModifierDTO is stored as a JSON array on the item row.
type ModifierDTO struct {
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"priceDelta"`
}

// DiscountDTO is a check-level discount.
type DiscountDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CheckID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	DiscountID        uuid.UUID       `gorm:"type:uuid;not null"`
	Amount            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	EmployeeID        uuid.UUID       `gorm:"type:uuid;not null"`
	ManagerApprovalID *uuid.UUID      `gorm:"type:uuid"`
	AppliedAt         time.Time       `gorm:"not null"`
}

func (DiscountDTO) TableName() string {
	return "check_discounts"
}

func fromDomain(c *check.Check) CheckDTO {
	checkID := c.ID().Bytes()

	items := make([]ItemDTO, 0, len(c.Items()))
	for _, item := range c.Items() {
		items = append(items, itemFromDomain(checkID, item))
	}

	discounts := make([]DiscountDTO, 0, len(c.Discounts()))
	for _, d := range c.Discounts() {
		discounts = append(discounts, DiscountDTO{
			ID:                d.ID().Bytes(),
			CheckID:           checkID,
			DiscountID:        d.DiscountID().Bytes(),
			Amount:            d.Amount(),
			EmployeeID:        d.EmployeeID().Bytes(),
			ManagerApprovalID: kernel.OptionalBytes(d.ManagerApprovalID()),
			AppliedAt:         d.AppliedAt(),
		})
	}

	return CheckDTO{
		ID:                 checkID,
		RvcID:              c.RvcID().Bytes(),
		PropertyID:         c.PropertyID().Bytes(),
		CheckNumber:        c.CheckNumber(),
		Status:             int(c.Status()),
		OrderType:          string(c.OrderType()),
		OriginBusinessDate: c.OriginBusinessDate().String(),
		BusinessDate:       c.BusinessDate().String(),
		Subtotal:           c.Subtotal(),
		DiscountTotal:      c.DiscountTotal(),
		TaxTotal:           c.TaxTotal(),
		Total:              c.Total(),
		GuestCount:         c.GuestCount(),
		TableNumber:        c.TableNumber(),
		EmployeeID:         c.EmployeeID().Bytes(),
		CustomerID:         kernel.OptionalBytes(c.CustomerID()),
		OpenedAt:           c.OpenedAt(),
		ClosedAt:           c.ClosedAt(),
		Version:            c.Version(),
		Items:              items,
		Discounts:          discounts,
	}
}

func itemFromDomain(checkID uuid.UUID, item *check.Item) ItemDTO {
	modifiers := make([]ModifierDTO, 0, len(item.Modifiers()))
	for _, m := range item.Modifiers() {
		modifiers = append(modifiers, ModifierDTO{Name: m.Name(), PriceDelta: m.PriceDelta()})
	}

	dto := ItemDTO{
		ID:             item.ID().Bytes(),
		CheckID:        checkID,
		MenuItemID:     kernel.OptionalBytes(item.MenuItemID()),
		Name:           item.Name(),
		UnitPrice:      item.UnitPrice(),
		Quantity:       item.Quantity(),
		Modifiers:      modifiers,
		Sent:           item.IsSent(),
		Voided:         item.IsVoided(),
		VoidReason:     item.VoidReason(),
		Status:         string(item.Status()),
		RoundID:        kernel.OptionalBytes(item.RoundID()),
		DiscountID:     kernel.OptionalBytes(item.DiscountID()),
		DiscountAmount: item.DiscountAmount(),
		AddedAt:        item.AddedAt(),
	}

	if s := item.TaxSnapshot(); s != nil {
		mode := string(s.Mode())
		dto.TaxGroupIDAtSale = kernel.OptionalBytes(s.TaxGroupID())
		dto.TaxModeAtSale = &mode
		dto.TaxRateAtSale = decimal.NewNullDecimal(s.Rate())
		dto.TaxableAmount = decimal.NewNullDecimal(s.TaxableAmount())
		dto.TaxAmount = decimal.NewNullDecimal(s.TaxAmount())
	}

	if ref := item.LinkedEntity(); ref != nil {
		kind := string(ref.Kind())
		id := ref.ID().Bytes()
		dto.LinkedEntityKind = &kind
		dto.LinkedEntityID = &id
	}

	return dto
}

func toDomain(dto CheckDTO) (*check.Check, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	rvcID, err := kernel.UUIDFromBytes(dto.RvcID[:])
	if err != nil {
		return nil, err
	}
	propertyID, err := kernel.UUIDFromBytes(dto.PropertyID[:])
	if err != nil {
		return nil, err
	}
	employeeID, err := kernel.UUIDFromBytes(dto.EmployeeID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.OptionalUUIDFromBytes(dto.CustomerID)
	if err != nil {
		return nil, err
	}

	items := make([]*check.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	discounts := make([]*check.Discount, 0, len(dto.Discounts))
	for _, discountDTO := range dto.Discounts {
		d, discountErr := discountToDomain(discountDTO)
		if discountErr != nil {
			return nil, discountErr
		}
		discounts = append(discounts, d)
	}

	var closedAt *time.Time
	if dto.ClosedAt != nil {
		at := dto.ClosedAt.UTC()
		closedAt = &at
	}

	return check.RestoreCheck(check.CheckState{
		ID:                 id,
		RvcID:              rvcID,
		PropertyID:         propertyID,
		CheckNumber:        dto.CheckNumber,
		Status:             check.Status(dto.Status),
		OrderType:          check.OrderType(dto.OrderType),
		OriginBusinessDate: kernel.BusinessDate(dto.OriginBusinessDate),
		BusinessDate:       kernel.BusinessDate(dto.BusinessDate),
		Subtotal:           kernel.RoundMoney(dto.Subtotal),
		DiscountTotal:      kernel.RoundMoney(dto.DiscountTotal),
		TaxTotal:           kernel.RoundMoney(dto.TaxTotal),
		Total:              kernel.RoundMoney(dto.Total),
		GuestCount:         dto.GuestCount,
		TableNumber:        dto.TableNumber,
		EmployeeID:         employeeID,
		CustomerID:         customerID,
		OpenedAt:           dto.OpenedAt,
		ClosedAt:           closedAt,
		Version:            dto.Version,
		Items:              items,
		Discounts:          discounts,
	})
}

func itemToDomain(dto ItemDTO) (*check.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	menuItemID, err := kernel.OptionalUUIDFromBytes(dto.MenuItemID)
	if err != nil {
		return nil, err
	}
	roundID, err := kernel.OptionalUUIDFromBytes(dto.RoundID)
	if err != nil {
		return nil, err
	}
	discountID, err := kernel.OptionalUUIDFromBytes(dto.DiscountID)
	if err != nil {
		return nil, err
	}

	modifiers := make([]check.Modifier, 0, len(dto.Modifiers))
	for _, m := range dto.Modifiers {
		modifier, modErr := check.NewModifier(m.Name, m.PriceDelta)
		if modErr != nil {
			return nil, modErr
		}
		modifiers = append(modifiers, modifier)
	}

	var snapshot *check.TaxSnapshot
	if dto.TaxModeAtSale != nil {
		taxGroupID, groupErr := kernel.OptionalUUIDFromBytes(dto.TaxGroupIDAtSale)
		if groupErr != nil {
			return nil, groupErr
		}
		restored, snapErr := check.RestoreTaxSnapshot(
			taxGroupID,
			check.TaxMode(*dto.TaxModeAtSale),
			kernel.RoundRate(dto.TaxRateAtSale.Decimal),
			kernel.RoundMoney(dto.TaxableAmount.Decimal),
			kernel.RoundMoney(dto.TaxAmount.Decimal),
		)
		if snapErr != nil {
			return nil, snapErr
		}
		snapshot = &restored
	}

	var linked *check.LinkedEntityRef
	if dto.LinkedEntityKind != nil && dto.LinkedEntityID != nil {
		refID, refErr := kernel.UUIDFromBytes(dto.LinkedEntityID[:])
		if refErr != nil {
			return nil, refErr
		}
		ref, refErr := check.NewLinkedEntityRef(check.LinkedEntityKind(*dto.LinkedEntityKind), refID)
		if refErr != nil {
			return nil, refErr
		}
		linked = &ref
	}

	return check.RestoreItem(check.ItemState{
		ID:             id,
		MenuItemID:     menuItemID,
		Name:           dto.Name,
		UnitPrice:      kernel.RoundMoney(dto.UnitPrice),
		Quantity:       kernel.RoundQuantity(dto.Quantity),
		Modifiers:      modifiers,
		Sent:           dto.Sent,
		Voided:         dto.Voided,
		VoidReason:     dto.VoidReason,
		Status:         check.ItemStatus(dto.Status),
		RoundID:        roundID,
		DiscountID:     discountID,
		DiscountAmount: kernel.RoundMoney(dto.DiscountAmount),
		TaxSnapshot:    snapshot,
		LinkedEntity:   linked,
		AddedAt:        dto.AddedAt,
	})
}

func discountToDomain(dto DiscountDTO) (*check.Discount, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	discountID, err := kernel.UUIDFromBytes(dto.DiscountID[:])
	if err != nil {
		return nil, err
	}
	employeeID, err := kernel.UUIDFromBytes(dto.EmployeeID[:])
	if err != nil {
		return nil, err
	}
	approvedBy, err := kernel.OptionalUUIDFromBytes(dto.ManagerApprovalID)
	if err != nil {
		return nil, err
	}
	return check.RestoreDiscount(id, discountID, kernel.RoundMoney(dto.Amount), employeeID, approvedBy, dto.AppliedAt)
}
