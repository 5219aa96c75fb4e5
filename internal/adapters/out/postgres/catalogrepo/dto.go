// Package catalogrepo reads the configuration a check consults while it is
// being rung: revenue centers, KDS routes, menu items, tax groups and
// discount definitions. It also keeps countdown stock per property.
// Administration of these tables happens elsewhere.
package catalogrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RevenueCenterDTO carries the Dynamic Order Mode policy and the current
// business date of a revenue center.
type RevenueCenterDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	PropertyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(255);not null"`
	DomEnabled   bool      `gorm:"not null"`
	DomSendMode  string    `gorm:"type:varchar(16)"`
	BusinessDate string    `gorm:"type:varchar(10)"`
}

func (RevenueCenterDTO) TableName() string {
	return "revenue_centers"
}

// KdsRouteDTO sends a menu item to a station. A NULL RvcID makes the route
// the property-wide default.
type KdsRouteDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MenuItemID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	PropertyID    uuid.UUID  `gorm:"type:uuid;not null"`
	RvcID         *uuid.UUID `gorm:"type:uuid"`
	KdsDeviceID   uuid.UUID  `gorm:"type:uuid;not null"`
	StationType   string     `gorm:"type:varchar(32)"`
	OrderDeviceID *uuid.UUID `gorm:"type:uuid"`
	Active        bool       `gorm:"not null;default:true"`
}

func (KdsRouteDTO) TableName() string {
	return "kds_routes"
}

type MenuItemDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name       string          `gorm:"type:varchar(255);not null"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TaxGroupID *uuid.UUID      `gorm:"type:uuid"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

type TaxGroupDTO struct {
	ID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name string          `gorm:"type:varchar(255);not null"`
	Mode string          `gorm:"type:varchar(16);not null"`
	Rate decimal.Decimal `gorm:"type:numeric(9,6);not null"`
}

func (TaxGroupDTO) TableName() string {
	return "tax_groups"
}

// ItemAvailabilityDTO is the countdown of a menu item at a property. Items
// without a row are not tracked.
type ItemAvailabilityDTO struct {
	MenuItemID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	PropertyID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	AvailableCount int       `gorm:"not null"`
}

func (ItemAvailabilityDTO) TableName() string {
	return "item_availability"
}

type DiscountDefinitionDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string    `gorm:"type:varchar(255);not null"`
	RequiresApproval bool      `gorm:"not null"`
	Active           bool      `gorm:"not null;default:true"`
}

func (DiscountDefinitionDTO) TableName() string {
	return "discount_definitions"
}
