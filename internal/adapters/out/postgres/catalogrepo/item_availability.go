package catalogrepo

import (
	"context"

	"checkcore/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormItemAvailability implements ports.ItemAvailability. Counts never drop
// below zero; untracked items are left alone.
type GormItemAvailability struct {
	db *gorm.DB
}

func NewGormItemAvailability(db *gorm.DB) *GormItemAvailability {
	return &GormItemAvailability{db: db}
}

func (a *GormItemAvailability) Decrement(ctx context.Context, menuItemID, propertyID kernel.UUID, quantity int) error {
	return a.db.WithContext(ctx).
		Model(&ItemAvailabilityDTO{}).
		Where("menu_item_id = ? AND property_id = ?", menuItemID.Bytes(), propertyID.Bytes()).
		Update("available_count", gorm.Expr(
			"CASE WHEN available_count > ? THEN available_count - ? ELSE 0 END", quantity, quantity)).
		Error
}

func (a *GormItemAvailability) Restore(ctx context.Context, menuItemID, propertyID kernel.UUID, quantity int) error {
	return a.db.WithContext(ctx).
		Model(&ItemAvailabilityDTO{}).
		Where("menu_item_id = ? AND property_id = ?", menuItemID.Bytes(), propertyID.Bytes()).
		Update("available_count", gorm.Expr("available_count + ?", quantity)).
		Error
}
