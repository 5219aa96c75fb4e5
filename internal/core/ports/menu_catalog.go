package ports

import (
	"context"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
)

// MenuCatalog reads menu tax configuration.
type MenuCatalog interface {
	// TaxGroupForMenuItem returns the current tax group of a menu item, nil when it has none.
	TaxGroupForMenuItem(ctx context.Context, menuItemID kernel.UUID) (*check.TaxGroup, error)
}

// ItemAvailability tracks countdown stock of menu items in whole units.
// Callers treat its failures as non-fatal.
type ItemAvailability interface {
	Decrement(ctx context.Context, menuItemID, propertyID kernel.UUID, quantity int) error
	Restore(ctx context.Context, menuItemID, propertyID kernel.UUID, quantity int) error
}

// BusinessDateProvider returns the current business date of a revenue center.
// Rollover time and timezone are configured outside this service.
type BusinessDateProvider interface {
	CurrentBusinessDate(ctx context.Context, rvcID kernel.UUID) (kernel.BusinessDate, error)
}
