package ports

import (
	"context"

	"checkcore/internal/core/domain/model/kernel"
)

// DiscountDefinition is the configured discount a server applies.
type DiscountDefinition struct {
	ID               kernel.UUID
	Name             string
	RequiresApproval bool
}

type DiscountCatalog interface {
	Discount(ctx context.Context, id kernel.UUID) (DiscountDefinition, error)
}
