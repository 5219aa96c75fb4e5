package ports

import (
	"context"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
)

// CheckRepository persists check aggregates with their items and discounts.
type CheckRepository interface {
	// Add persists a new check at version 0.
	Add(ctx context.Context, aggregate *check.Check) error

	// Update writes the check only if the stored version still equals
	// aggregate.Version(), then advances the aggregate's version by one.
	// A stale aggregate yields errs.ErrVersionConflict and nothing is written.
	Update(ctx context.Context, aggregate *check.Check) error

	// Get loads a check with all items, voided ones included.
	Get(ctx context.Context, id kernel.UUID) (*check.Check, error)

	// NextCheckNumber returns the next sequential check number of a revenue center.
	NextCheckNumber(ctx context.Context, rvcID kernel.UUID) (int, error)
}
