package ports

import (
	"context"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/kitchen"
)

// RoundRepository stores rounds. Rounds are immutable and never deleted, so
// counting them yields the last round number of a check.
type RoundRepository interface {
	Add(ctx context.Context, round *kitchen.Round) error
	CountByCheck(ctx context.Context, checkID kernel.UUID) (int, error)
	ListByCheck(ctx context.Context, checkID kernel.UUID) ([]*kitchen.Round, error)
}

// TicketRepository stores KDS tickets together with their items.
type TicketRepository interface {
	Add(ctx context.Context, ticket *kitchen.Ticket) error
	Update(ctx context.Context, ticket *kitchen.Ticket) error
	Get(ctx context.Context, id kernel.UUID) (*kitchen.Ticket, error)

	// GetPreviewForCheck returns the preview ticket of a check or errs.ErrObjectNotFound.
	GetPreviewForCheck(ctx context.Context, checkID kernel.UUID) (*kitchen.Ticket, error)

	// ListByCheck returns every ticket of a check in creation order.
	ListByCheck(ctx context.Context, checkID kernel.UUID) ([]*kitchen.Ticket, error)
}
