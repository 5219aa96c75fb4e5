package ports

import (
	"context"
	"time"

	"checkcore/internal/core/domain/model/checklock"
	"checkcore/internal/core/domain/model/kernel"
)

// CheckLockRepository stores advisory check leases, at most one per check.
type CheckLockRepository interface {
	// Get returns the lease on a check or errs.ErrObjectNotFound.
	Get(ctx context.Context, checkID kernel.UUID) (*checklock.Lease, error)

	// Save inserts or replaces the lease of lease.CheckID().
	Save(ctx context.Context, lease *checklock.Lease) error

	Delete(ctx context.Context, checkID kernel.UUID) error

	// DeleteExpired removes leases that expired before now and returns how many.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
