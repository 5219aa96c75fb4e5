// Package postgres provides the GORM implementation of the Unit of Work
// pattern for check commands. One unit of work spans every write of a
// command: sending a check adds a round, tickets and item updates; a split
// writes two checks; a merge writes N+1. Either all of them commit or none do.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	c, err := uow.CheckRepository().Get(ctx, checkID)
//	if err != nil {
//	    return err
//	}
//	// mutate, recompute totals
//	if err := uow.CheckRepository().Update(ctx, c); err != nil {
//	    return err // stale version or storage failure, nothing is written
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns one transaction; goroutines use separate instances
//   - Same-check writers are serialized by the version column on checks,
//     not by database locks
package postgres

import (
	"context"

	"checkcore/internal/adapters/out/postgres/checkrepo"
	"checkcore/internal/adapters/out/postgres/kitchenrepo"
	"checkcore/internal/adapters/out/postgres/lockrepo"
	"checkcore/internal/adapters/out/postgres/paymentrepo"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates written inside it.
//
// Repositories obtained before Begin run on the plain connection; repositories
// obtained after Begin run inside the transaction. Command handlers always
// call Begin first.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice does not nest transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction. It returns gorm.ErrInvalidTransaction
// when nothing was begun.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. After a successful Commit it returns
// gorm.ErrInvalidTransaction, which deferred rollbacks ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// CheckRepository returns a check repository bound to the current transaction.
//
// Example:
//
//	c, err := uow.CheckRepository().Get(ctx, checkID)
//	if err != nil {
//	    return err
//	}
//	if err := c.AssertVersion(expected); err != nil {
//	    return err
//	}
func (uow *GormUnitOfWork) CheckRepository() ports.CheckRepository {
	return checkrepo.NewGormCheckRepository(uow.conn(), uow)
}

// RoundRepository returns a round repository bound to the current transaction.
func (uow *GormUnitOfWork) RoundRepository() ports.RoundRepository {
	return kitchenrepo.NewGormRoundRepository(uow.conn(), uow)
}

// TicketRepository returns a ticket repository bound to the current transaction.
func (uow *GormUnitOfWork) TicketRepository() ports.TicketRepository {
	return kitchenrepo.NewGormTicketRepository(uow.conn(), uow)
}

// PaymentRepository returns a payment repository bound to the current transaction.
func (uow *GormUnitOfWork) PaymentRepository() ports.PaymentRepository {
	return paymentrepo.NewGormPaymentRepository(uow.conn(), uow)
}

// CheckLockRepository returns a lease repository bound to the current transaction.
func (uow *GormUnitOfWork) CheckLockRepository() ports.CheckLockRepository {
	return lockrepo.NewGormCheckLockRepository(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after every successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedCount reports how many aggregate writes the unit of work has seen.
func (uow *GormUnitOfWork) TrackedCount() int {
	return len(uow.trackedAggregates)
}
