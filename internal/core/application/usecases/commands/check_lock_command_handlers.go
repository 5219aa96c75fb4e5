package commands

import (
	"context"
	"errors"

	"checkcore/internal/core/domain/model/checklock"
	"checkcore/internal/pkg/errs"

	"go.uber.org/zap"
)

// AcquireCheckLockCommandHandler grants a lease unless another workstation
// holds an unexpired one.
type AcquireCheckLockCommandHandler struct {
	uowFactory CheckLockUoWFactory
	deps       Collaborators
}

func NewAcquireCheckLockCommandHandler(uowFactory CheckLockUoWFactory, deps Collaborators) AcquireCheckLockCommandHandler {
	return AcquireCheckLockCommandHandler{
		uowFactory: uowFactory,
		deps:       deps,
	}
}

func (h AcquireCheckLockCommandHandler) Handle(ctx context.Context, cmd AcquireCheckLockCommand) (*checklock.Lease, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	locks := uow.CheckLockRepository()
	current, err := locks.Get(ctx, cmd.CheckID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	now := h.deps.now()
	next, err := checklock.NewLease(cmd.CheckID(), cmd.WorkstationID(), cmd.EmployeeID(), now, cmd.TTL())
	if err != nil {
		return nil, err
	}
	if err = current.Supersede(next, now); err != nil {
		return nil, err
	}
	if err = locks.Save(ctx, next); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return next, nil
}

// ReleaseCheckLockCommandHandler deletes a lease held by the caller. Releasing
// a lease that is already gone succeeds.
type ReleaseCheckLockCommandHandler struct {
	uowFactory CheckLockUoWFactory
}

func NewReleaseCheckLockCommandHandler(uowFactory CheckLockUoWFactory) ReleaseCheckLockCommandHandler {
	return ReleaseCheckLockCommandHandler{uowFactory: uowFactory}
}

func (h ReleaseCheckLockCommandHandler) Handle(ctx context.Context, cmd ReleaseCheckLockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	locks := uow.CheckLockRepository()
	current, err := locks.Get(ctx, cmd.CheckID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err = current.EnsureHeldBy(cmd.WorkstationID()); err != nil {
		return err
	}
	if err = locks.Delete(ctx, cmd.CheckID()); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

// PurgeExpiredCheckLocksCommandHandler removes every expired lease.
type PurgeExpiredCheckLocksCommandHandler struct {
	uowFactory CheckLockUoWFactory
	deps       Collaborators
}

func NewPurgeExpiredCheckLocksCommandHandler(
	uowFactory CheckLockUoWFactory,
	deps Collaborators,
) PurgeExpiredCheckLocksCommandHandler {
	return PurgeExpiredCheckLocksCommandHandler{
		uowFactory: uowFactory,
		deps:       deps,
	}
}

// Handle returns the number of leases removed.
func (h PurgeExpiredCheckLocksCommandHandler) Handle(ctx context.Context, _ PurgeExpiredCheckLocksCommand) (int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.CheckLockRepository().DeleteExpired(ctx, h.deps.now())
	if err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	if removed > 0 {
		h.deps.logger().Debug("expired check locks purged", zap.Int64("count", removed))
	}
	return removed, nil
}
