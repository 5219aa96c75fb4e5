// Package commands contains the operations that change checks, kitchen
// tickets, payments and check locks. Every command is a validated value
// object with a handler; each handler runs inside one unit of work, checks the
// optimistic version token, recomputes totals as the last money step and only
// after commit performs best-effort audit, stock and notification calls.
package commands

import (
	"context"

	"checkcore/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// CheckRepoFactory provides access to the check repository within a transaction.
	CheckRepoFactory interface {
		CheckRepository() ports.CheckRepository
	}

	// KitchenRepoFactory provides access to round and ticket repositories within a transaction.
	KitchenRepoFactory interface {
		RoundRepository() ports.RoundRepository
		TicketRepository() ports.TicketRepository
	}

	// PaymentRepoFactory provides access to the payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// CheckLockRepoFactory provides access to the lease repository within a transaction.
	CheckLockRepoFactory interface {
		CheckLockRepository() ports.CheckLockRepository
	}

	// UoW spans everything a check command may write: the check, its rounds,
	// tickets and payments.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   c, err := uow.CheckRepository().Get(ctx, checkID)
	//   // ... mutate, recompute totals
	//   err = uow.CheckRepository().Update(ctx, c)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		CheckRepoFactory
		KitchenRepoFactory
		PaymentRepoFactory
	}

	// UoWFactory creates new unit of work instances for check commands.
	UoWFactory interface {
		Create() UoW
	}

	// KitchenUoW manages transactions for ticket-only operations such as a KDS bump.
	KitchenUoW interface {
		TxManager
		KitchenRepoFactory
	}

	// KitchenUoWFactory creates new kitchen unit of work instances.
	KitchenUoWFactory interface {
		Create() KitchenUoW
	}

	// CheckLockUoW manages transactions for lease operations.
	CheckLockUoW interface {
		TxManager
		CheckLockRepoFactory
	}

	// CheckLockUoWFactory creates new check lock unit of work instances.
	CheckLockUoWFactory interface {
		Create() CheckLockUoW
	}
)
