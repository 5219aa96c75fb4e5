// Package ports defines the contracts between the check core and its
// infrastructure: storage bound to a unit of work, catalog lookups, routing,
// manager authorization, audit and event notification.
package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of one command. Send, split and
// merge touch several aggregates; either all of their writes commit or none do.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// CheckRepository returns a CheckRepository bound to the current transaction.
	CheckRepository() CheckRepository

	// RoundRepository returns a RoundRepository bound to the current transaction.
	RoundRepository() RoundRepository

	// TicketRepository returns a TicketRepository bound to the current transaction.
	TicketRepository() TicketRepository

	// PaymentRepository returns a PaymentRepository bound to the current transaction.
	PaymentRepository() PaymentRepository

	// CheckLockRepository returns a CheckLockRepository bound to the current transaction.
	CheckLockRepository() CheckLockRepository
}
