package commands

import (
	"errors"
	"strings"
	"time"

	"checkcore/internal/core/domain/model/checklock"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"
)

var (
	ErrAcquireCheckLockCommandIsNotConstructed = errors.New(
		"AcquireCheckLockCommand must be created via NewAcquireCheckLockCommand constructor",
	)
	ErrReleaseCheckLockCommandIsNotConstructed = errors.New(
		"ReleaseCheckLockCommand must be created via NewReleaseCheckLockCommand constructor",
	)
)

// DefaultLockTTL is used when a terminal does not ask for a lease duration.
const DefaultLockTTL = 5 * time.Minute

// AcquireCheckLockCommand takes or renews the advisory lease on a check.
type AcquireCheckLockCommand struct {
	checkID       kernel.UUID
	workstationID string
	employeeID    kernel.UUID
	ttl           time.Duration

	guard guard.ConstructorGuard
}

// NewAcquireCheckLockCommand accepts a zero ttl as DefaultLockTTL.
func NewAcquireCheckLockCommand(
	checkID kernel.UUID,
	workstationID string,
	employeeID kernel.UUID,
	ttl time.Duration,
) (AcquireCheckLockCommand, error) {
	if err := errors.Join(checkID.Validate(), employeeID.Validate()); err != nil {
		return AcquireCheckLockCommand{}, err
	}
	if strings.TrimSpace(workstationID) == "" {
		return AcquireCheckLockCommand{}, errs.NewValueIsRequiredError("workstationId")
	}
	if ttl == 0 {
		ttl = DefaultLockTTL
	}
	if ttl < 0 || ttl > checklock.MaxLeaseDuration {
		return AcquireCheckLockCommand{}, errs.NewValueIsOutOfRangeError(
			"ttl", ttl.String(), "1s", checklock.MaxLeaseDuration.String())
	}
	return AcquireCheckLockCommand{
		checkID:       checkID,
		workstationID: workstationID,
		employeeID:    employeeID,
		ttl:           ttl,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c AcquireCheckLockCommand) Validate() error {
	return c.guard.Validate(ErrAcquireCheckLockCommandIsNotConstructed)
}

func (c AcquireCheckLockCommand) CheckID() kernel.UUID    { return c.checkID }
func (c AcquireCheckLockCommand) WorkstationID() string   { return c.workstationID }
func (c AcquireCheckLockCommand) EmployeeID() kernel.UUID { return c.employeeID }
func (c AcquireCheckLockCommand) TTL() time.Duration      { return c.ttl }

// ReleaseCheckLockCommand gives a lease back before it expires.
type ReleaseCheckLockCommand struct {
	checkID       kernel.UUID
	workstationID string

	guard guard.ConstructorGuard
}

func NewReleaseCheckLockCommand(checkID kernel.UUID, workstationID string) (ReleaseCheckLockCommand, error) {
	if err := checkID.Validate(); err != nil {
		return ReleaseCheckLockCommand{}, err
	}
	if strings.TrimSpace(workstationID) == "" {
		return ReleaseCheckLockCommand{}, errs.NewValueIsRequiredError("workstationId")
	}
	return ReleaseCheckLockCommand{
		checkID:       checkID,
		workstationID: workstationID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c ReleaseCheckLockCommand) Validate() error {
	return c.guard.Validate(ErrReleaseCheckLockCommandIsNotConstructed)
}

func (c ReleaseCheckLockCommand) CheckID() kernel.UUID  { return c.checkID }
func (c ReleaseCheckLockCommand) WorkstationID() string { return c.workstationID }

// PurgeExpiredCheckLocksCommand is issued by the sweep job.
type PurgeExpiredCheckLocksCommand struct{}

func NewPurgeExpiredCheckLocksCommand() PurgeExpiredCheckLocksCommand {
	return PurgeExpiredCheckLocksCommand{}
}
