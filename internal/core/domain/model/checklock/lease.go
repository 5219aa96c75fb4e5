// Package checklock models the advisory lease a workstation takes on a check
// before editing it. Leases complement the optimistic version token; they keep
// two terminals from opening the same check for edit at once.
package checklock

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"
)

var ErrLeaseIsNotConstructed = errors.New("Lease must be created via NewLease constructor")

// MaxLeaseDuration caps how long a single acquire may hold a check.
const MaxLeaseDuration = 30 * time.Minute

type Lease struct {
	checkID       kernel.UUID
	workstationID string
	employeeID    kernel.UUID
	expiresAt     time.Time
	guard         guard.ConstructorGuard
}

func NewLease(checkID kernel.UUID, workstationID string, employeeID kernel.UUID, now time.Time, ttl time.Duration) (*Lease, error) {
	if err := errors.Join(checkID.Validate(), employeeID.Validate()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(workstationID) == "" {
		return nil, errs.NewValueIsRequiredError("workstationId")
	}
	if ttl <= 0 || ttl > MaxLeaseDuration {
		return nil, errs.NewValueIsOutOfRangeError("ttl", ttl.String(), "1ns", MaxLeaseDuration.String())
	}
	return &Lease{
		checkID:       checkID,
		workstationID: workstationID,
		employeeID:    employeeID,
		expiresAt:     now.UTC().Add(ttl),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func RestoreLease(checkID kernel.UUID, workstationID string, employeeID kernel.UUID, expiresAt time.Time) (*Lease, error) {
	if err := errors.Join(checkID.Validate(), employeeID.Validate()); err != nil {
		return nil, err
	}
	return &Lease{
		checkID:       checkID,
		workstationID: workstationID,
		employeeID:    employeeID,
		expiresAt:     expiresAt.UTC(),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (l *Lease) Validate() error {
	if l == nil {
		return ErrLeaseIsNotConstructed
	}
	return l.guard.Validate(ErrLeaseIsNotConstructed)
}

func (l *Lease) CheckID() kernel.UUID    { return l.checkID }
func (l *Lease) WorkstationID() string   { return l.workstationID }
func (l *Lease) EmployeeID() kernel.UUID { return l.employeeID }
func (l *Lease) ExpiresAt() time.Time    { return l.expiresAt }

func (l *Lease) IsExpired(now time.Time) bool {
	return !now.UTC().Before(l.expiresAt)
}

// HeldBy reports whether the lease belongs to workstationID.
func (l *Lease) HeldBy(workstationID string) bool {
	return l.workstationID == workstationID
}

// Supersede decides whether next may replace the current lease l. The holder
// may renew; anyone may take over an expired lease.
func (l *Lease) Supersede(next *Lease, now time.Time) error {
	if l == nil || l.HeldBy(next.workstationID) || l.IsExpired(now) {
		return nil
	}
	return errs.NewPreconditionFailedError("acquire check lock",
		fmt.Sprintf("check is held by workstation %s until %s", l.workstationID, l.expiresAt.Format(time.RFC3339)))
}

// EnsureHeldBy rejects a release from a workstation that does not hold the lease.
func (l *Lease) EnsureHeldBy(workstationID string) error {
	if !l.HeldBy(workstationID) {
		return errs.NewPreconditionFailedError("release check lock", "lock is held by another workstation")
	}
	return nil
}
