package check

import (
	"fmt"

	"checkcore/internal/pkg/errs"
)

// Status represents the lifecycle state of a check.
//
// State transitions:
//
//	Open ──pay in full──> Closed ──reopen──> Open
//	  │
//	  └──cancel (nothing sent)──> Voided
//
// Voided is terminal. Reopening never touches rounds, tickets or payments.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Open checks accept items, discounts, sends and payments.
	Open

	// Closed checks are paid within tolerance.
	Closed

	// Voided checks were cancelled before anything reached the kitchen.
	Voided
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "Unknown",
		Open:    "Open",
		Closed:  "Closed",
		Voided:  "Voided",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Open:   "Open",
		Closed: "Closed",
		Voided: "Voided",
	}
}

// Validate rejects Unknown and out-of-range values read from storage.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsOpen reports whether mutations are allowed.
func (s Status) IsOpen() bool {
	return s == Open
}

// Close transitions Open -> Closed.
func (s Status) Close() (Status, error) {
	if s != Open {
		return 0, errs.NewPreconditionFailedError("close check", fmt.Sprintf("%s check cannot be closed", s))
	}
	return Closed, nil
}

// Reopen transitions Closed -> Open.
func (s Status) Reopen() (Status, error) {
	if s != Closed {
		return 0, errs.NewPreconditionFailedError("reopen check", fmt.Sprintf("%s check cannot be reopened", s))
	}
	return Open, nil
}

// Void transitions Open -> Voided.
func (s Status) Void() (Status, error) {
	if s != Open {
		return 0, errs.NewPreconditionFailedError("cancel check", fmt.Sprintf("%s check cannot be cancelled", s))
	}
	return Voided, nil
}
