package commands

import (
	"errors"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"
)

var ErrMergeChecksCommandIsNotConstructed = errors.New(
	"MergeChecksCommand must be created via NewMergeChecksCommand constructor",
)

// MergeChecksCommand folds the source checks into the target check, which is
// the check the embedded reference points at.
type MergeChecksCommand struct {
	checkRef
	sourceCheckIDs []kernel.UUID

	guard guard.ConstructorGuard
}

func NewMergeChecksCommand(
	targetCheckID kernel.UUID,
	expectedVersion *int,
	employeeID kernel.UUID,
	sourceCheckIDs []kernel.UUID,
) (MergeChecksCommand, error) {
	ref, err := newCheckRef(targetCheckID, expectedVersion, employeeID)
	if err != nil {
		return MergeChecksCommand{}, err
	}
	if len(sourceCheckIDs) == 0 {
		return MergeChecksCommand{}, errs.NewValueIsRequiredError("sourceCheckIds")
	}
	seen := make(map[kernel.UUID]struct{}, len(sourceCheckIDs))
	for _, id := range sourceCheckIDs {
		if err = id.Validate(); err != nil {
			return MergeChecksCommand{}, errs.NewValueIsInvalidErrorWithCause("sourceCheckIds", err)
		}
		if id.IsEqual(targetCheckID) {
			return MergeChecksCommand{}, errs.NewValueIsInvalidErrorWithCause(
				"sourceCheckIds", errors.New("the target check cannot be a source"))
		}
		if _, dup := seen[id]; dup {
			return MergeChecksCommand{}, errs.NewValueIsInvalidErrorWithCause(
				"sourceCheckIds", errors.New("check "+id.String()+" is listed twice"))
		}
		seen[id] = struct{}{}
	}
	return MergeChecksCommand{
		checkRef:       ref,
		sourceCheckIDs: append([]kernel.UUID(nil), sourceCheckIDs...),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c MergeChecksCommand) Validate() error {
	return c.guard.Validate(ErrMergeChecksCommandIsNotConstructed)
}

func (c MergeChecksCommand) SourceCheckIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.sourceCheckIDs...)
}
