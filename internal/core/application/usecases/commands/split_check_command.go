package commands

import (
	"errors"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/services"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"
)

var ErrSplitCheckCommandIsNotConstructed = errors.New(
	"SplitCheckCommand must be created via NewSplitCheckCommand constructor",
)

// SplitCheckCommand moves or shares items of a fully sent check onto another
// check. A nil targetCheckID opens a new check in the same revenue center.
type SplitCheckCommand struct {
	checkRef
	targetCheckID *kernel.UUID
	plan          services.SplitPlan

	guard guard.ConstructorGuard
}

func NewSplitCheckCommand(
	checkID kernel.UUID,
	expectedVersion *int,
	employeeID kernel.UUID,
	targetCheckID *kernel.UUID,
	plan services.SplitPlan,
) (SplitCheckCommand, error) {
	ref, err := newCheckRef(checkID, expectedVersion, employeeID)
	if err != nil {
		return SplitCheckCommand{}, err
	}
	if len(plan.Move) == 0 && len(plan.Share) == 0 {
		return SplitCheckCommand{}, errs.NewValueIsRequiredError("items")
	}
	if targetCheckID != nil {
		if err = targetCheckID.Validate(); err != nil {
			return SplitCheckCommand{}, errs.NewValueIsInvalidErrorWithCause("targetCheckId", err)
		}
		if targetCheckID.IsEqual(checkID) {
			return SplitCheckCommand{}, errs.NewValueIsInvalidError("targetCheckId")
		}
	}

	seen := make(map[kernel.UUID]struct{}, len(plan.Move)+len(plan.Share))
	mark := func(id kernel.UUID) error {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("itemId", err)
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("itemId", errors.New("item "+id.String()+" is listed twice"))
		}
		seen[id] = struct{}{}
		return nil
	}
	for _, id := range plan.Move {
		if err = mark(id); err != nil {
			return SplitCheckCommand{}, err
		}
	}
	for _, share := range plan.Share {
		if err = mark(share.ItemID); err != nil {
			return SplitCheckCommand{}, err
		}
	}

	return SplitCheckCommand{
		checkRef:      ref,
		targetCheckID: targetCheckID,
		plan: services.SplitPlan{
			Move:  append([]kernel.UUID(nil), plan.Move...),
			Share: append([]services.ShareRequest(nil), plan.Share...),
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c SplitCheckCommand) Validate() error {
	return c.guard.Validate(ErrSplitCheckCommandIsNotConstructed)
}

func (c SplitCheckCommand) TargetCheckID() *kernel.UUID { return c.targetCheckID }
func (c SplitCheckCommand) Plan() services.SplitPlan    { return c.plan }
