package services

import (
	"time"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ShareRequest carves Ratio of an item off onto the target check.
type ShareRequest struct {
	ItemID kernel.UUID
	Ratio  decimal.Decimal
}

// SplitPlan describes one split. Items in Move change checks as a whole;
// items in Share are partitioned between source and target.
type SplitPlan struct {
	Move  []kernel.UUID
	Share []ShareRequest
}

// CheckSplitter moves and shares items between checks. It never recomputes
// totals; callers recompute every touched check afterwards.
type CheckSplitter struct{}

func NewCheckSplitter() CheckSplitter {
	return CheckSplitter{}
}

// Split applies plan from source to target. Every item on source must have
// been sent first.
func (CheckSplitter) Split(source, target *check.Check, plan SplitPlan) error {
	if len(plan.Move) == 0 && len(plan.Share) == 0 {
		return errs.NewValueIsRequiredError("split items")
	}
	if source.IsEqual(target) {
		return errs.NewPreconditionFailedError("split check", "source and target are the same check")
	}
	if err := source.EnsureAllItemsSent("split check"); err != nil {
		return err
	}
	if err := target.EnsureOpen("split check"); err != nil {
		return err
	}

	for _, itemID := range plan.Move {
		item, err := source.DetachItem(itemID)
		if err != nil {
			return err
		}
		if err = target.AttachItem(item); err != nil {
			return err
		}
	}

	for _, req := range plan.Share {
		shared, err := source.ShareItem(req.ItemID, kernel.NewUUID(), req.Ratio)
		if err != nil {
			return err
		}
		if err = target.AttachItem(shared); err != nil {
			return err
		}
	}
	return nil
}

// Merge moves every non-voided item and every check-level discount of the
// sources onto target and closes the emptied sources.
func (CheckSplitter) Merge(target *check.Check, sources []*check.Check, at time.Time) error {
	if len(sources) == 0 {
		return errs.NewValueIsRequiredError("sourceCheckIds")
	}
	if err := target.EnsureOpen("merge checks"); err != nil {
		return err
	}

	for _, source := range sources {
		if source.IsEqual(target) {
			return errs.NewPreconditionFailedError("merge checks", "a check cannot be merged into itself")
		}
		if err := source.EnsureOpen("merge checks"); err != nil {
			return err
		}
		for _, item := range source.ActiveItems() {
			moved, err := source.DetachItem(item.ID())
			if err != nil {
				return err
			}
			if err = target.AttachItem(moved); err != nil {
				return err
			}
		}
		for _, d := range source.DetachDiscounts() {
			if err := target.AttachDiscount(d); err != nil {
				return err
			}
		}
		if err := source.CloseEmpty(at); err != nil {
			return err
		}
	}
	return nil
}
