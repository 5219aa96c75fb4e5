package services

import (
	"time"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/kitchen"
	"checkcore/internal/pkg/errs"
)

// PreviewChange reports what happened to the preview ticket of a check.
// Ticket is nil when the policy left the kitchen untouched.
type PreviewChange struct {
	Ticket  *kitchen.Ticket
	Created bool
}

// Changed reports whether the ticket must be persisted.
func (p PreviewChange) Changed() bool {
	return p.Ticket != nil
}

// DynamicOrderController keeps the single mutable preview ticket of a check
// in Dynamic Order Mode.
//
//	fire_on_fly     every rung item goes straight onto the preview ticket
//	fire_on_next    ringing item N flushes the withheld items 1..N-1
//	fire_on_tender  nothing is shown until send or payment
//
// Withheld items are the unsent items that are not yet on the preview ticket,
// so no extra state is stored.
type DynamicOrderController struct{}

func NewDynamicOrderController() DynamicOrderController {
	return DynamicOrderController{}
}

// OnItemAdded applies the send mode after item was added to c.
// preview is the current preview ticket of the check, or nil.
func (DynamicOrderController) OnItemAdded(
	c *check.Check,
	preview *kitchen.Ticket,
	mode kitchen.SendMode,
	item *check.Item,
	at time.Time,
) (PreviewChange, error) {
	switch mode {
	case kitchen.FireOnFly:
		return appendToPreview(c, preview, []*check.Item{item}, at)
	case kitchen.FireOnNext:
		withheld := make([]*check.Item, 0)
		for _, unsent := range c.UnsentItems() {
			if unsent.ID().IsEqual(item.ID()) {
				continue
			}
			if preview == nil || !preview.Contains(unsent.ID()) {
				withheld = append(withheld, unsent)
			}
		}
		return appendToPreview(c, preview, withheld, at)
	case kitchen.FireOnTender:
		return PreviewChange{}, nil
	default:
		return PreviewChange{}, mode.Validate()
	}
}

// OnItemVoided takes a voided, unsent item off the preview ticket.
func (DynamicOrderController) OnItemVoided(preview *kitchen.Ticket, itemID kernel.UUID) (PreviewChange, error) {
	if preview == nil {
		return PreviewChange{}, nil
	}
	removed, err := preview.RemoveItem(itemID)
	if err != nil || !removed {
		return PreviewChange{}, err
	}
	return PreviewChange{Ticket: preview}, nil
}

// OnChecksMerged runs after the items of the sources were merged into target.
// Items shown on a source preview ticket move onto the target's preview
// ticket, and every source preview is voided, so a merged item is displayed
// once and is finalized with the target's next send.
func (DynamicOrderController) OnChecksMerged(
	target *check.Check,
	preview *kitchen.Ticket,
	sourcePreviews []*kitchen.Ticket,
	at time.Time,
) (PreviewChange, error) {
	shown := make([]*check.Item, 0)
	for _, sourcePreview := range sourcePreviews {
		for _, ticketItem := range sourcePreview.Items() {
			item, err := target.Item(ticketItem.CheckItemID())
			if err != nil || !item.IsActive() || item.IsSent() {
				continue
			}
			shown = append(shown, item)
		}
		if err := sourcePreview.Void(); err != nil {
			return PreviewChange{}, err
		}
	}
	return appendToPreview(target, preview, shown, at)
}

// Finalize sweeps every unsent item onto the preview ticket, creates the
// round and converts the preview ticket in place into that round's ticket.
// Under fire_on_tender, or when nothing was flushed yet, the preview ticket is
// created here and finalized immediately.
func (DynamicOrderController) Finalize(
	c *check.Check,
	preview *kitchen.Ticket,
	roundNumber int,
	employeeID kernel.UUID,
	at time.Time,
) (Dispatch, error) {
	if err := c.EnsureOpen("send check"); err != nil {
		return Dispatch{}, err
	}
	items := c.UnsentItems()
	if len(items) == 0 {
		return Dispatch{}, errs.NewPreconditionFailedError("send check", "no unsent items")
	}

	change, err := appendToPreview(c, preview, items, at)
	if err != nil {
		return Dispatch{}, err
	}
	ticket := change.Ticket

	round, err := kitchen.NewRound(kernel.NewUUID(), c.ID(), roundNumber, employeeID, at)
	if err != nil {
		return Dispatch{}, err
	}
	updated, err := markSent(c, items, round.ID())
	if err != nil {
		return Dispatch{}, err
	}
	if err = ticket.Finalize(round.ID()); err != nil {
		return Dispatch{}, err
	}

	d := Dispatch{Round: round, UpdatedItems: updated}
	if change.Created {
		d.NewTickets = []*kitchen.Ticket{ticket}
	} else {
		d.Finalized = ticket
	}
	return d, nil
}

func appendToPreview(c *check.Check, preview *kitchen.Ticket, items []*check.Item, at time.Time) (PreviewChange, error) {
	if len(items) == 0 {
		return PreviewChange{}, nil
	}

	change := PreviewChange{Ticket: preview}
	if preview == nil {
		ticket, err := kitchen.NewPreviewTicket(kernel.NewUUID(), c.ID(), c.RvcID(), at)
		if err != nil {
			return PreviewChange{}, err
		}
		change = PreviewChange{Ticket: ticket, Created: true}
	}

	for _, item := range items {
		if _, err := change.Ticket.AddItem(item.ID()); err != nil {
			return PreviewChange{}, err
		}
	}
	return change, nil
}

// RecallBumped puts every bumped ticket of a check back on the display after
// the check changed. It returns the tickets that changed.
func RecallBumped(tickets []*kitchen.Ticket) ([]*kitchen.Ticket, error) {
	recalled := make([]*kitchen.Ticket, 0)
	for _, ticket := range tickets {
		if ticket.Status() != kitchen.TicketBumped {
			continue
		}
		if err := ticket.Recall(); err != nil {
			return nil, err
		}
		recalled = append(recalled, ticket)
	}
	return recalled, nil
}
