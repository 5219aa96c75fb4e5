package services

import (
	"time"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/kitchen"
	"checkcore/internal/pkg/errs"
)

// Routes maps a check item id to the stations its menu item resolves to.
// Items missing from the map, or mapped to no target, are unrouted.
type Routes map[kernel.UUID][]kitchen.RoutingTarget

// Dispatch is the result of sending a check to the kitchen.
//
// NewTickets are to be added to storage. Finalized, when set, is an existing
// preview ticket that was converted in place and must be updated instead.
type Dispatch struct {
	Round        *kitchen.Round
	UpdatedItems []*check.Item
	NewTickets   []*kitchen.Ticket
	Finalized    *kitchen.Ticket
}

// Tickets returns every ticket touched by the dispatch.
func (d Dispatch) Tickets() []*kitchen.Ticket {
	out := make([]*kitchen.Ticket, 0, len(d.NewTickets)+1)
	if d.Finalized != nil {
		out = append(out, d.Finalized)
	}
	return append(out, d.NewTickets...)
}

// RoundDispatcher groups the unsent items of a check into the next round and
// fans them out to kitchen tickets.
//
// Business rules:
//   - exactly one round per send, numbered by the caller as existing rounds + 1
//   - one ticket per distinct KDS device, in the order devices are first seen
//   - an item routed to N devices appears once on each of the N tickets
//   - unrouted items share one fallback ticket; nothing is dropped
type RoundDispatcher struct{}

func NewRoundDispatcher() RoundDispatcher {
	return RoundDispatcher{}
}

// Dispatch sends every unsent, non-voided item of c.
//
//	d, err := dispatcher.Dispatch(c, existingRounds+1, serverID, routes, time.Now())
//	// d.Round.Number() == existingRounds+1
func (RoundDispatcher) Dispatch(
	c *check.Check,
	roundNumber int,
	employeeID kernel.UUID,
	routes Routes,
	at time.Time,
) (Dispatch, error) {
	if err := c.EnsureOpen("send check"); err != nil {
		return Dispatch{}, err
	}
	items := c.UnsentItems()
	if len(items) == 0 {
		return Dispatch{}, errs.NewPreconditionFailedError("send check", "no unsent items")
	}

	round, err := kitchen.NewRound(kernel.NewUUID(), c.ID(), roundNumber, employeeID, at)
	if err != nil {
		return Dispatch{}, err
	}

	updated, err := markSent(c, items, round.ID())
	if err != nil {
		return Dispatch{}, err
	}

	var (
		byDevice = make(map[kernel.UUID]*kitchen.Ticket)
		tickets  []*kitchen.Ticket
		fallback *kitchen.Ticket
	)
	for _, item := range updated {
		targets := routes[item.ID()]
		if len(targets) == 0 {
			if fallback == nil {
				fallback, err = kitchen.NewTicket(kernel.NewUUID(), c.ID(), c.RvcID(), round.ID(), nil, at)
				if err != nil {
					return Dispatch{}, err
				}
			}
			if _, err = fallback.AddItem(item.ID()); err != nil {
				return Dispatch{}, err
			}
			continue
		}

		for _, target := range targets {
			ticket, ok := byDevice[target.KdsDeviceID()]
			if !ok {
				ticket, err = kitchen.NewTicket(kernel.NewUUID(), c.ID(), c.RvcID(), round.ID(), &target, at)
				if err != nil {
					return Dispatch{}, err
				}
				byDevice[target.KdsDeviceID()] = ticket
				tickets = append(tickets, ticket)
			}
			if _, err = ticket.AddItem(item.ID()); err != nil {
				return Dispatch{}, err
			}
		}
	}
	if fallback != nil {
		tickets = append(tickets, fallback)
	}

	return Dispatch{
		Round:        round,
		UpdatedItems: updated,
		NewTickets:   tickets,
	}, nil
}

func markSent(c *check.Check, items []*check.Item, roundID kernel.UUID) ([]*check.Item, error) {
	updated := make([]*check.Item, 0, len(items))
	for _, item := range items {
		sent, err := c.MarkItemSent(item.ID(), roundID)
		if err != nil {
			return nil, err
		}
		updated = append(updated, sent)
	}
	return updated, nil
}
