package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/kitchen"
	"checkcore/internal/core/domain/services"
	"checkcore/internal/core/ports"
	"checkcore/internal/pkg/errs"
)

// checkRef is embedded by every command that mutates one existing check.
type checkRef struct {
	checkID         kernel.UUID
	expectedVersion *int
	employeeID      kernel.UUID
}

func newCheckRef(checkID kernel.UUID, expectedVersion *int, employeeID kernel.UUID) (checkRef, error) {
	if err := errors.Join(checkID.Validate(), employeeID.Validate()); err != nil {
		return checkRef{}, err
	}
	if expectedVersion != nil && *expectedVersion < 0 {
		return checkRef{}, errs.NewValueIsOutOfRangeError("expectedVersion", *expectedVersion, 0, "unbounded")
	}
	return checkRef{checkID: checkID, expectedVersion: expectedVersion, employeeID: employeeID}, nil
}

// CheckID returns the check the command applies to.
func (r checkRef) CheckID() kernel.UUID {
	return r.checkID
}

// ExpectedVersion is the version token the terminal last saw, or nil.
func (r checkRef) ExpectedVersion() *int {
	return r.expectedVersion
}

// EmployeeID is the employee performing the command.
func (r checkRef) EmployeeID() kernel.UUID {
	return r.employeeID
}

// loadCheck reads the check and rejects a stale version token.
func loadCheck(ctx context.Context, repo ports.CheckRepository, ref checkRef) (*check.Check, error) {
	c, err := repo.Get(ctx, ref.checkID)
	if err != nil {
		return nil, err
	}
	if ref.expectedVersion != nil {
		if err = c.AssertVersion(*ref.expectedVersion); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// recallBumpedTickets applies the re-display rule: a check change puts every
// bumped ticket of the check back on the display.
func recallBumpedTickets(ctx context.Context, repo ports.TicketRepository, checkID kernel.UUID) (int, error) {
	tickets, err := repo.ListByCheck(ctx, checkID)
	if err != nil {
		return 0, err
	}
	recalled, err := services.RecallBumped(tickets)
	if err != nil {
		return 0, err
	}
	for _, ticket := range recalled {
		if err = repo.Update(ctx, ticket); err != nil {
			return 0, err
		}
	}
	return len(recalled), nil
}

// findPreview returns the preview ticket of a check, or nil.
func findPreview(ctx context.Context, repo ports.TicketRepository, checkID kernel.UUID) (*kitchen.Ticket, error) {
	preview, err := repo.GetPreviewForCheck(ctx, checkID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	return preview, err
}

func savePreview(ctx context.Context, repo ports.TicketRepository, change services.PreviewChange) error {
	if !change.Changed() {
		return nil
	}
	if change.Created {
		return repo.Add(ctx, change.Ticket)
	}
	return repo.Update(ctx, change.Ticket)
}

// sendUnsent dispatches every unsent item of c as the next round. Under
// Dynamic Order Mode the preview ticket is finalized in place; otherwise items
// are routed to stations. The check itself is not persisted here.
func sendUnsent(
	ctx context.Context,
	uow UoW,
	deps Collaborators,
	c *check.Check,
	employeeID kernel.UUID,
	at time.Time,
) (services.Dispatch, error) {
	rounds := uow.RoundRepository()
	tickets := uow.TicketRepository()

	settings, err := deps.Routing.ResolveOrderMode(ctx, c.RvcID())
	if err != nil {
		return services.Dispatch{}, fmt.Errorf("resolve order mode: %w", err)
	}

	existing, err := rounds.CountByCheck(ctx, c.ID())
	if err != nil {
		return services.Dispatch{}, err
	}

	var d services.Dispatch
	if settings.IsDynamic() {
		preview, findErr := findPreview(ctx, tickets, c.ID())
		if findErr != nil {
			return services.Dispatch{}, findErr
		}
		d, err = services.NewDynamicOrderController().Finalize(c, preview, existing+1, employeeID, at)
	} else {
		routes, routeErr := resolveRoutes(ctx, deps.Routing, c)
		if routeErr != nil {
			return services.Dispatch{}, routeErr
		}
		d, err = services.NewRoundDispatcher().Dispatch(c, existing+1, employeeID, routes, at)
	}
	if err != nil {
		return services.Dispatch{}, err
	}

	if err = rounds.Add(ctx, d.Round); err != nil {
		return services.Dispatch{}, err
	}
	for _, ticket := range d.NewTickets {
		if err = tickets.Add(ctx, ticket); err != nil {
			return services.Dispatch{}, err
		}
	}
	if d.Finalized != nil {
		if err = tickets.Update(ctx, d.Finalized); err != nil {
			return services.Dispatch{}, err
		}
	}
	return d, nil
}

// resolveRoutes asks the resolver once per distinct menu item among the unsent items.
func resolveRoutes(ctx context.Context, resolver ports.RoutingResolver, c *check.Check) (services.Routes, error) {
	routes := make(services.Routes)
	byMenuItem := make(map[kernel.UUID][]kitchen.RoutingTarget)

	for _, item := range c.UnsentItems() {
		menuItemID := item.MenuItemID()
		if menuItemID == nil {
			continue
		}
		targets, ok := byMenuItem[*menuItemID]
		if !ok {
			var err error
			targets, err = resolver.ResolveTargets(ctx, *menuItemID, c.PropertyID(), c.RvcID())
			if err != nil {
				return nil, fmt.Errorf("resolve routing for menu item %s: %w", menuItemID, err)
			}
			byMenuItem[*menuItemID] = targets
		}
		routes[item.ID()] = targets
	}
	return routes, nil
}

// authorize verifies a manager PIN before anything is written.
func authorize(ctx context.Context, deps Collaborators, pin string, privilege ports.Privilege) (*kernel.UUID, error) {
	if pin == "" {
		return nil, errs.NewNotAuthorizedError(string(privilege) + " requires a manager PIN")
	}
	approval, err := deps.Managers.Authorize(ctx, pin, privilege)
	if err != nil {
		return nil, err
	}
	id := approval.EmployeeID
	return &id, nil
}
