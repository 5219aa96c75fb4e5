package commands

import (
	"context"
	"time"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/services"
	"checkcore/internal/core/ports"

	"go.uber.org/zap"
)

// Collaborators are the ports check commands call besides storage.
type Collaborators struct {
	Routing      ports.RoutingResolver
	Menu         ports.MenuCatalog
	Discounts    ports.DiscountCatalog
	Notifier     ports.EventNotifier
	Audit        ports.AuditSink
	Availability ports.ItemAvailability
	Managers     ports.ManagerAuthorizer
	BusinessDays ports.BusinessDateProvider
	Logger       *zap.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

func (c Collaborators) now() time.Time {
	if c.Now == nil {
		return time.Now().UTC()
	}
	return c.Now().UTC()
}

func (c Collaborators) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c Collaborators) totals() services.CheckTotalsEngine {
	return services.NewCheckTotalsEngine(c.Menu)
}

// CheckResult is what every check command reports back to the terminal.
type CheckResult struct {
	CheckID     kernel.UUID
	CheckNumber int
	Status      check.Status
	Version     int
	Totals      check.Totals
}

func newCheckResult(c *check.Check) CheckResult {
	return CheckResult{
		CheckID:     c.ID(),
		CheckNumber: c.CheckNumber(),
		Status:      c.Status(),
		Version:     c.Version(),
		Totals:      c.Totals(),
	}
}

// followUps collects the best-effort calls made after a successful commit.
// Their failures are logged and never reach the caller.
type followUps struct {
	audits []ports.AuditEntry
	events []ports.Event
	stock  []stockChange
}

type stockChange struct {
	menuItemID kernel.UUID
	propertyID kernel.UUID
	quantity   int
	restore    bool
}

func (f *followUps) audit(entry ports.AuditEntry) {
	f.audits = append(f.audits, entry)
}

func (f *followUps) publish(eventType ports.EventType, c *check.Check, action string, at time.Time) {
	f.publishTo(eventType, c.RvcID(), c.ID(), action, at)
}

func (f *followUps) publishTo(eventType ports.EventType, rvcID, checkID kernel.UUID, action string, at time.Time) {
	f.events = append(f.events, ports.Event{
		Type:       eventType,
		Channel:    ports.RvcChannel(rvcID),
		CheckID:    checkID,
		Action:     action,
		OccurredAt: at,
	})
}

func (f *followUps) decrementStock(item *check.Item, propertyID kernel.UUID) {
	f.changeStock(item, propertyID, false)
}

func (f *followUps) restoreStock(item *check.Item, propertyID kernel.UUID) {
	f.changeStock(item, propertyID, true)
}

func (f *followUps) changeStock(item *check.Item, propertyID kernel.UUID, restore bool) {
	menuItemID := item.MenuItemID()
	if menuItemID == nil {
		return
	}
	f.stock = append(f.stock, stockChange{
		menuItemID: *menuItemID,
		propertyID: propertyID,
		quantity:   int(item.Quantity().Ceil().IntPart()),
		restore:    restore,
	})
}

func (f *followUps) run(ctx context.Context, deps Collaborators) {
	log := deps.logger()

	for _, s := range f.stock {
		if deps.Availability == nil {
			break
		}
		var err error
		if s.restore {
			err = deps.Availability.Restore(ctx, s.menuItemID, s.propertyID, s.quantity)
		} else {
			err = deps.Availability.Decrement(ctx, s.menuItemID, s.propertyID, s.quantity)
		}
		if err != nil {
			log.Warn("item availability update failed",
				zap.String("menu_item_id", s.menuItemID.String()),
				zap.Bool("restore", s.restore),
				zap.Error(err))
		}
	}

	for _, entry := range f.audits {
		if deps.Audit == nil {
			break
		}
		if err := deps.Audit.Record(ctx, entry); err != nil {
			log.Warn("audit record failed",
				zap.String("action", entry.Action),
				zap.String("target_id", entry.TargetID.String()),
				zap.Error(err))
		}
	}

	for _, event := range f.events {
		if deps.Notifier == nil {
			break
		}
		if err := deps.Notifier.Publish(ctx, event); err != nil {
			log.Warn("event publish failed",
				zap.String("type", string(event.Type)),
				zap.String("channel", event.Channel),
				zap.Error(err))
		}
	}
}

func checkAudit(c *check.Check, employeeID kernel.UUID, action string, details map[string]any) ports.AuditEntry {
	return ports.AuditEntry{
		RvcID:      c.RvcID(),
		EmployeeID: employeeID,
		Action:     action,
		TargetType: "check",
		TargetID:   c.ID(),
		Details:    details,
	}
}
