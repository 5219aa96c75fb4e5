package commands_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"checkcore/internal/core/application/usecases/commands"
	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/checklock"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/kitchen"
	"checkcore/internal/core/domain/model/payment"
	"checkcore/internal/core/ports"
	"checkcore/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func money(d decimal.Decimal) string {
	return kernel.FormatMoney(d)
}

// memoryStore is an in-memory stand-in for the database behind one unit of
// work. It counts transaction calls and enforces the version token the way
// the GORM repository does.
type memoryStore struct {
	checks   map[kernel.UUID]*check.Check
	versions map[kernel.UUID]int
	numbers  map[kernel.UUID]int
	rounds   []*kitchen.Round
	tickets  []*kitchen.Ticket
	payments []*payment.Payment
	leases   map[kernel.UUID]*checklock.Lease

	begins, commits, rollbacks int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		checks:   make(map[kernel.UUID]*check.Check),
		versions: make(map[kernel.UUID]int),
		numbers:  make(map[kernel.UUID]int),
		leases:   make(map[kernel.UUID]*checklock.Lease),
	}
}

func (s *memoryStore) Create() commands.UoW {
	return s
}

func (s *memoryStore) Begin(context.Context) error {
	s.begins++
	return nil
}

func (s *memoryStore) Commit(context.Context) error {
	s.commits++
	return nil
}

func (s *memoryStore) Rollback(context.Context) error {
	s.rollbacks++
	return nil
}

func (s *memoryStore) CheckRepository() ports.CheckRepository         { return memoryChecks{s} }
func (s *memoryStore) RoundRepository() ports.RoundRepository         { return memoryRounds{s} }
func (s *memoryStore) TicketRepository() ports.TicketRepository       { return memoryTickets{s} }
func (s *memoryStore) PaymentRepository() ports.PaymentRepository     { return memoryPayments{s} }
func (s *memoryStore) CheckLockRepository() ports.CheckLockRepository { return memoryLocks{s} }

// kitchenFactory and lockFactory expose the same store through the narrower
// unit of work interfaces.
type kitchenFactory struct{ s *memoryStore }

func (f kitchenFactory) Create() commands.KitchenUoW { return f.s }

type lockFactory struct{ s *memoryStore }

func (f lockFactory) Create() commands.CheckLockUoW { return f.s }

type memoryChecks struct{ s *memoryStore }

func (r memoryChecks) Add(_ context.Context, c *check.Check) error {
	r.s.checks[c.ID()] = c
	r.s.versions[c.ID()] = c.Version()
	return nil
}

func (r memoryChecks) Update(_ context.Context, c *check.Check) error {
	stored, ok := r.s.versions[c.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("check", c.ID())
	}
	if stored != c.Version() {
		return errs.NewVersionConflictError("check", c.ID(), c.Version(), stored)
	}
	c.AdvanceVersion()
	r.s.versions[c.ID()] = c.Version()
	r.s.checks[c.ID()] = c
	return nil
}

func (r memoryChecks) Get(_ context.Context, id kernel.UUID) (*check.Check, error) {
	c, ok := r.s.checks[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("check", id)
	}
	return c, nil
}

func (r memoryChecks) NextCheckNumber(_ context.Context, rvcID kernel.UUID) (int, error) {
	r.s.numbers[rvcID]++
	return 1000 + r.s.numbers[rvcID], nil
}

type memoryRounds struct{ s *memoryStore }

func (r memoryRounds) Add(_ context.Context, round *kitchen.Round) error {
	r.s.rounds = append(r.s.rounds, round)
	return nil
}

func (r memoryRounds) CountByCheck(ctx context.Context, checkID kernel.UUID) (int, error) {
	rounds, err := r.ListByCheck(ctx, checkID)
	return len(rounds), err
}

func (r memoryRounds) ListByCheck(_ context.Context, checkID kernel.UUID) ([]*kitchen.Round, error) {
	out := make([]*kitchen.Round, 0)
	for _, round := range r.s.rounds {
		if round.CheckID().IsEqual(checkID) {
			out = append(out, round)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number() < out[j].Number() })
	return out, nil
}

type memoryTickets struct{ s *memoryStore }

func (r memoryTickets) Add(_ context.Context, ticket *kitchen.Ticket) error {
	r.s.tickets = append(r.s.tickets, ticket)
	return nil
}

func (r memoryTickets) Update(_ context.Context, ticket *kitchen.Ticket) error {
	for i, stored := range r.s.tickets {
		if stored.ID().IsEqual(ticket.ID()) {
			r.s.tickets[i] = ticket
			return nil
		}
	}
	return errs.NewObjectNotFoundError("kdsTicket", ticket.ID())
}

func (r memoryTickets) Get(_ context.Context, id kernel.UUID) (*kitchen.Ticket, error) {
	for _, ticket := range r.s.tickets {
		if ticket.ID().IsEqual(id) {
			return ticket, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("kdsTicket", id)
}

func (r memoryTickets) GetPreviewForCheck(_ context.Context, checkID kernel.UUID) (*kitchen.Ticket, error) {
	for _, ticket := range r.s.tickets {
		if ticket.CheckID().IsEqual(checkID) && ticket.IsPreview() && ticket.Status() != kitchen.TicketVoided {
			return ticket, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("previewTicket", checkID)
}

func (r memoryTickets) ListByCheck(_ context.Context, checkID kernel.UUID) ([]*kitchen.Ticket, error) {
	out := make([]*kitchen.Ticket, 0)
	for _, ticket := range r.s.tickets {
		if ticket.CheckID().IsEqual(checkID) {
			out = append(out, ticket)
		}
	}
	return out, nil
}

type memoryPayments struct{ s *memoryStore }

func (r memoryPayments) Add(_ context.Context, p *payment.Payment) error {
	r.s.payments = append(r.s.payments, p)
	return nil
}

func (r memoryPayments) ListByCheck(_ context.Context, checkID kernel.UUID) ([]*payment.Payment, error) {
	out := make([]*payment.Payment, 0)
	for _, p := range r.s.payments {
		if p.CheckID().IsEqual(checkID) {
			out = append(out, p)
		}
	}
	return out, nil
}

type memoryLocks struct{ s *memoryStore }

func (r memoryLocks) Get(_ context.Context, checkID kernel.UUID) (*checklock.Lease, error) {
	lease, ok := r.s.leases[checkID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("checkLock", checkID)
	}
	return lease, nil
}

func (r memoryLocks) Save(_ context.Context, lease *checklock.Lease) error {
	r.s.leases[lease.CheckID()] = lease
	return nil
}

func (r memoryLocks) Delete(_ context.Context, checkID kernel.UUID) error {
	delete(r.s.leases, checkID)
	return nil
}

func (r memoryLocks) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var removed int64
	for id, lease := range r.s.leases {
		if lease.IsExpired(now) {
			delete(r.s.leases, id)
			removed++
		}
	}
	return removed, nil
}

type MockRoutingResolver struct{ mock.Mock }

func (m *MockRoutingResolver) ResolveTargets(
	ctx context.Context,
	menuItemID, propertyID, rvcID kernel.UUID,
) ([]kitchen.RoutingTarget, error) {
	args := m.Called(ctx, menuItemID, propertyID, rvcID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kitchen.RoutingTarget), args.Error(1)
}

func (m *MockRoutingResolver) ResolveOrderMode(ctx context.Context, rvcID kernel.UUID) (kitchen.OrderModeSettings, error) {
	args := m.Called(ctx, rvcID)
	return args.Get(0).(kitchen.OrderModeSettings), args.Error(1)
}

type MockMenuCatalog struct{ mock.Mock }

func (m *MockMenuCatalog) TaxGroupForMenuItem(ctx context.Context, menuItemID kernel.UUID) (*check.TaxGroup, error) {
	args := m.Called(ctx, menuItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*check.TaxGroup), args.Error(1)
}

type MockManagerAuthorizer struct{ mock.Mock }

func (m *MockManagerAuthorizer) Authorize(ctx context.Context, pin string, privilege ports.Privilege) (ports.Approval, error) {
	args := m.Called(ctx, pin, privilege)
	return args.Get(0).(ports.Approval), args.Error(1)
}

type MockDiscountCatalog struct{ mock.Mock }

func (m *MockDiscountCatalog) Discount(ctx context.Context, id kernel.UUID) (ports.DiscountDefinition, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.DiscountDefinition), args.Error(1)
}

type MockItemAvailability struct{ mock.Mock }

func (m *MockItemAvailability) Decrement(ctx context.Context, menuItemID, propertyID kernel.UUID, quantity int) error {
	args := m.Called(ctx, menuItemID, propertyID, quantity)
	return args.Error(0)
}

func (m *MockItemAvailability) Restore(ctx context.Context, menuItemID, propertyID kernel.UUID, quantity int) error {
	args := m.Called(ctx, menuItemID, propertyID, quantity)
	return args.Error(0)
}

// recorder captures audit entries and events.
type recorder struct {
	entries []ports.AuditEntry
	events  []ports.Event
}

func (r *recorder) Record(_ context.Context, entry ports.AuditEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *recorder) Publish(_ context.Context, event ports.Event) error {
	r.events = append(r.events, event)
	return nil
}

func (r *recorder) actions() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

func (r *recorder) eventTypes() []ports.EventType {
	out := make([]ports.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixedBusinessDate kernel.BusinessDate

func (d fixedBusinessDate) CurrentBusinessDate(context.Context, kernel.UUID) (kernel.BusinessDate, error) {
	return kernel.BusinessDate(d), nil
}

// harness wires every handler against one memory store.
type harness struct {
	t        *testing.T
	store    *memoryStore
	routing  *MockRoutingResolver
	menu     *MockMenuCatalog
	managers *MockManagerAuthorizer
	discount *MockDiscountCatalog
	stock    *MockItemAvailability
	rec      *recorder
	deps     commands.Collaborators

	rvcID      kernel.UUID
	propertyID kernel.UUID
	serverID   kernel.UUID
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:          t,
		store:      newMemoryStore(),
		routing:    new(MockRoutingResolver),
		menu:       new(MockMenuCatalog),
		managers:   new(MockManagerAuthorizer),
		discount:   new(MockDiscountCatalog),
		stock:      new(MockItemAvailability),
		rec:        &recorder{},
		rvcID:      kernel.NewUUID(),
		propertyID: kernel.NewUUID(),
		serverID:   kernel.NewUUID(),
	}
	h.stock.On("Decrement", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	h.stock.On("Restore", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	h.deps = commands.Collaborators{
		Routing:      h.routing,
		Menu:         h.menu,
		Discounts:    h.discount,
		Notifier:     h.rec,
		Audit:        h.rec,
		Availability: h.stock,
		Managers:     h.managers,
		BusinessDays: fixedBusinessDate("2026-03-14"),
		Now:          func() time.Time { return fixedNow },
	}
	return h
}

func (h *harness) orderMode(settings kitchen.OrderModeSettings) {
	h.routing.On("ResolveOrderMode", mock.Anything, h.rvcID).Return(settings, nil)
}

// routeTo sends menuItemID to the given KDS devices.
func (h *harness) routeTo(menuItemID kernel.UUID, devices ...kernel.UUID) {
	targets := make([]kitchen.RoutingTarget, 0, len(devices))
	for _, device := range devices {
		target, err := kitchen.NewRoutingTarget(device, "hot", nil)
		require.NoError(h.t, err)
		targets = append(targets, target)
	}
	h.routing.On("ResolveTargets", mock.Anything, menuItemID, h.propertyID, h.rvcID).Return(targets, nil)
}

func (h *harness) taxGroup(menuItemID kernel.UUID, mode check.TaxMode, rate string) {
	group, err := check.NewTaxGroup(kernel.NewUUID(), mode, dec(rate))
	require.NoError(h.t, err)
	h.menu.On("TaxGroupForMenuItem", mock.Anything, menuItemID).Return(&group, nil)
}

func (h *harness) openCheck() commands.CheckResult {
	h.t.Helper()
	cmd, err := commands.NewOpenCheckCommand(h.rvcID, h.propertyID, h.serverID, check.DineIn, "12", 2, nil)
	require.NoError(h.t, err)
	result, err := commands.NewOpenCheckCommandHandler(h.store, h.deps).Handle(h.t.Context(), cmd)
	require.NoError(h.t, err)
	return result
}

func (h *harness) addItem(checkID, menuItemID kernel.UUID, price, qty string) commands.AddItemResult {
	h.t.Helper()
	cmd, err := commands.NewAddItemCommand(checkID, nil, h.serverID, &menuItemID, "Item", dec(price), dec(qty), nil, nil)
	require.NoError(h.t, err)
	result, err := commands.NewAddItemCommandHandler(h.store, h.deps).Handle(h.t.Context(), cmd)
	require.NoError(h.t, err)
	return result
}

func (h *harness) send(checkID kernel.UUID) commands.SendCheckResult {
	h.t.Helper()
	cmd, err := commands.NewSendCheckCommand(checkID, nil, h.serverID)
	require.NoError(h.t, err)
	result, err := commands.NewSendCheckCommandHandler(h.store, h.deps).Handle(h.t.Context(), cmd)
	require.NoError(h.t, err)
	return result
}

func (h *harness) check(id kernel.UUID) *check.Check {
	h.t.Helper()
	c, err := h.store.CheckRepository().Get(h.t.Context(), id)
	require.NoError(h.t, err)
	return c
}

func (h *harness) ticketsOf(checkID kernel.UUID) []*kitchen.Ticket {
	h.t.Helper()
	tickets, err := h.store.TicketRepository().ListByCheck(h.t.Context(), checkID)
	require.NoError(h.t, err)
	return tickets
}

func ptr[T any](v T) *T {
	return &v
}

type MockEventNotifier struct{ mock.Mock }

func (m *MockEventNotifier) Publish(ctx context.Context, event ports.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func decimalQty(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}
