package kitchen

import (
	"errors"
	"time"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"
)

var (
	ErrTicketIsNotConstructed     = errors.New("Ticket must be created via NewTicket constructor")
	ErrTicketItemIsNotConstructed = errors.New("TicketItem must be created via NewTicketItem constructor")
)

// TicketItem places one check item on one ticket.
type TicketItem struct {
	id          kernel.UUID
	checkItemID kernel.UUID
	isReady     bool
	guard       guard.ConstructorGuard
}

func NewTicketItem(id, checkItemID kernel.UUID) (*TicketItem, error) {
	if err := errors.Join(id.Validate(), checkItemID.Validate()); err != nil {
		return nil, err
	}
	return &TicketItem{id: id, checkItemID: checkItemID, guard: guard.NewConstructorGuard()}, nil
}

func RestoreTicketItem(id, checkItemID kernel.UUID, isReady bool) (*TicketItem, error) {
	ti, err := NewTicketItem(id, checkItemID)
	if err != nil {
		return nil, err
	}
	ti.isReady = isReady
	return ti, nil
}

func (ti *TicketItem) Validate() error {
	if ti == nil {
		return ErrTicketItemIsNotConstructed
	}
	return ti.guard.Validate(ErrTicketItemIsNotConstructed)
}

func (ti *TicketItem) ID() kernel.UUID          { return ti.id }
func (ti *TicketItem) CheckItemID() kernel.UUID { return ti.checkItemID }
func (ti *TicketItem) IsReady() bool            { return ti.isReady }

// Ticket is what a KDS station displays for one round of a check.
//
// A routed ticket carries the station it belongs to; a ticket without a target
// is either the per-round fallback for unrouted items or a Dynamic Order Mode
// preview. Preview tickets have no round until Finalize links them in place.
type Ticket struct {
	id        kernel.UUID
	checkID   kernel.UUID
	rvcID     kernel.UUID
	roundID   *kernel.UUID
	target    *RoutingTarget
	status    TicketStatus
	isPreview bool
	paid      bool
	items     []*TicketItem
	createdAt time.Time
	bumpedAt  *time.Time
	guard     guard.ConstructorGuard
}

// NewTicket creates an active ticket for a round. target is nil for the fallback ticket.
func NewTicket(id, checkID, rvcID, roundID kernel.UUID, target *RoutingTarget, createdAt time.Time) (*Ticket, error) {
	if err := roundID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("roundId", err)
	}
	t, err := newTicket(id, checkID, rvcID, target, createdAt)
	if err != nil {
		return nil, err
	}
	t.roundID = &roundID
	return t, nil
}

// NewPreviewTicket creates the single mutable Dynamic Order Mode ticket of a check.
func NewPreviewTicket(id, checkID, rvcID kernel.UUID, createdAt time.Time) (*Ticket, error) {
	t, err := newTicket(id, checkID, rvcID, nil, createdAt)
	if err != nil {
		return nil, err
	}
	t.isPreview = true
	return t, nil
}

func newTicket(id, checkID, rvcID kernel.UUID, target *RoutingTarget, createdAt time.Time) (*Ticket, error) {
	if err := errors.Join(id.Validate(), checkID.Validate(), rvcID.Validate()); err != nil {
		return nil, err
	}
	return &Ticket{
		id:        id,
		checkID:   checkID,
		rvcID:     rvcID,
		target:    target,
		status:    TicketActive,
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// TicketState carries every persisted field of a Ticket for RestoreTicket.
type TicketState struct {
	ID        kernel.UUID
	CheckID   kernel.UUID
	RvcID     kernel.UUID
	RoundID   *kernel.UUID
	Target    *RoutingTarget
	Status    TicketStatus
	IsPreview bool
	Paid      bool
	Items     []*TicketItem
	CreatedAt time.Time
	BumpedAt  *time.Time
}

func RestoreTicket(state TicketState) (*Ticket, error) {
	t, err := newTicket(state.ID, state.CheckID, state.RvcID, state.Target, state.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err = state.Status.Validate(); err != nil {
		return nil, err
	}
	if !state.IsPreview && state.RoundID == nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("roundId", errors.New("finalized tickets belong to a round"))
	}
	for _, ti := range state.Items {
		if err = ti.Validate(); err != nil {
			return nil, err
		}
	}
	t.roundID = state.RoundID
	t.status = state.Status
	t.isPreview = state.IsPreview
	t.paid = state.Paid
	t.items = append([]*TicketItem(nil), state.Items...)
	t.bumpedAt = state.BumpedAt
	return t, nil
}

func (t *Ticket) Validate() error {
	if t == nil {
		return ErrTicketIsNotConstructed
	}
	return t.guard.Validate(ErrTicketIsNotConstructed)
}

func (t *Ticket) ID() kernel.UUID      { return t.id }
func (t *Ticket) CheckID() kernel.UUID { return t.checkID }
func (t *Ticket) RvcID() kernel.UUID   { return t.rvcID }
func (t *Ticket) Status() TicketStatus { return t.status }
func (t *Ticket) IsPreview() bool      { return t.isPreview }
func (t *Ticket) IsPaid() bool         { return t.paid }
func (t *Ticket) CreatedAt() time.Time { return t.createdAt }

func (t *Ticket) RoundID() *kernel.UUID {
	if t.roundID == nil {
		return nil
	}
	id := *t.roundID
	return &id
}

// Target returns nil for fallback and preview tickets.
func (t *Ticket) Target() *RoutingTarget {
	if t.target == nil {
		return nil
	}
	target := *t.target
	return &target
}

func (t *Ticket) BumpedAt() *time.Time {
	if t.bumpedAt == nil {
		return nil
	}
	at := *t.bumpedAt
	return &at
}

// IsFallback reports whether this is a finalized ticket without a station.
func (t *Ticket) IsFallback() bool {
	return t.target == nil && !t.isPreview
}

func (t *Ticket) Items() []*TicketItem {
	out := make([]*TicketItem, len(t.items))
	copy(out, t.items)
	return out
}

// Contains reports whether the check item is already on this ticket.
func (t *Ticket) Contains(checkItemID kernel.UUID) bool {
	for _, ti := range t.items {
		if ti.checkItemID.IsEqual(checkItemID) {
			return true
		}
	}
	return false
}

// AddItem places a check item on the ticket once; repeated calls are no-ops.
func (t *Ticket) AddItem(checkItemID kernel.UUID) (bool, error) {
	if t.status == TicketVoided {
		return false, errs.NewPreconditionFailedError("add ticket item", "ticket is voided")
	}
	if t.Contains(checkItemID) {
		return false, nil
	}
	ti, err := NewTicketItem(kernel.NewUUID(), checkItemID)
	if err != nil {
		return false, err
	}
	t.items = append(t.items, ti)
	return true, nil
}

// RemoveItem takes an unsent item off a preview ticket.
func (t *Ticket) RemoveItem(checkItemID kernel.UUID) (bool, error) {
	if !t.isPreview {
		return false, errs.NewPreconditionFailedError("remove ticket item", "only preview tickets can drop items")
	}
	for idx, ti := range t.items {
		if ti.checkItemID.IsEqual(checkItemID) {
			t.items = append(t.items[:idx:idx], t.items[idx+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Finalize converts a preview ticket in place into the round's ticket.
func (t *Ticket) Finalize(roundID kernel.UUID) error {
	if !t.isPreview {
		return errs.NewPreconditionFailedError("finalize ticket", "ticket is not a preview")
	}
	if err := roundID.Validate(); err != nil {
		return err
	}
	t.isPreview = false
	t.roundID = &roundID
	return nil
}

func (t *Ticket) Bump(at time.Time) error {
	next, err := t.status.bump()
	if err != nil {
		return err
	}
	bumpedAt := at.UTC()
	t.status = next
	t.bumpedAt = &bumpedAt
	return nil
}

// Recall puts a bumped ticket back on the screen.
func (t *Ticket) Recall() error {
	next, err := t.status.recall()
	if err != nil {
		return err
	}
	t.status = next
	t.bumpedAt = nil
	return nil
}

func (t *Ticket) Void() error {
	next, err := t.status.void()
	if err != nil {
		return err
	}
	t.status = next
	return nil
}

// MarkPaid flags the ticket once its check is settled.
func (t *Ticket) MarkPaid() {
	t.paid = true
}
