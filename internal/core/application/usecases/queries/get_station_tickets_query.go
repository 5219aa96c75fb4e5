package queries

import (
	"errors"
	"time"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"
	"checkcore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetStationTicketsQueryIsNotConstructed = errors.New(
	"GetStationTicketsQuery must be created via NewGetStationTicketsQuery constructor",
)

// GetStationTicketsQuery lists what one KDS device should display: every
// non-voided ticket routed to it, oldest first, with item names and quantities.
//
// Example:
//
//	query, err := NewGetStationTicketsQuery(kdsDeviceID)
//	if err != nil {
//	    return err
//	}
//	tickets, err := NewGetStationTicketsQueryHandler(db).Handle(ctx, query)
type GetStationTicketsQuery struct {
	kdsDeviceID kernel.UUID
	guard       guard.ConstructorGuard
}

func NewGetStationTicketsQuery(kdsDeviceID kernel.UUID) (GetStationTicketsQuery, error) {
	if err := kdsDeviceID.Validate(); err != nil {
		return GetStationTicketsQuery{}, errs.NewValueIsRequiredErrorWithCause("kdsDeviceID", err)
	}
	return GetStationTicketsQuery{kdsDeviceID: kdsDeviceID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStationTicketsQuery) KdsDeviceID() kernel.UUID {
	return q.kdsDeviceID
}

func (q GetStationTicketsQuery) Validate() error {
	return q.guard.Validate(ErrGetStationTicketsQueryIsNotConstructed)
}

type GetStationTicketsQueryResponse struct {
	ID          kernel.UUID
	CheckID     kernel.UUID
	CheckNumber int
	StationType string
	Status      string
	Paid        bool
	CreatedAt   time.Time
	Items       []StationTicketItemView
}

// StationTicketItemView is a ticket line joined with its check item. Voided
// check items stay visible so the kitchen sees the void.
type StationTicketItemView struct {
	CheckItemID kernel.UUID
	Name        string
	Quantity    decimal.Decimal
	Voided      bool
	IsReady     bool
}
