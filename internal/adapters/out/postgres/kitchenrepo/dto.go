// Package kitchenrepo persists rounds and KDS tickets.
package kitchenrepo

import (
	"time"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/kitchen"

	"github.com/google/uuid"
)

// RoundDTO is an immutable send event. Round numbers are unique per check.
type RoundDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CheckID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rounds_check_number,priority:1"`
	Number           int       `gorm:"not null;uniqueIndex:idx_rounds_check_number,priority:2"`
	SentByEmployeeID uuid.UUID `gorm:"type:uuid;not null"`
	SentAt           time.Time `gorm:"not null"`
}

func (RoundDTO) TableName() string {
	return "rounds"
}

// TicketDTO is a KDS ticket. KdsDeviceID is NULL for fallback and preview tickets.
type TicketDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CheckID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	RvcID         uuid.UUID  `gorm:"type:uuid;not null"`
	RoundID       *uuid.UUID `gorm:"type:uuid;index"`
	KdsDeviceID   *uuid.UUID `gorm:"type:uuid;index"`
	StationType   string     `gorm:"type:varchar(32)"`
	OrderDeviceID *uuid.UUID `gorm:"type:uuid"`
	Status        string     `gorm:"type:varchar(16);not null"`
	IsPreview     bool       `gorm:"not null"`
	Paid          bool       `gorm:"not null"`
	CreatedAt     time.Time  `gorm:"not null"`
	BumpedAt      *time.Time
	Items         []TicketItemDTO `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
}

func (TicketDTO) TableName() string {
	return "kds_tickets"
}

// TicketItemDTO places one check item on a ticket. Position keeps display order.
type TicketItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TicketID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CheckItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	IsReady     bool      `gorm:"not null"`
	Position    int       `gorm:"not null"`
}

func (TicketItemDTO) TableName() string {
	return "kds_ticket_items"
}

func roundFromDomain(r *kitchen.Round) RoundDTO {
	return RoundDTO{
		ID:               r.ID().Bytes(),
		CheckID:          r.CheckID().Bytes(),
		Number:           r.Number(),
		SentByEmployeeID: r.SentByEmployeeID().Bytes(),
		SentAt:           r.SentAt(),
	}
}

func roundToDomain(dto RoundDTO) (*kitchen.Round, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	checkID, err := kernel.UUIDFromBytes(dto.CheckID[:])
	if err != nil {
		return nil, err
	}
	employeeID, err := kernel.UUIDFromBytes(dto.SentByEmployeeID[:])
	if err != nil {
		return nil, err
	}
	return kitchen.RestoreRound(id, checkID, dto.Number, employeeID, dto.SentAt)
}

func ticketFromDomain(t *kitchen.Ticket) TicketDTO {
	ticketID := t.ID().Bytes()

	items := make([]TicketItemDTO, 0, len(t.Items()))
	for idx, ti := range t.Items() {
		items = append(items, TicketItemDTO{
			ID:          ti.ID().Bytes(),
			TicketID:    ticketID,
			CheckItemID: ti.CheckItemID().Bytes(),
			IsReady:     ti.IsReady(),
			Position:    idx,
		})
	}

	dto := TicketDTO{
		ID:        ticketID,
		CheckID:   t.CheckID().Bytes(),
		RvcID:     t.RvcID().Bytes(),
		RoundID:   kernel.OptionalBytes(t.RoundID()),
		Status:    string(t.Status()),
		IsPreview: t.IsPreview(),
		Paid:      t.IsPaid(),
		CreatedAt: t.CreatedAt(),
		BumpedAt:  t.BumpedAt(),
		Items:     items,
	}
	if target := t.Target(); target != nil {
		deviceID := target.KdsDeviceID().Bytes()
		dto.KdsDeviceID = &deviceID
		dto.StationType = target.StationType()
		dto.OrderDeviceID = kernel.OptionalBytes(target.OrderDeviceID())
	}
	return dto
}

func ticketToDomain(dto TicketDTO) (*kitchen.Ticket, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	checkID, err := kernel.UUIDFromBytes(dto.CheckID[:])
	if err != nil {
		return nil, err
	}
	rvcID, err := kernel.UUIDFromBytes(dto.RvcID[:])
	if err != nil {
		return nil, err
	}
	roundID, err := kernel.OptionalUUIDFromBytes(dto.RoundID)
	if err != nil {
		return nil, err
	}

	var target *kitchen.RoutingTarget
	if dto.KdsDeviceID != nil {
		deviceID, deviceErr := kernel.UUIDFromBytes(dto.KdsDeviceID[:])
		if deviceErr != nil {
			return nil, deviceErr
		}
		orderDeviceID, deviceErr := kernel.OptionalUUIDFromBytes(dto.OrderDeviceID)
		if deviceErr != nil {
			return nil, deviceErr
		}
		restored, targetErr := kitchen.NewRoutingTarget(deviceID, dto.StationType, orderDeviceID)
		if targetErr != nil {
			return nil, targetErr
		}
		target = &restored
	}

	items := make([]*kitchen.TicketItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		checkItemID, itemErr := kernel.UUIDFromBytes(itemDTO.CheckItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		ti, itemErr := kitchen.RestoreTicketItem(itemID, checkItemID, itemDTO.IsReady)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, ti)
	}

	var bumpedAt *time.Time
	if dto.BumpedAt != nil {
		at := dto.BumpedAt.UTC()
		bumpedAt = &at
	}

	return kitchen.RestoreTicket(kitchen.TicketState{
		ID:        id,
		CheckID:   checkID,
		RvcID:     rvcID,
		RoundID:   roundID,
		Target:    target,
		Status:    kitchen.TicketStatus(dto.Status),
		IsPreview: dto.IsPreview,
		Paid:      dto.Paid,
		Items:     items,
		CreatedAt: dto.CreatedAt,
		BumpedAt:  bumpedAt,
	})
}
