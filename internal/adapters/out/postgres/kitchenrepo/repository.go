package kitchenrepo

import (
	"context"
	"errors"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/kitchen"
	"checkcore/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormRoundRepository implements ports.RoundRepository using GORM.
type GormRoundRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormRoundRepository(db *gorm.DB, tracker aggregateTracker) *GormRoundRepository {
	return &GormRoundRepository{db: db, tracker: tracker}
}

// Add saves a round. The unique (check_id, number) index rejects a reused number.
func (r *GormRoundRepository) Add(ctx context.Context, round *kitchen.Round) error {
	if err := round.Validate(); err != nil {
		return err
	}

	dto := roundFromDomain(round)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(round.ID(), round)
	return nil
}

func (r *GormRoundRepository) CountByCheck(ctx context.Context, checkID kernel.UUID) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&RoundDTO{}).Where("check_id = ?", checkID.Bytes()).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *GormRoundRepository) ListByCheck(ctx context.Context, checkID kernel.UUID) ([]*kitchen.Round, error) {
	var dtos []RoundDTO
	if err := r.db.WithContext(ctx).Order("number").Find(&dtos, "check_id = ?", checkID.Bytes()).Error; err != nil {
		return nil, err
	}

	rounds := make([]*kitchen.Round, 0, len(dtos))
	for _, dto := range dtos {
		round, err := roundToDomain(dto)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, round)
	}
	return rounds, nil
}

// GormTicketRepository implements ports.TicketRepository using GORM.
type GormTicketRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormTicketRepository(db *gorm.DB, tracker aggregateTracker) *GormTicketRepository {
	return &GormTicketRepository{db: db, tracker: tracker}
}

// Add saves a ticket with its items.
func (r *GormTicketRepository) Add(ctx context.Context, ticket *kitchen.Ticket) error {
	if err := ticket.Validate(); err != nil {
		return err
	}

	dto := ticketFromDomain(ticket)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return err
	}
	if err := saveTicketItems(db, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(ticket.ID(), ticket)
	return nil
}

// Update saves ticket state and replaces its item list; preview tickets drop
// items when unsent check items are voided.
func (r *GormTicketRepository) Update(ctx context.Context, ticket *kitchen.Ticket) error {
	if err := ticket.Validate(); err != nil {
		return err
	}

	dto := ticketFromDomain(ticket)
	db := r.db.WithContext(ctx)
	result := db.Model(&TicketDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("ticket", ticket.ID().String())
	}

	if err := saveTicketItems(db, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(ticket.ID(), ticket)
	return nil
}

func saveTicketItems(db *gorm.DB, dto TicketDTO) error {
	stale := db.Where("ticket_id = ?", dto.ID)
	if len(dto.Items) > 0 {
		keep := make([]any, 0, len(dto.Items))
		for _, item := range dto.Items {
			keep = append(keep, item.ID)
		}
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&TicketItemDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Items) == 0 {
		return nil
	}
	upsert := clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}
	return db.Clauses(upsert).Create(&dto.Items).Error
}

func (r *GormTicketRepository) Get(ctx context.Context, id kernel.UUID) (*kitchen.Ticket, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TicketDTO
	if err := r.withItems(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ticket", id.String())
		}
		return nil, err
	}
	return ticketToDomain(dto)
}

// GetPreviewForCheck returns the live preview ticket of a check. Voided
// previews are history and never returned.
func (r *GormTicketRepository) GetPreviewForCheck(ctx context.Context, checkID kernel.UUID) (*kitchen.Ticket, error) {
	var dto TicketDTO
	err := r.withItems(ctx).
		Where("check_id = ? AND is_preview = ? AND status <> ?", checkID.Bytes(), true, string(kitchen.TicketVoided)).
		Order("created_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("previewTicket", checkID.String())
		}
		return nil, err
	}
	return ticketToDomain(dto)
}

func (r *GormTicketRepository) ListByCheck(ctx context.Context, checkID kernel.UUID) ([]*kitchen.Ticket, error) {
	var dtos []TicketDTO
	if err := r.withItems(ctx).Order("created_at, id").Find(&dtos, "check_id = ?", checkID.Bytes()).Error; err != nil {
		return nil, err
	}

	tickets := make([]*kitchen.Ticket, 0, len(dtos))
	for _, dto := range dtos {
		t, err := ticketToDomain(dto)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

func (r *GormTicketRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}
