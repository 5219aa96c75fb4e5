package checkrepo

import (
	"context"
	"errors"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCheckRepository implements ports.CheckRepository using GORM.
type GormCheckRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCheckRepository creates a new GORM check repository.
func NewGormCheckRepository(db *gorm.DB, tracker aggregateTracker) *GormCheckRepository {
	return &GormCheckRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new check with its items and discounts.
func (r *GormCheckRepository) Add(ctx context.Context, aggregate *check.Check) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return err
	}
	if err := saveLines(db, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the header only when the stored version matches the
// aggregate's, then upserts items and discounts. Items that moved here from
// another check keep their ids, so lines are upserted rather than inserted.
// Nothing is ever deleted: voided items stay for audit.
func (r *GormCheckRepository) Update(ctx context.Context, aggregate *check.Check) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expected := dto.Version
	dto.Version = expected + 1

	db := r.db.WithContext(ctx)
	result := db.Model(&CheckDTO{}).
		Where("id = ? AND version = ?", dto.ID, expected).
		Select("*").
		Omit("id", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.staleOrMissing(db, aggregate)
	}

	if err := saveLines(db, dto); err != nil {
		return err
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCheckRepository) staleOrMissing(db *gorm.DB, aggregate *check.Check) error {
	var stored CheckDTO
	if err := db.Select("version").First(&stored, "id = ?", aggregate.ID().Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("check", aggregate.ID().String())
		}
		return err
	}
	return errs.NewVersionConflictError("check", aggregate.ID().String(), aggregate.Version(), stored.Version)
}

func saveLines(db *gorm.DB, dto CheckDTO) error {
	upsert := clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}
	if len(dto.Items) > 0 {
		if err := db.Clauses(upsert).Create(&dto.Items).Error; err != nil {
			return err
		}
	}
	if len(dto.Discounts) > 0 {
		if err := db.Clauses(upsert).Create(&dto.Discounts).Error; err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a check by ID with every item, voided ones included.
func (r *GormCheckRepository) Get(ctx context.Context, id kernel.UUID) (*check.Check, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CheckDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("added_at, id") }).
		Preload("Discounts", func(db *gorm.DB) *gorm.DB { return db.Order("applied_at, id") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("check", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// NextCheckNumber returns one past the highest check number of the revenue center.
func (r *GormCheckRepository) NextCheckNumber(ctx context.Context, rvcID kernel.UUID) (int, error) {
	if err := rvcID.Validate(); err != nil {
		return 0, err
	}

	var last int
	if err := r.db.WithContext(ctx).
		Model(&CheckDTO{}).
		Where("rvc_id = ?", rvcID.Bytes()).
		Select("COALESCE(MAX(check_number), 0)").
		Scan(&last).Error; err != nil {
		return 0, err
	}
	return last + 1, nil
}
