package lockrepo

import (
	"context"
	"errors"
	"time"

	"checkcore/internal/core/domain/model/checklock"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCheckLockRepository implements ports.CheckLockRepository using GORM.
type GormCheckLockRepository struct {
	db *gorm.DB
}

func NewGormCheckLockRepository(db *gorm.DB) *GormCheckLockRepository {
	return &GormCheckLockRepository{db: db}
}

func (r *GormCheckLockRepository) Get(ctx context.Context, checkID kernel.UUID) (*checklock.Lease, error) {
	if err := checkID.Validate(); err != nil {
		return nil, err
	}

	var dto LeaseDTO
	if err := r.db.WithContext(ctx).First(&dto, "check_id = ?", checkID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("checkLock", checkID.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// Save inserts the lease or replaces the current holder of the check.
func (r *GormCheckLockRepository) Save(ctx context.Context, lease *checklock.Lease) error {
	if err := lease.Validate(); err != nil {
		return err
	}

	dto := fromDomain(lease)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "check_id"}}, UpdateAll: true}).
		Create(&dto).Error
}

func (r *GormCheckLockRepository) Delete(ctx context.Context, checkID kernel.UUID) error {
	return r.db.WithContext(ctx).Delete(&LeaseDTO{}, "check_id = ?", checkID.Bytes()).Error
}

func (r *GormCheckLockRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&LeaseDTO{}, "expires_at <= ?", now.UTC())
	return result.RowsAffected, result.Error
}
