package catalogrepo

import (
	"context"
	"errors"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBusinessDateProvider implements ports.BusinessDateProvider from
// revenue_centers.business_date, which the end-of-day process advances.
type GormBusinessDateProvider struct {
	db *gorm.DB
}

func NewGormBusinessDateProvider(db *gorm.DB) *GormBusinessDateProvider {
	return &GormBusinessDateProvider{db: db}
}

func (p *GormBusinessDateProvider) CurrentBusinessDate(ctx context.Context, rvcID kernel.UUID) (kernel.BusinessDate, error) {
	var rvc RevenueCenterDTO
	if err := p.db.WithContext(ctx).Select("id", "business_date").First(&rvc, "id = ?", rvcID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NewObjectNotFoundError("revenueCenter", rvcID.String())
		}
		return "", err
	}
	return kernel.NewBusinessDate(rvc.BusinessDate)
}
