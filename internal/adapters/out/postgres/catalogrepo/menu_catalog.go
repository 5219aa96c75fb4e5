package catalogrepo

import (
	"context"
	"errors"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/ports"
	"checkcore/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMenuCatalog implements ports.MenuCatalog.
type GormMenuCatalog struct {
	db *gorm.DB
}

func NewGormMenuCatalog(db *gorm.DB) *GormMenuCatalog {
	return &GormMenuCatalog{db: db}
}

// TaxGroupForMenuItem returns the group currently configured on the menu
// item, or nil when the item is untaxed.
func (c *GormMenuCatalog) TaxGroupForMenuItem(ctx context.Context, menuItemID kernel.UUID) (*check.TaxGroup, error) {
	var item MenuItemDTO
	if err := c.db.WithContext(ctx).First(&item, "id = ?", menuItemID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("menuItem", menuItemID.String())
		}
		return nil, err
	}
	if item.TaxGroupID == nil {
		return nil, nil
	}

	var dto TaxGroupDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ?", *item.TaxGroupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("taxGroup", item.TaxGroupID.String())
		}
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	group, err := check.NewTaxGroup(id, check.TaxMode(dto.Mode), dto.Rate)
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GormDiscountCatalog implements ports.DiscountCatalog. Inactive definitions
// are reported as not found.
type GormDiscountCatalog struct {
	db *gorm.DB
}

func NewGormDiscountCatalog(db *gorm.DB) *GormDiscountCatalog {
	return &GormDiscountCatalog{db: db}
}

func (c *GormDiscountCatalog) Discount(ctx context.Context, id kernel.UUID) (ports.DiscountDefinition, error) {
	var dto DiscountDefinitionDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ? AND active = ?", id.Bytes(), true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.DiscountDefinition{}, errs.NewObjectNotFoundError("discount", id.String())
		}
		return ports.DiscountDefinition{}, err
	}
	return ports.DiscountDefinition{
		ID:               id,
		Name:             dto.Name,
		RequiresApproval: dto.RequiresApproval,
	}, nil
}
