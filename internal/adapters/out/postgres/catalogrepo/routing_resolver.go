package catalogrepo

import (
	"context"
	"errors"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/kitchen"
	"checkcore/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRoutingResolver implements ports.RoutingResolver over kds_routes and revenue_centers.
type GormRoutingResolver struct {
	db *gorm.DB
}

func NewGormRoutingResolver(db *gorm.DB) *GormRoutingResolver {
	return &GormRoutingResolver{db: db}
}

// ResolveTargets returns one target per station. Routes configured for the
// revenue center replace the property-wide defaults of the same menu item.
func (r *GormRoutingResolver) ResolveTargets(
	ctx context.Context,
	menuItemID, propertyID, rvcID kernel.UUID,
) ([]kitchen.RoutingTarget, error) {
	var routes []KdsRouteDTO
	if err := r.db.WithContext(ctx).
		Where("menu_item_id = ? AND property_id = ? AND active = ?", menuItemID.Bytes(), propertyID.Bytes(), true).
		Where("rvc_id = ? OR rvc_id IS NULL", rvcID.Bytes()).
		Order("id").
		Find(&routes).Error; err != nil {
		return nil, err
	}

	specific := make([]KdsRouteDTO, 0, len(routes))
	for _, route := range routes {
		if route.RvcID != nil {
			specific = append(specific, route)
		}
	}
	if len(specific) > 0 {
		routes = specific
	}

	seen := make(map[kernel.UUID]struct{}, len(routes))
	targets := make([]kitchen.RoutingTarget, 0, len(routes))
	for _, route := range routes {
		deviceID, err := kernel.UUIDFromBytes(route.KdsDeviceID[:])
		if err != nil {
			return nil, err
		}
		if _, dup := seen[deviceID]; dup {
			continue
		}
		seen[deviceID] = struct{}{}

		orderDeviceID, err := kernel.OptionalUUIDFromBytes(route.OrderDeviceID)
		if err != nil {
			return nil, err
		}
		target, err := kitchen.NewRoutingTarget(deviceID, route.StationType, orderDeviceID)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, nil
}

// ResolveOrderMode reads the Dynamic Order Mode policy of a revenue center.
func (r *GormRoutingResolver) ResolveOrderMode(ctx context.Context, rvcID kernel.UUID) (kitchen.OrderModeSettings, error) {
	var rvc RevenueCenterDTO
	if err := r.db.WithContext(ctx).First(&rvc, "id = ?", rvcID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kitchen.OrderModeSettings{}, errs.NewObjectNotFoundError("revenueCenter", rvcID.String())
		}
		return kitchen.OrderModeSettings{}, err
	}
	return kitchen.OrderModeSettings{
		DynamicEnabled: rvc.DomEnabled,
		SendMode:       kitchen.SendMode(rvc.DomSendMode),
	}, nil
}
