package ports

import (
	"context"

	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/kitchen"
)

// RoutingResolver answers where a menu item is prepared. It is read-only.
type RoutingResolver interface {
	// ResolveTargets returns the stations of a menu item in a revenue center.
	// An empty slice means the item is unrouted.
	ResolveTargets(ctx context.Context, menuItemID, propertyID, rvcID kernel.UUID) ([]kitchen.RoutingTarget, error)

	// ResolveOrderMode returns the Dynamic Order Mode policy of a revenue center.
	ResolveOrderMode(ctx context.Context, rvcID kernel.UUID) (kitchen.OrderModeSettings, error)
}
