package catalogrepo_test

import (
	"context"
	"testing"

	"checkcore/internal/adapters/out/postgres/catalogrepo"
	"checkcore/internal/adapters/out/postgres/testdb"
	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/core/domain/model/kernel"
	"checkcore/internal/core/domain/model/kitchen"
	"checkcore/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type catalogFixture struct {
	db         *gorm.DB
	propertyID kernel.UUID
	rvcID      kernel.UUID
}

func newCatalogFixture(t *testing.T) catalogFixture {
	t.Helper()
	f := catalogFixture{db: testdb.Open(t), propertyID: kernel.NewUUID(), rvcID: kernel.NewUUID()}
	require.NoError(t, f.db.Create(&catalogrepo.RevenueCenterDTO{
		ID:           f.rvcID.Bytes(),
		PropertyID:   f.propertyID.Bytes(),
		Name:         "Dining room",
		DomEnabled:   true,
		DomSendMode:  string(kitchen.FireOnNext),
		BusinessDate: "2026-03-14",
	}).Error)
	return f
}

func (f catalogFixture) route(t *testing.T, menuItemID kernel.UUID, rvcID *kernel.UUID, station string) kernel.UUID {
	t.Helper()
	deviceID := kernel.NewUUID()
	require.NoError(t, f.db.Create(&catalogrepo.KdsRouteDTO{
		ID:          uuid.New(),
		MenuItemID:  menuItemID.Bytes(),
		PropertyID:  f.propertyID.Bytes(),
		RvcID:       kernel.OptionalBytes(rvcID),
		KdsDeviceID: deviceID.Bytes(),
		StationType: station,
		Active:      true,
	}).Error)
	return deviceID
}

func TestRoutingResolver_ResolveTargets(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)
	resolver := catalogrepo.NewGormRoutingResolver(f.db)

	t.Run("should return property defaults when the revenue center has no routes", func(t *testing.T) {
		menuItemID := kernel.NewUUID()
		grill := f.route(t, menuItemID, nil, "grill")
		expo := f.route(t, menuItemID, nil, "expo")

		targets, err := resolver.ResolveTargets(ctx, menuItemID, f.propertyID, f.rvcID)
		require.NoError(t, err)
		require.Len(t, targets, 2)
		devices := []kernel.UUID{targets[0].KdsDeviceID(), targets[1].KdsDeviceID()}
		assert.ElementsMatch(t, []kernel.UUID{grill, expo}, devices)
	})

	t.Run("should prefer revenue center routes over defaults", func(t *testing.T) {
		menuItemID := kernel.NewUUID()
		f.route(t, menuItemID, nil, "grill")
		bar := f.route(t, menuItemID, &f.rvcID, "bar")

		targets, err := resolver.ResolveTargets(ctx, menuItemID, f.propertyID, f.rvcID)
		require.NoError(t, err)
		require.Len(t, targets, 1)
		assert.Equal(t, bar, targets[0].KdsDeviceID())
		assert.Equal(t, "bar", targets[0].StationType())
	})

	t.Run("should return nothing for an unrouted item", func(t *testing.T) {
		targets, err := resolver.ResolveTargets(ctx, kernel.NewUUID(), f.propertyID, f.rvcID)
		require.NoError(t, err)
		assert.Empty(t, targets)
	})
}

func TestRoutingResolver_ResolveOrderMode(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)
	resolver := catalogrepo.NewGormRoutingResolver(f.db)

	settings, err := resolver.ResolveOrderMode(ctx, f.rvcID)
	require.NoError(t, err)
	assert.True(t, settings.IsDynamic())
	assert.Equal(t, kitchen.FireOnNext, settings.SendMode)

	_, err = resolver.ResolveOrderMode(ctx, kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestMenuCatalog_TaxGroupForMenuItem(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)
	catalog := catalogrepo.NewGormMenuCatalog(f.db)

	groupID := kernel.NewUUID()
	require.NoError(t, f.db.Create(&catalogrepo.TaxGroupDTO{
		ID:   groupID.Bytes(),
		Name: "Food",
		Mode: string(check.TaxModeAddOn),
		Rate: decimal.RequireFromString("0.0825"),
	}).Error)

	taxed, untaxed := kernel.NewUUID(), kernel.NewUUID()
	rawGroupID := groupID.Bytes()
	require.NoError(t, f.db.Create(&[]catalogrepo.MenuItemDTO{
		{ID: taxed.Bytes(), Name: "Burger", Price: decimal.RequireFromString("12.00"), TaxGroupID: &rawGroupID},
		{ID: untaxed.Bytes(), Name: "Water", Price: decimal.Zero},
	}).Error)

	group, err := catalog.TaxGroupForMenuItem(ctx, taxed)
	require.NoError(t, err)
	require.NotNil(t, group)
	assert.Equal(t, groupID, group.ID())
	assert.Equal(t, check.TaxModeAddOn, group.Mode())
	assert.True(t, decimal.RequireFromString("0.0825").Equal(group.Rate()))

	group, err = catalog.TaxGroupForMenuItem(ctx, untaxed)
	require.NoError(t, err)
	assert.Nil(t, group)

	_, err = catalog.TaxGroupForMenuItem(ctx, kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestDiscountCatalog_Discount(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)
	catalog := catalogrepo.NewGormDiscountCatalog(f.db)

	comp, retired := kernel.NewUUID(), kernel.NewUUID()
	require.NoError(t, f.db.Create(&catalogrepo.DiscountDefinitionDTO{
		ID: comp.Bytes(), Name: "Manager comp", RequiresApproval: true, Active: true,
	}).Error)
	require.NoError(t, f.db.Create(&catalogrepo.DiscountDefinitionDTO{
		ID: retired.Bytes(), Name: "Happy hour", Active: true,
	}).Error)
	require.NoError(t, f.db.Model(&catalogrepo.DiscountDefinitionDTO{}).
		Where("id = ?", retired.Bytes()).Update("active", false).Error)

	definition, err := catalog.Discount(ctx, comp)
	require.NoError(t, err)
	assert.Equal(t, "Manager comp", definition.Name)
	assert.True(t, definition.RequiresApproval)

	_, err = catalog.Discount(ctx, retired)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestItemAvailability(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)
	availability := catalogrepo.NewGormItemAvailability(f.db)

	tracked := kernel.NewUUID()
	require.NoError(t, f.db.Create(&catalogrepo.ItemAvailabilityDTO{
		MenuItemID:     tracked.Bytes(),
		PropertyID:     f.propertyID.Bytes(),
		AvailableCount: 3,
	}).Error)

	count := func() int {
		var row catalogrepo.ItemAvailabilityDTO
		require.NoError(t, f.db.First(&row, "menu_item_id = ?", tracked.Bytes()).Error)
		return row.AvailableCount
	}

	require.NoError(t, availability.Decrement(ctx, tracked, f.propertyID, 2))
	assert.Equal(t, 1, count())

	require.NoError(t, availability.Decrement(ctx, tracked, f.propertyID, 5))
	assert.Equal(t, 0, count())

	require.NoError(t, availability.Restore(ctx, tracked, f.propertyID, 2))
	assert.Equal(t, 2, count())

	require.NoError(t, availability.Decrement(ctx, kernel.NewUUID(), f.propertyID, 1))
}

func TestBusinessDateProvider(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)
	provider := catalogrepo.NewGormBusinessDateProvider(f.db)

	date, err := provider.CurrentBusinessDate(ctx, f.rvcID)
	require.NoError(t, err)
	assert.Equal(t, kernel.BusinessDate("2026-03-14"), date)

	_, err = provider.CurrentBusinessDate(ctx, kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
