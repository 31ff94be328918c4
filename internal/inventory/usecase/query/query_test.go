package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/memstore"
	productdomain "github.com/tair/warehouse-inventory/internal/product/domain"
	warehousedomain "github.com/tair/warehouse-inventory/internal/warehouse/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

func seeded(t *testing.T) (domain.Stores, []warehousedomain.Warehouse, []productdomain.Product) {
	t.Helper()
	ctx := context.Background()
	stores := memstore.New().Stores()

	warehouses := []warehousedomain.Warehouse{
		{Name: "North", Location: "Oslo", MaxCapacity: 100},
		{Name: "South", Location: "Rome", MaxCapacity: 300},
		{Name: "Empty", Location: "Bern", MaxCapacity: 100},
	}
	for i := range warehouses {
		require.NoError(t, stores.Warehouses.Create(ctx, &warehouses[i]))
	}
	products := []productdomain.Product{{Name: "Bolt", SKU: "B"}, {Name: "Nut", SKU: "N"}, {Name: "Gear", SKU: "G"}}
	for i := range products {
		require.NoError(t, stores.Products.Create(ctx, &products[i]))
	}

	rows := []domain.Inventory{
		{WarehouseID: warehouses[0].ID, ProductID: products[0].ID, Quantity: 25, StorageLocation: "A"},
		{WarehouseID: warehouses[0].ID, ProductID: products[1].ID, Quantity: 25, StorageLocation: "B"},
		{WarehouseID: warehouses[1].ID, ProductID: products[0].ID, Quantity: 150, StorageLocation: "C"},
	}
	for i := range rows {
		require.NoError(t, stores.Inventory.Create(ctx, &rows[i]))
	}
	return stores, warehouses, products
}

func TestGetInventory(t *testing.T) {
	stores, _, _ := seeded(t)
	h := NewGetInventoryHandler(stores.Inventory)

	inv, err := h.Handle(context.Background(), GetInventoryQuery{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Bolt", inv.Product.Name)
	assert.Equal(t, "North", inv.Warehouse.Name)

	_, err = h.Handle(context.Background(), GetInventoryQuery{ID: 42})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = h.Handle(context.Background(), GetInventoryQuery{})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}

func TestListInventory(t *testing.T) {
	stores, warehouses, products := seeded(t)
	h := NewListInventoryHandler(stores.Inventory)
	ctx := context.Background()

	page, err := h.Handle(ctx, ListInventoryQuery{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, uint(1), page.Items[0].ID)

	page, err = h.Handle(ctx, ListInventoryQuery{WarehouseID: warehouses[0].ID, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, products[1].ID, page.Items[0].ProductID)
	assert.Equal(t, int64(2), page.Total)

	page, err = h.Handle(ctx, ListInventoryQuery{WarehouseID: warehouses[2].ID})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)

	page, err = h.Handle(ctx, ListInventoryQuery{Limit: 5000})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)

	_, err = h.Handle(ctx, ListInventoryQuery{Limit: -1})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}

func TestGetStats(t *testing.T) {
	stores, warehouses, _ := seeded(t)
	h := NewGetStatsHandler(stores.Inventory, stores.Warehouses, stores.Products)

	stats, err := h.Handle(context.Background(), GetStatsQuery{})
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalWarehouses)
	assert.Equal(t, int64(3), stats.TotalProducts)
	assert.Equal(t, int64(3), stats.TotalRecords)
	assert.Equal(t, int64(200), stats.TotalUnits)
	assert.Equal(t, int64(2), stats.StockedProducts)
	assert.Equal(t, int64(500), stats.TotalCapacity)
	assert.InDelta(t, 0.4, stats.OverallUtilization, 1e-9)

	require.Len(t, stats.Warehouses, 3)
	assert.Equal(t, warehouses[0].ID, stats.Warehouses[0].WarehouseID)
	assert.Equal(t, int64(50), stats.Warehouses[0].Load)
	assert.InDelta(t, 0.5, stats.Warehouses[1].Utilization, 1e-9)
	assert.Zero(t, stats.Warehouses[2].Load)
	assert.Equal(t, int64(100), stats.Warehouses[2].Available)
}
