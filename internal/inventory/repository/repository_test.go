package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	productdomain "github.com/tair/warehouse-inventory/internal/product/domain"
	warehousedomain "github.com/tair/warehouse-inventory/internal/warehouse/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// openTestTx returns repositories bound to a transaction that is rolled back after the test
func openTestTx(t *testing.T) domain.Tx {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	require.NoError(t, Migrate(db))

	gtx := db.Begin()
	require.NoError(t, gtx.Error)
	t.Cleanup(func() {
		gtx.Rollback()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return bind(gtx)
}

func seed(t *testing.T, tx domain.Tx, capacity int) (*warehousedomain.Warehouse, *productdomain.Product) {
	t.Helper()
	ctx := context.Background()
	w := &warehousedomain.Warehouse{Name: "North", Location: "Oslo", MaxCapacity: capacity}
	require.NoError(t, tx.Warehouses.Create(ctx, w))
	p := &productdomain.Product{Name: "Bolt", SKU: "BOLT-" + t.Name()}
	require.NoError(t, tx.Products.Create(ctx, p))
	return w, p
}

func TestGormInventoryRepository_CRUDAndAggregates(t *testing.T) {
	tx := openTestTx(t)
	ctx := context.Background()
	w, p := seed(t, tx, 100)

	inv := &domain.Inventory{WarehouseID: w.ID, ProductID: p.ID, Quantity: 40, StorageLocation: "A-1", Warehouse: w, Product: p}
	require.NoError(t, tx.Inventory.Create(ctx, inv))
	require.NotZero(t, inv.ID)

	got, err := tx.Inventory.FindByWarehouseAndProduct(ctx, w.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, got.ID)
	require.NotNil(t, got.Warehouse)
	require.NotNil(t, got.Product)
	assert.Equal(t, "North", got.Warehouse.Name)

	load, err := tx.Inventory.SumQuantity(ctx, w.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(40), load)

	load, err = tx.Inventory.SumQuantity(ctx, w.ID, inv.ID)
	require.NoError(t, err)
	assert.Zero(t, load)

	totals, err := tx.Inventory.Totals(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, totals.Units, int64(40))

	loads, err := tx.Inventory.LoadByWarehouse(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(40), loads[w.ID])

	got.Quantity = 55
	require.NoError(t, tx.Inventory.Update(ctx, got))
	reloaded, err := tx.Inventory.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 55, reloaded.Quantity)

	require.NoError(t, tx.Inventory.Delete(ctx, inv.ID))
	_, err = tx.Inventory.FindByID(ctx, inv.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.ErrorIs(t, tx.Inventory.Delete(ctx, inv.ID), apperror.ErrNotFound)
}

func TestGormInventoryRepository_UniqueIndex(t *testing.T) {
	tx := openTestTx(t)
	ctx := context.Background()
	w, p := seed(t, tx, 100)

	require.NoError(t, tx.Inventory.Create(ctx, &domain.Inventory{WarehouseID: w.ID, ProductID: p.ID, Quantity: 1, StorageLocation: "A"}))

	// a failed statement aborts the Postgres transaction, so this is the last write of the test
	err := tx.Inventory.Create(ctx, &domain.Inventory{WarehouseID: w.ID, ProductID: p.ID, Quantity: 1, StorageLocation: "B"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestGormWarehouseRepository_LockAndNotFound(t *testing.T) {
	tx := openTestTx(t)
	ctx := context.Background()
	w, _ := seed(t, tx, 10)

	locked, err := tx.Warehouses.FindByIDForUpdate(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, locked.MaxCapacity)

	_, err = tx.Warehouses.FindByID(ctx, w.ID+100000)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
