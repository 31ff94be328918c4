package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	productdomain "github.com/tair/warehouse-inventory/internal/product/domain"
	warehousedomain "github.com/tair/warehouse-inventory/internal/warehouse/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

func seed(t *testing.T, stores domain.Stores) (*warehousedomain.Warehouse, *productdomain.Product) {
	t.Helper()
	ctx := context.Background()
	w := &warehousedomain.Warehouse{Name: "North", Location: "Oslo", MaxCapacity: 100}
	require.NoError(t, stores.Warehouses.Create(ctx, w))
	p := &productdomain.Product{Name: "Bolt", SKU: "B-1"}
	require.NoError(t, stores.Products.Create(ctx, p))
	return w, p
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	store := New()
	stores := store.Stores()
	ctx := context.Background()
	w, p := seed(t, stores)

	boom := errors.New("boom")
	err := stores.Tx.WithinTx(ctx, func(tx domain.Tx) error {
		require.NoError(t, tx.Inventory.Create(ctx, &domain.Inventory{WarehouseID: w.ID, ProductID: p.ID, Quantity: 5, StorageLocation: "A"}))
		n, err := tx.Inventory.Count(ctx, domain.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := stores.Inventory.Count(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWithinTx_TxRepositoriesDoNotRelock(t *testing.T) {
	store := New()
	stores := store.Stores()
	ctx := context.Background()
	w, p := seed(t, stores)

	done := make(chan error, 1)
	go func() {
		done <- stores.Tx.WithinTx(ctx, func(tx domain.Tx) error {
			if _, err := tx.Warehouses.FindByIDForUpdate(ctx, w.ID); err != nil {
				return err
			}
			if _, err := tx.Products.FindByID(ctx, p.ID); err != nil {
				return err
			}
			return tx.Inventory.Create(ctx, &domain.Inventory{WarehouseID: w.ID, ProductID: p.ID, Quantity: 1, StorageLocation: "A"})
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("transaction did not finish")
	}

	n, err := stores.Inventory.Count(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestWithinTx_Commits(t *testing.T) {
	store := New()
	stores := store.Stores()
	ctx := context.Background()
	w, p := seed(t, stores)

	err := stores.Tx.WithinTx(ctx, func(tx domain.Tx) error {
		return tx.Inventory.Create(ctx, &domain.Inventory{WarehouseID: w.ID, ProductID: p.ID, Quantity: 5, StorageLocation: "A"})
	})
	require.NoError(t, err)

	inv, err := stores.Inventory.FindByWarehouseAndProduct(ctx, w.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, inv.Quantity)
	require.NotNil(t, inv.Warehouse)
	require.NotNil(t, inv.Product)
	assert.Equal(t, "B-1", inv.Product.SKU)
}

func TestFailNextCommit(t *testing.T) {
	store := New()
	stores := store.Stores()
	ctx := context.Background()
	w, p := seed(t, stores)

	injected := errors.New("commit failed")
	store.FailNextCommit(injected)

	create := func(tx domain.Tx) error {
		return tx.Inventory.Create(ctx, &domain.Inventory{WarehouseID: w.ID, ProductID: p.ID, Quantity: 5, StorageLocation: "A"})
	}
	assert.ErrorIs(t, stores.Tx.WithinTx(ctx, create), injected)
	require.NoError(t, stores.Tx.WithinTx(ctx, create))

	n, err := stores.Inventory.Count(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestConstraints(t *testing.T) {
	stores := New().Stores()
	ctx := context.Background()
	w, p := seed(t, stores)

	require.NoError(t, stores.Inventory.Create(ctx, &domain.Inventory{WarehouseID: w.ID, ProductID: p.ID, Quantity: 1, StorageLocation: "A"}))

	err := stores.Inventory.Create(ctx, &domain.Inventory{WarehouseID: w.ID, ProductID: p.ID, Quantity: 1, StorageLocation: "B"})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	err = stores.Inventory.Create(ctx, &domain.Inventory{WarehouseID: 999, ProductID: p.ID, Quantity: 1, StorageLocation: "B"})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	assert.ErrorIs(t, stores.Warehouses.Delete(ctx, w.ID), apperror.ErrConflict)
	assert.ErrorIs(t, stores.Products.Delete(ctx, p.ID), apperror.ErrConflict)

	err = stores.Products.Create(ctx, &productdomain.Product{Name: "Other", SKU: "B-1"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestAggregates(t *testing.T) {
	stores := New().Stores()
	ctx := context.Background()
	w, p := seed(t, stores)
	p2 := &productdomain.Product{Name: "Nut", SKU: "N-1"}
	require.NoError(t, stores.Products.Create(ctx, p2))

	a := &domain.Inventory{WarehouseID: w.ID, ProductID: p.ID, Quantity: 10, StorageLocation: "A"}
	require.NoError(t, stores.Inventory.Create(ctx, a))
	require.NoError(t, stores.Inventory.Create(ctx, &domain.Inventory{WarehouseID: w.ID, ProductID: p2.ID, Quantity: 7, StorageLocation: "B"}))

	load, err := stores.Inventory.SumQuantity(ctx, w.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(17), load)

	load, err = stores.Inventory.SumQuantity(ctx, w.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), load)

	totals, err := stores.Inventory.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Totals{Records: 2, Units: 17, DistinctProducts: 2}, totals)

	loads, err := stores.Inventory.LoadByWarehouse(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{w.ID: 17}, loads)

	paged, err := stores.Inventory.FindAll(ctx, domain.Filter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, p2.ID, paged[0].ProductID)

	filtered, err := stores.Inventory.FindAll(ctx, domain.Filter{ProductID: p.ID})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, a.ID, filtered[0].ID)
}

func TestCanceledContext(t *testing.T) {
	stores := New().Stores()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stores.Products.Count(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, stores.Tx.WithinTx(ctx, func(domain.Tx) error { return nil }), context.Canceled)
}
