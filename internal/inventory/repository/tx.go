package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	productdomain "github.com/tair/warehouse-inventory/internal/product/domain"
	productrepo "github.com/tair/warehouse-inventory/internal/product/repository"
	warehousedomain "github.com/tair/warehouse-inventory/internal/warehouse/domain"
	warehouserepo "github.com/tair/warehouse-inventory/internal/warehouse/repository"
)

// GormTxManager runs ledger operations inside a single Postgres transaction
type GormTxManager struct {
	db *gorm.DB
}

func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// WithinTx hands fn repositories bound to a fresh transaction. GORM commits
// when fn returns nil and rolls back otherwise.
func (m *GormTxManager) WithinTx(ctx context.Context, fn func(tx domain.Tx) error) error {
	return m.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		return fn(bind(gtx))
	})
}

func bind(db *gorm.DB) domain.Tx {
	return domain.Tx{
		Inventory:  NewTracingInventoryRepository(NewGormInventoryRepository(db)),
		Warehouses: warehouserepo.NewGormWarehouseRepository(db),
		Products:   productrepo.NewTracingProductRepository(productrepo.NewGormProductRepository(db)),
	}
}

// NewGormStores builds the Postgres persistence surface
func NewGormStores(db *gorm.DB) domain.Stores {
	tx := bind(db)
	return domain.Stores{
		Tx:         NewGormTxManager(db),
		Inventory:  tx.Inventory,
		Warehouses: tx.Warehouses,
		Products:   tx.Products,
	}
}

// Migrate creates or updates the schema. Order follows the foreign keys.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&productdomain.Product{},
		&warehousedomain.Warehouse{},
		&domain.Inventory{},
	)
}
