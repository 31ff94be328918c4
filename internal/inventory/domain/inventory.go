package domain

import (
	"context"
	"time"

	productdomain "github.com/tair/warehouse-inventory/internal/product/domain"
	warehousedomain "github.com/tair/warehouse-inventory/internal/warehouse/domain"
)

// TransferredLocation labels records created at a destination by a transfer
const TransferredLocation = "Transferred"

// Inventory is the ledger row for one (warehouse, product) pair
type Inventory struct {
	ID              uint                       `json:"id" gorm:"primaryKey"`
	WarehouseID     uint                       `json:"warehouse_id" gorm:"not null;uniqueIndex:idx_inventory_warehouse_product,priority:1"`
	ProductID       uint                       `json:"product_id" gorm:"not null;uniqueIndex:idx_inventory_warehouse_product,priority:2;index:idx_inventory_product"`
	Quantity        int                        `json:"quantity" gorm:"not null;check:chk_inventories_quantity,quantity >= 1"`
	StorageLocation string                     `json:"storage_location" gorm:"not null"`
	Warehouse       *warehousedomain.Warehouse `json:"warehouse,omitempty" gorm:"foreignKey:WarehouseID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Product         *productdomain.Product     `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

// TableName specifies the table name
func (Inventory) TableName() string {
	return "inventories"
}

// Filter narrows FindAll. Zero values mean no restriction; Limit 0 returns every row.
type Filter struct {
	WarehouseID uint
	ProductID   uint
	Limit       int
	Offset      int
}

// Totals summarizes the whole ledger
type Totals struct {
	Records          int64 `json:"records"`
	Units            int64 `json:"units"`
	DistinctProducts int64 `json:"distinct_products"`
}

// InventoryRepository defines the contract for ledger data access.
// Reads return records with Warehouse and Product attached; writes never
// touch the associated rows. Lookups of missing rows fail with apperror.ErrNotFound.
type InventoryRepository interface {
	Create(ctx context.Context, inventory *Inventory) error
	FindByID(ctx context.Context, id uint) (*Inventory, error)
	FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uint) (*Inventory, error)
	FindAll(ctx context.Context, filter Filter) ([]Inventory, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Update(ctx context.Context, inventory *Inventory) error
	Delete(ctx context.Context, id uint) error
	CountByProduct(ctx context.Context, productID uint) (int64, error)
	Totals(ctx context.Context) (Totals, error)
	// LoadByWarehouse returns the summed quantity per warehouse id; empty warehouses are absent
	LoadByWarehouse(ctx context.Context) (map[uint]int64, error)

	warehousedomain.StockReader
}

// Tx groups repositories bound to one database transaction
type Tx struct {
	Inventory  InventoryRepository
	Warehouses warehousedomain.WarehouseRepository
	Products   productdomain.ProductRepository
}

// TxManager runs fn inside a transaction. A non-nil error from fn rolls back
// every write made through tx.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}

// Stores is the complete persistence surface of the service
type Stores struct {
	Tx         TxManager
	Inventory  InventoryRepository
	Warehouses warehousedomain.WarehouseRepository
	Products   productdomain.ProductRepository
}

// IdempotencyStore remembers request keys for a bounded time
type IdempotencyStore interface {
	// Reserve claims key; false means it was already claimed
	Reserve(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// TransferResult describes a committed transfer
type TransferResult struct {
	ProductID              uint `json:"product_id"`
	SourceWarehouseID      uint `json:"source_warehouse_id"`
	DestinationWarehouseID uint `json:"destination_warehouse_id"`
	Amount                 int  `json:"amount"`
	SourceRemaining        int  `json:"source_remaining"`
	DestinationQuantity    int  `json:"destination_quantity"`
}

// EventPublisher announces committed ledger changes
type EventPublisher interface {
	PublishStockTransferred(ctx context.Context, result TransferResult) error
}
