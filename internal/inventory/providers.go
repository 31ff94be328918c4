package inventory

import (
	"github.com/google/wire"

	inventoryhttp "github.com/tair/warehouse-inventory/internal/inventory/delivery/http"
	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	inventorycommand "github.com/tair/warehouse-inventory/internal/inventory/usecase/command"
	inventoryquery "github.com/tair/warehouse-inventory/internal/inventory/usecase/query"
	producthttp "github.com/tair/warehouse-inventory/internal/product/delivery/http"
	productdomain "github.com/tair/warehouse-inventory/internal/product/domain"
	productcommand "github.com/tair/warehouse-inventory/internal/product/usecase/command"
	productquery "github.com/tair/warehouse-inventory/internal/product/usecase/query"
	warehousehttp "github.com/tair/warehouse-inventory/internal/warehouse/delivery/http"
	warehousedomain "github.com/tair/warehouse-inventory/internal/warehouse/domain"
	warehousecommand "github.com/tair/warehouse-inventory/internal/warehouse/usecase/command"
	warehousequery "github.com/tair/warehouse-inventory/internal/warehouse/usecase/query"
)

// Handlers groups the HTTP handlers served by the process
type Handlers struct {
	Inventory  *inventoryhttp.InventoryHandler
	Products   *producthttp.ProductHandler
	Warehouses *warehousehttp.WarehouseHandler
}

// ProvideStockReader exposes the inventory repository as the warehouse stock aggregate
func ProvideStockReader(repo domain.InventoryRepository) warehousedomain.StockReader {
	return repo
}

// ProvideStockReferences exposes the inventory repository as the product reference counter
func ProvideStockReferences(repo domain.InventoryRepository) productdomain.StockReferences {
	return repo
}

// StoreSet unpacks the bound stores
var StoreSet = wire.NewSet(
	wire.FieldsOf(new(domain.Stores), "Tx", "Inventory", "Warehouses", "Products"),
	ProvideStockReader,
	ProvideStockReferences,
)

// InventorySet provides the ledger command and query handlers
var InventorySet = wire.NewSet(
	inventorycommand.NewCreateInventoryHandler,
	inventorycommand.NewUpdateInventoryHandler,
	inventorycommand.NewDeleteInventoryHandler,
	inventorycommand.NewTransferStockHandler,
	inventoryquery.NewGetInventoryHandler,
	inventoryquery.NewListInventoryHandler,
	inventoryquery.NewGetStatsHandler,
	inventoryhttp.NewInventoryHandler,
)

// ProductSet provides the catalog command and query handlers
var ProductSet = wire.NewSet(
	productcommand.NewCreateProductHandler,
	productcommand.NewUpdateProductHandler,
	productcommand.NewDeleteProductHandler,
	productquery.NewGetProductHandler,
	productquery.NewListProductsHandler,
	producthttp.NewProductHandler,
)

// WarehouseSet provides the warehouse command and query handlers
var WarehouseSet = wire.NewSet(
	warehousecommand.NewCreateWarehouseHandler,
	warehousecommand.NewUpdateWarehouseHandler,
	warehousecommand.NewDeleteWarehouseHandler,
	warehousequery.NewGetWarehouseHandler,
	warehousequery.NewListWarehousesHandler,
	warehousequery.NewGetLoadHandler,
	warehousehttp.NewWarehouseHandler,
)
