package query

import (
	"context"
	"fmt"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	productdomain "github.com/tair/warehouse-inventory/internal/product/domain"
	warehousedomain "github.com/tair/warehouse-inventory/internal/warehouse/domain"
)

// GetStatsQuery represents the query to get dashboard statistics
type GetStatsQuery struct{}

// InventoryStats represents dashboard statistics
type InventoryStats struct {
	TotalWarehouses    int64                  `json:"total_warehouses"`
	TotalProducts      int64                  `json:"total_products"`
	TotalRecords       int64                  `json:"total_records"`
	TotalUnits         int64                  `json:"total_units"`
	StockedProducts    int64                  `json:"stocked_products"`
	TotalCapacity      int64                  `json:"total_capacity"`
	OverallUtilization float64                `json:"overall_utilization"`
	Warehouses         []warehousedomain.Load `json:"warehouses"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	inventory  domain.InventoryRepository
	warehouses warehousedomain.WarehouseRepository
	products   productdomain.ProductRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(inventory domain.InventoryRepository, warehouses warehousedomain.WarehouseRepository, products productdomain.ProductRepository) *GetStatsHandler {
	return &GetStatsHandler{inventory: inventory, warehouses: warehouses, products: products}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(ctx context.Context, _ GetStatsQuery) (*InventoryStats, error) {
	totals, err := h.inventory.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory totals: %w", err)
	}
	productCount, err := h.products.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get product count: %w", err)
	}
	warehouses, err := h.warehouses.FindAll(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get warehouses: %w", err)
	}
	loads, err := h.inventory.LoadByWarehouse(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get warehouse loads: %w", err)
	}

	stats := &InventoryStats{
		TotalWarehouses: int64(len(warehouses)),
		TotalProducts:   productCount,
		TotalRecords:    totals.Records,
		TotalUnits:      totals.Units,
		StockedProducts: totals.DistinctProducts,
		Warehouses:      make([]warehousedomain.Load, 0, len(warehouses)),
	}
	for i := range warehouses {
		stats.TotalCapacity += int64(warehouses[i].MaxCapacity)
		stats.Warehouses = append(stats.Warehouses, warehousedomain.LoadOf(&warehouses[i], loads[warehouses[i].ID]))
	}
	if stats.TotalCapacity > 0 {
		stats.OverallUtilization = float64(stats.TotalUnits) / float64(stats.TotalCapacity)
	}

	return stats, nil
}
