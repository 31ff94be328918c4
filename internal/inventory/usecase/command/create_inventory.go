package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
	"github.com/tair/warehouse-inventory/pkg/logger"
)

// CreateInventoryCommand represents stock arriving at a warehouse
type CreateInventoryCommand struct {
	WarehouseID     uint
	ProductID       uint
	Quantity        int
	StorageLocation string
}

// CreateInventoryHandler handles create inventory command
type CreateInventoryHandler struct {
	tx domain.TxManager
}

// NewCreateInventoryHandler creates a new create inventory handler
func NewCreateInventoryHandler(tx domain.TxManager) *CreateInventoryHandler {
	return &CreateInventoryHandler{tx: tx}
}

// Handle stores the stock, merging into the existing record for the same
// (warehouse, product) pair. A merge keeps the existing storage location.
func (h *CreateInventoryHandler) Handle(ctx context.Context, cmd CreateInventoryCommand) (*domain.Inventory, error) {
	cmd.StorageLocation = strings.TrimSpace(cmd.StorageLocation)
	if err := requireID("warehouse_id", cmd.WarehouseID); err != nil {
		return nil, err
	}
	if err := requireID("product_id", cmd.ProductID); err != nil {
		return nil, err
	}
	if err := requirePositive("quantity", cmd.Quantity); err != nil {
		return nil, err
	}
	if cmd.StorageLocation == "" {
		return nil, fmt.Errorf("%w: storage_location is required", apperror.ErrInvalidArgument)
	}

	var result *domain.Inventory
	merged := false

	err := h.tx.WithinTx(ctx, func(tx domain.Tx) error {
		warehouse, err := tx.Warehouses.FindByIDForUpdate(ctx, cmd.WarehouseID)
		if err != nil {
			return err
		}
		product, err := tx.Products.FindByID(ctx, cmd.ProductID)
		if err != nil {
			return err
		}

		if err := ensureCapacity(ctx, tx.Inventory, warehouse, 0, cmd.Quantity); err != nil {
			return err
		}

		existing, err := tx.Inventory.FindByWarehouseAndProduct(ctx, warehouse.ID, product.ID)
		switch {
		case err == nil:
			existing.Quantity += cmd.Quantity
			if err := tx.Inventory.Update(ctx, existing); err != nil {
				return err
			}
			result = existing
			merged = true
		case errors.Is(err, apperror.ErrNotFound):
			record := &domain.Inventory{
				WarehouseID:     warehouse.ID,
				ProductID:       product.ID,
				Quantity:        cmd.Quantity,
				StorageLocation: cmd.StorageLocation,
			}
			if err := tx.Inventory.Create(ctx, record); err != nil {
				return err
			}
			result = record
		default:
			return err
		}

		result.Warehouse = warehouse
		result.Product = product
		return nil
	})
	observeCapacity("create", err)
	if err != nil {
		return nil, err
	}

	if merged {
		mergesTotal.Inc()
		logger.Info(ctx).
			Uint("inventory_id", result.ID).
			Uint("warehouse_id", result.WarehouseID).
			Uint("product_id", result.ProductID).
			Int("added", cmd.Quantity).
			Int("quantity", result.Quantity).
			Msg("Stock merged into existing record")
	}
	return result, nil
}
