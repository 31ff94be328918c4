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

// UpdateInventoryCommand is a partial update; nil fields are left unchanged
type UpdateInventoryCommand struct {
	ID              uint
	WarehouseID     *uint
	ProductID       *uint
	Quantity        *int
	StorageLocation *string
}

func (c *UpdateInventoryCommand) validate() error {
	if err := requireID("id", c.ID); err != nil {
		return err
	}
	if c.WarehouseID != nil {
		if err := requireID("warehouse_id", *c.WarehouseID); err != nil {
			return err
		}
	}
	if c.ProductID != nil {
		if err := requireID("product_id", *c.ProductID); err != nil {
			return err
		}
	}
	if c.Quantity != nil {
		if err := requirePositive("quantity", *c.Quantity); err != nil {
			return err
		}
	}
	if c.StorageLocation != nil {
		loc := strings.TrimSpace(*c.StorageLocation)
		if loc == "" {
			return fmt.Errorf("%w: storage_location must not be blank", apperror.ErrInvalidArgument)
		}
		c.StorageLocation = &loc
	}
	return nil
}

// UpdateInventoryHandler handles update inventory command
type UpdateInventoryHandler struct {
	tx domain.TxManager
}

// NewUpdateInventoryHandler creates a new update inventory handler
func NewUpdateInventoryHandler(tx domain.TxManager) *UpdateInventoryHandler {
	return &UpdateInventoryHandler{tx: tx}
}

// Handle overwrites the given fields. The effective warehouse must hold the new
// quantity on top of everything else it stores. When the record ends up on a
// (warehouse, product) pair another record already holds, the two are merged
// into that other record and this one is removed.
func (h *UpdateInventoryHandler) Handle(ctx context.Context, cmd UpdateInventoryCommand) (*domain.Inventory, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	var result *domain.Inventory
	var mergedFrom uint

	err := h.tx.WithinTx(ctx, func(tx domain.Tx) error {
		record, err := tx.Inventory.FindByID(ctx, cmd.ID)
		if err != nil {
			return err
		}

		warehouseID := record.WarehouseID
		if cmd.WarehouseID != nil {
			warehouseID = *cmd.WarehouseID
		}
		warehouse, err := tx.Warehouses.FindByIDForUpdate(ctx, warehouseID)
		if err != nil {
			return err
		}

		product := record.Product
		if cmd.ProductID != nil {
			if product, err = tx.Products.FindByID(ctx, *cmd.ProductID); err != nil {
				return err
			}
		}

		record.WarehouseID, record.Warehouse = warehouse.ID, warehouse
		record.ProductID, record.Product = product.ID, product
		if cmd.Quantity != nil {
			record.Quantity = *cmd.Quantity
		}
		if cmd.StorageLocation != nil {
			record.StorageLocation = *cmd.StorageLocation
		}

		if err := ensureCapacity(ctx, tx.Inventory, warehouse, record.ID, record.Quantity); err != nil {
			return err
		}

		other, err := tx.Inventory.FindByWarehouseAndProduct(ctx, warehouse.ID, product.ID)
		switch {
		case err == nil && other.ID != record.ID:
			other.Quantity += record.Quantity
			if err := tx.Inventory.Delete(ctx, record.ID); err != nil {
				return err
			}
			if err := tx.Inventory.Update(ctx, other); err != nil {
				return err
			}
			other.Warehouse, other.Product = warehouse, product
			result = other
			mergedFrom = record.ID
			return nil
		case err == nil, errors.Is(err, apperror.ErrNotFound):
			if err := tx.Inventory.Update(ctx, record); err != nil {
				return err
			}
			result = record
			return nil
		default:
			return err
		}
	})
	observeCapacity("update", err)
	if err != nil {
		return nil, err
	}

	if mergedFrom != 0 {
		mergesTotal.Inc()
		logger.Info(ctx).
			Uint("removed_inventory_id", mergedFrom).
			Uint("inventory_id", result.ID).
			Int("quantity", result.Quantity).
			Msg("Updated record merged into existing record")
	}
	return result, nil
}
