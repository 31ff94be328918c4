package command

import (
	"context"
	"fmt"

	inventorydomain "github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/internal/warehouse/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// UpdateWarehouseCommand replaces every mutable field of a warehouse
type UpdateWarehouseCommand struct {
	ID          uint
	Name        string
	Location    string
	MaxCapacity int
}

// UpdateWarehouseHandler handles warehouse update command
type UpdateWarehouseHandler struct {
	tx inventorydomain.TxManager
}

// NewUpdateWarehouseHandler creates a new update warehouse handler
func NewUpdateWarehouseHandler(tx inventorydomain.TxManager) *UpdateWarehouseHandler {
	return &UpdateWarehouseHandler{tx: tx}
}

// Handle overwrites the warehouse. The capacity may not drop below the units
// already stored there; the row lock keeps ledger writers out meanwhile.
func (h *UpdateWarehouseHandler) Handle(ctx context.Context, cmd UpdateWarehouseCommand) (*domain.Warehouse, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("%w: invalid warehouse id", apperror.ErrInvalidArgument)
	}
	candidate := domain.Warehouse{Name: cmd.Name, Location: cmd.Location, MaxCapacity: cmd.MaxCapacity}
	candidate.Normalize()
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	var result *domain.Warehouse
	err := h.tx.WithinTx(ctx, func(tx inventorydomain.Tx) error {
		warehouse, err := tx.Warehouses.FindByIDForUpdate(ctx, cmd.ID)
		if err != nil {
			return err
		}

		load, err := tx.Inventory.SumQuantity(ctx, warehouse.ID, 0)
		if err != nil {
			return err
		}
		if load > int64(candidate.MaxCapacity) {
			return fmt.Errorf("%w: warehouse %d holds %d units, max_capacity %d is too low",
				apperror.ErrCapacityExceeded, warehouse.ID, load, candidate.MaxCapacity)
		}

		warehouse.Name = candidate.Name
		warehouse.Location = candidate.Location
		warehouse.MaxCapacity = candidate.MaxCapacity
		if err := tx.Warehouses.Update(ctx, warehouse); err != nil {
			return err
		}
		result = warehouse
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
