package command

import (
	"context"
	"fmt"

	"github.com/tair/warehouse-inventory/internal/warehouse/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// DeleteWarehouseCommand represents the command to delete a warehouse
type DeleteWarehouseCommand struct {
	ID uint
}

// DeleteWarehouseHandler handles warehouse deletion command
type DeleteWarehouseHandler struct {
	repo  domain.WarehouseRepository
	stock domain.StockReader
}

// NewDeleteWarehouseHandler creates a new delete warehouse handler
func NewDeleteWarehouseHandler(repo domain.WarehouseRepository, stock domain.StockReader) *DeleteWarehouseHandler {
	return &DeleteWarehouseHandler{repo: repo, stock: stock}
}

// Handle deletes an empty warehouse
func (h *DeleteWarehouseHandler) Handle(ctx context.Context, cmd DeleteWarehouseCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("%w: invalid warehouse id", apperror.ErrInvalidArgument)
	}

	if _, err := h.repo.FindByID(ctx, cmd.ID); err != nil {
		return err
	}

	records, err := h.stock.CountByWarehouse(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if records > 0 {
		return fmt.Errorf("%w: warehouse %d still holds %d inventory records", apperror.ErrConflict, cmd.ID, records)
	}

	return h.repo.Delete(ctx, cmd.ID)
}
