package command

import (
	"context"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
)

// DeleteInventoryCommand represents the command to delete an inventory record
type DeleteInventoryCommand struct {
	ID uint
}

// DeleteInventoryHandler handles delete inventory command
type DeleteInventoryHandler struct {
	repo domain.InventoryRepository
}

// NewDeleteInventoryHandler creates a new delete inventory handler
func NewDeleteInventoryHandler(repo domain.InventoryRepository) *DeleteInventoryHandler {
	return &DeleteInventoryHandler{repo: repo}
}

// Handle executes the delete inventory command
func (h *DeleteInventoryHandler) Handle(ctx context.Context, cmd DeleteInventoryCommand) error {
	if err := requireID("id", cmd.ID); err != nil {
		return err
	}
	return h.repo.Delete(ctx, cmd.ID)
}
