package command

import (
	"context"
	"fmt"

	"github.com/tair/warehouse-inventory/internal/product/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID uint
}

// DeleteProductHandler handles product deletion command
type DeleteProductHandler struct {
	repo domain.ProductRepository
	refs domain.StockReferences
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository, refs domain.StockReferences) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo, refs: refs}
}

// Handle deletes a product that no inventory record refers to
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("%w: invalid product id", apperror.ErrInvalidArgument)
	}

	if _, err := h.repo.FindByID(ctx, cmd.ID); err != nil {
		return err
	}

	refs, err := h.refs.CountByProduct(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: product %d is still stocked in %d inventory records", apperror.ErrConflict, cmd.ID, refs)
	}

	return h.repo.Delete(ctx, cmd.ID)
}
