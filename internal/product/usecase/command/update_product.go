package command

import (
	"context"
	"fmt"

	"github.com/tair/warehouse-inventory/internal/product/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// UpdateProductCommand replaces every mutable field of a product
type UpdateProductCommand struct {
	ID          uint
	Name        string
	SKU         string
	Description string
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("%w: invalid product id", apperror.ErrInvalidArgument)
	}

	product, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	product.Name = cmd.Name
	product.SKU = cmd.SKU
	product.Description = cmd.Description
	product.Normalize()
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := ensureSKUFree(ctx, h.repo, product.SKU, product.ID); err != nil {
		return nil, err
	}

	if err := h.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}
