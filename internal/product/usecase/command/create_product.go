package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/warehouse-inventory/internal/product/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	Name        string
	SKU         string
	Description string
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	product := &domain.Product{
		Name:        cmd.Name,
		SKU:         cmd.SKU,
		Description: cmd.Description,
	}
	product.Normalize()
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := ensureSKUFree(ctx, h.repo, product.SKU, 0); err != nil {
		return nil, err
	}

	if err := h.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ensureSKUFree fails with ErrConflict when a product other than exceptID uses sku.
// The unique index still catches concurrent writers.
func ensureSKUFree(ctx context.Context, repo domain.ProductRepository, sku string, exceptID uint) error {
	existing, err := repo.FindBySKU(ctx, sku)
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != exceptID:
		return fmt.Errorf("%w: sku %q already exists", apperror.ErrConflict, sku)
	default:
		return nil
	}
}
