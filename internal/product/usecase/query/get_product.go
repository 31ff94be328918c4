package query

import (
	"context"
	"fmt"

	"github.com/tair/warehouse-inventory/internal/product/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// GetProductQuery represents the query to get a product by ID
type GetProductQuery struct {
	ID uint
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, query GetProductQuery) (*domain.Product, error) {
	if query.ID == 0 {
		return nil, fmt.Errorf("%w: invalid product id", apperror.ErrInvalidArgument)
	}
	return h.repo.FindByID(ctx, query.ID)
}
