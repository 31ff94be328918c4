package query

import (
	"context"

	"github.com/tair/warehouse-inventory/internal/product/domain"
)

// ListProductsQuery represents the query to list products. Limit 0 lists everything.
type ListProductsQuery struct {
	Limit  int
	Offset int
}

// ProductPage is one page of products plus the total count
type ProductPage struct {
	Items []domain.Product
	Total int64
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, query ListProductsQuery) (*ProductPage, error) {
	products, err := h.repo.FindAll(ctx, query.Limit, query.Offset)
	if err != nil {
		return nil, err
	}
	total, err := h.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return &ProductPage{Items: products, Total: total}, nil
}
