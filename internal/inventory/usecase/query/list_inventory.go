package query

import (
	"context"
	"fmt"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// ListInventoryQuery represents the query to list records. Limit 0 lists
// every matching record; listing is not capped.
type ListInventoryQuery struct {
	WarehouseID uint
	ProductID   uint
	Limit       int
	Offset      int
}

// InventoryPage is one page of records plus the number of matching rows
type InventoryPage struct {
	Items []domain.Inventory
	Total int64
}

// ListInventoryHandler handles list inventory query
type ListInventoryHandler struct {
	repo domain.InventoryRepository
}

// NewListInventoryHandler creates a new list inventory handler
func NewListInventoryHandler(repo domain.InventoryRepository) *ListInventoryHandler {
	return &ListInventoryHandler{repo: repo}
}

// Handle executes the list inventory query
func (h *ListInventoryHandler) Handle(ctx context.Context, query ListInventoryQuery) (*InventoryPage, error) {
	if query.Limit < 0 {
		return nil, fmt.Errorf("%w: limit cannot be negative", apperror.ErrInvalidArgument)
	}
	if query.Offset < 0 {
		return nil, fmt.Errorf("%w: offset cannot be negative", apperror.ErrInvalidArgument)
	}

	filter := domain.Filter{
		WarehouseID: query.WarehouseID,
		ProductID:   query.ProductID,
		Limit:       query.Limit,
		Offset:      query.Offset,
	}

	items, err := h.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := h.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Inventory{}
	}
	return &InventoryPage{Items: items, Total: total}, nil
}
