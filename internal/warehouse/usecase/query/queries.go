package query

import (
	"context"
	"fmt"

	"github.com/tair/warehouse-inventory/internal/warehouse/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// GetWarehouseQuery represents the query to get a warehouse by ID
type GetWarehouseQuery struct {
	ID uint
}

// GetWarehouseHandler handles get warehouse query
type GetWarehouseHandler struct {
	repo domain.WarehouseRepository
}

func NewGetWarehouseHandler(repo domain.WarehouseRepository) *GetWarehouseHandler {
	return &GetWarehouseHandler{repo: repo}
}

func (h *GetWarehouseHandler) Handle(ctx context.Context, query GetWarehouseQuery) (*domain.Warehouse, error) {
	if query.ID == 0 {
		return nil, fmt.Errorf("%w: invalid warehouse id", apperror.ErrInvalidArgument)
	}
	return h.repo.FindByID(ctx, query.ID)
}

// ListWarehousesQuery lists warehouses. Limit 0 lists everything.
type ListWarehousesQuery struct {
	Limit  int
	Offset int
}

// WarehousePage is one page of warehouses plus the total count
type WarehousePage struct {
	Items []domain.Warehouse
	Total int64
}

// ListWarehousesHandler handles list warehouses query
type ListWarehousesHandler struct {
	repo domain.WarehouseRepository
}

func NewListWarehousesHandler(repo domain.WarehouseRepository) *ListWarehousesHandler {
	return &ListWarehousesHandler{repo: repo}
}

func (h *ListWarehousesHandler) Handle(ctx context.Context, query ListWarehousesQuery) (*WarehousePage, error) {
	warehouses, err := h.repo.FindAll(ctx, query.Limit, query.Offset)
	if err != nil {
		return nil, err
	}
	total, err := h.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if warehouses == nil {
		warehouses = []domain.Warehouse{}
	}
	return &WarehousePage{Items: warehouses, Total: total}, nil
}

// GetLoadQuery asks how full a warehouse is
type GetLoadQuery struct {
	ID uint
}

// GetLoadHandler handles get load query
type GetLoadHandler struct {
	repo  domain.WarehouseRepository
	stock domain.StockReader
}

func NewGetLoadHandler(repo domain.WarehouseRepository, stock domain.StockReader) *GetLoadHandler {
	return &GetLoadHandler{repo: repo, stock: stock}
}

func (h *GetLoadHandler) Handle(ctx context.Context, query GetLoadQuery) (*domain.Load, error) {
	if query.ID == 0 {
		return nil, fmt.Errorf("%w: invalid warehouse id", apperror.ErrInvalidArgument)
	}
	warehouse, err := h.repo.FindByID(ctx, query.ID)
	if err != nil {
		return nil, err
	}
	load, err := h.stock.SumQuantity(ctx, warehouse.ID, 0)
	if err != nil {
		return nil, err
	}
	l := domain.LoadOf(warehouse, load)
	return &l, nil
}
