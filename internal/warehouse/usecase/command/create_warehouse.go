package command

import (
	"context"

	"github.com/tair/warehouse-inventory/internal/warehouse/domain"
)

// CreateWarehouseCommand represents the command to create a warehouse
type CreateWarehouseCommand struct {
	Name        string
	Location    string
	MaxCapacity int
}

// CreateWarehouseHandler handles warehouse creation command
type CreateWarehouseHandler struct {
	repo domain.WarehouseRepository
}

// NewCreateWarehouseHandler creates a new create warehouse handler
func NewCreateWarehouseHandler(repo domain.WarehouseRepository) *CreateWarehouseHandler {
	return &CreateWarehouseHandler{repo: repo}
}

// Handle executes the create warehouse command
func (h *CreateWarehouseHandler) Handle(ctx context.Context, cmd CreateWarehouseCommand) (*domain.Warehouse, error) {
	warehouse := &domain.Warehouse{
		Name:        cmd.Name,
		Location:    cmd.Location,
		MaxCapacity: cmd.MaxCapacity,
	}
	warehouse.Normalize()
	if err := warehouse.Validate(); err != nil {
		return nil, err
	}

	if err := h.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}
