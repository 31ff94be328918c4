package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// Warehouse represents a storage site with a ceiling on the units it holds
type Warehouse struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Location    string    `json:"location" gorm:"not null"`
	MaxCapacity int       `json:"max_capacity" gorm:"not null;check:chk_warehouses_max_capacity,max_capacity >= 1"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Warehouse) TableName() string {
	return "warehouses"
}

// Normalize trims surrounding whitespace from the text fields
func (w *Warehouse) Normalize() {
	w.Name = strings.TrimSpace(w.Name)
	w.Location = strings.TrimSpace(w.Location)
}

// Validate checks the field constraints
func (w *Warehouse) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("%w: warehouse name is required", apperror.ErrInvalidArgument)
	}
	if w.Location == "" {
		return fmt.Errorf("%w: warehouse location is required", apperror.ErrInvalidArgument)
	}
	if w.MaxCapacity < 1 {
		return fmt.Errorf("%w: max_capacity must be at least 1", apperror.ErrInvalidArgument)
	}
	return nil
}

// Fits reports whether adding qty units to a warehouse already holding load stays within capacity
func (w *Warehouse) Fits(load int64, qty int) bool {
	return load+int64(qty) <= int64(w.MaxCapacity)
}

// Load describes how full a warehouse is
type Load struct {
	WarehouseID uint    `json:"warehouse_id"`
	Name        string  `json:"name"`
	Load        int64   `json:"load"`
	MaxCapacity int     `json:"max_capacity"`
	Available   int64   `json:"available"`
	Utilization float64 `json:"utilization"`
}

// LoadOf builds the Load report for w holding load units
func LoadOf(w *Warehouse, load int64) Load {
	l := Load{
		WarehouseID: w.ID,
		Name:        w.Name,
		Load:        load,
		MaxCapacity: w.MaxCapacity,
		Available:   int64(w.MaxCapacity) - load,
	}
	if l.Available < 0 {
		l.Available = 0
	}
	if w.MaxCapacity > 0 {
		l.Utilization = float64(load) / float64(w.MaxCapacity)
	}
	return l
}

// WarehouseRepository defines the contract for warehouse data access.
// Lookups of missing rows fail with apperror.ErrNotFound.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *Warehouse) error
	FindByID(ctx context.Context, id uint) (*Warehouse, error)
	// FindByIDForUpdate row-locks the warehouse until the enclosing transaction ends
	FindByIDForUpdate(ctx context.Context, id uint) (*Warehouse, error)
	FindAll(ctx context.Context, limit, offset int) ([]Warehouse, error)
	Update(ctx context.Context, warehouse *Warehouse) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// StockReader answers aggregate questions about the stock held at warehouses
type StockReader interface {
	// SumQuantity returns the units stored at the warehouse, ignoring record excludeID (0 excludes nothing)
	SumQuantity(ctx context.Context, warehouseID, excludeID uint) (int64, error)
	CountByWarehouse(ctx context.Context, warehouseID uint) (int64, error)
}
