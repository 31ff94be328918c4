package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
	"github.com/tair/warehouse-inventory/pkg/database"
)

type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Warehouse").Preload("Product")
}

func (r *GormInventoryRepository) Create(ctx context.Context, inventory *domain.Inventory) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(inventory).Error
	return database.TranslateError(err, "create inventory")
}

func (r *GormInventoryRepository) FindByID(ctx context.Context, id uint) (*domain.Inventory, error) {
	var inventory domain.Inventory
	if err := r.preloaded(ctx).First(&inventory, id).Error; err != nil {
		return nil, database.TranslateError(err, fmt.Sprintf("inventory %d", id))
	}
	return &inventory, nil
}

func (r *GormInventoryRepository) FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uint) (*domain.Inventory, error) {
	var inventory domain.Inventory
	err := r.preloaded(ctx).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		First(&inventory).Error
	if err != nil {
		return nil, database.TranslateError(err, fmt.Sprintf("inventory of product %d at warehouse %d", productID, warehouseID))
	}
	return &inventory, nil
}

func applyFilter(q *gorm.DB, filter domain.Filter) *gorm.DB {
	if filter.WarehouseID != 0 {
		q = q.Where("warehouse_id = ?", filter.WarehouseID)
	}
	if filter.ProductID != 0 {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	return q
}

func (r *GormInventoryRepository) FindAll(ctx context.Context, filter domain.Filter) ([]domain.Inventory, error) {
	var inventories []domain.Inventory
	q := applyFilter(r.preloaded(ctx), filter).Order("id")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	err := q.Find(&inventories).Error
	return inventories, database.TranslateError(err, "list inventory")
}

func (r *GormInventoryRepository) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	var count int64
	err := applyFilter(r.db.WithContext(ctx).Model(&domain.Inventory{}), filter).Count(&count).Error
	return count, database.TranslateError(err, "count inventory")
}

func (r *GormInventoryRepository) Update(ctx context.Context, inventory *domain.Inventory) error {
	res := r.db.WithContext(ctx).Model(inventory).
		Omit(clause.Associations).
		Select("warehouse_id", "product_id", "quantity", "storage_location", "updated_at").
		Updates(inventory)
	if res.Error != nil {
		return database.TranslateError(res.Error, fmt.Sprintf("update inventory %d", inventory.ID))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("inventory %d: %w", inventory.ID, apperror.ErrNotFound)
	}
	return nil
}

func (r *GormInventoryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Inventory{}, id)
	if res.Error != nil {
		return database.TranslateError(res.Error, fmt.Sprintf("delete inventory %d", id))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("inventory %d: %w", id, apperror.ErrNotFound)
	}
	return nil
}

func (r *GormInventoryRepository) SumQuantity(ctx context.Context, warehouseID, excludeID uint) (int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&domain.Inventory{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("warehouse_id = ?", warehouseID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Scan(&total).Error; err != nil {
		return 0, database.TranslateError(err, fmt.Sprintf("load of warehouse %d", warehouseID))
	}
	return total, nil
}

func (r *GormInventoryRepository) CountByWarehouse(ctx context.Context, warehouseID uint) (int64, error) {
	return r.Count(ctx, domain.Filter{WarehouseID: warehouseID})
}

func (r *GormInventoryRepository) CountByProduct(ctx context.Context, productID uint) (int64, error) {
	return r.Count(ctx, domain.Filter{ProductID: productID})
}

func (r *GormInventoryRepository) Totals(ctx context.Context) (domain.Totals, error) {
	var totals domain.Totals
	err := r.db.WithContext(ctx).Model(&domain.Inventory{}).
		Select("COUNT(*) AS records, COALESCE(SUM(quantity), 0) AS units, COUNT(DISTINCT product_id) AS distinct_products").
		Scan(&totals).Error
	return totals, database.TranslateError(err, "inventory totals")
}

type warehouseLoad struct {
	WarehouseID uint
	Total       int64
}

func (r *GormInventoryRepository) LoadByWarehouse(ctx context.Context) (map[uint]int64, error) {
	var rows []warehouseLoad
	err := r.db.WithContext(ctx).Model(&domain.Inventory{}).
		Select("warehouse_id, SUM(quantity) AS total").
		Group("warehouse_id").
		Scan(&rows).Error
	if err != nil {
		return nil, database.TranslateError(err, "warehouse loads")
	}

	loads := make(map[uint]int64, len(rows))
	for _, row := range rows {
		loads[row.WarehouseID] = row.Total
	}
	return loads, nil
}
