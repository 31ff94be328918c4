package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/warehouse-inventory/internal/warehouse/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
	"github.com/tair/warehouse-inventory/pkg/database"
)

type GormWarehouseRepository struct {
	db *gorm.DB
}

func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

func (r *GormWarehouseRepository) Create(ctx context.Context, warehouse *domain.Warehouse) error {
	err := r.db.WithContext(ctx).Create(warehouse).Error
	return database.TranslateError(err, "create warehouse")
}

func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uint) (*domain.Warehouse, error) {
	var warehouse domain.Warehouse
	if err := r.db.WithContext(ctx).First(&warehouse, id).Error; err != nil {
		return nil, database.TranslateError(err, fmt.Sprintf("warehouse %d", id))
	}
	return &warehouse, nil
}

// FindByIDForUpdate issues SELECT ... FOR UPDATE; only meaningful on a transaction handle
func (r *GormWarehouseRepository) FindByIDForUpdate(ctx context.Context, id uint) (*domain.Warehouse, error) {
	var warehouse domain.Warehouse
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&warehouse, id).Error
	if err != nil {
		return nil, database.TranslateError(err, fmt.Sprintf("warehouse %d", id))
	}
	return &warehouse, nil
}

func (r *GormWarehouseRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Warehouse, error) {
	var warehouses []domain.Warehouse
	q := r.db.WithContext(ctx).Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	err := q.Find(&warehouses).Error
	return warehouses, database.TranslateError(err, "list warehouses")
}

func (r *GormWarehouseRepository) Update(ctx context.Context, warehouse *domain.Warehouse) error {
	res := r.db.WithContext(ctx).Model(warehouse).
		Select("name", "location", "max_capacity", "updated_at").
		Updates(warehouse)
	if res.Error != nil {
		return database.TranslateError(res.Error, fmt.Sprintf("update warehouse %d", warehouse.ID))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("warehouse %d: %w", warehouse.ID, apperror.ErrNotFound)
	}
	return nil
}

func (r *GormWarehouseRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Warehouse{}, id)
	if res.Error != nil {
		return database.TranslateError(res.Error, fmt.Sprintf("delete warehouse %d", id))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("warehouse %d: %w", id, apperror.ErrNotFound)
	}
	return nil
}

func (r *GormWarehouseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Warehouse{}).Count(&count).Error
	return count, database.TranslateError(err, "count warehouses")
}
