package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/warehouse-inventory/internal/product/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
	"github.com/tair/warehouse-inventory/pkg/database"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	err := r.db.WithContext(ctx).Create(product).Error
	return database.TranslateError(err, "create product")
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, database.TranslateError(err, fmt.Sprintf("product %d", id))
	}
	return &product, nil
}

func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&product).Error; err != nil {
		return nil, database.TranslateError(err, fmt.Sprintf("product sku %q", sku))
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	q := r.db.WithContext(ctx).Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	err := q.Find(&products).Error
	return products, database.TranslateError(err, "list products")
}

func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product) error {
	res := r.db.WithContext(ctx).Model(product).
		Select("name", "sku", "description", "updated_at").
		Updates(product)
	if res.Error != nil {
		return database.TranslateError(res.Error, fmt.Sprintf("update product %d", product.ID))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", product.ID, apperror.ErrNotFound)
	}
	return nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return database.TranslateError(res.Error, fmt.Sprintf("delete product %d", id))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, apperror.ErrNotFound)
	}
	return nil
}

func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error
	return count, database.TranslateError(err, "count products")
}
