package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// MaxDescriptionLength bounds Product.Description, in characters
const MaxDescriptionLength = 256

// Product represents the product entity
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	SKU         string    `json:"sku" gorm:"not null;uniqueIndex:idx_products_sku"`
	Description string    `json:"description" gorm:"size:256"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Normalize trims surrounding whitespace from the text fields
func (p *Product) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.SKU = strings.TrimSpace(p.SKU)
	p.Description = strings.TrimSpace(p.Description)
}

// Validate checks the field constraints
func (p *Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name is required", apperror.ErrInvalidArgument)
	}
	if p.SKU == "" {
		return fmt.Errorf("%w: product sku is required", apperror.ErrInvalidArgument)
	}
	if utf8.RuneCountInString(p.Description) > MaxDescriptionLength {
		return fmt.Errorf("%w: product description exceeds %d characters", apperror.ErrInvalidArgument, MaxDescriptionLength)
	}
	return nil
}

// ProductRepository defines the contract for product data access.
// Lookups of missing rows fail with apperror.ErrNotFound.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindAll(ctx context.Context, limit, offset int) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// StockReferences reports how many inventory records point at a product
type StockReferences interface {
	CountByProduct(ctx context.Context, productID uint) (int64, error)
}
