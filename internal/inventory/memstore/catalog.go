package memstore

import (
	"context"
	"fmt"
	"time"

	productdomain "github.com/tair/warehouse-inventory/internal/product/domain"
	warehousedomain "github.com/tair/warehouse-inventory/internal/warehouse/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

type productRepo struct {
	a accessor
}

func (r *productRepo) skuTaken(s *state, sku string, exceptID uint) bool {
	for id, p := range s.products {
		if id != exceptID && p.SKU == sku {
			return true
		}
	}
	return false
}

func (r *productRepo) Create(ctx context.Context, product *productdomain.Product) error {
	return r.a.run(ctx, func(s *state) error {
		if r.skuTaken(s, product.SKU, 0) {
			return fmt.Errorf("create product: %w: violates idx_products_sku", apperror.ErrConflict)
		}
		s.nextProductID++
		now := time.Now()
		product.ID = s.nextProductID
		product.CreatedAt, product.UpdatedAt = now, now
		s.products[product.ID] = *product
		return nil
	})
}

func (r *productRepo) FindByID(ctx context.Context, id uint) (*productdomain.Product, error) {
	var out productdomain.Product
	err := r.a.run(ctx, func(s *state) error {
		p, ok := s.products[id]
		if !ok {
			return fmt.Errorf("product %d: %w", id, apperror.ErrNotFound)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*productdomain.Product, error) {
	var out *productdomain.Product
	err := r.a.run(ctx, func(s *state) error {
		for _, id := range sortedKeys(s.products) {
			if p := s.products[id]; p.SKU == sku {
				out = &p
				return nil
			}
		}
		return fmt.Errorf("product sku %q: %w", sku, apperror.ErrNotFound)
	})
	return out, err
}

func (r *productRepo) FindAll(ctx context.Context, limit, offset int) ([]productdomain.Product, error) {
	var out []productdomain.Product
	err := r.a.run(ctx, func(s *state) error {
		all := make([]productdomain.Product, 0, len(s.products))
		for _, id := range sortedKeys(s.products) {
			all = append(all, s.products[id])
		}
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}

func (r *productRepo) Update(ctx context.Context, product *productdomain.Product) error {
	return r.a.run(ctx, func(s *state) error {
		existing, ok := s.products[product.ID]
		if !ok {
			return fmt.Errorf("product %d: %w", product.ID, apperror.ErrNotFound)
		}
		if r.skuTaken(s, product.SKU, product.ID) {
			return fmt.Errorf("update product %d: %w: violates idx_products_sku", product.ID, apperror.ErrConflict)
		}
		product.CreatedAt = existing.CreatedAt
		product.UpdatedAt = time.Now()
		s.products[product.ID] = *product
		return nil
	})
}

func (r *productRepo) Delete(ctx context.Context, id uint) error {
	return r.a.run(ctx, func(s *state) error {
		if _, ok := s.products[id]; !ok {
			return fmt.Errorf("product %d: %w", id, apperror.ErrNotFound)
		}
		for _, inv := range s.inventory {
			if inv.ProductID == id {
				return fmt.Errorf("delete product %d: %w: violates fk_inventories_product", id, apperror.ErrConflict)
			}
		}
		delete(s.products, id)
		return nil
	})
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.a.run(ctx, func(s *state) error {
		n = int64(len(s.products))
		return nil
	})
	return n, err
}

type warehouseRepo struct {
	a accessor
}

func (r *warehouseRepo) Create(ctx context.Context, warehouse *warehousedomain.Warehouse) error {
	return r.a.run(ctx, func(s *state) error {
		s.nextWarehouseID++
		now := time.Now()
		warehouse.ID = s.nextWarehouseID
		warehouse.CreatedAt, warehouse.UpdatedAt = now, now
		s.warehouses[warehouse.ID] = *warehouse
		return nil
	})
}

func (r *warehouseRepo) FindByID(ctx context.Context, id uint) (*warehousedomain.Warehouse, error) {
	var out warehousedomain.Warehouse
	err := r.a.run(ctx, func(s *state) error {
		w, ok := s.warehouses[id]
		if !ok {
			return fmt.Errorf("warehouse %d: %w", id, apperror.ErrNotFound)
		}
		out = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByIDForUpdate needs no row lock: transactions already hold the store mutex
func (r *warehouseRepo) FindByIDForUpdate(ctx context.Context, id uint) (*warehousedomain.Warehouse, error) {
	return r.FindByID(ctx, id)
}

func (r *warehouseRepo) FindAll(ctx context.Context, limit, offset int) ([]warehousedomain.Warehouse, error) {
	var out []warehousedomain.Warehouse
	err := r.a.run(ctx, func(s *state) error {
		all := make([]warehousedomain.Warehouse, 0, len(s.warehouses))
		for _, id := range sortedKeys(s.warehouses) {
			all = append(all, s.warehouses[id])
		}
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}

func (r *warehouseRepo) Update(ctx context.Context, warehouse *warehousedomain.Warehouse) error {
	return r.a.run(ctx, func(s *state) error {
		existing, ok := s.warehouses[warehouse.ID]
		if !ok {
			return fmt.Errorf("warehouse %d: %w", warehouse.ID, apperror.ErrNotFound)
		}
		warehouse.CreatedAt = existing.CreatedAt
		warehouse.UpdatedAt = time.Now()
		s.warehouses[warehouse.ID] = *warehouse
		return nil
	})
}

func (r *warehouseRepo) Delete(ctx context.Context, id uint) error {
	return r.a.run(ctx, func(s *state) error {
		if _, ok := s.warehouses[id]; !ok {
			return fmt.Errorf("warehouse %d: %w", id, apperror.ErrNotFound)
		}
		for _, inv := range s.inventory {
			if inv.WarehouseID == id {
				return fmt.Errorf("delete warehouse %d: %w: violates fk_inventories_warehouse", id, apperror.ErrConflict)
			}
		}
		delete(s.warehouses, id)
		return nil
	})
}

func (r *warehouseRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.a.run(ctx, func(s *state) error {
		n = int64(len(s.warehouses))
		return nil
	})
	return n, err
}
