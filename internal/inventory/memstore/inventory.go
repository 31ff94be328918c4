package memstore

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

type inventoryRepo struct {
	a accessor
}

// resolve attaches copies of the referenced warehouse and product
func resolve(s *state, inv domain.Inventory) domain.Inventory {
	if w, ok := s.warehouses[inv.WarehouseID]; ok {
		inv.Warehouse = &w
	}
	if p, ok := s.products[inv.ProductID]; ok {
		inv.Product = &p
	}
	return inv
}

// checkRow enforces the schema constraints: quantity check, foreign keys and the (warehouse, product) unique index
func checkRow(s *state, inv *domain.Inventory) error {
	if inv.Quantity < 1 {
		return fmt.Errorf("quantity %d violates chk_inventories_quantity", inv.Quantity)
	}
	if _, ok := s.warehouses[inv.WarehouseID]; !ok {
		return fmt.Errorf("%w: violates fk_inventories_warehouse", apperror.ErrConflict)
	}
	if _, ok := s.products[inv.ProductID]; !ok {
		return fmt.Errorf("%w: violates fk_inventories_product", apperror.ErrConflict)
	}
	for id, other := range s.inventory {
		if id != inv.ID && other.WarehouseID == inv.WarehouseID && other.ProductID == inv.ProductID {
			return fmt.Errorf("%w: violates idx_inventory_warehouse_product", apperror.ErrConflict)
		}
	}
	return nil
}

// stored strips associations so the state never aliases caller memory
func stored(inv *domain.Inventory) domain.Inventory {
	row := *inv
	row.Warehouse = nil
	row.Product = nil
	return row
}

func matches(inv domain.Inventory, filter domain.Filter) bool {
	if filter.WarehouseID != 0 && inv.WarehouseID != filter.WarehouseID {
		return false
	}
	if filter.ProductID != 0 && inv.ProductID != filter.ProductID {
		return false
	}
	return true
}

func (r *inventoryRepo) Create(ctx context.Context, inv *domain.Inventory) error {
	return r.a.run(ctx, func(s *state) error {
		inv.ID = 0
		if err := checkRow(s, inv); err != nil {
			return fmt.Errorf("create inventory: %w", err)
		}
		s.nextInventoryID++
		now := time.Now()
		inv.ID = s.nextInventoryID
		inv.CreatedAt, inv.UpdatedAt = now, now
		s.inventory[inv.ID] = stored(inv)
		return nil
	})
}

func (r *inventoryRepo) FindByID(ctx context.Context, id uint) (*domain.Inventory, error) {
	var out domain.Inventory
	err := r.a.run(ctx, func(s *state) error {
		inv, ok := s.inventory[id]
		if !ok {
			return fmt.Errorf("inventory %d: %w", id, apperror.ErrNotFound)
		}
		out = resolve(s, inv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *inventoryRepo) FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uint) (*domain.Inventory, error) {
	var out *domain.Inventory
	err := r.a.run(ctx, func(s *state) error {
		for _, inv := range s.inventory {
			if inv.WarehouseID == warehouseID && inv.ProductID == productID {
				found := resolve(s, inv)
				out = &found
				return nil
			}
		}
		return fmt.Errorf("inventory of product %d at warehouse %d: %w", productID, warehouseID, apperror.ErrNotFound)
	})
	return out, err
}

func (r *inventoryRepo) FindAll(ctx context.Context, filter domain.Filter) ([]domain.Inventory, error) {
	var out []domain.Inventory
	err := r.a.run(ctx, func(s *state) error {
		all := make([]domain.Inventory, 0, len(s.inventory))
		for _, id := range sortedKeys(s.inventory) {
			if inv := s.inventory[id]; matches(inv, filter) {
				all = append(all, resolve(s, inv))
			}
		}
		out = page(all, filter.Limit, filter.Offset)
		return nil
	})
	return out, err
}

func (r *inventoryRepo) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	var n int64
	err := r.a.run(ctx, func(s *state) error {
		for _, inv := range s.inventory {
			if matches(inv, filter) {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *inventoryRepo) Update(ctx context.Context, inv *domain.Inventory) error {
	return r.a.run(ctx, func(s *state) error {
		existing, ok := s.inventory[inv.ID]
		if !ok {
			return fmt.Errorf("inventory %d: %w", inv.ID, apperror.ErrNotFound)
		}
		if err := checkRow(s, inv); err != nil {
			return fmt.Errorf("update inventory %d: %w", inv.ID, err)
		}
		inv.CreatedAt = existing.CreatedAt
		inv.UpdatedAt = time.Now()
		s.inventory[inv.ID] = stored(inv)
		return nil
	})
}

func (r *inventoryRepo) Delete(ctx context.Context, id uint) error {
	return r.a.run(ctx, func(s *state) error {
		if _, ok := s.inventory[id]; !ok {
			return fmt.Errorf("inventory %d: %w", id, apperror.ErrNotFound)
		}
		delete(s.inventory, id)
		return nil
	})
}

func (r *inventoryRepo) SumQuantity(ctx context.Context, warehouseID, excludeID uint) (int64, error) {
	var total int64
	err := r.a.run(ctx, func(s *state) error {
		for id, inv := range s.inventory {
			if inv.WarehouseID == warehouseID && id != excludeID {
				total += int64(inv.Quantity)
			}
		}
		return nil
	})
	return total, err
}

func (r *inventoryRepo) CountByWarehouse(ctx context.Context, warehouseID uint) (int64, error) {
	return r.Count(ctx, domain.Filter{WarehouseID: warehouseID})
}

func (r *inventoryRepo) CountByProduct(ctx context.Context, productID uint) (int64, error) {
	return r.Count(ctx, domain.Filter{ProductID: productID})
}

func (r *inventoryRepo) Totals(ctx context.Context) (domain.Totals, error) {
	var totals domain.Totals
	err := r.a.run(ctx, func(s *state) error {
		products := map[uint]struct{}{}
		for _, inv := range s.inventory {
			totals.Records++
			totals.Units += int64(inv.Quantity)
			products[inv.ProductID] = struct{}{}
		}
		totals.DistinctProducts = int64(len(products))
		return nil
	})
	return totals, err
}

func (r *inventoryRepo) LoadByWarehouse(ctx context.Context) (map[uint]int64, error) {
	loads := map[uint]int64{}
	err := r.a.run(ctx, func(s *state) error {
		for _, inv := range s.inventory {
			loads[inv.WarehouseID] += int64(inv.Quantity)
		}
		return nil
	})
	return loads, err
}
