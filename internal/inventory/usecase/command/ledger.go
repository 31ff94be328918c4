package command

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"

	warehousedomain "github.com/tair/warehouse-inventory/internal/warehouse/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

var (
	transfersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_transfers_total",
			Help: "Stock transfers by outcome",
		},
		[]string{"result"},
	)

	capacityRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_capacity_rejections_total",
			Help: "Ledger mutations rejected because a warehouse would exceed its capacity",
		},
		[]string{"operation"},
	)

	mergesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_merges_total",
			Help: "Writes folded into an existing (warehouse, product) record",
		},
	)
)

func init() {
	prometheus.MustRegister(transfersTotal, capacityRejectionsTotal, mergesTotal)
}

func observeCapacity(operation string, err error) {
	if errors.Is(err, apperror.ErrCapacityExceeded) {
		capacityRejectionsTotal.WithLabelValues(operation).Inc()
	}
}

// ensureCapacity fails with ErrCapacityExceeded unless the warehouse can take qty more
// units on top of its load, not counting record excludeID.
func ensureCapacity(ctx context.Context, stock warehousedomain.StockReader, w *warehousedomain.Warehouse, excludeID uint, qty int) error {
	load, err := stock.SumQuantity(ctx, w.ID, excludeID)
	if err != nil {
		return err
	}
	if !w.Fits(load, qty) {
		return fmt.Errorf("%w: warehouse %d holds %d of %d, cannot add %d",
			apperror.ErrCapacityExceeded, w.ID, load, w.MaxCapacity, qty)
	}
	return nil
}

// lockWarehouses row-locks the given warehouses in ascending id order. Missing
// warehouses are left out of the result so callers decide when to report them.
func lockWarehouses(ctx context.Context, repo warehousedomain.WarehouseRepository, ids ...uint) (map[uint]*warehousedomain.Warehouse, error) {
	sorted := append([]uint(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	locked := make(map[uint]*warehousedomain.Warehouse, len(sorted))
	for _, id := range sorted {
		if _, done := locked[id]; done {
			continue
		}
		w, err := repo.FindByIDForUpdate(ctx, id)
		if errors.Is(err, apperror.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		locked[id] = w
	}
	return locked, nil
}

func requireID(name string, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: %s is required", apperror.ErrInvalidArgument, name)
	}
	return nil
}

func requirePositive(name string, v int) error {
	if v < 1 {
		return fmt.Errorf("%w: %s must be at least 1", apperror.ErrInvalidArgument, name)
	}
	return nil
}
