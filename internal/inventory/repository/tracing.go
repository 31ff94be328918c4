package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// TracingInventoryRepository wraps an InventoryRepository with spans
type TracingInventoryRepository struct {
	next domain.InventoryRepository
}

// NewTracingInventoryRepository creates a new repository with tracing
func NewTracingInventoryRepository(next domain.InventoryRepository) *TracingInventoryRepository {
	return &TracingInventoryRepository{next: next}
}

func (r *TracingInventoryRepository) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, "repository.Inventory."+name, trace.WithAttributes(attrs...))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func recordAttrs(inv *domain.Inventory) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("inventory.warehouse_id", int(inv.WarehouseID)),
		attribute.Int("inventory.product_id", int(inv.ProductID)),
		attribute.Int("inventory.quantity", inv.Quantity),
	}
}

// Create with tracing
func (r *TracingInventoryRepository) Create(ctx context.Context, inv *domain.Inventory) (err error) {
	ctx, span := r.start(ctx, "Create", recordAttrs(inv)...)
	defer func() { finish(span, err) }()

	if err = r.next.Create(ctx, inv); err != nil {
		return err
	}
	span.SetAttributes(attribute.Int("inventory.id", int(inv.ID)))
	return nil
}

// FindByID with tracing
func (r *TracingInventoryRepository) FindByID(ctx context.Context, id uint) (inv *domain.Inventory, err error) {
	ctx, span := r.start(ctx, "FindByID", attribute.Int("inventory.id", int(id)))
	defer func() { finish(span, err) }()

	inv, err = r.next.FindByID(ctx, id)
	if err == nil {
		span.SetAttributes(recordAttrs(inv)...)
	}
	return inv, err
}

// FindByWarehouseAndProduct with tracing
func (r *TracingInventoryRepository) FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uint) (inv *domain.Inventory, err error) {
	ctx, span := r.start(ctx, "FindByWarehouseAndProduct",
		attribute.Int("inventory.warehouse_id", int(warehouseID)),
		attribute.Int("inventory.product_id", int(productID)),
	)
	defer func() { finish(span, err) }()

	inv, err = r.next.FindByWarehouseAndProduct(ctx, warehouseID, productID)
	if err == nil {
		span.SetAttributes(attribute.Int("inventory.id", int(inv.ID)), attribute.Int("inventory.quantity", inv.Quantity))
	}
	return inv, err
}

// FindAll with tracing
func (r *TracingInventoryRepository) FindAll(ctx context.Context, filter domain.Filter) (list []domain.Inventory, err error) {
	ctx, span := r.start(ctx, "FindAll",
		attribute.Int("query.warehouse_id", int(filter.WarehouseID)),
		attribute.Int("query.product_id", int(filter.ProductID)),
		attribute.Int("query.limit", filter.Limit),
		attribute.Int("query.offset", filter.Offset),
	)
	defer func() { finish(span, err) }()

	list, err = r.next.FindAll(ctx, filter)
	span.SetAttributes(attribute.Int("result.count", len(list)))
	return list, err
}

// Count with tracing
func (r *TracingInventoryRepository) Count(ctx context.Context, filter domain.Filter) (n int64, err error) {
	ctx, span := r.start(ctx, "Count")
	defer func() { finish(span, err) }()

	return r.next.Count(ctx, filter)
}

// Update with tracing
func (r *TracingInventoryRepository) Update(ctx context.Context, inv *domain.Inventory) (err error) {
	attrs := append(recordAttrs(inv), attribute.Int("inventory.id", int(inv.ID)))
	ctx, span := r.start(ctx, "Update", attrs...)
	defer func() { finish(span, err) }()

	return r.next.Update(ctx, inv)
}

// Delete with tracing
func (r *TracingInventoryRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := r.start(ctx, "Delete", attribute.Int("inventory.id", int(id)))
	defer func() { finish(span, err) }()

	return r.next.Delete(ctx, id)
}

// SumQuantity with tracing
func (r *TracingInventoryRepository) SumQuantity(ctx context.Context, warehouseID, excludeID uint) (total int64, err error) {
	ctx, span := r.start(ctx, "SumQuantity",
		attribute.Int("inventory.warehouse_id", int(warehouseID)),
		attribute.Int("query.exclude_id", int(excludeID)),
	)
	defer func() { finish(span, err) }()

	total, err = r.next.SumQuantity(ctx, warehouseID, excludeID)
	span.SetAttributes(attribute.Int64("result.load", total))
	return total, err
}

// CountByWarehouse with tracing
func (r *TracingInventoryRepository) CountByWarehouse(ctx context.Context, warehouseID uint) (n int64, err error) {
	ctx, span := r.start(ctx, "CountByWarehouse", attribute.Int("inventory.warehouse_id", int(warehouseID)))
	defer func() { finish(span, err) }()

	return r.next.CountByWarehouse(ctx, warehouseID)
}

// CountByProduct with tracing
func (r *TracingInventoryRepository) CountByProduct(ctx context.Context, productID uint) (n int64, err error) {
	ctx, span := r.start(ctx, "CountByProduct", attribute.Int("inventory.product_id", int(productID)))
	defer func() { finish(span, err) }()

	return r.next.CountByProduct(ctx, productID)
}

// Totals with tracing
func (r *TracingInventoryRepository) Totals(ctx context.Context) (t domain.Totals, err error) {
	ctx, span := r.start(ctx, "Totals")
	defer func() { finish(span, err) }()

	return r.next.Totals(ctx)
}

// LoadByWarehouse with tracing
func (r *TracingInventoryRepository) LoadByWarehouse(ctx context.Context) (loads map[uint]int64, err error) {
	ctx, span := r.start(ctx, "LoadByWarehouse")
	defer func() { finish(span, err) }()

	return r.next.LoadByWarehouse(ctx)
}
