package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/warehouse-inventory/internal/product/domain"
)

var tracer = otel.Tracer("product-repository")

// TracingProductRepository wraps a ProductRepository with spans
type TracingProductRepository struct {
	next domain.ProductRepository
}

// NewTracingProductRepository creates a new repository with tracing
func NewTracingProductRepository(next domain.ProductRepository) *TracingProductRepository {
	return &TracingProductRepository{next: next}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Create with tracing
func (r *TracingProductRepository) Create(ctx context.Context, product *domain.Product) (err error) {
	ctx, span := tracer.Start(ctx, "repository.Product.Create",
		trace.WithAttributes(
			attribute.String("product.name", product.Name),
			attribute.String("product.sku", product.SKU),
		),
	)
	defer func() { endSpan(span, err) }()

	if err = r.next.Create(ctx, product); err != nil {
		return err
	}
	span.SetAttributes(attribute.Int("product.id", int(product.ID)))
	return nil
}

// FindByID with tracing
func (r *TracingProductRepository) FindByID(ctx context.Context, id uint) (p *domain.Product, err error) {
	ctx, span := tracer.Start(ctx, "repository.Product.FindByID",
		trace.WithAttributes(attribute.Int("product.id", int(id))),
	)
	defer func() { endSpan(span, err) }()

	return r.next.FindByID(ctx, id)
}

// FindBySKU with tracing
func (r *TracingProductRepository) FindBySKU(ctx context.Context, sku string) (p *domain.Product, err error) {
	ctx, span := tracer.Start(ctx, "repository.Product.FindBySKU",
		trace.WithAttributes(attribute.String("product.sku", sku)),
	)
	defer func() { endSpan(span, err) }()

	return r.next.FindBySKU(ctx, sku)
}

// FindAll with tracing
func (r *TracingProductRepository) FindAll(ctx context.Context, limit, offset int) (products []domain.Product, err error) {
	ctx, span := tracer.Start(ctx, "repository.Product.FindAll",
		trace.WithAttributes(
			attribute.Int("query.limit", limit),
			attribute.Int("query.offset", offset),
		),
	)
	defer func() { endSpan(span, err) }()

	products, err = r.next.FindAll(ctx, limit, offset)
	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, err
}

// Update with tracing
func (r *TracingProductRepository) Update(ctx context.Context, product *domain.Product) (err error) {
	ctx, span := tracer.Start(ctx, "repository.Product.Update",
		trace.WithAttributes(
			attribute.Int("product.id", int(product.ID)),
			attribute.String("product.sku", product.SKU),
		),
	)
	defer func() { endSpan(span, err) }()

	return r.next.Update(ctx, product)
}

// Delete with tracing
func (r *TracingProductRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := tracer.Start(ctx, "repository.Product.Delete",
		trace.WithAttributes(attribute.Int("product.id", int(id))),
	)
	defer func() { endSpan(span, err) }()

	return r.next.Delete(ctx, id)
}

// Count with tracing
func (r *TracingProductRepository) Count(ctx context.Context) (n int64, err error) {
	ctx, span := tracer.Start(ctx, "repository.Product.Count")
	defer func() { endSpan(span, err) }()

	return r.next.Count(ctx)
}
