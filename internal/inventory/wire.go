//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
)

// InitializeHandlers builds every HTTP handler on top of the given stores.
// idempotency and events may be nil.
func InitializeHandlers(stores domain.Stores, idempotency domain.IdempotencyStore, events domain.EventPublisher) *Handlers {
	wire.Build(
		StoreSet,
		InventorySet,
		ProductSet,
		WarehouseSet,
		wire.Struct(new(Handlers), "*"),
	)
	return nil
}
