package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
	"github.com/tair/warehouse-inventory/pkg/logger"
)

// releaseTimeout bounds the key release that follows a failed transfer
const releaseTimeout = 5 * time.Second

// TransferStockCommand moves Amount units of a product between two warehouses
type TransferStockCommand struct {
	SourceWarehouseID      uint
	DestinationWarehouseID uint
	ProductID              uint
	Amount                 int
	// IdempotencyKey is optional; a replayed key is rejected with ErrDuplicateRequest
	IdempotencyKey string
}

// TransferStockHandler handles transfer stock command
type TransferStockHandler struct {
	tx          domain.TxManager
	idempotency domain.IdempotencyStore
	events      domain.EventPublisher
}

// NewTransferStockHandler creates a new transfer handler. idempotency and
// events may be nil to disable key tracking and event publishing.
func NewTransferStockHandler(tx domain.TxManager, idempotency domain.IdempotencyStore, events domain.EventPublisher) *TransferStockHandler {
	return &TransferStockHandler{tx: tx, idempotency: idempotency, events: events}
}

// Handle executes the transfer. Both sides commit together or not at all.
func (h *TransferStockHandler) Handle(ctx context.Context, cmd TransferStockCommand) (*domain.TransferResult, error) {
	result, err := h.handle(ctx, cmd)
	transfersTotal.WithLabelValues(apperror.Kind(err)).Inc()
	observeCapacity("transfer", err)
	if err != nil {
		logger.Warn(ctx).Err(err).
			Uint("source_warehouse_id", cmd.SourceWarehouseID).
			Uint("destination_warehouse_id", cmd.DestinationWarehouseID).
			Uint("product_id", cmd.ProductID).
			Int("amount", cmd.Amount).
			Msg("Transfer rejected")
		return nil, err
	}

	logger.Info(ctx).
		Uint("source_warehouse_id", result.SourceWarehouseID).
		Uint("destination_warehouse_id", result.DestinationWarehouseID).
		Uint("product_id", result.ProductID).
		Int("amount", result.Amount).
		Int("source_remaining", result.SourceRemaining).
		Msg("Stock transferred")

	if h.events != nil {
		if err := h.events.PublishStockTransferred(ctx, *result); err != nil {
			logger.Error(ctx).Err(err).Msg("Failed to publish stock transferred event")
		}
	}
	return result, nil
}

func (h *TransferStockHandler) handle(ctx context.Context, cmd TransferStockCommand) (*domain.TransferResult, error) {
	if cmd.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperror.ErrInvalidArgument)
	}
	if cmd.SourceWarehouseID == cmd.DestinationWarehouseID {
		return nil, fmt.Errorf("%w: source and destination warehouse must differ", apperror.ErrInvalidArgument)
	}
	if err := requireID("product_id", cmd.ProductID); err != nil {
		return nil, err
	}

	if cmd.IdempotencyKey != "" && h.idempotency != nil {
		reserved, err := h.idempotency.Reserve(ctx, cmd.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if !reserved {
			return nil, fmt.Errorf("%w: idempotency key %q already used", apperror.ErrDuplicateRequest, cmd.IdempotencyKey)
		}
	}

	result, err := h.transfer(ctx, cmd)
	if err != nil && cmd.IdempotencyKey != "" && h.idempotency != nil {
		h.release(ctx, cmd.IdempotencyKey)
	}
	return result, err
}

// release frees a key after a failed transfer. The request context may
// already be cancelled or past its deadline, so the release runs detached.
func (h *TransferStockHandler) release(ctx context.Context, key string) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	if err := h.idempotency.Release(releaseCtx, key); err != nil {
		logger.Error(ctx).Err(err).Str("idempotency_key", key).Msg("Failed to release idempotency key")
	}
}

func (h *TransferStockHandler) transfer(ctx context.Context, cmd TransferStockCommand) (*domain.TransferResult, error) {
	var result *domain.TransferResult

	err := h.tx.WithinTx(ctx, func(tx domain.Tx) error {
		locked, err := lockWarehouses(ctx, tx.Warehouses, cmd.SourceWarehouseID, cmd.DestinationWarehouseID)
		if err != nil {
			return err
		}

		source, err := tx.Inventory.FindByWarehouseAndProduct(ctx, cmd.SourceWarehouseID, cmd.ProductID)
		if err != nil {
			return err
		}
		if source.Quantity < cmd.Amount {
			return fmt.Errorf("%w: warehouse %d holds %d of product %d, requested %d",
				apperror.ErrInsufficientStock, cmd.SourceWarehouseID, source.Quantity, cmd.ProductID, cmd.Amount)
		}

		dest, ok := locked[cmd.DestinationWarehouseID]
		if !ok {
			return fmt.Errorf("warehouse %d: %w", cmd.DestinationWarehouseID, apperror.ErrNotFound)
		}
		if err := ensureCapacity(ctx, tx.Inventory, dest, 0, cmd.Amount); err != nil {
			return err
		}

		source.Quantity -= cmd.Amount
		if source.Quantity == 0 {
			err = tx.Inventory.Delete(ctx, source.ID)
		} else {
			err = tx.Inventory.Update(ctx, source)
		}
		if err != nil {
			return err
		}

		target, err := tx.Inventory.FindByWarehouseAndProduct(ctx, dest.ID, cmd.ProductID)
		switch {
		case err == nil:
			target.Quantity += cmd.Amount
			err = tx.Inventory.Update(ctx, target)
		case errors.Is(err, apperror.ErrNotFound):
			target = &domain.Inventory{
				WarehouseID:     dest.ID,
				ProductID:       cmd.ProductID,
				Quantity:        cmd.Amount,
				StorageLocation: domain.TransferredLocation,
			}
			err = tx.Inventory.Create(ctx, target)
		}
		if err != nil {
			return err
		}

		result = &domain.TransferResult{
			ProductID:              cmd.ProductID,
			SourceWarehouseID:      cmd.SourceWarehouseID,
			DestinationWarehouseID: dest.ID,
			Amount:                 cmd.Amount,
			SourceRemaining:        source.Quantity,
			DestinationQuantity:    target.Quantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
