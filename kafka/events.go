package kafka

import "time"

// StockTransferredEvent is emitted once a transfer has committed
type StockTransferredEvent struct {
	EventID                string    `json:"event_id"`
	EventType              string    `json:"event_type"`
	ProductID              uint      `json:"product_id"`
	SourceWarehouseID      uint      `json:"source_warehouse_id"`
	DestinationWarehouseID uint      `json:"destination_warehouse_id"`
	Amount                 int       `json:"amount"`
	SourceRemaining        int       `json:"source_remaining"`
	DestinationQuantity    int       `json:"destination_quantity"`
	Timestamp              time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeStockTransferred = "inventory.stock_transferred"
)

// Kafka topics
const (
	TopicStockTransferred = "inventory-stock-transferred"
)
