package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
)

func headerValue(msg *sarama.ProducerMessage, key string) string {
	for _, h := range msg.Headers {
		if string(h.Key) == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestPublishStockTransferred(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	publisher := NewPublisherWithProducer(producer)
	defer publisher.Close()

	result := domain.TransferResult{
		ProductID:              7,
		SourceWarehouseID:      1,
		DestinationWarehouseID: 2,
		Amount:                 20,
		SourceRemaining:        30,
		DestinationQuantity:    20,
	}

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicStockTransferred {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "product_7" {
			return errors.New("unexpected key " + string(key))
		}
		if headerValue(msg, "event_type") != EventTypeStockTransferred {
			return errors.New("missing event_type header")
		}

		raw, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var event StockTransferredEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return err
		}
		if event.EventID == "" || event.EventID != headerValue(msg, "event_id") {
			return errors.New("event id not propagated")
		}
		if event.Amount != 20 || event.SourceRemaining != 30 || event.DestinationWarehouseID != 2 {
			return errors.New("payload does not match transfer")
		}
		return nil
	})

	require.NoError(t, publisher.PublishStockTransferred(context.Background(), result))
}

func TestPublishStockTransferredFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	publisher := NewPublisherWithProducer(producer)
	defer publisher.Close()

	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := publisher.PublishStockTransferred(context.Background(), domain.TransferResult{ProductID: 1, Amount: 1})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}
