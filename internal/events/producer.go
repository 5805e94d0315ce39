package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher publishes stock events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	PublishStockEvent(ctx context.Context, event StockEvent) error
	Close() error
}

// KafkaProducer publishes stock events to a Kafka topic.
type KafkaProducer struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewKafkaProducer creates a Publisher backed by the given brokers and topic.
func NewKafkaProducer(brokers string, topic string, logger *slog.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &KafkaProducer{
		writer: writer,
		logger: logger,
	}
}

// PublishStockEvent marshals and writes a single stock event, keyed by
// product ID so per-product ordering is preserved.
func (p *KafkaProducer) PublishStockEvent(ctx context.Context, event StockEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal stock event", slog.String("event_id", event.EventID), slog.String("error", err.Error()))
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.ProductID),
		Value: eventBytes,
	}

	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		p.logger.Error("Failed to publish stock event",
			slog.String("event_id", event.EventID),
			slog.String("product_id", event.ProductID),
			slog.String("error", err.Error()))
		return err
	}

	p.logger.Debug("Stock event published",
		slog.String("event_id", event.EventID),
		slog.String("type", string(event.Type)),
		slog.String("product_id", event.ProductID),
		slog.Int64("delta", event.Delta))

	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaProducer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// NoopPublisher discards events. Used when event publishing is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishStockEvent(ctx context.Context, event StockEvent) error { return nil }
func (NoopPublisher) Close() error                                                  { return nil }
