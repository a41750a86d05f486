package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/hedge-finder-service/internal/models"
	"github.com/cypherlabdev/hedge-finder-service/internal/service"
)

// KafkaConsumer consumes quote batches from Kafka and scans them for hedge
// opportunities
type KafkaConsumer struct {
	reader *kafka.Reader
	engine service.Engine
	cache  service.Cache
	logger zerolog.Logger
}

// KafkaConsumerConfig holds Kafka consumer configuration
type KafkaConsumerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "normalized_quotes"
	GroupID string   // e.g., "hedge-finder"
}

// NewKafkaConsumer creates a new Kafka consumer
func NewKafkaConsumer(
	config KafkaConsumerConfig,
	engine service.Engine,
	cache service.Cache,
	logger zerolog.Logger,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       1e3,  // 1KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: 1000, // Commit every 1 second
	})

	return &KafkaConsumer{
		reader: reader,
		engine: engine,
		cache:  cache,
		logger: logger.With().Str("component", "kafka_consumer").Logger(),
	}
}

// Start begins consuming messages from Kafka
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming from Kafka")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("stopping Kafka consumer")
			return c.reader.Close()

		default:
			// Read message
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if err == context.Canceled {
					return nil
				}
				c.logger.Error().Err(err).Msg("failed to fetch message")
				continue
			}

			// Process message
			if err := c.processMessage(ctx, msg); err != nil {
				c.logger.Error().
					Err(err).
					Int64("offset", msg.Offset).
					Str("key", string(msg.Key)).
					Msg("failed to process message")
				// Don't commit if processing failed
				continue
			}

			// Commit message
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error().Err(err).Msg("failed to commit message")
			}
		}
	}
}

// processMessage processes a single Kafka message
func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	// Parse message
	var batch models.QuoteBatchMessage
	if err := json.Unmarshal(msg.Value, &batch); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	c.logger.Debug().
		Int("quote_count", len(batch.Quotes)).
		Str("batch_id", batch.BatchID).
		Msg("processing quote batch")

	// Scan for hedge opportunities
	opportunities, best := c.engine.Scan(batch.Quotes)

	// Cache scored opportunities in Redis
	if err := c.cache.SetBatch(ctx, opportunities); err != nil {
		return fmt.Errorf("failed to cache opportunities: %w", err)
	}

	if best != nil {
		if err := c.cache.SetBest(ctx, best); err != nil {
			return fmt.Errorf("failed to cache best opportunity: %w", err)
		}
	}

	c.logger.Info().
		Int("quote_count", len(batch.Quotes)).
		Int("opportunity_count", len(opportunities)).
		Bool("found_best", best != nil).
		Str("batch_id", batch.BatchID).
		Msg("processed quote batch")

	return nil
}

// Close closes the Kafka reader
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
