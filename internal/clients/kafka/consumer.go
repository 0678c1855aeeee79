package kafka

import (
	"context"
	"errors"

	"referral-server/internal/observability"

	"github.com/segmentio/kafka-go"
)

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer handles consuming events from Kafka
type Consumer struct {
	reader MessageReader
	logger *observability.Logger
}

// ConsumerConfig contains configuration for Kafka consumer
type ConsumerConfig struct {
	Brokers  []string
	Topic    string
	GroupID  string
	MinBytes int
	MaxBytes int
}

// NewConsumer creates a new Kafka consumer
func NewConsumer(config ConsumerConfig, logger *observability.Logger) *Consumer {
	if config.MinBytes == 0 {
		config.MinBytes = 10e3 // 10KB
	}
	if config.MaxBytes == 0 {
		config.MaxBytes = 10e6 // 10MB
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       config.MinBytes,
		MaxBytes:       config.MaxBytes,
		StartOffset:    kafka.FirstOffset,
		CommitInterval: 0, // Manual commit
	})
	return NewConsumerWithReader(reader, logger)
}

func NewConsumerWithReader(reader MessageReader, logger *observability.Logger) *Consumer {
	return &Consumer{reader: reader, logger: logger}
}

// ErrSkipMessage tells Consume to commit a message it could not handle
// instead of retrying it.
var ErrSkipMessage = errors.New("skip message")

// Consume fetches messages until ctx is cancelled. A message is committed when
// handler succeeds or returns an error wrapping ErrSkipMessage; any other
// error leaves it uncommitted so it is redelivered.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	c.logger.Info(ctx, "Starting Kafka consumer")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info(ctx, "Stopping Kafka consumer")
				return ctx.Err()
			}
			c.logger.Error(ctx, "failed to fetch message from kafka", err)
			continue
		}

		msgCtx := observability.WithFields(ctx,
			observability.Field{Key: "topic", Value: msg.Topic},
			observability.Field{Key: "partition", Value: msg.Partition},
			observability.Field{Key: "offset", Value: msg.Offset},
		)

		if err := handler(msgCtx, msg); err != nil {
			if !errors.Is(err, ErrSkipMessage) {
				c.logger.Error(msgCtx, "failed to process message", err)
				continue
			}
			c.logger.InfoWithError(msgCtx, "skipping unprocessable message", err)
		}

		if err := c.reader.CommitMessages(msgCtx, msg); err != nil {
			c.logger.Error(msgCtx, "failed to commit message", err)
		}
	}
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	return c.reader.Close()
}
