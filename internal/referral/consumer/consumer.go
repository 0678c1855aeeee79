package consumer

//go:generate go run go.uber.org/mock/mockgen@latest -source=consumer.go -destination=mocks_test.go -package=consumer

import (
	"context"
	"errors"
	"fmt"

	"referral-server/internal/clients/kafka"
	"referral-server/internal/observability"
	"referral-server/internal/referral/handler"
	"referral-server/internal/referral/processor"
	"referral-server/internal/store"

	kafkago "github.com/segmentio/kafka-go"
)

type VendorEventProcessor interface {
	HandleVendorEvent(ctx context.Context, evt processor.VendorEvent) error
}

type MessageConsumer interface {
	Consume(ctx context.Context, handler func(context.Context, kafkago.Message) error) error
}

// VendorEventConsumer applies vendor callbacks relayed through Kafka. Messages
// are handled one at a time so events for a link keep their partition order.
type VendorEventConsumer struct {
	consumer  MessageConsumer
	processor VendorEventProcessor
	logger    *observability.Logger
}

func New(consumer MessageConsumer, processor VendorEventProcessor, logger *observability.Logger) *VendorEventConsumer {
	return &VendorEventConsumer{
		consumer:  consumer,
		processor: processor,
		logger:    logger,
	}
}

// Start blocks until ctx is cancelled or the underlying consumer fails.
func (c *VendorEventConsumer) Start(ctx context.Context) error {
	c.logger.Info(ctx, "Starting vendor event consumer")
	return c.consumer.Consume(ctx, c.Handle)
}

// Handle processes one message. Events that can never succeed are wrapped in
// kafka.ErrSkipMessage so they are committed; anything else is retried.
func (c *VendorEventConsumer) Handle(ctx context.Context, msg kafkago.Message) error {
	evt, err := handler.DecodeVendorEvent(msg.Value)
	if err != nil {
		return fmt.Errorf("malformed vendor event: %v: %w", err, kafka.ErrSkipMessage)
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "source", Value: "kafka"})
	err = c.processor.HandleVendorEvent(ctx, evt)
	switch {
	case err == nil:
		c.logger.Info(ctx, fmt.Sprintf("applied vendor event %s", evt.EventType))
		return nil
	case permanent(err):
		return fmt.Errorf("%v: %w", err, kafka.ErrSkipMessage)
	default:
		return err
	}
}

func permanent(err error) bool {
	return errors.Is(err, store.ErrInvalidToken) ||
		errors.Is(err, processor.ErrTokenNotFound) ||
		errors.Is(err, processor.ErrUnknownEventType) ||
		errors.Is(err, processor.ErrReferralNotFound)
}
