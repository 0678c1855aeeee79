package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"referral-server/internal/bootstrap"
	"referral-server/internal/clients/kafka"
	"referral-server/internal/config"
	"referral-server/internal/observability"
	"referral-server/internal/referral/consumer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal("KAFKA_BROKERS must be set for the vendor event worker")
	}

	logger := observability.NewLogger()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info(ctx, "Starting vendor event worker...")

	deps, err := bootstrap.Initialize(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize dependencies: %v", err)
	}
	defer deps.Cleanup()

	kafkaConsumer := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.VendorEventsTopic,
		GroupID: cfg.Kafka.ConsumerGroup,
	}, logger)
	defer kafkaConsumer.Close()

	vendorEvents := consumer.New(kafkaConsumer, &deps.ReferralProcessor, logger)

	logger.Info(ctx, fmt.Sprintf(`Vendor event worker configuration:
  - Kafka brokers: %v
  - Kafka topic: %s
  - Consumer group: %s`,
		cfg.Kafka.Brokers, cfg.Kafka.VendorEventsTopic, cfg.Kafka.ConsumerGroup))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := vendorEvents.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error(ctx, "vendor event consumer stopped with error", err)
		}
	}()

	select {
	case <-sigChan:
		logger.Info(ctx, "Received shutdown signal, stopping consumer...")
		cancel()
		<-done
	case <-done:
	}

	logger.Info(ctx, "Vendor event worker stopped")
}
