package bootstrap

import (
	"context"
	"fmt"

	authHandler "referral-server/internal/auth/handler"
	authProcessor "referral-server/internal/auth/processor"
	kafkaClient "referral-server/internal/clients/kafka"
	redisClient "referral-server/internal/clients/redis"
	"referral-server/internal/clients/vendor"
	"referral-server/internal/config"
	"referral-server/internal/events"
	"referral-server/internal/idempotency"
	"referral-server/internal/metrics"
	"referral-server/internal/observability"
	"referral-server/internal/profiles"
	"referral-server/internal/ratelimit"
	referralHandler "referral-server/internal/referral/handler"
	referralProcessor "referral-server/internal/referral/processor"
	"referral-server/internal/store"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store   referralProcessor.ReferralStore
	Logger  *observability.Logger
	Metrics *metrics.Metrics

	ReferralProcessor referralProcessor.ReferralProcessor

	// Handlers
	AuthHandler     authHandler.Handler
	ReferralHandler referralHandler.Handler

	// Clients (for cleanup)
	KafkaProducer *kafkaClient.Producer
	RedisClient   *redisClient.Client
	database      *store.Store
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger:  logger,
		Metrics: metrics.New(),
	}

	if err := deps.initStore(ctx, cfg); err != nil {
		deps.Cleanup()
		return nil, err
	}

	var err error
	deps.RedisClient, err = redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		deps.Cleanup()
		return nil, err
	}

	// create_link:* and resolve:* keys keep separate budgets in one limiter
	limiterConfig := ratelimit.Config{
		MaxPermits: cfg.Referrals.RateLimitMax,
		Window:     cfg.Referrals.RateLimitWindow,
	}
	var limiter referralProcessor.RateLimiter
	var guard referralProcessor.IdempotencyGuard
	if deps.RedisClient.IsEnabled() {
		limiter = ratelimit.NewRedisLimiter(deps.RedisClient.GetClient(), limiterConfig, logger)
		guard = idempotency.NewRedisGuard(deps.RedisClient.GetClient(), cfg.Referrals.IdempotencyTTL)
	} else {
		limiter = ratelimit.NewMemoryLimiter(limiterConfig)
		guard = idempotency.NewMemoryGuard(cfg.Referrals.IdempotencyTTL)
	}

	var vendorClient referralProcessor.VendorClient
	if cfg.Vendor.APIURL != "" {
		vendorClient = vendor.NewHTTPClient(cfg.Vendor.APIURL, cfg.Vendor.APIKey, logger)
	} else {
		logger.Info(ctx, "VENDOR_API_URL not set, minting deep links locally")
		vendorClient = vendor.NewLocalClient(cfg.Vendor.LinkBaseURL, cfg.Vendor.LinkTTL)
	}

	directory, err := profiles.LoadFile(cfg.Referrals.ProfilesFile)
	if err != nil {
		deps.Cleanup()
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	var publisher referralProcessor.EventPublisher = events.Noop{}
	if len(cfg.Kafka.Brokers) > 0 {
		deps.KafkaProducer = kafkaClient.NewProducer(kafkaClient.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		}, logger)
		publisher = events.NewPublisher(deps.KafkaProducer)
	} else {
		logger.Info(ctx, "KAFKA_BROKERS not set, referral events will not be published")
	}

	deps.ReferralProcessor = referralProcessor.New(
		deps.Store,
		limiter,
		guard,
		vendorClient,
		directory,
		publisher,
		deps.Metrics,
		logger,
		referralProcessor.Options{GuardRewarded: cfg.Referrals.GuardRewarded},
	)
	deps.ReferralHandler = referralHandler.New(deps.ReferralProcessor, directory, cfg.Vendor.WebhookSecret, logger)

	if cfg.Auth.JWTSecret == "" {
		logger.Warn(ctx, "JWT_SECRET not set, bearer tokens will be rejected")
	}
	authProc := authProcessor.New(cfg.Auth.JWTSecret, logger)
	deps.AuthHandler = authHandler.New(authProc, cfg.Auth.AllowMockAuth, logger)

	return deps, nil
}

func (d *Dependencies) initStore(ctx context.Context, cfg *config.Config) error {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := store.New(cfg.Database.ConnectionString(), d.Logger)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		d.database = &db
		if err := db.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		d.Store = d.database
	default:
		d.Store = store.NewMemoryStore()
	}
	return nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	ctx := context.Background()
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close kafka producer", err)
		}
	}
	if err := d.RedisClient.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close redis client", err)
	}
	if d.database != nil {
		if err := d.database.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close database", err)
		}
	}
}
