package processor

import (
	"errors"
	"strings"
	"time"

	"referral-server/internal/metrics"
	"referral-server/internal/observability"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized         = errors.New("missing current user")
	ErrReferralCodeMismatch = errors.New("referral code does not belong to the current user")
	ErrRateLimited          = errors.New("too many requests, please try again later")
	ErrVendorUnavailable    = errors.New("deep link vendor unavailable")
	ErrProfileUnavailable   = errors.New("referrer profile unavailable")
	ErrTokenNotFound        = errors.New("referral token was not found")
	ErrTokenExpired         = errors.New("referral token is expired")
	ErrReferralNotFound     = errors.New("referral was not found")
	ErrIdempotencyConflict  = errors.New("idempotency key reused with a different request")
	ErrUnknownEventType     = errors.New("unknown vendor event type")
)

// Options tune processor behaviour that differs between deployments.
type Options struct {
	// GuardRewarded makes a complete event leave a rewarded referral as is.
	GuardRewarded bool
}

type ReferralProcessor struct {
	store     ReferralStore
	limiter   RateLimiter
	guard     IdempotencyGuard
	vendor    VendorClient
	referrers ReferrerInfoProvider
	events    EventPublisher
	metrics   *metrics.Metrics
	logger    *observability.Logger
	opts      Options
	now       func() time.Time
}

func New(
	store ReferralStore,
	limiter RateLimiter,
	guard IdempotencyGuard,
	vendor VendorClient,
	referrers ReferrerInfoProvider,
	events EventPublisher,
	metrics *metrics.Metrics,
	logger *observability.Logger,
	opts Options,
) ReferralProcessor {
	return ReferralProcessor{
		store:     store,
		limiter:   limiter,
		guard:     guard,
		vendor:    vendor,
		referrers: referrers,
		events:    events,
		metrics:   metrics,
		logger:    logger,
		opts:      opts,
		now:       time.Now,
	}
}

func newID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}
