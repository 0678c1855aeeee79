package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"

	"referral-server/internal/clients/vendor"
	"referral-server/internal/events"
	"referral-server/internal/profiles"
	"referral-server/internal/ratelimit"
	"referral-server/internal/store"
)

// ReferralStore defines the persistence operations required by ReferralProcessor
type ReferralStore interface {
	// SaveLinkWithReferral persists a new link and its pending referral
	// together; on error neither is stored.
	SaveLinkWithReferral(ctx context.Context, link store.ReferralLink, referral store.Referral) error
	GetLinkByToken(ctx context.Context, token store.DeepLinkToken) (store.ReferralLink, error)
	SaveReferral(ctx context.Context, referral store.Referral) error
	GetReferralByLinkID(ctx context.Context, linkID string) (store.Referral, error)
	ListReferralsByReferrer(ctx context.Context, params store.ListReferralsParams) (store.ReferralPage, error)
	CountReferralsByStatus(ctx context.Context, referrerUserID string) (store.StatusCounts, error)
}

type RateLimiter interface {
	TryConsume(ctx context.Context, key string, permits int) (ratelimit.Result, error)
}

type IdempotencyGuard interface {
	TryGet(ctx context.Context, route, key string) ([]byte, bool, error)
	IsConsistent(ctx context.Context, route, key, hash string) (bool, error)
	Save(ctx context.Context, route, key, hash string, response []byte) error
}

// VendorClient mints deferred deep links
type VendorClient interface {
	CreateDeferredDeepLink(ctx context.Context, req vendor.LinkRequest) (vendor.DeepLink, error)
}

type ReferrerInfoProvider interface {
	GetReferrerInfo(ctx context.Context, userID string) (profiles.ReferrerInfo, error)
}

// EventPublisher emits referral domain events. Failures never fail the
// operation that produced the event.
type EventPublisher interface {
	PublishLinkCreated(ctx context.Context, link store.ReferralLink, referralID string) error
	PublishReferralStatusChanged(ctx context.Context, referral store.Referral, change events.StatusChange) error
}
