package processor

import (
	"context"
	"testing"
	"time"

	"referral-server/internal/clients/vendor"
	"referral-server/internal/events"
	"referral-server/internal/idempotency"
	"referral-server/internal/observability"
	"referral-server/internal/profiles"
	"referral-server/internal/ratelimit"
	"referral-server/internal/store"

	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type mocks struct {
	store     *MockReferralStore
	limiter   *MockRateLimiter
	guard     *MockIdempotencyGuard
	vendor    *MockVendorClient
	referrers *MockReferrerInfoProvider
	events    *MockEventPublisher
}

func newMockedProcessor(t *testing.T, opts Options) (ReferralProcessor, mocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := mocks{
		store:     NewMockReferralStore(ctrl),
		limiter:   NewMockRateLimiter(ctrl),
		guard:     NewMockIdempotencyGuard(ctrl),
		vendor:    NewMockVendorClient(ctrl),
		referrers: NewMockReferrerInfoProvider(ctrl),
		events:    NewMockEventPublisher(ctrl),
	}
	p := New(m.store, m.limiter, m.guard, m.vendor, m.referrers, m.events, nil, observability.NewLogger(), opts)
	p.now = func() time.Time { return testNow }
	return p, m
}

func allow() (ratelimit.Result, error) {
	return ratelimit.Result{Allowed: true, Limit: 5, Remaining: 4}, nil
}

func deny() (ratelimit.Result, error) {
	return ratelimit.Result{Allowed: false, Limit: 5, RetryAfter: 30 * time.Second}, nil
}

type inMemory struct {
	store   *store.MemoryStore
	limiter *ratelimit.MemoryLimiter
	guard   *idempotency.MemoryGuard
	clock   *time.Time
}

// newInMemoryProcessor wires the processor to the real in-process
// implementations, all driven by one adjustable clock.
func newInMemoryProcessor(t *testing.T) (ReferralProcessor, *inMemory) {
	t.Helper()
	now := testNow
	clock := func() time.Time { return now }

	deps := &inMemory{
		store:   store.NewMemoryStore(),
		limiter: ratelimit.NewMemoryLimiter(ratelimit.Config{}).WithClock(clock),
		guard:   idempotency.NewMemoryGuard(time.Hour),
		clock:   &now,
	}
	links := vendor.NewLocalClient("https://cartoncaps.link", 0)
	links.WithClock(clock)

	p := New(deps.store, deps.limiter, deps.guard, links,
		profiles.NewDirectory(profiles.DefaultProfiles()), events.Noop{}, nil, observability.NewLogger(), Options{})
	p.now = clock
	return p, deps
}

func (m *inMemory) advance(d time.Duration) {
	*m.clock = m.clock.Add(d)
}

func validRequest() CreateLinkRequest {
	return CreateLinkRequest{
		ReferralCode: "XY7G4D",
		Channel:      "sms",
		Client:       ClientInfo{Platform: "ios", AppVersion: "1.0.0"},
	}
}

var bg = context.Background()

func vendorLink() vendor.DeepLink {
	return vendor.DeepLink{
		Token:     "dl_abcdef123456",
		URL:       "https://cartoncaps.link/dl_abcdef123456?referral_code=XY7G4D",
		ExpiresAt: testNow.Add(30 * 24 * time.Hour),
	}
}
