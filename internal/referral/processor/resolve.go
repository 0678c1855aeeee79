package processor

import (
	"context"
	"fmt"
	"strings"

	"referral-server/internal/observability"
	"referral-server/internal/profiles"
	"referral-server/internal/store"
)

const OnboardingVariantReferred = "referred"

type DeviceInfo struct {
	DeviceID   string `json:"device_id"`
	Platform   string `json:"platform"`
	AppVersion string `json:"app_version"`
}

// ResolveRequest is sent by a freshly installed app that was opened through
// a deferred deep link.
type ResolveRequest struct {
	Token  string     `json:"token"`
	Device DeviceInfo `json:"device"`
}

type ResolveResponse struct {
	IsReferred        bool                  `json:"is_referred"`
	OnboardingVariant string                `json:"onboarding_variant"`
	ReferralCode      string                `json:"referral_code"`
	Referrer          profiles.ReferrerInfo `json:"referrer"`
	Destination       string                `json:"destination"`
}

// ResolveReferral turns a deep link token into the referred onboarding
// context. ErrTokenNotFound means the install was not a referral.
func (p *ReferralProcessor) ResolveReferral(ctx context.Context, req ResolveRequest) (ResolveResponse, error) {
	deviceKey := strings.TrimSpace(req.Device.DeviceID)
	if deviceKey == "" {
		deviceKey = "unknown"
	}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "device_id", Value: deviceKey},
		observability.Field{Key: "platform", Value: req.Device.Platform},
		observability.Field{Key: "app_version", Value: req.Device.AppVersion},
	)

	result, err := p.limiter.TryConsume(ctx, "resolve:"+deviceKey, 1)
	if err != nil {
		p.logger.Error(ctx, "failed to consume rate limit permit", err)
		return ResolveResponse{}, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !result.Allowed {
		p.logger.Warn(ctx, "resolve rate limited")
		p.metrics.Resolution("rate_limited")
		return ResolveResponse{}, ErrRateLimited
	}

	token, err := store.ParseDeepLinkToken(req.Token)
	if err != nil {
		p.metrics.Resolution("invalid_token")
		return ResolveResponse{}, err
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "token", Value: token.String()})

	link, err := p.store.GetLinkByToken(ctx, token)
	if err != nil {
		if isNotFound(err) {
			p.metrics.Resolution("not_found")
			return ResolveResponse{}, ErrTokenNotFound
		}
		p.logger.Error(ctx, "failed to look up referral link", err)
		return ResolveResponse{}, fmt.Errorf("failed to look up referral link: %w", err)
	}

	if link.Expired(p.now()) {
		p.logger.Info(ctx, "referral token expired")
		p.metrics.Resolution("expired")
		return ResolveResponse{}, ErrTokenExpired
	}

	referrer, err := p.referrers.GetReferrerInfo(ctx, link.ReferrerUserID)
	if err != nil {
		p.logger.Error(ctx, "failed to fetch referrer info", err)
		return ResolveResponse{}, fmt.Errorf("%w: %w", ErrProfileUnavailable, err)
	}

	p.metrics.Resolution("referred")
	return ResolveResponse{
		IsReferred:        true,
		OnboardingVariant: OnboardingVariantReferred,
		ReferralCode:      link.ReferralCode.String(),
		Referrer:          referrer,
		Destination:       link.Destination,
	}, nil
}
