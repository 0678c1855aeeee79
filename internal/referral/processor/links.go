package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"referral-server/internal/clients/vendor"
	"referral-server/internal/observability"
	"referral-server/internal/store"
)

const (
	DefaultLocale      = "en-US"
	DefaultCampaign    = "invite_friends"
	DefaultDestination = "signup"
)

// CreateLinkRequest is what the app sends when the user taps a share option.
type CreateLinkRequest struct {
	ReferralCode string     `json:"referral_code"`
	Channel      string     `json:"channel"`
	Locale       string     `json:"locale"`
	Campaign     string     `json:"campaign"`
	Destination  string     `json:"destination"`
	Client       ClientInfo `json:"client"`
}

type ClientInfo struct {
	Platform   string `json:"platform"`
	AppVersion string `json:"app_version"`
}

type ShareTemplates struct {
	SMS          string `json:"sms"`
	EmailSubject string `json:"email_subject"`
	EmailBody    string `json:"email_body"`
}

type CreateLinkResponse struct {
	LinkID         string         `json:"link_id"`
	Token          string         `json:"token"`
	URL            string         `json:"url"`
	ExpiresAt      time.Time      `json:"expires_at"`
	ShareTemplates ShareTemplates `json:"share_templates"`
}

// CreateLink mints a deep link for the current user's own referral code and
// records a pending referral against it.
func (p *ReferralProcessor) CreateLink(ctx context.Context, userID, ownCode string, req CreateLinkRequest) (CreateLinkResponse, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID},
		observability.Field{Key: "channel", Value: req.Channel},
		observability.Field{Key: "client_platform", Value: req.Client.Platform},
		observability.Field{Key: "client_app_version", Value: req.Client.AppVersion},
	)

	if strings.TrimSpace(userID) == "" {
		return CreateLinkResponse{}, ErrUnauthorized
	}

	code, err := store.ParseReferralCode(req.ReferralCode)
	if err != nil {
		return CreateLinkResponse{}, err
	}

	ownCode = strings.TrimSpace(ownCode)
	if ownCode == "" || !strings.EqualFold(ownCode, code.String()) {
		p.logger.Warn(ctx, "referral code does not belong to user")
		p.metrics.LinkRejected("referral_code_mismatch")
		return CreateLinkResponse{}, ErrReferralCodeMismatch
	}

	channel, err := store.ParseChannel(req.Channel)
	if err != nil {
		return CreateLinkResponse{}, err
	}

	result, err := p.limiter.TryConsume(ctx, "create_link:"+userID, 1)
	if err != nil {
		p.logger.Error(ctx, "failed to consume rate limit permit", err)
		return CreateLinkResponse{}, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !result.Allowed {
		p.logger.Warn(ctx, "link creation rate limited")
		p.metrics.LinkRejected("rate_limited")
		return CreateLinkResponse{}, ErrRateLimited
	}

	campaign := defaultIfBlank(req.Campaign, DefaultCampaign)
	destination := defaultIfBlank(req.Destination, DefaultDestination)

	deepLink, err := p.vendor.CreateDeferredDeepLink(ctx, vendor.LinkRequest{
		ReferralCode: code,
		Channel:      channel,
		Campaign:     campaign,
		Destination:  destination,
		Locale:       defaultIfBlank(req.Locale, DefaultLocale),
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create deferred deep link", err)
		p.metrics.LinkRejected("vendor_unavailable")
		return CreateLinkResponse{}, fmt.Errorf("%w: %w", ErrVendorUnavailable, err)
	}
	token, err := store.ParseDeepLinkToken(deepLink.Token)
	if err != nil {
		p.logger.Error(ctx, "vendor returned an unusable token", err)
		p.metrics.LinkRejected("vendor_unavailable")
		return CreateLinkResponse{}, fmt.Errorf("%w: %w", ErrVendorUnavailable, err)
	}

	now := p.now().UTC()
	link := store.ReferralLink{
		ID:             newID("rl_"),
		ReferrerUserID: userID,
		ReferralCode:   code,
		Channel:        channel,
		Token:          token,
		URL:            deepLink.URL,
		Campaign:       campaign,
		Destination:    destination,
		CreatedAt:      now,
		ExpiresAt:      deepLink.ExpiresAt,
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "link_id", Value: link.ID})

	referral := store.Referral{
		ID:             newID("ref_"),
		ReferrerUserID: userID,
		LinkID:         link.ID,
		Status:         store.StatusPending,
		Channel:        channel,
		CreatedAt:      now,
		LastEventAt:    now,
	}
	if err := p.store.SaveLinkWithReferral(ctx, link, referral); err != nil {
		p.logger.Error(ctx, "failed to save referral link", err)
		return CreateLinkResponse{}, fmt.Errorf("failed to save referral link: %w", err)
	}

	if err := p.events.PublishLinkCreated(ctx, link, referral.ID); err != nil {
		p.logger.Error(ctx, "failed to publish link created event", err)
	}
	p.metrics.LinkCreated(string(channel))
	p.logger.Info(ctx, "referral link created")

	return CreateLinkResponse{
		LinkID:         link.ID,
		Token:          link.Token.String(),
		URL:            link.URL,
		ExpiresAt:      link.ExpiresAt,
		ShareTemplates: BuildShareTemplates(link.URL),
	}, nil
}

// BuildShareTemplates renders the copy the app pre-fills for each share
// option. Every template contains the link.
func BuildShareTemplates(url string) ShareTemplates {
	return ShareTemplates{
		SMS: "Hi! Join me in earning money for our school by using the Carton Caps app. " +
			"It's an easy way to make a difference. Use the link below to download the Carton Caps app: " + url,
		EmailSubject: "You're invited to try the Carton Caps app!",
		EmailBody: "Hey!\n\n" +
			"Join me in earning cash for our school by using the Carton Caps app. " +
			"It's an easy way to make a difference. All you have to do is buy Carton Caps participating products (like Cheerios!) and scan your grocery receipt. " +
			"Carton Caps are worth $.10 each and they add up fast! Twice a year, our school receives a check to help pay for whatever we need - equipment, supplies or experiences the kids love!\n\n" +
			"Download the Carton Caps app here: " + url,
	}
}

func defaultIfBlank(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
