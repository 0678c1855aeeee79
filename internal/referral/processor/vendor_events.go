package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"referral-server/internal/events"
	"referral-server/internal/observability"
	"referral-server/internal/store"
)

const (
	EventInstall  = "install"
	EventOpen     = "open"
	EventComplete = "complete"
	EventRewarded = "rewarded"

	// DefaultRefereeName is shown for completed referrals the vendor did
	// not name.
	DefaultRefereeName = "New friend"

	// Optional metadata keys understood on vendor events.
	MetadataRefereeUserID = "referee_user_id"
	MetadataDisplayName   = "display_name"
)

// VendorEvent is a lifecycle callback from the deep link vendor.
type VendorEvent struct {
	EventType    string            `json:"event_type"`
	Token        string            `json:"token"`
	OccurredAt   time.Time         `json:"occurred_at"`
	DeviceIDHash string            `json:"device_id_hash"`
	Metadata     map[string]string `json:"metadata"`
}

// HandleVendorEvent advances the referral behind the event's token.
// Install and open never move a referral backwards; complete and rewarded
// set the status outright.
func (p *ReferralProcessor) HandleVendorEvent(ctx context.Context, evt VendorEvent) error {
	eventType := strings.ToLower(strings.TrimSpace(evt.EventType))
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "event_type", Value: eventType},
		observability.Field{Key: "device_id_hash", Value: evt.DeviceIDHash},
	)

	token, err := store.ParseDeepLinkToken(evt.Token)
	if err != nil {
		p.metrics.VendorEvent(eventType, "invalid_token")
		return err
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "token", Value: token.String()})

	link, err := p.store.GetLinkByToken(ctx, token)
	if err != nil {
		if isNotFound(err) {
			p.metrics.VendorEvent(eventType, "token_not_found")
			return ErrTokenNotFound
		}
		p.logger.Error(ctx, "failed to look up referral link", err)
		return fmt.Errorf("failed to look up referral link: %w", err)
	}

	referral, err := p.store.GetReferralByLinkID(ctx, link.ID)
	if err != nil {
		if isNotFound(err) {
			p.logger.Error(ctx, "link has no referral", ErrReferralNotFound)
			return ErrReferralNotFound
		}
		p.logger.Error(ctx, "failed to look up referral", err)
		return fmt.Errorf("failed to look up referral: %w", err)
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "referral_id", Value: referral.ID})

	previous := referral.Status
	if err := p.applyEvent(&referral, eventType, evt.Metadata); err != nil {
		p.logger.Warn(ctx, "ignoring vendor event with unknown type")
		p.metrics.VendorEvent("unknown", "rejected")
		return err
	}

	referral.LastEventAt = evt.OccurredAt.UTC()
	if evt.OccurredAt.IsZero() {
		referral.LastEventAt = p.now().UTC()
	}

	if err := p.store.SaveReferral(ctx, referral); err != nil {
		p.logger.Error(ctx, "failed to save referral", err)
		return fmt.Errorf("failed to save referral: %w", err)
	}

	if referral.Status == previous {
		p.metrics.VendorEvent(eventType, "unchanged")
		p.logger.Debug(ctx, "vendor event left referral status unchanged")
		return nil
	}

	if err := p.events.PublishReferralStatusChanged(ctx, referral, events.StatusChange{
		Previous:     previous,
		EventType:    eventType,
		DeviceIDHash: evt.DeviceIDHash,
		Metadata:     evt.Metadata,
	}); err != nil {
		p.logger.Error(ctx, "failed to publish status change event", err)
	}
	p.metrics.VendorEvent(eventType, "applied")
	p.logger.Info(ctx, fmt.Sprintf("referral moved from %s to %s", previous, referral.Status))
	return nil
}

func (p *ReferralProcessor) applyEvent(referral *store.Referral, eventType string, metadata map[string]string) error {
	switch eventType {
	case EventInstall, EventOpen:
		if referral.Status < store.StatusComplete {
			referral.Status = store.StatusInstalled
		}
	case EventComplete:
		if p.opts.GuardRewarded && referral.Status == store.StatusRewarded {
			break
		}
		referral.Status = store.StatusComplete
		if referral.DisplayName == nil {
			name := DefaultRefereeName
			if v := strings.TrimSpace(metadata[MetadataDisplayName]); v != "" {
				name = v
			}
			referral.DisplayName = &name
		}
	case EventRewarded:
		referral.Status = store.StatusRewarded
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEventType, eventType)
	}

	if referral.RefereeUserID == nil {
		if v := strings.TrimSpace(metadata[MetadataRefereeUserID]); v != "" {
			referral.RefereeUserID = &v
		}
	}
	return nil
}
