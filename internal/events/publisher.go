package events

import (
	"context"
	"time"

	"referral-server/internal/clients/kafka"
	"referral-server/internal/store"

	"github.com/google/uuid"
)

const (
	TypeReferralLinkCreated   = "referral_link.created"
	TypeReferralStatusChanged = "referral.status_changed"
)

// EventProducer is satisfied by *kafka.Producer.
type EventProducer interface {
	PublishEvent(ctx context.Context, event kafka.EventMessage) error
}

// Publisher handles publishing referral domain events to Kafka
type Publisher struct {
	producer EventProducer
	now      func() time.Time
}

// NewPublisher creates a new event publisher
func NewPublisher(producer EventProducer) *Publisher {
	return &Publisher{producer: producer, now: time.Now}
}

// PublishLinkCreated publishes a referral_link.created event
func (p *Publisher) PublishLinkCreated(ctx context.Context, link store.ReferralLink, referralID string) error {
	return p.producer.PublishEvent(ctx, kafka.EventMessage{
		ID:             uuid.New().String(),
		Type:           TypeReferralLinkCreated,
		ReferrerUserID: link.ReferrerUserID,
		Data: map[string]interface{}{
			"link_id":       link.ID,
			"referral_id":   referralID,
			"referral_code": string(link.ReferralCode),
			"channel":       string(link.Channel),
			"campaign":      link.Campaign,
			"expires_at":    link.ExpiresAt.UTC().Format(time.RFC3339),
		},
		Timestamp: p.now().UTC().Format(time.RFC3339),
	})
}

// StatusChange is the vendor callback that moved a referral. Metadata is
// passed through to consumers untouched.
type StatusChange struct {
	Previous     store.ReferralStatus
	EventType    string
	DeviceIDHash string
	Metadata     map[string]string
}

// PublishReferralStatusChanged publishes a referral.status_changed event
func (p *Publisher) PublishReferralStatusChanged(ctx context.Context, referral store.Referral, change StatusChange) error {
	metadata := make(map[string]string, len(change.Metadata))
	for k, v := range change.Metadata {
		metadata[k] = v
	}
	data := map[string]interface{}{
		"referral_id":     referral.ID,
		"link_id":         referral.LinkID,
		"previous_status": change.Previous.String(),
		"status":          referral.Status.String(),
		"event_type":      change.EventType,
		"device_id_hash":  change.DeviceIDHash,
		"metadata":        metadata,
	}
	if referral.RefereeUserID != nil {
		data["referee_user_id"] = *referral.RefereeUserID
	}
	return p.producer.PublishEvent(ctx, kafka.EventMessage{
		ID:             uuid.New().String(),
		Type:           TypeReferralStatusChanged,
		ReferrerUserID: referral.ReferrerUserID,
		Data:           data,
		Timestamp:      p.now().UTC().Format(time.RFC3339),
	})
}

// Noop drops every event. It is used when no Kafka brokers are configured.
type Noop struct{}

func (Noop) PublishLinkCreated(context.Context, store.ReferralLink, string) error { return nil }

func (Noop) PublishReferralStatusChanged(context.Context, store.Referral, StatusChange) error {
	return nil
}
