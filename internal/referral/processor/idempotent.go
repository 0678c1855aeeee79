package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"referral-server/internal/idempotency"
	"referral-server/internal/observability"
)

// CreateLinkRoute scopes idempotency keys for link creation.
const CreateLinkRoute = "/v1/referrals/links"

// normalizedCreateLink is the canonical form hashed to detect a key being
// reused for a different request. Client info is informational and excluded.
type normalizedCreateLink struct {
	UserID       string `json:"user_id"`
	ReferralCode string `json:"referral_code"`
	Channel      string `json:"channel"`
	Locale       string `json:"locale"`
	Campaign     string `json:"campaign"`
	Destination  string `json:"destination"`
}

func normalizeCreateLink(userID string, req CreateLinkRequest) normalizedCreateLink {
	return normalizedCreateLink{
		UserID:       strings.TrimSpace(userID),
		ReferralCode: strings.ToUpper(strings.TrimSpace(req.ReferralCode)),
		Channel:      strings.ToLower(strings.TrimSpace(req.Channel)),
		Locale:       strings.TrimSpace(req.Locale),
		Campaign:     strings.TrimSpace(req.Campaign),
		Destination:  strings.TrimSpace(req.Destination),
	}
}

// CreateLinkIdempotent runs CreateLink at most once per idempotency key and
// returns the serialized response. A replay returns the stored bytes
// unchanged. Keys are scoped to the user so two users cannot collide.
//
// The lookup, execution and save are not atomic: two concurrent first
// requests with the same key can both execute.
func (p *ReferralProcessor) CreateLinkIdempotent(ctx context.Context, userID, ownCode, idemKey string, req CreateLinkRequest) ([]byte, error) {
	idemKey = strings.TrimSpace(idemKey)
	if idemKey == "" {
		resp, err := p.CreateLink(ctx, userID, ownCode, req)
		if err != nil {
			return nil, err
		}
		return json.Marshal(resp)
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "idempotency_key", Value: idemKey})
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUnauthorized
	}
	key := userID + ":" + idemKey

	hash, err := idempotency.RequestHash(normalizeCreateLink(userID, req))
	if err != nil {
		return nil, fmt.Errorf("failed to hash request: %w", err)
	}

	consistent, err := p.guard.IsConsistent(ctx, CreateLinkRoute, key, hash)
	if err != nil {
		p.logger.Error(ctx, "failed to check idempotency key", err)
		return nil, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	if !consistent {
		p.logger.Warn(ctx, "idempotency key reused with a different request")
		p.metrics.LinkRejected("idempotency_conflict")
		return nil, ErrIdempotencyConflict
	}

	cached, ok, err := p.guard.TryGet(ctx, CreateLinkRoute, key)
	if err != nil {
		p.logger.Error(ctx, "failed to read idempotent response", err)
		return nil, fmt.Errorf("failed to read idempotent response: %w", err)
	}
	if ok {
		p.logger.Info(ctx, "replaying idempotent response")
		p.metrics.Replayed()
		return cached, nil
	}

	resp, err := p.CreateLink(ctx, userID, ownCode, req)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}

	if err := p.guard.Save(ctx, CreateLinkRoute, key, hash, body); err != nil {
		// The link exists; losing the replay entry only weakens dedup.
		p.logger.Error(ctx, "failed to save idempotent response", err)
	}
	return body, nil
}
