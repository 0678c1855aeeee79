package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"referral-server/internal/observability"
	"referral-server/internal/store"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type ReferralListItem struct {
	ReferralID  string    `json:"referral_id"`
	CreatedAt   time.Time `json:"created_at"`
	Status      string    `json:"status"`
	DisplayName *string   `json:"display_name"`
	LastEventAt time.Time `json:"last_event_at"`
	Channel     string    `json:"channel"`
}

type ListReferralsResponse struct {
	Items      []ReferralListItem `json:"items"`
	NextCursor *string            `json:"next_cursor"`
}

type SummaryResponse struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Installed int `json:"installed"`
	Complete  int `json:"complete"`
	Rewarded  int `json:"rewarded"`
}

// ListReferrals pages through the user's referrals, newest first. A cursor
// that cannot be decoded restarts from the first page.
func (p *ReferralProcessor) ListReferrals(ctx context.Context, userID, status string, limit int, cursor string) (ListReferralsResponse, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID},
		observability.Field{Key: "status_filter", Value: status},
	)

	if strings.TrimSpace(userID) == "" {
		return ListReferralsResponse{}, ErrUnauthorized
	}

	params := store.ListReferralsParams{
		ReferrerUserID: userID,
		Limit:          clampLimit(limit),
		Offset:         store.DecodeCursor(cursor),
	}
	if strings.TrimSpace(status) != "" {
		parsed, err := store.ParseReferralStatus(status)
		if err != nil {
			return ListReferralsResponse{}, err
		}
		params.Status = &parsed
	}

	page, err := p.store.ListReferralsByReferrer(ctx, params)
	if err != nil {
		p.logger.Error(ctx, "failed to list referrals", err)
		return ListReferralsResponse{}, fmt.Errorf("failed to list referrals: %w", err)
	}

	items := make([]ReferralListItem, 0, len(page.Items))
	for _, r := range page.Items {
		items = append(items, ReferralListItem{
			ReferralID:  r.ID,
			CreatedAt:   r.CreatedAt,
			Status:      r.Status.String(),
			DisplayName: r.DisplayName,
			LastEventAt: r.LastEventAt,
			Channel:     string(r.Channel),
		})
	}

	resp := ListReferralsResponse{Items: items}
	if page.HasMore {
		next := store.EncodeCursor(params.Offset + len(page.Items))
		resp.NextCursor = &next
	}
	return resp, nil
}

func (p *ReferralProcessor) GetSummary(ctx context.Context, userID string) (SummaryResponse, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "user_id", Value: userID})

	if strings.TrimSpace(userID) == "" {
		return SummaryResponse{}, ErrUnauthorized
	}

	counts, err := p.store.CountReferralsByStatus(ctx, userID)
	if err != nil {
		p.logger.Error(ctx, "failed to count referrals", err)
		return SummaryResponse{}, fmt.Errorf("failed to count referrals: %w", err)
	}

	return SummaryResponse{
		Total:     counts.Total(),
		Pending:   counts.Get(store.StatusPending),
		Installed: counts.Get(store.StatusInstalled),
		Complete:  counts.Get(store.StatusComplete),
		Rewarded:  counts.Get(store.StatusRewarded),
	}, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}
