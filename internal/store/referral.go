package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const sqlUpsertReferral = `
INSERT INTO referrals (id, referrer_user_id, link_id, referee_user_id, status, display_name, channel, created_at, last_event_at)
VALUES (:id, :referrer_user_id, :link_id, :referee_user_id, :status, :display_name, :channel, :created_at, :last_event_at)
ON CONFLICT (id) DO UPDATE
SET referee_user_id = EXCLUDED.referee_user_id,
    status = EXCLUDED.status,
    display_name = EXCLUDED.display_name,
    last_event_at = EXCLUDED.last_event_at
`

// SaveReferral inserts a referral or overwrites its mutable fields.
func (s *Store) SaveReferral(ctx context.Context, referral Referral) error {
	if _, err := s.db.NamedExecContext(ctx, sqlUpsertReferral, referral); err != nil {
		s.logger.Error(ctx, "failed to save referral", err)
		return fmt.Errorf("failed to save referral: %w", err)
	}
	return nil
}

const sqlGetReferralByID = `
SELECT id, referrer_user_id, link_id, referee_user_id, status, display_name, channel, created_at, last_event_at
FROM referrals
WHERE id = $1
`

// GetReferralByID retrieves a referral by ID
func (s *Store) GetReferralByID(ctx context.Context, id string) (Referral, error) {
	var referral Referral
	err := s.db.GetContext(ctx, &referral, sqlGetReferralByID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Referral{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get referral by id", err)
		return Referral{}, fmt.Errorf("failed to get referral by id: %w", err)
	}
	return referral, nil
}

const sqlGetReferralByLinkID = `
SELECT id, referrer_user_id, link_id, referee_user_id, status, display_name, channel, created_at, last_event_at
FROM referrals
WHERE link_id = $1
`

// GetReferralByLinkID retrieves the referral created alongside a link
func (s *Store) GetReferralByLinkID(ctx context.Context, linkID string) (Referral, error) {
	var referral Referral
	err := s.db.GetContext(ctx, &referral, sqlGetReferralByLinkID, linkID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Referral{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get referral by link id", err)
		return Referral{}, fmt.Errorf("failed to get referral by link id: %w", err)
	}
	return referral, nil
}

const sqlListReferralsByReferrer = `
SELECT id, referrer_user_id, link_id, referee_user_id, status, display_name, channel, created_at, last_event_at
FROM referrals
WHERE referrer_user_id = $1
  AND ($2::text IS NULL OR status = $2)
ORDER BY created_at DESC, id DESC
LIMIT $3 OFFSET $4
`

// ListReferralsByReferrer returns one page of a referrer's referrals, newest first.
// One extra row is fetched to tell whether another page exists.
func (s *Store) ListReferralsByReferrer(ctx context.Context, params ListReferralsParams) (ReferralPage, error) {
	var status interface{}
	if params.Status != nil {
		status = params.Status.String()
	}

	var referrals []Referral
	err := s.db.SelectContext(ctx, &referrals, sqlListReferralsByReferrer,
		params.ReferrerUserID,
		status,
		params.Limit+1,
		params.Offset)
	if err != nil {
		s.logger.Error(ctx, "failed to list referrals by referrer", err)
		return ReferralPage{}, fmt.Errorf("failed to list referrals by referrer: %w", err)
	}

	page := ReferralPage{Items: referrals}
	if len(referrals) > params.Limit {
		page.Items = referrals[:params.Limit]
		page.HasMore = true
	}
	if page.Items == nil {
		page.Items = []Referral{}
	}
	return page, nil
}

const sqlCountReferralsByStatus = `
SELECT status, COUNT(*) AS count
FROM referrals
WHERE referrer_user_id = $1
GROUP BY status
`

type statusCountRow struct {
	Status ReferralStatus `db:"status"`
	Count  int            `db:"count"`
}

// CountReferralsByStatus aggregates a referrer's referrals per status.
func (s *Store) CountReferralsByStatus(ctx context.Context, referrerUserID string) (StatusCounts, error) {
	var rows []statusCountRow
	err := s.db.SelectContext(ctx, &rows, sqlCountReferralsByStatus, referrerUserID)
	if err != nil {
		s.logger.Error(ctx, "failed to count referrals by status", err)
		return StatusCounts{}, fmt.Errorf("failed to count referrals by status: %w", err)
	}

	var counts StatusCounts
	for _, row := range rows {
		if row.Status.Valid() {
			counts[row.Status] += row.Count
		}
	}
	return counts, nil
}
