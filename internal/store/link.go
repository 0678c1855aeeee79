package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const sqlInsertReferralLink = `
INSERT INTO referral_links (id, referrer_user_id, referral_code, channel, token, url, campaign, destination, created_at, expires_at)
VALUES (:id, :referrer_user_id, :referral_code, :channel, :token, :url, :campaign, :destination, :created_at, :expires_at)
`

// SaveLink persists a newly minted link.
func (s *Store) SaveLink(ctx context.Context, link ReferralLink) error {
	if _, err := s.db.NamedExecContext(ctx, sqlInsertReferralLink, link); err != nil {
		s.logger.Error(ctx, "failed to save referral link", err)
		return fmt.Errorf("failed to save referral link: %w", err)
	}
	return nil
}

// SaveLinkWithReferral inserts a link and its first referral in one
// transaction.
func (s *Store) SaveLinkWithReferral(ctx context.Context, link ReferralLink, referral Referral) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.Error(ctx, "failed to begin transaction", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error(ctx, "failed to rollback transaction", rbErr)
		}
	}()

	if _, err = tx.NamedExecContext(ctx, sqlInsertReferralLink, link); err != nil {
		s.logger.Error(ctx, "failed to save referral link", err)
		return fmt.Errorf("failed to save referral link: %w", err)
	}
	if _, err = tx.NamedExecContext(ctx, sqlUpsertReferral, referral); err != nil {
		s.logger.Error(ctx, "failed to save referral", err)
		return fmt.Errorf("failed to save referral: %w", err)
	}
	if err = tx.Commit(); err != nil {
		s.logger.Error(ctx, "failed to commit transaction", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const sqlGetReferralLinkByID = `
SELECT id, referrer_user_id, referral_code, channel, token, url, campaign, destination, created_at, expires_at
FROM referral_links
WHERE id = $1
`

func (s *Store) GetLinkByID(ctx context.Context, id string) (ReferralLink, error) {
	var link ReferralLink
	err := s.db.GetContext(ctx, &link, sqlGetReferralLinkByID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ReferralLink{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get referral link by id", err)
		return ReferralLink{}, fmt.Errorf("failed to get referral link by id: %w", err)
	}
	return link, nil
}

const sqlGetReferralLinkByToken = `
SELECT id, referrer_user_id, referral_code, channel, token, url, campaign, destination, created_at, expires_at
FROM referral_links
WHERE token = $1
`

func (s *Store) GetLinkByToken(ctx context.Context, token DeepLinkToken) (ReferralLink, error) {
	var link ReferralLink
	err := s.db.GetContext(ctx, &link, sqlGetReferralLinkByToken, string(token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ReferralLink{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get referral link by token", err)
		return ReferralLink{}, fmt.Errorf("failed to get referral link by token: %w", err)
	}
	return link, nil
}
