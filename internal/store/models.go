package store

import (
	"time"
)

// ReferralLink is a shareable deep link minted for a referrer. It is never
// mutated after creation and expiry is checked when it is read.
type ReferralLink struct {
	ID             string        `db:"id" json:"id"`
	ReferrerUserID string        `db:"referrer_user_id" json:"referrer_user_id"`
	ReferralCode   ReferralCode  `db:"referral_code" json:"referral_code"`
	Channel        Channel       `db:"channel" json:"channel"`
	Token          DeepLinkToken `db:"token" json:"token"`
	URL            string        `db:"url" json:"url"`
	Campaign       string        `db:"campaign" json:"campaign"`
	Destination    string        `db:"destination" json:"destination"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	ExpiresAt      time.Time     `db:"expires_at" json:"expires_at"`
}

// Expired reports whether the link can no longer be resolved at now.
func (l ReferralLink) Expired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}

// Referral tracks the lifecycle of the person who installs through a link.
// Exactly one referral exists per link.
type Referral struct {
	ID             string         `db:"id" json:"id"`
	ReferrerUserID string         `db:"referrer_user_id" json:"referrer_user_id"`
	LinkID         string         `db:"link_id" json:"link_id"`
	RefereeUserID  *string        `db:"referee_user_id" json:"referee_user_id,omitempty"`
	Status         ReferralStatus `db:"status" json:"status"`
	DisplayName    *string        `db:"display_name" json:"display_name,omitempty"`
	Channel        Channel        `db:"channel" json:"channel"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	LastEventAt    time.Time      `db:"last_event_at" json:"last_event_at"`
}

// ListReferralsParams filters a referrer's referrals. Status is optional.
type ListReferralsParams struct {
	ReferrerUserID string
	Status         *ReferralStatus
	Limit          int
	Offset         int
}

// ReferralPage is one page of referrals ordered newest first.
type ReferralPage struct {
	Items   []Referral
	HasMore bool
}
