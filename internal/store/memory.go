package store

import (
	"context"
	"sort"

	"github.com/ecodeclub/ekit/syncx"
)

// MemoryStore keeps links and referrals in concurrent maps. Records are
// stored by value so callers never share mutable state with the store.
// Writes to a key replace the previous value.
type MemoryStore struct {
	links          syncx.Map[string, ReferralLink]
	linksByToken   syncx.Map[DeepLinkToken, string]
	referrals      syncx.Map[string, Referral]
	referralByLink syncx.Map[string, string]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) SaveLink(_ context.Context, link ReferralLink) error {
	m.links.Store(link.ID, link)
	m.linksByToken.Store(link.Token, link.ID)
	return nil
}

// SaveLinkWithReferral stores the referral before the link so a reader that
// finds the link by token always finds its referral too.
func (m *MemoryStore) SaveLinkWithReferral(ctx context.Context, link ReferralLink, referral Referral) error {
	if err := m.SaveReferral(ctx, referral); err != nil {
		return err
	}
	return m.SaveLink(ctx, link)
}

func (m *MemoryStore) GetLinkByID(_ context.Context, id string) (ReferralLink, error) {
	link, ok := m.links.Load(id)
	if !ok {
		return ReferralLink{}, ErrNotFound
	}
	return link, nil
}

func (m *MemoryStore) GetLinkByToken(ctx context.Context, token DeepLinkToken) (ReferralLink, error) {
	id, ok := m.linksByToken.Load(token)
	if !ok {
		return ReferralLink{}, ErrNotFound
	}
	return m.GetLinkByID(ctx, id)
}

func (m *MemoryStore) SaveReferral(_ context.Context, referral Referral) error {
	m.referrals.Store(referral.ID, referral)
	m.referralByLink.Store(referral.LinkID, referral.ID)
	return nil
}

func (m *MemoryStore) GetReferralByID(_ context.Context, id string) (Referral, error) {
	referral, ok := m.referrals.Load(id)
	if !ok {
		return Referral{}, ErrNotFound
	}
	return referral, nil
}

func (m *MemoryStore) GetReferralByLinkID(ctx context.Context, linkID string) (Referral, error) {
	id, ok := m.referralByLink.Load(linkID)
	if !ok {
		return Referral{}, ErrNotFound
	}
	return m.GetReferralByID(ctx, id)
}

func (m *MemoryStore) ListReferralsByReferrer(_ context.Context, params ListReferralsParams) (ReferralPage, error) {
	matched := make([]Referral, 0)
	m.referrals.Range(func(_ string, r Referral) bool {
		if r.ReferrerUserID != params.ReferrerUserID {
			return true
		}
		if params.Status != nil && r.Status != *params.Status {
			return true
		}
		matched = append(matched, r)
		return true
	})

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if params.Offset >= len(matched) {
		return ReferralPage{Items: []Referral{}}, nil
	}
	end := params.Offset + params.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return ReferralPage{
		Items:   matched[params.Offset:end],
		HasMore: end < len(matched),
	}, nil
}

func (m *MemoryStore) CountReferralsByStatus(_ context.Context, referrerUserID string) (StatusCounts, error) {
	var counts StatusCounts
	m.referrals.Range(func(_ string, r Referral) bool {
		if r.ReferrerUserID == referrerUserID && r.Status.Valid() {
			counts[r.Status]++
		}
		return true
	})
	return counts, nil
}
