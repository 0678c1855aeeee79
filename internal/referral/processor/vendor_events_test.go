package processor

import (
	"errors"
	"strings"
	"testing"
	"time"

	"referral-server/internal/events"
	"referral-server/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func storedReferral(status store.ReferralStatus) store.Referral {
	return store.Referral{
		ID:             "ref_1",
		ReferrerUserID: "user_123",
		LinkID:         "rl_1",
		Status:         status,
		Channel:        store.ChannelSMS,
		CreatedAt:      testNow.Add(-time.Hour),
		LastEventAt:    testNow.Add(-time.Hour),
	}
}

func TestHandleVendorEvent_Transitions(t *testing.T) {
	occurred := testNow.Add(-5 * time.Minute)

	tests := []struct {
		name          string
		from          store.ReferralStatus
		eventType     string
		guardRewarded bool
		want          store.ReferralStatus
	}{
		{name: "install from pending", from: store.StatusPending, eventType: "install", want: store.StatusInstalled},
		{name: "open from pending", from: store.StatusPending, eventType: " OPEN ", want: store.StatusInstalled},
		{name: "install keeps installed", from: store.StatusInstalled, eventType: "install", want: store.StatusInstalled},
		{name: "install does not regress complete", from: store.StatusComplete, eventType: "install", want: store.StatusComplete},
		{name: "open does not regress rewarded", from: store.StatusRewarded, eventType: "open", want: store.StatusRewarded},
		{name: "complete from pending", from: store.StatusPending, eventType: "complete", want: store.StatusComplete},
		{name: "rewarded from installed", from: store.StatusInstalled, eventType: "Rewarded", want: store.StatusRewarded},
		{name: "complete after rewarded moves back", from: store.StatusRewarded, eventType: "complete", want: store.StatusComplete},
		{name: "complete after rewarded guarded", from: store.StatusRewarded, eventType: "complete", guardRewarded: true, want: store.StatusRewarded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, m := newMockedProcessor(t, Options{GuardRewarded: tt.guardRewarded})

			m.store.EXPECT().GetLinkByToken(gomock.Any(), store.DeepLinkToken("dl_abcdef123456")).
				Return(storedLink(testNow.Add(time.Hour)), nil)
			m.store.EXPECT().GetReferralByLinkID(gomock.Any(), "rl_1").Return(storedReferral(tt.from), nil)

			var saved store.Referral
			m.store.EXPECT().SaveReferral(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ any, r store.Referral) error {
					saved = r
					return nil
				})
			if tt.want != tt.from {
				m.events.EXPECT().PublishReferralStatusChanged(gomock.Any(), gomock.Any(), events.StatusChange{
					Previous:  tt.from,
					EventType: strings.ToLower(strings.TrimSpace(tt.eventType)),
				}).Return(nil)
			}

			err := p.HandleVendorEvent(bg, VendorEvent{EventType: tt.eventType, Token: "dl_abcdef123456", OccurredAt: occurred})
			require.NoError(t, err)
			assert.Equal(t, tt.want, saved.Status)
			assert.Equal(t, occurred, saved.LastEventAt)
		})
	}
}

func TestHandleVendorEvent_CompleteNamesReferee(t *testing.T) {
	t.Run("default name", func(t *testing.T) {
		p, m := newMockedProcessor(t, Options{})
		m.store.EXPECT().GetLinkByToken(gomock.Any(), gomock.Any()).Return(storedLink(testNow), nil)
		m.store.EXPECT().GetReferralByLinkID(gomock.Any(), gomock.Any()).Return(storedReferral(store.StatusInstalled), nil)
		m.store.EXPECT().SaveReferral(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, r store.Referral) error {
				require.NotNil(t, r.DisplayName)
				assert.Equal(t, "New friend", *r.DisplayName)
				return nil
			})
		m.events.EXPECT().PublishReferralStatusChanged(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, p.HandleVendorEvent(bg, VendorEvent{EventType: "complete", Token: "dl_abcdef123456"}))
	})

	t.Run("name and referee from metadata", func(t *testing.T) {
		p, m := newMockedProcessor(t, Options{})
		m.store.EXPECT().GetLinkByToken(gomock.Any(), gomock.Any()).Return(storedLink(testNow), nil)
		m.store.EXPECT().GetReferralByLinkID(gomock.Any(), gomock.Any()).Return(storedReferral(store.StatusInstalled), nil)
		m.store.EXPECT().SaveReferral(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, r store.Referral) error {
				assert.Equal(t, "Jenny S.", *r.DisplayName)
				assert.Equal(t, "user_999", *r.RefereeUserID)
				return nil
			})
		m.events.EXPECT().PublishReferralStatusChanged(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, p.HandleVendorEvent(bg, VendorEvent{
			EventType: "complete",
			Token:     "dl_abcdef123456",
			Metadata:  map[string]string{"display_name": "Jenny S.", "referee_user_id": "user_999"},
		}))
	})

	t.Run("existing name kept", func(t *testing.T) {
		p, m := newMockedProcessor(t, Options{})
		name := "Archer K."
		ref := storedReferral(store.StatusInstalled)
		ref.DisplayName = &name

		m.store.EXPECT().GetLinkByToken(gomock.Any(), gomock.Any()).Return(storedLink(testNow), nil)
		m.store.EXPECT().GetReferralByLinkID(gomock.Any(), gomock.Any()).Return(ref, nil)
		m.store.EXPECT().SaveReferral(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, r store.Referral) error {
				assert.Equal(t, "Archer K.", *r.DisplayName)
				return nil
			})
		m.events.EXPECT().PublishReferralStatusChanged(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, p.HandleVendorEvent(bg, VendorEvent{EventType: "complete", Token: "dl_abcdef123456"}))
	})
}

func TestHandleVendorEvent_ZeroOccurredAtUsesNow(t *testing.T) {
	p, m := newMockedProcessor(t, Options{})
	m.store.EXPECT().GetLinkByToken(gomock.Any(), gomock.Any()).Return(storedLink(testNow), nil)
	m.store.EXPECT().GetReferralByLinkID(gomock.Any(), gomock.Any()).Return(storedReferral(store.StatusInstalled), nil)
	m.store.EXPECT().SaveReferral(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, r store.Referral) error {
			assert.Equal(t, testNow, r.LastEventAt)
			return nil
		})

	// Installed stays installed, so no status change is published.
	require.NoError(t, p.HandleVendorEvent(bg, VendorEvent{EventType: "open", Token: "dl_abcdef123456"}))
}

func TestHandleVendorEvent_Failures(t *testing.T) {
	t.Run("malformed token", func(t *testing.T) {
		p, _ := newMockedProcessor(t, Options{})
		err := p.HandleVendorEvent(bg, VendorEvent{EventType: "install", Token: "tiny"})
		assert.ErrorIs(t, err, store.ErrInvalidToken)
	})

	t.Run("unknown token", func(t *testing.T) {
		p, m := newMockedProcessor(t, Options{})
		m.store.EXPECT().GetLinkByToken(gomock.Any(), gomock.Any()).Return(store.ReferralLink{}, store.ErrNotFound)

		err := p.HandleVendorEvent(bg, VendorEvent{EventType: "install", Token: "dl_abcdef123456"})
		assert.ErrorIs(t, err, ErrTokenNotFound)
	})

	t.Run("link without referral", func(t *testing.T) {
		p, m := newMockedProcessor(t, Options{})
		m.store.EXPECT().GetLinkByToken(gomock.Any(), gomock.Any()).Return(storedLink(testNow), nil)
		m.store.EXPECT().GetReferralByLinkID(gomock.Any(), "rl_1").Return(store.Referral{}, store.ErrNotFound)

		err := p.HandleVendorEvent(bg, VendorEvent{EventType: "install", Token: "dl_abcdef123456"})
		assert.ErrorIs(t, err, ErrReferralNotFound)
	})

	t.Run("unknown event type persists nothing", func(t *testing.T) {
		p, m := newMockedProcessor(t, Options{})
		m.store.EXPECT().GetLinkByToken(gomock.Any(), gomock.Any()).Return(storedLink(testNow), nil)
		m.store.EXPECT().GetReferralByLinkID(gomock.Any(), gomock.Any()).Return(storedReferral(store.StatusPending), nil)

		err := p.HandleVendorEvent(bg, VendorEvent{EventType: "uninstall", Token: "dl_abcdef123456"})
		assert.ErrorIs(t, err, ErrUnknownEventType)
	})

	t.Run("save failure", func(t *testing.T) {
		p, m := newMockedProcessor(t, Options{})
		dbErr := errors.New("deadlock detected")
		m.store.EXPECT().GetLinkByToken(gomock.Any(), gomock.Any()).Return(storedLink(testNow), nil)
		m.store.EXPECT().GetReferralByLinkID(gomock.Any(), gomock.Any()).Return(storedReferral(store.StatusPending), nil)
		m.store.EXPECT().SaveReferral(gomock.Any(), gomock.Any()).Return(dbErr)

		err := p.HandleVendorEvent(bg, VendorEvent{EventType: "install", Token: "dl_abcdef123456"})
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestHandleVendorEvent_ExpiredLinksStillAdvance(t *testing.T) {
	p, m := newMockedProcessor(t, Options{})
	m.store.EXPECT().GetLinkByToken(gomock.Any(), gomock.Any()).Return(storedLink(testNow.Add(-48*time.Hour)), nil)
	m.store.EXPECT().GetReferralByLinkID(gomock.Any(), gomock.Any()).Return(storedReferral(store.StatusInstalled), nil)
	m.store.EXPECT().SaveReferral(gomock.Any(), gomock.Any()).Return(nil)
	m.events.EXPECT().PublishReferralStatusChanged(gomock.Any(), gomock.Any(), events.StatusChange{Previous: store.StatusInstalled, EventType: "rewarded"}).Return(nil)

	assert.NoError(t, p.HandleVendorEvent(bg, VendorEvent{EventType: "rewarded", Token: "dl_abcdef123456"}))
}

func TestHandleVendorEvent_StatusChangeCarriesVendorContext(t *testing.T) {
	p, m := newMockedProcessor(t, Options{})
	metadata := map[string]string{"campaign_ref": "spring", "display_name": "Helen Y."}

	m.store.EXPECT().GetLinkByToken(gomock.Any(), gomock.Any()).Return(storedLink(testNow), nil)
	m.store.EXPECT().GetReferralByLinkID(gomock.Any(), gomock.Any()).Return(storedReferral(store.StatusInstalled), nil)
	m.store.EXPECT().SaveReferral(gomock.Any(), gomock.Any()).Return(nil)
	m.events.EXPECT().PublishReferralStatusChanged(gomock.Any(), gomock.Any(), events.StatusChange{
		Previous:     store.StatusInstalled,
		EventType:    "complete",
		DeviceIDHash: "hash-42",
		Metadata:     metadata,
	}).Return(nil)

	require.NoError(t, p.HandleVendorEvent(bg, VendorEvent{
		EventType:    "complete",
		Token:        "dl_abcdef123456",
		DeviceIDHash: "hash-42",
		Metadata:     metadata,
	}))
}
