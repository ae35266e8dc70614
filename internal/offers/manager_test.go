// internal/offers/manager_test.go
package offers

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmint/marketplace-backend/internal/models"
	"github.com/openmint/marketplace-backend/internal/storage"
)

const (
	buyer  = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	seller = "0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"
	other  = "0xcccccccccccccccccccccccccccccccccccccccc"
)

func newTestManager(t *testing.T) (*Manager, *time.Time) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := storage.NewStore(storage.NewMemoryBackend(0), log, storage.DefaultOptions())
	m := NewManager(store, log, WithClock(func() time.Time { return now }))
	return m, &now
}

func makeOffer(t *testing.T, m *Manager) *models.Offer {
	t.Helper()

	offer, ok := m.Create(CreateParams{
		NFTID:       "nft-1",
		NFTTitle:    "Genesis",
		Amount:      2.5,
		AmountUSD:   5000,
		FromAddress: buyer,
		ToAddress:   seller,
		Message:     "take it or leave it",
	})
	require.True(t, ok)
	return offer
}

func TestCreateRoundTrip(t *testing.T) {
	m, _ := newTestManager(t)
	created := makeOffer(t, m)

	sent := m.SentBy(buyer)
	require.Len(t, sent, 1)
	got := sent[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, models.OfferStatusPending, got.Status)
	assert.Equal(t, "nft-1", got.NFTID)
	assert.Equal(t, 2.5, got.OfferAmount)
	assert.Equal(t, buyer, got.FromAddress)
	assert.Equal(t, seller, got.ToAddress)
	assert.True(t, got.ExpiresAt.After(got.CreatedAt))
}

func TestCreateValidation(t *testing.T) {
	m, now := newTestManager(t)

	_, ok := m.Create(CreateParams{NFTID: "", FromAddress: buyer, ToAddress: seller, Amount: 1})
	assert.False(t, ok)

	_, ok = m.Create(CreateParams{NFTID: "nft-1", FromAddress: buyer, ToAddress: seller, Amount: 0})
	assert.False(t, ok)

	_, ok = m.Create(CreateParams{
		NFTID: "nft-1", FromAddress: buyer, ToAddress: seller, Amount: 1,
		ExpiresAt: now.Add(-time.Minute),
	})
	assert.False(t, ok)

	assert.Empty(t, m.All())
}

func TestCreateAllowsSelfOffer(t *testing.T) {
	m, _ := newTestManager(t)

	_, ok := m.Create(CreateParams{NFTID: "nft-1", FromAddress: buyer, ToAddress: buyer, Amount: 1})
	assert.True(t, ok)
}

func TestCreateGeneratesUniqueIDs(t *testing.T) {
	m, _ := newTestManager(t)

	a := makeOffer(t, m)
	b := makeOffer(t, m)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestAcceptByReceiver(t *testing.T) {
	m, _ := newTestManager(t)
	offer := makeOffer(t, m)

	// case-insensitive actor compare
	assert.True(t, m.Accept(offer.ID, "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"))

	got, ok := m.Get(offer.ID)
	require.True(t, ok)
	assert.Equal(t, models.OfferStatusAccepted, got.Status)
	require.NotNil(t, got.AcceptedAt)
}

func TestAcceptTwiceFailsAndKeepsTimestamp(t *testing.T) {
	m, now := newTestManager(t)
	offer := makeOffer(t, m)

	require.True(t, m.Accept(offer.ID, seller))
	first, _ := m.Get(offer.ID)

	*now = now.Add(time.Hour)
	assert.False(t, m.Accept(offer.ID, seller))

	second, _ := m.Get(offer.ID)
	assert.Equal(t, first.AcceptedAt, second.AcceptedAt)
}

func TestAcceptUnauthorized(t *testing.T) {
	m, _ := newTestManager(t)
	offer := makeOffer(t, m)

	assert.False(t, m.Accept(offer.ID, buyer))
	assert.False(t, m.Accept(offer.ID, other))

	got, _ := m.Get(offer.ID)
	assert.Equal(t, models.OfferStatusPending, got.Status)
}

func TestAcceptMissingOffer(t *testing.T) {
	m, _ := newTestManager(t)
	makeOffer(t, m)

	assert.False(t, m.Accept("offer_0_dead", seller))
	assert.Len(t, m.All(), 1)
}

func TestRejectUnauthorizedLeavesPending(t *testing.T) {
	m, _ := newTestManager(t)
	offer := makeOffer(t, m)

	assert.False(t, m.Reject(offer.ID, other))

	got, _ := m.Get(offer.ID)
	assert.Equal(t, models.OfferStatusPending, got.Status)
	assert.Nil(t, got.RejectedAt)
}

func TestCancelBySenderOnly(t *testing.T) {
	m, _ := newTestManager(t)
	offer := makeOffer(t, m)

	assert.False(t, m.Cancel(offer.ID, seller))
	assert.True(t, m.Cancel(offer.ID, buyer))

	got, _ := m.Get(offer.ID)
	assert.Equal(t, models.OfferStatusCancelled, got.Status)

	// terminal offers stay terminal
	assert.False(t, m.Accept(offer.ID, seller))
}

func TestMarkExpired(t *testing.T) {
	m, now := newTestManager(t)

	stale := makeOffer(t, m)
	accepted := makeOffer(t, m)
	require.True(t, m.Accept(accepted.ID, seller))

	fresh, ok := m.Create(CreateParams{
		NFTID: "nft-2", FromAddress: buyer, ToAddress: seller, Amount: 1,
		ExpiresAt: now.Add(30 * 24 * time.Hour),
	})
	require.True(t, ok)

	*now = now.Add(8 * 24 * time.Hour) // past the 7-day default expiry
	assert.Equal(t, 1, m.MarkExpired())

	got, _ := m.Get(stale.ID)
	assert.Equal(t, models.OfferStatusExpired, got.Status)

	// an accepted offer is untouched even though its expiry has passed
	got, _ = m.Get(accepted.ID)
	assert.Equal(t, models.OfferStatusAccepted, got.Status)

	got, _ = m.Get(fresh.ID)
	assert.Equal(t, models.OfferStatusPending, got.Status)

	// nothing left to expire
	assert.Equal(t, 0, m.MarkExpired())
}

func TestQueries(t *testing.T) {
	m, _ := newTestManager(t)
	makeOffer(t, m)

	_, ok := m.Create(CreateParams{NFTID: "nft-2", FromAddress: other, ToAddress: buyer, Amount: 1})
	require.True(t, ok)

	assert.Len(t, m.ForNFT("nft-1"), 1)
	assert.Len(t, m.PendingForNFT("nft-1"), 1)
	assert.Len(t, m.SentBy("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"), 1)
	assert.Len(t, m.ReceivedBy(buyer), 1)
	assert.Empty(t, m.ForNFT("nft-3"))
}

func TestAuditLog(t *testing.T) {
	m, _ := newTestManager(t)
	offer := makeOffer(t, m)
	require.True(t, m.Reject(offer.ID, seller))

	actions := m.Actions()
	require.Len(t, actions, 2)
	assert.Equal(t, models.OfferActionCreated, actions[0].Type)
	assert.Equal(t, models.OfferActionRejected, actions[1].Type)
	assert.Equal(t, offer.ID, actions[1].OfferID)
	assert.Equal(t, offer.OfferAmount, actions[1].Amount)
}
