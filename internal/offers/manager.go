// internal/offers/manager.go
package offers

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/thanhpk/randstr"

	"github.com/openmint/marketplace-backend/internal/models"
	"github.com/openmint/marketplace-backend/internal/storage"
	"github.com/openmint/marketplace-backend/internal/utils"
)

const defaultExpiry = 7 * 24 * time.Hour

// Manager owns the offer lifecycle: pending offers terminate in exactly one
// of accepted, rejected, cancelled or expired, and terminal offers are
// immutable. All state lives under one storage key; every mutation is a
// whole-collection read-modify-write, last write wins.
type Manager struct {
	store         *storage.Store
	log           *logrus.Entry
	now           func() time.Time
	defaultExpiry time.Duration
}

type Option func(*Manager)

// WithClock overrides the manager's clock, used by expiry tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithDefaultExpiry sets the expiry window applied when CreateParams carries
// no explicit expiry.
func WithDefaultExpiry(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.defaultExpiry = d
		}
	}
}

func NewManager(store *storage.Store, log *logrus.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:         store,
		log:           log.WithField("component", "offers"),
		now:           time.Now,
		defaultExpiry: defaultExpiry,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type CreateParams struct {
	NFTID              string
	NFTTitle           string
	NFTImage           string
	NFTContractAddress string
	NFTTokenID         string
	Amount             float64
	AmountUSD          float64
	FromAddress        string
	ToAddress          string
	Message            string
	ExpiresAt          time.Time // zero value means now + default expiry
}

// Create appends a new pending offer and returns it. It fails on a missing
// NFT id or address, a non-positive amount, an expiry not after creation
// time, or a persistence failure. Self-offers (from == to) are allowed.
func (m *Manager) Create(p CreateParams) (*models.Offer, bool) {
	if p.NFTID == "" || p.FromAddress == "" || p.ToAddress == "" || p.Amount <= 0 {
		return nil, false
	}

	createdAt := m.now()
	expiresAt := p.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = createdAt.Add(m.defaultExpiry)
	}
	if !expiresAt.After(createdAt) {
		return nil, false
	}

	offer := models.Offer{
		ID:                 newOfferID(createdAt),
		NFTID:              p.NFTID,
		NFTTitle:           p.NFTTitle,
		NFTImage:           p.NFTImage,
		NFTContractAddress: p.NFTContractAddress,
		NFTTokenID:         p.NFTTokenID,
		OfferAmount:        p.Amount,
		OfferAmountUSD:     p.AmountUSD,
		FromAddress:        p.FromAddress,
		ToAddress:          p.ToAddress,
		Status:             models.OfferStatusPending,
		Message:            p.Message,
		CreatedAt:          createdAt,
		ExpiresAt:          expiresAt,
	}

	all := m.All()
	all = append(all, offer)
	if !m.store.Set(storage.KeyOffers, all) {
		return nil, false
	}

	m.appendAction(models.OfferActionCreated, offer)
	m.log.WithFields(logrus.Fields{
		"offer_id": offer.ID,
		"nft_id":   offer.NFTID,
		"amount":   offer.OfferAmount,
	}).Info("Offer created")
	return &offer, true
}

// Accept transitions a pending offer to accepted. Only the offer's receiver
// may accept; the compare is case-insensitive. Accepting does not transfer
// the NFT, that is the caller's follow-up on a true return.
func (m *Manager) Accept(offerID, actorAddress string) bool {
	return m.transition(offerID, actorAddress, models.OfferStatusAccepted)
}

// Reject transitions a pending offer to rejected, authorized to the
// receiver.
func (m *Manager) Reject(offerID, actorAddress string) bool {
	return m.transition(offerID, actorAddress, models.OfferStatusRejected)
}

// Cancel transitions a pending offer to cancelled, authorized to the
// sender.
func (m *Manager) Cancel(offerID, actorAddress string) bool {
	return m.transition(offerID, actorAddress, models.OfferStatusCancelled)
}

func (m *Manager) transition(offerID, actorAddress string, target models.OfferStatus) bool {
	all := m.All()

	idx := -1
	for i := range all {
		if all[i].ID == offerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	offer := &all[idx]
	authorized := offer.ToAddress
	if target == models.OfferStatusCancelled {
		authorized = offer.FromAddress
	}
	if !utils.SameAddress(actorAddress, authorized) {
		return false
	}
	if offer.Status != models.OfferStatusPending {
		return false
	}

	now := m.now()
	offer.Status = target
	switch target {
	case models.OfferStatusAccepted:
		offer.AcceptedAt = &now
	case models.OfferStatusRejected:
		offer.RejectedAt = &now
	}

	if !m.store.Set(storage.KeyOffers, all) {
		return false
	}

	m.appendAction(actionTypeFor(target), *offer)
	m.log.WithFields(logrus.Fields{
		"offer_id": offer.ID,
		"status":   offer.Status,
	}).Info("Offer transitioned")
	return true
}

// MarkExpired sweeps pending offers whose expiry has passed and flips them
// to expired. The collection is persisted only when at least one offer
// changed. Returns the number of offers expired.
func (m *Manager) MarkExpired() int {
	all := m.All()
	now := m.now()

	var expired []models.Offer
	for i := range all {
		if all[i].Status == models.OfferStatusPending && all[i].ExpiresAt.Before(now) {
			all[i].Status = models.OfferStatusExpired
			expired = append(expired, all[i])
		}
	}
	if len(expired) == 0 {
		return 0
	}

	if !m.store.Set(storage.KeyOffers, all) {
		return 0
	}
	for _, offer := range expired {
		m.appendAction(models.OfferActionExpired, offer)
	}
	m.log.WithField("count", len(expired)).Info("Expired stale offers")
	return len(expired)
}

// Get returns the offer with the given id.
func (m *Manager) Get(offerID string) (*models.Offer, bool) {
	for _, offer := range m.All() {
		if offer.ID == offerID {
			return &offer, true
		}
	}
	return nil, false
}

// All returns every persisted offer.
func (m *Manager) All() []models.Offer {
	return storage.Get(m.store, storage.KeyOffers, []models.Offer{})
}

// ForNFT returns every offer made on the given NFT.
func (m *Manager) ForNFT(nftID string) []models.Offer {
	return m.filter(func(o models.Offer) bool { return o.NFTID == nftID })
}

// SentBy returns the offers a wallet has made, case-insensitive on address.
func (m *Manager) SentBy(address string) []models.Offer {
	return m.filter(func(o models.Offer) bool { return utils.SameAddress(o.FromAddress, address) })
}

// ReceivedBy returns the offers addressed to a wallet.
func (m *Manager) ReceivedBy(address string) []models.Offer {
	return m.filter(func(o models.Offer) bool { return utils.SameAddress(o.ToAddress, address) })
}

// PendingForNFT returns the live offers on an NFT: pending status and not
// yet past expiry, whether or not the expiry sweep has run.
func (m *Manager) PendingForNFT(nftID string) []models.Offer {
	now := m.now()
	return m.filter(func(o models.Offer) bool {
		return o.NFTID == nftID && o.Status == models.OfferStatusPending && o.ExpiresAt.After(now)
	})
}

func (m *Manager) filter(keep func(models.Offer) bool) []models.Offer {
	var out []models.Offer
	for _, offer := range m.All() {
		if keep(offer) {
			out = append(out, offer)
		}
	}
	return out
}

// Actions returns the append-only audit log of offer mutations.
func (m *Manager) Actions() []models.OfferAction {
	return storage.Get(m.store, storage.KeyOfferActions, []models.OfferAction{})
}

// appendAction records a mutation in the audit log. Failures are logged and
// swallowed: the log is advisory and never blocks an offer mutation that
// already persisted.
func (m *Manager) appendAction(actionType models.OfferActionType, offer models.Offer) {
	action := models.OfferAction{
		ID:          uuid.NewString(),
		Type:        actionType,
		OfferID:     offer.ID,
		NFTID:       offer.NFTID,
		FromAddress: offer.FromAddress,
		ToAddress:   offer.ToAddress,
		Amount:      offer.OfferAmount,
		Timestamp:   m.now(),
	}

	log := append(m.Actions(), action)
	if !m.store.Set(storage.KeyOfferActions, log) {
		m.log.WithField("offer_id", offer.ID).Warn("Failed to append offer action")
	}
}

func actionTypeFor(status models.OfferStatus) models.OfferActionType {
	switch status {
	case models.OfferStatusAccepted:
		return models.OfferActionAccepted
	case models.OfferStatusRejected:
		return models.OfferActionRejected
	case models.OfferStatusCancelled:
		return models.OfferActionCancelled
	case models.OfferStatusExpired:
		return models.OfferActionExpired
	}
	return models.OfferActionCreated
}

// newOfferID builds a time-ordered id with a random suffix. Collisions are
// negligible for a single-writer store; this is not a cryptographic
// guarantee.
func newOfferID(t time.Time) string {
	return fmt.Sprintf("offer_%d_%s", t.UnixMilli(), randstr.Hex(4))
}
