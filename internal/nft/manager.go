// internal/nft/manager.go
package nft

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openmint/marketplace-backend/internal/models"
	"github.com/openmint/marketplace-backend/internal/storage"
	"github.com/openmint/marketplace-backend/internal/utils"
)

// Manager maintains the canonical NFT list and the per-address indices
// derived from it: holdings, hidden ids, delisted ids, burn entries and
// transfer history. Listing, visibility, transfer and burn are independent
// facets of one record, each with its own operation.
type Manager struct {
	store *storage.Store
	log   *logrus.Entry
	now   func() time.Time
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(store *storage.Store, log *logrus.Logger, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		log:   log.WithField("component", "nft"),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Status is the read-only projection of an NFT's facets for one viewer.
// It is derived on every read, never stored.
type Status struct {
	IsListed      bool `json:"is_listed"`
	IsHidden      bool `json:"is_hidden"`
	IsBurned      bool `json:"is_burned"`
	IsTransferred bool `json:"is_transferred"`
}

// Mint adds a new NFT to the canonical list and to its creator's holdings.
// It fails on a missing id or creator, or when the id is already taken.
func (m *Manager) Mint(record models.NFT) bool {
	if record.ID == "" || record.Creator == "" {
		return false
	}
	all := m.All()
	for _, n := range all {
		if n.ID == record.ID {
			return false
		}
	}

	if record.Status == "" {
		record.Status = models.NFTStatusListed
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = m.now()
	}

	if !m.store.Set(storage.KeyNFTs, append(all, record)) {
		return false
	}

	ownedKey := storage.OwnedNFTsKey(record.Creator)
	owned := storage.Get(m.store, ownedKey, []models.OwnedNFT{})
	if !m.store.Set(ownedKey, append(owned, models.OwnedNFT{NFT: record})) {
		m.log.WithField("nft_id", record.ID).Warn("Failed to update holdings after mint")
	}

	m.log.WithFields(logrus.Fields{
		"nft_id":  record.ID,
		"creator": record.Creator,
	}).Info("NFT minted")
	return true
}

// Delist takes the NFT off sale without changing ownership. Only the
// current owner may delist.
func (m *Manager) Delist(nftID, actorAddress string) bool {
	ok := m.updateRecord(nftID, actorAddress, func(record *models.NFT) bool {
		if record.Status == models.NFTStatusDelisted {
			return false
		}
		record.Status = models.NFTStatusDelisted
		return true
	})
	if !ok {
		return false
	}

	key := storage.DelistedNFTsKey(actorAddress)
	ids := storage.Get(m.store, key, []string{})
	if !contains(ids, nftID) {
		m.store.Set(key, append(ids, nftID))
	}
	return true
}

// Relist puts a delisted NFT back on sale at a new price. The price must be
// positive.
func (m *Manager) Relist(nftID, actorAddress string, price float64) bool {
	if price <= 0 {
		return false
	}
	ok := m.updateRecord(nftID, actorAddress, func(record *models.NFT) bool {
		record.Status = models.NFTStatusListed
		record.Price = price
		return true
	})
	if !ok {
		return false
	}

	key := storage.DelistedNFTsKey(actorAddress)
	ids := storage.Get(m.store, key, []string{})
	if filtered := remove(ids, nftID); len(filtered) != len(ids) {
		m.store.Set(key, filtered)
	}
	return true
}

// Hide adds the NFT to the viewer's hidden set. Hiding is a display facet
// only and touches neither listing nor ownership.
func (m *Manager) Hide(nftID, viewerAddress string) bool {
	if nftID == "" || viewerAddress == "" {
		return false
	}
	key := storage.HiddenNFTsKey(viewerAddress)
	ids := storage.Get(m.store, key, []string{})
	if contains(ids, nftID) {
		return true
	}
	return m.store.Set(key, append(ids, nftID))
}

// Unhide removes the NFT from the viewer's hidden set.
func (m *Manager) Unhide(nftID, viewerAddress string) bool {
	if nftID == "" || viewerAddress == "" {
		return false
	}
	key := storage.HiddenNFTsKey(viewerAddress)
	ids := storage.Get(m.store, key, []string{})
	filtered := remove(ids, nftID)
	if len(filtered) == len(ids) {
		return true
	}
	return m.store.Set(key, filtered)
}

// Transfer moves the NFT from one wallet's holdings to another's, stamps
// provenance on the receiving entry, flips the canonical record to the new
// owner, and records the move in the sender's transfer history. It fails
// when the NFT is not in the sender's holdings.
func (m *Manager) Transfer(nftID, fromAddress, toAddress string) bool {
	if nftID == "" || fromAddress == "" || toAddress == "" {
		return false
	}

	fromKey := storage.OwnedNFTsKey(fromAddress)
	fromOwned := storage.Get(m.store, fromKey, []models.OwnedNFT{})

	idx := -1
	for i := range fromOwned {
		if fromOwned[i].ID == nftID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	now := m.now()
	moved := fromOwned[idx]
	moved.PreviousOwner = fromAddress
	moved.TransferredAt = &now
	moved.Creator = toAddress
	moved.Status = models.NFTStatusTransferred

	remaining := append(fromOwned[:idx:idx], fromOwned[idx+1:]...)
	if !m.store.Set(fromKey, remaining) {
		return false
	}

	toKey := storage.OwnedNFTsKey(toAddress)
	toOwned := storage.Get(m.store, toKey, []models.OwnedNFT{})
	if !m.store.Set(toKey, append(toOwned, moved)) {
		return false
	}

	if !m.updateRecord(nftID, fromAddress, func(record *models.NFT) bool {
		record.Creator = toAddress
		record.Status = models.NFTStatusTransferred
		return true
	}) {
		m.log.WithField("nft_id", nftID).Warn("Failed to update canonical record after transfer")
	}

	historyKey := storage.TransferHistoryKey(fromAddress)
	history := storage.Get(m.store, historyKey, []models.TransferRecord{})
	history = append(history, models.TransferRecord{
		NFTID:         nftID,
		FromAddress:   fromAddress,
		ToAddress:     toAddress,
		TransferredAt: now,
	})
	if !m.store.Set(historyKey, history) {
		m.log.WithField("nft_id", nftID).Warn("Failed to record transfer history")
	}

	m.log.WithFields(logrus.Fields{
		"nft_id": nftID,
		"from":   fromAddress,
		"to":     toAddress,
	}).Info("NFT transferred")
	return true
}

// Burn destroys the NFT for good: the record leaves the canonical list and
// the acting wallet's holdings, the id is scrubbed from every other
// wallet's holdings index, and a burn entry is recorded. Only the current
// owner may burn. Burns cannot be undone.
func (m *Manager) Burn(nftID, userAddress string) bool {
	if nftID == "" || userAddress == "" {
		return false
	}

	all := m.All()
	remaining := make([]models.NFT, 0, len(all))
	found := false
	owns := false
	for _, record := range all {
		if record.ID == nftID {
			found = true
			if utils.SameAddress(record.Creator, userAddress) {
				owns = true
			}
			continue
		}
		remaining = append(remaining, record)
	}

	ownedKey := storage.OwnedNFTsKey(userAddress)
	owned := storage.Get(m.store, ownedKey, []models.OwnedNFT{})
	ownedRemaining := make([]models.OwnedNFT, 0, len(owned))
	for _, item := range owned {
		if item.ID == nftID {
			found = true
			owns = true
			continue
		}
		ownedRemaining = append(ownedRemaining, item)
	}
	if !found || !owns {
		return false
	}

	if !m.store.Set(storage.KeyNFTs, remaining) {
		return false
	}
	if !m.store.Set(ownedKey, ownedRemaining) {
		return false
	}

	// Sweep the id out of every other wallet's holdings.
	for _, key := range m.store.Keys(storage.PrefixOwnedNFTs) {
		if key == ownedKey {
			continue
		}
		held := storage.Get(m.store, key, []models.OwnedNFT{})
		kept := make([]models.OwnedNFT, 0, len(held))
		for _, item := range held {
			if item.ID != nftID {
				kept = append(kept, item)
			}
		}
		if len(kept) != len(held) {
			m.store.Set(key, kept)
		}
	}

	burnKey := storage.BurnedNFTsKey(userAddress)
	burns := storage.Get(m.store, burnKey, []models.BurnRecord{})
	burns = append(burns, models.BurnRecord{
		NFTID:    nftID,
		Address:  userAddress,
		BurnedAt: m.now(),
	})
	if !m.store.Set(burnKey, burns) {
		m.log.WithField("nft_id", nftID).Warn("Failed to record burn entry")
	}

	m.log.WithFields(logrus.Fields{
		"nft_id": nftID,
		"by":     userAddress,
	}).Info("NFT burned")
	return true
}

// GetStatus derives the four facets for one viewer by re-reading the
// canonical record and the relevant indices.
func (m *Manager) GetStatus(nftID, viewerAddress string) Status {
	var status Status

	for _, record := range m.All() {
		if record.ID == nftID {
			status.IsListed = record.Status == models.NFTStatusListed
			status.IsTransferred = record.Status == models.NFTStatusTransferred
			break
		}
	}

	hidden := storage.Get(m.store, storage.HiddenNFTsKey(viewerAddress), []string{})
	status.IsHidden = contains(hidden, nftID)

	// A burn by any wallet marks the id burned for every viewer.
	for _, key := range m.store.Keys(storage.PrefixBurnedNFTs) {
		for _, record := range storage.Get(m.store, key, []models.BurnRecord{}) {
			if record.NFTID == nftID {
				status.IsBurned = true
				return status
			}
		}
	}
	return status
}

// All returns the canonical marketplace NFT list.
func (m *Manager) All() []models.NFT {
	return storage.Get(m.store, storage.KeyNFTs, []models.NFT{})
}

// Get returns the canonical record with the given id.
func (m *Manager) Get(nftID string) (*models.NFT, bool) {
	for _, record := range m.All() {
		if record.ID == nftID {
			return &record, true
		}
	}
	return nil, false
}

// Owned returns a wallet's holdings.
func (m *Manager) Owned(address string) []models.OwnedNFT {
	return storage.Get(m.store, storage.OwnedNFTsKey(address), []models.OwnedNFT{})
}

// TransferHistory returns the transfers a wallet has sent.
func (m *Manager) TransferHistory(address string) []models.TransferRecord {
	return storage.Get(m.store, storage.TransferHistoryKey(address), []models.TransferRecord{})
}

// BurnedEntries returns a wallet's burn records.
func (m *Manager) BurnedEntries(address string) []models.BurnRecord {
	return storage.Get(m.store, storage.BurnedNFTsKey(address), []models.BurnRecord{})
}

// updateRecord applies mutate to the canonical record with the given id
// when the actor owns it. mutate returns false to abort without writing.
func (m *Manager) updateRecord(nftID, actorAddress string, mutate func(*models.NFT) bool) bool {
	all := m.All()
	for i := range all {
		if all[i].ID != nftID {
			continue
		}
		if !utils.SameAddress(all[i].Creator, actorAddress) {
			return false
		}
		if !mutate(&all[i]) {
			return false
		}
		return m.store.Set(storage.KeyNFTs, all)
	}
	return false
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
