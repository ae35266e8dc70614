// internal/favorites/manager.go
package favorites

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openmint/marketplace-backend/internal/models"
	"github.com/openmint/marketplace-backend/internal/storage"
)

// Manager keeps a per-wallet favorites index. Favoriting is purely a
// display concern and never touches the canonical NFT list.
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
		log:   log.WithField("component", "favorites"),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Add favorites an NFT for a wallet. Adding an existing favorite is a
// successful no-op.
func (m *Manager) Add(address, nftID string) bool {
	if address == "" || nftID == "" {
		return false
	}
	key := storage.FavoritesKey(address)
	list := storage.Get(m.store, key, []models.Favorite{})
	for _, f := range list {
		if f.NFTID == nftID {
			return true
		}
	}
	list = append(list, models.Favorite{NFTID: nftID, AddedAt: m.now()})
	return m.store.Set(key, list)
}

// Remove drops an NFT from a wallet's favorites.
func (m *Manager) Remove(address, nftID string) bool {
	if address == "" || nftID == "" {
		return false
	}
	key := storage.FavoritesKey(address)
	list := storage.Get(m.store, key, []models.Favorite{})
	kept := make([]models.Favorite, 0, len(list))
	for _, f := range list {
		if f.NFTID != nftID {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(list) {
		return true
	}
	return m.store.Set(key, kept)
}

// Toggle flips the favorite state and reports the new state.
func (m *Manager) Toggle(address, nftID string) (favorited bool, ok bool) {
	if m.IsFavorite(address, nftID) {
		return false, m.Remove(address, nftID)
	}
	return true, m.Add(address, nftID)
}

// IsFavorite reports whether a wallet has favorited the NFT.
func (m *Manager) IsFavorite(address, nftID string) bool {
	for _, f := range m.List(address) {
		if f.NFTID == nftID {
			return true
		}
	}
	return false
}

// List returns a wallet's favorites.
func (m *Manager) List(address string) []models.Favorite {
	return storage.Get(m.store, storage.FavoritesKey(address), []models.Favorite{})
}

// Count returns how many wallets have favorited the NFT, a full scan over
// all favorites indices.
func (m *Manager) Count(nftID string) int {
	count := 0
	for _, key := range m.store.Keys(storage.PrefixFavorites) {
		for _, f := range storage.Get(m.store, key, []models.Favorite{}) {
			if f.NFTID == nftID {
				count++
				break
			}
		}
	}
	return count
}
