// internal/whitelist/manager.go
package whitelist

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openmint/marketplace-backend/internal/models"
	"github.com/openmint/marketplace-backend/internal/storage"
)

// Manager gates marketplace participation behind an allow-list. Wallets
// apply, an admin approves or rejects, and gated operations consult
// IsWhitelisted. Checks are advisory: the trust boundary is client-side.
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
		log:   log.WithField("component", "whitelist"),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Apply files an application for the wallet. A wallet with a pending or
// approved entry cannot apply again; a rejected wallet may.
func (m *Manager) Apply(address, note string) (*models.WhitelistEntry, bool) {
	if address == "" {
		return nil, false
	}

	entries := m.All()
	for i := range entries {
		if !strings.EqualFold(entries[i].Address, address) {
			continue
		}
		if entries[i].Status != models.WhitelistStatusRejected {
			return nil, false
		}
		// Re-application resets a rejected entry.
		entries[i].Status = models.WhitelistStatusPending
		entries[i].Note = note
		entries[i].RequestedAt = m.now()
		entries[i].ReviewedAt = nil
		entries[i].ReviewedBy = ""
		if !m.store.Set(storage.KeyWhitelist, entries) {
			return nil, false
		}
		return &entries[i], true
	}

	entry := models.WhitelistEntry{
		Address:     address,
		Status:      models.WhitelistStatusPending,
		Note:        note,
		RequestedAt: m.now(),
	}
	if !m.store.Set(storage.KeyWhitelist, append(entries, entry)) {
		return nil, false
	}
	m.log.WithField("address", address).Info("Whitelist application filed")
	return &entry, true
}

// Review resolves a pending application.
func (m *Manager) Review(address, reviewer string, approve bool) bool {
	entries := m.All()
	for i := range entries {
		if !strings.EqualFold(entries[i].Address, address) {
			continue
		}
		if entries[i].Status != models.WhitelistStatusPending {
			return false
		}
		now := m.now()
		entries[i].Status = models.WhitelistStatusRejected
		if approve {
			entries[i].Status = models.WhitelistStatusApproved
		}
		entries[i].ReviewedAt = &now
		entries[i].ReviewedBy = reviewer
		if !m.store.Set(storage.KeyWhitelist, entries) {
			return false
		}
		m.log.WithFields(logrus.Fields{
			"address": address,
			"status":  entries[i].Status,
		}).Info("Whitelist application reviewed")
		return true
	}
	return false
}

// Remove deletes a wallet's entry entirely.
func (m *Manager) Remove(address string) bool {
	entries := m.All()
	kept := make([]models.WhitelistEntry, 0, len(entries))
	for _, e := range entries {
		if !strings.EqualFold(e.Address, address) {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return false
	}
	return m.store.Set(storage.KeyWhitelist, kept)
}

// IsWhitelisted reports whether the wallet holds an approved entry.
func (m *Manager) IsWhitelisted(address string) bool {
	for _, e := range m.All() {
		if strings.EqualFold(e.Address, address) {
			return e.Status == models.WhitelistStatusApproved
		}
	}
	return false
}

// Entry returns the wallet's entry, if any.
func (m *Manager) Entry(address string) (*models.WhitelistEntry, bool) {
	for _, e := range m.All() {
		if strings.EqualFold(e.Address, address) {
			return &e, true
		}
	}
	return nil, false
}

// All returns every whitelist entry.
func (m *Manager) All() []models.WhitelistEntry {
	return storage.Get(m.store, storage.KeyWhitelist, []models.WhitelistEntry{})
}
