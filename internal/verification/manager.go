// internal/verification/manager.go
package verification

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/openmint/marketplace-backend/internal/models"
	"github.com/openmint/marketplace-backend/internal/storage"
)

// Manager handles creator verification badges: wallets submit a request,
// an admin approves or rejects it, and IsVerified reflects the latest
// approved request.
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
		log:   log.WithField("component", "verification"),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Submit files a verification request. One pending request per wallet; an
// already verified wallet cannot re-apply.
func (m *Manager) Submit(address, displayName string, links []string) (*models.VerificationRequest, bool) {
	if address == "" || displayName == "" {
		return nil, false
	}
	if m.IsVerified(address) {
		return nil, false
	}
	all := m.All()
	for _, r := range all {
		if strings.EqualFold(r.Address, address) && r.Status == models.VerificationStatusPending {
			return nil, false
		}
	}

	request := models.VerificationRequest{
		ID:          uuid.NewString(),
		Address:     address,
		DisplayName: displayName,
		Links:       links,
		Status:      models.VerificationStatusPending,
		SubmittedAt: m.now(),
	}
	if !m.store.Set(storage.KeyVerification, append(all, request)) {
		return nil, false
	}
	m.log.WithField("address", address).Info("Verification request submitted")
	return &request, true
}

// Review resolves a pending request.
func (m *Manager) Review(requestID, reviewer string, approve bool, note string) bool {
	all := m.All()
	for i := range all {
		if all[i].ID != requestID {
			continue
		}
		if all[i].Status != models.VerificationStatusPending {
			return false
		}
		now := m.now()
		all[i].Status = models.VerificationStatusRejected
		if approve {
			all[i].Status = models.VerificationStatusApproved
		}
		all[i].ReviewedAt = &now
		all[i].ReviewedBy = reviewer
		all[i].Note = note
		if !m.store.Set(storage.KeyVerification, all) {
			return false
		}
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     all[i].Status,
		}).Info("Verification request reviewed")
		return true
	}
	return false
}

// IsVerified reports whether the wallet holds an approved request.
func (m *Manager) IsVerified(address string) bool {
	for _, r := range m.All() {
		if strings.EqualFold(r.Address, address) && r.Status == models.VerificationStatusApproved {
			return true
		}
	}
	return false
}

// Latest returns the wallet's most recent request.
func (m *Manager) Latest(address string) (*models.VerificationRequest, bool) {
	var latest *models.VerificationRequest
	all := m.All()
	for i := range all {
		if !strings.EqualFold(all[i].Address, address) {
			continue
		}
		if latest == nil || all[i].SubmittedAt.After(latest.SubmittedAt) {
			latest = &all[i]
		}
	}
	return latest, latest != nil
}

// All returns every verification request.
func (m *Manager) All() []models.VerificationRequest {
	return storage.Get(m.store, storage.KeyVerification, []models.VerificationRequest{})
}

// Pending returns the requests awaiting review.
func (m *Manager) Pending() []models.VerificationRequest {
	var out []models.VerificationRequest
	for _, r := range m.All() {
		if r.Status == models.VerificationStatusPending {
			out = append(out, r)
		}
	}
	return out
}
