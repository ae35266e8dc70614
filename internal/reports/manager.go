// internal/reports/manager.go
package reports

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/openmint/marketplace-backend/internal/models"
	"github.com/openmint/marketplace-backend/internal/storage"
)

// Manager collects user reports against NFTs and wallets for admin review.
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
		log:   log.WithField("component", "reports"),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type CreateParams struct {
	Reporter   string
	TargetType models.ReportTargetType
	TargetID   string
	Reason     string
	Details    string
}

// Create files a report. A reporter may not hold two pending reports
// against the same target.
func (m *Manager) Create(p CreateParams) (*models.Report, bool) {
	if p.Reporter == "" || p.TargetID == "" || p.Reason == "" {
		return nil, false
	}
	if p.TargetType != models.ReportTargetNFT && p.TargetType != models.ReportTargetUser {
		return nil, false
	}

	all := m.All()
	for _, r := range all {
		if r.Status == models.ReportStatusPending &&
			strings.EqualFold(r.ReporterAddress, p.Reporter) &&
			r.TargetID == p.TargetID {
			return nil, false
		}
	}

	report := models.Report{
		ID:              uuid.NewString(),
		ReporterAddress: p.Reporter,
		TargetType:      p.TargetType,
		TargetID:        p.TargetID,
		Reason:          p.Reason,
		Details:         p.Details,
		Status:          models.ReportStatusPending,
		CreatedAt:       m.now(),
	}
	if !m.store.Set(storage.KeyReports, append(all, report)) {
		return nil, false
	}
	m.log.WithFields(logrus.Fields{
		"report_id": report.ID,
		"target":    report.TargetID,
	}).Info("Report filed")
	return &report, true
}

// Review resolves a pending report as reviewed or dismissed, with an
// optional resolution note.
func (m *Manager) Review(reportID, reviewer string, dismiss bool, note string) bool {
	all := m.All()
	for i := range all {
		if all[i].ID != reportID {
			continue
		}
		if all[i].Status != models.ReportStatusPending {
			return false
		}
		now := m.now()
		all[i].Status = models.ReportStatusReviewed
		if dismiss {
			all[i].Status = models.ReportStatusDismissed
		}
		all[i].ReviewedAt = &now
		all[i].ReviewedBy = reviewer
		all[i].ResolutionNote = note
		if !m.store.Set(storage.KeyReports, all) {
			return false
		}
		m.log.WithFields(logrus.Fields{
			"report_id": reportID,
			"status":    all[i].Status,
		}).Info("Report reviewed")
		return true
	}
	return false
}

// All returns every report.
func (m *Manager) All() []models.Report {
	return storage.Get(m.store, storage.KeyReports, []models.Report{})
}

// Pending returns the reports awaiting review.
func (m *Manager) Pending() []models.Report {
	var out []models.Report
	for _, r := range m.All() {
		if r.Status == models.ReportStatusPending {
			out = append(out, r)
		}
	}
	return out
}

// ForTarget returns every report filed against one target id.
func (m *Manager) ForTarget(targetID string) []models.Report {
	var out []models.Report
	for _, r := range m.All() {
		if r.TargetID == targetID {
			out = append(out, r)
		}
	}
	return out
}
