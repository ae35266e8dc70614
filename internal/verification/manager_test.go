// internal/verification/manager_test.go
package verification

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmint/marketplace-backend/internal/models"
	"github.com/openmint/marketplace-backend/internal/storage"
)

const wallet = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)
	store := storage.NewStore(storage.NewMemoryBackend(0), log, storage.DefaultOptions())
	return NewManager(store, log)
}

func TestSubmitAndApprove(t *testing.T) {
	m := newTestManager(t)

	request, ok := m.Submit(wallet, "Ars Longa", []string{"https://arslonga.example"})
	require.True(t, ok)
	assert.Equal(t, models.VerificationStatusPending, request.Status)
	assert.False(t, m.IsVerified(wallet))

	// one pending request per wallet
	_, ok = m.Submit(wallet, "Ars Longa", nil)
	assert.False(t, ok)

	require.True(t, m.Review(request.ID, "admin", true, "portfolio checks out"))
	assert.True(t, m.IsVerified(wallet))

	// a verified wallet cannot re-apply
	_, ok = m.Submit(wallet, "Ars Longa", nil)
	assert.False(t, ok)
}

func TestSubmitValidation(t *testing.T) {
	m := newTestManager(t)

	_, ok := m.Submit("", "name", nil)
	assert.False(t, ok)
	_, ok = m.Submit(wallet, "", nil)
	assert.False(t, ok)
}

func TestRejectAndResubmit(t *testing.T) {
	m := newTestManager(t)

	request, ok := m.Submit(wallet, "Ars Longa", nil)
	require.True(t, ok)
	require.True(t, m.Review(request.ID, "admin", false, "no portfolio"))
	assert.False(t, m.IsVerified(wallet))

	// a resolved request cannot be reviewed again
	assert.False(t, m.Review(request.ID, "admin", true, ""))

	// a rejected wallet may submit a fresh request
	second, ok := m.Submit(wallet, "Ars Longa", nil)
	require.True(t, ok)

	latest, found := m.Latest(wallet)
	require.True(t, found)
	assert.Equal(t, second.ID, latest.ID)
}

func TestReviewUnknownID(t *testing.T) {
	m := newTestManager(t)
	assert.False(t, m.Review("nope", "admin", true, ""))
}

func TestPending(t *testing.T) {
	m := newTestManager(t)

	_, ok := m.Submit(wallet, "Ars Longa", nil)
	require.True(t, ok)
	assert.Len(t, m.Pending(), 1)
	assert.Len(t, m.All(), 1)
}
