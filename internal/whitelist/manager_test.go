// internal/whitelist/manager_test.go
package whitelist

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

func TestApplyAndApprove(t *testing.T) {
	m := newTestManager(t)

	entry, ok := m.Apply(wallet, "early supporter")
	require.True(t, ok)
	assert.Equal(t, models.WhitelistStatusPending, entry.Status)
	assert.False(t, m.IsWhitelisted(wallet))

	// applying again while pending fails
	_, ok = m.Apply(wallet, "")
	assert.False(t, ok)

	require.True(t, m.Review(wallet, "admin", true))
	assert.True(t, m.IsWhitelisted(wallet))

	// an approved wallet cannot re-apply
	_, ok = m.Apply(wallet, "")
	assert.False(t, ok)
}

func TestRejectAndReapply(t *testing.T) {
	m := newTestManager(t)

	_, ok := m.Apply(wallet, "")
	require.True(t, ok)
	require.True(t, m.Review(wallet, "admin", false))
	assert.False(t, m.IsWhitelisted(wallet))

	// reviewing a resolved entry fails
	assert.False(t, m.Review(wallet, "admin", true))

	// a rejected wallet may apply again
	entry, ok := m.Apply(wallet, "second try")
	require.True(t, ok)
	assert.Equal(t, models.WhitelistStatusPending, entry.Status)
	assert.Nil(t, entry.ReviewedAt)
}

func TestReviewUnknownAddress(t *testing.T) {
	m := newTestManager(t)
	assert.False(t, m.Review(wallet, "admin", true))
}

func TestRemove(t *testing.T) {
	m := newTestManager(t)

	_, ok := m.Apply(wallet, "")
	require.True(t, ok)
	require.True(t, m.Review(wallet, "admin", true))

	require.True(t, m.Remove(wallet))
	assert.False(t, m.IsWhitelisted(wallet))
	assert.False(t, m.Remove(wallet))
}

func TestAddressCaseInsensitive(t *testing.T) {
	m := newTestManager(t)

	_, ok := m.Apply("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", "")
	require.True(t, ok)
	require.True(t, m.Review(wallet, "admin", true))
	assert.True(t, m.IsWhitelisted(wallet))
}
