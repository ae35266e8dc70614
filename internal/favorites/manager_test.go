// internal/favorites/manager_test.go
package favorites

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmint/marketplace-backend/internal/storage"
)

const (
	walletA = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	walletB = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)
	store := storage.NewStore(storage.NewMemoryBackend(0), log, storage.DefaultOptions())
	return NewManager(store, log)
}

func TestAddRemove(t *testing.T) {
	m := newTestManager(t)

	require.True(t, m.Add(walletA, "nft-1"))
	assert.True(t, m.IsFavorite(walletA, "nft-1"))
	assert.False(t, m.IsFavorite(walletB, "nft-1"))

	// adding twice is a no-op
	require.True(t, m.Add(walletA, "nft-1"))
	assert.Len(t, m.List(walletA), 1)

	require.True(t, m.Remove(walletA, "nft-1"))
	assert.False(t, m.IsFavorite(walletA, "nft-1"))
}

func TestToggle(t *testing.T) {
	m := newTestManager(t)

	favorited, ok := m.Toggle(walletA, "nft-1")
	require.True(t, ok)
	assert.True(t, favorited)

	favorited, ok = m.Toggle(walletA, "nft-1")
	require.True(t, ok)
	assert.False(t, favorited)
	assert.Empty(t, m.List(walletA))
}

func TestCountScansAllWallets(t *testing.T) {
	m := newTestManager(t)

	m.Add(walletA, "nft-1")
	m.Add(walletB, "nft-1")
	m.Add(walletB, "nft-2")

	assert.Equal(t, 2, m.Count("nft-1"))
	assert.Equal(t, 1, m.Count("nft-2"))
	assert.Equal(t, 0, m.Count("nft-3"))
}

func TestAddressCaseInsensitive(t *testing.T) {
	m := newTestManager(t)

	m.Add("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", "nft-1")
	assert.True(t, m.IsFavorite(walletA, "nft-1"))
}
